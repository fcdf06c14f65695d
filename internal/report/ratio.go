package report

// Ratio returns part/whole as a percentage. A whole that is not strictly
// positive yields 0, never an error or NaN. Every percentage in the
// reports goes through this one policy.
func Ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// GrowthRate returns the percentage change from first to last, with the
// same zero-denominator policy as Ratio.
func GrowthRate(first, last float64) float64 {
	return Ratio(last-first, first)
}

// FulfillmentRate returns filled/(filled+open) as a percentage. Cancelled
// and expired demands stay out of the denominator.
func FulfillmentRate(filled, open float64) float64 {
	return Ratio(filled, filled+open)
}
