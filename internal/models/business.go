// Package models defines data structures and domain types.
package models

import "slices"

// BusinessUnits is the closed catalog of business units every report
// iterates over. Order is the canonical row order for pivot tables.
var BusinessUnits = []string{
	"BET NA",
	"HIL",
	"GROWTH MARKETS",
	"PLATINUM AC-CITI",
	"PLATINUM AC-JPMC",
	"TIME",
}

// IsBusinessUnit reports whether name belongs to the catalog.
func IsBusinessUnit(name string) bool {
	return slices.Contains(BusinessUnits, name)
}

// Summary row labels appended to every pivot table, in fixed order.
const (
	RowVRTU        = "VRTU"
	RowKPO         = "KPO"
	RowVRTUExclKPO = "VRTU Excl KPO"

	// ColQTD is the quarter-to-date delta column, always rightmost.
	ColQTD = "QTD"
)
