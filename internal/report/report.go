// Package report computes workforce-metrics report tables from quarter
// snapshot sequences. All functions are pure: they derive every table
// fresh from the immutable input and hold no state between calls.
package report

import (
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// Scope selects which slice of a metric family a table reports.
type Scope string

const (
	ScopeOverall  Scope = "overall"
	ScopeOnsite   Scope = "onsite"
	ScopeOffshore Scope = "offshore"
)

// String returns the capitalized display form.
func (s Scope) String() string {
	switch s {
	case ScopeOverall:
		return "Overall"
	case ScopeOnsite:
		return "Onsite"
	case ScopeOffshore:
		return "Offshore"
	default:
		return string(s)
	}
}

// Location returns the location this scope narrows to, false for overall.
func (s Scope) Location() (models.Location, bool) {
	switch s {
	case ScopeOnsite:
		return models.LocationOnsite, true
	case ScopeOffshore:
		return models.LocationOffshore, true
	default:
		return "", false
	}
}

// totalKey returns the grand-total metric key for an HC/FTE family.
func totalKey(family models.MetricFamily) string {
	if family == models.FamilyFTE {
		return "total_billable_fte"
	}
	return "total_billable_hc"
}

// locationKey returns the location-scoped total key for a family.
func locationKey(family models.MetricFamily, loc models.Location) string {
	switch family {
	case models.FamilyFulfillment:
		if loc == models.LocationOffshore {
			return "offshore_demands"
		}
		return "onsite_demands"
	case models.FamilyFTE:
		if loc == models.LocationOffshore {
			return "total_offshore_fte"
		}
		return "total_onsite_fte"
	default:
		if loc == models.LocationOffshore {
			return "total_offshore_hc"
		}
		return "total_onsite_hc"
	}
}

// kpoKey returns the KPO block key for an HC/FTE family and scope.
func kpoKey(family models.MetricFamily, scope Scope) string {
	suffix := "hc"
	if family == models.FamilyFTE {
		suffix = "fte"
	}
	switch scope {
	case ScopeOnsite:
		return "onsite_kpo_" + suffix
	case ScopeOffshore:
		return "offshore_kpo_" + suffix
	default:
		return "total_kpo_" + suffix
	}
}

// nonKPOKey returns the non-KPO block key for an HC/FTE family and scope.
func nonKPOKey(family models.MetricFamily, scope Scope) string {
	suffix := "hc"
	if family == models.FamilyFTE {
		suffix = "fte"
	}
	switch scope {
	case ScopeOnsite:
		return "onsite_non_kpo_" + suffix
	case ScopeOffshore:
		return "offshore_non_kpo_" + suffix
	default:
		return "total_non_kpo_" + suffix
	}
}
