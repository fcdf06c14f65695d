// Package models defines data structures and domain types.
package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// MetricFamily identifies which of the snapshot files a value came from.
type MetricFamily string

const (
	FamilyHC          MetricFamily = "hc"
	FamilyFTE         MetricFamily = "fte"
	FamilyFulfillment MetricFamily = "fulfillment"
)

// String returns a human-readable family name.
func (f MetricFamily) String() string {
	switch f {
	case FamilyHC:
		return "Headcount"
	case FamilyFTE:
		return "FTE"
	case FamilyFulfillment:
		return "Fulfillment"
	default:
		return string(f)
	}
}

// Location selects an onsite/offshore slice of a metric family.
type Location string

const (
	LocationOnsite   Location = "onsite"
	LocationOffshore Location = "offshore"
)

// String returns the capitalized display form.
func (l Location) String() string {
	switch l {
	case LocationOnsite:
		return "Onsite"
	case LocationOffshore:
		return "Offshore"
	default:
		return string(l)
	}
}

// QuarterSnapshot is one element of a metrics JSON file: the pre-computed
// metrics for a single fiscal quarter as of an extraction run.
type QuarterSnapshot struct {
	FiscalYear     string                 `json:"fiscal_year"`
	Quarter        string                 `json:"quarter"`
	ExtractionDate string                 `json:"extraction_date,omitempty"`
	Metrics        map[string]MetricBlock `json:"metrics"`
}

// Label returns the canonical quarter label, e.g. "FY26 Q1".
func (s QuarterSnapshot) Label() string {
	return s.FiscalYear + " " + s.Quarter
}

// Block returns the named metric block and whether it exists.
func (s QuarterSnapshot) Block(name string) (MetricBlock, bool) {
	b, ok := s.Metrics[name]
	return b, ok
}

// HasMetrics reports whether the snapshot carries any metric data at all.
func (s QuarterSnapshot) HasMetrics() bool {
	return len(s.Metrics) > 0
}

// UnmarshalJSON accepts fiscal_year as either a string ("FY26") or a bare
// number (2026), since extraction runs have produced both over time.
func (s *QuarterSnapshot) UnmarshalJSON(data []byte) error {
	type alias struct {
		FiscalYear     json.RawMessage        `json:"fiscal_year"`
		Quarter        string                 `json:"quarter"`
		ExtractionDate string                 `json:"extraction_date"`
		Metrics        map[string]MetricBlock `json:"metrics"`
	}

	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Quarter = raw.Quarter
	s.ExtractionDate = raw.ExtractionDate
	s.Metrics = raw.Metrics
	s.FiscalYear = decodeLooseString(raw.FiscalYear)
	return nil
}

// decodeLooseString renders a JSON scalar as its label form.
func decodeLooseString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		return str
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if num == float64(int64(num)) {
			return strconv.FormatInt(int64(num), 10)
		}
		return strconv.FormatFloat(num, 'g', -1, 64)
	}

	return strings.Trim(string(data), `"`)
}

// MetricBlock is one value of a snapshot's metrics map. Workforce blocks
// carry total + by_business; rate blocks carry overall; demand blocks add
// filled/open/cancelled/expired and the location-scoped sub-maps. Extraction
// runs have occasionally emitted a bare number instead of an object, which
// decodes as Total and Overall both set.
type MetricBlock struct {
	Overall          float64            `json:"overall"`
	Total            float64            `json:"total"`
	Filled           float64            `json:"filled"`
	Open             float64            `json:"open"`
	Cancelled        float64            `json:"cancelled"`
	Expired          float64            `json:"expired"`
	ByBusiness       map[string]float64 `json:"by_business"`
	FilledByBusiness map[string]float64 `json:"filled_by_business"`
	OpenByBusiness   map[string]float64 `json:"open_by_business"`
}

// UnmarshalJSON decodes either form of a metric block.
func (b *MetricBlock) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*b = MetricBlock{}
		return nil
	}

	if !strings.HasPrefix(trimmed, "{") {
		var num float64
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("metric block is neither number nor object: %w", err)
		}
		*b = MetricBlock{Total: num, Overall: num}
		return nil
	}

	type alias MetricBlock
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = MetricBlock(obj)
	return nil
}

// BusinessValue returns the by_business entry for a unit, 0 when absent.
func (b MetricBlock) BusinessValue(business string) float64 {
	return b.ByBusiness[business]
}

// Clone returns a deep copy of the block.
func (b MetricBlock) Clone() MetricBlock {
	clone := b
	if b.ByBusiness != nil {
		clone.ByBusiness = make(map[string]float64, len(b.ByBusiness))
		maps.Copy(clone.ByBusiness, b.ByBusiness)
	}
	if b.FilledByBusiness != nil {
		clone.FilledByBusiness = make(map[string]float64, len(b.FilledByBusiness))
		maps.Copy(clone.FilledByBusiness, b.FilledByBusiness)
	}
	if b.OpenByBusiness != nil {
		clone.OpenByBusiness = make(map[string]float64, len(b.OpenByBusiness))
		maps.Copy(clone.OpenByBusiness, b.OpenByBusiness)
	}
	return clone
}
