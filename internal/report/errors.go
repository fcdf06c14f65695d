package report

import "fmt"

// MissingMetricError reports a required metric block absent from a quarter
// snapshot on the headcount/FTE path, which reads strictly.
type MissingMetricError struct {
	Quarter string
	Key     string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("quarter %s: required metric %q missing", e.Quarter, e.Key)
}

// DuplicateCellError reports two flat records targeting the same
// (business, quarter) pivot cell. The pivot never overwrites silently.
type DuplicateCellError struct {
	Business string
	Quarter  string
}

func (e *DuplicateCellError) Error() string {
	return fmt.Sprintf("duplicate pivot cell for business %q in quarter %s", e.Business, e.Quarter)
}
