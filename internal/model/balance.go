package model

// Balance thresholds in kWh.
const (
	WarningThreshold   = 5.0
	ExcellentThreshold = 100.0
)

// Balances holds the remaining power of the two metered rooms.
type Balances struct {
	Lighting        float64
	AirConditioning float64
}

// Low reports whether either room is at or below WarningThreshold.
func (b Balances) Low() bool {
	return b.Lighting <= WarningThreshold || b.AirConditioning <= WarningThreshold
}

// Status classifies a single balance.
type Status int

const (
	StatusWarning Status = iota
	StatusOK
	StatusExcellent
)

// WarningLabel marks a report that contains at least one low balance.
const WarningLabel = "⚠️警告"

var statusLabels = map[Status]string{
	StatusExcellent: "充足",
	StatusOK:        "还行",
	StatusWarning:   WarningLabel,
}

// Label returns the display label used in reports.
func (s Status) Label() string {
	return statusLabels[s]
}

func (s Status) String() string {
	switch s {
	case StatusExcellent:
		return "excellent"
	case StatusOK:
		return "ok"
	default:
		return "warning"
	}
}

// Classify maps a balance onto a Status: above ExcellentThreshold is excellent,
// at or below WarningThreshold is a warning, anything between is ok.
func Classify(balance float64) Status {
	switch {
	case balance > ExcellentThreshold:
		return StatusExcellent
	case balance > WarningThreshold:
		return StatusOK
	default:
		return StatusWarning
	}
}
