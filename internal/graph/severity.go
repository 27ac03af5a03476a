package graph

// Severity classifies a value against warning and critical thresholds.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns a lowercase label for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Thresholds are the warning and critical boundaries. Both are inclusive.
type Thresholds struct {
	Warning  float64
	Critical float64
}

// Classify returns Critical at or above the critical threshold, Warning at
// or above the warning threshold, and Normal otherwise.
func (t Thresholds) Classify(v float64) Severity {
	switch {
	case v >= t.Critical:
		return SeverityCritical
	case v >= t.Warning:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}
