package types

// Severity is the level of an issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue represents a finding reported by an analysis at one flow point.
type Issue struct {
	Rule      string   `json:"rule"`
	Filename  string   `json:"filename,omitempty"`
	FlowPoint int      `json:"flow_point"`
	Text      string   `json:"text"`
	Message   string   `json:"message"`
	Note      string   `json:"note,omitempty"`
	Severity  Severity `json:"severity"`
}
