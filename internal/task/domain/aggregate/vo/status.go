package vo

// Severity tags a status for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityNone    Severity = ""
)

var (
	Scheduled           = newStatus(0, "Scheduled", SeverityInfo)
	Running             = newStatus(1, "Running", SeverityNone)
	Succeeded           = newStatus(2, "Succeeded", SeveritySuccess)
	Failed              = newStatus(3, "Failed", SeverityDanger)
	Deleting            = newStatus(4, "Deleting", SeverityInfo)
	Pending             = newStatus(5, "Pending", SeverityWarning)
	TimeLimitExceeded   = newStatus(6, "TLE", SeverityDanger)
	Waiting             = newStatus(7, "Waiting", SeverityWarning)
	MemoryLimitExceeded = newStatus(8, "MLE", SeverityDanger)
)

// Status is one of the nine lifecycle states a task can be in. The code
// is the wire representation; label and severity drive rendering.
type Status struct {
	code     uint8
	label    string
	severity Severity
}

var statusByCode = map[uint8]*Status{}

func newStatus(code uint8, label string, severity Severity) *Status {
	s := &Status{code: code, label: label, severity: severity}
	statusByCode[code] = s
	return s
}

// StatusByCode returns the status for a wire code, or nil for codes
// outside the vocabulary. Callers render nil as blank.
func StatusByCode(code uint8) *Status {
	return statusByCode[code]
}

func (s *Status) Code() uint8 {
	if s == nil {
		return 0
	}
	return s.code
}

func (s *Status) Label() string {
	if s == nil {
		return ""
	}
	return s.label
}

func (s *Status) Severity() Severity {
	if s == nil {
		return SeverityNone
	}
	return s.severity
}

// Terminal reports whether the task can no longer change state on its own.
func (s *Status) Terminal() bool {
	switch s {
	case Succeeded, Failed, TimeLimitExceeded, MemoryLimitExceeded:
		return true
	default:
		return false
	}
}
