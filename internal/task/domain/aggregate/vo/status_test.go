package vo

import "testing"

func TestStatusByCode_KnownCodes(t *testing.T) {
	cases := []struct {
		code     uint8
		label    string
		severity Severity
	}{
		{0, "Scheduled", SeverityInfo},
		{1, "Running", SeverityNone},
		{2, "Succeeded", SeveritySuccess},
		{3, "Failed", SeverityDanger},
		{4, "Deleting", SeverityInfo},
		{5, "Pending", SeverityWarning},
		{6, "TLE", SeverityDanger},
		{7, "Waiting", SeverityWarning},
		{8, "MLE", SeverityDanger},
	}
	for _, c := range cases {
		s := StatusByCode(c.code)
		if s == nil {
			t.Fatalf("StatusByCode(%d) = nil", c.code)
		}
		if s.Code() != c.code {
			t.Errorf("code %d: Code() = %d", c.code, s.Code())
		}
		if s.Label() != c.label {
			t.Errorf("code %d: Label() = %q, want %q", c.code, s.Label(), c.label)
		}
		if s.Severity() != c.severity {
			t.Errorf("code %d: Severity() = %q, want %q", c.code, s.Severity(), c.severity)
		}
	}
}

func TestStatusByCode_UnknownCode(t *testing.T) {
	for _, code := range []uint8{9, 42, 255} {
		s := StatusByCode(code)
		if s != nil {
			t.Fatalf("StatusByCode(%d) = %v, want nil", code, s)
		}
		// nil statuses must render blank, not panic.
		if s.Label() != "" {
			t.Errorf("nil Label() = %q, want empty", s.Label())
		}
		if s.Severity() != SeverityNone {
			t.Errorf("nil Severity() = %q, want empty", s.Severity())
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []*Status{Succeeded, Failed, TimeLimitExceeded, MemoryLimitExceeded}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s.Label())
		}
	}
	live := []*Status{Scheduled, Running, Deleting, Pending, Waiting}
	for _, s := range live {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s.Label())
		}
	}
}
