package compliance

import (
	"testing"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

func TestClassifySeverity(t *testing.T) {
	cases := []struct {
		name string
		text string
		want database.Severity
	}{
		{"critical violation", "Provider sanctioned for HIPAA violation", database.SeverityCritical},
		{"critical penalty", "New penalties for late claims submission", database.SeverityCritical},
		{"critical deadline", "Enrollment deadline moved to next month", database.SeverityCritical},
		{"warning update", "Telehealth billing guidance update released", database.SeverityWarning},
		{"warning amendment", "Amendment to parity reporting requirements", database.SeverityWarning},
		{"warning proposed", "Proposed rule on prior authorization", database.SeverityWarning},
		{"info", "Annual behavioral health conference announced", database.SeverityInfo},
		{"empty", "", database.SeverityInfo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifySeverity(tc.text); got != tc.want {
				t.Errorf("ClassifySeverity(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

// Critical terms are checked before warning terms, so text containing both
// must classify as critical.
func TestClassifySeverity_CriticalPrecedesWarning(t *testing.T) {
	text := "Updated enforcement actions: penalty amounts revised"

	if got := ClassifySeverity(text); got != database.SeverityCritical {
		t.Errorf("ClassifySeverity(%q) = %s, want critical", text, got)
	}
}
