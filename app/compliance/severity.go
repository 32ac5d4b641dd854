package compliance

import (
	"strings"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// criticalTerms signal urgency, violations, or penalties. Checked before
// warningTerms, so text matching both classifies as critical.
var criticalTerms = []string{
	"immediate",
	"immediately",
	"violation",
	"penalty",
	"penalties",
	"enforcement",
	"deadline",
	"revoked",
	"revocation",
	"suspended",
	"sanction",
	"fraud",
	"termination",
	"mandatory",
	"urgent",
}

var warningTerms = []string{
	"change",
	"update",
	"updated",
	"amendment",
	"amended",
	"revised",
	"revision",
	"new rule",
	"new requirement",
	"proposed",
	"modification",
	"effective",
	"expansion",
}

// ClassifySeverity maps item text to a severity by ordered keyword heuristic.
// Pure, deterministic, total.
func ClassifySeverity(text string) database.Severity {
	lowered := strings.ToLower(text)

	for _, term := range criticalTerms {
		if strings.Contains(lowered, term) {
			return database.SeverityCritical
		}
	}

	for _, term := range warningTerms {
		if strings.Contains(lowered, term) {
			return database.SeverityWarning
		}
	}

	return database.SeverityInfo
}
