package compliance

import (
	"strings"
)

// relevanceKeywords is the fixed behavioral-health domain vocabulary. A single
// match anywhere in the text qualifies an item; the filter is deliberately
// over-inclusive because a missed compliance change costs more than a false
// alarm.
var relevanceKeywords = []string{
	"behavioral health",
	"mental health",
	"telehealth",
	"telemedicine",
	"hipaa",
	"medicaid",
	"medicare",
	"988",
	"substance use",
	"substance abuse",
	"parity",
	"crisis",
	"psychotherapy",
	"psychiatric",
	"counseling",
	"therapy",
	"sud",
	"opioid",
	"prior authorization",
	"42 cfr",
	"confidentiality",
}

// IsRelevant reports whether the text is in-domain for behavioral/mental
// health policy. Case-insensitive substring match; pure and total.
func IsRelevant(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
