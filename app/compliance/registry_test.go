package compliance

import (
	"testing"
)

func TestLoadCanonicalCodes(t *testing.T) {
	codes, err := LoadCanonicalCodes()
	if err != nil {
		t.Fatalf("Failed to load canonical codes: %v", err)
	}

	if len(codes) == 0 {
		t.Fatal("Canonical code list should not be empty")
	}

	seen := make(map[string]bool)
	for _, c := range codes {
		if c.Code == "" {
			t.Error("Every canonical entry needs a code")
		}
		if c.Description == "" {
			t.Errorf("Code %s is missing a description", c.Code)
		}
		if seen[c.Code] {
			t.Errorf("Duplicate canonical code: %s", c.Code)
		}
		seen[c.Code] = true
		if c.MinDuration > c.MaxDuration {
			t.Errorf("Code %s has inverted duration range %d-%d", c.Code, c.MinDuration, c.MaxDuration)
		}
	}

	if !seen["90837"] {
		t.Error("Expected standard psychotherapy code 90837 in the canonical list")
	}
}
