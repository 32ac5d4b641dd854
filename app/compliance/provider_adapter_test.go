package compliance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

const providerSearchJSON = `{
	"results": [
		{
			"title": "State parity enforcement deadline announced",
			"summary": "Behavioral health parity compliance deadline with penalties for violations.",
			"url": "https://provider.example.com/docs/parity-deadline",
			"published_at": "2026-08-01T12:00:00Z",
			"jurisdictions": ["CA", "NY"]
		},
		{
			"title": "Agricultural subsidy report",
			"summary": "Quarterly farm subsidy data.",
			"url": "https://provider.example.com/docs/farm-subsidies",
			"published_at": "2026-08-02T12:00:00Z"
		}
	]
}`

func newTestProviderAdapter(searchURL, apiKey string, policyRepo database.PolicyUpdateRepository,
	alerts *AlertService) *ProviderAdapter {
	return NewProviderAdapter(database.SourceLexisNexis, "LexisNexis", "LEXISNEXIS_API_KEY",
		func() string { return apiKey }, searchURL, "behavioral health",
		&http.Client{}, policyRepo, alerts, "test-agent")
}

func TestProviderAdapter_MissingCredential(t *testing.T) {
	policyRepo := NewMockPolicyRepository()
	alerts := NewAlertService(NewMockAlertRepository(), &MockNotifier{})

	// No server: a missing credential must short-circuit before any network
	// call is attempted.
	adapter := newTestProviderAdapter("http://127.0.0.1:1/search", "", policyRepo, alerts)

	result := adapter.Run(context.Background())

	if result.Status != database.SyncStatusFailed {
		t.Errorf("Expected failed status, got %s", result.Status)
	}
	if !strings.Contains(result.ErrorMessage, "LEXISNEXIS_API_KEY") {
		t.Errorf("Error message should name the missing credential, got %q", result.ErrorMessage)
	}
	if policyRepo.Count() != 0 {
		t.Error("No items should be stored without a credential")
	}
}

func TestProviderAdapter_IngestsAndCapsAtWarning(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(providerSearchJSON))
	}))
	defer server.Close()

	policyRepo := NewMockPolicyRepository()
	alertRepo := NewMockAlertRepository()
	alerts := NewAlertService(alertRepo, &MockNotifier{})
	adapter := newTestProviderAdapter(server.URL, "secret-key", policyRepo, alerts)

	result := adapter.Run(context.Background())

	if gotAuth != "Bearer secret-key" {
		t.Errorf("Expected bearer credential, got %q", gotAuth)
	}
	if result.Status != database.SyncStatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", result.Status, result.ErrorMessage)
	}
	if result.RecordsChecked != 2 {
		t.Errorf("Expected 2 records checked, got %d", result.RecordsChecked)
	}
	// The farm-subsidy item is filtered out by relevance.
	if result.RecordsUpdated != 1 {
		t.Errorf("Expected 1 record updated, got %d", result.RecordsUpdated)
	}

	created := alertRepo.Alerts()
	if len(created) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(created))
	}
	// The item text contains critical terms ("deadline", "penalties") but
	// paid sources are lower-confidence, so severity is capped at warning.
	if created[0].Severity != database.SeverityWarning {
		t.Errorf("Provider alerts must be capped at warning, got %s", created[0].Severity)
	}
	if len(created[0].Jurisdictions) != 2 {
		t.Errorf("Expected jurisdictions to carry through, got %v", created[0].Jurisdictions)
	}
}

func TestProviderAdapter_TransportErrorIsFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	policyRepo := NewMockPolicyRepository()
	alerts := NewAlertService(NewMockAlertRepository(), &MockNotifier{})
	adapter := newTestProviderAdapter(server.URL, "secret-key", policyRepo, alerts)

	result := adapter.Run(context.Background())

	if result.Status != database.SyncStatusFailed {
		t.Errorf("Expected failed status, got %s", result.Status)
	}
	if !strings.Contains(result.ErrorMessage, "502") {
		t.Errorf("Error message should describe the transport error, got %q", result.ErrorMessage)
	}
}

func TestProviderAdapter_SecondRunIsIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(providerSearchJSON))
	}))
	defer server.Close()

	policyRepo := NewMockPolicyRepository()
	alerts := NewAlertService(NewMockAlertRepository(), &MockNotifier{})
	adapter := newTestProviderAdapter(server.URL, "secret-key", policyRepo, alerts)

	adapter.Run(context.Background())
	second := adapter.Run(context.Background())

	if second.RecordsUpdated != 0 {
		t.Errorf("Second run should insert nothing, got %d", second.RecordsUpdated)
	}
	if policyRepo.Count() != 1 {
		t.Errorf("Expected 1 stored update, got %d", policyRepo.Count())
	}
}
