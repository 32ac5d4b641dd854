package compliance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

func testCanonicalCodes() []CanonicalCode {
	return []CanonicalCode{
		{
			Code:        "90837",
			Description: "Psychotherapy, 60 minutes with patient",
			Category:    "psychotherapy",
			MinDuration: 53,
			MaxDuration: 60,
		},
	}
}

func TestRegistryAdapter_NewCodeInserted(t *testing.T) {
	codeRepo := NewMockCodeRepository()
	alertRepo := NewMockAlertRepository()
	alerts := NewAlertService(alertRepo, &MockNotifier{})
	adapter := NewRegistryAdapter(testCanonicalCodes(), codeRepo, alerts)

	result := adapter.Run(context.Background())

	if result.Status != database.SyncStatusSuccess {
		t.Errorf("Expected success, got %s (%s)", result.Status, result.ErrorMessage)
	}
	if result.RecordsChecked != 1 || result.RecordsUpdated != 1 {
		t.Errorf("Expected 1 checked / 1 updated, got %d / %d", result.RecordsChecked, result.RecordsUpdated)
	}

	stored, err := codeRepo.GetByCode("90837")
	if err != nil || stored == nil {
		t.Fatal("Code 90837 should have been inserted")
	}
	if stored.MinDuration != 53 || stored.MaxDuration != 60 {
		t.Errorf("Unexpected duration range: %d-%d", stored.MinDuration, stored.MaxDuration)
	}

	created := alertRepo.Alerts()
	if len(created) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(created))
	}
	if created[0].Severity != database.SeverityWarning {
		t.Errorf("New code alert should be warning, got %s", created[0].Severity)
	}
	if !strings.Contains(created[0].Title, "New Code Added") {
		t.Errorf("Unexpected alert title: %s", created[0].Title)
	}
}

func TestRegistryAdapter_ChangedCodeUpdatedWithCriticalAlert(t *testing.T) {
	codeRepo := NewMockCodeRepository()
	codeRepo.Insert(database.CodeDefinition{
		Code:        "90837",
		Description: "Psychotherapy, 60 min",
		Category:    "psychotherapy",
		MinDuration: 53,
		MaxDuration: 60,
		IsActive:    true,
	})

	alertRepo := NewMockAlertRepository()
	alerts := NewAlertService(alertRepo, &MockNotifier{})
	adapter := NewRegistryAdapter(testCanonicalCodes(), codeRepo, alerts)

	result := adapter.Run(context.Background())

	if result.ChangesDetected != 1 {
		t.Errorf("Expected 1 change detected, got %d", result.ChangesDetected)
	}

	stored, _ := codeRepo.GetByCode("90837")
	if stored.Description != "Psychotherapy, 60 minutes with patient" {
		t.Errorf("Description should have been updated in place, got %q", stored.Description)
	}

	created := alertRepo.Alerts()
	if len(created) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(created))
	}
	if created[0].Severity != database.SeverityCritical {
		t.Errorf("Changed code alert should be critical, got %s", created[0].Severity)
	}
	// The alert carries before and after values so historical billing impact
	// can be assessed.
	if !strings.Contains(created[0].Description, "Psychotherapy, 60 min") ||
		!strings.Contains(created[0].Description, "Psychotherapy, 60 minutes with patient") {
		t.Errorf("Alert should describe before/after values: %s", created[0].Description)
	}
}

func TestRegistryAdapter_UnchangedCodeOnlyTouchesVerification(t *testing.T) {
	verifiedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	codeRepo := NewMockCodeRepository()
	codeRepo.Insert(database.CodeDefinition{
		Code:           "90837",
		Description:    "Psychotherapy, 60 minutes with patient",
		Category:       "psychotherapy",
		MinDuration:    53,
		MaxDuration:    60,
		IsActive:       true,
		LastVerifiedAt: verifiedAt,
	})

	alertRepo := NewMockAlertRepository()
	alerts := NewAlertService(alertRepo, &MockNotifier{})
	adapter := NewRegistryAdapter(testCanonicalCodes(), codeRepo, alerts)

	result := adapter.Run(context.Background())

	if result.RecordsUpdated != 0 || result.ChangesDetected != 0 {
		t.Errorf("Unchanged code should not count as updated, got %d / %d",
			result.RecordsUpdated, result.ChangesDetected)
	}
	if len(alertRepo.Alerts()) != 0 {
		t.Error("Unchanged code should not raise an alert")
	}

	stored, _ := codeRepo.GetByCode("90837")
	if !stored.LastVerifiedAt.After(verifiedAt) {
		t.Error("last_verified_at should be refreshed on every sync")
	}
}
