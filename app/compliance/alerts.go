package compliance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// AlertService persists alerts and fans non-informational ones out to the
// notification sink.
type AlertService struct {
	alertRepo database.AlertRepository
	notifier  Notifier
}

func NewAlertService(alertRepo database.AlertRepository, notifier Notifier) *AlertService {
	return &AlertService{
		alertRepo: alertRepo,
		notifier:  notifier,
	}
}

// Create persists the alert, then pages the sink for warning and critical
// severities. A sink failure is logged and swallowed: alert persistence must
// succeed independently of whether paging succeeds.
func (s *AlertService) Create(ctx context.Context, alert database.Alert) error {
	id, err := s.alertRepo.Insert(alert)
	if err != nil {
		slog.Error("Failed to persist alert", "title", alert.Title, "severity", alert.Severity, "error", err)
		return fmt.Errorf("failed to persist alert: %w", err)
	}

	slog.Info("Alert created", "id", id, "severity", alert.Severity, "source", alert.Source, "title", alert.Title)

	if alert.Severity == database.SeverityInfo {
		return nil
	}

	title := fmt.Sprintf("[%s] Compliance alert: %s", alert.Severity, alert.Title)
	body := alert.Description
	if alert.SourceURL != "" {
		body = fmt.Sprintf("%s\n\nSource: %s", body, alert.SourceURL)
	}

	if err := s.notifier.Notify(ctx, title, body); err != nil {
		slog.Error("Notification sink failure", "alert_id", id, "error", err)
	}

	return nil
}
