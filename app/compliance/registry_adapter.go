package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// RegistryAdapter reconciles the stored code definitions against the
// canonical procedure-code list.
type RegistryAdapter struct {
	codes    []CanonicalCode
	codeRepo database.CodeRepository
	alerts   *AlertService
}

var _ Adapter = (*RegistryAdapter)(nil)

func NewRegistryAdapter(codes []CanonicalCode, codeRepo database.CodeRepository, alerts *AlertService) *RegistryAdapter {
	return &RegistryAdapter{
		codes:    codes,
		codeRepo: codeRepo,
		alerts:   alerts,
	}
}

func (a *RegistryAdapter) Name() string            { return "Code Registry" }
func (a *RegistryAdapter) Source() database.Source { return database.SourceCMS }
func (a *RegistryAdapter) SyncType() string        { return SyncTypeCodeRegistry }

// Run walks the canonical list. New codes are inserted with a warning alert;
// a changed description or duration range is updated in place with a critical
// alert, since a code's documented meaning changing can invalidate historical
// billing. Unchanged codes only get their verification timestamp refreshed.
func (a *RegistryAdapter) Run(ctx context.Context) SyncResult {
	result := SyncResult{
		Source:   database.SourceCMS,
		SyncType: SyncTypeCodeRegistry,
		Status:   database.SyncStatusSuccess,
	}

	now := time.Now().UTC()
	var errMsgs []string

	for _, canonical := range a.codes {
		result.RecordsChecked++

		existing, err := a.codeRepo.GetByCode(canonical.Code)
		if err != nil {
			slog.Error("Failed to look up code definition", "code", canonical.Code, "error", err)
			errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", canonical.Code, err))
			continue
		}

		switch {
		case existing == nil:
			if err := a.insertCode(ctx, canonical, now); err != nil {
				errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", canonical.Code, err))
				continue
			}
			result.RecordsUpdated++
			result.ChangesDetected++

		case a.hasChanged(existing, canonical):
			if err := a.updateCode(ctx, existing, canonical, now); err != nil {
				errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", canonical.Code, err))
				continue
			}
			result.RecordsUpdated++
			result.ChangesDetected++

		default:
			if err := a.codeRepo.TouchVerified(canonical.Code, now); err != nil {
				slog.Error("Failed to refresh code verification time", "code", canonical.Code, "error", err)
				errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", canonical.Code, err))
			}
		}
	}

	if len(errMsgs) > 0 {
		result.ErrorMessage = strings.Join(errMsgs, "; ")
		if len(errMsgs) == len(a.codes) {
			result.Status = database.SyncStatusFailed
		} else {
			result.Status = database.SyncStatusPartial
		}
	}

	return result
}

func (a *RegistryAdapter) hasChanged(existing *database.CodeDefinition, canonical CanonicalCode) bool {
	return existing.Description != canonical.Description ||
		existing.MinDuration != canonical.MinDuration ||
		existing.MaxDuration != canonical.MaxDuration
}

func (a *RegistryAdapter) insertCode(ctx context.Context, canonical CanonicalCode, now time.Time) error {
	err := a.codeRepo.Insert(database.CodeDefinition{
		Code:           canonical.Code,
		Description:    canonical.Description,
		Category:       canonical.Category,
		MinDuration:    canonical.MinDuration,
		MaxDuration:    canonical.MaxDuration,
		IsActive:       true,
		LastVerifiedAt: now,
		SourceURL:      registrySourceURL,
	})
	if err != nil {
		slog.Error("Failed to insert code definition", "code", canonical.Code, "error", err)
		return err
	}

	a.alerts.Create(ctx, database.Alert{
		Source:   database.SourceCMS,
		Severity: database.SeverityWarning,
		Category: "code_registry",
		Title:    fmt.Sprintf("New Code Added: %s", canonical.Code),
		Description: fmt.Sprintf("Procedure code %s (%s) was added to the monitored registry: %s",
			canonical.Code, canonical.Category, canonical.Description),
		SourceURL: registrySourceURL,
	})

	return nil
}

func (a *RegistryAdapter) updateCode(ctx context.Context, existing *database.CodeDefinition, canonical CanonicalCode, now time.Time) error {
	updated := *existing
	updated.Description = canonical.Description
	updated.Category = canonical.Category
	updated.MinDuration = canonical.MinDuration
	updated.MaxDuration = canonical.MaxDuration
	updated.LastVerifiedAt = now

	if err := a.codeRepo.Update(updated); err != nil {
		slog.Error("Failed to update code definition", "code", canonical.Code, "error", err)
		return err
	}

	a.alerts.Create(ctx, database.Alert{
		Source:   database.SourceCMS,
		Severity: database.SeverityCritical,
		Category: "code_registry",
		Title:    fmt.Sprintf("Code Definition Changed: %s", canonical.Code),
		Description: fmt.Sprintf("Procedure code %s changed. Description: %q -> %q. Duration range: %d-%d -> %d-%d minutes.",
			canonical.Code,
			existing.Description, canonical.Description,
			existing.MinDuration, existing.MaxDuration,
			canonical.MinDuration, canonical.MaxDuration),
		SourceURL: registrySourceURL,
	})

	return nil
}
