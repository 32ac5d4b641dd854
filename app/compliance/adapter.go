package compliance

import (
	"context"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// Adapter wraps exactly one external information source. Run never returns an
// error: every failure is folded into the SyncResult at the adapter boundary.
type Adapter interface {
	Name() string
	Source() database.Source
	SyncType() string
	Run(ctx context.Context) SyncResult
}

func failedResult(source database.Source, syncType, message string) SyncResult {
	return SyncResult{
		Source:       source,
		SyncType:     syncType,
		Status:       database.SyncStatusFailed,
		ErrorMessage: message,
	}
}
