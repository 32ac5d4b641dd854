package compliance

import (
	"time"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

const (
	SyncTypePolicyFeed     = "policy_feed"
	SyncTypeCodeRegistry   = "code_registry"
	SyncTypeProviderSearch = "provider_search"
)

// SyncResult is the outcome of one adapter run. Failures are reported through
// Status and ErrorMessage, never as errors to the orchestrator.
type SyncResult struct {
	Source          database.Source     `json:"source"`
	SyncType        string              `json:"sync_type"`
	Status          database.SyncStatus `json:"status"`
	RecordsChecked  int                 `json:"records_checked"`
	RecordsUpdated  int                 `json:"records_updated"`
	ChangesDetected int                 `json:"changes_detected"`
	ErrorMessage    string              `json:"error_message,omitempty"`
}

// FeedItem is one record extracted from a policy feed
type FeedItem struct {
	Title       string
	Description string
	Link        string
	PublishedAt time.Time
}
