package database

import (
	"time"
)

type Source string

const (
	SourceCMS          Source = "cms"
	SourceSAMHSA       Source = "samhsa"
	SourceLexisNexis   Source = "lexisnexis"
	SourceComplianceAI Source = "complianceai"
	SourceManual       Source = "manual"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial"
	SyncStatusFailed  SyncStatus = "failed"
)

// PolicyUpdate is one ingested policy item, deduplicated by SourceURL.
// Rows are immutable after creation except for IsRead.
type PolicyUpdate struct {
	ID          string
	Source      Source
	Title       string
	Summary     string
	Category    string
	SourceURL   string
	PublishedAt time.Time
	EffectiveAt *time.Time
	IsRead      bool
	CreatedAt   time.Time
}

// CodeDefinition is one procedure-code registry entry, unique by Code.
type CodeDefinition struct {
	ID             string
	Code           string
	Description    string
	Category       string
	MinDuration    int // minutes
	MaxDuration    int // minutes
	IsActive       bool
	LastVerifiedAt time.Time
	SourceURL      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Alert severity is immutable after creation; only dismissal state changes.
type Alert struct {
	ID            string
	Source        Source
	Severity      Severity
	Category      string
	Title         string
	Description   string
	Jurisdictions []string
	SourceURL     string
	EffectiveAt   *time.Time
	DismissedAt   *time.Time
	DismissedBy   string
	CreatedAt     time.Time
}

// SyncLogEntry is append-only: one row per adapter run, regardless of outcome.
type SyncLogEntry struct {
	ID              string
	Source          Source
	SyncType        string
	Status          SyncStatus
	RecordsChecked  int
	RecordsUpdated  int
	ChangesDetected int
	ErrorMessage    string
	SyncedAt        time.Time
}
