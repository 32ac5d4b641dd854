package database

import (
	"time"
)

type PolicyUpdateRepository interface {
	HasSeen(sourceURL string) (bool, error)
	InsertIfNew(update PolicyUpdate) (bool, error)
	GetRecent(limit int) ([]PolicyUpdate, error)
	CountUnread() (int, error)
	MarkRead(id string) error
}

type CodeRepository interface {
	GetByCode(code string) (*CodeDefinition, error)
	Insert(def CodeDefinition) error
	Update(def CodeDefinition) error
	TouchVerified(code string, verifiedAt time.Time) error
	GetAll() ([]CodeDefinition, error)
}

type AlertRepository interface {
	Insert(alert Alert) (string, error)
	GetActive(limit int) ([]Alert, error)
	CountActiveBySeverity(severity Severity) (int, error)
	Dismiss(id, dismissedBy string) error
}

type SyncLogRepository interface {
	Insert(entry SyncLogEntry) error
	GetRecent(limit int) ([]SyncLogEntry, error)
	LastSyncedAt() (*time.Time, error)
}
