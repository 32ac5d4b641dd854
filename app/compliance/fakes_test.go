package compliance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// MockPolicyRepository implements database.PolicyUpdateRepository in memory,
// keyed by source URL like the real table's unique constraint.
type MockPolicyRepository struct {
	mu      sync.Mutex
	updates map[string]database.PolicyUpdate
	err     error
}

var _ database.PolicyUpdateRepository = (*MockPolicyRepository)(nil)

func NewMockPolicyRepository() *MockPolicyRepository {
	return &MockPolicyRepository{updates: make(map[string]database.PolicyUpdate)}
}

func (m *MockPolicyRepository) HasSeen(sourceURL string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.updates[sourceURL]
	return ok, nil
}

func (m *MockPolicyRepository) InsertIfNew(update database.PolicyUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.updates[update.SourceURL]; ok {
		return false, nil
	}
	m.updates[update.SourceURL] = update
	return true, nil
}

func (m *MockPolicyRepository) GetRecent(limit int) ([]database.PolicyUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var updates []database.PolicyUpdate
	for _, u := range m.updates {
		updates = append(updates, u)
	}
	return updates, nil
}

func (m *MockPolicyRepository) CountUnread() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, u := range m.updates {
		if !u.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *MockPolicyRepository) MarkRead(id string) error { return nil }

func (m *MockPolicyRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.updates)
}

// MockCodeRepository implements database.CodeRepository in memory.
type MockCodeRepository struct {
	mu    sync.Mutex
	codes map[string]database.CodeDefinition
}

var _ database.CodeRepository = (*MockCodeRepository)(nil)

func NewMockCodeRepository() *MockCodeRepository {
	return &MockCodeRepository{codes: make(map[string]database.CodeDefinition)}
}

func (m *MockCodeRepository) GetByCode(code string) (*database.CodeDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	def, ok := m.codes[code]
	if !ok {
		return nil, nil
	}
	return &def, nil
}

func (m *MockCodeRepository) Insert(def database.CodeDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.codes[def.Code]; !ok {
		m.codes[def.Code] = def
	}
	return nil
}

func (m *MockCodeRepository) Update(def database.CodeDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[def.Code] = def
	return nil
}

func (m *MockCodeRepository) TouchVerified(code string, verifiedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	def, ok := m.codes[code]
	if ok {
		def.LastVerifiedAt = verifiedAt
		m.codes[code] = def
	}
	return nil
}

func (m *MockCodeRepository) GetAll() ([]database.CodeDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var defs []database.CodeDefinition
	for _, def := range m.codes {
		defs = append(defs, def)
	}
	return defs, nil
}

// MockAlertRepository records created alerts.
type MockAlertRepository struct {
	mu      sync.Mutex
	alerts  []database.Alert
	err     error
	nextID  int
}

var _ database.AlertRepository = (*MockAlertRepository)(nil)

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{}
}

func (m *MockAlertRepository) Insert(alert database.Alert) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.nextID++
	alert.ID = fmt.Sprintf("alert-%d", m.nextID)
	m.alerts = append(m.alerts, alert)
	return alert.ID, nil
}

func (m *MockAlertRepository) GetActive(limit int) ([]database.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var active []database.Alert
	for _, a := range m.alerts {
		if a.DismissedAt == nil {
			active = append(active, a)
		}
	}
	return active, nil
}

func (m *MockAlertRepository) CountActiveBySeverity(severity database.Severity) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, a := range m.alerts {
		if a.DismissedAt == nil && a.Severity == severity {
			count++
		}
	}
	return count, nil
}

func (m *MockAlertRepository) Dismiss(id, dismissedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for i := range m.alerts {
		if m.alerts[i].ID == id && m.alerts[i].DismissedAt == nil {
			m.alerts[i].DismissedAt = &now
			m.alerts[i].DismissedBy = dismissedBy
		}
	}
	return nil
}

func (m *MockAlertRepository) Alerts() []database.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]database.Alert(nil), m.alerts...)
}

// MockSyncLogRepository records appended sync log entries.
type MockSyncLogRepository struct {
	mu      sync.Mutex
	entries []database.SyncLogEntry
	err     error
}

var _ database.SyncLogRepository = (*MockSyncLogRepository)(nil)

func NewMockSyncLogRepository() *MockSyncLogRepository {
	return &MockSyncLogRepository{}
}

func (m *MockSyncLogRepository) Insert(entry database.SyncLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockSyncLogRepository) GetRecent(limit int) ([]database.SyncLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]database.SyncLogEntry(nil), m.entries...), nil
}

func (m *MockSyncLogRepository) LastSyncedAt() (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		return nil, nil
	}
	last := m.entries[len(m.entries)-1].SyncedAt
	return &last, nil
}

func (m *MockSyncLogRepository) Entries() []database.SyncLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]database.SyncLogEntry(nil), m.entries...)
}

// MockNotifier records notifications and can simulate sink failures.
type MockNotifier struct {
	mu       sync.Mutex
	messages []string
	fail     bool
}

var _ Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("sink unavailable")
	}
	m.messages = append(m.messages, title)
	return nil
}

func (m *MockNotifier) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// MockPinger simulates store reachability.
type MockPinger struct {
	err error
}

func (m *MockPinger) Ping() error { return m.err }

// MockAdapter implements Adapter with scripted behavior.
type MockAdapter struct {
	name    string
	source  database.Source
	result  SyncResult
	panics  bool
	ran     int
	mu      sync.Mutex
}

var _ Adapter = (*MockAdapter)(nil)

func (m *MockAdapter) Name() string            { return m.name }
func (m *MockAdapter) Source() database.Source { return m.source }
func (m *MockAdapter) SyncType() string        { return SyncTypePolicyFeed }

func (m *MockAdapter) Run(ctx context.Context) SyncResult {
	m.mu.Lock()
	m.ran++
	m.mu.Unlock()
	if m.panics {
		panic("unexpected adapter failure")
	}
	return m.result
}

func (m *MockAdapter) RunCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ran
}
