package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// Pinger reports whether the persistent store is reachable.
type Pinger interface {
	Ping() error
}

type registeredAdapter struct {
	adapter Adapter
	enabled func() bool // nil means always enabled
}

// Orchestrator runs all enabled adapters sequentially and persists one sync
// log entry per adapter run. Sequential execution is deliberate: it keeps
// failure isolation and log ordering simple.
type Orchestrator struct {
	mu          sync.Mutex
	store       Pinger
	syncLogRepo database.SyncLogRepository
	adapters    []registeredAdapter
	timeout     time.Duration
}

func NewOrchestrator(store Pinger, syncLogRepo database.SyncLogRepository, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		store:       store,
		syncLogRepo: syncLogRepo,
		timeout:     timeout,
	}
}

// Register adds an always-on adapter.
func (o *Orchestrator) Register(adapter Adapter) {
	o.adapters = append(o.adapters, registeredAdapter{adapter: adapter})
}

// RegisterConditional adds an adapter gated by the enabled check, which is
// re-evaluated on every run.
func (o *Orchestrator) RegisterConditional(adapter Adapter, enabled func() bool) {
	o.adapters = append(o.adapters, registeredAdapter{adapter: adapter, enabled: enabled})
}

// RunFull executes every enabled adapter and returns one result per attempted
// adapter. It never returns an error: adapter failures are carried in the
// Status field. Overlapping invocations (manual trigger vs. daily timer) are
// serialized by the mutex.
func (o *Orchestrator) RunFull(ctx context.Context) []SyncResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	startedAt := time.Now()
	slog.Info("Compliance sync run starting")

	attempted := make([]registeredAdapter, 0, len(o.adapters))
	for _, reg := range o.adapters {
		if reg.enabled != nil && !reg.enabled() {
			slog.Debug("Adapter disabled, skipping", "adapter", reg.adapter.Name())
			continue
		}
		attempted = append(attempted, reg)
	}

	results := make([]SyncResult, 0, len(attempted))

	// Fail fast when the store is unreachable: no adapter should spend
	// network I/O on fetches it cannot persist.
	if err := o.store.Ping(); err != nil {
		slog.Error("Store unavailable, skipping all adapters", "error", err)
		for _, reg := range attempted {
			result := failedResult(reg.adapter.Source(), reg.adapter.SyncType(), "store unavailable")
			results = append(results, result)
			o.logResult(result)
		}
		return results
	}

	for _, reg := range attempted {
		result := o.runAdapter(ctx, reg.adapter)
		results = append(results, result)
		o.logResult(result)
	}

	slog.Info("Compliance sync run finished", "adapters", len(results), "duration", time.Since(startedAt))

	return results
}

func (o *Orchestrator) runAdapter(ctx context.Context, adapter Adapter) (result SyncResult) {
	adapterCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	// One misbehaving adapter must not take down the run.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Adapter panicked", "adapter", adapter.Name(), "panic", r)
			result = failedResult(adapter.Source(), adapter.SyncType(), fmt.Sprintf("adapter panic: %v", r))
		}
	}()

	startedAt := time.Now()
	result = adapter.Run(adapterCtx)

	slog.Info("Adapter run completed",
		"adapter", adapter.Name(),
		"status", result.Status,
		"checked", result.RecordsChecked,
		"updated", result.RecordsUpdated,
		"duration", time.Since(startedAt))

	return result
}

// logResult writes the mandatory sync log row. A log-write failure is itself
// logged but does not stop the remaining adapters.
func (o *Orchestrator) logResult(result SyncResult) {
	err := o.syncLogRepo.Insert(database.SyncLogEntry{
		Source:          result.Source,
		SyncType:        result.SyncType,
		Status:          result.Status,
		RecordsChecked:  result.RecordsChecked,
		RecordsUpdated:  result.RecordsUpdated,
		ChangesDetected: result.ChangesDetected,
		ErrorMessage:    result.ErrorMessage,
		SyncedAt:        time.Now().UTC(),
	})
	if err != nil {
		slog.Error("Failed to write sync log entry", "source", result.Source, "sync_type", result.SyncType, "error", err)
	}
}
