package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// SyncResult
// ---------------------------------------------------------------------------

// SyncResult summarizes one sync invocation. It is transient: returned to
// the caller for display and recorded on the run history, never treated as
// engine state.
type SyncResult struct {
	Success         bool     `json:"success"`
	ProductsSynced  int      `json:"products_synced"`
	ProductsCreated int      `json:"products_created"`
	ProductsUpdated int      `json:"products_updated"`
	Errors          []string `json:"errors"`
}

// NewSyncResult creates an empty result
func NewSyncResult() *SyncResult {
	return &SyncResult{Errors: make([]string, 0)}
}

// RecordError appends a per-item error. Any recorded error makes the run
// unsuccessful, but already-counted partial progress is kept.
func (r *SyncResult) RecordError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Finalize computes the overall success flag
func (r *SyncResult) Finalize() {
	r.Success = len(r.Errors) == 0
}

// ---------------------------------------------------------------------------
// ItemOutcome
// ---------------------------------------------------------------------------

// ItemOutcomeKind classifies what the reconciler did with one record
type ItemOutcomeKind string

const (
	// ItemCreated means a new product and link were inserted
	ItemCreated ItemOutcomeKind = "created"
	// ItemUpdated means an existing product was changed
	ItemUpdated ItemOutcomeKind = "updated"
	// ItemUnchanged means the stored product already matched the platform
	ItemUnchanged ItemOutcomeKind = "unchanged"
	// ItemSkipped means the record was excluded before any write
	ItemSkipped ItemOutcomeKind = "skipped"
	// ItemFailed means the record could not be written
	ItemFailed ItemOutcomeKind = "error"
)

// ItemOutcome is the per-record result of reconciliation
type ItemOutcome struct {
	Kind ItemOutcomeKind
	// Warning holds a non-fatal problem (e.g. a failed link write after a
	// successful product write); the item still counts as synced.
	Warning string
	// Err is set only for ItemFailed
	Err error
}

// ---------------------------------------------------------------------------
// SyncRun Entity
// ---------------------------------------------------------------------------

// SyncTrigger identifies what started a sync run
type SyncTrigger string

const (
	// SyncTriggerManual is a merchant-initiated run from the dashboard
	SyncTriggerManual SyncTrigger = "manual"
	// SyncTriggerInventory is the reduced inventory-refresh run
	SyncTriggerInventory SyncTrigger = "inventory"
)

// SyncRun is the persisted history record of one sync invocation, kept so the
// dashboard can show "last synced N minutes ago, M errors".
type SyncRun struct {
	ID              uuid.UUID
	StoreID         uuid.UUID
	MerchantID      uuid.UUID
	Platform        PlatformCode
	Trigger         SyncTrigger
	Success         bool
	ProductsSynced  int
	ProductsCreated int
	ProductsUpdated int
	Errors          []string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// NewSyncRun creates a run record for an invocation that is about to start
func NewSyncRun(storeID, merchantID uuid.UUID, platform PlatformCode, trigger SyncTrigger) *SyncRun {
	return &SyncRun{
		ID:         uuid.New(),
		StoreID:    storeID,
		MerchantID: merchantID,
		Platform:   platform,
		Trigger:    trigger,
		Errors:     make([]string, 0),
		StartedAt:  time.Now(),
	}
}

// Complete stamps the run with its result
func (r *SyncRun) Complete(result *SyncResult) {
	r.Success = result.Success
	r.ProductsSynced = result.ProductsSynced
	r.ProductsCreated = result.ProductsCreated
	r.ProductsUpdated = result.ProductsUpdated
	r.Errors = result.Errors
	r.FinishedAt = time.Now()
}

// Duration returns how long the run took
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// SyncRunRepository persists run history
type SyncRunRepository interface {
	// Save persists a completed run
	Save(ctx context.Context, run *SyncRun) error

	// ListByStore returns the most recent runs for a store, newest first
	ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]SyncRun, error)

	// FindLatest returns the most recent run for a store and platform
	FindLatest(ctx context.Context, storeID uuid.UUID, platform PlatformCode) (*SyncRun, error)
}

// ---------------------------------------------------------------------------
// StoreLock
// ---------------------------------------------------------------------------

// StoreLock serializes sync runs per store. Acquire returns
// ErrSyncAlreadyRunning when another run holds the lock; the release func is
// safe to call exactly once after the run finishes.
type StoreLock interface {
	Acquire(ctx context.Context, storeID uuid.UUID) (release func(), err error)
}
