package snapshot

import (
	"log/slog"
	"time"

	"github.com/vkoshev/gamehall/internal/storage"
)

// ReaderStore is the slice of the storage layer the reader needs.
type ReaderStore interface {
	RecentSnapshots(since time.Time, limit int) ([]storage.Snapshot, error)
}

// BatchRunner triggers a generation; satisfied by *Generator.
type BatchRunner interface {
	Generate() Outcome
}

// Reader serves the freshest unexpired batch to public clients. When no
// batch exists inside the freshness window it regenerates synchronously
// before responding, so a cache-miss read pays the cost of one generation.
type Reader struct {
	store     ReaderStore
	runner    BatchRunner
	batchSize int
	freshness time.Duration
	logger    *slog.Logger
}

// NewReader creates a Reader. batchSize is clamped to at least 1;
// freshness <= 0 defaults to 2 hours.
func NewReader(store ReaderStore, runner BatchRunner, batchSize int, freshness time.Duration, logger *slog.Logger) *Reader {
	if batchSize < 1 {
		batchSize = 1
	}
	if freshness <= 0 {
		freshness = 2 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		store:     store,
		runner:    runner,
		batchSize: batchSize,
		freshness: freshness,
		logger:    logger,
	}
}

// Current returns the freshest batch, never an error: storage failures and
// an empty pool both degrade to an empty slice. Two concurrent cache-miss
// calls may both regenerate; the worst case is one redundant batch, which
// retention pruning eventually removes.
func (r *Reader) Current() []storage.Snapshot {
	since := time.Now().UTC().Add(-r.freshness)
	rows, err := r.store.RecentSnapshots(since, r.batchSize)
	if err != nil {
		r.logger.Error("snapshot: querying fresh batch", "error", err)
	}
	if len(rows) > 0 {
		return rows
	}

	outcome := r.runner.Generate()
	if outcome.Status == StatusFailed {
		r.logger.Warn("snapshot: fallback generation failed", "reason", outcome.Reason)
	}

	// The just-created batch is necessarily fresh, so re-query without the
	// window. Still empty when the pool is empty.
	rows, err = r.store.RecentSnapshots(time.Time{}, r.batchSize)
	if err != nil {
		r.logger.Error("snapshot: querying after regeneration", "error", err)
		return []storage.Snapshot{}
	}
	if rows == nil {
		rows = []storage.Snapshot{}
	}
	return rows
}
