package snapshot

import (
	"log/slog"
	"time"

	"github.com/vkoshev/gamehall/internal/storage"
)

// UpdatedAtKey is the settings key holding the human-readable "games last
// updated" label shown on the landing page. Among automated writers only the
// generator touches it.
const UpdatedAtKey = "games_updated_at"

// labelFormat is the display format of the updated-at label.
const labelFormat = "02.01.2006 15:04"

// Status classifies a generation result.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome is the result of one generation run. Storage errors are folded
// into a failed Outcome here and never propagate to callers as raw errors.
type Outcome struct {
	Status Status `json:"status"`
	Count  int    `json:"count,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func skipped(reason string) Outcome { return Outcome{Status: StatusSkipped, Reason: reason} }
func succeeded(count int) Outcome   { return Outcome{Status: StatusSucceeded, Count: count} }
func failed(reason string) Outcome  { return Outcome{Status: StatusFailed, Reason: reason} }

// GeneratorStore is the slice of the storage layer the generator needs.
type GeneratorStore interface {
	ListEnabledGames() ([]storage.Game, error)
	CommitBatch(games []storage.Game, createdAt time.Time, labelKey, label string, retainAfter time.Time) error
}

// Generator samples the enabled pool and commits showcase batches.
type Generator struct {
	store     GeneratorStore
	batchSize int
	retention time.Duration
	logger    *slog.Logger
}

// NewGenerator creates a Generator. batchSize is clamped to at least 1;
// retention <= 0 defaults to 7 days.
func NewGenerator(store GeneratorStore, batchSize int, retention time.Duration, logger *slog.Logger) *Generator {
	if batchSize < 1 {
		batchSize = 1
	}
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		store:     store,
		batchSize: batchSize,
		retention: retention,
		logger:    logger,
	}
}

// Generate produces one new batch: it samples the enabled pool, then in a
// single transaction inserts the batch, refreshes the updated-at label, and
// prunes rows past the retention horizon. Each call appends a fresh batch;
// two calls produce two batches, never one.
func (g *Generator) Generate() Outcome {
	pool, err := g.store.ListEnabledGames()
	if err != nil {
		g.logger.Error("snapshot: listing enabled games", "error", err)
		return failed("storage error")
	}
	if len(pool) == 0 {
		g.logger.Info("snapshot: skipped, empty pool")
		return skipped("empty pool")
	}

	batch := Sample(pool, g.batchSize)

	now := time.Now().UTC()
	label := now.Format(labelFormat)
	retainAfter := now.Add(-g.retention)

	if err := g.store.CommitBatch(batch, now, UpdatedAtKey, label, retainAfter); err != nil {
		g.logger.Error("snapshot: committing batch", "count", len(batch), "error", err)
		return failed("storage error")
	}

	g.logger.Info("snapshot: batch committed", "count", len(batch), "pool", len(pool))
	return succeeded(len(batch))
}
