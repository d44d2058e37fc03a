package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Game is a catalog entry managed from the admin panel. Only enabled games
// are eligible for showcase snapshots.
type Game struct {
	ID         string
	Provider   string
	Title      string
	Image      string
	Label      string
	Pattern1   string
	Pattern2   string
	Pattern3   string
	TimeWindow string
	Percent    int
	Hot        bool
	New        bool
	Enabled    bool
	UpdatedAt  time.Time
}

// Snapshot is a denormalized copy of a Game's display fields taken at
// generation time. Rows sharing one CreatedAt form a batch. Snapshots carry
// no reference back to their source game: later edits or deletes never touch
// an already published batch.
type Snapshot struct {
	Provider   string
	Title      string
	Image      string
	Label      string
	Pattern1   string
	Pattern2   string
	Pattern3   string
	TimeWindow string
	Percent    int
	Hot        bool
	New        bool
	CreatedAt  time.Time
}

// Provider is a game category shown as a filter on the landing page.
type Provider struct {
	Key       string
	Name      string
	Image     string
	Enabled   bool
	SortOrder int
}

// Image is an uploaded binary asset served by id.
type Image struct {
	ID          string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
