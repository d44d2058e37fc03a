package storage

import (
	"fmt"
	"time"
)

const snapshotColumns = "provider, title, image, label, pattern1, pattern2, pattern3, time_window, percent, is_hot, is_new, created_at"

// CommitBatch writes one showcase batch in a single transaction: a snapshot
// row per game (all sharing createdAt), an upsert of the updated-at label
// setting, and a prune of snapshot rows created before retainAfter. Either
// all three take effect or none do.
func (s *Store) CommitBatch(games []Game, createdAt time.Time, labelKey, label string, retainAfter time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch transaction: %w", err)
	}
	defer tx.Rollback()

	created := createdAt.UTC().Format(time.RFC3339)
	for _, g := range games {
		if _, err := tx.Exec(`
			INSERT INTO snapshots (`+snapshotColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.Provider, g.Title, g.Image, g.Label,
			g.Pattern1, g.Pattern2, g.Pattern3, g.TimeWindow,
			g.Percent, g.Hot, g.New, created,
		); err != nil {
			return fmt.Errorf("inserting snapshot row: %w", err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		labelKey, label, created,
	); err != nil {
		return fmt.Errorf("updating label setting: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM snapshots WHERE created_at < ?`,
		retainAfter.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("pruning old snapshots: %w", err)
	}

	return tx.Commit()
}

// RecentSnapshots returns up to limit snapshot rows created at or after
// since, newest first. A zero since disables the window and returns the most
// recent rows regardless of age.
func (s *Store) RecentSnapshots(since time.Time, limit int) ([]Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots`
	args := []any{}
	if !since.IsZero() {
		query += ` WHERE created_at >= ?`
		args = append(args, since.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Snapshot
	for rows.Next() {
		var snap Snapshot
		var created string
		if err := rows.Scan(&snap.Provider, &snap.Title, &snap.Image, &snap.Label,
			&snap.Pattern1, &snap.Pattern2, &snap.Pattern3, &snap.TimeWindow,
			&snap.Percent, &snap.Hot, &snap.New, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		snap.CreatedAt = t
		results = append(results, snap)
	}
	return results, rows.Err()
}

// CountSnapshots returns the total number of snapshot rows. Used by tests
// and the status command.
func (s *Store) CountSnapshots() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}
