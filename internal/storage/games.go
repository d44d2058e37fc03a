package storage

import (
	"database/sql"
	"fmt"
	"time"
)

const gameColumns = "id, provider, title, image, label, pattern1, pattern2, pattern3, time_window, percent, is_hot, is_new, enabled, updated_at"

func scanGame(row interface{ Scan(...any) error }) (Game, error) {
	var g Game
	var updatedAt string
	err := row.Scan(&g.ID, &g.Provider, &g.Title, &g.Image, &g.Label,
		&g.Pattern1, &g.Pattern2, &g.Pattern3, &g.TimeWindow,
		&g.Percent, &g.Hot, &g.New, &g.Enabled, &updatedAt)
	if err != nil {
		return Game{}, err
	}
	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return Game{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	g.UpdatedAt = t
	return g, nil
}

// SaveGame inserts a new game.
func (s *Store) SaveGame(g Game) error {
	_, err := s.db.Exec(`
		INSERT INTO games (`+gameColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Provider, g.Title, g.Image, g.Label,
		g.Pattern1, g.Pattern2, g.Pattern3, g.TimeWindow,
		g.Percent, g.Hot, g.New, g.Enabled,
		g.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// UpdateGame overwrites all editable fields of an existing game.
func (s *Store) UpdateGame(g Game) error {
	res, err := s.db.Exec(`
		UPDATE games SET provider = ?, title = ?, image = ?, label = ?,
			pattern1 = ?, pattern2 = ?, pattern3 = ?, time_window = ?,
			percent = ?, is_hot = ?, is_new = ?, enabled = ?, updated_at = ?
		WHERE id = ?`,
		g.Provider, g.Title, g.Image, g.Label,
		g.Pattern1, g.Pattern2, g.Pattern3, g.TimeWindow,
		g.Percent, g.Hot, g.New, g.Enabled,
		g.UpdatedAt.UTC().Format(time.RFC3339), g.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetGame returns a game by id.
func (s *Store) GetGame(id string) (Game, error) {
	row := s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return Game{}, ErrNotFound
	}
	return g, err
}

// DeleteGame removes a game by id.
func (s *Store) DeleteGame(id string) error {
	res, err := s.db.Exec(`DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListGames returns all games, newest first.
func (s *Store) ListGames() ([]Game, error) {
	return s.queryGames(`SELECT ` + gameColumns + ` FROM games ORDER BY updated_at DESC, id`)
}

// ListEnabledGames returns all enabled games in stable id order. This is the
// candidate pool for snapshot generation.
func (s *Store) ListEnabledGames() ([]Game, error) {
	return s.queryGames(`SELECT ` + gameColumns + ` FROM games WHERE enabled = 1 ORDER BY id`)
}

func (s *Store) queryGames(query string, args ...any) ([]Game, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}
