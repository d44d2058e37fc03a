package storage

import "database/sql"

// SaveProvider upserts a provider by key.
func (s *Store) SaveProvider(p Provider) error {
	_, err := s.db.Exec(`
		INSERT INTO providers (key, name, image, enabled, sort_order)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET name = excluded.name, image = excluded.image,
			enabled = excluded.enabled, sort_order = excluded.sort_order`,
		p.Key, p.Name, p.Image, p.Enabled, p.SortOrder,
	)
	return err
}

// GetProvider returns a provider by key.
func (s *Store) GetProvider(key string) (Provider, error) {
	var p Provider
	err := s.db.QueryRow(`SELECT key, name, image, enabled, sort_order FROM providers WHERE key = ?`, key).
		Scan(&p.Key, &p.Name, &p.Image, &p.Enabled, &p.SortOrder)
	if err == sql.ErrNoRows {
		return Provider{}, ErrNotFound
	}
	return p, err
}

// DeleteProvider removes a provider by key.
func (s *Store) DeleteProvider(key string) error {
	res, err := s.db.Exec(`DELETE FROM providers WHERE key = ?`, key)
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

// ListProviders returns providers in sort order. With enabledOnly set,
// disabled providers are filtered out (public listing).
func (s *Store) ListProviders(enabledOnly bool) ([]Provider, error) {
	query := `SELECT key, name, image, enabled, sort_order FROM providers`
	if enabledOnly {
		query += ` WHERE enabled = 1`
	}
	query += ` ORDER BY sort_order, key`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.Key, &p.Name, &p.Image, &p.Enabled, &p.SortOrder); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
