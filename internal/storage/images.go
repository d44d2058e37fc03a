package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SaveImage stores an uploaded image blob.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`
		INSERT INTO images (id, content_type, data, created_at)
		VALUES (?, ?, ?, ?)`,
		img.ID, img.ContentType, img.Data,
		img.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetImage returns an image by id.
func (s *Store) GetImage(id string) (Image, error) {
	var img Image
	var created string
	err := s.db.QueryRow(`SELECT id, content_type, data, created_at FROM images WHERE id = ?`, id).
		Scan(&img.ID, &img.ContentType, &img.Data, &created)
	if err == sql.ErrNoRows {
		return Image{}, ErrNotFound
	}
	if err != nil {
		return Image{}, err
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return Image{}, fmt.Errorf("parsing created_at: %w", err)
	}
	img.CreatedAt = t
	return img, nil
}

// DeleteImage removes an image by id.
func (s *Store) DeleteImage(id string) error {
	res, err := s.db.Exec(`DELETE FROM images WHERE id = ?`, id)
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
