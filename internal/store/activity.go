package store

import (
	"context"

	"github.com/onzacore/distri-api/internal/models"
)

// CreateActivityEntry appends one row to the audit trail
func (s *Store) CreateActivityEntry(ctx context.Context, e *models.ActivityEntry) error {
	query := `
		INSERT INTO actividad (usuario, accion, detalle)
		VALUES ($1, $2, $3)
		RETURNING id, fecha`

	return s.db.GetContext(ctx, e, query, e.UserName, e.Action, e.Detail)
}

// GetActivity retrieves the most recent activity entries, newest first
func (s *Store) GetActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	var entries []models.ActivityEntry
	err := s.db.SelectContext(ctx, &entries,
		"SELECT * FROM actividad ORDER BY fecha DESC LIMIT $1", limit)
	return entries, err
}
