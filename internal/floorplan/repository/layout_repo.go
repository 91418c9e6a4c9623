package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

const maxIDAttempts = 5

// LayoutRepository persists saved layouts in Postgres.
type LayoutRepository struct {
	db *sql.DB
}

func NewLayoutRepository(db *sql.DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

// Create inserts a layout for the given owner. A colliding public id is
// regenerated a few times before giving up.
func (r *LayoutRepository) Create(ctx context.Context, ownerUID, name, description string, layout domain.Layout) (*domain.StoredLayout, error) {
	if ownerUID == "" {
		return nil, fmt.Errorf("owner uid required")
	}
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	payload, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}

	for i := 0; i < maxIDAttempts; i++ {
		publicID, err := domain.NewPublicID()
		if err != nil {
			return nil, err
		}

		const q = `
INSERT INTO layouts (public_id, owner_uid, name, description, variant, width, height, layout)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at;
`
		s := domain.StoredLayout{
			PublicID:    publicID,
			OwnerID:     ownerUID,
			Name:        name,
			Description: description,
			Layout:      layout,
		}
		err = r.db.QueryRowContext(ctx, q, publicID, ownerUID, name, description, layout.Variant,
			layout.Boundaries.Width, layout.Boundaries.Height, payload).
			Scan(&s.CreatedAt, &s.UpdatedAt)
		if err == nil {
			return &s, nil
		}

		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, fmt.Errorf("insert layout: %w", err)
	}

	return nil, fmt.Errorf("failed to generate unique layout id")
}

// GetByPublicID returns a non-deleted layout.
func (r *LayoutRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.StoredLayout, error) {
	const q = `
SELECT public_id, owner_uid, name, description, layout, created_at, updated_at
FROM layouts
WHERE public_id = $1 AND deleted_at IS NULL;
`
	s, err := scanLayout(r.db.QueryRowContext(ctx, q, publicID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLayoutNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByOwner returns the owner's layouts, newest first.
func (r *LayoutRepository) ListByOwner(ctx context.Context, ownerUID string) ([]domain.StoredLayout, error) {
	const q = `
SELECT public_id, owner_uid, name, description, layout, created_at, updated_at
FROM layouts
WHERE owner_uid = $1 AND deleted_at IS NULL
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, ownerUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.StoredLayout, 0, 16)
	for rows.Next() {
		s, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks the owner's layout deleted. It reports false when nothing
// matched.
func (r *LayoutRepository) SoftDelete(ctx context.Context, ownerUID, publicID string) (bool, error) {
	const q = `
UPDATE layouts
SET deleted_at = now(), updated_at = now()
WHERE owner_uid = $1 AND public_id = $2 AND deleted_at IS NULL;
`
	result, err := r.db.ExecContext(ctx, q, ownerUID, publicID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeDeleted permanently removes layouts soft-deleted before the cutoff.
func (r *LayoutRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	const q = `DELETE FROM layouts WHERE deleted_at IS NOT NULL AND deleted_at < $1;`
	result, err := r.db.ExecContext(ctx, q, before)
	if err != nil {
		return 0, fmt.Errorf("purge layouts: %w", err)
	}
	return result.RowsAffected()
}

func (r *LayoutRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayout(row rowScanner) (*domain.StoredLayout, error) {
	var (
		s       domain.StoredLayout
		desc    sql.NullString
		payload []byte
	)
	if err := row.Scan(&s.PublicID, &s.OwnerID, &s.Name, &desc, &payload, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Description = desc.String
	if err := json.Unmarshal(payload, &s.Layout); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", s.PublicID, err)
	}
	return &s, nil
}
