package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

const layoutJSON = `{"boundaries":{"width":20,"height":10},"rooms":[{"name":"Kitchen","x1":0,"y1":0,"x2":5,"y2":4,"area":20}],"variant":"zoned-v2"}`

var layoutColumns = []string{"public_id", "owner_uid", "name", "description", "layout", "created_at", "updated_at"}

func setupLayoutRepo(t *testing.T) (*LayoutRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLayoutRepository(db), mock
}

func sampleLayout() domain.Layout {
	return domain.Layout{
		Boundaries: domain.Boundaries{Width: 20, Height: 10},
		Rooms:      []domain.Room{{Name: "Kitchen", Rect: domain.Rect{X2: 5, Y2: 4}, Area: 20}},
		Variant:    domain.VariantZoned,
	}
}

func TestLayoutRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts layout", func(t *testing.T) {
		repo, mock := setupLayoutRepo(t)
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO layouts`).
			WithArgs(sqlmock.AnyArg(), "uid-1", "Home", "two storey", "zoned-v2", 20.0, 10.0, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		s, err := repo.Create(ctx, "uid-1", "Home", "two storey", sampleLayout())
		require.NoError(t, err)
		assert.Regexp(t, `^layout-\d{5}-\d{4}$`, s.PublicID)
		assert.Equal(t, "uid-1", s.OwnerID)
		assert.Equal(t, now, s.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries on duplicate public id", func(t *testing.T) {
		repo, mock := setupLayoutRepo(t)
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO layouts`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectQuery(`INSERT INTO layouts`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		_, err := repo.Create(ctx, "uid-1", "Home", "", sampleLayout())
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		repo, mock := setupLayoutRepo(t)
		for i := 0; i < maxIDAttempts; i++ {
			mock.ExpectQuery(`INSERT INTO layouts`).WillReturnError(&pq.Error{Code: "23505"})
		}

		_, err := repo.Create(ctx, "uid-1", "Home", "", sampleLayout())
		assert.EqualError(t, err, "failed to generate unique layout id")
	})

	t.Run("requires owner and name", func(t *testing.T) {
		repo, _ := setupLayoutRepo(t)

		_, err := repo.Create(ctx, "", "Home", "", sampleLayout())
		assert.Error(t, err)
		_, err = repo.Create(ctx, "uid-1", "", "", sampleLayout())
		assert.Error(t, err)
	})
}

func TestLayoutRepository_GetByPublicID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := setupLayoutRepo(t)
		now := time.Now()
		mock.ExpectQuery(`SELECT public_id, owner_uid, name, description, layout`).
			WithArgs("layout-12345-6789").
			WillReturnRows(sqlmock.NewRows(layoutColumns).
				AddRow("layout-12345-6789", "uid-1", "Home", nil, []byte(layoutJSON), now, now))

		s, err := repo.GetByPublicID(ctx, "layout-12345-6789")
		require.NoError(t, err)
		assert.Equal(t, "Home", s.Name)
		assert.Empty(t, s.Description)
		assert.Equal(t, sampleLayout(), s.Layout)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupLayoutRepo(t)
		mock.ExpectQuery(`SELECT public_id`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByPublicID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound)
	})
}

func TestLayoutRepository_ListByOwner(t *testing.T) {
	repo, mock := setupLayoutRepo(t)
	newer, older := time.Now(), time.Now().Add(-time.Hour)

	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs("uid-1").
		WillReturnRows(sqlmock.NewRows(layoutColumns).
			AddRow("layout-22222-2222", "uid-1", "B", "second", []byte(layoutJSON), newer, newer).
			AddRow("layout-11111-1111", "uid-1", "A", nil, []byte(layoutJSON), older, older))

	out, err := repo.ListByOwner(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "layout-22222-2222", out[0].PublicID)
	assert.Equal(t, "second", out[0].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupLayoutRepo(t)

	mock.ExpectExec(`UPDATE layouts`).WithArgs("uid-1", "layout-11111-1111").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE layouts`).WithArgs("uid-2", "layout-11111-1111").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.SoftDelete(ctx, "uid-1", "layout-11111-1111")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SoftDelete(ctx, "uid-2", "layout-11111-1111")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutRepository_PurgeDeleted(t *testing.T) {
	repo, mock := setupLayoutRepo(t)
	cutoff := time.Now().Add(-30 * 24 * time.Hour)

	mock.ExpectExec(`DELETE FROM layouts`).WithArgs(cutoff).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.PurgeDeleted(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
