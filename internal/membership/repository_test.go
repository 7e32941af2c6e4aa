package membership

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return sqlx.NewDb(conn, "sqlmock"), mock
}

var membershipCols = []string{"id", "name", "price_cents", "duration_days", "total_classes", "weekly_limit", "active", "created_at"}

func TestRepository_Create(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewRepository(dbx)

	mock.ExpectQuery(`INSERT INTO memberships .* RETURNING`).
		WithArgs("Mensual", int64(4500), 30, nil, 3).
		WillReturnRows(sqlmock.NewRows(membershipCols).
			AddRow(1, "Mensual", 4500, 30, nil, 3, true, time.Now()))

	m, err := repo.Create(context.Background(), &Membership{
		Name: "Mensual", PriceCents: 4500, DurationDays: intPtr(30), WeeklyLimit: intPtr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, 30, *m.DurationDays)
	assert.Nil(t, m.TotalClasses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT .* FROM memberships WHERE active = TRUE ORDER BY price_cents`).
		WillReturnRows(sqlmock.NewRows(membershipCols).
			AddRow(1, "Mensual", 4500, 30, nil, 3, true, time.Now()))
	mock.ExpectQuery(`SELECT .* FROM memberships ORDER BY price_cents`).
		WillReturnRows(sqlmock.NewRows(membershipCols))

	plans, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	plans, err = repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.NoError(t, mock.ExpectationsWereMet())
}
