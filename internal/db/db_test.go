package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "athletes_pin_key"}

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "athletes_pin_key"))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", err), "athletes_pin_key"))
	assert.False(t, IsUniqueViolation(err, "other_key"))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(sql.ErrNoRows))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestWithTx(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	dbx := sqlx.NewDb(conn, "sqlmock")

	t.Run("commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE athletes").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := WithTx(context.Background(), dbx, func(tx *sqlx.Tx) error {
			_, err := tx.Exec("UPDATE athletes SET status = 'ACTIVE'")
			return err
		})
		require.NoError(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := WithTx(context.Background(), dbx, func(tx *sqlx.Tx) error {
			return errors.New("boom")
		})
		require.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	dbx := sqlx.NewDb(conn, "sqlmock")

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("1234").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := Exists(context.Background(), dbx, `SELECT EXISTS(SELECT 1 FROM athletes WHERE pin = $1)`, "1234")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
