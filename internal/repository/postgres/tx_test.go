package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"clubevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLocker_WithEventLock(t *testing.T) {
	ctx := context.Background()

	t.Run("commits and shares the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM events WHERE id = \$1 FOR UPDATE`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
		mock.ExpectQuery(`SELECT status, COUNT\(\*\)`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("CONFIRMED", 5))
		mock.ExpectCommit()

		repo := NewRegistrationRepository(db)
		var counts domain.RegistrationCounts
		err = NewEventLocker(db).WithEventLock(ctx, "ev-1", func(ctx context.Context) error {
			_, inTx := ctx.Value(txKey{}).(*sql.Tx)
			assert.True(t, inTx)
			var err error
			counts, err = repo.CountByEvent(ctx, "ev-1")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 5, counts.Confirmed)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown event rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WithArgs("missing").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		called := false
		err = NewEventLocker(db).WithEventLock(ctx, "missing", func(ctx context.Context) error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, called)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("callback error rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WithArgs("ev-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = NewEventLocker(db).WithEventLock(ctx, "ev-1", func(ctx context.Context) error {
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

		err = NewEventLocker(db).WithEventLock(ctx, "ev-1", func(ctx context.Context) error { return nil })
		require.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestConn_FallsBackToDB(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Same(t, db, conn(context.Background(), db))
}
