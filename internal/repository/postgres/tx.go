package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clubevents/internal/domain"
)

type txKey struct{}

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx stores tx in ctx so repositories called inside a lock share it.
func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type eventLocker struct {
	DB *sql.DB
}

// NewEventLocker returns an EventLocker that holds a row lock on the event for the
// duration of a transaction.
func NewEventLocker(db *sql.DB) domain.EventLocker {
	return &eventLocker{DB: db}
}

// WithEventLock runs fn inside a transaction after SELECT ... FOR UPDATE on the event row.
// Concurrent callers for the same event queue on the lock, so capacity checks and the
// insert that follows them see a consistent count. Returns domain.ErrNotFound for an unknown event.
func (l *eventLocker) WithEventLock(ctx context.Context, eventID string, fn func(ctx context.Context) error) (err error) {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	if err = fn(withTx(ctx, tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
