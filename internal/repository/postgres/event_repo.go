package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubevents/internal/domain"
)

const eventColumns = `id, title, description, date, end_date, location, capacity, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var endNull sql.NullTime
	var capNull sql.NullInt64
	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &endNull, &e.Location, &capNull, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if endNull.Valid {
		e.EndDate = &endNull.Time
	}
	if capNull.Valid {
		c := int(capNull.Int64)
		e.Capacity = &c
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, end_date, location, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.EndDate, e.Location, e.Capacity, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetWithRegistrations(ctx context.Context, id string) (*domain.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	e.Registrations = regs
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	where := ""
	order := "date DESC"
	args := []any{}
	if filter.UpcomingAfter != nil {
		where = "WHERE date >= $1"
		order = "date ASC"
		args = append(args, *filter.UpcomingAfter)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM events ` + where
	if err := conn(ctx, r.DB).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, order, n+1, n+2)
	args = append(args, params.PageSize, params.Offset())
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, eventID string, u domain.EventUpdate) (*domain.Event, error) {
	if u.IsEmpty() {
		return r.GetByID(ctx, eventID)
	}
	setClauses := []string{}
	args := []any{}
	n := 1
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Description != nil {
		set("description", *u.Description)
	}
	if u.Date != nil {
		set("date", *u.Date)
	}
	if u.EndDate != nil {
		set("end_date", *u.EndDate)
	}
	if u.Location != nil {
		set("location", *u.Location)
	}
	if u.Capacity != nil {
		set("capacity", *u.Capacity)
	}
	set("updated_at", time.Now())
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
