package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"clubevents/internal/domain"
)

const registrationColumns = `id, event_id, name, email, phone, organization, dietary_requirements, special_requirements, status, created_at, updated_at`

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = pq.ErrorCode("23505")

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var phone, org, dietary, special sql.NullString
	var status string
	if err := row.Scan(
		&reg.ID, &reg.EventID, &reg.Name, &reg.Email, &phone, &org, &dietary, &special,
		&status, &reg.CreatedAt, &reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	reg.Phone = nullStringPtr(phone)
	reg.Organization = nullStringPtr(org)
	reg.DietaryRequirements = nullStringPtr(dietary)
	reg.SpecialRequirements = nullStringPtr(special)
	reg.Status = domain.RegistrationStatus(status)
	return reg, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Create inserts the registration. The (event_id, email) unique constraint backs up the
// service-level duplicate check; a violation is reported as domain.ErrAlreadyRegistered.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, name, email, phone, organization, dietary_requirements, special_requirements, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		reg.EventID, reg.Name, reg.Email, reg.Phone, reg.Organization, reg.DietaryRequirements,
		reg.SpecialRequirements, string(reg.Status), reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1 AND email = $2
	`
	reg, err := scanRegistration(conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string, status *domain.RegistrationStatus, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	where := "WHERE event_id = $1"
	args := []any{eventID}
	if status != nil {
		where += " AND status = $2"
		args = append(args, string(*status))
	}

	var total int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`
		SELECT %s
		FROM registrations
		%s
		ORDER BY created_at ASC
		LIMIT $%d OFFSET $%d
	`, registrationColumns, where, n+1, n+2)
	args = append(args, params.PageSize, params.Offset())
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, total, rows.Err()
}

func addCount(c *domain.RegistrationCounts, status string, n int) {
	switch domain.RegistrationStatus(status) {
	case domain.RegistrationConfirmed:
		c.Confirmed += n
	case domain.RegistrationWaitlist:
		c.Waitlisted += n
	case domain.RegistrationCancelled:
		c.Cancelled += n
	}
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID string) (domain.RegistrationCounts, error) {
	query := `
		SELECT status, COUNT(*)
		FROM registrations
		WHERE event_id = $1
		GROUP BY status
	`
	var counts domain.RegistrationCounts
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return counts, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return counts, err
		}
		addCount(&counts, status, n)
	}
	return counts, rows.Err()
}

func (r *registrationRepository) CountByEvents(ctx context.Context, eventIDs []string) (map[string]domain.RegistrationCounts, error) {
	out := make(map[string]domain.RegistrationCounts, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT event_id, status, COUNT(*)
		FROM registrations
		WHERE event_id = ANY($1)
		GROUP BY event_id, status
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID, status string
		var n int
		if err := rows.Scan(&eventID, &status, &n); err != nil {
			return nil, err
		}
		c := out[eventID]
		addCount(&c, status, n)
		out[eventID] = c
	}
	return out, rows.Err()
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) (*domain.Registration, error) {
	query := `
		UPDATE registrations SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + registrationColumns
	reg, err := scanRegistration(conn(ctx, r.DB).QueryRowContext(ctx, query, string(status), time.Now(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
