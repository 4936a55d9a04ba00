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

const postColumns = `id, title, slug, excerpt, content, author, published, published_at, created_at, updated_at`

type postRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) domain.PostRepository {
	return &postRepository{DB: db}
}

func scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{}
	var publishedAt sql.NullTime
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Author, &p.Published, &publishedAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	return p, nil
}

func (r *postRepository) Create(ctx context.Context, p *domain.Post) error {
	query := `
		INSERT INTO posts (title, slug, excerpt, content, author, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Author, p.Published, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return r.getOne(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.getOne(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
}

func (r *postRepository) getOne(ctx context.Context, query, arg string) (*domain.Post, error) {
	p, err := scanPost(conn(ctx, r.DB).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postRepository) List(ctx context.Context, publishedOnly bool, params domain.PaginationParams) ([]*domain.Post, int, error) {
	where := ""
	if publishedOnly {
		where = "WHERE published = TRUE"
	}
	var total int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM posts `+where).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts
		%s
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT $1 OFFSET $2
	`, postColumns, where)
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	posts := make([]*domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// Update applies u. publishedAt, when non-nil, is written alongside a publish toggle.
func (r *postRepository) Update(ctx context.Context, id string, u domain.PostUpdate, publishedAt *time.Time) (*domain.Post, error) {
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
	if u.Slug != nil {
		set("slug", *u.Slug)
	}
	if u.Excerpt != nil {
		set("excerpt", *u.Excerpt)
	}
	if u.Content != nil {
		set("content", *u.Content)
	}
	if u.Author != nil {
		set("author", *u.Author)
	}
	if u.Published != nil {
		set("published", *u.Published)
	}
	if publishedAt != nil {
		set("published_at", *publishedAt)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	set("updated_at", time.Now())
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE posts SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, postColumns)
	p, err := scanPost(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, err
	}
	return p, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
