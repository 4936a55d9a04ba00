package domain

import (
	"context"
	"time"
)

// Post is a blog post shown on the public site.
// swagger:model Post
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PostUpdate holds optional changes to a post. Nil fields are left unchanged.
type PostUpdate struct {
	Title     *string
	Slug      *string
	Excerpt   *string
	Content   *string
	Author    *string
	Published *bool
}

// PostRepository defines the interface for post storage.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, publishedOnly bool, params PaginationParams) ([]*Post, int, error)
	Update(ctx context.Context, id string, update PostUpdate, publishedAt *time.Time) (*Post, error)
	Delete(ctx context.Context, id string) error
}

// PostService defines the business logic for blog posts.
type PostService interface {
	CreatePost(ctx context.Context, post *Post) error
	GetPublishedBySlug(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context, publishedOnly bool, params PaginationParams) ([]*Post, int, error)
	UpdatePost(ctx context.Context, postID string, update PostUpdate) (*Post, error)
	DeletePost(ctx context.Context, postID string) error
}
