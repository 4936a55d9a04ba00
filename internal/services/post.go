package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"clubevents/internal/domain"
)

const msgPostNotFound = "Post not found"

var (
	slugRegexp   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugStripper = regexp.MustCompile(`[^a-z0-9]+`)
)

type postService struct {
	postRepo       domain.PostRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewPostService(postRepo domain.PostRepository, timeout time.Duration) domain.PostService {
	return &postService{
		postRepo:       postRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// slugify transliterates title to ASCII and joins its alphanumeric runs with hyphens.
func slugify(title string) string {
	return strings.Trim(slugStripper.ReplaceAllString(slug.Make(title), "-"), "-")
}

func mapPostErr(err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewNotFoundError(msgPostNotFound)
	case errors.Is(err, domain.ErrDuplicateSlug):
		return domain.NewBadRequestError(domain.ErrDuplicateSlug, "A post with this slug already exists")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (s *postService) CreatePost(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return domain.NewBadRequestError(domain.ErrInvalidInput, "title is required")
	}
	if post.Slug == "" {
		post.Slug = slugify(post.Title)
	}
	if !slugRegexp.MatchString(post.Slug) {
		return domain.NewBadRequestError(domain.ErrInvalidInput, "slug may only contain lowercase letters, digits and hyphens")
	}

	now := s.now()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.PublishedAt = nil
	if post.Published {
		post.PublishedAt = &now
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return mapPostErr(err, "create post")
	}
	return nil
}

func (s *postService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapPostErr(err, "get post")
	}
	if !post.Published {
		return nil, domain.NewNotFoundError(msgPostNotFound)
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, publishedOnly bool, params domain.PaginationParams) ([]*domain.Post, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	posts, total, err := s.postRepo.List(ctx, publishedOnly, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

// UpdatePost applies update. Publishing a draft stamps PublishedAt; unpublishing keeps the old stamp.
func (s *postService) UpdatePost(ctx context.Context, postID string, update domain.PostUpdate) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, domain.NewBadRequestError(domain.ErrInvalidInput, "title must not be empty")
	}
	if update.Slug != nil && !slugRegexp.MatchString(*update.Slug) {
		return nil, domain.NewBadRequestError(domain.ErrInvalidInput, "slug may only contain lowercase letters, digits and hyphens")
	}

	var publishedAt *time.Time
	if update.Published != nil && *update.Published {
		current, err := s.postRepo.GetByID(ctx, postID)
		if err != nil {
			return nil, mapPostErr(err, "get post")
		}
		if !current.Published {
			now := s.now()
			publishedAt = &now
		}
	}

	post, err := s.postRepo.Update(ctx, postID, update, publishedAt)
	if err != nil {
		return nil, mapPostErr(err, "update post")
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return mapPostErr(err, "delete post")
	}
	return nil
}
