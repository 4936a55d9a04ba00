package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"clubevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePostRepo is an in-memory PostRepository for tests.
type fakePostRepo struct {
	byID            map[string]*domain.Post
	nextID          int
	lastPublishedAt *time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{byID: make(map[string]*domain.Post), nextID: 1}
}

func (f *fakePostRepo) Create(ctx context.Context, p *domain.Post) error {
	for _, existing := range f.byID {
		if existing.Slug == p.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	p.ID = "post-" + string(rune('0'+f.nextID))
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePostRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	for _, p := range f.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePostRepo) List(ctx context.Context, publishedOnly bool, params domain.PaginationParams) ([]*domain.Post, int, error) {
	var out []*domain.Post
	for _, p := range f.byID {
		if !publishedOnly || p.Published {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (f *fakePostRepo) Update(ctx context.Context, id string, u domain.PostUpdate, publishedAt *time.Time) (*domain.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.lastPublishedAt = publishedAt
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Published != nil {
		p.Published = *u.Published
	}
	if publishedAt != nil {
		p.PublishedAt = publishedAt
	}
	return p, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestPostService(repo *fakePostRepo) *postService {
	svc := NewPostService(repo, time.Second).(*postService)
	svc.now = func() time.Time { return svcNow }
	return svc
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello, World!":            "hello-world",
		"  Diffusion Models 101  ": "diffusion-models-101",
		"GPT--4 & friends":         "gpt-4-and-friends",
		"Agents: a survey":         "agents-a-survey",
		"snake_case talk":          "snake-case-talk",
		"Café Night":               "cafe-night",
		"Über AI":                  "uber-ai",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), in)
	}

	t.Run("non-latin titles are transliterated", func(t *testing.T) {
		got := slugify("東京 Meetup")
		assert.Regexp(t, slugRegexp, got)
		assert.True(t, strings.HasSuffix(got, "-meetup"), got)
	})
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("draft gets a slug and no publish date", func(t *testing.T) {
		svc := newTestPostService(newFakePostRepo())
		p := &domain.Post{Title: "Our First Hackathon", Content: "..."}
		require.NoError(t, svc.CreatePost(ctx, p))
		assert.Equal(t, "our-first-hackathon", p.Slug)
		assert.Nil(t, p.PublishedAt)
	})

	t.Run("published post is stamped", func(t *testing.T) {
		svc := newTestPostService(newFakePostRepo())
		p := &domain.Post{Title: "Recap", Published: true}
		require.NoError(t, svc.CreatePost(ctx, p))
		require.NotNil(t, p.PublishedAt)
		assert.Equal(t, svcNow, *p.PublishedAt)
	})

	t.Run("invalid slug", func(t *testing.T) {
		svc := newTestPostService(newFakePostRepo())
		err := svc.CreatePost(ctx, &domain.Post{Title: "Recap", Slug: "Bad Slug"})
		requireDomainError(t, err, http.StatusBadRequest, "slug may only contain lowercase letters, digits and hyphens")
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc := newTestPostService(newFakePostRepo())
		require.NoError(t, svc.CreatePost(ctx, &domain.Post{Title: "Recap"}))
		err := svc.CreatePost(ctx, &domain.Post{Title: "Recap"})
		requireDomainError(t, err, http.StatusBadRequest, "A post with this slug already exists")
	})
}

func TestPostService_GetPublishedBySlug(t *testing.T) {
	ctx := context.Background()
	repo := newFakePostRepo()
	svc := newTestPostService(repo)
	require.NoError(t, svc.CreatePost(ctx, &domain.Post{Title: "Live", Published: true}))
	require.NoError(t, svc.CreatePost(ctx, &domain.Post{Title: "Draft"}))

	p, err := svc.GetPublishedBySlug(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "Live", p.Title)

	_, err = svc.GetPublishedBySlug(ctx, "draft")
	requireDomainError(t, err, http.StatusNotFound, "Post not found")

	_, err = svc.GetPublishedBySlug(ctx, "nope")
	requireDomainError(t, err, http.StatusNotFound, "Post not found")

	posts, total, err := svc.ListPosts(ctx, true, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, posts, 1)
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()
	repo := newFakePostRepo()
	svc := newTestPostService(repo)
	draft := &domain.Post{Title: "Draft"}
	require.NoError(t, svc.CreatePost(ctx, draft))

	publish := true
	p, err := svc.UpdatePost(ctx, draft.ID, domain.PostUpdate{Published: &publish})
	require.NoError(t, err)
	assert.True(t, p.Published)
	require.NotNil(t, repo.lastPublishedAt)
	assert.Equal(t, svcNow, *repo.lastPublishedAt)

	// republishing keeps the original stamp
	_, err = svc.UpdatePost(ctx, draft.ID, domain.PostUpdate{Published: &publish})
	require.NoError(t, err)
	assert.Nil(t, repo.lastPublishedAt)

	blank := ""
	_, err = svc.UpdatePost(ctx, draft.ID, domain.PostUpdate{Title: &blank})
	requireDomainError(t, err, http.StatusBadRequest, "title must not be empty")

	_, err = svc.UpdatePost(ctx, "missing", domain.PostUpdate{Published: &publish})
	requireDomainError(t, err, http.StatusNotFound, "Post not found")

	require.NoError(t, svc.DeletePost(ctx, draft.ID))
	requireDomainError(t, svc.DeletePost(ctx, draft.ID), http.StatusNotFound, "Post not found")
}
