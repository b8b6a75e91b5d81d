package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/repository/postgres"
	"github.com/dom/studio-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRUD_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()
	missing := uuid.New()

	t.Run("get", func(t *testing.T) {
		_, err := repos.Video.GetByID(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "video not found")
	})

	t.Run("update never inserts", func(t *testing.T) {
		err := repos.Testimonial.Update(ctx, &domain.Testimonial{ID: missing, ClientName: "x", Content: "y", Rating: 5})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var count int64
		testDB.DB.Model(&domain.Testimonial{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("delete", func(t *testing.T) {
		err := repos.Portfolio.Delete(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "portfolio item not found")
	})
}

func TestPortfolioRepository_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPortfolioRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewPortfolioBuilder().WithCategory(domain.CategoryWeddings).Featured().Build(t, testDB.DB)
	testutil.NewPortfolioBuilder().WithCategory(domain.CategoryWeddings).Build(t, testDB.DB)
	testutil.NewPortfolioBuilder().WithCategory(domain.CategoryEngagement).Featured().Build(t, testDB.DB)

	weddings := domain.CategoryWeddings
	featured := true

	tests := []struct {
		name   string
		filter repository.PortfolioFilter
		want   int
	}{
		{"no filter", repository.PortfolioFilter{}, 3},
		{"category", repository.PortfolioFilter{Category: &weddings}, 2},
		{"featured", repository.PortfolioFilter{Featured: &featured}, 2},
		{"category and featured", repository.PortfolioFilter{Category: &weddings, Featured: &featured}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestBlogRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBlogRepository(testDB.DB)
	ctx := context.Background()

	tips := testutil.NewBlogBuilder().WithSlug("lighting-tips").WithTags("tips", "lighting").Build(t, testDB.DB)
	testutil.NewBlogBuilder().WithSlug("venue-guide").WithTags("venues").Build(t, testDB.DB)
	draft := testutil.NewBlogBuilder().WithSlug("draft-post").WithTags("tips").Draft().Build(t, testDB.DB)

	t.Run("slug lookup", func(t *testing.T) {
		post, err := repo.GetBySlug(ctx, "lighting-tips")
		require.NoError(t, err)
		assert.Equal(t, tips.ID, post.ID)

		_, err = repo.GetBySlug(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("slug exists", func(t *testing.T) {
		exists, err := repo.SlugExists(ctx, "lighting-tips", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.SlugExists(ctx, "lighting-tips", tips.ID)
		require.NoError(t, err)
		assert.False(t, exists, "a post does not collide with itself")

		exists, err = repo.SlugExists(ctx, "fresh", uuid.Nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		post := &domain.BlogPost{ID: uuid.New(), Title: "Again", Slug: "venue-guide", Content: "x", Published: true}
		post.SetTags(nil)
		err := repo.Create(ctx, post)
		var dup *domain.DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "slug", dup.Field)
	})

	t.Run("filters", func(t *testing.T) {
		tests := []struct {
			name   string
			filter repository.BlogFilter
			want   int
		}{
			{"all", repository.BlogFilter{}, 3},
			{"published", repository.BlogFilter{PublishedOnly: true}, 2},
			{"tag", repository.BlogFilter{Tag: "tips"}, 2},
			{"published tag", repository.BlogFilter{PublishedOnly: true, Tag: "tips"}, 1},
			{"unknown tag", repository.BlogFilter{Tag: "nothing"}, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				posts, err := repo.List(ctx, tt.filter)
				require.NoError(t, err)
				assert.Len(t, posts, tt.want)
			})
		}
	})

	t.Run("update publishes draft", func(t *testing.T) {
		draft.Published = true
		require.NoError(t, repo.Update(ctx, draft))

		got, err := repo.GetByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.True(t, got.Published)
		assert.Equal(t, []string{"tips"}, got.TagList())
	})
}

func TestCommentRepository_SetApproved(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCommentRepository(testDB.DB)
	ctx := context.Background()

	pending := testutil.NewCommentBuilder().WithService("Videography").Build(t, testDB.DB)
	testutil.NewCommentBuilder().WithService("Videography").Approved().Build(t, testDB.DB)
	testutil.NewCommentBuilder().WithService("Wedding Photography").Approved().Build(t, testDB.DB)

	approved := true
	list, err := repo.List(ctx, repository.CommentFilter{ServiceName: "Videography", Approved: &approved})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := repo.SetApproved(ctx, pending.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Approved)
	assert.Equal(t, pending.Comment, got.Comment)

	list, err = repo.List(ctx, repository.CommentFilter{ServiceName: "Videography", Approved: &approved})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = repo.SetApproved(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
