package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/media"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/repository/postgres"
	"github.com/dom/studio-api/internal/service"
	"github.com/dom/studio-api/internal/testutil"
	"github.com/dom/studio-api/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type contentFixture struct {
	db       *testutil.TestDB
	services *service.Services
	store    *media.Store
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	cfg := testutil.TestConfig()

	tokens, err := token.NewService(cfg.JWTSecret, cfg.JWTExpiration)
	require.NoError(t, err)
	store, err := media.NewStore(t.TempDir(), cfg.UploadURLPrefix, media.NewThumbnailer(cfg.ThumbnailSize))
	require.NoError(t, err)

	return &contentFixture{
		db:       testDB,
		services: service.NewServices(postgres.NewRepositories(testDB.DB), tokens, store),
		store:    store,
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "expected validation error, got %v", err)
	names := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		names[i] = f.Field
	}
	return names
}

func TestBlogService_Slugs(t *testing.T) {
	f := newContentFixture(t)
	blogs := f.services.Blog
	ctx := context.Background()
	author := &domain.Admin{Username: "rsadmin"}

	first, err := blogs.Create(ctx, author, service.BlogInput{
		Title:   ptr("Our Favourite Venues!"),
		Content: ptr("Some **bold** picks."),
	})
	require.NoError(t, err)
	assert.Equal(t, "our-favourite-venues", first.Slug)
	assert.Equal(t, "rsadmin", first.Author)
	assert.True(t, first.Published)
	assert.Contains(t, first.ContentHTML, "<strong>bold</strong>")
	assert.Equal(t, "Some bold picks.", first.Excerpt)

	second, err := blogs.Create(ctx, author, service.BlogInput{
		Title:   ptr("Our favourite venues"),
		Content: ptr("Again."),
	})
	require.NoError(t, err)
	assert.Equal(t, "our-favourite-venues-2", second.Slug)

	t.Run("update without title change keeps slug", func(t *testing.T) {
		updated, err := blogs.Update(ctx, second.ID, service.BlogInput{Content: ptr("Changed.")})
		require.NoError(t, err)
		assert.Equal(t, "our-favourite-venues-2", updated.Slug)
		assert.Contains(t, updated.ContentHTML, "Changed.")
	})

	t.Run("retitle reslugs", func(t *testing.T) {
		updated, err := blogs.Update(ctx, second.ID, service.BlogInput{Title: ptr("Spring Weddings")})
		require.NoError(t, err)
		assert.Equal(t, "spring-weddings", updated.Slug)
	})

	t.Run("title without letters is rejected", func(t *testing.T) {
		_, err := blogs.Create(ctx, author, service.BlogInput{Title: ptr("!!!"), Content: ptr("x")})
		assert.Equal(t, []string{"title"}, fieldNames(t, err))
	})
}

func TestBlogService_Drafts(t *testing.T) {
	f := newContentFixture(t)
	blogs := f.services.Blog
	ctx := context.Background()

	draft, err := blogs.Create(ctx, nil, service.BlogInput{
		Title:     ptr("Work in progress"),
		Content:   ptr("Not yet."),
		Published: ptr(false),
		Tags:      ptr([]string{" Tips ", "tips", "Venues"}),
	})
	require.NoError(t, err)
	assert.False(t, draft.Published)
	assert.Equal(t, []string{"tips", "venues"}, draft.TagList())

	_, err = blogs.Get(ctx, draft.ID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = blogs.GetBySlug(ctx, draft.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := blogs.Get(ctx, draft.ID, true)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	public, err := blogs.List(ctx, repository.BlogFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = blogs.Update(ctx, draft.ID, service.BlogInput{Published: ptr(true)})
	require.NoError(t, err)

	bySlug, err := blogs.GetBySlug(ctx, strings.ToUpper(draft.Slug))
	require.NoError(t, err)
	assert.Equal(t, draft.ID, bySlug.ID)

	tagged, err := blogs.List(ctx, repository.BlogFilter{PublishedOnly: true, Tag: "venues"})
	require.NoError(t, err)
	assert.Len(t, tagged, 1)
}

func TestCommentService_Moderation(t *testing.T) {
	f := newContentFixture(t)
	comments := f.services.Comment
	ctx := context.Background()

	c, err := comments.Submit(ctx, service.CommentInput{
		ServiceName: ptr("Wedding Photography"),
		UserName:    ptr("<b>Priya</b>"),
		UserEmail:   ptr("Priya@Example.com"),
		Comment:     ptr("Stunning work"),
		Rating:      ptr(5),
		Approved:    ptr(true),
	})
	require.NoError(t, err)
	assert.False(t, c.Approved, "visitors cannot self-approve")
	assert.Equal(t, "Priya", c.UserName)
	assert.Equal(t, "priya@example.com", c.UserEmail)

	visible, err := comments.ListApproved(ctx, "Wedding Photography")
	require.NoError(t, err)
	assert.Empty(t, visible)
	_, err = comments.GetApproved(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	approved, err := comments.Approve(ctx, c.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	visible, err = comments.ListApproved(ctx, "Wedding Photography")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, c.ID, visible[0].ID)

	other, err := comments.ListApproved(ctx, "Videography")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = comments.Approve(ctx, c.ID, false)
	require.NoError(t, err)
	_, err = comments.GetApproved(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	t.Run("invalid submission", func(t *testing.T) {
		_, err := comments.Submit(ctx, service.CommentInput{Rating: ptr(9)})
		assert.Equal(t, []string{"serviceName", "userName", "userEmail", "comment", "rating"}, fieldNames(t, err))
	})
}

func TestContactService_Submit(t *testing.T) {
	f := newContentFixture(t)
	contacts := f.services.Contact
	ctx := context.Background()

	c, err := contacts.Submit(ctx, service.ContactInput{
		Name:    ptr("Anita & Rahul"),
		Email:   ptr("ANITA@example.com "),
		Message: ptr("We are getting married in June"),
		Status:  ptr(domain.ContactStatusBooked),
		Notes:   ptr("sneaky"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusNew, c.Status)
	assert.Empty(t, c.Notes)
	assert.Equal(t, "Anita & Rahul", c.Name)
	assert.Equal(t, "anita@example.com", c.Email)

	updated, err := contacts.Update(ctx, c.ID, service.ContactInput{
		Status: ptr(domain.ContactStatusContacted),
		Notes:  ptr("Called back on Monday"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusContacted, updated.Status)

	status := domain.ContactStatusContacted
	list, err := contacts.List(ctx, repository.ContactFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Called back on Monday", list[0].Notes)

	require.NoError(t, contacts.Delete(ctx, c.ID))
	_, err = contacts.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTestimonialService_Submit(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	tm, err := f.services.Testimonial.Submit(ctx, service.TestimonialInput{
		ClientName: ptr("Meera"),
		Content:    ptr("Loved every photo"),
		Featured:   ptr(true),
		Image:      domain.RemoteURL("https://cdn.example.com/m.jpg"),
	})
	require.NoError(t, err)
	assert.False(t, tm.Featured)
	assert.Empty(t, tm.ImageURL)
	assert.Equal(t, 5, tm.Rating)
}

func TestPortfolioService_Media(t *testing.T) {
	f := newContentFixture(t)
	portfolio := f.services.Portfolio
	ctx := context.Background()

	t.Run("uploaded image gets a thumbnail", func(t *testing.T) {
		item, err := portfolio.Create(ctx, service.PortfolioInput{
			Title:    ptr("Lakeside vows"),
			Category: ptr(domain.CategoryWeddings),
			Image: domain.UploadedFile{
				Filename: "vows.png",
				Body:     bytes.NewReader(testutil.PNG(t, 200, 100)),
			},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(item.ImageURL, "/uploads/"))
		assert.NotEmpty(t, item.ThumbnailURL)
		assert.NotEqual(t, item.ImageURL, item.ThumbnailURL)

		rel := strings.TrimPrefix(item.ImageURL, "/uploads/")
		_, err = os.Stat(filepath.Join(f.store.Dir(), filepath.FromSlash(rel)))
		assert.NoError(t, err)
	})

	t.Run("remote url doubles as thumbnail", func(t *testing.T) {
		item, err := portfolio.Create(ctx, service.PortfolioInput{
			Title:    ptr("Engagement shoot"),
			Category: ptr(domain.CategoryEngagement),
			Image:    domain.RemoteURL("https://cdn.example.com/e.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/e.jpg", item.ImageURL)
		assert.Equal(t, item.ImageURL, item.ThumbnailURL)
	})

	t.Run("failed validation discards the upload", func(t *testing.T) {
		before := countFiles(t, f.store.Dir())
		_, err := portfolio.Create(ctx, service.PortfolioInput{
			Category: ptr(domain.CategoryWeddings),
			Image: domain.UploadedFile{
				Filename: "orphan.png",
				Body:     bytes.NewReader(testutil.PNG(t, 50, 50)),
			},
		})
		assert.Equal(t, []string{"title"}, fieldNames(t, err))
		assert.Equal(t, before, countFiles(t, f.store.Dir()))
	})

	t.Run("failed create keeps a referenced upload", func(t *testing.T) {
		saved, err := f.services.Upload.UploadImages(ctx, []domain.UploadedFile{{
			Filename: "shared.png",
			Body:     bytes.NewReader(testutil.PNG(t, 40, 40)),
		}}, "image")
		require.NoError(t, err)
		require.Len(t, saved, 1)

		_, err = portfolio.Create(ctx, service.PortfolioInput{
			Category: ptr(domain.CategoryWeddings),
			Image:    domain.RemoteURL(saved[0].URL),
		})
		assert.Equal(t, []string{"title"}, fieldNames(t, err))

		assertStored(t, f.store, saved[0].URL)
		assertStored(t, f.store, saved[0].ThumbnailURL)
	})

	t.Run("non-image upload is a validation error", func(t *testing.T) {
		_, err := portfolio.Create(ctx, service.PortfolioInput{
			Title:    ptr("Bad file"),
			Category: ptr(domain.CategoryWeddings),
			Image: domain.UploadedFile{
				Filename: "notes.png",
				Body:     strings.NewReader("just some text, not an image"),
			},
		})
		assert.Equal(t, []string{"image"}, fieldNames(t, err))
	})

	t.Run("missing image", func(t *testing.T) {
		_, err := portfolio.Create(ctx, service.PortfolioInput{
			Title:    ptr("No picture"),
			Category: ptr(domain.CategoryWeddings),
		})
		assert.Equal(t, []string{"image"}, fieldNames(t, err))
	})

	t.Run("category filter", func(t *testing.T) {
		cat := domain.CategoryEngagement
		items, err := portfolio.List(ctx, repository.PortfolioFilter{Category: &cat})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Engagement shoot", items[0].Title)
	})
}

func TestVideoService_Media(t *testing.T) {
	f := newContentFixture(t)
	videos := f.services.Video
	ctx := context.Background()

	t.Run("uploaded video and thumbnail", func(t *testing.T) {
		v, err := videos.Create(ctx, service.VideoInput{
			Title:    ptr("First dance"),
			Category: ptr(domain.CategoryPreWedding),
			Video:    domain.UploadedFile{Filename: "dance.webm", Body: bytes.NewReader(testutil.WebM())},
			Thumbnail: domain.UploadedFile{
				Filename: "dance.png",
				Body:     bytes.NewReader(testutil.PNG(t, 160, 90)),
			},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(v.VideoURL, "/uploads/"))
		assert.True(t, strings.HasSuffix(v.VideoURL, ".webm"))
		assert.True(t, strings.HasSuffix(v.ThumbnailURL, "_thumb.jpg"))
		assertStored(t, f.store, v.VideoURL)
		assertStored(t, f.store, v.ThumbnailURL)
	})

	t.Run("urls and default category", func(t *testing.T) {
		v, err := videos.Create(ctx, service.VideoInput{
			Title:     ptr("Highlights"),
			Featured:  ptr(true),
			Video:     domain.RemoteURL("https://videos.example.com/h.mp4"),
			Thumbnail: domain.RemoteURL("https://videos.example.com/h.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryWeddings, v.Category)
		assert.Equal(t, "https://videos.example.com/h.mp4", v.VideoURL)
		assert.Equal(t, "https://videos.example.com/h.jpg", v.ThumbnailURL)
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := videos.Create(ctx, service.VideoInput{Title: ptr("Nothing to play")})
		assert.Equal(t, []string{"video"}, fieldNames(t, err))
	})

	t.Run("image is not a video", func(t *testing.T) {
		_, err := videos.Create(ctx, service.VideoInput{
			Title: ptr("Wrong file"),
			Video: domain.UploadedFile{Filename: "x.png", Body: bytes.NewReader(testutil.PNG(t, 8, 8))},
		})
		assert.Equal(t, []string{"video"}, fieldNames(t, err))
	})

	t.Run("failed create discards both uploads", func(t *testing.T) {
		before := countFiles(t, f.store.Dir())
		_, err := videos.Create(ctx, service.VideoInput{
			Video: domain.UploadedFile{Filename: "orphan.webm", Body: bytes.NewReader(testutil.WebM())},
			Thumbnail: domain.UploadedFile{
				Filename: "orphan.png",
				Body:     bytes.NewReader(testutil.PNG(t, 20, 20)),
			},
		})
		assert.Equal(t, []string{"title"}, fieldNames(t, err))
		assert.Equal(t, before, countFiles(t, f.store.Dir()))
	})

	t.Run("failed create keeps a referenced thumbnail", func(t *testing.T) {
		saved, err := f.services.Upload.UploadImages(ctx, []domain.UploadedFile{{
			Filename: "poster.png",
			Body:     bytes.NewReader(testutil.PNG(t, 30, 30)),
		}}, "thumbnail")
		require.NoError(t, err)

		_, err = videos.Create(ctx, service.VideoInput{
			Video:     domain.UploadedFile{Filename: "clip.webm", Body: bytes.NewReader(testutil.WebM())},
			Thumbnail: domain.RemoteURL(saved[0].URL),
		})
		assert.Equal(t, []string{"title"}, fieldNames(t, err))
		assertStored(t, f.store, saved[0].URL)
	})

	t.Run("filters and partial update", func(t *testing.T) {
		preWedding := domain.CategoryPreWedding
		list, err := videos.List(ctx, repository.VideoFilter{Category: &preWedding})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "First dance", list[0].Title)

		featured := true
		list, err = videos.List(ctx, repository.VideoFilter{Featured: &featured})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Highlights", list[0].Title)

		updated, err := videos.Update(ctx, list[0].ID, service.VideoInput{Featured: ptr(false)})
		require.NoError(t, err)
		assert.False(t, updated.Featured)
		assert.Equal(t, "https://videos.example.com/h.mp4", updated.VideoURL)
	})
}

func assertStored(t *testing.T, store *media.Store, url string) {
	t.Helper()
	rel := strings.TrimPrefix(url, "/uploads/")
	_, err := os.Stat(filepath.Join(store.Dir(), filepath.FromSlash(rel)))
	assert.NoError(t, err, "expected %s on disk", url)
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}
