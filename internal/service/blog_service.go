package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/media"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/util"
	"github.com/google/uuid"
)

// maxSlugAttempts bounds the -2, -3, ... suffix search
const maxSlugAttempts = 100

type BlogService struct {
	repo  repository.BlogRepository
	media MediaStore
	text  *textPolicy
}

func NewBlogService(repo repository.BlogRepository, store MediaStore) *BlogService {
	return &BlogService{repo: repo, media: store, text: newTextPolicy()}
}

type BlogInput struct {
	Title      *string
	Content    *string
	Excerpt    *string
	Author     *string
	Tags       *[]string
	Published  *bool
	CoverImage domain.MediaSource
}

func (in BlogInput) apply(post *domain.BlogPost) {
	setString(&post.Title, in.Title)
	setString(&post.Content, in.Content)
	setString(&post.Excerpt, in.Excerpt)
	setString(&post.Author, in.Author)
	setBool(&post.Published, in.Published)
	if in.Tags != nil {
		post.SetTags(cleanTags(*in.Tags))
	}
}

// List returns every post when filter.PublishedOnly is false; public routes set it
func (s *BlogService) List(ctx context.Context, filter repository.BlogFilter) ([]*domain.BlogPost, error) {
	return s.repo.List(ctx, filter)
}

// Get hides drafts unless includeDrafts is set
func (s *BlogService) Get(ctx context.Context, id uuid.UUID, includeDrafts bool) (*domain.BlogPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.Published && !includeDrafts {
		return nil, domain.NotFound("blog post")
	}
	return post, nil
}

// GetBySlug only ever returns published posts
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	post, err := s.repo.GetBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, domain.NotFound("blog post")
	}
	return post, nil
}

// Create writes a new post. author fills the byline when the input has none.
func (s *BlogService) Create(ctx context.Context, author *domain.Admin, in BlogInput) (*domain.BlogPost, error) {
	post := &domain.BlogPost{ID: uuid.New(), Published: true}
	post.SetTags(nil)
	in.apply(post)
	if strings.TrimSpace(post.Author) == "" && author != nil {
		post.Author = author.Username
	}

	if err := s.save(ctx, post, in, true, s.repo.Create); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Update(ctx context.Context, id uuid.UUID, in BlogInput) (*domain.BlogPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldTitle := post.Title
	in.apply(post)

	if err := s.save(ctx, post, in, post.Title != oldTitle, s.repo.Update); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) save(ctx context.Context, post *domain.BlogPost, in BlogInput, reslug bool, persist func(context.Context, *domain.BlogPost) error) error {
	if reslug {
		slug, err := s.uniqueSlug(ctx, post.Title, post.ID)
		if err != nil {
			return err
		}
		post.Slug = slug
	}

	if err := post.Validate(); err != nil {
		return err
	}

	rendered, err := s.text.render(post.Content)
	if err != nil {
		return err
	}
	post.ContentHTML = rendered
	if in.Excerpt == nil && strings.TrimSpace(post.Excerpt) == "" {
		post.Excerpt = s.text.excerpt(rendered)
	}

	cover, err := resolveMedia(ctx, s.media, in.CoverImage, media.KindImage, "coverImage")
	if err != nil {
		return err
	}
	if cover != nil {
		post.CoverImage = cover.URL
	}

	if err := persist(ctx, post); err != nil {
		s.media.Discard(cover)
		return err
	}
	return nil
}

// uniqueSlug derives a slug from title, appending -2, -3, ... until no other
// post uses it. An empty result is left for Validate to reject.
func (s *BlogService) uniqueSlug(ctx context.Context, title string, postID uuid.UUID) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		return "", nil
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := s.repo.SlugExists(ctx, candidate, postID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", &domain.DuplicateError{Field: "slug"}
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func cleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
