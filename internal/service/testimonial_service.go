package service

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/media"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
)

const defaultRating = 5

type TestimonialService struct {
	repo  repository.TestimonialRepository
	media MediaStore
	text  *textPolicy
}

func NewTestimonialService(repo repository.TestimonialRepository, store MediaStore) *TestimonialService {
	return &TestimonialService{repo: repo, media: store, text: newTextPolicy()}
}

type TestimonialInput struct {
	ClientName *string
	Content    *string
	EventType  *string
	Rating     *int
	Featured   *bool
	Image      domain.MediaSource
}

func (in TestimonialInput) apply(t *domain.Testimonial, text *textPolicy) {
	setString(&t.ClientName, in.ClientName)
	setString(&t.Content, in.Content)
	setString(&t.EventType, in.EventType)
	setInt(&t.Rating, in.Rating)
	setBool(&t.Featured, in.Featured)

	t.ClientName = text.plain(t.ClientName)
	t.Content = text.plain(t.Content)
	t.EventType = text.plain(t.EventType)
}

func (s *TestimonialService) List(ctx context.Context, filter repository.TestimonialFilter) ([]*domain.Testimonial, error) {
	return s.repo.List(ctx, filter)
}

func (s *TestimonialService) Get(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

// Submit stores a testimonial sent from the public site. Visitors cannot
// feature their own testimonial or attach media.
func (s *TestimonialService) Submit(ctx context.Context, in TestimonialInput) (*domain.Testimonial, error) {
	in.Featured = nil
	in.Image = nil
	return s.Create(ctx, in)
}

func (s *TestimonialService) Create(ctx context.Context, in TestimonialInput) (*domain.Testimonial, error) {
	t := &domain.Testimonial{ID: uuid.New(), Rating: defaultRating}
	in.apply(t, s.text)
	if err := s.save(ctx, t, in.Image, s.repo.Create); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) Update(ctx context.Context, id uuid.UUID, in TestimonialInput) (*domain.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(t, s.text)
	if err := s.save(ctx, t, in.Image, s.repo.Update); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) save(ctx context.Context, t *domain.Testimonial, image domain.MediaSource, persist func(context.Context, *domain.Testimonial) error) error {
	if err := t.Validate(); err != nil {
		return err
	}

	stored, err := resolveMedia(ctx, s.media, image, media.KindImage, "image")
	if err != nil {
		return err
	}
	if stored != nil {
		t.ImageURL = stored.URL
	}

	if err := persist(ctx, t); err != nil {
		s.media.Discard(stored)
		return err
	}
	return nil
}

func (s *TestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
