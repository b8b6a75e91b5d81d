package service

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/media"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
)

type PortfolioService struct {
	repo  repository.PortfolioRepository
	media MediaStore
}

func NewPortfolioService(repo repository.PortfolioRepository, store MediaStore) *PortfolioService {
	return &PortfolioService{repo: repo, media: store}
}

// PortfolioInput carries the fields supplied by the caller; nil means "leave unchanged"
type PortfolioInput struct {
	Title       *string
	Description *string
	Category    *domain.Category
	Location    *string
	Featured    *bool
	Image       domain.MediaSource
}

func (in PortfolioInput) apply(item *domain.PortfolioItem) {
	setString(&item.Title, in.Title)
	setString(&item.Description, in.Description)
	setString(&item.Location, in.Location)
	setBool(&item.Featured, in.Featured)
	if in.Category != nil {
		item.Category = *in.Category
	}
}

func (s *PortfolioService) List(ctx context.Context, filter repository.PortfolioFilter) ([]*domain.PortfolioItem, error) {
	return s.repo.List(ctx, filter)
}

func (s *PortfolioService) Get(ctx context.Context, id uuid.UUID) (*domain.PortfolioItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PortfolioService) Create(ctx context.Context, in PortfolioInput) (*domain.PortfolioItem, error) {
	item := &domain.PortfolioItem{ID: uuid.New()}
	in.apply(item)

	stored, err := resolveMedia(ctx, s.media, in.Image, media.KindImage, "image")
	if err != nil {
		return nil, err
	}
	setImage(item, stored)

	if err := item.Validate(); err != nil {
		s.media.Discard(stored)
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.media.Discard(stored)
		return nil, err
	}
	return item, nil
}

func (s *PortfolioService) Update(ctx context.Context, id uuid.UUID, in PortfolioInput) (*domain.PortfolioItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(item)

	stored, err := resolveMedia(ctx, s.media, in.Image, media.KindImage, "image")
	if err != nil {
		return nil, err
	}
	setImage(item, stored)

	if err := item.Validate(); err != nil {
		s.media.Discard(stored)
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		s.media.Discard(stored)
		return nil, err
	}
	return item, nil
}

func (s *PortfolioService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func setImage(item *domain.PortfolioItem, stored *domain.StoredMedia) {
	if stored == nil {
		return
	}
	item.ImageURL = stored.URL
	item.ThumbnailURL = stored.ThumbnailURL
	if item.ThumbnailURL == "" {
		item.ThumbnailURL = stored.URL
	}
}
