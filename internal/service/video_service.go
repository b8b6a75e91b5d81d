package service

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/media"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
)

type VideoService struct {
	repo  repository.VideoRepository
	media MediaStore
}

func NewVideoService(repo repository.VideoRepository, store MediaStore) *VideoService {
	return &VideoService{repo: repo, media: store}
}

type VideoInput struct {
	Title       *string
	Description *string
	Category    *domain.Category
	Featured    *bool
	Video       domain.MediaSource
	Thumbnail   domain.MediaSource
}

func (in VideoInput) apply(v *domain.Video) {
	setString(&v.Title, in.Title)
	setString(&v.Description, in.Description)
	setBool(&v.Featured, in.Featured)
	if in.Category != nil {
		v.Category = *in.Category
	}
}

func (s *VideoService) List(ctx context.Context, filter repository.VideoFilter) ([]*domain.Video, error) {
	return s.repo.List(ctx, filter)
}

func (s *VideoService) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VideoService) Create(ctx context.Context, in VideoInput) (*domain.Video, error) {
	video := &domain.Video{ID: uuid.New(), Category: domain.CategoryWeddings}
	in.apply(video)
	if err := s.save(ctx, video, in, s.repo.Create); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) Update(ctx context.Context, id uuid.UUID, in VideoInput) (*domain.Video, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(video)
	if err := s.save(ctx, video, in, s.repo.Update); err != nil {
		return nil, err
	}
	return video, nil
}

// save resolves both media inputs, validates and persists, discarding any
// freshly stored file when a later step fails
func (s *VideoService) save(ctx context.Context, video *domain.Video, in VideoInput, persist func(context.Context, *domain.Video) error) (err error) {
	var stored []*domain.StoredMedia
	defer func() {
		if err != nil {
			for _, m := range stored {
				s.media.Discard(m)
			}
		}
	}()

	file, err := resolveMedia(ctx, s.media, in.Video, media.KindVideo, "video")
	if err != nil {
		return err
	}
	if file != nil {
		stored = append(stored, file)
		video.VideoURL = file.URL
	}

	thumb, err := resolveMedia(ctx, s.media, in.Thumbnail, media.KindImage, "thumbnail")
	if err != nil {
		return err
	}
	if thumb != nil {
		stored = append(stored, thumb)
		video.ThumbnailURL = thumb.ThumbnailURL
		if video.ThumbnailURL == "" {
			video.ThumbnailURL = thumb.URL
		}
	}

	if err = video.Validate(); err != nil {
		return err
	}
	return persist(ctx, video)
}

func (s *VideoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
