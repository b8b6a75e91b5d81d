package service

import (
	"context"
	"errors"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/media"
)

// MediaStore is the part of media.Store the content services need
type MediaStore interface {
	Resolve(ctx context.Context, src domain.MediaSource, kind media.Kind) (*domain.StoredMedia, error)
	Discard(m *domain.StoredMedia)
}

// resolveMedia turns rejected uploads into a field error so they surface as a 400
func resolveMedia(ctx context.Context, store MediaStore, src domain.MediaSource, kind media.Kind, field string) (*domain.StoredMedia, error) {
	stored, err := store.Resolve(ctx, src, kind)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrEmptyFile) {
			v := &domain.ValidationError{}
			v.Add(field, err.Error())
			return nil, v
		}
		return nil, err
	}
	return stored, nil
}

// UploadService stores files that are not yet attached to an entity
type UploadService struct {
	store MediaStore
}

func NewUploadService(store MediaStore) *UploadService {
	return &UploadService{store: store}
}

// UploadImages saves every file or none of them
func (s *UploadService) UploadImages(ctx context.Context, files []domain.UploadedFile, field string) ([]*domain.StoredMedia, error) {
	if len(files) == 0 {
		v := &domain.ValidationError{}
		v.Add(field, "No file uploaded")
		return nil, v
	}

	stored := make([]*domain.StoredMedia, 0, len(files))
	for _, f := range files {
		m, err := resolveMedia(ctx, s.store, f, media.KindImage, field)
		if err != nil {
			for _, saved := range stored {
				s.store.Discard(saved)
			}
			return nil, err
		}
		stored = append(stored, m)
	}
	return stored, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
