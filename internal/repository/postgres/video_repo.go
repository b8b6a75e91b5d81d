package postgres

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ repository.VideoRepository = (*videoRepository)(nil)

type videoRepository struct {
	crud[domain.Video]
}

func NewVideoRepository(db *gorm.DB) *videoRepository {
	return &videoRepository{crud[domain.Video]{db: db, entity: "video"}}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	return r.create(ctx, video)
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	return r.getByID(ctx, id)
}

func (r *videoRepository) List(ctx context.Context, filter repository.VideoFilter) ([]*domain.Video, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}

	videos := []*domain.Video{}
	if err := q.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	return r.update(ctx, video)
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
