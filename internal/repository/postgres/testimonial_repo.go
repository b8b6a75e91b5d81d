package postgres

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ repository.TestimonialRepository = (*testimonialRepository)(nil)

type testimonialRepository struct {
	crud[domain.Testimonial]
}

func NewTestimonialRepository(db *gorm.DB) *testimonialRepository {
	return &testimonialRepository{crud[domain.Testimonial]{db: db, entity: "testimonial"}}
}

func (r *testimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	return r.create(ctx, t)
}

func (r *testimonialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	return r.getByID(ctx, id)
}

func (r *testimonialRepository) List(ctx context.Context, filter repository.TestimonialFilter) ([]*domain.Testimonial, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}

	testimonials := []*domain.Testimonial{}
	if err := q.Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *testimonialRepository) Update(ctx context.Context, t *domain.Testimonial) error {
	return r.update(ctx, t)
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
