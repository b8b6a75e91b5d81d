package postgres

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ repository.PortfolioRepository = (*portfolioRepository)(nil)

type portfolioRepository struct {
	crud[domain.PortfolioItem]
}

func NewPortfolioRepository(db *gorm.DB) *portfolioRepository {
	return &portfolioRepository{crud[domain.PortfolioItem]{db: db, entity: "portfolio item"}}
}

func (r *portfolioRepository) Create(ctx context.Context, item *domain.PortfolioItem) error {
	return r.create(ctx, item)
}

func (r *portfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PortfolioItem, error) {
	return r.getByID(ctx, id)
}

func (r *portfolioRepository) List(ctx context.Context, filter repository.PortfolioFilter) ([]*domain.PortfolioItem, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}

	items := []*domain.PortfolioItem{}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *portfolioRepository) Update(ctx context.Context, item *domain.PortfolioItem) error {
	return r.update(ctx, item)
}

func (r *portfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
