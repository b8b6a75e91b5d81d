package postgres

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ repository.ContactRepository = (*contactRepository)(nil)

type contactRepository struct {
	crud[domain.Contact]
}

func NewContactRepository(db *gorm.DB) *contactRepository {
	return &contactRepository{crud[domain.Contact]{db: db, entity: "contact"}}
}

func (r *contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	return r.create(ctx, c)
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return r.getByID(ctx, id)
}

func (r *contactRepository) List(ctx context.Context, filter repository.ContactFilter) ([]*domain.Contact, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	contacts := []*domain.Contact{}
	if err := q.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Update(ctx context.Context, c *domain.Contact) error {
	return r.update(ctx, c)
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
