package postgres

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ repository.CommentRepository = (*commentRepository)(nil)

type commentRepository struct {
	crud[domain.Comment]
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{crud[domain.Comment]{db: db, entity: "comment"}}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.create(ctx, c)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return r.getByID(ctx, id)
}

func (r *commentRepository) List(ctx context.Context, filter repository.CommentFilter) ([]*domain.Comment, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.ServiceName != "" {
		q = q.Where("service_name = ?", filter.ServiceName)
	}
	if filter.Approved != nil {
		q = q.Where("approved = ?", *filter.Approved)
	}

	comments := []*domain.Comment{}
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, c *domain.Comment) error {
	return r.update(ctx, c)
}

// SetApproved flips only the approval flag and returns the updated comment
func (r *commentRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*domain.Comment, error) {
	res := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("approved", approved)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFound(r.entity)
	}
	return r.getByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
