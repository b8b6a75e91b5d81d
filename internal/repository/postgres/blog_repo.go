package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var _ repository.BlogRepository = (*blogRepository)(nil)

type blogRepository struct {
	crud[domain.BlogPost]
}

func NewBlogRepository(db *gorm.DB) *blogRepository {
	return &blogRepository{crud[domain.BlogPost]{db: db, entity: "blog post"}}
}

func (r *blogRepository) Create(ctx context.Context, post *domain.BlogPost) error {
	return slugConflict(r.create(ctx, post))
}

func (r *blogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	return r.getByID(ctx, id)
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.WithContext(ctx).First(&post, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(r.entity)
		}
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BlogPost{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *blogRepository) List(ctx context.Context, filter repository.BlogFilter) ([]*domain.BlogPost, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.Tag != "" {
		tag, err := json.Marshal([]string{filter.Tag})
		if err != nil {
			return nil, err
		}
		q = q.Where("tags @> ?", datatypes.JSON(tag))
	}

	posts := []*domain.BlogPost{}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) Update(ctx context.Context, post *domain.BlogPost) error {
	return slugConflict(r.update(ctx, post))
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

// slugConflict covers the window between the slug uniqueness check and the write
func slugConflict(err error) error {
	if _, ok := uniqueConstraint(err); ok {
		return &domain.DuplicateError{Field: "slug"}
	}
	return err
}
