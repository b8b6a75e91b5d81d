package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ repository.AdminRepository = (*adminRepository)(nil)

type adminRepository struct {
	crud[domain.Admin]
}

func NewAdminRepository(db *gorm.DB) *adminRepository {
	return &adminRepository{crud[domain.Admin]{db: db, entity: "admin"}}
}

// Create reports a unique index violation as a DuplicateError naming the
// colliding field.
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	err := r.create(ctx, admin)
	if constraint, ok := uniqueConstraint(err); ok {
		field := "username"
		if strings.Contains(constraint, "email") {
			field = "email"
		}
		return &domain.DuplicateError{Field: field}
	}
	return err
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return r.getByID(ctx, id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Admin{}).Count(&count).Error
	return count, err
}

func (r *adminRepository) first(ctx context.Context, query string, arg string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.WithContext(ctx).First(&admin, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(r.entity)
		}
		return nil, err
	}
	return &admin, nil
}
