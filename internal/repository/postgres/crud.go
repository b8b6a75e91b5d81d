package postgres

import (
	"context"
	"errors"

	"github.com/dom/studio-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// crud implements the single-document operations every content table shares.
// entity names the document in NotFound errors.
type crud[T any] struct {
	db     *gorm.DB
	entity string
}

func (c crud[T]) create(ctx context.Context, v *T) error {
	return c.db.WithContext(ctx).Create(v).Error
}

func (c crud[T]) getByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var v T
	err := c.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(c.entity)
		}
		return nil, err
	}
	return &v, nil
}

// update writes every column of v. It never inserts: a row deleted since v
// was loaded yields NotFound.
func (c crud[T]) update(ctx context.Context, v *T) error {
	res := c.db.WithContext(ctx).Model(v).Select("*").Updates(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(c.entity)
	}
	return nil
}

func (c crud[T]) delete(ctx context.Context, id uuid.UUID) error {
	res := c.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(c.entity)
	}
	return nil
}

// uniqueConstraint returns the violated constraint name when err is a
// postgres unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
