package repository

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/google/uuid"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type PortfolioFilter struct {
	Category *domain.Category
	Featured *bool
}

type PortfolioRepository interface {
	Create(ctx context.Context, item *domain.PortfolioItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PortfolioItem, error)
	List(ctx context.Context, filter PortfolioFilter) ([]*domain.PortfolioItem, error)
	Update(ctx context.Context, item *domain.PortfolioItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VideoFilter struct {
	Category *domain.Category
	Featured *bool
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlogFilter struct {
	PublishedOnly bool
	Tag           string
}

type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter BlogFilter) ([]*domain.BlogPost, error)
	Update(ctx context.Context, post *domain.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TestimonialFilter struct {
	Featured *bool
}

type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error)
	List(ctx context.Context, filter TestimonialFilter) ([]*domain.Testimonial, error)
	Update(ctx context.Context, t *domain.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactFilter struct {
	Status *domain.ContactStatus
}

type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentFilter struct {
	ServiceName string
	Approved    *bool
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	List(ctx context.Context, filter CommentFilter) ([]*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	Admin       AdminRepository
	Portfolio   PortfolioRepository
	Video       VideoRepository
	Blog        BlogRepository
	Testimonial TestimonialRepository
	Contact     ContactRepository
	Comment     CommentRepository
}
