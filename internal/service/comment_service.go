package service

import (
	"context"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type CommentService struct {
	repo repository.CommentRepository
	text *textPolicy
}

func NewCommentService(repo repository.CommentRepository) *CommentService {
	return &CommentService{repo: repo, text: newTextPolicy()}
}

type CommentInput struct {
	ServiceName *string
	UserName    *string
	UserEmail   *string
	Comment     *string
	Rating      *int
	Approved    *bool
}

func (in CommentInput) apply(c *domain.Comment, text *textPolicy) {
	setString(&c.ServiceName, in.ServiceName)
	setString(&c.UserName, in.UserName)
	setString(&c.Comment, in.Comment)
	setInt(&c.Rating, in.Rating)
	setBool(&c.Approved, in.Approved)
	if in.UserEmail != nil {
		c.UserEmail = domain.NormalizeEmail(*in.UserEmail)
	}

	c.ServiceName = text.plain(c.ServiceName)
	c.UserName = text.plain(c.UserName)
	c.Comment = text.plain(c.Comment)
}

// Submit stores a visitor comment. It stays hidden until approved.
func (s *CommentService) Submit(ctx context.Context, in CommentInput) (*domain.Comment, error) {
	in.Approved = nil

	c := &domain.Comment{ID: uuid.New()}
	in.apply(c, s.text)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"comment_id": c.ID, "service": c.ServiceName}).Info("comment awaiting approval")
	return c, nil
}

// ListApproved is the public view of a service's comments
func (s *CommentService) ListApproved(ctx context.Context, serviceName string) ([]*domain.Comment, error) {
	approved := true
	return s.repo.List(ctx, repository.CommentFilter{ServiceName: serviceName, Approved: &approved})
}

func (s *CommentService) List(ctx context.Context, filter repository.CommentFilter) ([]*domain.Comment, error) {
	return s.repo.List(ctx, filter)
}

// GetApproved treats unapproved comments as missing
func (s *CommentService) GetApproved(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Approved {
		return nil, domain.NotFound("comment")
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, id uuid.UUID, in CommentInput) (*domain.Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(c, s.text)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Approve(ctx context.Context, id uuid.UUID, approved bool) (*domain.Comment, error) {
	return s.repo.SetApproved(ctx, id, approved)
}

func (s *CommentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
