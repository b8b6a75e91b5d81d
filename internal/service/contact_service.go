package service

import (
	"context"
	"time"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ContactService struct {
	repo repository.ContactRepository
	text *textPolicy
}

func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo, text: newTextPolicy()}
}

type ContactInput struct {
	Name      *string
	Email     *string
	Phone     *string
	EventType *string
	EventDate *time.Time
	Venue     *string
	Message   *string
	Status    *domain.ContactStatus
	Notes     *string
}

func (in ContactInput) apply(c *domain.Contact, text *textPolicy) {
	setString(&c.Name, in.Name)
	setString(&c.Phone, in.Phone)
	setString(&c.EventType, in.EventType)
	setString(&c.Venue, in.Venue)
	setString(&c.Message, in.Message)
	setString(&c.Notes, in.Notes)
	if in.Email != nil {
		c.Email = domain.NormalizeEmail(*in.Email)
	}
	if in.EventDate != nil {
		c.EventDate = in.EventDate
	}
	if in.Status != nil {
		c.Status = *in.Status
	}

	c.Name = text.plain(c.Name)
	c.Phone = text.plain(c.Phone)
	c.EventType = text.plain(c.EventType)
	c.Venue = text.plain(c.Venue)
	c.Message = text.plain(c.Message)
}

// Submit records an enquiry from the contact form. Status and notes are
// admin-only and always start empty.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*domain.Contact, error) {
	in.Status = nil
	in.Notes = nil

	c := &domain.Contact{ID: uuid.New(), Status: domain.ContactStatusNew}
	in.apply(c, s.text)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"contact_id": c.ID, "event_type": c.EventType}).Info("new enquiry received")
	return c, nil
}

func (s *ContactService) List(ctx context.Context, filter repository.ContactFilter) ([]*domain.Contact, error) {
	return s.repo.List(ctx, filter)
}

func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ContactService) Update(ctx context.Context, id uuid.UUID, in ContactInput) (*domain.Contact, error) {
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

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
