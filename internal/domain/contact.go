package domain

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Phone     string        `json:"phone"`
	EventType string        `json:"eventType"`
	EventDate *time.Time    `json:"eventDate"`
	Venue     string        `json:"venue"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    ContactStatus `json:"status" gorm:"not null;default:'new';index"`
	Notes     string        `json:"notes" gorm:"type:text"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Contact) Validate() error {
	v := &ValidationError{}
	if isBlank(c.Name) {
		v.Add("name", "Name is required")
	}
	if !IsValidEmail(c.Email) {
		v.Add("email", "A valid email is required")
	}
	if isBlank(c.Message) {
		v.Add("message", "Message is required")
	}
	if !c.Status.IsValid() {
		v.Add("status", "Status must be one of new, contacted, booked, archived")
	}
	return v.OrNil()
}
