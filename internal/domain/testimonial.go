package domain

import (
	"time"

	"github.com/google/uuid"
)

type Testimonial struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientName string    `json:"clientName" gorm:"not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Rating     int       `json:"rating" gorm:"not null;default:5"`
	EventType  string    `json:"eventType"`
	ImageURL   string    `json:"imageUrl"`
	Featured   bool      `json:"featured" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (t *Testimonial) Validate() error {
	v := &ValidationError{}
	if isBlank(t.ClientName) {
		v.Add("clientName", "Client name is required")
	}
	if isBlank(t.Content) {
		v.Add("content", "Content is required")
	}
	if !validRating(t.Rating) {
		v.Add("rating", "Rating must be between 1 and 5")
	}
	return v.OrNil()
}
