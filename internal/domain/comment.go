package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a public review of one of the studio's services. It stays hidden
// from the public site until an admin approves it.
type Comment struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ServiceName string    `json:"serviceName" gorm:"not null;index"`
	UserName    string    `json:"userName" gorm:"not null"`
	UserEmail   string    `json:"userEmail" gorm:"not null"`
	Comment     string    `json:"comment" gorm:"type:text;not null"`
	Rating      int       `json:"rating" gorm:"not null"`
	Approved    bool      `json:"approved" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Comment) Validate() error {
	v := &ValidationError{}
	if isBlank(c.ServiceName) {
		v.Add("serviceName", "Service name is required")
	}
	if isBlank(c.UserName) {
		v.Add("userName", "Name is required")
	}
	if !IsValidEmail(c.UserEmail) {
		v.Add("userEmail", "A valid email is required")
	}
	if isBlank(c.Comment) {
		v.Add("comment", "Comment is required")
	}
	if !validRating(c.Rating) {
		v.Add("rating", "Rating must be between 1 and 5")
	}
	return v.OrNil()
}
