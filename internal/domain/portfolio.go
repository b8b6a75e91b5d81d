package domain

import (
	"time"

	"github.com/google/uuid"
)

type PortfolioItem struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	Category     Category  `json:"category" gorm:"not null;index"`
	ImageURL     string    `json:"imageUrl" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Location     string    `json:"location"`
	Featured     bool      `json:"featured" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *PortfolioItem) Validate() error {
	v := &ValidationError{}
	if isBlank(p.Title) {
		v.Add("title", "Title is required")
	}
	if !p.Category.IsValid() {
		v.Add("category", "Category must be one of weddings, pre-wedding, engagement")
	}
	if isBlank(p.ImageURL) {
		v.Add("image", "Image file or image URL is required")
	}
	return v.OrNil()
}
