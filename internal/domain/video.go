package domain

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Category     Category  `json:"category" gorm:"not null;default:'weddings';index"`
	Featured     bool      `json:"featured" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (v *Video) Validate() error {
	errs := &ValidationError{}
	if isBlank(v.Title) {
		errs.Add("title", "Title is required")
	}
	if isBlank(v.VideoURL) {
		errs.Add("video", "Video file or video URL is required")
	}
	if !v.Category.IsValid() {
		errs.Add("category", "Category must be one of weddings, pre-wedding, engagement")
	}
	return errs.OrNil()
}
