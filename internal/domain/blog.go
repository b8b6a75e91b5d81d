package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BlogPost struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt     string         `json:"excerpt"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	ContentHTML string         `json:"contentHtml" gorm:"type:text"`
	CoverImage  string         `json:"coverImage"`
	Author      string         `json:"author"`
	Tags        datatypes.JSON `json:"tags" gorm:"type:jsonb"` // ["tips", "venues"]
	Published   bool           `json:"published" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (b *BlogPost) Validate() error {
	v := &ValidationError{}
	if isBlank(b.Title) {
		v.Add("title", "Title is required")
	} else if isBlank(b.Slug) {
		v.Add("title", "Title must contain at least one letter or digit")
	}
	if isBlank(b.Content) {
		v.Add("content", "Content is required")
	}
	return v.OrNil()
}

// TagList decodes the stored tags; malformed data yields an empty list
func (b *BlogPost) TagList() []string {
	var tags []string
	if len(b.Tags) > 0 {
		_ = json.Unmarshal(b.Tags, &tags)
	}
	return tags
}

// SetTags stores tags as a JSON array
func (b *BlogPost) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	b.Tags = datatypes.JSON(data)
}
