package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media is a hero or gallery asset. Only approved items appear on the
// public site; Category is a free-text bucket such as "hero" or "general".
type Media struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Type        string         `gorm:"not null" json:"type"` // image, video
	URL         string         `gorm:"not null" json:"url"`
	Title       string         `json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"default:general;index" json:"category"`
	Approved    bool           `gorm:"default:false" json:"approved"`
	StoragePath string         `json:"-"` // object path in the bucket, empty for external URLs
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
