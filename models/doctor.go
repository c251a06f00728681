package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor is a staff profile shown on the public site. Specialty points at
// the category (department) the doctor belongs to.
type Doctor struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	SpecialtyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"specialty_id"`
	Specialty   *Category      `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	Experience  int            `gorm:"default:0" json:"experience"` // years
	Image       string         `json:"image"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
