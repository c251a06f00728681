package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report holds the yearly statistics block on the landing page
// (patients treated, operations, and so on).
type Report struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Year      int            `gorm:"uniqueIndex;not null" json:"year"`
	Metrics   []ReportMetric `gorm:"foreignKey:ReportID" json:"metrics,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ReportMetric is one counter inside a yearly report, e.g.
// {label: "مريض", count: 12000, suffix: "+"}. Position fixes display order.
type ReportMetric struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Label    string    `gorm:"not null" json:"label"`
	Count    int       `gorm:"not null" json:"count"`
	Suffix   string    `json:"suffix"`
	Position int       `gorm:"default:0" json:"position"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (m *ReportMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
