package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategoryIcon is used when the client does not pick an icon.
const DefaultCategoryIcon = "stethoscope"

// CategoryIcons is the fixed set of icon identifiers the dashboard can render.
var CategoryIcons = map[string]bool{
	"stethoscope": true,
	"tooth":       true,
	"heart":       true,
	"brain":       true,
	"bone":        true,
	"eye":         true,
	"baby":        true,
	"female":      true,
	"skin":        true,
	"syringe":     true,
	"lungs":       true,
	"microscope":  true,
}

// IsValidCategoryIcon reports whether icon belongs to the fixed icon set.
func IsValidCategoryIcon(icon string) bool {
	return CategoryIcons[icon]
}

// Category is a clinic department shown on the public site and managed
// from the admin dashboard. Services reference it by id.
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Title       string         `json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Icon        string         `gorm:"default:stethoscope" json:"icon"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Order       int            `gorm:"column:sort_order;default:0" json:"order"`
	CreatedBy   *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy   *uuid.UUID     `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Services    []Service      `gorm:"foreignKey:CategoryID" json:"services,omitempty"`
}

var (
	slugWhitespace = regexp.MustCompile(`\s+`)
	// Keeps word characters, hyphens and the Arabic block so Arabic names
	// produce readable slugs instead of collapsing to the fallback.
	slugInvalid = regexp.MustCompile(`[^\w\x{0600}-\x{06FF}-]+`)
)

// Slugify derives a lowercase URL-safe slug from a category name.
// An empty derivation falls back to a timestamped placeholder.
func Slugify(name string) string {
	s := strings.TrimSpace(name)
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	if s == "" {
		s = fmt.Sprintf("category-%d", time.Now().Unix())
	}
	return s
}

// GenerateSlug derives the slug from the current name and disambiguates it
// against other categories with a timestamp suffix. It also defaults the
// display title to the trimmed name. Callers invoke it only when the name
// is new or changed; slugs stay stable across unrelated saves.
func (c *Category) GenerateSlug(tx *gorm.DB) error {
	slug := Slugify(c.Name)

	var count int64
	q := tx.Session(&gorm.Session{NewDB: true}).Model(&Category{}).Where("slug = ?", slug)
	if c.ID != uuid.Nil {
		q = q.Where("id <> ?", c.ID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
	}

	c.Slug = slug
	if strings.TrimSpace(c.Title) == "" {
		c.Title = strings.TrimSpace(c.Name)
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Icon == "" {
		c.Icon = DefaultCategoryIcon
	}
	return c.GenerateSlug(tx)
}
