package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"alshifa-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

// defaultCategories is the fixed set seeded when the table is empty, so a
// fresh deployment renders a complete landing page without dashboard work.
func defaultCategories() []models.Category {
	return []models.Category{
		{Name: "طب الأسنان", Description: "قسم متخصص في علاج وتجميل الأسنان واللثة بأحدث التقنيات", Icon: "tooth", Order: 1, IsActive: true},
		{Name: "الجلدية والتجميل", Description: "علاج الأمراض الجلدية وجلسات التجميل والعناية بالبشرة", Icon: "skin", Order: 2, IsActive: true},
		{Name: "النساء والتوليد", Description: "متابعة الحمل والولادة وعلاج أمراض النساء", Icon: "female", Order: 3, IsActive: true},
		{Name: "طب الأطفال", Description: "رعاية صحية شاملة للأطفال منذ الولادة", Icon: "baby", Order: 4, IsActive: true},
		{Name: "الباطنية", Description: "تشخيص وعلاج أمراض الجهاز الهضمي والغدد والأمراض المزمنة", Icon: "stethoscope", Order: 5, IsActive: true},
		{Name: "العظام والمفاصل", Description: "علاج إصابات وكسور العظام وأمراض المفاصل", Icon: "bone", Order: 6, IsActive: true},
	}
}

// isDuplicateKey detects a storage-layer unique violation (race between the
// handler's pre-check and the write). Postgres and the sqlite test driver
// word it differently.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

func duplicateKeyMessage(err error) string {
	if strings.Contains(err.Error(), "slug") {
		return "المعرف المشتق (slug) مستخدم مسبقاً، الرجاء إعادة المحاولة"
	}
	return "اسم القسم مستخدم مسبقاً"
}

// GetCategories lists active categories by sort position. An empty table is
// seeded with the default set first; the seeding happens at most once
// because the second call sees a non-empty table.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var total int64
	if err := h.DB.Model(&models.Category{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في جلب الأقسام"})
		return
	}

	if total == 0 {
		log.Println("Categories table empty, seeding default set")
		for _, cat := range defaultCategories() {
			category := cat
			if err := h.DB.Create(&category).Error; err != nil {
				log.Printf("Warning: failed to seed category %q: %v", cat.Name, err)
			}
		}
	}

	var categories []models.Category
	if err := h.DB.Where("is_active = ?", true).
		Order("sort_order asc").Order("created_at desc").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في جلب الأقسام"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "معرف القسم غير صالح"})
		return
	}

	var category models.Category
	if err := h.DB.Preload("Services").Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "القسم غير موجود"})
		return
	}

	c.JSON(http.StatusOK, category)
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description" binding:"required"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

func validateCategoryName(name string) string {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 100 {
		return "اسم القسم يجب أن يكون بين 2 و 100 حرف"
	}
	return ""
}

func validateCategoryDescription(desc string) string {
	n := utf8.RuneCountInString(desc)
	if n < 10 || n > 500 {
		return "وصف القسم يجب أن يكون بين 10 و 500 حرف"
	}
	return ""
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "الاسم والوصف مطلوبان"})
		return
	}

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "الاسم والوصف مطلوبان"})
		return
	}
	if msg := validateCategoryName(name); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
		return
	}
	if msg := validateCategoryDescription(description); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
		return
	}

	icon := models.DefaultCategoryIcon
	if req.Icon != "" {
		if !models.IsValidCategoryIcon(req.Icon) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "الأيقونة المحددة غير مدعومة"})
			return
		}
		icon = req.Icon
	}

	// Case-insensitive pre-check; the unique index is the backstop.
	var count int64
	if err := h.DB.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في إنشاء القسم"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "يوجد قسم بنفس الاسم"})
		return
	}

	category := models.Category{
		Name:        name,
		Title:       strings.TrimSpace(req.Title),
		Description: description,
		Icon:        icon,
		Order:       req.Order,
		IsActive:    true,
	}
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(uuid.UUID); ok {
			category.CreatedBy = &id
		}
	}

	if err := h.DB.Create(&category).Error; err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": duplicateKeyMessage(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في إنشاء القسم"})
		return
	}

	log.Printf("Category created: %s (slug=%s)", category.Name, category.Slug)
	c.JSON(http.StatusCreated, category)
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
}

// UpdateCategory applies a partial update. is_active and slug are not
// client-settable here: slugs only change through a name change.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "معرف القسم غير صالح"})
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "القسم غير موجود"})
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "محتوى الطلب غير صالح"})
		return
	}

	nameChanged := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "الاسم والوصف مطلوبان"})
			return
		}
		if msg := validateCategoryName(name); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
			return
		}

		// Exclude this record from the duplicate check.
		var count int64
		if err := h.DB.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", name, category.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في تحديث القسم"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "يوجد قسم بنفس الاسم"})
			return
		}

		nameChanged = name != category.Name
		category.Name = name
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if msg := validateCategoryDescription(description); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
			return
		}
		category.Description = description
	}

	if req.Icon != nil {
		if !models.IsValidCategoryIcon(*req.Icon) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "الأيقونة المحددة غير مدعومة"})
			return
		}
		category.Icon = *req.Icon
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		category.Title = strings.TrimSpace(*req.Title)
	}

	if req.Order != nil {
		category.Order = *req.Order
	}

	if userID, ok := c.Get("user_id"); ok {
		if uid, ok := userID.(uuid.UUID); ok {
			category.UpdatedBy = &uid
		}
	}

	// The slug is regenerated only when the triggering field changed.
	if nameChanged {
		if err := category.GenerateSlug(h.DB); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في تحديث القسم"})
			return
		}
	}

	if err := h.DB.Save(&category).Error; err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": duplicateKeyMessage(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في تحديث القسم"})
		return
	}

	log.Printf("Category updated: %s (slug=%s)", category.Name, category.Slug)
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes linked services and the category in one
// transaction so readers never see the category without its services
// half-gone. A failed service cleanup is logged and the category delete
// still proceeds; orphaned services are acceptable, an undeleted category
// is not.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "معرف القسم غير صالح"})
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "القسم غير موجود"})
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Service{}).Error; err != nil {
			log.Printf("Warning: failed to remove services for category %s: %v", category.ID, err)
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "فشل في حذف القسم"})
		return
	}

	log.Printf("Category deleted: %s (%s)", category.Name, category.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "تم حذف القسم بنجاح"})
}
