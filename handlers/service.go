package handlers

import (
	"log"
	"net/http"
	"strings"

	"alshifa-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceHandler struct {
	DB *gorm.DB
}

// categoryExists is the application-level stand-in for a foreign key:
// service and doctor writes check their category reference first.
func categoryExists(db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (h *ServiceHandler) GetServices(c *gin.Context) {
	query := h.DB.Where("is_active = ?", true).Preload("Category")

	if raw := c.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "معرف القسم غير صالح"})
			return
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var services []models.Service
	if err := query.Order("created_at desc").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في جلب الخدمات"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الخدمة غير صالح"})
		return
	}

	var service models.Service
	if err := h.DB.Preload("Category").Where("id = ?", id).First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الخدمة غير موجودة"})
		return
	}

	c.JSON(http.StatusOK, service)
}

type serviceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id" binding:"required"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Duration    string   `json:"duration"`
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الخدمة والقسم مطلوبان"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الخدمة والقسم مطلوبان"})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف القسم غير صالح"})
		return
	}

	exists, err := categoryExists(h.DB, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في إنشاء الخدمة"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "القسم المحدد غير موجود"})
		return
	}

	service := models.Service{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CategoryID:  categoryID,
		Price:       req.Price,
		Duration:    req.Duration,
		IsActive:    true,
	}

	if err := h.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في إنشاء الخدمة"})
		return
	}

	log.Printf("Service created: %s (category=%s)", service.Name, service.CategoryID)
	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الخدمة غير صالح"})
		return
	}

	var service models.Service
	if err := h.DB.Where("id = ?", id).First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الخدمة غير موجودة"})
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الخدمة والقسم مطلوبان"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الخدمة والقسم مطلوبان"})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف القسم غير صالح"})
		return
	}

	if categoryID != service.CategoryID {
		exists, err := categoryExists(h.DB, categoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث الخدمة"})
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "القسم المحدد غير موجود"})
			return
		}
	}

	service.Name = name
	service.Description = strings.TrimSpace(req.Description)
	service.CategoryID = categoryID
	service.Price = req.Price
	service.Duration = req.Duration

	if err := h.DB.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث الخدمة"})
		return
	}

	log.Printf("Service updated: %s (%s)", service.Name, service.ID)
	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الخدمة غير صالح"})
		return
	}

	var service models.Service
	if err := h.DB.Where("id = ?", id).First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الخدمة غير موجودة"})
		return
	}

	if err := h.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حذف الخدمة"})
		return
	}

	log.Printf("Service deleted: %s (%s)", service.Name, service.ID)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الخدمة بنجاح"})
}
