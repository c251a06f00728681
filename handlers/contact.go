package handlers

import (
	"log"
	"net/http"
	"strings"

	"alshifa-backend/models"
	"alshifa-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactHandler struct {
	DB *gorm.DB
}

// SubmitMessage stores a visitor enquiry and notifies the clinic inbox
// asynchronously. The endpoint sits behind the rate limiter.
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone"`
		Email   string `json:"email" binding:"omitempty,email"`
		Message string `json:"message" binding:"required,min=10,max=2000"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	message := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}

	if err := h.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في إرسال الرسالة"})
		return
	}

	utils.NotifyContactMessage(message.Name, message.Phone, message.Email, message.Message)

	log.Printf("Contact message received from %s", message.Name)
	c.JSON(http.StatusCreated, gin.H{"message": "تم استلام رسالتك، سنتواصل معك قريباً"})
}

func (h *ContactHandler) GetMessages(c *gin.Context) {
	var messages []models.ContactMessage
	if err := h.DB.Order("created_at desc").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في جلب الرسائل"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *ContactHandler) MarkMessageRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الرسالة غير صالح"})
		return
	}

	var message models.ContactMessage
	if err := h.DB.Where("id = ?", id).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الرسالة غير موجودة"})
		return
	}

	if err := h.DB.Model(&message).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث الرسالة"})
		return
	}
	message.IsRead = true

	c.JSON(http.StatusOK, message)
}

func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الرسالة غير صالح"})
		return
	}

	var message models.ContactMessage
	if err := h.DB.Where("id = ?", id).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الرسالة غير موجودة"})
		return
	}

	if err := h.DB.Delete(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حذف الرسالة"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الرسالة بنجاح"})
}
