package handlers

import (
	"log"
	"net/http"
	"strings"

	"alshifa-backend/firebase"
	"alshifa-backend/models"
	"alshifa-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

// GetMedia lists approved media for the public site, newest first.
// ?category=hero narrows the listing to one bucket.
func (h *MediaHandler) GetMedia(c *gin.Context) {
	query := h.DB.Where("approved = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var media []models.Media
	if err := query.Order("created_at desc").Find(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في جلب الوسائط"})
		return
	}

	c.JSON(http.StatusOK, media)
}

// GetAllMedia lists everything, approved or not, for the dashboard.
func (h *MediaHandler) GetAllMedia(c *gin.Context) {
	var media []models.Media
	if err := h.DB.Order("created_at desc").Find(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في جلب الوسائط"})
		return
	}

	c.JSON(http.StatusOK, media)
}

// CreateMedia accepts a multipart form with either an uploaded file or an
// external url. Uploaded files go to the storage bucket under the media
// category folder.
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	mediaType := c.PostForm("type")
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	category := strings.TrimSpace(c.PostForm("category"))
	if category == "" {
		category = "general"
	}

	media := models.Media{
		Title:       title,
		Description: description,
		Category:    category,
		Approved:    c.PostForm("approved") == "true",
	}

	fileHeader, err := c.FormFile("file")
	if err == nil {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "الملف المرفوع غير مدعوم"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في قراءة الملف"})
			return
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		url, objectPath, err := h.Storage.UploadMediaFile(file, fileHeader.Filename, contentType, category)
		if err != nil {
			log.Printf("Media upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في رفع الملف"})
			return
		}

		media.URL = url
		media.StoragePath = objectPath
		if mediaType == "" {
			if strings.HasPrefix(contentType, "video/") {
				mediaType = models.MediaTypeVideo
			} else {
				mediaType = models.MediaTypeImage
			}
		}
	} else {
		media.URL = strings.TrimSpace(c.PostForm("url"))
		if media.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "يجب رفع ملف أو تحديد رابط"})
			return
		}
	}

	if mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "نوع الوسائط يجب أن يكون صورة أو فيديو"})
		return
	}
	media.Type = mediaType

	if err := h.DB.Create(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حفظ الوسائط"})
		return
	}

	log.Printf("Media created: %s %s (category=%s)", media.Type, media.ID, media.Category)
	c.JSON(http.StatusCreated, media)
}

type updateMediaRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Approved    *bool   `json:"approved"`
}

func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الوسائط غير صالح"})
		return
	}

	var media models.Media
	if err := h.DB.Where("id = ?", id).First(&media).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الوسائط غير موجودة"})
		return
	}

	var req updateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "محتوى الطلب غير صالح"})
		return
	}

	if req.Title != nil {
		media.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		media.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		media.Category = strings.TrimSpace(*req.Category)
	}
	if req.Approved != nil {
		media.Approved = *req.Approved
	}

	if err := h.DB.Save(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث الوسائط"})
		return
	}

	log.Printf("Media updated: %s (approved=%v)", media.ID, media.Approved)
	c.JSON(http.StatusOK, media)
}

func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الوسائط غير صالح"})
		return
	}

	var media models.Media
	if err := h.DB.Where("id = ?", id).First(&media).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الوسائط غير موجودة"})
		return
	}

	if err := h.DB.Delete(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حذف الوسائط"})
		return
	}

	// Bucket cleanup is best-effort; the record is already gone.
	if media.StoragePath != "" {
		if err := h.Storage.DeleteFile(media.StoragePath); err != nil {
			log.Printf("Warning: failed to delete storage object %s: %v", media.StoragePath, err)
		}
	}

	log.Printf("Media deleted: %s", media.ID)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الوسائط بنجاح"})
}
