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

type DoctorHandler struct {
	DB *gorm.DB
}

func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Where("is_active = ?", true).Preload("Specialty")

	if raw := c.Query("specialty"); raw != "" {
		specialtyID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "معرف التخصص غير صالح"})
			return
		}
		query = query.Where("specialty_id = ?", specialtyID)
	}

	var doctors []models.Doctor
	if err := query.Order("created_at desc").Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في جلب الأطباء"})
		return
	}

	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الطبيب غير صالح"})
		return
	}

	var doctor models.Doctor
	if err := h.DB.Preload("Specialty").Where("id = ?", id).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الطبيب غير موجود"})
		return
	}

	c.JSON(http.StatusOK, doctor)
}

type doctorRequest struct {
	Name        string `json:"name" binding:"required"`
	SpecialtyID string `json:"specialty_id" binding:"required"`
	Experience  int    `json:"experience" binding:"omitempty,gte=0"`
	Image       string `json:"image"`
}

func (h *DoctorHandler) validateDoctorRequest(c *gin.Context, req *doctorRequest) (uuid.UUID, bool) {
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الطبيب والتخصص مطلوبان"})
		return uuid.Nil, false
	}

	specialtyID, err := uuid.Parse(req.SpecialtyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف التخصص غير صالح"})
		return uuid.Nil, false
	}

	if req.Image != "" && !utils.IsImageURL(req.Image) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "رابط الصورة غير صالح"})
		return uuid.Nil, false
	}

	exists, err := categoryExists(h.DB, specialtyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حفظ بيانات الطبيب"})
		return uuid.Nil, false
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "التخصص المحدد غير موجود"})
		return uuid.Nil, false
	}

	return specialtyID, true
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الطبيب والتخصص مطلوبان"})
		return
	}

	specialtyID, ok := h.validateDoctorRequest(c, &req)
	if !ok {
		return
	}

	doctor := models.Doctor{
		Name:        strings.TrimSpace(req.Name),
		SpecialtyID: specialtyID,
		Experience:  req.Experience,
		Image:       req.Image,
		IsActive:    true,
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في إضافة الطبيب"})
		return
	}

	log.Printf("Doctor created: %s (specialty=%s)", doctor.Name, doctor.SpecialtyID)
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الطبيب غير صالح"})
		return
	}

	var doctor models.Doctor
	if err := h.DB.Where("id = ?", id).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الطبيب غير موجود"})
		return
	}

	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الطبيب والتخصص مطلوبان"})
		return
	}

	specialtyID, ok := h.validateDoctorRequest(c, &req)
	if !ok {
		return
	}

	doctor.Name = strings.TrimSpace(req.Name)
	doctor.SpecialtyID = specialtyID
	doctor.Experience = req.Experience
	doctor.Image = req.Image

	if err := h.DB.Save(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث بيانات الطبيب"})
		return
	}

	log.Printf("Doctor updated: %s (%s)", doctor.Name, doctor.ID)
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الطبيب غير صالح"})
		return
	}

	var doctor models.Doctor
	if err := h.DB.Where("id = ?", id).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الطبيب غير موجود"})
		return
	}

	if err := h.DB.Delete(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حذف الطبيب"})
		return
	}

	log.Printf("Doctor deleted: %s (%s)", doctor.Name, doctor.ID)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الطبيب بنجاح"})
}
