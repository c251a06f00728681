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

type ReportHandler struct {
	DB *gorm.DB
}

// GetReports returns all yearly reports, newest year first, with their
// metrics in display order.
func (h *ReportHandler) GetReports(c *gin.Context) {
	var reports []models.Report
	if err := h.DB.Preload("Metrics", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Order("year desc").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في جلب الإحصائيات"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف التقرير غير صالح"})
		return
	}

	var report models.Report
	if err := h.DB.Preload("Metrics", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("id = ?", id).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "التقرير غير موجود"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type reportMetricRequest struct {
	Label  string `json:"label" binding:"required"`
	Count  int    `json:"count" binding:"gte=0"`
	Suffix string `json:"suffix"`
}

type reportRequest struct {
	Year    int                   `json:"year" binding:"required,gte=1900"`
	Metrics []reportMetricRequest `json:"metrics" binding:"required,min=1,dive"`
}

func buildMetrics(reportID uuid.UUID, reqs []reportMetricRequest) []models.ReportMetric {
	metrics := make([]models.ReportMetric, 0, len(reqs))
	for i, m := range reqs {
		metrics = append(metrics, models.ReportMetric{
			ReportID: reportID,
			Label:    strings.TrimSpace(m.Label),
			Count:    m.Count,
			Suffix:   m.Suffix,
			Position: i,
		})
	}
	return metrics
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "السنة وقائمة المؤشرات مطلوبة"})
		return
	}

	var count int64
	if err := h.DB.Model(&models.Report{}).Where("year = ?", req.Year).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في إنشاء التقرير"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "يوجد تقرير لهذه السنة مسبقاً"})
		return
	}

	report := models.Report{Year: req.Year}
	if err := h.DB.Create(&report).Error; err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "يوجد تقرير لهذه السنة مسبقاً"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في إنشاء التقرير"})
		return
	}

	metrics := buildMetrics(report.ID, req.Metrics)
	if err := h.DB.Create(&metrics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حفظ مؤشرات التقرير"})
		return
	}
	report.Metrics = metrics

	log.Printf("Report created: year=%d metrics=%d", report.Year, len(metrics))
	c.JSON(http.StatusCreated, report)
}

// UpdateReport replaces the metric list wholesale; partial metric edits are
// not worth the bookkeeping for a handful of landing-page counters.
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف التقرير غير صالح"})
		return
	}

	var report models.Report
	if err := h.DB.Where("id = ?", id).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "التقرير غير موجود"})
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "السنة وقائمة المؤشرات مطلوبة"})
		return
	}

	if req.Year != report.Year {
		var count int64
		if err := h.DB.Model(&models.Report{}).Where("year = ? AND id <> ?", req.Year, report.ID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث التقرير"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "يوجد تقرير لهذه السنة مسبقاً"})
			return
		}
		report.Year = req.Year
	}

	if err := h.DB.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث التقرير"})
		return
	}

	if err := h.DB.Where("report_id = ?", report.ID).Delete(&models.ReportMetric{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث مؤشرات التقرير"})
		return
	}
	metrics := buildMetrics(report.ID, req.Metrics)
	if err := h.DB.Create(&metrics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في تحديث مؤشرات التقرير"})
		return
	}
	report.Metrics = metrics

	log.Printf("Report updated: year=%d metrics=%d", report.Year, len(metrics))
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف التقرير غير صالح"})
		return
	}

	var report models.Report
	if err := h.DB.Where("id = ?", id).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "التقرير غير موجود"})
		return
	}

	if err := h.DB.Where("report_id = ?", report.ID).Delete(&models.ReportMetric{}).Error; err != nil {
		log.Printf("Warning: failed to remove metrics for report %s: %v", report.ID, err)
	}

	if err := h.DB.Delete(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل في حذف التقرير"})
		return
	}

	log.Printf("Report deleted: year=%d (%s)", report.Year, report.ID)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف التقرير بنجاح"})
}
