package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studytrack-io/studytrack/internal/handler/http/middleware"
	"github.com/studytrack-io/studytrack/internal/service"
)

// ReportHandler handles reporting and recommendation endpoints.
type ReportHandler struct {
	logger        *zap.Logger
	reportService *service.ReportService
}

func NewReportHandler(logger *zap.Logger, reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		logger:        logger.Named("report_handler"),
		reportService: reportService,
	}
}

// Daily reports minutes studied per subject on one day, today by default.
// GET /api/reports/daily?date=YYYY-MM-DD
func (h *ReportHandler) Daily(c *gin.Context) {
	date, ok := h.queryDate(c)
	if !ok {
		return
	}

	report, err := h.reportService.Daily(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		h.logger.Error("Daily report: service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Failed to build report", "internal_error", h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, report)
}

// Weekly reports the week containing the given day.
// GET /api/reports/weekly?date=YYYY-MM-DD
func (h *ReportHandler) Weekly(c *gin.Context) {
	date, ok := h.queryDate(c)
	if !ok {
		return
	}

	report, err := h.reportService.Weekly(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		h.logger.Error("Weekly report: service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Failed to build report", "internal_error", h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, report)
}

// RecommendToday suggests study minutes per active subject.
// GET /api/reports/recommend/today
func (h *ReportHandler) RecommendToday(c *gin.Context) {
	recommendation, err := h.reportService.RecommendToday(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error("Recommendation: service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Failed to build recommendation", "internal_error", h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, recommendation)
}

func (h *ReportHandler) queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "validation_error", h.logger)
		return time.Time{}, false
	}
	return date, true
}
