package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/handler/http/middleware"
	"github.com/studytrack-io/studytrack/internal/service"
)

// StudyHandler handles the study session endpoints.
type StudyHandler struct {
	logger       *zap.Logger
	studyService *service.StudySessionService
}

func NewStudyHandler(logger *zap.Logger, studyService *service.StudySessionService) *StudyHandler {
	return &StudyHandler{
		logger:       logger.Named("study_handler"),
		studyService: studyService,
	}
}

// Start opens a timer session.
// POST /api/study/start
func (h *StudyHandler) Start(c *gin.Context) {
	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	session, err := h.studyService.Start(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondStudyError(c, "Start session", err)
		return
	}

	RespondWithData(c, http.StatusCreated, session)
}

// Stop closes an open timer session.
// POST /api/study/stop
func (h *StudyHandler) Stop(c *gin.Context) {
	var req models.StopSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	session, err := h.studyService.Stop(c.Request.Context(), middleware.UserID(c), req.SessionID)
	if err != nil {
		h.respondStudyError(c, "Stop session", err)
		return
	}

	RespondWithData(c, http.StatusOK, session)
}

// CreateManual records a finished session after the fact.
// POST /api/study/manual
func (h *StudyHandler) CreateManual(c *gin.Context) {
	var req models.ManualSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	session, err := h.studyService.CreateManual(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondStudyError(c, "Create manual session", err)
		return
	}

	RespondWithData(c, http.StatusCreated, session)
}

// ListByDate returns the sessions started on a calendar day, today by
// default.
// GET /api/study?date=YYYY-MM-DD
func (h *StudyHandler) ListByDate(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "validation_error", h.logger)
			return
		}
		date = parsed
	}

	sessions, err := h.studyService.GetByDate(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		h.respondStudyError(c, "List sessions", err)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"items": sessions})
}

func (h *StudyHandler) respondStudyError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrSubjectNotFound):
		RespondWithError(c, http.StatusNotFound, "Subject not found", "subject_not_found", h.logger)
	case errors.Is(err, domainErrors.ErrSessionNotFound):
		RespondWithError(c, http.StatusNotFound, "Session not found or already stopped", "session_not_found", h.logger)
	default:
		h.logger.Error(op+": service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Request failed", "internal_error", h.logger)
	}
}
