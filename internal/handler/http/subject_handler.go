package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/handler/http/middleware"
	"github.com/studytrack-io/studytrack/internal/service"
)

// SubjectHandler handles the subject and task endpoints. Every operation
// is scoped to the authenticated user.
type SubjectHandler struct {
	logger         *zap.Logger
	subjectService *service.SubjectService
}

func NewSubjectHandler(logger *zap.Logger, subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		logger:         logger.Named("subject_handler"),
		subjectService: subjectService,
	}
}

// Create adds a subject.
// POST /api/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	subject, err := h.subjectService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.logger.Error("Create subject: service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Failed to create subject", "internal_error", h.logger)
		return
	}

	RespondWithData(c, http.StatusCreated, subject)
}

// List returns a page of the user's subjects.
// GET /api/subjects?q=&include_archived=&limit=&cursor=
func (h *SubjectHandler) List(c *gin.Context) {
	q := models.ListSubjectsQuery{
		Q:               c.Query("q"),
		IncludeArchived: c.Query("include_archived") == "true",
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			RespondWithError(c, http.StatusBadRequest, "Invalid limit", "validation_error", h.logger)
			return
		}
		q.Limit = n
	}
	if cursor := c.Query("cursor"); cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			RespondWithError(c, http.StatusBadRequest, "Invalid cursor", "validation_error", h.logger)
			return
		}
		q.Cursor = &n
	}

	list, err := h.subjectService.List(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		h.logger.Error("List subjects: service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Failed to list subjects", "internal_error", h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, list)
}

// Get returns one subject.
// GET /api/subjects/:id
func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	subject, err := h.subjectService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.respondSubjectError(c, "Get subject", err)
		return
	}

	RespondWithData(c, http.StatusOK, subject)
}

// Update applies a partial update.
// PATCH /api/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	subject, err := h.subjectService.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.respondSubjectError(c, "Update subject", err)
		return
	}

	RespondWithData(c, http.StatusOK, subject)
}

// SetArchived archives or unarchives a subject.
// PATCH /api/subjects/:id/archive
func (h *SubjectHandler) SetArchived(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req models.ArchiveSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	subject, err := h.subjectService.SetArchived(c.Request.Context(), middleware.UserID(c), id, *req.Archived)
	if err != nil {
		h.respondSubjectError(c, "Archive subject", err)
		return
	}

	RespondWithData(c, http.StatusOK, subject)
}

// CreateTask adds a task under a subject.
// POST /api/subjects/:id/tasks
func (h *SubjectHandler) CreateTask(c *gin.Context) {
	subjectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	task, err := h.subjectService.CreateTask(c.Request.Context(), middleware.UserID(c), subjectID, req)
	if err != nil {
		h.respondSubjectError(c, "Create task", err)
		return
	}

	RespondWithData(c, http.StatusCreated, task)
}

// ListTasks returns a subject's tasks.
// GET /api/subjects/:id/tasks
func (h *SubjectHandler) ListTasks(c *gin.Context) {
	subjectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.subjectService.ListTasks(c.Request.Context(), middleware.UserID(c), subjectID)
	if err != nil {
		h.respondSubjectError(c, "List tasks", err)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"items": tasks})
}

// UpdateTaskStatus moves a task between statuses.
// PATCH /api/tasks/:taskId/status
func (h *SubjectHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, ok := h.pathID(c, "taskId")
	if !ok {
		return
	}
	var req models.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	task, err := h.subjectService.UpdateTaskStatus(c.Request.Context(), middleware.UserID(c), taskID, req.Status)
	if err != nil {
		if errors.Is(err, domainErrors.ErrTaskNotFound) {
			RespondWithError(c, http.StatusNotFound, "Task not found", "task_not_found", h.logger)
			return
		}
		h.respondSubjectError(c, "Update task status", err)
		return
	}

	RespondWithData(c, http.StatusOK, task)
}

func (h *SubjectHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondWithError(c, http.StatusBadRequest, "Invalid id", "validation_error", h.logger)
		return 0, false
	}
	return id, true
}

func (h *SubjectHandler) respondSubjectError(c *gin.Context, op string, err error) {
	if errors.Is(err, domainErrors.ErrSubjectNotFound) {
		RespondWithError(c, http.StatusNotFound, "Subject not found", "subject_not_found", h.logger)
		return
	}
	h.logger.Error(op+": service error", zap.Error(err))
	RespondWithError(c, http.StatusInternalServerError, "Request failed", "internal_error", h.logger)
}
