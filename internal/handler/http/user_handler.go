package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/handler/http/middleware"
	"github.com/studytrack-io/studytrack/internal/service"
)

type UserHandler struct {
	logger      *zap.Logger
	userService *service.UserService
}

func NewUserHandler(logger *zap.Logger, userService *service.UserService) *UserHandler {
	return &UserHandler{
		logger:      logger.Named("user_handler"),
		userService: userService,
	}
}

// Me returns the authenticated user's profile.
// GET /api/user/me
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			RespondWithError(c, http.StatusNotFound, "User not found", "user_not_found", h.logger)
			return
		}
		h.logger.Error("Me: service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Failed to load profile", "internal_error", h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"user": user.ToProfileResponse()})
}
