package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studytrack-io/studytrack/internal/config"
	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/service"
	"github.com/studytrack-io/studytrack/internal/utils/metrics"
)

// AuthHandler handles the authentication endpoints. Tokens travel as
// httpOnly cookies; the access token is additionally returned in the body
// for non-browser clients.
type AuthHandler struct {
	logger      *zap.Logger
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(logger *zap.Logger, authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		logger:      logger.Named("auth_handler"),
		authService: authService,
		cfg:         cfg,
	}
}

// Register handles user registration.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmailNotAllowed):
			RespondWithError(c, http.StatusBadRequest, "Email domain is not allowed", "email_not_allowed", h.logger)
		case errors.Is(err, domainErrors.ErrEmailExists):
			RespondWithError(c, http.StatusConflict, "Email is already registered", "email_exists", h.logger)
		case errors.Is(err, domainErrors.ErrRateLimitExceeded):
			RespondWithError(c, http.StatusTooManyRequests, "Too many registration attempts", "rate_limited", h.logger)
		default:
			h.logger.Error("Register: service error", zap.Error(err))
			RespondWithError(c, http.StatusInternalServerError, "Failed to register user", "internal_error", h.logger)
		}
		return
	}

	RespondWithData(c, http.StatusCreated, gin.H{"user": user.ToResponse()})
}

// Login verifies credentials and opens a session.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request payload", "validation_error", h.logger)
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			RespondWithError(c, http.StatusUnauthorized, "Invalid email or password", "invalid_credentials", h.logger)
		case errors.Is(err, domainErrors.ErrEmailNotAllowed):
			RespondWithError(c, http.StatusBadRequest, "Email domain is not allowed", "email_not_allowed", h.logger)
		case errors.Is(err, domainErrors.ErrRateLimitExceeded):
			RespondWithError(c, http.StatusTooManyRequests, "Too many login attempts", "rate_limited", h.logger)
		default:
			h.logger.Error("Login: service error", zap.Error(err))
			RespondWithError(c, http.StatusInternalServerError, "Login failed", "internal_error", h.logger)
		}
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	setSessionCookies(c, pair.AccessToken, pair.RefreshToken, h.cfg)
	RespondWithData(c, http.StatusOK, gin.H{
		"user":        user.ToResponse(),
		"accessToken": pair.AccessToken,
	})
}

// Refresh rotates the session held in the refresh cookie. Any failure is
// a uniform 401; the caller learns nothing about which check failed.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshTokenCookie)

	pair, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domainErrors.ErrInvalidToken) {
			clearSessionCookies(c, h.cfg)
			RespondWithError(c, http.StatusUnauthorized, "Invalid refresh token", "invalid_token", h.logger)
			return
		}
		h.logger.Error("Refresh: service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "Failed to refresh session", "internal_error", h.logger)
		return
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	setSessionCookies(c, pair.AccessToken, pair.RefreshToken, h.cfg)
	RespondWithData(c, http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

// Logout ends the current session, or every session of the user when
// allDevices is set. It always clears the cookies and always succeeds.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.LogoutRequest
	// The body is optional; a bare logout retires only the cookie session.
	_ = c.ShouldBindJSON(&req)

	refreshToken, _ := c.Cookie(refreshTokenCookie)
	ctx := c.Request.Context()

	if req.AllDevices {
		userID := h.logoutUserID(c, req, refreshToken)
		if userID != 0 {
			if _, err := h.authService.LogoutAll(ctx, userID); err != nil {
				h.logger.Error("Logout: revoke all failed", zap.Error(err))
			}
		}
	} else if refreshToken != "" {
		if err := h.authService.Logout(ctx, refreshToken); err != nil {
			h.logger.Error("Logout: revoke failed", zap.Error(err))
		}
	}

	clearSessionCookies(c, h.cfg)
	RespondWithNoContent(c)
}

// logoutUserID resolves whose sessions an allDevices logout targets: the
// explicit userId from the body, or the owner of the presented refresh
// token.
func (h *AuthHandler) logoutUserID(c *gin.Context, req models.LogoutRequest, refreshToken string) int64 {
	if req.UserID != nil {
		return *req.UserID
	}
	if refreshToken == "" {
		return 0
	}
	userID, err := h.authService.RefreshTokenOwner(refreshToken)
	if err != nil {
		return 0
	}
	return userID
}
