package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/studytrack-io/studytrack/internal/config"
	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
	domainService "github.com/studytrack-io/studytrack/internal/domain/service"
)

// AuthService owns the authentication session core: registration, login,
// refresh rotation and revocation. Access tokens are stateless; refresh
// tokens are tracked in the store, one row per device, and rotated in
// place on every successful refresh.
type AuthService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.RefreshTokenRepository
	tokens       domainService.TokenService
	passwords    domainService.PasswordService
	rateLimiter  domainService.RateLimiter
	allowedEmail *regexp.Regexp
	rateCfg      config.RateLimitConfig
	logger       *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	tokens domainService.TokenService,
	passwords domainService.PasswordService,
	rateLimiter domainService.RateLimiter,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) (*AuthService, error) {
	allowed, err := regexp.Compile(authCfg.AllowedEmailPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed email pattern: %w", err)
	}
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokens:       tokens,
		passwords:    passwords,
		rateLimiter:  rateLimiter,
		allowedEmail: allowed,
		rateCfg:      authCfg.RateLimiting,
		logger:       logger.Named("auth_service"),
	}, nil
}

// Register creates a new user. The email gate runs before any storage
// access, so a rejected registration leaves no side effects.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest, clientIP string) (*models.User, error) {
	if !s.allowedEmail.MatchString(req.Email) {
		return nil, domainErrors.ErrEmailNotAllowed
	}

	if err := s.allow(ctx, "register_ip:"+clientIP, s.rateCfg.RegisterIP); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, domainErrors.ErrEmailExists
	} else if !errors.Is(err, domainErrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Nickname:     req.Nickname,
		Grade:        req.Grade,
		Gender:       req.Gender,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and starts a session: issues a token pair and
// persists the refresh value as a new session row. A missing user and a
// wrong password return the identical error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, clientIP string) (*models.User, *models.TokenPair, error) {
	if !s.allowedEmail.MatchString(req.Email) {
		return nil, nil, domainErrors.ErrEmailNotAllowed
	}

	if err := s.allow(ctx, "login_email_ip:"+req.Email+":"+clientIP, s.rateCfg.LoginEmailIP); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, nil, domainErrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !s.passwords.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, nil, domainErrors.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.tokenRepo.Create(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return user, pair, nil
}

// Refresh runs the rotation protocol on a presented refresh token:
//
//  1. stateless signature and expiry check. Trivially forged or expired
//     tokens are rejected before any storage I/O.
//  2. liveness lookup. The token must still be the current value of a
//     session row, otherwise it was rotated away, revoked or never issued.
//  3. rotate. A fresh pair is issued and the row's token value overwritten
//     with a conditional write keyed on the old value.
//
// Every failure surfaces as ErrInvalidToken; a cryptographically valid but
// no-longer-live token is indistinguishable from a forged one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, domainErrors.ErrInvalidToken
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, domainErrors.ErrInvalidToken
	}

	row, err := s.tokenRepo.Find(ctx, refreshToken, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			// Valid signature but no live row: already rotated, revoked,
			// or never issued. Possible replay of a stolen token.
			s.logger.Warn("refresh token verified but not live", zap.Int64("user_id", userID))
			return nil, domainErrors.ErrInvalidToken
		}
		return nil, err
	}

	pair, err := s.issuePair(userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Replace(ctx, row.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			// Lost the race against a concurrent refresh on the same
			// pre-rotation token. The other request won; this one fails
			// like any replay.
			s.logger.Warn("refresh rotation lost race", zap.Int64("user_id", userID))
			return nil, domainErrors.ErrInvalidToken
		}
		return nil, err
	}

	return pair, nil
}

// Logout retires the session holding the given refresh token. An absent
// or empty token is a successful no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.DeleteByToken(ctx, refreshToken)
}

// LogoutAll retires every session of the user. Any refresh attempt from a
// previously issued token then fails the liveness check.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	deleted, err := s.tokenRepo.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("all sessions revoked", zap.Int64("user_id", userID), zap.Int64("sessions", deleted))
	return deleted, nil
}

// RefreshTokenOwner returns the user id a refresh token was issued to,
// without touching the session store.
func (s *AuthService) RefreshTokenOwner(refreshToken string) (int64, error) {
	return s.tokens.VerifyRefreshToken(refreshToken)
}

func (s *AuthService) issuePair(userID int64) (*models.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) allow(ctx context.Context, key string, rule config.RateLimitRule) error {
	if s.rateLimiter == nil || !s.rateCfg.Enabled || !rule.Enabled {
		return nil
	}
	ok, err := s.rateLimiter.Allow(ctx, key, rule.Limit, rule.Window)
	if err != nil {
		// The limiter fails open; the error is already logged there.
		return nil
	}
	if !ok {
		return domainErrors.ErrRateLimitExceeded
	}
	return nil
}
