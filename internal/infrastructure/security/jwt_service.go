package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/studytrack-io/studytrack/internal/config"
	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/service"
)

// jwtService signs both credential kinds with HS256 under two independent
// secrets. Verification is stateless: signature and expiry only, no
// storage access.
type jwtService struct {
	cfg config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) (service.TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("both access and refresh signing secrets must be configured")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("access and refresh signing secrets must differ")
	}
	return &jwtService{cfg: cfg}, nil
}

func (s *jwtService) IssueAccessToken(userID int64) (string, error) {
	return s.sign(userID, s.cfg.AccessTokenTTL, []byte(s.cfg.AccessSecret))
}

func (s *jwtService) IssueRefreshToken(userID int64) (string, error) {
	return s.sign(userID, s.cfg.RefreshTokenTTL, []byte(s.cfg.RefreshSecret))
}

func (s *jwtService) VerifyAccessToken(token string) (int64, error) {
	return s.verify(token, []byte(s.cfg.AccessSecret))
}

func (s *jwtService) VerifyRefreshToken(token string) (int64, error) {
	return s.verify(token, []byte(s.cfg.RefreshSecret))
}

func (s *jwtService) sign(userID int64, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    s.cfg.Issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		// A unique id per token: two tokens minted in the same second must
		// still differ, or rotation could reissue the value it just retired.
		ID: uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// verify maps every failure mode, structural through expiry, to
// ErrInvalidToken: the caller never learns which check rejected the token.
func (s *jwtService) verify(tokenString string, secret []byte) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, domainErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, domainErrors.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domainErrors.ErrInvalidToken
	}
	return userID, nil
}

var _ service.TokenService = (*jwtService)(nil)
