package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack-io/studytrack/internal/config"
)

const (
	accessTokenCookie  = "at"
	refreshTokenCookie = "rt"

	// The refresh token is scoped to the auth endpoints so browsers never
	// attach it anywhere else.
	refreshCookiePath = "/api/auth"
	accessCookiePath  = "/"
)

// setSessionCookies installs the token pair as httpOnly cookies. The
// access token cookie is a convenience for browser clients; APIs may use
// the Authorization header instead.
func setSessionCookies(c *gin.Context, accessToken, refreshToken string, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, accessToken,
		int(cfg.JWT.AccessTokenTTL.Seconds()), accessCookiePath,
		cfg.Cookie.Domain, cfg.Cookie.Secure, true)
	c.SetCookie(refreshTokenCookie, refreshToken,
		int(cfg.JWT.RefreshTokenTTL.Seconds()), refreshCookiePath,
		cfg.Cookie.Domain, cfg.Cookie.Secure, true)
}

// clearSessionCookies expires both cookies. Called unconditionally on
// logout, whatever the session state.
func clearSessionCookies(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, accessCookiePath,
		cfg.Cookie.Domain, cfg.Cookie.Secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, refreshCookiePath,
		cfg.Cookie.Domain, cfg.Cookie.Secure, true)
}
