package service

// TokenService signs and verifies the two credential kinds. Access and
// refresh tokens use independent secrets and lifetimes; verification is
// purely cryptographic and never touches storage.
type TokenService interface {
	IssueAccessToken(userID int64) (string, error)
	IssueRefreshToken(userID int64) (string, error)
	// VerifyAccessToken returns the subject user id, or ErrInvalidToken on
	// any structural, signature or expiry failure.
	VerifyAccessToken(token string) (int64, error)
	// VerifyRefreshToken behaves like VerifyAccessToken for the refresh
	// secret.
	VerifyRefreshToken(token string) (int64, error)
}
