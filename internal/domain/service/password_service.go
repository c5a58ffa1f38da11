package service

// PasswordService is the one-way password comparison primitive.
type PasswordService interface {
	HashPassword(password string) (string, error)
	CheckPasswordHash(password, hash string) bool
}
