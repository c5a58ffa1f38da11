package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/studytrack-io/studytrack/internal/domain/service"
)

// bcryptPasswordService implements the PasswordService with bcrypt.
type bcryptPasswordService struct {
	cost int
}

func NewBcryptPasswordService(cost int) (service.PasswordService, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &bcryptPasswordService{cost: cost}, nil
}

func (s *bcryptPasswordService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *bcryptPasswordService) CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var _ service.PasswordService = (*bcryptPasswordService)(nil)
