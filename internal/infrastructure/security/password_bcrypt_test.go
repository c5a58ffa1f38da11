package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptPasswordService_RejectsBadCost(t *testing.T) {
	_, err := NewBcryptPasswordService(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestBcryptPasswordService_HashAndCheck(t *testing.T) {
	svc, err := NewBcryptPasswordService(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := svc.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, svc.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, svc.CheckPasswordHash("wrong password", hash))
	assert.False(t, svc.CheckPasswordHash("correct horse battery staple", "not-a-hash"))
}

func TestBcryptPasswordService_HashesAreSalted(t *testing.T) {
	svc, err := NewBcryptPasswordService(bcrypt.MinCost)
	require.NoError(t, err)

	h1, err := svc.HashPassword("password123")
	require.NoError(t, err)
	h2, err := svc.HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
