package models

import "time"

// User is the identity record. The password hash never leaves the service
// boundary; API responses carry UserResponse.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Nickname     *string   `json:"nickname,omitempty" db:"nickname"`
	Grade        *int      `json:"grade,omitempty" db:"grade"`
	Gender       *string   `json:"gender,omitempty" db:"gender"`
	IsCompleted  bool      `json:"is_completed" db:"is_completed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Nickname *string `json:"nickname"`
	Grade    *int    `json:"grade"`
	Gender   *string `json:"gender"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		Grade:    u.Grade,
		Gender:   u.Gender,
	}
}

// UserProfileResponse is the richer projection served by GET /api/user/me.
type UserProfileResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Nickname    *string   `json:"nickname"`
	Grade       *int      `json:"grade"`
	Gender      *string   `json:"gender"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) ToProfileResponse() UserProfileResponse {
	return UserProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		Grade:       u.Grade,
		Gender:      u.Gender,
		IsCompleted: u.IsCompleted,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,passwordcomplexity"`
	Nickname *string `json:"nickname" binding:"omitempty,max=30"`
	Grade    *int    `json:"grade" binding:"omitempty,min=1,max=6"`
	Gender   *string `json:"gender" binding:"omitempty,oneof=Male Female"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LogoutRequest struct {
	AllDevices bool   `json:"allDevices"`
	UserID     *int64 `json:"userId"`
}
