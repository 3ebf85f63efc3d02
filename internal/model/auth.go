package model

import (
	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	Profile     *Profile `json:"profile"`
}

// TokenClaims is the identity resolved once per request from the JWT.
// Role drives the client/doctor capability dispatch.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}
