package model

import (
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Name           string `json:"name" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=admin doctor staff patient"`
	Specialization string `json:"specialization"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// AuthResponse is returned by register and login: the account plus a
// signed bearer token. The password hash is never serialized.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// TokenClaims is the decoded identity carried by a bearer token.
type TokenClaims struct {
	UserID uuid.UUID
	Role   string
	Email  string
}
