// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"github.com/google/uuid"

	userModel "akademiku_backend/internals/features/users/user/model"
)

/* =========================
   Requests
   ========================= */

type RegisterRequest struct {
	UserAcademyID uuid.UUID `json:"user_academy_id" validate:"required"`

	UserName     string `json:"user_name" validate:"required,min=3,max=160"`
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

// GoogleLoginRequest membawa id_token hasil Google Sign-In di client.
type GoogleLoginRequest struct {
	IDToken       string    `json:"id_token" validate:"required"`
	UserAcademyID uuid.UUID `json:"user_academy_id" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

/* =========================
   Responses
   ========================= */

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserAcademyID uuid.UUID `json:"user_academy_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
}

func NewUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		UserAcademyID: u.UserAcademyID,
		UserName:      u.UserName,
		UserEmail:     u.UserEmail,
		UserRole:      u.UserRole,
	}
}
