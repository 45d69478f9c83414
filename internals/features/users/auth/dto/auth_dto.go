package dto

import (
	"strings"

	"iqro_backend/internals/constants"
	userModel "iqro_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,iqro_role"`
	Type     string `json:"type" validate:"omitempty,oneof=normal cadel school personal"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = constants.UserTypeNormal
	}
}

// ToModel: password diisi hash oleh service
func (r *RegisterRequest) ToModel(passwordHash string) *userModel.UserModel {
	return &userModel.UserModel{
		Name:     r.Name,
		Email:    r.Email,
		Password: passwordHash,
		Role:     r.Role,
		Type:     r.Type,
		IsActive: true,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type OrganizeSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Code        string  `json:"code"`
}

type LoginResponse struct {
	User         *userModel.UserModel `json:"user"`
	Tabs         []constants.Tab      `json:"tabs"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
}

type MeResponse struct {
	User     *userModel.UserModel `json:"user"`
	Tabs     []constants.Tab      `json:"tabs"`
	Organize *OrganizeSummary     `json:"organize"`
}
