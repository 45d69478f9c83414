package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	uModel "iqro_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// UpdateProfileRequest: partial update (pointer = field boleh di-omit)
type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Type *string `json:"type,omitempty" validate:"omitempty,oneof=normal cadel school personal"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Type != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Type))
		r.Type = &v
	}
}

// ToUpdateMap: hanya kolom yang dikirim
func (r *UpdateProfileRequest) ToUpdateMap() map[string]interface{} {
	m := map[string]interface{}{}
	if r.Name != nil {
		m["name"] = *r.Name
	}
	if r.Type != nil {
		m["type"] = *r.Type
	}
	return m
}

type LinkChildRequest struct {
	Email string `json:"email" validate:"required,email"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type ChildResponse struct {
	LinkID     uuid.UUID  `json:"link_id"`
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	AvatarURL  *string    `json:"avatar_url,omitempty"`
	OrganizeID *uuid.UUID `json:"organize_id,omitempty"`
	LinkedAt   time.Time  `json:"linked_at"`
}

func NewChildResponse(link uModel.ParentChildModel, child uModel.UserModel) ChildResponse {
	return ChildResponse{
		LinkID:     link.ID,
		ID:         child.ID,
		Name:       child.Name,
		Email:      child.Email,
		AvatarURL:  child.AvatarURL,
		OrganizeID: child.OrganizeID,
		LinkedAt:   link.CreatedAt,
	}
}
