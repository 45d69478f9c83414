package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"iqro_backend/internals/features/lembaga/organizes/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateOrganizeRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateOrganizeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = trimPtr(r.Description)
}

func (r *CreateOrganizeRequest) ToModel(guruID uuid.UUID, code string) *model.OrganizeModel {
	return &model.OrganizeModel{
		Name:        r.Name,
		Description: r.Description,
		GuruID:      guruID,
		Code:        code,
		IsActive:    true,
	}
}

type UpdateOrganizeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateOrganizeRequest) Normalize() {
	r.Name = trimPtr(r.Name)
	r.Description = trimPtr(r.Description)
}

func (r *UpdateOrganizeRequest) ToUpdateMap() map[string]interface{} {
	m := map[string]interface{}{}
	if r.Name != nil {
		m["name"] = *r.Name
	}
	if r.Description != nil {
		if *r.Description == "" {
			m["description"] = nil
		} else {
			m["description"] = *r.Description
		}
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	return m
}

type JoinOrganizeRequest struct {
	Code string `json:"code" validate:"required,len=6,alphanum"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type OrganizeStats struct {
	TotalStudents   int64 `json:"total_students"`
	TotalSetoran    int64 `json:"total_setoran"`
	PendingSetoran  int64 `json:"pending_setoran"`
	TotalPoints     int64 `json:"total_points"`
	AverageAccuracy int   `json:"average_accuracy"`
}

type OrganizeDetailResponse struct {
	Organize *model.OrganizeModel `json:"organize"`
	Stats    OrganizeStats        `json:"stats"`
}

type StudentItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	TotalPoin int       `json:"total_poin"`
	CreatedAt time.Time `json:"created_at"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
