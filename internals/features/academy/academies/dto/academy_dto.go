// file: internals/features/academy/academies/dto/academy_dto.go
package dto

import (
	"strings"

	m "akademiku_backend/internals/features/academy/academies/model"
)

/* =========================
   Requests
   ========================= */

type CreateAcademyRequest struct {
	AcademyName string  `json:"academy_name" validate:"required,max=160"`
	AcademySlug string  `json:"academy_slug" validate:"required,max=120,lowercase"`
	AcademyBio  *string `json:"academy_bio"`
	AcademyCity *string `json:"academy_city" validate:"omitempty,max=120"`
}

type UpdateAcademyRequest struct {
	AcademyName *string `json:"academy_name" validate:"omitempty,max=160"`
	AcademyBio  *string `json:"academy_bio"`
	AcademyCity *string `json:"academy_city" validate:"omitempty,max=120"`

	AcademyIsActive *bool `json:"academy_is_active"`
}

func (r *CreateAcademyRequest) ToModel() *m.AcademyModel {
	return &m.AcademyModel{
		AcademyName:     strings.TrimSpace(r.AcademyName),
		AcademySlug:     strings.ToLower(strings.TrimSpace(r.AcademySlug)),
		AcademyBio:      r.AcademyBio,
		AcademyCity:     r.AcademyCity,
		AcademyIsActive: true,
	}
}

// ToUpdates: hanya field yang dikirim yang masuk map update.
func (r *UpdateAcademyRequest) ToUpdates() map[string]any {
	updates := map[string]any{}
	if r.AcademyName != nil {
		updates["academy_name"] = strings.TrimSpace(*r.AcademyName)
	}
	if r.AcademyBio != nil {
		updates["academy_bio"] = r.AcademyBio
	}
	if r.AcademyCity != nil {
		updates["academy_city"] = r.AcademyCity
	}
	if r.AcademyIsActive != nil {
		updates["academy_is_active"] = *r.AcademyIsActive
	}
	return updates
}
