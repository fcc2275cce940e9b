// file: internals/features/academy/coaches/dto/coach_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/coaches/model"
)

type SaveCoachRequest struct {
	CoachName     string  `json:"coach_name" validate:"required,max=160"`
	CoachBio      *string `json:"coach_bio"`
	CoachImageURL *string `json:"coach_image_url" validate:"omitempty,url"`
}

func (r *SaveCoachRequest) ToModel(academyID uuid.UUID) *m.CoachModel {
	return &m.CoachModel{
		CoachAcademyID: academyID,
		CoachName:      strings.TrimSpace(r.CoachName),
		CoachBio:       r.CoachBio,
		CoachImageURL:  r.CoachImageURL,
	}
}

func (r *SaveCoachRequest) ToUpdates() map[string]any {
	return map[string]any{
		"coach_name":      strings.TrimSpace(r.CoachName),
		"coach_bio":       r.CoachBio,
		"coach_image_url": r.CoachImageURL,
	}
}

// CoachResponse membawa jumlah program yang diampu untuk listing admin.
type CoachResponse struct {
	m.CoachModel
	CoachProgramCount int64 `json:"coach_program_count"`
}
