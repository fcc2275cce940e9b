// file: internals/features/academy/branches/dto/branch_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/branches/model"
)

type SaveBranchRequest struct {
	BranchName    string  `json:"branch_name" validate:"required,max=160"`
	BranchAddress *string `json:"branch_address"`
	BranchCity    *string `json:"branch_city" validate:"omitempty,max=120"`

	BranchLatitude  *float64 `json:"branch_latitude"  validate:"omitempty,gte=-90,lte=90"`
	BranchLongitude *float64 `json:"branch_longitude" validate:"omitempty,gte=-180,lte=180"`

	BranchImageURL *string `json:"branch_image_url" validate:"omitempty,url"`
}

func (r *SaveBranchRequest) ToModel(academyID uuid.UUID) *m.BranchModel {
	return &m.BranchModel{
		BranchAcademyID: academyID,
		BranchName:      strings.TrimSpace(r.BranchName),
		BranchAddress:   r.BranchAddress,
		BranchCity:      r.BranchCity,
		BranchLatitude:  r.BranchLatitude,
		BranchLongitude: r.BranchLongitude,
		BranchImageURL:  r.BranchImageURL,
	}
}

func (r *SaveBranchRequest) ToUpdates() map[string]any {
	return map[string]any{
		"branch_name":      strings.TrimSpace(r.BranchName),
		"branch_address":   r.BranchAddress,
		"branch_city":      r.BranchCity,
		"branch_latitude":  r.BranchLatitude,
		"branch_longitude": r.BranchLongitude,
		"branch_image_url": r.BranchImageURL,
	}
}
