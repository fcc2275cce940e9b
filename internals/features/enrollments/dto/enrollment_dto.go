// file: internals/features/enrollments/dto/enrollment_dto.go
package dto

import (
	"github.com/google/uuid"

	m "akademiku_backend/internals/features/enrollments/model"
	svc "akademiku_backend/internals/features/enrollments/service"
)

type CreateEnrollmentRequest struct {
	EnrollmentPackageID uuid.UUID `json:"enrollment_package_id" validate:"required"`

	// nama anak yang didaftarkan; boleh beda dari nama akun
	EnrollmentStudentName string `json:"enrollment_student_name" validate:"required,max=160"`
}

type EnrollmentResponse struct {
	m.EnrollmentModel
	PriceBreakdown *svc.PriceBreakdown `json:"price_breakdown,omitempty"`
}
