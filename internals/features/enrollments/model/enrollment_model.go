// file: internals/features/enrollments/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

type EnrollmentStatusEnum string

const (
	EnrollmentStatusPending   EnrollmentStatusEnum = "pending"
	EnrollmentStatusPaid      EnrollmentStatusEnum = "paid"
	EnrollmentStatusCancelled EnrollmentStatusEnum = "cancelled"
	EnrollmentStatusExpired   EnrollmentStatusEnum = "expired"
)

/* =========================
   Model
========================= */

// EnrollmentModel: pendaftaran student ke satu paket; pembayaran via
// Midtrans Snap, status digerakkan webhook notification.
type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`

	EnrollmentAcademyID uuid.UUID `gorm:"column:enrollment_academy_id;type:uuid;not null;index" json:"enrollment_academy_id"`
	EnrollmentPackageID uuid.UUID `gorm:"column:enrollment_package_id;type:uuid;not null;index" json:"enrollment_package_id"`
	EnrollmentUserID    uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;index"    json:"enrollment_user_id"`

	EnrollmentStudentName string `gorm:"column:enrollment_student_name;type:varchar(160);not null" json:"enrollment_student_name"`

	// snapshot harga saat mendaftar, sudah termasuk entry fee dan discount
	EnrollmentAmount float64 `gorm:"column:enrollment_amount;type:numeric(12,2);not null" json:"enrollment_amount"`

	EnrollmentStatus EnrollmentStatusEnum `gorm:"column:enrollment_status;type:varchar(12);not null;default:'pending'" json:"enrollment_status"`

	EnrollmentOrderID   string  `gorm:"column:enrollment_order_id;type:varchar(64);not null;unique" json:"enrollment_order_id"`
	EnrollmentSnapToken *string `gorm:"column:enrollment_snap_token;type:text"                      json:"enrollment_snap_token,omitempty"`

	EnrollmentPaidAt *time.Time `gorm:"column:enrollment_paid_at" json:"enrollment_paid_at,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index"          json:"enrollment_deleted_at,omitempty"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (e *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if e.EnrollmentID == uuid.Nil {
		e.EnrollmentID = uuid.New()
	}
	return nil
}
