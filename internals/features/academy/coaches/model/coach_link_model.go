// file: internals/features/academy/coaches/model/coach_link_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Join models coach ↔ program / package
   Asosiasi murni, tidak ada payload selain dua FK.
========================= */

type CoachProgramModel struct {
	CoachProgramID uuid.UUID `gorm:"column:coach_program_id;type:uuid;primaryKey" json:"coach_program_id"`

	CoachProgramCoachID   uuid.UUID `gorm:"column:coach_program_coach_id;type:uuid;not null;index"   json:"coach_program_coach_id"`
	CoachProgramProgramID uuid.UUID `gorm:"column:coach_program_program_id;type:uuid;not null;index" json:"coach_program_program_id"`

	CoachProgramCreatedAt time.Time      `gorm:"column:coach_program_created_at;autoCreateTime" json:"coach_program_created_at"`
	CoachProgramDeletedAt gorm.DeletedAt `gorm:"column:coach_program_deleted_at;index"          json:"coach_program_deleted_at,omitempty"`
}

func (CoachProgramModel) TableName() string { return "coach_programs" }

func (cp *CoachProgramModel) BeforeCreate(tx *gorm.DB) error {
	if cp.CoachProgramID == uuid.Nil {
		cp.CoachProgramID = uuid.New()
	}
	return nil
}

type CoachPackageModel struct {
	CoachPackageID uuid.UUID `gorm:"column:coach_package_id;type:uuid;primaryKey" json:"coach_package_id"`

	CoachPackageCoachID   uuid.UUID `gorm:"column:coach_package_coach_id;type:uuid;not null;index"   json:"coach_package_coach_id"`
	CoachPackagePackageID uuid.UUID `gorm:"column:coach_package_package_id;type:uuid;not null;index" json:"coach_package_package_id"`

	CoachPackageCreatedAt time.Time      `gorm:"column:coach_package_created_at;autoCreateTime" json:"coach_package_created_at"`
	CoachPackageDeletedAt gorm.DeletedAt `gorm:"column:coach_package_deleted_at;index"          json:"coach_package_deleted_at,omitempty"`
}

func (CoachPackageModel) TableName() string { return "coach_packages" }

func (cp *CoachPackageModel) BeforeCreate(tx *gorm.DB) error {
	if cp.CoachPackageID == uuid.Nil {
		cp.CoachPackageID = uuid.New()
	}
	return nil
}
