// file: internals/features/academics/programs/model/package_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

// PackageTypeEnum adalah tipe paket eksplisit. Dulu tipe di-infer dari
// prefix nama ("Term 3", "Monthly Juni"); sekarang disimpan sebagai kolom
// sendiri dan nama murni urusan tampilan.
type PackageTypeEnum string

const (
	PackageTypeTerm       PackageTypeEnum = "term"
	PackageTypeMonthly    PackageTypeEnum = "monthly"
	PackageTypeFullSeason PackageTypeEnum = "full_season"
	PackageTypeAssessment PackageTypeEnum = "assessment"
)

func (t PackageTypeEnum) Valid() bool {
	switch t {
	case PackageTypeTerm, PackageTypeMonthly, PackageTypeFullSeason, PackageTypeAssessment:
		return true
	}
	return false
}

/* =========================
   Model
========================= */

type PackageModel struct {
	PackageID uuid.UUID `gorm:"column:package_id;type:uuid;primaryKey" json:"package_id"`

	PackageProgramID uuid.UUID `gorm:"column:package_program_id;type:uuid;not null;index" json:"package_program_id"`

	PackageType PackageTypeEnum `gorm:"column:package_type;type:varchar(20);not null" json:"package_type"`
	PackageName string          `gorm:"column:package_name;type:varchar(160);not null" json:"package_name"`

	PackagePrice    float64 `gorm:"column:package_price;type:numeric(12,2);not null;default:0" json:"package_price"`
	PackageCapacity *int    `gorm:"column:package_capacity" json:"package_capacity,omitempty"`

	// rentang berlaku. Untuk paket monthly, rentang ini SELALU dihitung ulang
	// dari package_months pada setiap save (months = source of truth).
	PackageStartDate time.Time `gorm:"column:package_start_date;type:date;not null" json:"package_start_date"`
	PackageEndDate   time.Time `gorm:"column:package_end_date;type:date;not null"   json:"package_end_date"`

	// daftar label bulan ("June 2025", ...) untuk paket monthly.
	PackageMonths datatypes.JSON `gorm:"column:package_months;type:jsonb" json:"package_months,omitempty"`

	// entry fee. Jika > 0 maka explanation wajib; paket monthly juga wajib
	// punya minimal satu bulan pada applied_months, paket lain memakai
	// sub-range tanggal.
	PackageEntryFees              float64        `gorm:"column:package_entry_fees;type:numeric(12,2);not null;default:0" json:"package_entry_fees"`
	PackageEntryFeesExplanation   *string        `gorm:"column:package_entry_fees_explanation;type:text" json:"package_entry_fees_explanation,omitempty"`
	PackageEntryFeesStartDate     *time.Time     `gorm:"column:package_entry_fees_start_date;type:date" json:"package_entry_fees_start_date,omitempty"`
	PackageEntryFeesEndDate       *time.Time     `gorm:"column:package_entry_fees_end_date;type:date"   json:"package_entry_fees_end_date,omitempty"`
	PackageEntryFeesAppliedMonths datatypes.JSON `gorm:"column:package_entry_fees_applied_months;type:jsonb" json:"package_entry_fees_applied_months,omitempty"`

	// audit
	PackageCreatedAt time.Time      `gorm:"column:package_created_at;autoCreateTime" json:"package_created_at"`
	PackageUpdatedAt time.Time      `gorm:"column:package_updated_at;autoUpdateTime" json:"package_updated_at"`
	PackageDeletedAt gorm.DeletedAt `gorm:"column:package_deleted_at;index"          json:"package_deleted_at,omitempty"`
}

func (PackageModel) TableName() string { return "packages" }

func (p *PackageModel) BeforeCreate(tx *gorm.DB) error {
	if p.PackageID == uuid.Nil {
		p.PackageID = uuid.New()
	}
	return nil
}
