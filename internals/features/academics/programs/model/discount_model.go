// file: internals/features/academics/programs/model/discount_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

type DiscountTypeEnum string

const (
	DiscountTypeFixed      DiscountTypeEnum = "fixed"
	DiscountTypePercentage DiscountTypeEnum = "percentage"
)

func (t DiscountTypeEnum) Valid() bool {
	return t == DiscountTypeFixed || t == DiscountTypePercentage
}

/* =========================
   Models
========================= */

// DiscountModel: potongan harga milik satu program, berlaku untuk subset
// paket program tersebut via discount_packages.
// Invariant: value > 0; percentage <= 100; start < end.
type DiscountModel struct {
	DiscountID uuid.UUID `gorm:"column:discount_id;type:uuid;primaryKey" json:"discount_id"`

	DiscountProgramID uuid.UUID `gorm:"column:discount_program_id;type:uuid;not null;index" json:"discount_program_id"`

	DiscountType  DiscountTypeEnum `gorm:"column:discount_type;type:varchar(12);not null" json:"discount_type"`
	DiscountValue float64          `gorm:"column:discount_value;type:numeric(12,2);not null" json:"discount_value"`

	DiscountStartDate time.Time `gorm:"column:discount_start_date;type:date;not null" json:"discount_start_date"`
	DiscountEndDate   time.Time `gorm:"column:discount_end_date;type:date;not null"   json:"discount_end_date"`

	DiscountCreatedAt time.Time      `gorm:"column:discount_created_at;autoCreateTime" json:"discount_created_at"`
	DiscountUpdatedAt time.Time      `gorm:"column:discount_updated_at;autoUpdateTime" json:"discount_updated_at"`
	DiscountDeletedAt gorm.DeletedAt `gorm:"column:discount_deleted_at;index"          json:"discount_deleted_at,omitempty"`
}

func (DiscountModel) TableName() string { return "discounts" }

func (d *DiscountModel) BeforeCreate(tx *gorm.DB) error {
	if d.DiscountID == uuid.Nil {
		d.DiscountID = uuid.New()
	}
	return nil
}

// DiscountPackageModel: join murni discount ↔ package, tanpa payload lain.
type DiscountPackageModel struct {
	DiscountPackageID uuid.UUID `gorm:"column:discount_package_id;type:uuid;primaryKey" json:"discount_package_id"`

	DiscountPackageDiscountID uuid.UUID `gorm:"column:discount_package_discount_id;type:uuid;not null;index" json:"discount_package_discount_id"`
	DiscountPackagePackageID  uuid.UUID `gorm:"column:discount_package_package_id;type:uuid;not null;index"  json:"discount_package_package_id"`

	DiscountPackageCreatedAt time.Time      `gorm:"column:discount_package_created_at;autoCreateTime" json:"discount_package_created_at"`
	DiscountPackageDeletedAt gorm.DeletedAt `gorm:"column:discount_package_deleted_at;index"          json:"discount_package_deleted_at,omitempty"`
}

func (DiscountPackageModel) TableName() string { return "discount_packages" }

func (dp *DiscountPackageModel) BeforeCreate(tx *gorm.DB) error {
	if dp.DiscountPackageID == uuid.Nil {
		dp.DiscountPackageID = uuid.New()
	}
	return nil
}
