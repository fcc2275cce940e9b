// file: internals/features/academy/branches/model/branch_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BranchModel adalah lokasi fisik milik satu academy.
type BranchModel struct {
	BranchID uuid.UUID `gorm:"column:branch_id;type:uuid;primaryKey" json:"branch_id"`

	BranchAcademyID uuid.UUID `gorm:"column:branch_academy_id;type:uuid;not null;index" json:"branch_academy_id"`

	BranchName    string  `gorm:"column:branch_name;type:varchar(160);not null" json:"branch_name"`
	BranchAddress *string `gorm:"column:branch_address;type:text"               json:"branch_address,omitempty"`
	BranchCity    *string `gorm:"column:branch_city;type:varchar(120)"          json:"branch_city,omitempty"`

	// koordinat opsional, diisi dari geocoding di luar core
	BranchLatitude  *float64 `gorm:"column:branch_latitude"  json:"branch_latitude,omitempty"`
	BranchLongitude *float64 `gorm:"column:branch_longitude" json:"branch_longitude,omitempty"`

	BranchImageURL *string `gorm:"column:branch_image_url;type:text" json:"branch_image_url,omitempty"`

	BranchCreatedAt time.Time      `gorm:"column:branch_created_at;autoCreateTime" json:"branch_created_at"`
	BranchUpdatedAt time.Time      `gorm:"column:branch_updated_at;autoUpdateTime" json:"branch_updated_at"`
	BranchDeletedAt gorm.DeletedAt `gorm:"column:branch_deleted_at;index"          json:"branch_deleted_at,omitempty"`
}

func (BranchModel) TableName() string { return "branches" }

func (b *BranchModel) BeforeCreate(tx *gorm.DB) error {
	if b.BranchID == uuid.Nil {
		b.BranchID = uuid.New()
	}
	return nil
}
