// file: internals/features/academy/academies/model/academy_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademyModel adalah tenant utama: semua entitas lain menggantung di sini.
type AcademyModel struct {
	AcademyID uuid.UUID `gorm:"column:academy_id;type:uuid;primaryKey" json:"academy_id"`

	AcademyName string `gorm:"column:academy_name;type:varchar(160);not null"        json:"academy_name"`
	AcademySlug string `gorm:"column:academy_slug;type:varchar(120);not null;unique" json:"academy_slug"`

	AcademyBio     *string `gorm:"column:academy_bio;type:text"          json:"academy_bio,omitempty"`
	AcademyCity    *string `gorm:"column:academy_city;type:varchar(120)" json:"academy_city,omitempty"`
	AcademyLogoURL *string `gorm:"column:academy_logo_url;type:text"     json:"academy_logo_url,omitempty"`

	AcademyIsActive bool `gorm:"column:academy_is_active;not null;default:true" json:"academy_is_active"`

	AcademyCreatedAt time.Time      `gorm:"column:academy_created_at;autoCreateTime" json:"academy_created_at"`
	AcademyUpdatedAt time.Time      `gorm:"column:academy_updated_at;autoUpdateTime" json:"academy_updated_at"`
	AcademyDeletedAt gorm.DeletedAt `gorm:"column:academy_deleted_at;index"          json:"academy_deleted_at,omitempty"`
}

func (AcademyModel) TableName() string { return "academies" }

func (a *AcademyModel) BeforeCreate(tx *gorm.DB) error {
	if a.AcademyID == uuid.Nil {
		a.AcademyID = uuid.New()
	}
	return nil
}
