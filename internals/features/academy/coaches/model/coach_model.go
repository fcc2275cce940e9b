// file: internals/features/academy/coaches/model/coach_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachModel struct {
	CoachID uuid.UUID `gorm:"column:coach_id;type:uuid;primaryKey" json:"coach_id"`

	CoachAcademyID uuid.UUID `gorm:"column:coach_academy_id;type:uuid;not null;index" json:"coach_academy_id"`

	CoachName     string  `gorm:"column:coach_name;type:varchar(160);not null" json:"coach_name"`
	CoachBio      *string `gorm:"column:coach_bio;type:text"                   json:"coach_bio,omitempty"`
	CoachImageURL *string `gorm:"column:coach_image_url;type:text"             json:"coach_image_url,omitempty"`

	CoachCreatedAt time.Time      `gorm:"column:coach_created_at;autoCreateTime" json:"coach_created_at"`
	CoachUpdatedAt time.Time      `gorm:"column:coach_updated_at;autoUpdateTime" json:"coach_updated_at"`
	CoachDeletedAt gorm.DeletedAt `gorm:"column:coach_deleted_at;index"          json:"coach_deleted_at,omitempty"`
}

func (CoachModel) TableName() string { return "coaches" }

func (c *CoachModel) BeforeCreate(tx *gorm.DB) error {
	if c.CoachID == uuid.Nil {
		c.CoachID = uuid.New()
	}
	return nil
}
