// file: internals/features/academics/programs/model/sport_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SportModel adalah lookup cabang olahraga per academy.
type SportModel struct {
	SportID uuid.UUID `gorm:"column:sport_id;type:uuid;primaryKey" json:"sport_id"`

	SportAcademyID uuid.UUID `gorm:"column:sport_academy_id;type:uuid;not null;index" json:"sport_academy_id"`
	SportName      string    `gorm:"column:sport_name;type:varchar(120);not null"     json:"sport_name"`

	SportCreatedAt time.Time      `gorm:"column:sport_created_at;autoCreateTime" json:"sport_created_at"`
	SportDeletedAt gorm.DeletedAt `gorm:"column:sport_deleted_at;index"          json:"sport_deleted_at,omitempty"`
}

func (SportModel) TableName() string { return "sports" }

func (s *SportModel) BeforeCreate(tx *gorm.DB) error {
	if s.SportID == uuid.Nil {
		s.SportID = uuid.New()
	}
	return nil
}
