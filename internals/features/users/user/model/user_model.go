// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	UserAcademyID uuid.UUID `gorm:"column:user_academy_id;type:uuid;not null;index" json:"user_academy_id"`

	UserName  string `gorm:"column:user_name;type:varchar(160);not null"        json:"user_name"`
	UserEmail string `gorm:"column:user_email;type:varchar(255);not null;index" json:"user_email"`

	// bcrypt hash; kosong untuk akun Google-only
	UserPassword *string `gorm:"column:user_password;type:varchar(255)" json:"-"`

	// lihat constants.AllRoles
	UserRole string `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`

	UserGoogleID *string `gorm:"column:user_google_id;type:varchar(64)" json:"-"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index"          json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
