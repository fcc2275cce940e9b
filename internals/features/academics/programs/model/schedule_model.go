// file: internals/features/academics/programs/model/schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PackageScheduleModel adalah sesi mingguan milik satu paket.
// Kebijakan simpan: full replace (delete-all + insert-all) setiap kali
// paketnya di-update — sesi tidak punya identitas yang dirujuk entitas lain,
// jadi tidak perlu diffing per baris.
type PackageScheduleModel struct {
	PackageScheduleID uuid.UUID `gorm:"column:package_schedule_id;type:uuid;primaryKey" json:"package_schedule_id"`

	PackageSchedulePackageID uuid.UUID `gorm:"column:package_schedule_package_id;type:uuid;not null;index" json:"package_schedule_package_id"`

	// 0=Minggu .. 6=Sabtu (mengikuti time.Weekday)
	PackageScheduleDayOfWeek int `gorm:"column:package_schedule_day_of_week;not null" json:"package_schedule_day_of_week"`

	// jam dinding lokal "HH:MM". Invariant from < to diharapkan konsumen,
	// tidak di-enforce di sini.
	PackageScheduleFromTime string `gorm:"column:package_schedule_from_time;type:varchar(5);not null" json:"package_schedule_from_time"`
	PackageScheduleToTime   string `gorm:"column:package_schedule_to_time;type:varchar(5);not null"   json:"package_schedule_to_time"`

	PackageScheduleMemo     *string `gorm:"column:package_schedule_memo;type:text" json:"package_schedule_memo,omitempty"`
	PackageScheduleCapacity *int    `gorm:"column:package_schedule_capacity" json:"package_schedule_capacity,omitempty"`
	PackageScheduleIsHidden bool    `gorm:"column:package_schedule_is_hidden;not null;default:false" json:"package_schedule_is_hidden"`

	// override umur/gender per sesi (opsional, bentuk bebas)
	PackageScheduleOverride datatypes.JSON `gorm:"column:package_schedule_override;type:jsonb" json:"package_schedule_override,omitempty"`

	PackageScheduleCreatedAt time.Time      `gorm:"column:package_schedule_created_at;autoCreateTime" json:"package_schedule_created_at"`
	PackageScheduleDeletedAt gorm.DeletedAt `gorm:"column:package_schedule_deleted_at;index"          json:"package_schedule_deleted_at,omitempty"`
}

func (PackageScheduleModel) TableName() string { return "package_schedules" }

func (s *PackageScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if s.PackageScheduleID == uuid.Nil {
		s.PackageScheduleID = uuid.New()
	}
	return nil
}
