// file: internals/features/academics/programs/model/program_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

// ProgramTypeEnum merepresentasikan enum program_type_enum di Postgres.
type ProgramTypeEnum string

const (
	ProgramTypeTeam    ProgramTypeEnum = "TEAM"
	ProgramTypePrivate ProgramTypeEnum = "PRIVATE"
)

// Daftar gender yang diizinkan pada program_genders (disimpan sebagai
// string ber-delimiter koma, minimal satu nilai).
var AllowedProgramGenders = []string{
	"male", "female", "mix", "adults", "adults men", "ladies only",
}

const programGenderDelimiter = ","

// JoinGenders menggabungkan set gender menjadi bentuk tersimpan.
func JoinGenders(genders []string) string {
	out := make([]string, 0, len(genders))
	for _, g := range genders {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return strings.Join(out, programGenderDelimiter)
}

// SplitGenders memecah bentuk tersimpan kembali menjadi set gender.
func SplitGenders(stored string) []string {
	parts := strings.Split(stored, programGenderDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

/* =========================
   Model
========================= */

type ProgramModel struct {
	ProgramID uuid.UUID `gorm:"column:program_id;type:uuid;primaryKey" json:"program_id"`

	// tenant scope
	ProgramAcademyID uuid.UUID `gorm:"column:program_academy_id;type:uuid;not null;index" json:"program_academy_id"`

	// referensi
	ProgramBranchID uuid.UUID `gorm:"column:program_branch_id;type:uuid;not null" json:"program_branch_id"`
	ProgramSportID  uuid.UUID `gorm:"column:program_sport_id;type:uuid;not null"  json:"program_sport_id"`

	ProgramName        string  `gorm:"column:program_name;type:varchar(160);not null" json:"program_name"`
	ProgramDescription *string `gorm:"column:program_description;type:text"           json:"program_description,omitempty"`

	// set gender, delimiter koma (lihat JoinGenders/SplitGenders)
	ProgramGenders string `gorm:"column:program_genders;type:varchar(120);not null" json:"program_genders"`

	// window kelayakan umur, sudah diresolve ke tanggal lahir.
	// Invariant: start <= end.
	ProgramStartDateOfBirth time.Time `gorm:"column:program_start_date_of_birth;type:date;not null" json:"program_start_date_of_birth"`
	ProgramEndDateOfBirth   time.Time `gorm:"column:program_end_date_of_birth;type:date;not null"   json:"program_end_date_of_birth"`

	// input alternatif berbasis umur (disimpan untuk prefill UI)
	ProgramAgeStartMonths *float64 `gorm:"column:program_age_start_months" json:"program_age_start_months,omitempty"`
	ProgramAgeEndMonths   *float64 `gorm:"column:program_age_end_months"   json:"program_age_end_months,omitempty"`
	ProgramAgeUnlimited   bool     `gorm:"column:program_age_unlimited;not null;default:false" json:"program_age_unlimited"`

	ProgramNumberOfSeats int             `gorm:"column:program_number_of_seats;not null;default:0" json:"program_number_of_seats"`
	ProgramType          ProgramTypeEnum `gorm:"column:program_type;type:varchar(10);not null;default:'TEAM'" json:"program_type"`
	ProgramColor         *string         `gorm:"column:program_color;type:varchar(20)" json:"program_color,omitempty"`
	ProgramIsHidden      bool            `gorm:"column:program_is_hidden;not null;default:false" json:"program_is_hidden"`

	// audit
	ProgramCreatedAt time.Time      `gorm:"column:program_created_at;autoCreateTime" json:"program_created_at"`
	ProgramUpdatedAt time.Time      `gorm:"column:program_updated_at;autoUpdateTime" json:"program_updated_at"`
	ProgramDeletedAt gorm.DeletedAt `gorm:"column:program_deleted_at;index"          json:"program_deleted_at,omitempty"`
}

func (ProgramModel) TableName() string { return "programs" }

func (p *ProgramModel) BeforeCreate(tx *gorm.DB) error {
	if p.ProgramID == uuid.Nil {
		p.ProgramID = uuid.New()
	}
	return nil
}
