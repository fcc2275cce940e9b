// file: internals/features/academics/programs/service/input.go
package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "akademiku_backend/internals/features/academics/programs/model"
)

/* =========================
   Desired program state
   Bentuk input writer — sudah lolos parsing/validasi schema di controller,
   tapi invariant bisnis tetap dicek lagi di sini (lihat validate.go).
========================= */

type ProgramInput struct {
	Name        string
	Description *string
	BranchID    uuid.UUID
	SportID     uuid.UUID

	// minimal satu, subset AllowedProgramGenders
	Genders []string

	// window kelayakan: isi dua tanggal ATAU pasangan umur+unit.
	StartDateOfBirth *time.Time
	EndDateOfBirth   *time.Time
	AgeStart         *float64
	AgeEnd           *float64
	AgeUnit          AgeUnit
	AgeUnlimited     bool

	NumberOfSeats int
	Type          m.ProgramTypeEnum
	Color         *string
	IsHidden      bool

	Packages  []PackageInput
	CoachIDs  []uuid.UUID
	Discounts []DiscountInput
}

type PackageInput struct {
	// nil = baru; non-nil + Deleted = hapus
	ID      *uuid.UUID
	Deleted bool

	Type m.PackageTypeEnum
	Name string

	Price    float64
	Capacity *int

	// non-monthly: wajib. Monthly: diabaikan, span dihitung dari Months.
	StartDate *time.Time
	EndDate   *time.Time

	// monthly: source of truth span, wajib minimal satu label
	Months []string

	EntryFees              float64
	EntryFeesExplanation   *string
	EntryFeesStartDate     *time.Time
	EntryFeesEndDate       *time.Time
	EntryFeesAppliedMonths []string

	Schedules []ScheduleInput
	CoachIDs  []uuid.UUID
}

type ScheduleInput struct {
	DayOfWeek int
	FromTime  string // "HH:MM"
	ToTime    string
	Memo      *string
	Capacity  *int
	IsHidden  bool
	Override  datatypes.JSON
}

type DiscountInput struct {
	ID      *uuid.UUID
	Deleted bool

	Type  m.DiscountTypeEnum
	Value float64

	StartDate time.Time
	EndDate   time.Time

	PackageIDs []uuid.UUID
}

/* =========================
   Helpers
========================= */

func (in *ProgramInput) normalizedGenders() []string {
	out := make([]string, 0, len(in.Genders))
	for _, g := range in.Genders {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

// resolveDateOfBirthWindow menghasilkan (startDOB, endDOB) dari input.
// Pasangan tanggal menang bila keduanya diisi; selain itu dipakai pasangan
// umur: umur atas (AgeEnd) → tanggal lahir bawah (paling tua), umur bawah
// (AgeStart) → tanggal lahir atas. AgeUnlimited memetakan batas atas ke
// sentinel UnlimitedEndDate.
func (in *ProgramInput) resolveDateOfBirthWindow(now time.Time) (time.Time, time.Time, *SaveError) {
	if in.StartDateOfBirth != nil && in.EndDateOfBirth != nil {
		start := truncateToDate(*in.StartDateOfBirth)
		end := truncateToDate(*in.EndDateOfBirth)
		if end.Before(start) {
			return time.Time{}, time.Time{}, NewValidationError("program_end_date_of_birth", "end date of birth harus >= start date of birth")
		}
		return start, end, nil
	}

	if in.AgeStart == nil {
		return time.Time{}, time.Time{}, NewValidationError("program_age_start_months", "isi pasangan tanggal lahir atau pasangan umur")
	}
	unit := in.AgeUnit
	if unit == "" {
		unit = AgeUnitMonths
	}

	var start time.Time
	if in.AgeEnd != nil {
		start = AgeToDate(*in.AgeEnd, unit, now)
	} else {
		start = AgeToDate(*in.AgeStart, unit, now)
	}

	var end time.Time
	if in.AgeUnlimited {
		end = UnlimitedEndDate(now)
	} else {
		end = AgeToDate(*in.AgeStart, unit, now)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, NewValidationError("program_age_end_months", "rentang umur tidak valid (start > end)")
	}
	return start, end, nil
}
