// file: internals/features/academics/programs/dto/program_dto.go
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "akademiku_backend/internals/features/academics/programs/model"
	svc "akademiku_backend/internals/features/academics/programs/service"
)

/* =========================================================
   Helpers
   ========================================================= */

const dateLayout = "2006-01-02"

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(*s), time.Local)
	if err != nil {
		return nil, errors.New("tanggal tidak valid (format YYYY-MM-DD): " + *s)
	}
	return &t, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   1) REQUESTS — desired program state
   ========================================================= */

type SaveProgramRequest struct {
	ProgramName        string  `json:"program_name" validate:"required,max=160"`
	ProgramDescription *string `json:"program_description" validate:"omitempty,max=10000"`

	ProgramBranchID uuid.UUID `json:"program_branch_id" validate:"required"`
	ProgramSportID  uuid.UUID `json:"program_sport_id"  validate:"required"`

	ProgramGenders []string `json:"program_genders" validate:"required,min=1"`

	// window kelayakan: pasangan tanggal ("YYYY-MM-DD") ATAU pasangan umur
	ProgramStartDateOfBirth *string  `json:"program_start_date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	ProgramEndDateOfBirth   *string  `json:"program_end_date_of_birth"   validate:"omitempty,datetime=2006-01-02"`
	ProgramAgeStart         *float64 `json:"program_age_start" validate:"omitempty,gte=0"`
	ProgramAgeEnd           *float64 `json:"program_age_end"   validate:"omitempty,gte=0"`
	ProgramAgeUnit          *string  `json:"program_age_unit"  validate:"omitempty,oneof=months years"`
	ProgramAgeUnlimited     bool     `json:"program_age_unlimited"`

	ProgramNumberOfSeats int     `json:"program_number_of_seats" validate:"gte=0"`
	ProgramType          string  `json:"program_type" validate:"required,oneof=TEAM PRIVATE"`
	ProgramColor         *string `json:"program_color" validate:"omitempty,max=20"`
	ProgramIsHidden      bool    `json:"program_is_hidden"`

	Packages  []PackageRequest  `json:"packages"  validate:"omitempty,dive"`
	CoachIDs  []uuid.UUID       `json:"coach_ids"`
	Discounts []DiscountRequest `json:"discounts" validate:"omitempty,dive"`
}

type PackageRequest struct {
	PackageID      *uuid.UUID `json:"package_id"`
	PackageDeleted bool       `json:"package_deleted"`

	PackageType string `json:"package_type" validate:"required_unless=PackageDeleted true,omitempty,oneof=term monthly full_season assessment"`
	PackageName string `json:"package_name" validate:"required_unless=PackageDeleted true,omitempty,max=160"`

	PackagePrice    float64 `json:"package_price" validate:"gte=0"`
	PackageCapacity *int    `json:"package_capacity" validate:"omitempty,gte=0"`

	PackageStartDate *string  `json:"package_start_date" validate:"omitempty,datetime=2006-01-02"`
	PackageEndDate   *string  `json:"package_end_date"   validate:"omitempty,datetime=2006-01-02"`
	PackageMonths    []string `json:"package_months"`

	PackageEntryFees              float64  `json:"package_entry_fees" validate:"gte=0"`
	PackageEntryFeesExplanation   *string  `json:"package_entry_fees_explanation"`
	PackageEntryFeesStartDate     *string  `json:"package_entry_fees_start_date" validate:"omitempty,datetime=2006-01-02"`
	PackageEntryFeesEndDate       *string  `json:"package_entry_fees_end_date"   validate:"omitempty,datetime=2006-01-02"`
	PackageEntryFeesAppliedMonths []string `json:"package_entry_fees_applied_months"`

	Schedules []ScheduleRequest `json:"schedules" validate:"omitempty,dive"`
	CoachIDs  []uuid.UUID       `json:"coach_ids"`
}

type ScheduleRequest struct {
	ScheduleDayOfWeek int     `json:"schedule_day_of_week" validate:"gte=0,lte=6"`
	ScheduleFromTime  string  `json:"schedule_from_time" validate:"required,len=5"`
	ScheduleToTime    string  `json:"schedule_to_time"   validate:"required,len=5"`
	ScheduleMemo      *string `json:"schedule_memo" validate:"omitempty,max=2000"`
	ScheduleCapacity  *int    `json:"schedule_capacity" validate:"omitempty,gte=0"`
	ScheduleIsHidden  bool    `json:"schedule_is_hidden"`

	ScheduleOverride datatypes.JSON `json:"schedule_override"`
}

type DiscountRequest struct {
	DiscountID      *uuid.UUID `json:"discount_id"`
	DiscountDeleted bool       `json:"discount_deleted"`

	DiscountType  string  `json:"discount_type" validate:"required_unless=DiscountDeleted true,omitempty,oneof=fixed percentage"`
	DiscountValue float64 `json:"discount_value" validate:"gte=0"`

	DiscountStartDate string `json:"discount_start_date" validate:"required_unless=DiscountDeleted true,omitempty,datetime=2006-01-02"`
	DiscountEndDate   string `json:"discount_end_date"   validate:"required_unless=DiscountDeleted true,omitempty,datetime=2006-01-02"`

	PackageIDs []uuid.UUID `json:"package_ids"`
}

/* =========================================================
   Request → service input
   ========================================================= */

func (r *SaveProgramRequest) ToInput() (*svc.ProgramInput, error) {
	startDOB, err := parseDatePtr(r.ProgramStartDateOfBirth)
	if err != nil {
		return nil, err
	}
	endDOB, err := parseDatePtr(r.ProgramEndDateOfBirth)
	if err != nil {
		return nil, err
	}

	in := &svc.ProgramInput{
		Name:             strings.TrimSpace(r.ProgramName),
		Description:      trimPtr(r.ProgramDescription),
		BranchID:         r.ProgramBranchID,
		SportID:          r.ProgramSportID,
		Genders:          r.ProgramGenders,
		StartDateOfBirth: startDOB,
		EndDateOfBirth:   endDOB,
		AgeStart:         r.ProgramAgeStart,
		AgeEnd:           r.ProgramAgeEnd,
		AgeUnlimited:     r.ProgramAgeUnlimited,
		NumberOfSeats:    r.ProgramNumberOfSeats,
		Type:             m.ProgramTypeEnum(r.ProgramType),
		Color:            trimPtr(r.ProgramColor),
		IsHidden:         r.ProgramIsHidden,
		CoachIDs:         r.CoachIDs,
	}
	if r.ProgramAgeUnit != nil {
		in.AgeUnit = svc.AgeUnit(*r.ProgramAgeUnit)
	}

	for i := range r.Packages {
		p, err := r.Packages[i].toInput()
		if err != nil {
			return nil, err
		}
		in.Packages = append(in.Packages, *p)
	}
	for i := range r.Discounts {
		d, err := r.Discounts[i].toInput()
		if err != nil {
			return nil, err
		}
		in.Discounts = append(in.Discounts, *d)
	}
	return in, nil
}

func (r *PackageRequest) toInput() (*svc.PackageInput, error) {
	start, err := parseDatePtr(r.PackageStartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDatePtr(r.PackageEndDate)
	if err != nil {
		return nil, err
	}
	feeStart, err := parseDatePtr(r.PackageEntryFeesStartDate)
	if err != nil {
		return nil, err
	}
	feeEnd, err := parseDatePtr(r.PackageEntryFeesEndDate)
	if err != nil {
		return nil, err
	}

	p := &svc.PackageInput{
		ID:                     r.PackageID,
		Deleted:                r.PackageDeleted,
		Type:                   m.PackageTypeEnum(r.PackageType),
		Name:                   strings.TrimSpace(r.PackageName),
		Price:                  r.PackagePrice,
		Capacity:               r.PackageCapacity,
		StartDate:              start,
		EndDate:                end,
		Months:                 r.PackageMonths,
		EntryFees:              r.PackageEntryFees,
		EntryFeesExplanation:   trimPtr(r.PackageEntryFeesExplanation),
		EntryFeesStartDate:     feeStart,
		EntryFeesEndDate:       feeEnd,
		EntryFeesAppliedMonths: r.PackageEntryFeesAppliedMonths,
		CoachIDs:               r.CoachIDs,
	}
	for _, s := range r.Schedules {
		p.Schedules = append(p.Schedules, svc.ScheduleInput{
			DayOfWeek: s.ScheduleDayOfWeek,
			FromTime:  strings.TrimSpace(s.ScheduleFromTime),
			ToTime:    strings.TrimSpace(s.ScheduleToTime),
			Memo:      trimPtr(s.ScheduleMemo),
			Capacity:  s.ScheduleCapacity,
			IsHidden:  s.ScheduleIsHidden,
			Override:  s.ScheduleOverride,
		})
	}
	return p, nil
}

func (r *DiscountRequest) toInput() (*svc.DiscountInput, error) {
	d := &svc.DiscountInput{
		ID:         r.DiscountID,
		Deleted:    r.DiscountDeleted,
		Type:       m.DiscountTypeEnum(r.DiscountType),
		Value:      r.DiscountValue,
		PackageIDs: r.PackageIDs,
	}
	if r.DiscountDeleted {
		return d, nil
	}
	start, err := time.ParseInLocation(dateLayout, r.DiscountStartDate, time.Local)
	if err != nil {
		return nil, errors.New("discount_start_date tidak valid (format YYYY-MM-DD)")
	}
	end, err := time.ParseInLocation(dateLayout, r.DiscountEndDate, time.Local)
	if err != nil {
		return nil, errors.New("discount_end_date tidak valid (format YYYY-MM-DD)")
	}
	d.StartDate = start
	d.EndDate = end
	return d, nil
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type ProgramResponse struct {
	m.ProgramModel
	// set gender dalam bentuk slice, hasil split dari kolom tersimpan
	Genders   []string           `json:"genders"`
	Packages  []PackageResponse  `json:"packages,omitempty"`
	CoachIDs  []uuid.UUID        `json:"coach_ids,omitempty"`
	Discounts []DiscountResponse `json:"discounts,omitempty"`
}

type PackageResponse struct {
	m.PackageModel
	Schedules []m.PackageScheduleModel `json:"schedules,omitempty"`
	CoachIDs  []uuid.UUID              `json:"coach_ids,omitempty"`
}

type DiscountResponse struct {
	m.DiscountModel
	PackageIDs []uuid.UUID `json:"package_ids"`
}

func NewProgramResponse(p *m.ProgramModel) *ProgramResponse {
	return &ProgramResponse{
		ProgramModel: *p,
		Genders:      m.SplitGenders(p.ProgramGenders),
	}
}
