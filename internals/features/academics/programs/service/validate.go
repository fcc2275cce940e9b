// file: internals/features/academics/programs/service/validate.go
package service

import (
	"strings"

	m "akademiku_backend/internals/features/academics/programs/model"
)

/* =========================
   Validasi invariant bisnis
   Dijalankan SEBELUM transaksi dibuka; error di sini tidak pernah
   menyentuh storage.
========================= */

func validateProgramInput(in *ProgramInput) *SaveError {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("program_name", "nama program wajib diisi")
	}

	genders := in.normalizedGenders()
	if len(genders) == 0 {
		return NewValidationError("program_genders", "minimal satu gender harus dipilih")
	}
	allowed := make(map[string]struct{}, len(m.AllowedProgramGenders))
	for _, g := range m.AllowedProgramGenders {
		allowed[g] = struct{}{}
	}
	for _, g := range genders {
		if _, ok := allowed[g]; !ok {
			return NewValidationError("program_genders", "gender tidak dikenal: "+g)
		}
	}

	if in.Type != m.ProgramTypeTeam && in.Type != m.ProgramTypePrivate {
		return NewValidationError("program_type", "tipe program harus TEAM atau PRIVATE")
	}

	for i := range in.Packages {
		if err := validatePackageInput(&in.Packages[i]); err != nil {
			return err
		}
	}
	for i := range in.Discounts {
		if err := validateDiscountInput(&in.Discounts[i]); err != nil {
			return err
		}
	}
	return nil
}

func validatePackageInput(p *PackageInput) *SaveError {
	if p.Deleted {
		// baris yang ditandai hapus tidak perlu valid lagi
		return nil
	}
	if !p.Type.Valid() {
		return NewValidationError("package_type", "tipe paket tidak dikenal")
	}
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("package_name", "nama paket wajib diisi")
	}
	if p.Price < 0 {
		return NewValidationError("package_price", "harga paket tidak boleh negatif")
	}

	if p.Type == m.PackageTypeMonthly {
		if len(p.Months) == 0 {
			return NewValidationError("package_months", "paket monthly wajib memilih minimal satu bulan")
		}
		for _, label := range p.Months {
			if _, err := ParseMonthLabel(label); err != nil {
				return NewValidationError("package_months", err.Error())
			}
		}
	} else {
		if p.StartDate == nil || p.EndDate == nil {
			return NewValidationError("package_start_date", "tanggal mulai/selesai paket wajib diisi")
		}
		if p.EndDate.Before(*p.StartDate) {
			return NewValidationError("package_end_date", "tanggal selesai harus >= tanggal mulai")
		}
	}

	if p.EntryFees > 0 {
		if p.EntryFeesExplanation == nil || strings.TrimSpace(*p.EntryFeesExplanation) == "" {
			return NewValidationError("package_entry_fees_explanation", "entry fee > 0 wajib disertai penjelasan")
		}
		if p.Type == m.PackageTypeMonthly {
			if len(p.EntryFeesAppliedMonths) == 0 {
				return NewValidationError("package_entry_fees_applied_months", "paket monthly wajib memilih bulan berlaku entry fee")
			}
			for _, label := range p.EntryFeesAppliedMonths {
				if _, err := ParseMonthLabel(label); err != nil {
					return NewValidationError("package_entry_fees_applied_months", err.Error())
				}
			}
		}
	}

	for i := range p.Schedules {
		if err := validateScheduleInput(&p.Schedules[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateScheduleInput(s *ScheduleInput) *SaveError {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return NewValidationError("package_schedule_day_of_week", "day of week harus 0..6")
	}
	if !validClockHHMM(s.FromTime) || !validClockHHMM(s.ToTime) {
		return NewValidationError("package_schedule_from_time", "format jam harus HH:MM")
	}
	return nil
}

func validateDiscountInput(d *DiscountInput) *SaveError {
	if d.Deleted {
		return nil
	}
	if !d.Type.Valid() {
		return NewValidationError("discount_type", "tipe discount harus fixed atau percentage")
	}
	if d.Value <= 0 {
		return NewValidationError("discount_value", "nilai discount harus > 0")
	}
	// bound 0–100 di-enforce di sini apa pun validasi caller (celah lama:
	// sebagian path UI lolos tanpa cek)
	if d.Type == m.DiscountTypePercentage && d.Value > 100 {
		return NewValidationError("discount_value", "discount persentase maksimal 100")
	}
	if !d.StartDate.Before(d.EndDate) {
		return NewValidationError("discount_end_date", "tanggal selesai discount harus > tanggal mulai")
	}
	return nil
}

func validClockHHMM(v string) bool {
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	hh := int(v[0]-'0')*10 + int(v[1]-'0')
	mm := int(v[3]-'0')*10 + int(v[4]-'0')
	for _, c := range []byte{v[0], v[1], v[3], v[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hh < 24 && mm < 60
}
