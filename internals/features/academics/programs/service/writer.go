// file: internals/features/academics/programs/service/writer.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"akademiku_backend/internals/constants"
	branchModel "akademiku_backend/internals/features/academy/branches/model"
	coachModel "akademiku_backend/internals/features/academy/coaches/model"
	m "akademiku_backend/internals/features/academics/programs/model"
)

/* =========================
   Transactional Program Writer
   Satu transaksi atomik untuk program + packages + schedules + coach links
   + discounts + discount_packages. Gagal di langkah mana pun → rollback
   total, tidak ada state "sebagian paket tersimpan".
========================= */

// Actor adalah identitas yang sudah diresolve dari token oleh middleware.
type Actor struct {
	UserID    uuid.UUID
	AcademyID uuid.UUID
	Role      string
}

// SaveResult: identitas program yang tersimpan.
type SaveResult struct {
	ProgramID uuid.UUID
}

// SaveProgram meng-upsert program beserta seluruh koleksi anaknya dari satu
// desired state. programID nil berarti create. Urutan di dalam transaksi:
//
//  1. upsert row program (resolve umur→tanggal bila perlu)
//  2. load koleksi anak yang tersimpan (fresh, di dalam TX)
//  3. reconcile coach links, packages, discounts
//  4. coach links: remove lalu add
//  5. package removals dulu (schedules + asosiasi discount + coach-package
//     dibersihkan sebelum row paketnya)
//  6. package additions (resolve span monthly, insert row, bulk schedules)
//  7. package updates (resolve span, update row, full replace schedules)
//  8. discount removals, additions, updates (asosiasi di-replace penuh)
//
// Removal sebelum addition menghindari bentrok unique key transien saat
// sebuah update efektif "mengganti" entitas dengan natural key yang sama;
// anak selalu dihapus sebelum induknya, induk selalu di-insert sebelum anak.
//
// Otorisasi dicek SEBELUM transaksi dibuka. Semua error keluar sebagai
// *SaveError (lihat errors.go).
func SaveProgram(ctx context.Context, db *gorm.DB, actor Actor, programID *uuid.UUID, in *ProgramInput) (SaveResult, error) {
	// --- otorisasi (pre-TX, tidak pernah di-retry)
	if actor.AcademyID == uuid.Nil {
		return SaveResult{}, NewAuthorizationError("academy scope tidak ditemukan")
	}
	if !constants.RoleIn(actor.Role, constants.AdminAndAbove) {
		return SaveResult{}, NewAuthorizationError("hanya admin/owner yang boleh menyimpan program")
	}

	// --- validasi invariant (pre-TX, murni)
	if verr := validateProgramInput(in); verr != nil {
		return SaveResult{}, verr
	}
	now := time.Now()
	startDOB, endDOB, verr := in.resolveDateOfBirthWindow(now)
	if verr != nil {
		return SaveResult{}, verr
	}

	var savedID uuid.UUID

	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) upsert program
		id, err := upsertProgramRow(tx, actor, programID, in, startDOB, endDOB)
		if err != nil {
			return err
		}
		savedID = id

		// 2) load state tersimpan (fresh di dalam TX, hindari diff basi)
		var persistedPackages []m.PackageModel
		if err := tx.Where("package_program_id = ?", id).Find(&persistedPackages).Error; err != nil {
			return WrapPersistence(err)
		}
		var persistedCoachLinks []coachModel.CoachProgramModel
		if err := tx.Where("coach_program_program_id = ?", id).Find(&persistedCoachLinks).Error; err != nil {
			return WrapPersistence(err)
		}
		var persistedDiscounts []m.DiscountModel
		if err := tx.Where("discount_program_id = ?", id).Find(&persistedDiscounts).Error; err != nil {
			return WrapPersistence(err)
		}

		// 3) reconcile
		coachDiff, err := reconcileCoachLinks(persistedCoachLinks, in.CoachIDs)
		if err != nil {
			return err
		}
		packageDiff, err := reconcilePackages(persistedPackages, in.Packages)
		if err != nil {
			return err
		}
		discountDiff, err := reconcileDiscounts(persistedDiscounts, in.Discounts)
		if err != nil {
			return err
		}

		// 4) coach links (join murni, remove lalu add)
		if err := applyCoachLinks(tx, id, coachDiff); err != nil {
			return err
		}

		// 5) package removals dulu
		if err := removePackages(tx, id, packageDiff.ToRemove); err != nil {
			return err
		}

		// 6) package additions
		for i := range packageDiff.ToAdd {
			if err := insertPackage(tx, id, &packageDiff.ToAdd[i]); err != nil {
				return err
			}
		}

		// 7) package updates
		for i := range packageDiff.ToUpdate {
			if err := updatePackage(tx, id, &packageDiff.ToUpdate[i]); err != nil {
				return err
			}
		}

		// 8) discounts: remove → add → update
		if err := applyDiscounts(tx, id, discountDiff); err != nil {
			return err
		}

		return nil
	})

	if txErr != nil {
		return SaveResult{}, AsSaveError(txErr)
	}
	return SaveResult{ProgramID: savedID}, nil
}

/* =========================
   Step 1 — program row
========================= */

func upsertProgramRow(tx *gorm.DB, actor Actor, programID *uuid.UUID, in *ProgramInput, startDOB, endDOB time.Time) (uuid.UUID, error) {
	// referensi branch & sport harus ada di academy yang sama
	var count int64
	if err := tx.Model(&branchModel.BranchModel{}).
		Where("branch_id = ? AND branch_academy_id = ?", in.BranchID, actor.AcademyID).
		Count(&count).Error; err != nil {
		return uuid.Nil, WrapPersistence(err)
	}
	if count == 0 {
		return uuid.Nil, NewNotFoundError("branch tidak ditemukan")
	}
	if err := tx.Model(&m.SportModel{}).
		Where("sport_id = ? AND sport_academy_id = ?", in.SportID, actor.AcademyID).
		Count(&count).Error; err != nil {
		return uuid.Nil, WrapPersistence(err)
	}
	if count == 0 {
		return uuid.Nil, NewNotFoundError("sport tidak ditemukan")
	}

	if programID == nil {
		row := m.ProgramModel{
			ProgramAcademyID:        actor.AcademyID,
			ProgramBranchID:         in.BranchID,
			ProgramSportID:          in.SportID,
			ProgramName:             in.Name,
			ProgramDescription:      in.Description,
			ProgramGenders:          m.JoinGenders(in.normalizedGenders()),
			ProgramStartDateOfBirth: startDOB,
			ProgramEndDateOfBirth:   endDOB,
			ProgramAgeStartMonths:   in.AgeStart,
			ProgramAgeEndMonths:     in.AgeEnd,
			ProgramAgeUnlimited:     in.AgeUnlimited,
			ProgramNumberOfSeats:    in.NumberOfSeats,
			ProgramType:             in.Type,
			ProgramColor:            in.Color,
			ProgramIsHidden:         in.IsHidden,
		}
		if err := tx.Create(&row).Error; err != nil {
			return uuid.Nil, WrapPersistence(err)
		}
		return row.ProgramID, nil
	}

	// update: pastikan program milik academy si actor
	var existing m.ProgramModel
	if err := tx.Where("program_id = ? AND program_academy_id = ?", *programID, actor.AcademyID).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, NewNotFoundError("program tidak ditemukan")
		}
		return uuid.Nil, WrapPersistence(err)
	}

	updates := map[string]any{
		"program_branch_id":           in.BranchID,
		"program_sport_id":            in.SportID,
		"program_name":                in.Name,
		"program_description":         in.Description,
		"program_genders":             m.JoinGenders(in.normalizedGenders()),
		"program_start_date_of_birth": startDOB,
		"program_end_date_of_birth":   endDOB,
		"program_age_start_months":    in.AgeStart,
		"program_age_end_months":      in.AgeEnd,
		"program_age_unlimited":       in.AgeUnlimited,
		"program_number_of_seats":     in.NumberOfSeats,
		"program_type":                in.Type,
		"program_color":               in.Color,
		"program_is_hidden":           in.IsHidden,
	}
	if err := tx.Model(&m.ProgramModel{}).
		Where("program_id = ?", existing.ProgramID).
		Updates(updates).Error; err != nil {
		return uuid.Nil, WrapPersistence(err)
	}
	return existing.ProgramID, nil
}

/* =========================
   Step 3 — reconcile wrappers
========================= */

func reconcileCoachLinks(persisted []coachModel.CoachProgramModel, desired []uuid.UUID) (Diff[uuid.UUID, uuid.UUID], error) {
	persistedIDs := make([]uuid.UUID, 0, len(persisted))
	for _, link := range persisted {
		persistedIDs = append(persistedIDs, link.CoachProgramCoachID)
	}
	return Reconcile(
		"coach_ids",
		persistedIDs,
		desired,
		func(id uuid.UUID) (uuid.UUID, bool) { return id, true },
		nil,
	)
}

func reconcilePackages(persisted []m.PackageModel, desired []PackageInput) (Diff[PackageInput, uuid.UUID], error) {
	persistedInputs := make([]PackageInput, 0, len(persisted))
	for i := range persisted {
		id := persisted[i].PackageID
		persistedInputs = append(persistedInputs, PackageInput{ID: &id})
	}
	return Reconcile(
		"packages",
		persistedInputs,
		desired,
		func(p PackageInput) (uuid.UUID, bool) {
			if p.ID == nil {
				return uuid.Nil, false
			}
			return *p.ID, true
		},
		func(p PackageInput) bool { return p.Deleted },
	)
}

func reconcileDiscounts(persisted []m.DiscountModel, desired []DiscountInput) (Diff[DiscountInput, uuid.UUID], error) {
	persistedInputs := make([]DiscountInput, 0, len(persisted))
	for i := range persisted {
		id := persisted[i].DiscountID
		persistedInputs = append(persistedInputs, DiscountInput{ID: &id})
	}
	return Reconcile(
		"discounts",
		persistedInputs,
		desired,
		func(d DiscountInput) (uuid.UUID, bool) {
			if d.ID == nil {
				return uuid.Nil, false
			}
			return *d.ID, true
		},
		func(d DiscountInput) bool { return d.Deleted },
	)
}

/* =========================
   Step 4 — coach links
========================= */

func applyCoachLinks(tx *gorm.DB, programID uuid.UUID, diff Diff[uuid.UUID, uuid.UUID]) error {
	if len(diff.ToRemove) > 0 {
		if err := tx.Where("coach_program_program_id = ? AND coach_program_coach_id IN ?", programID, diff.ToRemove).
			Delete(&coachModel.CoachProgramModel{}).Error; err != nil {
			return WrapPersistence(err)
		}
	}
	for _, coachID := range diff.ToAdd {
		link := coachModel.CoachProgramModel{
			CoachProgramProgramID: programID,
			CoachProgramCoachID:   coachID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return WrapPersistence(err)
		}
	}
	// ToUpdate = no-op: join murni tanpa payload
	return nil
}

/* =========================
   Steps 5–7 — packages
========================= */

func removePackages(tx *gorm.DB, programID uuid.UUID, removeIDs []uuid.UUID) error {
	if len(removeIDs) == 0 {
		return nil
	}
	// anak dulu: schedules, asosiasi discount, coach-package link — baru
	// row paketnya. Discount yang kehilangan semua asosiasi dibiarkan
	// (inert tapi valid), tidak dihapus otomatis.
	if err := tx.Where("package_schedule_package_id IN ?", removeIDs).
		Delete(&m.PackageScheduleModel{}).Error; err != nil {
		return WrapPersistence(err)
	}
	if err := tx.Where("discount_package_package_id IN ?", removeIDs).
		Delete(&m.DiscountPackageModel{}).Error; err != nil {
		return WrapPersistence(err)
	}
	if err := tx.Where("coach_package_package_id IN ?", removeIDs).
		Delete(&coachModel.CoachPackageModel{}).Error; err != nil {
		return WrapPersistence(err)
	}
	if err := tx.Where("package_program_id = ? AND package_id IN ?", programID, removeIDs).
		Delete(&m.PackageModel{}).Error; err != nil {
		return WrapPersistence(err)
	}
	return nil
}

// resolvePackageSpan: monthly → ResolveMonthSpan (months = source of truth,
// dihitung ulang setiap save); selain itu pakai tanggal dari caller.
func resolvePackageSpan(p *PackageInput) (time.Time, time.Time, error) {
	if p.Type == m.PackageTypeMonthly && len(p.Months) > 0 {
		span, err := ResolveMonthSpan(p.Months)
		if err != nil {
			return time.Time{}, time.Time{}, NewValidationError("package_months", err.Error())
		}
		return span.StartDate, span.EndDate, nil
	}
	return truncateToDate(*p.StartDate), truncateToDate(*p.EndDate), nil
}

func buildPackageRow(programID uuid.UUID, p *PackageInput, start, end time.Time) (*m.PackageModel, error) {
	row := &m.PackageModel{
		PackageProgramID:            programID,
		PackageType:                 p.Type,
		PackageName:                 p.Name,
		PackagePrice:                p.Price,
		PackageCapacity:             p.Capacity,
		PackageStartDate:            start,
		PackageEndDate:              end,
		PackageEntryFees:            p.EntryFees,
		PackageEntryFeesExplanation: p.EntryFeesExplanation,
		PackageEntryFeesStartDate:   p.EntryFeesStartDate,
		PackageEntryFeesEndDate:     p.EntryFeesEndDate,
	}
	if p.ID != nil {
		row.PackageID = *p.ID
	}
	if len(p.Months) > 0 {
		raw, err := json.Marshal(p.Months)
		if err != nil {
			return nil, WrapPersistence(err)
		}
		row.PackageMonths = datatypes.JSON(raw)
	}
	if len(p.EntryFeesAppliedMonths) > 0 {
		raw, err := json.Marshal(p.EntryFeesAppliedMonths)
		if err != nil {
			return nil, WrapPersistence(err)
		}
		row.PackageEntryFeesAppliedMonths = datatypes.JSON(raw)
	}
	return row, nil
}

func insertPackage(tx *gorm.DB, programID uuid.UUID, p *PackageInput) error {
	start, end, err := resolvePackageSpan(p)
	if err != nil {
		return err
	}
	row, err := buildPackageRow(programID, p, start, end)
	if err != nil {
		return err
	}
	if err := tx.Create(row).Error; err != nil {
		return WrapPersistence(err)
	}
	if err := insertSchedules(tx, row.PackageID, p.Schedules); err != nil {
		return err
	}
	return replacePackageCoachLinks(tx, row.PackageID, p.CoachIDs)
}

func updatePackage(tx *gorm.DB, programID uuid.UUID, p *PackageInput) error {
	start, end, err := resolvePackageSpan(p)
	if err != nil {
		return err
	}

	var monthsJSON, appliedJSON datatypes.JSON
	if len(p.Months) > 0 {
		raw, merr := json.Marshal(p.Months)
		if merr != nil {
			return WrapPersistence(merr)
		}
		monthsJSON = datatypes.JSON(raw)
	}
	if len(p.EntryFeesAppliedMonths) > 0 {
		raw, merr := json.Marshal(p.EntryFeesAppliedMonths)
		if merr != nil {
			return WrapPersistence(merr)
		}
		appliedJSON = datatypes.JSON(raw)
	}

	updates := map[string]any{
		"package_type":                      p.Type,
		"package_name":                      p.Name,
		"package_price":                     p.Price,
		"package_capacity":                  p.Capacity,
		"package_start_date":                start,
		"package_end_date":                  end,
		"package_months":                    monthsJSON,
		"package_entry_fees":                p.EntryFees,
		"package_entry_fees_explanation":    p.EntryFeesExplanation,
		"package_entry_fees_start_date":     p.EntryFeesStartDate,
		"package_entry_fees_end_date":       p.EntryFeesEndDate,
		"package_entry_fees_applied_months": appliedJSON,
	}
	res := tx.Model(&m.PackageModel{}).
		Where("package_id = ? AND package_program_id = ?", *p.ID, programID).
		Updates(updates)
	if res.Error != nil {
		return WrapPersistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return NewNotFoundError("package tidak ditemukan")
	}

	// schedules: full replace, tanpa diffing per baris
	if err := tx.Where("package_schedule_package_id = ?", *p.ID).
		Delete(&m.PackageScheduleModel{}).Error; err != nil {
		return WrapPersistence(err)
	}
	if err := insertSchedules(tx, *p.ID, p.Schedules); err != nil {
		return err
	}
	return replacePackageCoachLinks(tx, *p.ID, p.CoachIDs)
}

func insertSchedules(tx *gorm.DB, packageID uuid.UUID, schedules []ScheduleInput) error {
	if len(schedules) == 0 {
		return nil
	}
	rows := make([]m.PackageScheduleModel, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, m.PackageScheduleModel{
			PackageSchedulePackageID: packageID,
			PackageScheduleDayOfWeek: s.DayOfWeek,
			PackageScheduleFromTime:  s.FromTime,
			PackageScheduleToTime:    s.ToTime,
			PackageScheduleMemo:      s.Memo,
			PackageScheduleCapacity:  s.Capacity,
			PackageScheduleIsHidden:  s.IsHidden,
			PackageScheduleOverride:  s.Override,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return WrapPersistence(err)
	}
	return nil
}

// replacePackageCoachLinks: join coach-package mengikuti kebijakan
// full-replace milik paket (bukan diff) — payload nol, murah ditulis ulang.
func replacePackageCoachLinks(tx *gorm.DB, packageID uuid.UUID, coachIDs []uuid.UUID) error {
	if err := tx.Where("coach_package_package_id = ?", packageID).
		Delete(&coachModel.CoachPackageModel{}).Error; err != nil {
		return WrapPersistence(err)
	}
	for _, coachID := range coachIDs {
		link := coachModel.CoachPackageModel{
			CoachPackagePackageID: packageID,
			CoachPackageCoachID:   coachID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return WrapPersistence(err)
		}
	}
	return nil
}

/* =========================
   Step 8 — discounts
========================= */

func applyDiscounts(tx *gorm.DB, programID uuid.UUID, diff Diff[DiscountInput, uuid.UUID]) error {
	// removals: asosiasi dulu, baru row discount
	if len(diff.ToRemove) > 0 {
		if err := tx.Where("discount_package_discount_id IN ?", diff.ToRemove).
			Delete(&m.DiscountPackageModel{}).Error; err != nil {
			return WrapPersistence(err)
		}
		if err := tx.Where("discount_program_id = ? AND discount_id IN ?", programID, diff.ToRemove).
			Delete(&m.DiscountModel{}).Error; err != nil {
			return WrapPersistence(err)
		}
	}

	// additions
	for i := range diff.ToAdd {
		d := &diff.ToAdd[i]
		row := m.DiscountModel{
			DiscountProgramID: programID,
			DiscountType:      d.Type,
			DiscountValue:     d.Value,
			DiscountStartDate: truncateToDate(d.StartDate),
			DiscountEndDate:   truncateToDate(d.EndDate),
		}
		if d.ID != nil {
			row.DiscountID = *d.ID
		}
		if err := tx.Create(&row).Error; err != nil {
			return WrapPersistence(err)
		}
		if err := insertDiscountPackages(tx, row.DiscountID, d.PackageIDs); err != nil {
			return err
		}
	}

	// updates: scalar fields + full replace asosiasi
	for i := range diff.ToUpdate {
		d := &diff.ToUpdate[i]
		res := tx.Model(&m.DiscountModel{}).
			Where("discount_id = ? AND discount_program_id = ?", *d.ID, programID).
			Updates(map[string]any{
				"discount_type":       d.Type,
				"discount_value":      d.Value,
				"discount_start_date": truncateToDate(d.StartDate),
				"discount_end_date":   truncateToDate(d.EndDate),
			})
		if res.Error != nil {
			return WrapPersistence(res.Error)
		}
		if res.RowsAffected == 0 {
			return NewNotFoundError("discount tidak ditemukan")
		}
		if err := tx.Where("discount_package_discount_id = ?", *d.ID).
			Delete(&m.DiscountPackageModel{}).Error; err != nil {
			return WrapPersistence(err)
		}
		if err := insertDiscountPackages(tx, *d.ID, d.PackageIDs); err != nil {
			return err
		}
	}

	return nil
}

func insertDiscountPackages(tx *gorm.DB, discountID uuid.UUID, packageIDs []uuid.UUID) error {
	if len(packageIDs) == 0 {
		return nil
	}
	rows := make([]m.DiscountPackageModel, 0, len(packageIDs))
	for _, pkgID := range packageIDs {
		rows = append(rows, m.DiscountPackageModel{
			DiscountPackageDiscountID: discountID,
			DiscountPackagePackageID:  pkgID,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return WrapPersistence(err)
	}
	return nil
}
