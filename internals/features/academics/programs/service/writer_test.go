package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"akademiku_backend/internals/constants"
	branchModel "akademiku_backend/internals/features/academy/branches/model"
	coachModel "akademiku_backend/internals/features/academy/coaches/model"
	m "akademiku_backend/internals/features/academics/programs/model"
)

/* =========================
   Test fixture (sqlite in-memory)
========================= */

var dbSeq int

type fixture struct {
	db       *gorm.DB
	actor    Actor
	branchID uuid.UUID
	sportID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:writer_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&m.ProgramModel{},
		&m.PackageModel{},
		&m.PackageScheduleModel{},
		&m.DiscountModel{},
		&m.DiscountPackageModel{},
		&m.SportModel{},
		&branchModel.BranchModel{},
		&coachModel.CoachModel{},
		&coachModel.CoachProgramModel{},
		&coachModel.CoachPackageModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	academyID := uuid.New()
	branch := branchModel.BranchModel{BranchAcademyID: academyID, BranchName: "Cabang Utama"}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	sport := m.SportModel{SportAcademyID: academyID, SportName: "Football"}
	if err := db.Create(&sport).Error; err != nil {
		t.Fatalf("seed sport: %v", err)
	}

	return &fixture{
		db:       db,
		actor:    Actor{UserID: uuid.New(), AcademyID: academyID, Role: constants.RoleAdmin},
		branchID: branch.BranchID,
		sportID:  sport.SportID,
	}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func (f *fixture) baseInput() *ProgramInput {
	start := date(2010, time.January, 1)
	end := date(2019, time.December, 31)
	return &ProgramInput{
		Name:             "Junior Football",
		BranchID:         f.branchID,
		SportID:          f.sportID,
		Genders:          []string{"male", "female"},
		StartDateOfBirth: timePtr(start),
		EndDateOfBirth:   timePtr(end),
		NumberOfSeats:    30,
		Type:             m.ProgramTypeTeam,
	}
}

func termPackage(name string, price float64) PackageInput {
	return PackageInput{
		Type:      m.PackageTypeTerm,
		Name:      name,
		Price:     price,
		StartDate: timePtr(date(2025, time.September, 1)),
		EndDate:   timePtr(date(2025, time.December, 15)),
		Schedules: []ScheduleInput{
			{DayOfWeek: 1, FromTime: "16:00", ToTime: "17:30"},
			{DayOfWeek: 3, FromTime: "16:00", ToTime: "17:30"},
		},
	}
}

func (f *fixture) mustSave(t *testing.T, programID *uuid.UUID, in *ProgramInput) uuid.UUID {
	t.Helper()
	res, err := SaveProgram(context.Background(), f.db, f.actor, programID, in)
	if err != nil {
		t.Fatalf("SaveProgram: %v", err)
	}
	return res.ProgramID
}

func (f *fixture) countRows(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

/* =========================
   Validation & authorization
========================= */

// Entry fee tanpa penjelasan harus gagal validasi dengan atribusi field,
// dan tidak menulis row apa pun.
func TestSaveProgramEntryFeeExplanationRequired(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Packages = []PackageInput{{
		Type:      m.PackageTypeMonthly,
		Name:      "Monthly Juni-Agustus",
		Price:     600,
		Months:    []string{"June 2025", "August 2025"},
		EntryFees: 50,
		// EntryFeesExplanation sengaja kosong
		EntryFeesAppliedMonths: []string{"June 2025"},
	}}

	_, err := SaveProgram(context.Background(), f.db, f.actor, nil, in)
	if err == nil {
		t.Fatal("harus gagal validasi")
	}
	se := AsSaveError(err)
	if se.Kind != ErrKindValidation {
		t.Fatalf("kind = %s, want validation", se.Kind)
	}
	if se.Field != "package_entry_fees_explanation" {
		t.Fatalf("field = %q, want package_entry_fees_explanation", se.Field)
	}

	if n := f.countRows(t, &m.ProgramModel{}, "1 = 1"); n != 0 {
		t.Fatalf("tidak boleh ada program tersimpan, got %d", n)
	}
	if n := f.countRows(t, &m.PackageModel{}, "1 = 1"); n != 0 {
		t.Fatalf("tidak boleh ada package tersimpan, got %d", n)
	}
}

func TestSaveProgramAuthorization(t *testing.T) {
	f := newFixture(t)

	student := f.actor
	student.Role = constants.RoleStudent
	if _, err := SaveProgram(context.Background(), f.db, student, nil, f.baseInput()); AsSaveError(err) == nil || AsSaveError(err).Kind != ErrKindAuthorization {
		t.Fatalf("role student harus ditolak, got %v", err)
	}

	noScope := f.actor
	noScope.AcademyID = uuid.Nil
	if _, err := SaveProgram(context.Background(), f.db, noScope, nil, f.baseInput()); AsSaveError(err) == nil || AsSaveError(err).Kind != ErrKindAuthorization {
		t.Fatalf("actor tanpa academy scope harus ditolak, got %v", err)
	}
}

func TestSaveProgramReferencesNotFound(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.SportID = uuid.New() // sport milik academy lain / tidak ada
	if _, err := SaveProgram(context.Background(), f.db, f.actor, nil, in); AsSaveError(err) == nil || AsSaveError(err).Kind != ErrKindNotFound {
		t.Fatalf("sport tak dikenal harus not_found, got %v", err)
	}

	ghost := uuid.New()
	if _, err := SaveProgram(context.Background(), f.db, f.actor, &ghost, f.baseInput()); AsSaveError(err) == nil || AsSaveError(err).Kind != ErrKindNotFound {
		t.Fatalf("program tak dikenal harus not_found, got %v", err)
	}
}

func TestSaveProgramPercentageDiscountCapped(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Discounts = []DiscountInput{{
		Type:      m.DiscountTypePercentage,
		Value:     150,
		StartDate: date(2025, time.June, 1),
		EndDate:   date(2025, time.July, 1),
	}}

	_, err := SaveProgram(context.Background(), f.db, f.actor, nil, in)
	se := AsSaveError(err)
	if se == nil || se.Kind != ErrKindValidation || se.Field != "discount_value" {
		t.Fatalf("discount >100%% harus ditolak dengan field discount_value, got %v", err)
	}
}

func TestSaveProgramEmptyGendersRejected(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Genders = nil
	_, err := SaveProgram(context.Background(), f.db, f.actor, nil, in)
	se := AsSaveError(err)
	if se == nil || se.Kind != ErrKindValidation || se.Field != "program_genders" {
		t.Fatalf("gender kosong harus ditolak, got %v", err)
	}
}

/* =========================
   Create paths
========================= */

func TestSaveProgramCreateMonthlyPackage(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Packages = []PackageInput{{
		Type:   m.PackageTypeMonthly,
		Name:   "Monthly Juni-Agustus",
		Price:  600,
		Months: []string{"August 2025", "June 2025"}, // sengaja tidak urut
		Schedules: []ScheduleInput{
			{DayOfWeek: 2, FromTime: "17:00", ToTime: "18:30", Memo: strPtr("lapangan A")},
			{DayOfWeek: 5, FromTime: "17:00", ToTime: "18:30"},
		},
	}}

	programID := f.mustSave(t, nil, in)

	var pkg m.PackageModel
	if err := f.db.Where("package_program_id = ?", programID).First(&pkg).Error; err != nil {
		t.Fatalf("load package: %v", err)
	}
	if !pkg.PackageStartDate.Equal(date(2025, time.June, 1)) {
		t.Errorf("span start = %v, want 2025-06-01", pkg.PackageStartDate)
	}
	if !pkg.PackageEndDate.Equal(date(2025, time.August, 31)) {
		t.Errorf("span end = %v, want 2025-08-31", pkg.PackageEndDate)
	}
	if n := f.countRows(t, &m.PackageScheduleModel{}, "package_schedule_package_id = ?", pkg.PackageID); n != 2 {
		t.Errorf("schedules = %d, want 2", n)
	}
}

// Window umur dengan flag unlimited → end DOB memakai sentinel +100 tahun.
func TestSaveProgramAgePairUnlimited(t *testing.T) {
	f := newFixture(t)

	ageStart := 6.0
	in := f.baseInput()
	in.StartDateOfBirth = nil
	in.EndDateOfBirth = nil
	in.AgeStart = &ageStart
	in.AgeUnit = AgeUnitYears
	in.AgeUnlimited = true

	programID := f.mustSave(t, nil, in)

	var prog m.ProgramModel
	if err := f.db.First(&prog, "program_id = ?", programID).Error; err != nil {
		t.Fatalf("load program: %v", err)
	}
	now := time.Now()
	if !prog.ProgramEndDateOfBirth.Equal(UnlimitedEndDate(now)) {
		t.Errorf("end DOB = %v, want sentinel %v", prog.ProgramEndDateOfBirth, UnlimitedEndDate(now))
	}
	if !prog.ProgramStartDateOfBirth.Equal(AgeToDate(ageStart, AgeUnitYears, now)) {
		t.Errorf("start DOB = %v", prog.ProgramStartDateOfBirth)
	}
}

/* =========================
   Update / reconcile paths
========================= */

// Skenario inti: persisted [A, B] + desired [A dimodif, C baru] ⇒
// B dan schedules-nya hilang, A ter-update dengan schedules di-replace,
// C masuk dengan schedules-nya.
func TestSaveProgramPackageReplaceScenario(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Packages = []PackageInput{termPackage("Term 1", 500), termPackage("Term 2", 550)}
	programID := f.mustSave(t, nil, in)

	var persisted []m.PackageModel
	if err := f.db.Where("package_program_id = ?", programID).Order("package_name").Find(&persisted).Error; err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if len(persisted) != 2 {
		t.Fatalf("persisted = %d, want 2", len(persisted))
	}
	pkgA, pkgB := persisted[0], persisted[1]

	// desired: A dengan harga baru + satu schedule saja, B hilang, C baru
	updatedA := termPackage("Term 1", 999)
	updatedA.ID = &pkgA.PackageID
	updatedA.Schedules = []ScheduleInput{{DayOfWeek: 6, FromTime: "09:00", ToTime: "10:30"}}
	newC := termPackage("Term 3", 600)

	next := f.baseInput()
	next.Packages = []PackageInput{updatedA, newC}
	f.mustSave(t, &programID, next)

	// B + schedules-nya hilang
	if n := f.countRows(t, &m.PackageModel{}, "package_id = ?", pkgB.PackageID); n != 0 {
		t.Errorf("package B masih ada")
	}
	if n := f.countRows(t, &m.PackageScheduleModel{}, "package_schedule_package_id = ?", pkgB.PackageID); n != 0 {
		t.Errorf("schedules B masih ada: %d", n)
	}

	// A ter-update, schedules full replace (2 → 1)
	var gotA m.PackageModel
	if err := f.db.First(&gotA, "package_id = ?", pkgA.PackageID).Error; err != nil {
		t.Fatalf("load A: %v", err)
	}
	if gotA.PackagePrice != 999 {
		t.Errorf("harga A = %v, want 999", gotA.PackagePrice)
	}
	if n := f.countRows(t, &m.PackageScheduleModel{}, "package_schedule_package_id = ?", pkgA.PackageID); n != 1 {
		t.Errorf("schedules A = %d, want 1 (full replace)", n)
	}

	// C masuk dengan schedules-nya
	var gotC m.PackageModel
	if err := f.db.First(&gotC, "package_program_id = ? AND package_name = ?", programID, "Term 3").Error; err != nil {
		t.Fatalf("package C tidak ditemukan: %v", err)
	}
	if n := f.countRows(t, &m.PackageScheduleModel{}, "package_schedule_package_id = ?", gotC.PackageID); n != 2 {
		t.Errorf("schedules C = %d, want 2", n)
	}
}

// Save ulang dengan desired state identik tidak boleh menambah/menghapus apa pun.
func TestSaveProgramIdempotentResave(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Packages = []PackageInput{termPackage("Term 1", 500)}
	programID := f.mustSave(t, nil, in)

	var pkg m.PackageModel
	if err := f.db.First(&pkg, "package_program_id = ?", programID).Error; err != nil {
		t.Fatalf("load package: %v", err)
	}

	again := f.baseInput()
	resaved := termPackage("Term 1", 500)
	resaved.ID = &pkg.PackageID
	again.Packages = []PackageInput{resaved}
	f.mustSave(t, &programID, again)

	if n := f.countRows(t, &m.PackageModel{}, "package_program_id = ?", programID); n != 1 {
		t.Errorf("packages = %d, want tetap 1", n)
	}
	var got m.PackageModel
	if err := f.db.First(&got, "package_program_id = ?", programID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.PackageID != pkg.PackageID {
		t.Errorf("identitas package berubah saat resave identik")
	}
}

func TestSaveProgramCoachLinkReconcile(t *testing.T) {
	f := newFixture(t)

	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()

	in := f.baseInput()
	in.CoachIDs = []uuid.UUID{c1, c2}
	programID := f.mustSave(t, nil, in)

	if n := f.countRows(t, &coachModel.CoachProgramModel{}, "coach_program_program_id = ?", programID); n != 2 {
		t.Fatalf("coach links = %d, want 2", n)
	}

	next := f.baseInput()
	next.CoachIDs = []uuid.UUID{c2, c3}
	f.mustSave(t, &programID, next)

	if n := f.countRows(t, &coachModel.CoachProgramModel{}, "coach_program_program_id = ? AND coach_program_coach_id = ?", programID, c1); n != 0 {
		t.Errorf("link c1 harus hilang")
	}
	if n := f.countRows(t, &coachModel.CoachProgramModel{}, "coach_program_program_id = ?", programID); n != 2 {
		t.Errorf("coach links = %d, want 2 (c2, c3)", n)
	}
}

func TestSaveProgramDiscountLifecycle(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Packages = []PackageInput{termPackage("Term 1", 500), termPackage("Term 2", 550)}
	programID := f.mustSave(t, nil, in)

	var pkgs []m.PackageModel
	if err := f.db.Where("package_program_id = ?", programID).Order("package_name").Find(&pkgs).Error; err != nil {
		t.Fatalf("load packages: %v", err)
	}

	// add: discount untuk paket pertama saja
	withDiscount := f.baseInput()
	p1 := termPackage("Term 1", 500)
	p1.ID = &pkgs[0].PackageID
	p2 := termPackage("Term 2", 550)
	p2.ID = &pkgs[1].PackageID
	withDiscount.Packages = []PackageInput{p1, p2}
	withDiscount.Discounts = []DiscountInput{{
		Type:       m.DiscountTypeFixed,
		Value:      50,
		StartDate:  date(2025, time.September, 1),
		EndDate:    date(2025, time.October, 1),
		PackageIDs: []uuid.UUID{pkgs[0].PackageID},
	}}
	f.mustSave(t, &programID, withDiscount)

	var disc m.DiscountModel
	if err := f.db.First(&disc, "discount_program_id = ?", programID).Error; err != nil {
		t.Fatalf("discount tidak ditemukan: %v", err)
	}
	if n := f.countRows(t, &m.DiscountPackageModel{}, "discount_package_discount_id = ?", disc.DiscountID); n != 1 {
		t.Fatalf("asosiasi = %d, want 1", n)
	}

	// update: nilai baru + asosiasi di-replace ke kedua paket
	updated := f.baseInput()
	updated.Packages = []PackageInput{p1, p2}
	updated.Discounts = []DiscountInput{{
		ID:         &disc.DiscountID,
		Type:       m.DiscountTypeFixed,
		Value:      75,
		StartDate:  date(2025, time.September, 1),
		EndDate:    date(2025, time.November, 1),
		PackageIDs: []uuid.UUID{pkgs[0].PackageID, pkgs[1].PackageID},
	}}
	f.mustSave(t, &programID, updated)

	var gotDisc m.DiscountModel
	if err := f.db.First(&gotDisc, "discount_id = ?", disc.DiscountID).Error; err != nil {
		t.Fatalf("reload discount: %v", err)
	}
	if gotDisc.DiscountValue != 75 {
		t.Errorf("value = %v, want 75", gotDisc.DiscountValue)
	}
	if n := f.countRows(t, &m.DiscountPackageModel{}, "discount_package_discount_id = ?", disc.DiscountID); n != 2 {
		t.Errorf("asosiasi = %d, want 2 (full replace)", n)
	}

	// remove: desired tanpa discount → row + asosiasi hilang
	removed := f.baseInput()
	removed.Packages = []PackageInput{p1, p2}
	f.mustSave(t, &programID, removed)

	if n := f.countRows(t, &m.DiscountModel{}, "discount_id = ?", disc.DiscountID); n != 0 {
		t.Errorf("discount masih ada setelah remove")
	}
	if n := f.countRows(t, &m.DiscountPackageModel{}, "discount_package_discount_id = ?", disc.DiscountID); n != 0 {
		t.Errorf("asosiasi discount masih ada setelah remove")
	}
}

// Menghapus paket membersihkan asosiasi discount yang merujuknya; discount
// yang kehilangan semua asosiasi dibiarkan hidup (inert, tidak auto-delete).
func TestSaveProgramPackageRemovalCleansDiscountLinks(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Packages = []PackageInput{termPackage("Term 1", 500)}
	programID := f.mustSave(t, nil, in)

	var pkg m.PackageModel
	if err := f.db.First(&pkg, "package_program_id = ?", programID).Error; err != nil {
		t.Fatalf("load package: %v", err)
	}

	p1 := termPackage("Term 1", 500)
	p1.ID = &pkg.PackageID
	withDiscount := f.baseInput()
	withDiscount.Packages = []PackageInput{p1}
	withDiscount.Discounts = []DiscountInput{{
		Type:       m.DiscountTypeFixed,
		Value:      50,
		StartDate:  date(2025, time.September, 1),
		EndDate:    date(2025, time.October, 1),
		PackageIDs: []uuid.UUID{pkg.PackageID},
	}}
	f.mustSave(t, &programID, withDiscount)

	var disc m.DiscountModel
	if err := f.db.First(&disc, "discount_program_id = ?", programID).Error; err != nil {
		t.Fatalf("load discount: %v", err)
	}

	// paket dihapus, discount tetap di desired (tanpa asosiasi tersisa)
	final := f.baseInput()
	final.Discounts = []DiscountInput{{
		ID:        &disc.DiscountID,
		Type:      m.DiscountTypeFixed,
		Value:     50,
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.October, 1),
	}}
	f.mustSave(t, &programID, final)

	if n := f.countRows(t, &m.PackageModel{}, "package_id = ?", pkg.PackageID); n != 0 {
		t.Errorf("package masih ada")
	}
	if n := f.countRows(t, &m.DiscountPackageModel{}, "discount_package_package_id = ?", pkg.PackageID); n != 0 {
		t.Errorf("asosiasi ke paket terhapus masih ada")
	}
	if n := f.countRows(t, &m.DiscountModel{}, "discount_id = ?", disc.DiscountID); n != 1 {
		t.Errorf("discount tanpa asosiasi tidak boleh auto-delete")
	}
}

// Kegagalan di tengah transaksi (id discount kembar terdeteksi saat
// reconcile) harus me-rollback update program yang sudah sempat ditulis.
func TestSaveProgramMidTransactionRollback(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Discounts = []DiscountInput{{
		Type:      m.DiscountTypeFixed,
		Value:     50,
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.October, 1),
	}}
	programID := f.mustSave(t, nil, in)

	var disc m.DiscountModel
	if err := f.db.First(&disc, "discount_program_id = ?", programID).Error; err != nil {
		t.Fatalf("load discount: %v", err)
	}

	bad := f.baseInput()
	bad.Name = "Nama Baru"
	dup := DiscountInput{
		ID:        &disc.DiscountID,
		Type:      m.DiscountTypeFixed,
		Value:     50,
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.October, 1),
	}
	bad.Discounts = []DiscountInput{dup, dup}

	_, err := SaveProgram(context.Background(), f.db, f.actor, &programID, bad)
	se := AsSaveError(err)
	if se == nil || se.Kind != ErrKindValidation || se.Field != "discounts" {
		t.Fatalf("id discount kembar harus validation error, got %v", err)
	}

	// update nama yang sempat ditulis di langkah 1 harus ikut rollback
	var prog m.ProgramModel
	if err := f.db.First(&prog, "program_id = ?", programID).Error; err != nil {
		t.Fatalf("reload program: %v", err)
	}
	if prog.ProgramName != "Junior Football" {
		t.Fatalf("rollback gagal: nama = %q", prog.ProgramName)
	}
}

// Baris dibuat lalu dihapus lagi di UI sebelum save: deleted tanpa id.
// Harus no-op total — tidak panic, tidak menulis row paket/discount apa pun.
func TestSaveProgramDeletedRowsWithoutIDAreNoop(t *testing.T) {
	f := newFixture(t)

	in := f.baseInput()
	in.Packages = []PackageInput{{Deleted: true}}
	in.Discounts = []DiscountInput{{Deleted: true}}

	programID := f.mustSave(t, nil, in)

	if n := f.countRows(t, &m.PackageModel{}, "package_program_id = ?", programID); n != 0 {
		t.Fatalf("paket deleted tanpa id tidak boleh ter-insert: %d row", n)
	}
	if n := f.countRows(t, &m.DiscountModel{}, "discount_program_id = ?", programID); n != 0 {
		t.Fatalf("discount deleted tanpa id tidak boleh ter-insert: %d row", n)
	}

	// campuran dengan baris valid: yang valid tetap tertulis
	next := f.baseInput()
	next.Packages = []PackageInput{{Deleted: true}, termPackage("Term 1", 500)}
	f.mustSave(t, &programID, next)

	if n := f.countRows(t, &m.PackageModel{}, "package_program_id = ?", programID); n != 1 {
		t.Fatalf("paket valid harus tetap tertulis: %d row", n)
	}
}
