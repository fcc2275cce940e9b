// file: internals/features/enrollments/service/pricing_test.go
package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	programModel "akademiku_backend/internals/features/academics/programs/model"
)

var pricingDBSeq int64

func newPricingDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:pricing_test_%d?mode=memory&cache=shared", atomic.AddInt64(&pricingDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&programModel.PackageModel{},
		&programModel.DiscountModel{},
		&programModel.DiscountPackageModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPackage(t *testing.T, db *gorm.DB, price, entryFee float64) *programModel.PackageModel {
	t.Helper()
	pkg := &programModel.PackageModel{
		PackageProgramID: uuid.New(),
		PackageType:      programModel.PackageTypeTerm,
		PackageName:      "Term 1",
		PackagePrice:     price,
		PackageEntryFees: entryFee,
		PackageStartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local),
		PackageEndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.Local),
	}
	if err := db.Create(pkg).Error; err != nil {
		t.Fatalf("seed package: %v", err)
	}
	return pkg
}

func seedDiscount(t *testing.T, db *gorm.DB, pkg *programModel.PackageModel, typ programModel.DiscountTypeEnum, value float64, start, end time.Time) {
	t.Helper()
	disc := &programModel.DiscountModel{
		DiscountProgramID: pkg.PackageProgramID,
		DiscountType:      typ,
		DiscountValue:     value,
		DiscountStartDate: start,
		DiscountEndDate:   end,
	}
	if err := db.Create(disc).Error; err != nil {
		t.Fatalf("seed discount: %v", err)
	}
	link := &programModel.DiscountPackageModel{
		DiscountPackageDiscountID: disc.DiscountID,
		DiscountPackagePackageID:  pkg.PackageID,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("seed discount link: %v", err)
	}
}

func TestComputePackagePriceNoDiscount(t *testing.T) {
	db := newPricingDB(t)
	pkg := seedPackage(t, db, 500000, 100000)

	bd, err := ComputePackagePrice(db, pkg, time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("ComputePackagePrice: %v", err)
	}
	if bd.TotalAmount != 600000 {
		t.Errorf("total = %v, want 600000", bd.TotalAmount)
	}
	if bd.Discount != 0 || bd.AppliedDiscID != nil {
		t.Errorf("tidak boleh ada discount: %+v", bd)
	}
}

func TestComputePackagePricePicksLargestActiveDiscount(t *testing.T) {
	db := newPricingDB(t)
	pkg := seedPackage(t, db, 1000000, 0)

	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)
	active := func() (time.Time, time.Time) {
		return now.AddDate(0, -1, 0), now.AddDate(0, 1, 0)
	}
	s, e := active()
	seedDiscount(t, db, pkg, programModel.DiscountTypeFixed, 50000, s, e)
	seedDiscount(t, db, pkg, programModel.DiscountTypePercentage, 10, s, e) // 100000, lebih besar

	bd, err := ComputePackagePrice(db, pkg, now)
	if err != nil {
		t.Fatalf("ComputePackagePrice: %v", err)
	}
	if bd.Discount != 100000 {
		t.Errorf("discount = %v, want 100000 (percentage 10%% menang)", bd.Discount)
	}
	if bd.TotalAmount != 900000 {
		t.Errorf("total = %v, want 900000", bd.TotalAmount)
	}
	if bd.AppliedDiscID == nil {
		t.Error("applied discount id harus terisi")
	}
}

func TestComputePackagePriceIgnoresExpiredDiscount(t *testing.T) {
	db := newPricingDB(t)
	pkg := seedPackage(t, db, 1000000, 0)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	seedDiscount(t, db, pkg, programModel.DiscountTypePercentage, 50,
		now.AddDate(0, -3, 0), now.AddDate(0, -1, 0))

	bd, err := ComputePackagePrice(db, pkg, now)
	if err != nil {
		t.Fatalf("ComputePackagePrice: %v", err)
	}
	if bd.Discount != 0 {
		t.Errorf("discount kedaluwarsa tidak boleh dipakai, got %v", bd.Discount)
	}
	if bd.TotalAmount != 1000000 {
		t.Errorf("total = %v, want 1000000", bd.TotalAmount)
	}
}

func TestComputePackagePriceEntryFeeWindow(t *testing.T) {
	db := newPricingDB(t)
	pkg := seedPackage(t, db, 500000, 200000)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local)
	pkg.PackageEntryFeesStartDate = &start
	pkg.PackageEntryFeesEndDate = &end

	// di dalam window
	bd, err := ComputePackagePrice(db, pkg, time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("ComputePackagePrice: %v", err)
	}
	if bd.EntryFee != 200000 {
		t.Errorf("entry fee dalam window = %v, want 200000", bd.EntryFee)
	}

	// di luar window
	bd, err = ComputePackagePrice(db, pkg, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("ComputePackagePrice: %v", err)
	}
	if bd.EntryFee != 0 {
		t.Errorf("entry fee di luar window = %v, want 0", bd.EntryFee)
	}
}
