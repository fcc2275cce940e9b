// file: internals/features/enrollments/service/pricing.go
package service

import (
	"time"

	"gorm.io/gorm"

	programModel "akademiku_backend/internals/features/academics/programs/model"
)

// PriceBreakdown: snapshot komponen harga saat enrollment dibuat.
type PriceBreakdown struct {
	BasePrice     float64 `json:"base_price"`
	EntryFee      float64 `json:"entry_fee"`
	Discount      float64 `json:"discount"`
	TotalAmount   float64 `json:"total_amount"`
	AppliedDiscID *string `json:"applied_discount_id,omitempty"`
}

// ComputePackagePrice: harga paket + entry fee yang sedang berlaku,
// dikurangi discount aktif terbesar yang terasosiasi dengan paket.
func ComputePackagePrice(db *gorm.DB, pkg *programModel.PackageModel, now time.Time) (PriceBreakdown, error) {
	bd := PriceBreakdown{BasePrice: pkg.PackagePrice}

	if pkg.PackageEntryFees > 0 && entryFeeActive(pkg, now) {
		bd.EntryFee = pkg.PackageEntryFees
	}

	var discounts []programModel.DiscountModel
	err := db.
		Joins("JOIN discount_packages dp ON dp.discount_package_discount_id = discounts.discount_id").
		Where("dp.discount_package_package_id = ? AND dp.discount_package_deleted_at IS NULL", pkg.PackageID).
		Where("discounts.discount_start_date <= ? AND discounts.discount_end_date >= ?", now, now).
		Find(&discounts).Error
	if err != nil {
		return PriceBreakdown{}, err
	}

	gross := bd.BasePrice + bd.EntryFee
	for i := range discounts {
		cut := discountAmount(&discounts[i], gross)
		if cut > bd.Discount {
			bd.Discount = cut
			id := discounts[i].DiscountID.String()
			bd.AppliedDiscID = &id
		}
	}
	if bd.Discount > gross {
		bd.Discount = gross
	}
	bd.TotalAmount = gross - bd.Discount
	return bd, nil
}

func entryFeeActive(pkg *programModel.PackageModel, now time.Time) bool {
	if pkg.PackageEntryFeesStartDate != nil && now.Before(*pkg.PackageEntryFeesStartDate) {
		return false
	}
	if pkg.PackageEntryFeesEndDate != nil && now.After(*pkg.PackageEntryFeesEndDate) {
		return false
	}
	return true
}

func discountAmount(d *programModel.DiscountModel, gross float64) float64 {
	if d.DiscountType == programModel.DiscountTypePercentage {
		return gross * d.DiscountValue / 100
	}
	return d.DiscountValue
}
