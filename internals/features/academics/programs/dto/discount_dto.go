// file: internals/features/academics/programs/dto/discount_dto.go
package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academics/programs/model"
)

/* =========================================================
   Request (standalone discount CRUD)
   ========================================================= */

type SaveDiscountRequest struct {
	DiscountProgramID uuid.UUID `json:"discount_program_id" validate:"required"`

	DiscountType  string  `json:"discount_type" validate:"required,oneof=fixed percentage"`
	DiscountValue float64 `json:"discount_value" validate:"required,gt=0"`

	DiscountStartDate string `json:"discount_start_date" validate:"required,datetime=2006-01-02"`
	DiscountEndDate   string `json:"discount_end_date"   validate:"required,datetime=2006-01-02"`

	PackageIDs []uuid.UUID `json:"package_ids"`
}

// ToModel: konversi + validasi domain (value/percentage/rentang tanggal).
func (r *SaveDiscountRequest) ToModel() (*m.DiscountModel, error) {
	typ := m.DiscountTypeEnum(r.DiscountType)
	if !typ.Valid() {
		return nil, errors.New("discount_type harus fixed atau percentage")
	}
	if typ == m.DiscountTypePercentage && r.DiscountValue > 100 {
		return nil, errors.New("discount percentage tidak boleh lebih dari 100")
	}
	start, err := time.ParseInLocation(dateLayout, r.DiscountStartDate, time.Local)
	if err != nil {
		return nil, errors.New("discount_start_date tidak valid (format YYYY-MM-DD)")
	}
	end, err := time.ParseInLocation(dateLayout, r.DiscountEndDate, time.Local)
	if err != nil {
		return nil, errors.New("discount_end_date tidak valid (format YYYY-MM-DD)")
	}
	if !start.Before(end) {
		return nil, errors.New("discount_start_date harus sebelum discount_end_date")
	}
	return &m.DiscountModel{
		DiscountProgramID: r.DiscountProgramID,
		DiscountType:      typ,
		DiscountValue:     r.DiscountValue,
		DiscountStartDate: start,
		DiscountEndDate:   end,
	}, nil
}
