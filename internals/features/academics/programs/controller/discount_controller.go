// file: internals/features/academics/programs/controller/discount_controller.go
package controller

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"

	d "akademiku_backend/internals/features/academics/programs/dto"
	m "akademiku_backend/internals/features/academics/programs/model"
)

/* =========================
   Controller & Constructor
   ========================= */

type DiscountController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDiscountController(db *gorm.DB, v *validator.Validate) *DiscountController {
	return &DiscountController{DB: db, Validate: v}
}

/* =========================
   Internal guards
   ========================= */

// programOwnedByAcademy memastikan program milik tenant aktor.
func (ctl *DiscountController) programOwnedByAcademy(tx *gorm.DB, programID, academyID uuid.UUID) error {
	var count int64
	if err := tx.Model(&m.ProgramModel{}).
		Where("program_id = ? AND program_academy_id = ?", programID, academyID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// packagesBelongToProgram menolak package_ids yang bukan milik program.
func (ctl *DiscountController) packagesBelongToProgram(tx *gorm.DB, programID uuid.UUID, packageIDs []uuid.UUID) (bool, error) {
	if len(packageIDs) == 0 {
		return true, nil
	}
	var count int64
	if err := tx.Model(&m.PackageModel{}).
		Where("package_id IN ? AND package_program_id = ?", packageIDs, programID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count == int64(len(packageIDs)), nil
}

func replaceDiscountPackages(tx *gorm.DB, discountID uuid.UUID, packageIDs []uuid.UUID) error {
	if err := tx.Where("discount_package_discount_id = ?", discountID).
		Delete(&m.DiscountPackageModel{}).Error; err != nil {
		return err
	}
	for _, pkgID := range packageIDs {
		link := m.DiscountPackageModel{
			DiscountPackageDiscountID: discountID,
			DiscountPackagePackageID:  pkgID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

/* =========================
   Handlers
   ========================= */

// Create: POST /discounts
func (ctl *DiscountController) Create(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.SaveDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
		}
	}

	row, err := req.ToModel()
	if err != nil {
		return helper.JsonFieldError(c, http.StatusUnprocessableEntity, "discount_value", err.Error())
	}

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := ctl.programOwnedByAcademy(tx, req.DiscountProgramID, academyID); err != nil {
			return err
		}
		ok, err := ctl.packagesBelongToProgram(tx, req.DiscountProgramID, req.PackageIDs)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "package_ids berisi paket di luar program")
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return replaceDiscountPackages(tx, row.DiscountID, req.PackageIDs)
	})
	if txErr != nil {
		return ctl.writeTxError(c, txErr)
	}

	helper.InvalidateTags("program:" + req.DiscountProgramID.String())
	return helper.JsonCreated(c, "Discount berhasil dibuat", d.DiscountResponse{
		DiscountModel: *row,
		PackageIDs:    req.PackageIDs,
	})
}

// Update: PUT /discounts/:id — asosiasi paket full-replace.
func (ctl *DiscountController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "discount id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.SaveDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
		}
	}

	values, err := req.ToModel()
	if err != nil {
		return helper.JsonFieldError(c, http.StatusUnprocessableEntity, "discount_value", err.Error())
	}

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var row m.DiscountModel
		if err := tx.First(&row, "discount_id = ?", id).Error; err != nil {
			return err
		}
		if err := ctl.programOwnedByAcademy(tx, row.DiscountProgramID, academyID); err != nil {
			return err
		}
		ok, err := ctl.packagesBelongToProgram(tx, row.DiscountProgramID, req.PackageIDs)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "package_ids berisi paket di luar program")
		}
		updates := map[string]any{
			"discount_type":       values.DiscountType,
			"discount_value":      values.DiscountValue,
			"discount_start_date": values.DiscountStartDate,
			"discount_end_date":   values.DiscountEndDate,
		}
		if err := tx.Model(&m.DiscountModel{}).
			Where("discount_id = ?", id).
			Updates(updates).Error; err != nil {
			return err
		}
		return replaceDiscountPackages(tx, id, req.PackageIDs)
	})
	if txErr != nil {
		return ctl.writeTxError(c, txErr)
	}

	helper.InvalidateTags("program:" + req.DiscountProgramID.String())
	return helper.JsonUpdated(c, "Discount berhasil diperbarui", fiber.Map{"discount_id": id})
}

// GetByID: GET /discounts/:id
func (ctl *DiscountController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "discount id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var row m.DiscountModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "discount_id = ?", id).Error; err != nil {
		return ctl.writeTxError(c, err)
	}
	if err := ctl.programOwnedByAcademy(ctl.DB, row.DiscountProgramID, academyID); err != nil {
		return ctl.writeTxError(c, err)
	}

	resp := d.DiscountResponse{DiscountModel: row}
	var assoc []m.DiscountPackageModel
	if err := ctl.DB.Where("discount_package_discount_id = ?", id).Find(&assoc).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	for _, a := range assoc {
		resp.PackageIDs = append(resp.PackageIDs, a.DiscountPackagePackageID)
	}
	return helper.JsonOK(c, "ok", resp)
}

// List: GET /discounts?program_id=... — wajib filter program.
func (ctl *DiscountController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}
	programID, err := uuid.Parse(c.Query("program_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "program_id wajib dan harus uuid")
	}
	if err := ctl.programOwnedByAcademy(ctl.DB.WithContext(c.UserContext()), programID, academyID); err != nil {
		return ctl.writeTxError(c, err)
	}

	var rows []m.DiscountModel
	if err := ctl.DB.Where("discount_program_id = ?", programID).
		Order("discount_start_date").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]d.DiscountResponse, 0, len(rows))
	for i := range rows {
		item := d.DiscountResponse{DiscountModel: rows[i]}
		var assoc []m.DiscountPackageModel
		if err := ctl.DB.Where("discount_package_discount_id = ?", rows[i].DiscountID).
			Find(&assoc).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		for _, a := range assoc {
			item.PackageIDs = append(item.PackageIDs, a.DiscountPackagePackageID)
		}
		items = append(items, item)
	}
	return helper.JsonOK(c, "ok", items)
}

// Delete: DELETE /discounts/:id — asosiasi dulu, baru row discount.
func (ctl *DiscountController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "discount id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var programID uuid.UUID
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var row m.DiscountModel
		if err := tx.First(&row, "discount_id = ?", id).Error; err != nil {
			return err
		}
		if err := ctl.programOwnedByAcademy(tx, row.DiscountProgramID, academyID); err != nil {
			return err
		}
		programID = row.DiscountProgramID
		if err := tx.Where("discount_package_discount_id = ?", id).
			Delete(&m.DiscountPackageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	if txErr != nil {
		return ctl.writeTxError(c, txErr)
	}

	helper.InvalidateTags("program:" + programID.String())
	return helper.JsonDeleted(c, "Discount berhasil dihapus", fiber.Map{"discount_id": id})
}

func (ctl *DiscountController) writeTxError(c *fiber.Ctx, err error) error {
	if err == gorm.ErrRecordNotFound {
		return helper.JsonError(c, http.StatusNotFound, "Discount atau program tidak ditemukan")
	}
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[Discount] %v", err)
	return helper.JsonError(c, http.StatusInternalServerError, "operasi discount gagal")
}
