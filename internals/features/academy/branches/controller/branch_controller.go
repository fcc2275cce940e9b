// file: internals/features/academy/branches/controller/branch_controller.go
package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"

	d "akademiku_backend/internals/features/academy/branches/dto"
	m "akademiku_backend/internals/features/academy/branches/model"
)

type BranchController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *BranchController {
	return &BranchController{DB: db, Validate: v}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

/* =========================
   Handlers
   ========================= */

// Create: POST /branches
func (ctl *BranchController) Create(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.SaveBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	row := req.ToModel(academyID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		log.Printf("[Branch.Create] %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat branch")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonCreated(c, "Branch berhasil dibuat", row)
}

// List: GET /branches — semua branch milik tenant.
func (ctl *BranchController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&m.BranchModel{}).
		Where("branch_academy_id = ?", academyID)
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("LOWER(branch_city) = LOWER(?)", city)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var rows []m.BranchModel
	if err := q.Order("branch_name").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetByID: GET /branches/:id
func (ctl *BranchController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "branch id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var row m.BranchModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("branch_id = ? AND branch_academy_id = ?", id, academyID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Branch tidak ditemukan")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", row)
}

// Update: PUT /branches/:id — full update body.
func (ctl *BranchController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "branch id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.SaveBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&m.BranchModel{}).
		Where("branch_id = ? AND branch_academy_id = ?", id, academyID).
		Updates(req.ToUpdates())
	if res.Error != nil {
		log.Printf("[Branch.Update] %v", res.Error)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal memperbarui branch")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Branch tidak ditemukan")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonUpdated(c, "Branch berhasil diperbarui", fiber.Map{"branch_id": id})
}

// Delete: DELETE /branches/:id — ditolak bila masih dipakai program.
func (ctl *BranchController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "branch id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var inUse int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("programs").
		Where("program_branch_id = ? AND program_deleted_at IS NULL", id).
		Count(&inUse).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if inUse > 0 {
		return helper.JsonError(c, http.StatusConflict, "branch masih dipakai program aktif")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("branch_id = ? AND branch_academy_id = ?", id, academyID).
		Delete(&m.BranchModel{})
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Branch tidak ditemukan")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonDeleted(c, "Branch berhasil dihapus", fiber.Map{"branch_id": id})
}
