// file: internals/features/academy/coaches/controller/coach_controller.go
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

	d "akademiku_backend/internals/features/academy/coaches/dto"
	m "akademiku_backend/internals/features/academy/coaches/model"
)

type CoachController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *CoachController {
	return &CoachController{DB: db, Validate: v}
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

// Create: POST /coaches
func (ctl *CoachController) Create(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.SaveCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	row := req.ToModel(academyID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		log.Printf("[Coach.Create] %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat coach")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonCreated(c, "Coach berhasil dibuat", row)
}

// List: GET /coaches — berikut jumlah program yang diampu.
func (ctl *CoachController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&m.CoachModel{}).
		Where("coach_academy_id = ?", academyID)
	if name := strings.TrimSpace(c.Query("q")); name != "" {
		q = q.Where("coach_name ILIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var rows []m.CoachModel
	if err := q.Order("coach_name").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]d.CoachResponse, 0, len(rows))
	for i := range rows {
		item := d.CoachResponse{CoachModel: rows[i]}
		if err := ctl.DB.Model(&m.CoachProgramModel{}).
			Where("coach_program_coach_id = ?", rows[i].CoachID).
			Count(&item.CoachProgramCount).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		items = append(items, item)
	}
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetByID: GET /coaches/:id
func (ctl *CoachController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "coach id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var row m.CoachModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("coach_id = ? AND coach_academy_id = ?", id, academyID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Coach tidak ditemukan")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", row)
}

// Update: PUT /coaches/:id
func (ctl *CoachController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "coach id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.SaveCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&m.CoachModel{}).
		Where("coach_id = ? AND coach_academy_id = ?", id, academyID).
		Updates(req.ToUpdates())
	if res.Error != nil {
		log.Printf("[Coach.Update] %v", res.Error)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal memperbarui coach")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Coach tidak ditemukan")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonUpdated(c, "Coach berhasil diperbarui", fiber.Map{"coach_id": id})
}

// Delete: DELETE /coaches/:id — lepaskan semua link program/paket dulu.
func (ctl *CoachController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "coach id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var row m.CoachModel
		if err := tx.Where("coach_id = ? AND coach_academy_id = ?", id, academyID).
			First(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("coach_package_coach_id = ?", id).
			Delete(&m.CoachPackageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("coach_program_coach_id = ?", id).
			Delete(&m.CoachProgramModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	if txErr != nil {
		if txErr == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Coach tidak ditemukan")
		}
		log.Printf("[Coach.Delete] %v", txErr)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menghapus coach")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonDeleted(c, "Coach berhasil dihapus", fiber.Map{"coach_id": id})
}
