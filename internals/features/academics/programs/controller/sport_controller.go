// file: internals/features/academics/programs/controller/sport_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"

	m "akademiku_backend/internals/features/academics/programs/model"
)

// SportController: lookup sederhana, tidak butuh DTO terpisah.
type SportController struct {
	DB *gorm.DB
}

func NewSportController(db *gorm.DB) *SportController {
	return &SportController{DB: db}
}

type saveSportRequest struct {
	SportName string `json:"sport_name"`
}

// Create: POST /sports
func (ctl *SportController) Create(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req saveSportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	name := strings.TrimSpace(req.SportName)
	if name == "" {
		return helper.JsonFieldError(c, http.StatusUnprocessableEntity, "sport_name", "sport_name wajib diisi")
	}

	row := m.SportModel{SportAcademyID: academyID, SportName: name}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat sport")
	}
	return helper.JsonCreated(c, "Sport berhasil dibuat", row)
}

// List: GET /sports
func (ctl *SportController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []m.SportModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("sport_academy_id = ?", academyID).
		Order("sport_name").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

// Delete: DELETE /sports/:id — ditolak bila masih dirujuk program.
func (ctl *SportController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "sport id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var inUse int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.ProgramModel{}).
		Where("program_sport_id = ?", id).
		Count(&inUse).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if inUse > 0 {
		return helper.JsonError(c, http.StatusConflict, "sport masih dipakai program aktif")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("sport_id = ? AND sport_academy_id = ?", id, academyID).
		Delete(&m.SportModel{})
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Sport tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Sport berhasil dihapus", fiber.Map{"sport_id": id})
}
