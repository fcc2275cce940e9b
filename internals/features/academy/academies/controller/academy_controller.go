// file: internals/features/academy/academies/controller/academy_controller.go
package controller

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"

	d "akademiku_backend/internals/features/academy/academies/dto"
	m "akademiku_backend/internals/features/academy/academies/model"
)

/* =========================
   Controller & Constructor
   ========================= */

type AcademyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AcademyController {
	return &AcademyController{DB: db, Validate: v}
}

const logoUploadDir = "./public/uploads/academies"

/* =========================
   Handlers
   ========================= */

// Create: POST /academies — bootstrap tenant baru (owner flow, biasanya
// dipanggil dari onboarding).
func (ctl *AcademyController) Create(c *fiber.Ctx) error {
	var req d.CreateAcademyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	row := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return helper.JsonFieldError(c, http.StatusConflict, "academy_slug", "slug sudah dipakai academy lain")
		}
		log.Printf("[Academy.Create] %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat academy")
	}
	return helper.JsonCreated(c, "Academy berhasil dibuat", row)
}

// GetMine: GET /academies/me — profil tenant aktor.
func (ctl *AcademyController) GetMine(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}
	var row m.AcademyModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "academy_id = ?", academyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Academy tidak ditemukan")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", row)
}

// GetBySlug: GET /academies/by-slug/:slug — publik, untuk landing page.
func (ctl *AcademyController) GetBySlug(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	if slug == "" {
		return helper.JsonError(c, http.StatusBadRequest, "slug wajib diisi")
	}
	var row m.AcademyModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("academy_slug = ? AND academy_is_active = ?", slug, true).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Academy tidak ditemukan")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", row)
}

// Update: PUT /academies/me — partial update, slug tidak bisa diganti.
func (ctl *AcademyController) Update(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.UpdateAcademyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonError(c, http.StatusBadRequest, "tidak ada field yang diubah")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&m.AcademyModel{}).
		Where("academy_id = ?", academyID).
		Updates(updates)
	if res.Error != nil {
		log.Printf("[Academy.Update] %v", res.Error)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal memperbarui academy")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Academy tidak ditemukan")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonUpdated(c, "Academy berhasil diperbarui", fiber.Map{"academy_id": academyID})
}

// UploadLogo: POST /academies/me/logo — multipart "logo", dikonversi ke WebP
// lalu disimpan di public/uploads.
func (ctl *AcademyController) UploadLogo(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "file logo wajib diunggah")
	}

	webpBytes, err := helper.ConvertToWebP(fileHeader)
	if err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	if err := os.MkdirAll(logoUploadDir, 0o755); err != nil {
		log.Printf("[Academy.UploadLogo] mkdir: %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menyiapkan folder upload")
	}
	name := helper.GenerateUniqueFilename(academyID.String(), fileHeader.Filename)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
	fullPath := filepath.Join(logoUploadDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menyiapkan folder upload")
	}
	if err := os.WriteFile(fullPath, webpBytes, 0o644); err != nil {
		log.Printf("[Academy.UploadLogo] write: %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menyimpan logo")
	}

	logoURL := "/uploads/academies/" + name
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.AcademyModel{}).
		Where("academy_id = ?", academyID).
		Update("academy_logo_url", logoURL).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menyimpan logo")
	}

	helper.InvalidateTags("academy:" + academyID.String())
	return helper.JsonUpdated(c, "Logo berhasil diperbarui", fiber.Map{"academy_logo_url": logoURL})
}
