// file: internals/features/academics/programs/controller/program_controller.go
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

	coachModel "akademiku_backend/internals/features/academy/coaches/model"
	d "akademiku_backend/internals/features/academics/programs/dto"
	m "akademiku_backend/internals/features/academics/programs/model"
	svc "akademiku_backend/internals/features/academics/programs/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type ProgramController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *ProgramController {
	return &ProgramController{DB: db, Validate: v}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

func actorFromToken(c *fiber.Ctx) (svc.Actor, error) {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return svc.Actor{}, err
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return svc.Actor{}, err
	}
	return svc.Actor{
		UserID:    userID,
		AcademyID: academyID,
		Role:      helperAuth.GetRoleFromToken(c),
	}, nil
}

// writeSaveError memetakan taksonomi SaveError ke status + bentuk response.
func writeSaveError(c *fiber.Ctx, err error) error {
	se := svc.AsSaveError(err)
	switch se.Kind {
	case svc.ErrKindAuthorization:
		return helper.JsonError(c, http.StatusForbidden, se.Message)
	case svc.ErrKindNotFound:
		return helper.JsonError(c, http.StatusNotFound, se.Message)
	case svc.ErrKindValidation:
		return helper.JsonFieldError(c, http.StatusUnprocessableEntity, se.Field, se.Message)
	default:
		log.Printf("[Program] persistence error: %v", se.Err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menyimpan program")
	}
}

/* =========================
   Create / Update (desired state)
   ========================= */

// Create: POST /programs — simpan program baru beserta seluruh anaknya.
func (ctl *ProgramController) Create(c *fiber.Ctx) error {
	return ctl.save(c, nil)
}

// Update: PUT /programs/:id — full-replace koleksi anak via reconcile.
func (ctl *ProgramController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "program id tidak valid")
	}
	return ctl.save(c, &id)
}

func (ctl *ProgramController) save(c *fiber.Ctx, programID *uuid.UUID) error {
	actor, err := actorFromToken(c)
	if err != nil {
		return err
	}

	var req d.SaveProgramRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Program.save] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
		}
	}

	in, err := req.ToInput()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	res, err := svc.SaveProgram(c.UserContext(), ctl.DB, actor, programID, in)
	if err != nil {
		return writeSaveError(c, err)
	}

	// invalidasi cache SETELAH commit — side channel, bukan bagian TX
	helper.InvalidateTags(
		"academy:"+actor.AcademyID.String(),
		"program:"+res.ProgramID.String(),
	)

	data := fiber.Map{"program_id": res.ProgramID}
	if programID == nil {
		return helper.JsonCreated(c, "Program berhasil dibuat", data)
	}
	return helper.JsonUpdated(c, "Program berhasil diperbarui", data)
}

/* =========================
   Read
   ========================= */

// GetByID: GET /programs/:id — program + seluruh koleksi anak.
func (ctl *ProgramController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "program id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var prog m.ProgramModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("program_id = ? AND program_academy_id = ?", id, academyID).
		First(&prog).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Program tidak ditemukan")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	resp := d.NewProgramResponse(&prog)

	// packages + schedules
	var pkgs []m.PackageModel
	if err := ctl.DB.Where("package_program_id = ?", id).Order("package_start_date").Find(&pkgs).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	for i := range pkgs {
		pr := d.PackageResponse{PackageModel: pkgs[i]}
		if err := ctl.DB.Where("package_schedule_package_id = ?", pkgs[i].PackageID).
			Order("package_schedule_day_of_week, package_schedule_from_time").
			Find(&pr.Schedules).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		var pkgLinks []coachModel.CoachPackageModel
		if err := ctl.DB.Where("coach_package_package_id = ?", pkgs[i].PackageID).Find(&pkgLinks).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		for _, l := range pkgLinks {
			pr.CoachIDs = append(pr.CoachIDs, l.CoachPackageCoachID)
		}
		resp.Packages = append(resp.Packages, pr)
	}

	// coach links
	var links []coachModel.CoachProgramModel
	if err := ctl.DB.Where("coach_program_program_id = ?", id).Find(&links).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	for _, l := range links {
		resp.CoachIDs = append(resp.CoachIDs, l.CoachProgramCoachID)
	}

	// discounts + asosiasi paket
	var discounts []m.DiscountModel
	if err := ctl.DB.Where("discount_program_id = ?", id).Find(&discounts).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	for i := range discounts {
		dr := d.DiscountResponse{DiscountModel: discounts[i]}
		var assoc []m.DiscountPackageModel
		if err := ctl.DB.Where("discount_package_discount_id = ?", discounts[i].DiscountID).Find(&assoc).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		for _, a := range assoc {
			dr.PackageIDs = append(dr.PackageIDs, a.DiscountPackagePackageID)
		}
		resp.Discounts = append(resp.Discounts, dr)
	}

	return helper.JsonOK(c, "ok", resp)
}

// List: GET /programs — list per academy, filter opsional branch/sport/hidden.
func (ctl *ProgramController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.ProgramModel{}).
		Where("program_academy_id = ?", academyID)

	if branchID := strings.TrimSpace(c.Query("branch_id")); branchID != "" {
		id, perr := uuid.Parse(branchID)
		if perr != nil {
			return helper.JsonError(c, http.StatusBadRequest, "branch_id tidak valid")
		}
		q = q.Where("program_branch_id = ?", id)
	}
	if sportID := strings.TrimSpace(c.Query("sport_id")); sportID != "" {
		id, perr := uuid.Parse(sportID)
		if perr != nil {
			return helper.JsonError(c, http.StatusBadRequest, "sport_id tidak valid")
		}
		q = q.Where("program_sport_id = ?", id)
	}
	if c.Query("visible") == "true" {
		q = q.Where("program_is_hidden = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []m.ProgramModel
	if err := q.Order("program_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]*d.ProgramResponse, 0, len(rows))
	for i := range rows {
		items = append(items, d.NewProgramResponse(&rows[i]))
	}

	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PublicListByAcademy: GET /programs/by-academy/:academy_id — listing tanpa
// auth untuk landing page, hanya program yang tidak disembunyikan.
func (ctl *ProgramController) PublicListByAcademy(c *fiber.Ctx) error {
	academyID, err := parseUUIDParam(c, "academy_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "academy id tidak valid")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.ProgramModel{}).
		Where("program_academy_id = ? AND program_is_hidden = ?", academyID, false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []m.ProgramModel
	if err := q.Order("program_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]*d.ProgramResponse, 0, len(rows))
	for i := range rows {
		items = append(items, d.NewProgramResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   Delete
   ========================= */

// Delete: DELETE /programs/:id — cascade seluruh anak dalam satu TX
// (anak dulu, induk terakhir).
func (ctl *ProgramController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "program id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var prog m.ProgramModel
		if err := tx.Where("program_id = ? AND program_academy_id = ?", id, academyID).
			First(&prog).Error; err != nil {
			return err
		}

		var pkgIDs []uuid.UUID
		if err := tx.Model(&m.PackageModel{}).
			Where("package_program_id = ?", id).
			Pluck("package_id", &pkgIDs).Error; err != nil {
			return err
		}
		if len(pkgIDs) > 0 {
			if err := tx.Where("package_schedule_package_id IN ?", pkgIDs).
				Delete(&m.PackageScheduleModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("discount_package_package_id IN ?", pkgIDs).
				Delete(&m.DiscountPackageModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("coach_package_package_id IN ?", pkgIDs).
				Delete(&coachModel.CoachPackageModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("package_program_id = ?", id).Delete(&m.PackageModel{}).Error; err != nil {
			return err
		}

		var discountIDs []uuid.UUID
		if err := tx.Model(&m.DiscountModel{}).
			Where("discount_program_id = ?", id).
			Pluck("discount_id", &discountIDs).Error; err != nil {
			return err
		}
		if len(discountIDs) > 0 {
			if err := tx.Where("discount_package_discount_id IN ?", discountIDs).
				Delete(&m.DiscountPackageModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("discount_program_id = ?", id).Delete(&m.DiscountModel{}).Error; err != nil {
			return err
		}

		if err := tx.Where("coach_program_program_id = ?", id).
			Delete(&coachModel.CoachProgramModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&prog).Error
	})
	if txErr != nil {
		if txErr == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Program tidak ditemukan")
		}
		log.Printf("[Program.Delete] %v", txErr)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menghapus program")
	}

	helper.InvalidateTags("academy:"+academyID.String(), "program:"+id.String())
	return helper.JsonDeleted(c, "Program berhasil dihapus", fiber.Map{"program_id": id})
}
