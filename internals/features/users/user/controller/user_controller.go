// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/constants"
	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"

	m "akademiku_backend/internals/features/users/user/model"
)

type UserController struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

/* =========================
   Handlers
   ========================= */

// List: GET /users — anggota tenant, filter role opsional.
func (ctl *UserController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&m.UserModel{}).
		Where("user_academy_id = ?", academyID)
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		if !constants.RoleIn(role, constants.AllRoles) {
			return helper.JsonError(c, http.StatusBadRequest, "role tidak dikenal")
		}
		q = q.Where("user_role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var rows []m.UserModel
	if err := q.Order("user_name").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

type updateRoleRequest struct {
	UserRole string `json:"user_role"`
}

// UpdateRole: PUT /users/:id/role — owner only (dijaga capability di route).
// Owner tidak bisa menurunkan dirinya sendiri.
func (ctl *UserController) UpdateRole(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "user id tidak valid")
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if actorID == id {
		return helper.JsonError(c, http.StatusConflict, "tidak bisa mengubah role sendiri")
	}

	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	role := strings.ToLower(strings.TrimSpace(req.UserRole))
	if !constants.RoleIn(role, constants.AllRoles) {
		return helper.JsonFieldError(c, http.StatusUnprocessableEntity, "user_role", "role tidak dikenal")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&m.UserModel{}).
		Where("user_id = ? AND user_academy_id = ?", id, academyID).
		Update("user_role", role)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Role berhasil diperbarui", fiber.Map{"user_id": id, "user_role": role})
}
