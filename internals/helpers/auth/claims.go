// file: internals/helpers/auth/claims.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"akademiku_backend/internals/constants"
)

/* =========================
   Claim extraction
   Middleware auth menaruh klaim hasil parse JWT di c.Locals; helper di
   sini satu-satunya jalan baca supaya tidak ada parsing klaim tersebar.
========================= */

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" tidak ditemukan di token")
	}
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" kosong di token")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" kosong di token")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Format "+key+" tidak valid di token")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Format "+key+" tidak valid di token")
}

// GetUserIDFromToken: ambil user_id dari c.Locals("user_id").
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "user_id")
}

// GetAcademyIDFromToken: tenant scope aktif dari token.
func GetAcademyIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "academy_id")
}

// GetRoleFromToken: role slug, default student bila tidak ada.
func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("role").(string); ok && strings.TrimSpace(v) != "" {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return constants.RoleStudent
}

func IsOwner(c *fiber.Ctx) bool { return GetRoleFromToken(c) == constants.RoleOwner }
func IsAdmin(c *fiber.Ctx) bool { return GetRoleFromToken(c) == constants.RoleAdmin }
func IsCoach(c *fiber.Ctx) bool { return GetRoleFromToken(c) == constants.RoleCoach }
