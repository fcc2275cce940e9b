// internals/middlewares/auth/capability.go
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"akademiku_backend/internals/constants"
	helperAuth "akademiku_backend/internals/helpers/auth"
)

/* =========================
   Capability guard
   Satu interceptor otorisasi (actor, resource, action) untuk semua route
   tulis — pengganti cek role inline yang dulu tersebar per handler.
========================= */

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// capability map: resource → action → role yang diizinkan.
var capabilities = map[string]map[Action][]string{
	"academy": {
		ActionRead:   constants.AllRoles,
		ActionWrite:  constants.OwnerOnly,
		ActionDelete: constants.OwnerOnly,
	},
	"branch": {
		ActionRead:   constants.AllRoles,
		ActionWrite:  constants.AdminAndAbove,
		ActionDelete: constants.AdminAndAbove,
	},
	"coach": {
		ActionRead:   constants.AllRoles,
		ActionWrite:  constants.AdminAndAbove,
		ActionDelete: constants.AdminAndAbove,
	},
	"program": {
		ActionRead:   constants.AllRoles,
		ActionWrite:  constants.AdminAndAbove,
		ActionDelete: constants.AdminAndAbove,
	},
	"discount": {
		ActionRead:   constants.CoachAndAbove,
		ActionWrite:  constants.AdminAndAbove,
		ActionDelete: constants.AdminAndAbove,
	},
	"enrollment": {
		ActionRead:  constants.AllRoles,
		ActionWrite: constants.AllRoles, // student membuat enrollment-nya sendiri
	},
}

// Can menghasilkan handler yang menolak request bila role actor tidak punya
// capability (resource, action). Dipasang per group/route SETELAH
// AuthMiddleware.
func Can(resource string, action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helperAuth.GetRoleFromToken(c)

		actions, ok := capabilities[resource]
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("resource %q tidak dikenal", resource))
		}
		allowed, ok := actions[action]
		if !ok || !constants.RoleIn(role, allowed) {
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("role %s tidak boleh %s pada %s", role, action, resource))
		}
		return c.Next()
	}
}
