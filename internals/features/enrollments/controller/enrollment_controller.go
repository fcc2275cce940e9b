// file: internals/features/enrollments/controller/enrollment_controller.go
package controller

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"

	programModel "akademiku_backend/internals/features/academics/programs/model"
	d "akademiku_backend/internals/features/enrollments/dto"
	m "akademiku_backend/internals/features/enrollments/model"
	svc "akademiku_backend/internals/features/enrollments/service"
	userModel "akademiku_backend/internals/features/users/user/model"
)

/* =========================
   Controller & Constructor
   ========================= */

type EnrollmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *EnrollmentController {
	return &EnrollmentController{DB: db, Validate: v}
}

/* =========================
   Create (student)
   ========================= */

// Create: POST /enrollments — hitung harga snapshot, buat order Midtrans,
// simpan enrollment pending dengan snap token.
func (ctl *EnrollmentController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req d.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	// paket harus milik program tenant yang sama
	var pkg programModel.PackageModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Joins("JOIN programs ON programs.program_id = packages.package_program_id").
		Where("packages.package_id = ? AND programs.program_academy_id = ?", req.EnrollmentPackageID, academyID).
		First(&pkg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Paket tidak ditemukan")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	// kapasitas: hitung yang pending/paid saja
	if pkg.PackageCapacity != nil {
		var taken int64
		if err := ctl.DB.Model(&m.EnrollmentModel{}).
			Where("enrollment_package_id = ? AND enrollment_status IN ?",
				pkg.PackageID, []m.EnrollmentStatusEnum{m.EnrollmentStatusPending, m.EnrollmentStatusPaid}).
			Count(&taken).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		if taken >= int64(*pkg.PackageCapacity) {
			return helper.JsonError(c, http.StatusConflict, "kuota paket sudah penuh")
		}
	}

	breakdown, err := svc.ComputePackagePrice(ctl.DB, &pkg, time.Now())
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "akun tidak ditemukan")
	}

	row := m.EnrollmentModel{
		EnrollmentID:          uuid.New(),
		EnrollmentAcademyID:   academyID,
		EnrollmentPackageID:   pkg.PackageID,
		EnrollmentUserID:      userID,
		EnrollmentStudentName: strings.TrimSpace(req.EnrollmentStudentName),
		EnrollmentAmount:      breakdown.TotalAmount,
		EnrollmentStatus:      m.EnrollmentStatusPending,
	}
	row.EnrollmentOrderID = svc.NewOrderID(row.EnrollmentID)

	if breakdown.TotalAmount > 0 {
		token, err := svc.CreateSnapToken(row.EnrollmentOrderID, breakdown.TotalAmount,
			row.EnrollmentStudentName, user.UserEmail)
		if err != nil {
			log.Printf("[Enrollment.Create] snap: %v", err)
			return helper.JsonError(c, http.StatusBadGateway, "gagal membuat transaksi pembayaran")
		}
		row.EnrollmentSnapToken = &token
	} else {
		// paket gratis langsung paid
		now := time.Now()
		row.EnrollmentStatus = m.EnrollmentStatusPaid
		row.EnrollmentPaidAt = &now
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[Enrollment.Create] %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal menyimpan enrollment")
	}

	return helper.JsonCreated(c, "Enrollment berhasil dibuat", d.EnrollmentResponse{
		EnrollmentModel: row,
		PriceBreakdown:  &breakdown,
	})
}

/* =========================
   Read
   ========================= */

// ListMine: GET /enrollments — milik user login.
func (ctl *EnrollmentController) ListMine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var rows []m.EnrollmentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("enrollment_user_id = ?", userID).
		Order("enrollment_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

// ListByAcademy: GET /enrollments/all — admin, filter status/package.
func (ctl *EnrollmentController) ListByAcademy(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&m.EnrollmentModel{}).
		Where("enrollment_academy_id = ?", academyID)
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("enrollment_status = ?", status)
	}
	if pkgID := strings.TrimSpace(c.Query("package_id")); pkgID != "" {
		id, perr := uuid.Parse(pkgID)
		if perr != nil {
			return helper.JsonError(c, http.StatusBadRequest, "package_id tidak valid")
		}
		q = q.Where("enrollment_package_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var rows []m.EnrollmentModel
	if err := q.Order("enrollment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   Webhook
   ========================= */

type notificationPayload struct {
	OrderID string `json:"order_id"`
}

// Notification: POST /enrollments/notification — webhook Midtrans.
// Body hanya dipakai untuk ambil order_id; status selalu diverifikasi
// ulang langsung ke Midtrans.
func (ctl *EnrollmentController) Notification(c *fiber.Ctx) error {
	var payload notificationPayload
	if err := c.BodyParser(&payload); err != nil || payload.OrderID == "" {
		return helper.JsonError(c, http.StatusBadRequest, "payload notifikasi tidak valid")
	}

	status, err := svc.CheckTransaction(payload.OrderID)
	if err != nil {
		log.Printf("[Enrollment.Notification] check %s: %v", payload.OrderID, err)
		return helper.JsonError(c, http.StatusBadGateway, "gagal verifikasi status transaksi")
	}

	var row m.EnrollmentModel
	if err := ctl.DB.Where("enrollment_order_id = ?", payload.OrderID).First(&row).Error; err != nil {
		return helper.JsonError(c, http.StatusNotFound, "order tidak dikenal")
	}

	updates := map[string]any{}
	switch {
	case svc.IsSettled(status):
		now := time.Now()
		updates["enrollment_status"] = m.EnrollmentStatusPaid
		updates["enrollment_paid_at"] = now
	case status.TransactionStatus == "expire":
		updates["enrollment_status"] = m.EnrollmentStatusExpired
	case status.TransactionStatus == "cancel" || status.TransactionStatus == "deny":
		updates["enrollment_status"] = m.EnrollmentStatusCancelled
	default:
		// pending dkk: tidak ada perubahan
		return helper.JsonOK(c, "ok", nil)
	}

	if err := ctl.DB.Model(&m.EnrollmentModel{}).
		Where("enrollment_order_id = ? AND enrollment_status = ?", payload.OrderID, m.EnrollmentStatusPending).
		Updates(updates).Error; err != nil {
		log.Printf("[Enrollment.Notification] update %s: %v", payload.OrderID, err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal memperbarui enrollment")
	}

	helper.InvalidateTags("academy:" + row.EnrollmentAcademyID.String())
	return helper.JsonOK(c, "ok", nil)
}
