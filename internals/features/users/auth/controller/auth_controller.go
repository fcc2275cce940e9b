// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"log"
	"net/http"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"akademiku_backend/internals/configs"
	"akademiku_backend/internals/constants"
	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"

	d "akademiku_backend/internals/features/users/auth/dto"
	blacklistModel "akademiku_backend/internals/features/users/auth/model"
	svc "akademiku_backend/internals/features/users/auth/service"
	userModel "akademiku_backend/internals/features/users/user/model"
)

/* =========================
   Controller & Constructor
   ========================= */

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{DB: db, Validate: v}
}

/* =========================
   Register / Login
   ========================= */

// Register: POST /auth/register — selalu role student; promosi role
// dilakukan owner lewat endpoint user management.
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req d.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&userModel.UserModel{}).
		Where("user_email = ? AND user_academy_id = ?", email, req.UserAcademyID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if count > 0 {
		return helper.JsonFieldError(c, http.StatusConflict, "user_email", "email sudah terdaftar di academy ini")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Auth.Register] bcrypt: %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal memproses password")
	}
	hashedStr := string(hashed)

	user := userModel.UserModel{
		UserAcademyID: req.UserAcademyID,
		UserName:      strings.TrimSpace(req.UserName),
		UserEmail:     email,
		UserPassword:  &hashedStr,
		UserRole:      constants.RoleStudent,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		log.Printf("[Auth.Register] %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat akun")
	}

	return helper.JsonCreated(c, "Registrasi berhasil", d.NewUserResponse(&user))
}

// Login: POST /auth/login — email + password.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req d.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_email = ?", email).
		First(&user).Error; err != nil {
		// pesan sengaja sama untuk email tak dikenal dan password salah
		return helper.JsonError(c, http.StatusUnauthorized, "email atau password salah")
	}
	if user.UserPassword == nil {
		return helper.JsonError(c, http.StatusUnauthorized, "akun ini login via Google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.UserPassword), []byte(req.UserPassword)); err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "email atau password salah")
	}

	return ctl.respondWithTokens(c, &user, "Login berhasil")
}

// GoogleLogin: POST /auth/google — verifikasi id_token, auto-register
// kalau email belum ada di academy tersebut.
func (ctl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req d.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "id_token Google tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "gagal membaca id_token Google")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	googleID := claimSet.Sub

	var user userModel.UserModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("user_email = ? AND user_academy_id = ?", email, req.UserAcademyID).
		First(&user).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		user = userModel.UserModel{
			UserAcademyID: req.UserAcademyID,
			UserName:      claimSet.Name,
			UserEmail:     email,
			UserRole:      constants.RoleStudent,
			UserGoogleID:  &googleID,
		}
		if err := ctl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
			log.Printf("[Auth.GoogleLogin] create: %v", err)
			return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat akun")
		}
	case err != nil:
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	default:
		if user.UserGoogleID == nil {
			if err := ctl.DB.Model(&user).
				Update("user_google_id", googleID).Error; err != nil {
				return helper.JsonError(c, http.StatusInternalServerError, err.Error())
			}
		}
	}

	return ctl.respondWithTokens(c, &user, "Login Google berhasil")
}

/* =========================
   Refresh / Logout / Me
   ========================= */

// Refresh: POST /auth/refresh
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var req d.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	userIDStr, err := svc.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "refresh token tidak valid")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "refresh token tidak valid")
	}

	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "akun tidak ditemukan")
	}

	return ctl.respondWithTokens(c, &user, "Token diperbarui")
}

// Logout: POST /auth/logout — access token masuk blacklist sampai expired.
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("token_string").(string)
	if tokenString == "" {
		return helper.JsonError(c, http.StatusUnauthorized, "token tidak ditemukan")
	}

	entry := blacklistModel.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: svc.TokenExpiry(tokenString),
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&entry).Error; err != nil {
		log.Printf("[Auth.Logout] %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal logout")
	}

	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// Me: GET /auth/me — profil dari token.
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, http.StatusNotFound, "akun tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", d.NewUserResponse(&user))
}

func (ctl *AuthController) respondWithTokens(c *fiber.Ctx, user *userModel.UserModel, message string) error {
	access, refresh, err := svc.GenerateTokenPair(user)
	if err != nil {
		log.Printf("[Auth] generate token: %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})

	return helper.JsonOK(c, message, d.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         d.NewUserResponse(user),
	})
}
