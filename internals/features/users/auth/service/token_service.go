// file: internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"akademiku_backend/internals/configs"
	userModel "akademiku_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateTokenPair membuat access + refresh token; klaim access token
// dibaca ulang oleh middleware auth dan helpers/auth.
func GenerateTokenPair(u *userModel.UserModel) (accessToken, refreshToken string, err error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id":    u.UserID.String(),
		"academy_id": u.UserAcademyID.String(),
		"role":       u.UserRole,
		"iat":        now.Unix(),
		"exp":        now.Add(AccessTokenTTL).Unix(),
	}
	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"user_id": u.UserID.String(),
		"type":    "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(RefreshTokenTTL).Unix(),
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ParseRefreshToken memverifikasi refresh token dan mengembalikan user_id.
func ParseRefreshToken(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return "", err
	}
	if typ, _ := claims["type"].(string); typ != "refresh" {
		return "", errors.New("bukan refresh token")
	}
	if exp, ok := claims["exp"].(float64); !ok || time.Now().After(time.Unix(int64(exp), 0)) {
		return "", errors.New("refresh token kedaluwarsa")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("refresh token tidak membawa user_id")
	}
	return userID, nil
}

// TokenExpiry membaca exp dari token yang SUDAH lolos middleware auth,
// dipakai saat memasukkan token ke blacklist ketika logout.
func TokenExpiry(tokenString string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Now().Add(AccessTokenTTL)
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Now().Add(AccessTokenTTL)
}
