// file: internals/features/users/auth/service/token_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"

	"akademiku_backend/internals/configs"
	userModel "akademiku_backend/internals/features/users/user/model"
)

func testUser() *userModel.UserModel {
	return &userModel.UserModel{
		UserID:        uuid.New(),
		UserAcademyID: uuid.New(),
		UserName:      "Budi",
		UserEmail:     "budi@example.com",
		UserRole:      "admin",
	}
}

func TestGenerateTokenPairAndRefreshRoundTrip(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	u := testUser()
	access, refresh, err := GenerateTokenPair(u)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("token kosong: access=%q refresh=%q", access, refresh)
	}
	if access == refresh {
		t.Fatal("access dan refresh token tidak boleh sama")
	}

	userID, err := ParseRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if userID != u.UserID.String() {
		t.Errorf("user_id = %s, want %s", userID, u.UserID)
	}
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	access, _, err := GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	// access token ditandatangani dengan secret berbeda dan tanpa type=refresh
	if _, err := ParseRefreshToken(access); err == nil {
		t.Fatal("access token seharusnya ditolak sebagai refresh token")
	}
}

func TestTokenExpiryFallsBackOnGarbage(t *testing.T) {
	exp := TokenExpiry("bukan-jwt")
	if exp.IsZero() {
		t.Fatal("TokenExpiry harus selalu mengembalikan waktu valid")
	}
}
