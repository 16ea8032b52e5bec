package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	authModel "lmsku_backend/internals/features/users/auth/model"
	userDTO "lmsku_backend/internals/features/users/user/dto"
	userModel "lmsku_backend/internals/features/users/user/model"
	helper "lmsku_backend/internals/helpers"
)

func nowUTC() time.Time { return time.Now().UTC() }

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

/* ==========================
   LOGIN
========================== */

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and establishes the cookie session. Failures are
// a single generic 401 so the response never reveals which field was wrong.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Username and password are required")
	}

	var user userModel.UserModel
	err := db.Where("user_name = ? OR email = ?", input.Username, strings.ToLower(input.Username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if !CheckPassword(user.Password, input.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return issueSession(db, c, &user, "Login successful")
}

func issueSession(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel, message string) error {
	now := nowUTC()

	accessToken, err := SignAccessToken(user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}
	refreshToken, err := SignRefreshToken(user.ID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	ua, ip := c.Get("User-Agent"), c.IP()
	rt := &authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     ComputeRefreshHash(refreshToken, RefreshSecret()),
		ExpiresAt: now.Add(RefreshTTL),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}
	if err := db.Create(rt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to persist session")
	}

	SetAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, message, fiber.Map{
		"user":         userDTO.FromModel(user),
		"access_token": accessToken,
	})
}

/* ==========================
   LOGOUT
========================== */

// Logout blacklists the current access token, drops the caller's refresh
// tokens, and clears both cookies.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing access token")
	}

	// blacklist until the token's own expiry; default to the access TTL when
	// the claim cannot be read
	expiresAt := nowUTC().Add(AccessTTL)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(raw, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiresAt = time.Unix(int64(exp), 0)
		}
	}
	if err := db.Create(&authModel.TokenBlacklist{Token: raw, ExpiresAt: expiresAt}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke session")
	}

	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		if err := db.Where("user_id = ?", userID).Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke session")
		}
	}

	ClearAuthCookies(c)
	return helper.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   REFRESH
========================== */

// RefreshToken rotates the cookie pair. The stored hash must match: a
// refresh token that was never issued (or already rotated away) is rejected.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	userID, err := ParseRefreshToken(raw)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	hash := ComputeRefreshHash(raw, RefreshSecret())
	var stored authModel.RefreshTokenModel
	if err := db.Where("user_id = ? AND token = ? AND expires_at > ?", userID, hash, nowUTC()).
		First(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token is not recognized")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	// rotate: old row out, new session in
	if err := db.Delete(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to rotate session")
	}
	return issueSession(db, c, &user, "Session refreshed")
}

/* ==========================
   CHANGE PASSWORD
========================== */

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing user ID in context")
	}

	var input changePasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(input.NewPassword) < 6 {
		return helper.JsonError(c, fiber.StatusBadRequest, "New password must be at least 6 characters")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if !CheckPassword(user.Password, input.CurrentPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.Model(&user).Update("password", hash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonOK(c, "Password updated", nil)
}
