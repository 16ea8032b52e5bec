package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/configs"
	authModel "lmsku_backend/internals/features/users/auth/model"
	helper "lmsku_backend/internals/helpers"
)

// AuthMiddleware verifies the access token (cookie first, bearer header as
// fallback), rejects blacklisted tokens, and copies the identity claims into
// Locals for downstream handlers:
//
//	user_id   (string uuid)
//	userRole  (admin|teacher|student)
//	user_name
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Missing access token")
		}

		var blacklisted authModel.TokenBlacklist
		err := db.Where("token = ?", tokenString).First(&blacklisted).Error
		if err == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token is no longer valid")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}

		secret := configs.JWTSecret
		if secret == "" {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().After(time.Unix(int64(exp), 0)) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Token expired")
			}
		}

		sub, _ := claims["sub"].(string)
		if _, err := uuid.Parse(strings.TrimSpace(sub)); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in token")
		}
		c.Locals("user_id", sub)

		if role, ok := claims["role"].(string); ok {
			c.Locals("userRole", role)
		}
		if name, ok := claims["user_name"].(string); ok {
			c.Locals("user_name", name)
		}

		return c.Next()
	}
}
