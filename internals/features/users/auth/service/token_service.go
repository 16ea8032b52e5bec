package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"lmsku_backend/internals/configs"
	uModel "lmsku_backend/internals/features/users/user/model"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return getJWTSecret()
	}
	return secret, nil
}

func buildAccessClaims(u *uModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       u.ID.String(),
		"role":      u.Role,
		"user_name": u.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTTL).Unix(),
	}
}

// jti keeps two tokens issued within the same second from colliding, which
// matters because rotation compares stored hashes.
func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"typ": "refresh",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTL).Unix(),
	}
}

func SignAccessToken(u *uModel.UserModel, now time.Time) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).SignedString([]byte(secret))
}

func SignRefreshToken(userID uuid.UUID, now time.Time) (string, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(userID, now)).SignedString([]byte(secret))
}

// ParseRefreshToken verifies signature + expiry and returns the user id.
func ParseRefreshToken(raw string) (uuid.UUID, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return uuid.Nil, err
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}
	return id, nil
}

// ComputeRefreshHash is what gets persisted; raw refresh tokens never touch
// the database.
func ComputeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func RefreshSecret() string {
	s, _ := getRefreshSecret()
	return s
}

func SetAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	secure := configs.AppEnv == "production"
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
		Expires:  now.Add(AccessTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
		Expires:  now.Add(RefreshTTL),
	})
}

func ClearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", HTTPOnly: true, Path: "/", Expires: expired})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", HTTPOnly: true, Path: "/", Expires: expired})
}
