package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"lmsku_backend/internals/configs"
	authModel "lmsku_backend/internals/features/users/auth/model"
	authService "lmsku_backend/internals/features/users/auth/service"
	userModel "lmsku_backend/internals/features/users/user/model"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()

	oldJWT, oldRefresh := configs.JWTSecret, configs.JWTRefreshSecret
	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	t.Cleanup(func() {
		configs.JWTSecret, configs.JWTRefreshSecret = oldJWT, oldRefresh
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklist{},
	))

	ctl := NewAuthController(db)
	app := fiber.New()
	app.Post("/api/auth/login", ctl.Login)
	app.Post("/api/auth/refresh-token", ctl.RefreshToken)

	protected := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))
	protected.Get("/me", ctl.Me)
	protected.Post("/logout", ctl.Logout)

	return db, app
}

func seedUser(t *testing.T, db *gorm.DB, username, password string) *userModel.UserModel {
	t.Helper()
	hash, err := authService.HashPassword(password)
	require.NoError(t, err)
	u := &userModel.UserModel{
		UserName: username,
		Email:    username + "@example.com",
		Password: hash,
		FullName: "Test User",
		Role:     "student",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func login(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(fiber.Map{"username": username, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db, app := setupAuthTest(t)
	seedUser(t, db, "jdoe", "secret1")

	resp := login(t, app, "jdoe", "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = login(t, app, "nobody", "secret1")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	db, app := setupAuthTest(t)
	seedUser(t, db, "jdoe", "secret1")

	resp := login(t, app, "jdoe", "secret1")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = login(t, app, "jdoe@example.com", "secret1")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoginSetsCookiesAndPersistsSession(t *testing.T) {
	db, app := setupAuthTest(t)
	u := seedUser(t, db, "jdoe", "secret1")

	resp := login(t, app, "jdoe", "secret1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	access := cookieByName(resp, "access_token")
	refresh := cookieByName(resp, "refresh_token")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)

	// only the hash of the refresh token is persisted
	var rows []authModel.RefreshTokenModel
	require.NoError(t, db.Where("user_id = ?", u.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.NotEqual(t, []byte(refresh.Value), rows[0].Token)
}

func TestSessionLifecycle(t *testing.T) {
	db, app := setupAuthTest(t)
	u := seedUser(t, db, "jdoe", "secret1")

	resp := login(t, app, "jdoe", "secret1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	access := cookieByName(resp, "access_token")
	require.NotNil(t, access)

	withCookie := func(method, path string) *http.Response {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(access)
		out, err := app.Test(req, -1)
		require.NoError(t, err)
		return out
	}

	// the cookie session works
	me := withCookie("GET", "/api/auth/me")
	assert.Equal(t, fiber.StatusOK, me.StatusCode)

	// logout blacklists the token and drops the refresh rows
	out := withCookie("POST", "/api/auth/logout")
	assert.Equal(t, fiber.StatusOK, out.StatusCode)

	var blacklisted, refreshRows int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&blacklisted).Error)
	require.NoError(t, db.Model(&authModel.RefreshTokenModel{}).
		Where("user_id = ?", u.ID).Count(&refreshRows).Error)
	assert.EqualValues(t, 1, blacklisted)
	assert.EqualValues(t, 0, refreshRows)

	// the same access token is now refused
	me = withCookie("GET", "/api/auth/me")
	assert.Equal(t, fiber.StatusUnauthorized, me.StatusCode)
}

func TestRefreshTokenRotation(t *testing.T) {
	db, app := setupAuthTest(t)
	seedUser(t, db, "jdoe", "secret1")

	resp := login(t, app, "jdoe", "secret1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	refresh := cookieByName(resp, "refresh_token")
	require.NotNil(t, refresh)

	req := httptest.NewRequest("POST", "/api/auth/refresh-token", nil)
	req.AddCookie(refresh)
	out, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, out.StatusCode)

	// the old refresh token was rotated away and cannot be replayed
	req = httptest.NewRequest("POST", "/api/auth/refresh-token", nil)
	req.AddCookie(refresh)
	out, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, out.StatusCode)
}

func TestRefreshTokenMissingCookie(t *testing.T) {
	_, app := setupAuthTest(t)

	out, err := app.Test(httptest.NewRequest("POST", "/api/auth/refresh-token", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, out.StatusCode)
}
