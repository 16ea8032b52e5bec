package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	authController "lmsku_backend/internals/features/users/auth/controller"
	userController "lmsku_backend/internals/features/users/user/controller"
	rateLimiter "lmsku_backend/internals/middlewares"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)
	userCtl := userController.NewUserController(db)

	base := app.Group("/api/auth")

	// public
	base.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	base.Post("/refresh-token", ctl.RefreshToken)

	// session required
	protected := base.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ctl.Logout)
	protected.Post("/change-password", ctl.ChangePassword)
	protected.Get("/me", ctl.Me)

	// registration is an admin action, never self-service
	app.Post("/api/register",
		rateLimiter.RegisterRateLimiter(),
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Only an admin may register users", constants.RoleAdmin),
		userCtl.Create,
	)
}
