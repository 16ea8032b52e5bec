package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	dashboardController "lmsku_backend/internals/features/dashboard/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func DashboardRoutes(app *fiber.App, db *gorm.DB) {
	ctl := dashboardController.NewDashboardController(db)

	dashboard := app.Group("/api/dashboard", authMiddleware.AuthMiddleware(db))

	dashboard.Get("/admin",
		authMiddleware.OnlyRoles("Admin dashboard is admin only", constants.RoleAdmin),
		ctl.Admin,
	)
	dashboard.Get("/teacher",
		authMiddleware.OnlyRoles("Teacher dashboard is teacher only", constants.RoleTeacher),
		ctl.Teacher,
	)
	dashboard.Get("/student",
		authMiddleware.OnlyRoles("Student dashboard is student only", constants.RoleStudent),
		ctl.Student,
	)
}
