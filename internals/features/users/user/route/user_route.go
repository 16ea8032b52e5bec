package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	userController "lmsku_backend/internals/features/users/user/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	users := app.Group("/api/users", authMiddleware.AuthMiddleware(db))

	users.Get("/",
		authMiddleware.OnlyRoles("Only staff may list users", constants.TeacherAndAbove...),
		ctl.List,
	)
	users.Get("/:id", ctl.GetByID)

	adminOnly := authMiddleware.OnlyRoles("Only an admin may manage users", constants.RoleAdmin)
	users.Post("/", adminOnly, ctl.Create)
	users.Patch("/:id", adminOnly, ctl.Patch)
	users.Delete("/:id", adminOnly, ctl.Delete)

	// teacher profile extras
	teachers := app.Group("/api/teachers", authMiddleware.AuthMiddleware(db))
	teachers.Post("/:id/qualifications",
		authMiddleware.OnlyRoles("Only staff may edit qualifications", constants.TeacherAndAbove...),
		ctl.AddQualification,
	)
	teachers.Post("/:id/subjects",
		authMiddleware.OnlyRoles("Only staff may assign subjects", constants.TeacherAndAbove...),
		ctl.AddSubject,
	)
	teachers.Get("/:id/subjects", ctl.ListSubjects)
}
