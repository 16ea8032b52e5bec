package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	subjectController "lmsku_backend/internals/features/academics/subjects/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func SubjectRoutes(app *fiber.App, db *gorm.DB) {
	ctl := subjectController.NewSubjectController(db)

	subjects := app.Group("/api/subjects", authMiddleware.AuthMiddleware(db))
	adminOnly := authMiddleware.OnlyRoles("Only an admin may manage subjects", constants.RoleAdmin)

	subjects.Get("/", ctl.List)
	subjects.Post("/", adminOnly, ctl.Create)
	subjects.Patch("/:id", adminOnly, ctl.Patch)
	subjects.Delete("/:id", adminOnly, ctl.Delete)
}
