package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	contentController "lmsku_backend/internals/features/contents/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func ContentRoutes(app *fiber.App, db *gorm.DB) {
	ctl := contentController.NewContentController(db)

	contents := app.Group("/api/contents", authMiddleware.AuthMiddleware(db))
	staffOnly := authMiddleware.OnlyRoles("Only staff may author content", constants.TeacherAndAbove...)

	contents.Get("/", ctl.List)
	contents.Get("/:id", ctl.GetByID)
	contents.Post("/", staffOnly, ctl.Create)
	contents.Patch("/:id", staffOnly, ctl.Patch)
	contents.Delete("/:id", staffOnly, ctl.Delete)
}
