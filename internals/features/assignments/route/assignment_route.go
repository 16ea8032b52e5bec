package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	assignmentController "lmsku_backend/internals/features/assignments/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func AssignmentRoutes(app *fiber.App, db *gorm.DB) {
	ctl := assignmentController.NewAssignmentController(db)

	assignments := app.Group("/api/assignments", authMiddleware.AuthMiddleware(db))
	staffOnly := authMiddleware.OnlyRoles("Only staff may manage assignments", constants.TeacherAndAbove...)

	assignments.Get("/", ctl.List)
	assignments.Get("/:id", ctl.GetByID)
	assignments.Post("/", staffOnly, ctl.Create)
	assignments.Patch("/:id", ctl.Patch)
	assignments.Delete("/:id", staffOnly, ctl.Delete)
}
