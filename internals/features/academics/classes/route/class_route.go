package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	classController "lmsku_backend/internals/features/academics/classes/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func ClassRoutes(app *fiber.App, db *gorm.DB) {
	ctl := classController.NewClassController(db)

	classes := app.Group("/api/classes", authMiddleware.AuthMiddleware(db))
	adminOnly := authMiddleware.OnlyRoles("Only an admin may manage classes", constants.RoleAdmin)

	classes.Get("/", ctl.List)
	classes.Post("/", adminOnly, ctl.Create)
	classes.Patch("/:id", adminOnly, ctl.Patch)
	classes.Delete("/:id", adminOnly, ctl.Delete)

	// homeroom teacher, one per class
	classes.Post("/:id/assign-teacher", adminOnly, ctl.AssignTeacher)
	classes.Delete("/:id/teacher", adminOnly, ctl.RemoveTeacher)

	classes.Get("/:id/students",
		authMiddleware.OnlyRoles("Only staff may list class students", constants.TeacherAndAbove...),
		ctl.ListStudents,
	)

	classes.Get("/:id/subjects", ctl.ListSubjects)
	classes.Post("/:id/subjects", adminOnly, ctl.AttachSubject)
	classes.Delete("/:id/subjects/:subjectId", adminOnly, ctl.DetachSubject)

	app.Get("/api/class-teachers",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Only staff may list class teachers", constants.TeacherAndAbove...),
		ctl.ListClassTeachers,
	)
}
