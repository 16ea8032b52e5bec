package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	quizController "lmsku_backend/internals/features/quizzes/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func QuizRoutes(app *fiber.App, db *gorm.DB) {
	ctl := quizController.NewQuizController(db)

	quizzes := app.Group("/api/quizzes", authMiddleware.AuthMiddleware(db))

	quizzes.Get("/", ctl.List)
	quizzes.Get("/:id", ctl.GetByID)
	quizzes.Post("/",
		authMiddleware.OnlyRoles("Only staff may create quizzes", constants.TeacherAndAbove...),
		ctl.Create,
	)

	studentOnly := authMiddleware.OnlyRoles("Only students may take quizzes", constants.RoleStudent)
	quizzes.Post("/:id/attempts", studentOnly, ctl.SubmitAttempt)
	quizzes.Get("/:id/attempts", studentOnly, ctl.ListMyAttempts)
}
