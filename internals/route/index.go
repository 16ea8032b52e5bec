package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "lmsku_backend/internals/features/academics/classes/route"
	subjectRoute "lmsku_backend/internals/features/academics/subjects/route"
	assignmentRoute "lmsku_backend/internals/features/assignments/route"
	contentRoute "lmsku_backend/internals/features/contents/route"
	dashboardRoute "lmsku_backend/internals/features/dashboard/route"
	quizRoute "lmsku_backend/internals/features/quizzes/route"
	authRoute "lmsku_backend/internals/features/users/auth/route"
	userRoute "lmsku_backend/internals/features/users/user/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up Auth routes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up User routes...")
	userRoute.UserRoutes(app, db)

	log.Println("[INFO] Setting up Class routes...")
	classRoute.ClassRoutes(app, db)

	log.Println("[INFO] Setting up Subject routes...")
	subjectRoute.SubjectRoutes(app, db)

	log.Println("[INFO] Setting up Content routes...")
	contentRoute.ContentRoutes(app, db)

	log.Println("[INFO] Setting up Quiz routes...")
	quizRoute.QuizRoutes(app, db)

	log.Println("[INFO] Setting up Assignment routes...")
	assignmentRoute.AssignmentRoutes(app, db)

	log.Println("[INFO] Setting up Dashboard routes...")
	dashboardRoute.DashboardRoutes(app, db)
}
