package learningRoutes

import (
	controllers "artvista/controllers/learning"
	validators "artvista/validators/learning"

	"github.com/gofiber/fiber/v2"
)

// SetupLearningRoutes sets up all learner-facing learning path routes.
// Learner identity arrives as an opaque id in the body or params; these
// routes are consumed by the frontend collaborator directly.
func SetupLearningRoutes(app *fiber.App) {
	group := app.Group("/learning-paths")

	// Catalog listing
	group.Get("/", controllers.GetAllPaths)
	group.Get("/paths", controllers.GetAllPaths)

	// Progress reporting
	group.Get("/progress/:userId/:learningPathId", validators.LearnerProgress(), controllers.GetLearnerProgress)
	group.Get("/progress/:userId", validators.UserProgress(), controllers.GetUserProgressList)
	group.Get("/user/:userId", validators.UserProgress(), controllers.GetUserProgressList)

	// Enrollment and lesson completion
	group.Post("/enroll", validators.Enroll(), controllers.EnrollInPath)
	group.Post("/complete-lesson", validators.CompleteLesson(), controllers.CompleteLesson)

	// Single path lookup; registered last so the wildcard does not
	// shadow the fixed routes above
	group.Get("/:id", validators.PathDetail(), controllers.GetPathDetails)
}
