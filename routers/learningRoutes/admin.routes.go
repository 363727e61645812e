package learningRoutes

import (
	controllers "artvista/controllers/learning"
	"artvista/middleware"
	validators "artvista/validators/learning"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminLearningRoutes sets up the content-authoring routes
func SetupAdminLearningRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/learning-paths", middleware.JWTMiddleware, middleware.RequireAdmin)

	adminGroup.Post("/create", validators.CreatePath(), controllers.AdminCreatePath)
	adminGroup.Get("/list", controllers.AdminListPaths)
	adminGroup.Put("/:id", validators.UpdatePath(), controllers.AdminUpdatePath)
	adminGroup.Delete("/:id", validators.PathDetail(), controllers.AdminDeletePath)
	adminGroup.Get("/:id/enrollments", validators.PathDetail(), controllers.AdminGetPathEnrollments)
}
