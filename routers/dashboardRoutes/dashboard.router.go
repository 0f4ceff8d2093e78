package dashboardRoutes

import (
	dashboardController "cardagency/controllers/dashboardController"
	"cardagency/middleware"
	"cardagency/models"
	dashboardValidator "cardagency/validators/dashboardValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleModerator))

	dashboardGroup.Get("/applications", dashboardValidator.ListApplications(), dashboardController.ListApplications)
	dashboardGroup.Get("/applications/export", dashboardController.ExportApplications)
	dashboardGroup.Patch("/applications/:id/status", dashboardValidator.SetStatus(), dashboardController.SetStatus)
	dashboardGroup.Post("/refresh", dashboardController.Refresh)
}
