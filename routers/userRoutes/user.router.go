package userRoutes

import (
	userController "cardagency/controllers/userController"
	"cardagency/middleware"
	"cardagency/models"
	userValidator "cardagency/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	// The /api/* handlers keep the original serverless wire contract and
	// do their own method/auth checks, so they are registered for all
	// methods and unwrapped.
	app.All("/api/create-user", userController.CreateUser)
	app.All("/api/delete-user", userController.DeleteUser)
	app.All("/api/get-all-users", userController.GetAllUsers)

	// Dashboard edit path.
	app.Put("/api/users", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleModerator), userValidator.UpdateUser(), userController.UpdateUser)
}
