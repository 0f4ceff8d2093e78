package applicationRoutes

import (
	applicationController "cardagency/controllers/applicationController"
	applicationValidator "cardagency/validators/applicationValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupApplicationRoutes(app *fiber.App) {
	// Public intake, no auth: these are the site's submission forms.
	app.Post("/applications", applicationValidator.SubmitApplication(), applicationController.SubmitApplication)
	app.Post("/kyc", applicationValidator.SubmitKyc(), applicationController.SubmitKyc)
}
