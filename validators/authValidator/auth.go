package authValidator

import (
	"regexp"
	"strings"

	"cardagency/controllers/authController"
	"cardagency/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(authController.LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Email
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "A valid email address is required!"
		}

		// Validate Password
		if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated login details to the next middleware
		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
