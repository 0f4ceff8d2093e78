package userValidator

import (
	"regexp"
	"strings"

	"cardagency/controllers/userController"
	"cardagency/middleware"
	"cardagency/models"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UpdateUser validates the dashboard's user edit body. Email is the key,
// not an editable field; password is not accepted at all on this path.
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(userController.UpdateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Email (the row key)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "A valid email address is required!"
		}

		// Validate Name
		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		// Validate Role
		switch reqData.Role {
		case models.RoleAdmin, models.RoleModerator, models.RoleAgent:
		default:
			errors["role"] = "Role must be admin, moderator or agent!"
		}

		// Validate Bank Codes (empty allowed, admins have none)
		for _, bc := range reqData.BankCodes {
			if strings.TrimSpace(bc.Bank) == "" || strings.TrimSpace(bc.Code) == "" {
				errors["bank_codes"] = "Bank codes must carry both a bank and a code!"
				break
			}
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated user update to the next middleware
		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}
