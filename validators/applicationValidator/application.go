package applicationValidator

import (
	"regexp"
	"strings"

	"cardagency/middleware"
	"cardagency/models"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitApplication validates the public multi-step application payload.
// Only the personal details block is checked here; the nested detail
// groups are carried through opaquely.
func SubmitApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(models.ApplicationForm)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate First Name
		if len(strings.TrimSpace(reqData.PersonalDetails.FirstName)) < 2 {
			errors["firstName"] = "First name must be at least 2 characters long!"
		}

		// Validate Last Name
		if len(strings.TrimSpace(reqData.PersonalDetails.LastName)) < 2 {
			errors["lastName"] = "Last name must be at least 2 characters long!"
		}

		// Validate Email
		email := strings.TrimSpace(reqData.PersonalDetails.EmailAddress)
		if email != "" && !emailRegex.MatchString(email) {
			errors["emailAddress"] = "Email address is not valid!"
		}

		// Validate Date of Birth (Optional but must be yyyy-mm-dd if provided)
		if dob := strings.TrimSpace(reqData.PersonalDetails.DateOfBirth); dob != "" {
			matched, _ := regexp.MatchString(`^\d{4}-\d{2}-\d{2}$`, dob)
			if !matched {
				errors["dateOfBirth"] = "Date of birth must be in YYYY-MM-DD format!"
			}
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated application to the next middleware
		c.Locals("validatedApplication", reqData)
		return c.Next()
	}
}

// SubmitKyc validates the secondary intake payload.
func SubmitKyc() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(models.KycDetail)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate First Name
		if len(strings.TrimSpace(reqData.FirstName)) < 2 {
			errors["first_name"] = "First name must be at least 2 characters long!"
		}

		// Validate Last Name
		if len(strings.TrimSpace(reqData.LastName)) < 2 {
			errors["last_name"] = "Last name must be at least 2 characters long!"
		}

		// Validate Email
		email := strings.TrimSpace(reqData.EmailAddress)
		if email != "" && !emailRegex.MatchString(email) {
			errors["email_address"] = "Email address is not valid!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated kyc detail to the next middleware
		c.Locals("validatedKyc", reqData)
		return c.Next()
	}
}
