package dashboardValidator

import (
	"strconv"
	"strings"

	"cardagency/controllers/dashboardController"
	"cardagency/dashboard"
	"cardagency/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListApplications validates the list query. Page and limit default to
// the first page of ten; filters default to empty, which matches all.
func ListApplications() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		page := 1
		if raw := c.Query("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				errors["page"] = "Page must be a positive integer!"
			} else {
				page = parsed
			}
		}

		limit := 10
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 100 {
				errors["limit"] = "Limit must be between 1 and 100!"
			} else {
				limit = parsed
			}
		}

		status := strings.ToLower(strings.TrimSpace(c.Query("status")))
		if status != "" && !dashboard.ValidStatus(status) {
			errors["status"] = "Unknown status filter!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedListQuery", &dashboardController.ListQuery{
			Search: c.Query("search"),
			Status: status,
			Page:   page,
			Limit:  limit,
		})
		return c.Next()
	}
}

// SetStatus validates a status mutation body.
func SetStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(dashboardController.StatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Status = strings.ToLower(strings.TrimSpace(reqData.Status))
		if !dashboard.ValidStatus(reqData.Status) {
			errors["status"] = "Status must be one of pending, submitted, turn-in, approved, rejected!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated status to the next middleware
		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
