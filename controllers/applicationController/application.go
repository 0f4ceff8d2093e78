package applicationController

import (
	"log"

	"cardagency/dashboard"
	"cardagency/database"
	"cardagency/middleware"
	"cardagency/models"
	"cardagency/store"

	"github.com/gofiber/fiber/v2"
)

// SubmitApplication accepts a public multi-step application form. An
// empty agent attribution means a direct submission.
func SubmitApplication(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedApplication").(*models.ApplicationForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.SubmittedBy == "" {
		reqData.SubmittedBy = dashboard.DirectSentinel
	}
	reqData.Status = dashboard.StatusPending

	if err := store.New(database.Database.Db).CreateApplication(reqData); err != nil {
		log.Printf("Error saving application: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted successfully.", fiber.Map{
		"id": reqData.ID,
	})
}

// SubmitKyc accepts a secondary-table intake row. These rows stay
// untriaged until an admin picks them up in the dashboard.
func SubmitKyc(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedKyc").(*models.KycDetail)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := store.New(database.Database.Db).CreateKycDetail(reqData); err != nil {
		log.Printf("Error saving kyc detail: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit details!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Details submitted successfully.", fiber.Map{
		"id": reqData.RowID,
	})
}
