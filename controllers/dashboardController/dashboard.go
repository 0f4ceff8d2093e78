package dashboardController

import (
	"log"

	"cardagency/dashboard"
	"cardagency/database"
	"cardagency/middleware"
	"cardagency/store"
	"cardagency/utils"

	"github.com/gofiber/fiber/v2"
)

// ListApplications returns the filtered, sorted, page-limited view of the
// unified collection. Pagination is "load more": page n returns the first
// n*limit rows, so switching filters starts the client back at page 1.
func ListApplications(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedListQuery").(*ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	records, users := dashboard.App.Snapshot()
	filtered := dashboard.Filter(records, users, reqData.Search, reqData.Status)
	sorted := dashboard.SortBySubmittedAt(filtered)
	page := dashboard.Paginate(sorted, reqData.Page, reqData.Limit)

	response := map[string]interface{}{
		"applications": page,
		"pagination": map[string]interface{}{
			"total": len(filtered),
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application List.", response)
}

// SetStatus applies one status mutation to one record: store write first,
// then the in-memory reflection. A store failure leaves memory untouched
// and surfaces the raw error; no retry.
func SetStatus(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStatus").(*StatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	id := c.Params("id")

	st := store.New(database.Database.Db)
	if err := st.UpdateApplicationStatus(id, reqData.Status); err != nil {
		if store.IsNotFound(err) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
		}
		log.Printf("Error updating status for %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	dashboard.App.SetStatus(id, reqData.Status)

	// Applicants hear about terminal-ish outcomes by email.
	if reqData.Status == dashboard.StatusApproved || reqData.Status == dashboard.StatusRejected {
		if rec, found := dashboard.App.Find(id); found && rec.PersonalDetails.EmailAddress != "" {
			go utils.SendStatusEmail(rec.PersonalDetails.EmailAddress, rec.PersonalDetails.FirstName, reqData.Status)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated.", fiber.Map{
		"id":     id,
		"status": reqData.Status,
	})
}

// Refresh forces a full re-fetch-and-reconcile, the same cycle the change
// feed triggers.
func Refresh(c *fiber.Ctx) error {
	dashboard.App.Refresh()
	records, _ := dashboard.App.Snapshot()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard refreshed.", fiber.Map{
		"total": len(records),
	})
}

// ListQuery is the validated query for the application list.
type ListQuery struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// StatusRequest is the validated body for a status mutation.
type StatusRequest struct {
	Status string `json:"status"`
}
