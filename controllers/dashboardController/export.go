package dashboardController

import (
	"fmt"
	"log"
	"time"

	"cardagency/dashboard"
	"cardagency/middleware"
	"cardagency/utils"

	"github.com/gofiber/fiber/v2"
)

// ExportApplications streams the current filtered view as an Excel or PDF
// file. The export consumes the same filter path as the list view, so the
// file matches what the admin is looking at.
func ExportApplications(c *fiber.Ctx) error {
	format := c.Query("format", "excel")
	search := c.Query("search", "")
	status := c.Query("status", "")

	records, users := dashboard.App.Snapshot()
	filtered := dashboard.SortBySubmittedAt(dashboard.Filter(records, users, search, status))

	stamp := time.Now().Format("2006-01-02")

	switch format {
	case "excel":
		buf, err := utils.ApplicationsToExcel(filtered)
		if err != nil {
			log.Printf("Error building excel export: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build export!", nil)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="applications-%s.xlsx"`, stamp))
		return c.Send(buf.Bytes())

	case "pdf":
		buf, err := utils.ApplicationsToPDF(filtered)
		if err != nil {
			log.Printf("Error building pdf export: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build export!", nil)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="applications-%s.pdf"`, stamp))
		return c.Send(buf.Bytes())

	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown export format!", nil)
	}
}
