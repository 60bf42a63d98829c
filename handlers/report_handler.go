package handlers

import (
	"fmt"

	"github.com/peerevalpro/peer_review/database"
	"github.com/peerevalpro/peer_review/review"
	"github.com/peerevalpro/peer_review/services"
	"github.com/gofiber/fiber/v2"
)

// GetMyReport returns the caller's aggregate score report once results are
// published.
func GetMyReport(c *fiber.Ctx) error {
	caller := currentCaller(c)

	if err := requirePublished(database.DB, caller); err != nil {
		return domainError(c, err)
	}

	subs, err := receivedSubmissions(database.DB, caller.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(review.BuildReport(caller.ID, caller.Username, subs))
}

// GetMyReportPDF renders the caller's report as a downloadable PDF.
func GetMyReportPDF(c *fiber.Ctx) error {
	caller := currentCaller(c)

	if err := requirePublished(database.DB, caller); err != nil {
		return domainError(c, err)
	}

	subs, err := receivedSubmissions(database.DB, caller.ID)
	if err != nil {
		return domainError(c, err)
	}
	report := review.BuildReport(caller.ID, caller.Username, subs)

	pdf, err := services.GenerateReportPDF(c.Context(), report)
	if err != nil {
		return domainError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="peer-review-report-%s.pdf"`, caller.Username))
	return c.Send(pdf)
}
