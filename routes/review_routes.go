package routes

import (
	"github.com/peerevalpro/peer_review/handlers"
	"github.com/peerevalpro/peer_review/middleware"
	"github.com/gofiber/fiber/v2"
)

// ReviewRoutes wires the lifecycle and configuration surface. State reads
// and the deadline read are open to every authenticated user; everything
// that mutates the process is instructor-only.
func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reviewGroup := api.Group("/review", middleware.Protected())
	reviewGroup.Get("/state", handlers.GetReviewState)
	reviewGroup.Post("/state", middleware.InstructorRequired(), handlers.SetReviewState)
	reviewGroup.Post("/start-next-round", middleware.InstructorRequired(), handlers.StartNextRound)

	instructor := api.Group("/instructor", middleware.Protected(), middleware.InstructorRequired())
	instructor.Post("/publish", handlers.PublishResults)
	instructor.Post("/unpublish", handlers.UnpublishResults)

	deadline := api.Group("/deadline", middleware.Protected())
	deadline.Get("", handlers.GetDeadline)
	deadline.Post("", middleware.InstructorRequired(), handlers.SetDeadline)
	deadline.Delete("", middleware.InstructorRequired(), handlers.ClearDeadline)

	criteria := api.Group("/criteria", middleware.Protected(), middleware.InstructorRequired())
	criteria.Post("", handlers.CreateCriterion)
	criteria.Get("", handlers.ListCriteria)
	criteria.Put("/:id", handlers.UpdateCriterion)
	criteria.Delete("/:id", handlers.DeleteCriterion)
}
