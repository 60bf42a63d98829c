package routes

import (
	"github.com/peerevalpro/peer_review/handlers"
	"github.com/peerevalpro/peer_review/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func PeerReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	peerReviews := api.Group("/peer-reviews", middleware.Protected())
	peerReviews.Get("/form", middleware.StudentRequired(), handlers.GetReviewForm)
	peerReviews.Post("/submit", middleware.StudentRequired(), handlers.SubmitPeerReviews)
	peerReviews.Get("/mine", middleware.StudentRequired(), handlers.MySubmissions)
	peerReviews.Get("/report", middleware.StudentRequired(), handlers.GetMyReport)
	peerReviews.Get("/report/pdf", middleware.StudentRequired(), handlers.GetMyReportPDF)
	peerReviews.Get("/results", handlers.GetResults)
	peerReviews.Get("/results/all", handlers.GetAllResults)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/events", websocket.New(handlers.ServeWs))
}
