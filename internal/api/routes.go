package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Post("", handler.UpdateProfile)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.GetCycleHistory)
	cycles.Post("/start", handler.StartCycle)
	cycles.Post("/end", handler.EndCycle)
	cycles.Get("/current", handler.GetCurrentCycle)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Post("", handler.LogSymptom)
	symptoms.Get("", handler.GetSymptoms)
	symptoms.Get("/analysis", handler.GetSymptomAnalysis)

	predictions := api.Group("/predictions", handler.AuthRequired)
	predictions.Post("/pain", handler.GetPainForecast)

	garden := api.Group("/garden", handler.AuthRequired)
	garden.Get("", handler.GetGarden)
	garden.Post("/mood", handler.LogMood)

	wellness := api.Group("/wellness", handler.AuthRequired)
	wellness.Post("/biosensor", handler.RecordBiosensor)
	wellness.Post("/meditation", handler.TrackMeditation)
	wellness.Get("/stats", handler.GetWellnessStats)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Post("", handler.UpdateSettings)
}
