package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func Init(app *fiber.App, api *API) {
	SetupSwagger(app)

	app.Get("/api/config/status", api.ConfigStatusHandler)
	app.Get("/api/messages", api.ListMessagesHandler)
	app.Post("/api/send-sms", api.SendSMSHandler)

	log.Info("REST API started")
}
