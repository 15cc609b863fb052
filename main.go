package main

import (
	"log"
	"os"

	"sms-dashboard-api/db"
	"sms-dashboard-api/rest"
	"sms-dashboard-api/twilio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	store, err := db.NewStoreFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize message store: %v", err)
	}
	defer db.Close()

	api := &rest.API{
		Store:       store,
		Credentials: credentialSourceFromEnv(),
		Sender:      twilio.NewClient(),
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	rest.Init(app, api)

	addr := ":" + envWithDefault("PORT", "8080")
	log.Printf("Starting server on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// The connector strategy and the direct env-var strategy are mutually
// exclusive per deployment; the connector hostname decides which one is
// wired in.
func credentialSourceFromEnv() twilio.CredentialSource {
	if os.Getenv("REPLIT_CONNECTORS_HOSTNAME") != "" {
		return twilio.NewConnectorSource()
	}
	return twilio.EnvSource{}
}

func envWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
