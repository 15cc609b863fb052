package rest

import (
	"errors"
	"fmt"
	"strings"

	"sms-dashboard-api/db"
	"sms-dashboard-api/twilio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// API carries the injected collaborators for the SMS routes: the message
// log, the credential source, and the provider client.
type API struct {
	Store       db.Store
	Credentials twilio.CredentialSource
	Sender      twilio.Sender
}

func (a *API) ConfigStatusHandler(c *fiber.Ctx) error {
	return c.JSON(twilio.Status(c.Context(), a.Credentials))
}

func (a *API) ListMessagesHandler(c *fiber.Ctx) error {
	messages, err := a.Store.GetMessages()
	if err != nil {
		log.Errorf("Error fetching messages: %v", err)
		return ReturnInternalError(c, "Failed to fetch messages")
	}

	return c.JSON(messages)
}

func (a *API) SendSMSHandler(c *fiber.Ctx) error {
	var req SendSMSRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(SendSMSResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if errs := ValidateSendSMSRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(SendSMSResponse{
			Success: false,
			Error:   strings.Join(errs, ", "),
		})
	}

	creds, err := a.Credentials.Resolve(c.Context())
	if err != nil {
		a.logFailed(req, err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(SendSMSResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	if !creds.Usable() {
		message := "No valid Twilio credentials found. Please configure an API key and secret, or an auth token."
		a.logFailed(req, message)
		return c.Status(fiber.StatusServiceUnavailable).JSON(SendSMSResponse{
			Success: false,
			Error:   message,
		})
	}

	if creds.PhoneNumber == "" {
		message := "Twilio sender phone number is not configured"
		a.logFailed(req, message)
		return c.Status(fiber.StatusServiceUnavailable).JSON(SendSMSResponse{
			Success: false,
			Error:   message,
		})
	}

	sid, err := a.Sender.Send(c.Context(), creds, req.To, req.Body)
	if err != nil {
		log.Errorf("Twilio error: %v", err)

		var apiErr *twilio.APIError
		if errors.As(err, &apiErr) {
			logged := apiErr.Message
			if apiErr.Code > 0 {
				logged = fmt.Sprintf("[%d] %s", apiErr.Code, apiErr.Message)
			}
			a.logFailed(req, logged)

			if apiErr.Unauthorized() {
				return c.Status(fiber.StatusUnauthorized).JSON(SendSMSResponse{
					Success: false,
					Error:   "Invalid Twilio credentials",
					Code:    apiErr.Code,
				})
			}

			status := fiber.StatusInternalServerError
			if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
				status = apiErr.StatusCode
			}
			return c.Status(status).JSON(SendSMSResponse{
				Success: false,
				Error:   apiErr.Message,
				Code:    apiErr.Code,
			})
		}

		a.logFailed(req, err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(SendSMSResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	if _, err := a.Store.AddMessage(db.Message{
		To:     req.To,
		Body:   req.Body,
		Status: db.StatusSent,
		Sid:    sid,
	}); err != nil {
		// the message is already out; the gap is log-only
		log.Errorf("Failed to record sent message: %v", err)
	}

	return c.JSON(SendSMSResponse{
		Success: true,
		Sid:     sid,
	})
}

func (a *API) logFailed(req SendSMSRequest, message string) {
	if _, err := a.Store.AddMessage(db.Message{
		To:     req.To,
		Body:   req.Body,
		Status: db.StatusFailed,
		Error:  message,
	}); err != nil {
		log.Errorf("Failed to record failed message: %v", err)
	}
}
