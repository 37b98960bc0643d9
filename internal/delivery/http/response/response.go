package response

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
)

type ErrorBody struct {
	Error string `json:"error"`
}

type SuccessBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	MessageBadRequest          = "Bad request"
	MessageInvalidBody         = "Invalid request body"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageUnprocessableEntity = "Unprocessable entity"
	MessageServiceUnavailable  = "Service unavailable"
	MessageInternalServerError = "Internal server error"
	MessageError               = "Error"

	MessageFieldsRequired = "All fields are required"
	MessageSent           = "Message sent successfully"
	MessageSaveFailed     = "Failed to save message"
)

// FetchFailed is the error text for a public document that could not be
// read.
func FetchFailed(resource string) string {
	return "Failed to fetch " + resource + " data"
}

func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorBody{Error: message})
}

func Success(c fiber.Ctx, status int, message string) error {
	return c.Status(normalizeStatus(status)).JSON(SuccessBody{Success: true, Message: message})
}

func JSON(c fiber.Ctx, status int, v any) error {
	return c.Status(normalizeStatus(status)).JSON(v)
}

// Raw writes an already encoded JSON document unchanged.
func Raw(c fiber.Ctx, status int, doc json.RawMessage) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(normalizeStatus(status)).Send(doc)
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
