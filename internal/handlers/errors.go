package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/services"
)

// APIError is an error rendered as {"error": Message, "code": Code}. Code is
// omitted when empty.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandler renders handler errors as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		body := fiber.Map{"error": apiErr.Message}
		if apiErr.Code != "" {
			body["code"] = apiErr.Code
		}
		return c.Status(apiErr.Status).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// toAPIError maps service errors onto status codes and machine codes.
// Unknown errors pass through and become 500s.
func toAPIError(err error) error {
	status, code := 0, ""
	switch {
	case errors.Is(err, services.ErrInvalidPhoneNumber):
		status, code = fiber.StatusUnprocessableEntity, "InvalidPhoneNumber"
	case errors.Is(err, services.ErrAlreadyCreatedUser):
		status, code = fiber.StatusUnprocessableEntity, "AlreadyCreatedUser"
	case errors.Is(err, services.ErrRestrictedToSelf):
		status, code = fiber.StatusUnprocessableEntity, "RestrictedToSelf"
	case errors.Is(err, services.ErrNoPendingStartupInvite):
		status, code = fiber.StatusNotFound, "UserHasNoPendingStartupInvite"
	case errors.Is(err, services.ErrNoStartup):
		status, code = fiber.StatusNotFound, "UserHasNoStartup"
	case errors.Is(err, services.ErrAlreadyInStartup):
		status, code = fiber.StatusUnprocessableEntity, "AlreadyInStartup"
	// Mismatched numbers and codes carry no machine code.
	case errors.Is(err, services.ErrPhoneMismatch), errors.Is(err, services.ErrInvalidVerificationCode):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrWeakPassword), errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		return err
	}
	return &APIError{Status: status, Code: code, Message: err.Error()}
}
