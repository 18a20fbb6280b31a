package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/profile"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
	"alfredoptarigan/job-tracker/internal/services"
)

var validate = validator.New()

// ErrorHandler renders errors that escape a handler as {"error", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return errorJSON(c, code, err.Error())
}

// errorJSON writes the {"error", "code"} body shared by every error response.
func errorJSON(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": msg,
		"code":  code,
	})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var notFound *scoring.NotFoundError
	var invalidProfile *profile.ConfigurationError
	switch {
	case errors.As(err, &notFound), errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrIntegrationDisabled),
		errors.Is(err, letter.ErrUnknownStyle):
		return fiber.StatusBadRequest
	case errors.As(err, &invalidProfile):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	return errorJSON(c, statusFor(err), err.Error())
}

func badRequest(c *fiber.Ctx, msg string) error {
	return errorJSON(c, fiber.StatusBadRequest, msg)
}

// validationMessage flattens validator errors into "field: rule" pairs.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func parseJobID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid job ID format")
	}
	return id, nil
}
