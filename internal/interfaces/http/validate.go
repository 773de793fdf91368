package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/dto"
)

var validate = validator.New()

// parseAndValidate decodes the JSON body into in and runs the struct
// validation tags. On failure it writes the 400 response and returns false.
func parseAndValidate(c *fiber.Ctx, in any) bool {
	if err := c.BodyParser(in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
		return false
	}
	if err := validate.Struct(in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return false
	}
	return true
}
