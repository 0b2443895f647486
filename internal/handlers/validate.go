// validate.go — shared request-body validation.
// Request DTOs declare their rules with `validate:"..."` struct tags and every
// handler funnels through parseAndValidate, so the "read body, check fields,
// answer 400" dance is written exactly once.
package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate is the package-wide validator instance. The validator caches
// struct metadata internally, so sharing one instance is both the documented
// usage and the fast path.
var validate = validator.New()

// parseAndValidate unmarshals the request body into req and runs its
// validation tags. On failure it writes the 400 response itself and returns
// false — the calling handler just returns nil in that case.
func parseAndValidate(c *fiber.Ctx, req interface{}) bool {
	if err := c.BodyParser(req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
		return false
	}

	if err := validate.Struct(req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
		return false
	}

	return true
}

// validationMessage flattens validator's per-field errors into one readable
// string like "golfer_ids failed on 'len'".
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
