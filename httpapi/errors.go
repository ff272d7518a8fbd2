package httpapi

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"

	"github.com/shopnest/backend/auth"
)

// ErrorResponse is the JSON body every failed request gets. Internal detail
// stays in the logs; clients only see the message, category, and text code.
type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
	TextCode string `json:"textCode,omitempty"`
}

// NewErrorHandler builds the app-wide fiber error handler. Rich errors carry
// their own HTTP code; validation errors map to 400, everything else to 500.
func NewErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	return func(c *fiber.Ctx, err error) error {
		if verrs, ok := err.(validation.Errors); ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error":    "validation failed",
				"category": string(errors.CategoryValidation),
				"fields":   verrs,
			})
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := richErr.Code
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusInternalServerError
		}

		logger.Debug(
			"request error: %s category=%s details=%s",
			richErr.Message,
			richErr.Category,
			print.MaybePrettyJSON(richErr.Metadata),
		)

		body := ErrorResponse{
			Error:    richErr.Message,
			Category: string(richErr.Category),
			TextCode: richErr.TextCode,
		}
		if richErr.Category == errors.CategoryInternal {
			// Persistence and other infrastructure failures must not leak
			// driver or query detail to the client.
			body.Error = "An unexpected server error occurred"
		}

		return c.Status(status).JSON(body)
	}
}
