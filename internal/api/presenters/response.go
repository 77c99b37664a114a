package presenters

import (
	"Recipe-Share-Backend/domain"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
		Errors:  errorDetails(err),
	})
}

// errorDetails renders validation failures as a per-field message set and
// everything else as a plain reason string.
func errorDetails(err error) any {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = "failed on rule: " + fe.Tag()
		}
		return fields
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return map[string]string{validationErr.Field: validationErr.Message}
	}

	return err.Error()
}

// StatusForError maps the domain error taxonomy onto HTTP statuses:
// missing things are 404, conflicts are 409, payload-shape violations are
// 400, anything unknown is an internal failure.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrShortLinkNotFound),
		errors.Is(err, domain.ErrNotInFavorites),
		errors.Is(err, domain.ErrNotInCart),
		errors.Is(err, domain.ErrNotFollowing):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyInFavorites),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrSelfFollow),
		errors.Is(err, domain.ErrEmailAlreadyUsed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNotRecipeAuthor),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenNotFound):
		return fiber.StatusUnauthorized
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fiber.StatusBadRequest
	}
	if errors.Is(err, domain.ErrWrongPassword) || errors.Is(err, domain.ErrParseUUID) {
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}
