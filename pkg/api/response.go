package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "ereport-admin/pkg/errors"
)

type Response[T any] struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Body    T                 `json:"body,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SuccessOne — для возврата одного объекта
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func ErrorResponse(c echo.Context, err error) error {
	code := apperrors.StatusCode(err)
	msg := apperrors.UserMessage(err)

	var details map[string]string
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		details = httpErr.Details
	}
	if code == 0 {
		code = http.StatusInternalServerError
	}

	return c.JSON(code, Response[any]{
		Status:  false,
		Message: msg,
		Errors:  details,
	})
}
