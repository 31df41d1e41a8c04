package http

import (
	"errors"
	"net/http"

	"restock/internal/core/domain/model/restockorder"
	"restock/internal/generated/servers"
	"restock/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError renders err as a servers.Error with the status its kind maps to.
func writeError(ctx echo.Context, err error) error {
	status, body := toError(err)
	if status >= http.StatusInternalServerError {
		ctx.Logger().Error(err)
	}
	return ctx.JSON(status, body)
}

func toError(err error) (int, servers.Error) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return newError(http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, restockorder.ErrTransitionNotAllowed), errors.Is(err, errs.ErrVersionIsInvalid):
		return newError(http.StatusConflict, err.Error(), nil)
	case errors.Is(err, restockorder.ErrDeliveryCodeMismatch):
		return newError(http.StatusUnprocessableEntity, err.Error(), nil)
	}

	if fieldErrors, ok := errs.CollectFieldErrors(err); ok {
		return newError(http.StatusBadRequest, errs.ErrValidation.Error(), fieldErrors)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		return newError(httpErr.Code, message, nil)
	}

	return newError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
}

func newError(code int, message string, fieldErrors []errs.FieldError) (int, servers.Error) {
	body := servers.Error{Code: code, Message: message}
	if len(fieldErrors) > 0 {
		list := make([]servers.FieldError, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			list = append(list, servers.FieldError{Field: fe.Field, Message: fe.Message})
		}
		body.Errors = &list
	}
	return code, body
}

// errorHandler renders errors returned outside the handlers, such as unknown routes
// or malformed parameters, in the same shape as handler errors.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	status, body := toError(err)
	if status >= http.StatusInternalServerError {
		ctx.Logger().Error(err)
	}

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(status)
	} else {
		err = ctx.JSON(status, body)
	}
	if err != nil {
		ctx.Logger().Error(err)
	}
}
