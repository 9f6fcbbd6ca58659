package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Response is the JSON body of every error reply.
type Response struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// HTTPErrorHandler renders errors returned by handlers and middleware.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// The request logger already records the error with its status.
	status, body := render(err)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		log.Error().Err(err).Msg("write error response")
	}
}

func render(err error) (int, Response) {
	var ae *Error
	if errors.As(err, &ae) {
		msg := ae.Message
		if ae.Kind == Internal && ae.Err != nil {
			msg = ae.Err.Error()
		}
		return ae.Kind.Status(), Response{Message: msg, Errors: ae.Fields}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, Response{Message: fmt.Sprint(he.Message)}
	}

	return http.StatusInternalServerError, Response{Message: err.Error()}
}

// StatusOf reports the HTTP status HTTPErrorHandler would use for err.
func StatusOf(err error) int {
	status, _ := render(err)
	return status
}
