package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the JSON body of every failed request.
type Response struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// HTTPErrorHandler renders errors as {message, kind}. Server-side failures are logged with
// their cause; the cause itself is not exposed.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}

func render(err error) (int, Response) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return HTTPStatus(appErr.Kind), Response{Message: appErr.Message, Kind: appErr.Kind}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, Response{Message: message, Kind: kindForStatus(httpErr.Code)}
	}

	return http.StatusInternalServerError, Response{
		Message: "internal server error",
		Kind:    KindUpstreamFailure,
	}
}
