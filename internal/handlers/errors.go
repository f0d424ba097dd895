package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var statusByKind = map[models.ErrorKind]int{
	models.KindUnauthenticated: http.StatusUnauthorized,
	models.KindForbidden:       http.StatusForbidden,
	models.KindNotFound:        http.StatusNotFound,
	models.KindInvalidRequest:  http.StatusBadRequest,
	models.KindConflict:        http.StatusConflict,
}

// httpError converts an AppError into an echo.HTTPError; other errors pass
// through to ErrorHandler as internal errors.
func httpError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByKind[appErr.Kind]; ok {
			return echo.NewHTTPError(status, appErr.Message)
		}
	}
	return err
}

// ErrorHandler renders every error as {"message": ...} and logs internal failures.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		err = httpError(err)
		status := http.StatusInternalServerError
		message := "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else {
			log.Error("Unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"message": message})
		}
		if err != nil {
			log.Error("Failed to write error response", zap.Error(err))
		}
	}
}

// bindAndValidate binds the request body into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// queryInt64 parses an optional integer query parameter
func queryInt64(c echo.Context, name string, def int64) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

// pagination reads skip and limit; zero limit lets the service choose its default
func pagination(c echo.Context) (int64, int64, error) {
	skip, err := queryInt64(c, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt64(c, "limit", 0)
	if err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}
