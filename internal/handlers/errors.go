package handlers

import (
	"fmt"
	"net/http"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var codeStatuses = map[string]int{
	errs.ECONFLICT:     http.StatusConflict,
	errs.EINVALID:      http.StatusBadRequest,
	errs.ENOTFOUND:     http.StatusNotFound,
	errs.EUNAUTHORIZED: http.StatusUnauthorized,
	errs.EINTERNAL:     http.StatusInternalServerError,
}

// HTTPErrorHandler renders application and echo errors as
// {"success": false, "error": message}. Internal errors are logged and their
// details hidden from the client.
func HTTPErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := errs.ErrorMessage(err)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		} else if code, ok := codeStatuses[errs.ErrorCode(err)]; ok {
			status = code
		}

		if status >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"path":   c.Request().URL.Path,
			}).Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"success": false, "error": message})
		}
		if err != nil {
			log.WithError(err).Error("failed to write error response")
		}
	}
}
