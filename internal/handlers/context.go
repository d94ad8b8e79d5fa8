package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anonto42/recipebox/backend/internal/middleware"
	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// currentUser returns the user loaded by middleware.CurrentUser.
func currentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get(middleware.CurrentUserKey).(*models.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Please log in to access this page.")
	}
	return user, nil
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// pathParam returns a decoded path parameter. Echo routes on the raw path
// only when the request path has non-default escaping, and only then are
// parameter values still escaped.
func pathParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return decoded, nil
}

// recordActivity stores an activity entry. The activity log is best effort:
// failures are logged and never reach the client.
func recordActivity(ctx context.Context, repo repositories.ActivityRepository, log *logrus.Logger, activity *models.Activity) {
	if err := repo.Record(ctx, activity); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"user_id": activity.UserID,
			"kind":    activity.Kind,
		}).Warn("failed to record activity")
	}
}
