package middleware

import (
	"net/http"
	"time"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CurrentUserKey is the context key holding the authenticated *models.User.
const CurrentUserKey = "current_user"

// CurrentUser loads the user named by the JWT claims and records the request
// as their latest activity. It must run after JWTAuthMiddleware.
func CurrentUser(users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*models.JwtCustomClaims)
			if !ok || claims.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Please log in to access this page.")
			}

			ctx := c.Request().Context()
			user, err := users.GetUserByID(ctx, claims.UserID)
			if errs.Is(err, errs.ENOTFOUND) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Please log in to access this page.")
			} else if err != nil {
				return err
			}

			now := time.Now().UTC()
			if err := users.TouchLastSeen(ctx, user.ID, now); err != nil {
				return err
			}
			user.LastSeen = &now

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}
