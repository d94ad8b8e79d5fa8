package handlers

import (
	"context"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	sessionTTL    = 24 * time.Hour
	rememberMeTTL = 30 * 24 * time.Hour
)

// TokenVerifier checks identity-provider ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	identity  *services.IdentityService
	verifier  TokenVerifier
	jwtSecret string
	log       *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identity *services.IdentityService, verifier TokenVerifier, jwtSecret string, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		identity:  identity,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}

// Login exchanges a verified ID token for a session JWT, creating the user on
// first login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		h.log.WithError(err).Info("id token rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid login. Please try again.")
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid login. Please try again.")
	}
	name, _ := token.Claims["name"].(string)

	user, created, err := h.identity.LoginOrCreate(ctx, email, name)
	if err != nil {
		return err
	}

	ttl := sessionTTL
	if req.RememberMe {
		ttl = rememberMeTTL
	}
	expiresAt := time.Now().Add(ttl)
	signed, err := h.generateJWT(user, expiresAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{
		"success": true,
		"data": echo.Map{
			"token":      signed,
			"expires_at": expiresAt.UTC(),
			"user":       user,
		},
	})
}

// Logout is stateless: the client drops its token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "You have been logged out."})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User, expiresAt time.Time) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Nickname: user.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
