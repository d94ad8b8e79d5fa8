package router

import (
	"net/http"

	"github.com/anonto42/recipebox/backend/internal/handlers"
	"github.com/anonto42/recipebox/backend/internal/middleware"
	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/anonto42/recipebox/backend/internal/services"
	"github.com/anonto42/recipebox/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Options carries the collaborators SetupRoutes wires together.
type Options struct {
	DB        *gorm.DB
	Mongo     *mongo.Database // nil disables the activity log
	Verifier  handlers.TokenVerifier
	JWTSecret string
	Log       *logrus.Logger
}

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PantryItem{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.Follow{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, opts Options) error {
	log := opts.Log
	if err := Migrate(opts.DB); err != nil {
		return errors.Wrap(err, "failed to auto migrate models")
	}
	log.Info("Auto-migrations completed for all models.")

	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(log)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "recipebox API"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(opts.DB)
	followRepo := repositories.NewPostgresFollowRepository(opts.DB)
	pantryRepo := repositories.NewPostgresPantryRepository(opts.DB)
	recipeRepo := repositories.NewPostgresRecipeRepository(opts.DB)
	var activityRepo repositories.ActivityRepository = repositories.NopActivityRepository{}
	if opts.Mongo != nil {
		activityRepo = repositories.NewMongoActivityRepository(opts.Mongo)
	}

	identity := services.NewIdentityService(opts.DB, userRepo, log)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(identity, opts.Verifier, opts.JWTSecret, log).RegisterAuthRoutes(authGroup)
	log.Debug("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(opts.JWTSecret), middleware.CurrentUser(userRepo))

	handlers.NewUserHandler(userRepo, followRepo, recipeRepo).RegisterProfileRoutes(api)
	handlers.NewFeedHandler(followRepo).RegisterFeedRoutes(api)
	handlers.NewFollowHandler(followRepo, userRepo, activityRepo, log).RegisterFollowRoutes(api)
	handlers.NewPantryHandler(pantryRepo, activityRepo, log).RegisterPantryRoutes(api)
	handlers.NewRecipeHandler(recipeRepo, activityRepo, log).RegisterRecipeRoutes(api)
	handlers.NewActivityHandler(activityRepo).RegisterActivityRoutes(api)

	log.Info("All routes configured.")
	return nil
}
