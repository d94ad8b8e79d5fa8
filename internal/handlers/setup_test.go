package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/recipebox/backend/internal/middleware"
	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/anonto42/recipebox/backend/internal/services"
	"github.com/anonto42/recipebox/backend/validators"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	token, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return token, nil
}

type fakeActivities struct {
	mu       sync.Mutex
	recorded []models.Activity
	fail     bool
}

func (f *fakeActivities) Record(_ context.Context, activity *models.Activity) error {
	if f.fail {
		return errors.New("mongo unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, *activity)
	return nil
}

func (f *fakeActivities) ListByUser(_ context.Context, userID uint, _, _ int64) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Activity{}
	for _, a := range f.recorded {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivities) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := []string{}
	for _, a := range f.recorded {
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

type testServer struct {
	e          *echo.Echo
	db         *gorm.DB
	users      *repositories.PostgresUserRepository
	follows    *repositories.PostgresFollowRepository
	pantry     *repositories.PostgresPantryRepository
	recipes    *repositories.PostgresRecipeRepository
	identity   *services.IdentityService
	verifier   *fakeVerifier
	activities *fakeActivities
	auth       *AuthHandler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.PantryItem{}, &models.Ingredient{}, &models.Recipe{}, &models.Follow{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	s := &testServer{
		e:          echo.New(),
		db:         db,
		users:      repositories.NewPostgresUserRepository(db),
		follows:    repositories.NewPostgresFollowRepository(db),
		pantry:     repositories.NewPostgresPantryRepository(db),
		recipes:    repositories.NewPostgresRecipeRepository(db),
		identity:   services.NewIdentityService(db, repositories.NewPostgresUserRepository(db), log),
		verifier:   &fakeVerifier{tokens: map[string]*auth.Token{}},
		activities: &fakeActivities{},
	}
	s.e.Validator = validators.NewValidator()
	s.e.HTTPErrorHandler = HTTPErrorHandler(log)

	s.auth = NewAuthHandler(s.identity, s.verifier, testSecret, log)
	s.auth.RegisterAuthRoutes(s.e.Group("/api/v1/auth"))

	api := s.e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(testSecret), middleware.CurrentUser(s.users))
	NewUserHandler(s.users, s.follows, s.recipes).RegisterProfileRoutes(api)
	NewFeedHandler(s.follows).RegisterFeedRoutes(api)
	NewFollowHandler(s.follows, s.users, s.activities, log).RegisterFollowRoutes(api)
	NewPantryHandler(s.pantry, s.activities, log).RegisterPantryRoutes(api)
	NewRecipeHandler(s.recipes, s.activities, log).RegisterRecipeRoutes(api)
	NewActivityHandler(s.activities).RegisterActivityRoutes(api)
	return s
}

// login creates (or fetches) a user through the identity service and returns
// a session token for it.
func (s *testServer) login(t *testing.T, email, name string) (*models.User, string) {
	t.Helper()
	user, _, err := s.identity.LoginOrCreate(context.Background(), email, name)
	require.NoError(t, err)
	token, err := s.auth.generateJWT(user, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return user, token
}

type response struct {
	Code int
	Body map[string]interface{}
}

func (r response) data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := response{Code: rec.Code}
	if rec.Body.Len() > 0 && req.Method != http.MethodHead {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.Body))
	}
	return res
}
