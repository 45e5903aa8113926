package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platewise/recipehub/backend/internal/models"
	"github.com/platewise/recipehub/backend/internal/service"
)

const testJWTSecret = "test-secret"

// TestEnv bundles the in-memory database, services and router for handler
// tests.
type TestEnv struct {
	DB          *gorm.DB
	AuthService *service.AuthService
	Router      *gin.Engine
	LLM         *StubLLMService
}

// SetupTestEnv builds a full router backed by an in-memory sqlite database
// and a stubbed model backend.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Recipe{}, &models.SharedRecipe{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	authService := service.NewAuthService(db, testJWTSecret)
	recipeService := service.NewRecipeService(db)
	shareService := service.NewShareService(db)
	llm := &StubLLMService{}

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, authService).RegisterRoutes(v1)
	NewShareHandler(shareService, authService).RegisterRoutes(v1)
	NewAIHandler(llm, authService, nil).RegisterRoutes(v1)

	return &TestEnv{
		DB:          db,
		AuthService: authService,
		Router:      router,
		LLM:         llm,
	}
}

// CreateTestUserAndToken inserts a user and returns it with a provider-style
// signed token.
func CreateTestUserAndToken(t *testing.T, env *TestEnv, email string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		ID:    uuid.New(),
		Email: email,
		Name:  "Test User",
	}
	require.NoError(t, env.DB.Create(user).Error)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return user, signed
}

// PerformRequest runs one request through the test router. An empty token
// sends the request anonymously.
func PerformRequest(t *testing.T, env *TestEnv, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

// StubLLMService is a canned model backend for handler tests. Err, when set,
// is returned by every method.
type StubLLMService struct {
	Err    error
	Recipe *service.GeneratedRecipe
	Subs   []service.IngredientSubstitute
	Plan   *service.MealPlan
}

func (s *StubLLMService) GenerateRecipe(ctx context.Context, prompt string, opts service.GenerateRecipeOptions) (*service.GeneratedRecipe, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Recipe != nil {
		return s.Recipe, nil
	}
	return &service.GeneratedRecipe{
		Title:        "Stub Recipe",
		Ingredients:  []models.Ingredient{{Name: "stub", Amount: 1, Unit: "pcs"}},
		Instructions: []string{"Stub step."},
		Category:     models.CategoryDinner,
		Difficulty:   models.DifficultyEasy,
		Servings:     2,
	}, nil
}

func (s *StubLLMService) GetIngredientSubstitutes(ctx context.Context, ingredient string, opts service.SubstituteOptions) ([]service.IngredientSubstitute, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Subs != nil {
		return s.Subs, nil
	}
	return []service.IngredientSubstitute{{Name: "stub substitute", Ratio: "1:1"}}, nil
}

func (s *StubLLMService) GenerateMealPlan(ctx context.Context, userID string, opts service.MealPlanOptions) (*service.MealPlan, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Plan != nil {
		return s.Plan, nil
	}
	return &service.MealPlan{Monday: "Stub meal", Notes: "stub"}, nil
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
