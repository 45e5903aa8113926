package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/recipehub/backend/internal/service"
)

func TestAIGenerate(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env, "cook@example.com")

	w := PerformRequest(t, env, "POST", "/api/v1/ai/generate", token, map[string]interface{}{
		"prompt":   "something cozy with lentils",
		"servings": 2,
		"dietary":  []string{"vegetarian"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	recipe := decodeBody(t, w)["recipe"].(map[string]interface{})
	assert.Equal(t, "Stub Recipe", recipe["title"])
}

func TestAIGenerateValidation(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env, "cook@example.com")

	// Missing prompt
	w := PerformRequest(t, env, "POST", "/api/v1/ai/generate", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIRequiresAuth(t *testing.T) {
	env := SetupTestEnv(t)

	for _, path := range []string{"/api/v1/ai/generate", "/api/v1/ai/substitute", "/api/v1/ai/meal-plan"} {
		w := PerformRequest(t, env, "POST", path, "", map[string]interface{}{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAISubstitute(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env, "cook@example.com")

	w := PerformRequest(t, env, "POST", "/api/v1/ai/substitute", token, map[string]interface{}{
		"ingredient": "butter",
		"dietary":    []string{"vegan"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	subs := decodeBody(t, w)["substitutes"].([]interface{})
	require.Len(t, subs, 1)
	assert.Equal(t, "stub substitute", subs[0].(map[string]interface{})["name"])
}

func TestAIMealPlan(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env, "cook@example.com")

	w := PerformRequest(t, env, "POST", "/api/v1/ai/meal-plan", token, map[string]interface{}{
		"days_count": 5,
		"dietary":    []string{"pescatarian"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	plan := decodeBody(t, w)["meal_plan"].(map[string]interface{})
	assert.Equal(t, "Stub meal", plan["monday"])

	// Out-of-range days are rejected before hitting the backend
	w = PerformRequest(t, env, "POST", "/api/v1/ai/meal-plan", token, map[string]interface{}{
		"days_count": 9,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIUpstreamFailures(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env, "cook@example.com")

	// Schema violations from the model surface as bad gateway
	env.LLM.Err = service.ErrModelResponse
	w := PerformRequest(t, env, "POST", "/api/v1/ai/generate", token, map[string]interface{}{
		"prompt": "anything",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// So do transport-level failures
	env.LLM.Err = errors.New("connection refused")
	w = PerformRequest(t, env, "POST", "/api/v1/ai/substitute", token, map[string]interface{}{
		"ingredient": "eggs",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
