package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/recipehub/backend/config"
)

// fakeModelServer returns an httptest server that answers every messages call
// with the given text content.
func fakeModelServer(t *testing.T, responseText string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Messages)

		resp := anthropicResponse{}
		resp.Content = append(resp.Content, struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "text", Text: responseText})
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestLLMService(t *testing.T, responseText string) *LLMService {
	t.Helper()
	server := fakeModelServer(t, responseText)
	svc, err := NewLLMService(&config.Config{
		AnthropicAPIKey: "test-key",
		AnthropicAPIURL: server.URL,
	}, nil)
	require.NoError(t, err)
	return svc
}

func TestGenerateRecipe(t *testing.T) {
	body := `Here is your recipe:
{
  "title": "Miso Soup",
  "description": "Simple dashi-based soup.",
  "ingredients": [{"name": "miso paste", "amount": 2, "unit": "tbsp"}],
  "instructions": ["Heat dashi.", "Whisk in miso."],
  "category": "dinner",
  "difficulty": "easy",
  "prepTime": 5,
  "cookTime": 10,
  "servings": 2,
  "tags": ["japanese"]
}`
	svc := newTestLLMService(t, body)

	recipe, err := svc.GenerateRecipe(context.Background(), "miso soup", GenerateRecipeOptions{Servings: 2})
	require.NoError(t, err)
	assert.Equal(t, "Miso Soup", recipe.Title)
	assert.Equal(t, "dinner", recipe.Category)
	assert.Equal(t, 5, recipe.PrepTime)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "miso paste", recipe.Ingredients[0].Name)
}

func TestGenerateRecipeRejectsBadOutput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no JSON at all", "Sorry, I can't help with that."},
		{"malformed JSON", `{"title": "Broken`},
		{"missing title", `{"title": "", "ingredients": [{"name":"x","amount":1}], "instructions": ["y"], "category": "dinner", "difficulty": "easy", "servings": 1}`},
		{"empty ingredients", `{"title": "T", "ingredients": [], "instructions": ["y"], "category": "dinner", "difficulty": "easy", "servings": 1}`},
		{"unknown category", `{"title": "T", "ingredients": [{"name":"x","amount":1}], "instructions": ["y"], "category": "brunch", "difficulty": "easy", "servings": 1}`},
		{"invalid servings", `{"title": "T", "ingredients": [{"name":"x","amount":1}], "instructions": ["y"], "category": "dinner", "difficulty": "easy", "servings": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestLLMService(t, tt.body)
			_, err := svc.GenerateRecipe(context.Background(), "anything", GenerateRecipeOptions{})
			assert.ErrorIs(t, err, ErrModelResponse)
		})
	}
}

func TestGetIngredientSubstitutes(t *testing.T) {
	body := `[
  {"name": "tamari", "ratio": "1:1", "notes": "Gluten-free alternative.", "dietaryInfo": ["gluten-free"]},
  {"name": "coconut aminos", "ratio": "1:1", "notes": "Sweeter and less salty.", "dietaryInfo": ["soy-free"]}
]`
	svc := newTestLLMService(t, body)

	subs, err := svc.GetIngredientSubstitutes(context.Background(), "soy sauce", SubstituteOptions{})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "tamari", subs[0].Name)
	assert.Equal(t, []string{"gluten-free"}, subs[0].DietaryInfo)
}

func TestGetIngredientSubstitutesRejectsEmpty(t *testing.T) {
	svc := newTestLLMService(t, "[]")
	_, err := svc.GetIngredientSubstitutes(context.Background(), "soy sauce", SubstituteOptions{})
	assert.ErrorIs(t, err, ErrModelResponse)
}

func TestGenerateMealPlan(t *testing.T) {
	body := `{
  "monday": "Lentil soup with crusty bread",
  "tuesday": "Chicken stir fry",
  "notes": "Prep lentils on Sunday."
}`
	svc := newTestLLMService(t, body)

	plan, err := svc.GenerateMealPlan(context.Background(), "user-1", MealPlanOptions{DaysCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "Lentil soup with crusty bread", plan.Monday)
	assert.Equal(t, "Chicken stir fry", plan.Tuesday)
	assert.Empty(t, plan.Wednesday)
	assert.Equal(t, "Prep lentils on Sunday.", plan.Notes)
}

func TestGenerateMealPlanRejectsEmptyPlan(t *testing.T) {
	svc := newTestLLMService(t, `{"notes": "no days here"}`)
	_, err := svc.GenerateMealPlan(context.Background(), "user-1", MealPlanOptions{})
	assert.ErrorIs(t, err, ErrModelResponse)
}

func TestNewLLMServiceRequiresKey(t *testing.T) {
	_, err := NewLLMService(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestExtractJSONObject(t *testing.T) {
	raw, err := extractJSONObject("```json\n{\"a\": 1}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, raw)

	_, err = extractJSONObject("nothing here")
	assert.ErrorIs(t, err, ErrModelResponse)
}
