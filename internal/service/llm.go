package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/platewise/recipehub/backend/config"
	"github.com/platewise/recipehub/backend/internal/models"
)

const (
	defaultModel      = "claude-sonnet-4-20250514"
	anthropicVersion  = "2023-06-01"
	mealPlanCacheTTL  = 24 * time.Hour
	recipeMaxTokens   = 2048
	standardMaxTokens = 1024
)

// GeneratedRecipe is the strict shape a recipe-generation call must produce.
// Field names follow the JSON contract in the system prompt.
type GeneratedRecipe struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Ingredients  []models.Ingredient `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Category     string              `json:"category"`
	Difficulty   string              `json:"difficulty"`
	PrepTime     int                 `json:"prepTime"`
	CookTime     int                 `json:"cookTime"`
	Servings     int                 `json:"servings"`
	Tags         []string            `json:"tags"`
}

// IngredientSubstitute is one suggested replacement for an ingredient.
type IngredientSubstitute struct {
	Name        string   `json:"name"`
	Ratio       string   `json:"ratio"`
	Notes       string   `json:"notes"`
	DietaryInfo []string `json:"dietaryInfo"`
}

// MealPlan is a week of meal descriptions. Days the model left out stay empty.
type MealPlan struct {
	Monday    string `json:"monday,omitempty"`
	Tuesday   string `json:"tuesday,omitempty"`
	Wednesday string `json:"wednesday,omitempty"`
	Thursday  string `json:"thursday,omitempty"`
	Friday    string `json:"friday,omitempty"`
	Saturday  string `json:"saturday,omitempty"`
	Sunday    string `json:"sunday,omitempty"`
	Notes     string `json:"notes"`
}

// GenerateRecipeOptions are optional structured hints for recipe generation.
type GenerateRecipeOptions struct {
	Servings int
	Dietary  []string
	Cuisine  string
}

// SubstituteOptions narrow an ingredient-substitute request.
type SubstituteOptions struct {
	RecipeContext string
	Dietary       []string
}

// MealPlanOptions shape a weekly meal-plan request.
type MealPlanOptions struct {
	Preferences []string
	Dietary     []string
	Servings    int
	DaysCount   int
}

// LLMService is a passthrough to the hosted model API. Responses are decoded
// strictly: output that does not match the expected shape is rejected whole,
// never partially applied.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	redis  *redis.Client
}

// NewLLMService creates a new LLMService instance. redisClient may be nil, in
// which case meal plans are not cached.
func NewLLMService(cfg *config.Config, redisClient *redis.Client) (*LLMService, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic API key is not configured")
	}

	apiURL := cfg.AnthropicAPIURL
	if apiURL == "" {
		apiURL = "https://api.anthropic.com/v1/messages"
	}

	return &LLMService{
		apiKey: cfg.AnthropicAPIKey,
		apiURL: apiURL,
		model:  defaultModel,
		client: &http.Client{Timeout: 60 * time.Second},
		redis:  redisClient,
	}, nil
}

// GenerateRecipe asks the model for a complete recipe matching the prompt and
// optional hints.
func (s *LLMService) GenerateRecipe(ctx context.Context, prompt string, opts GenerateRecipeOptions) (*GeneratedRecipe, error) {
	systemPrompt := `You are a professional chef and recipe creator. Generate detailed, practical recipes in valid JSON format.
Always respond with a single JSON object matching this structure:
{
  "title": string,
  "description": string,
  "ingredients": [{ "name": string, "amount": number, "unit": string, "notes"?: string }],
  "instructions": string[],
  "category": "breakfast"|"lunch"|"dinner"|"dessert"|"snack"|"beverage"|"other",
  "difficulty": "easy"|"medium"|"hard",
  "prepTime": number (minutes),
  "cookTime": number (minutes),
  "servings": number,
  "tags": string[]
}`

	parts := []string{"Generate a recipe for: " + prompt}
	if opts.Servings > 0 {
		parts = append(parts, fmt.Sprintf("Servings: %d", opts.Servings))
	}
	if len(opts.Dietary) > 0 {
		parts = append(parts, "Dietary requirements: "+strings.Join(opts.Dietary, ", "))
	}
	if opts.Cuisine != "" {
		parts = append(parts, "Cuisine style: "+opts.Cuisine)
	}

	text, err := s.complete(ctx, systemPrompt, strings.Join(parts, "\n"), recipeMaxTokens)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelResponse, err)
	}
	if err := recipe.validate(); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetIngredientSubstitutes asks the model for replacements for an ingredient.
func (s *LLMService) GetIngredientSubstitutes(ctx context.Context, ingredient string, opts SubstituteOptions) ([]IngredientSubstitute, error) {
	systemPrompt := `You are a culinary expert specializing in ingredient substitutions.
Respond with a JSON array of substitutes:
[{ "name": string, "ratio": string, "notes": string, "dietaryInfo": string[] }]`

	parts := []string{"Find substitutes for: " + ingredient}
	if opts.RecipeContext != "" {
		parts = append(parts, "Recipe context: "+opts.RecipeContext)
	}
	if len(opts.Dietary) > 0 {
		parts = append(parts, "Dietary requirements: "+strings.Join(opts.Dietary, ", "))
	}

	text, err := s.complete(ctx, systemPrompt, strings.Join(parts, "\n"), standardMaxTokens)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var substitutes []IngredientSubstitute
	if err := json.Unmarshal([]byte(raw), &substitutes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelResponse, err)
	}
	if len(substitutes) == 0 {
		return nil, fmt.Errorf("%w: empty substitute list", ErrModelResponse)
	}
	for _, sub := range substitutes {
		if sub.Name == "" {
			return nil, fmt.Errorf("%w: substitute missing name", ErrModelResponse)
		}
	}
	return substitutes, nil
}

// GenerateMealPlan asks the model for a weekly plan. Identical requests from
// the same user within 24h are served from Redis.
func (s *LLMService) GenerateMealPlan(ctx context.Context, userID string, opts MealPlanOptions) (*MealPlan, error) {
	days := opts.DaysCount
	if days <= 0 {
		days = 7
	}

	cacheKey := mealPlanCacheKey(userID, opts)
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached MealPlan
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	systemPrompt := fmt.Sprintf(`You are a professional nutritionist and meal planner.
Generate a %d-day meal plan in JSON format:
{
  "monday"?: string (meal description),
  "tuesday"?: string,
  "wednesday"?: string,
  "thursday"?: string,
  "friday"?: string,
  "saturday"?: string,
  "sunday"?: string,
  "notes": string
}`, days)

	parts := []string{fmt.Sprintf("Generate a %d-day meal plan.", days)}
	if len(opts.Preferences) > 0 {
		parts = append(parts, "Preferences: "+strings.Join(opts.Preferences, ", "))
	}
	if len(opts.Dietary) > 0 {
		parts = append(parts, "Dietary requirements: "+strings.Join(opts.Dietary, ", "))
	}
	if opts.Servings > 0 {
		parts = append(parts, fmt.Sprintf("Servings per meal: %d", opts.Servings))
	}

	text, err := s.complete(ctx, systemPrompt, strings.Join(parts, "\n"), standardMaxTokens)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var plan MealPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelResponse, err)
	}
	if plan.Monday == "" && plan.Tuesday == "" && plan.Wednesday == "" && plan.Thursday == "" &&
		plan.Friday == "" && plan.Saturday == "" && plan.Sunday == "" {
		return nil, fmt.Errorf("%w: plan has no days", ErrModelResponse)
	}

	if s.redis != nil {
		if data, err := json.Marshal(&plan); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, mealPlanCacheTTL).Err(); err != nil {
				log.Printf("[LLMService] failed to cache meal plan: %v", err)
			}
		}
	}
	return &plan, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// complete performs one messages-API call and returns the model's text.
func (s *LLMService) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	reqBody := anthropicRequest{
		Model:     s.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result anthropicResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Content) == 0 || result.Content[0].Type != "text" {
		return "", fmt.Errorf("%w: no text content", ErrModelResponse)
	}
	return result.Content[0].Text, nil
}

func (r *GeneratedRecipe) validate() error {
	switch {
	case r.Title == "":
		return fmt.Errorf("%w: missing title", ErrModelResponse)
	case len(r.Ingredients) == 0:
		return fmt.Errorf("%w: missing ingredients", ErrModelResponse)
	case len(r.Instructions) == 0:
		return fmt.Errorf("%w: missing instructions", ErrModelResponse)
	case r.PrepTime < 0 || r.CookTime < 0:
		return fmt.Errorf("%w: negative time", ErrModelResponse)
	case r.Servings < 1:
		return fmt.Errorf("%w: invalid servings", ErrModelResponse)
	}

	if !validEnum(r.Category, models.CategoryBreakfast, models.CategoryLunch, models.CategoryDinner,
		models.CategoryDessert, models.CategorySnack, models.CategoryBeverage, models.CategoryOther) {
		return fmt.Errorf("%w: unknown category %q", ErrModelResponse, r.Category)
	}
	if !validEnum(r.Difficulty, models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrModelResponse, r.Difficulty)
	}
	for _, ing := range r.Ingredients {
		if ing.Name == "" {
			return fmt.Errorf("%w: ingredient missing name", ErrModelResponse)
		}
	}
	return nil
}

func validEnum(value string, allowed ...string) bool {
	value = strings.ToLower(value)
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// extractJSONObject pulls the outermost {...} from model text that may wrap
// the JSON in prose or markdown fences.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object in output", ErrModelResponse)
	}
	return text[start : end+1], nil
}

// extractJSONArray pulls the outermost [...] from model text.
func extractJSONArray(text string) (string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON array in output", ErrModelResponse)
	}
	return text[start : end+1], nil
}

func mealPlanCacheKey(userID string, opts MealPlanOptions) string {
	data, _ := json.Marshal(opts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("meal_plan:%s:%s", userID, hex.EncodeToString(sum[:8]))
}
