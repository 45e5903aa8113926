package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/recipehub/backend/internal/models"
)

func TestSyncUserCreatesAccount(t *testing.T) {
	env := SetupTestEnv(t)

	// A fresh provider token for a user we have never seen
	userID := uuid.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "fresh@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"full_name": "Fresh User",
		},
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	w := PerformRequest(t, env, "POST", "/api/v1/auth/sync", signed, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, userID.String(), user["id"])
	assert.Equal(t, "fresh@example.com", user["email"])
	assert.Equal(t, "Fresh User", user["name"])

	var stored models.User
	require.NoError(t, env.DB.First(&stored, "id = ?", userID).Error)
	assert.Equal(t, "fresh@example.com", stored.Email)
}

func TestSyncUserRejectsInvalidToken(t *testing.T) {
	env := SetupTestEnv(t)

	w := PerformRequest(t, env, "POST", "/api/v1/auth/sync", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = PerformRequest(t, env, "POST", "/api/v1/auth/sync", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCurrentUser(t *testing.T) {
	env := SetupTestEnv(t)
	user, token := CreateTestUserAndToken(t, env, "me@example.com")

	w := PerformRequest(t, env, "GET", "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, user.ID.String(), body["id"])
	assert.Equal(t, "me@example.com", body["email"])

	w = PerformRequest(t, env, "GET", "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
