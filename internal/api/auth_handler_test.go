package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a user and returns its public fields", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
			"email":    "alice@example.com",
			"password": "password1",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("rejects bad input", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		tests := []struct {
			name string
			body interface{}
		}{
			{"malformed JSON", `{"email": `},
			{"missing email", map[string]string{"password": "password1"}},
			{"malformed email", map[string]string{"email": "not-an-email", "password": "password1"}},
			{"short password", map[string]string{"email": "a@example.com", "password": "short"}},
			{"missing password", map[string]string{"email": "a@example.com"}},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				rec := env.do(t, http.MethodPost, "/auth/register", "", tc.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			})
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		body := map[string]string{"email": "dup@example.com", "password": "password1"}
		rec := env.do(t, http.MethodPost, "/auth/register", "", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.do(t, http.MethodPost, "/auth/register", "", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already in use", errorBody(t, rec))
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("issues a token that passes validation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.registerAndLogin(t, "alice@example.com", "password1")

		claims, err := env.jwt.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.registerAndLogin(t, "alice@example.com", "password1")

		unknownRec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "password1",
		})
		wrongRec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, unknownRec.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongRec.Code)
		assert.Equal(t, "Invalid credentials", errorBody(t, unknownRec))
		assert.Equal(t, "Invalid credentials", errorBody(t, wrongRec))
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/auth/login", "", `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthAndFallbackRoutes(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	t.Run("health", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("unknown route names the path and method", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/no/such/route", "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp struct {
			Error  string `json:"error"`
			Path   string `json:"path"`
			Method string `json:"method"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Route not found", resp.Error)
		assert.Equal(t, "/no/such/route", resp.Path)
		assert.Equal(t, http.MethodGet, resp.Method)
	})

	t.Run("wrong method on a known route", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/auth/login", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
