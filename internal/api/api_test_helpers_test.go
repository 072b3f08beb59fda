package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/taskhub-api/internal/api"
	"github.com/rsoares/taskhub-api/internal/api/middleware"
	"github.com/rsoares/taskhub-api/internal/api/shared"
	"github.com/rsoares/taskhub-api/internal/config"
	"github.com/rsoares/taskhub-api/internal/platform/memory"
	"github.com/rsoares/taskhub-api/internal/service/auth"
)

const testJWTSecret = "test-secret-value-of-32-bytes!!!"

// testEnv is an in-process instance of the full HTTP surface backed by the
// in-memory stores. The router mirrors the production wiring minus the rate
// limiter, which would throttle the tests themselves.
type testEnv struct {
	router http.Handler
	users  *memory.UserStore
	tasks  *memory.TaskStore
	jwt    auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	taskStore := memory.NewTaskStore()
	userStore := memory.NewUserStore(taskStore)

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	})
	require.NoError(t, err)

	// Minimum bcrypt cost keeps the test suite fast.
	hasher := auth.NewBcryptHasher(4)

	authHandler := api.NewAuthHandler(userStore, jwtService, hasher, nil)
	taskHandler := api.NewTaskHandler(taskStore, nil)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Use(middleware.Trace)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{
			Status:  "OK",
			Message: "Task Management API is running",
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusNotFound, api.NotFoundResponse{
			Error:  "Route not found",
			Path:   r.URL.Path,
			Method: r.Method,
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusMethodNotAllowed, api.NotFoundResponse{
			Error:  "Method not allowed",
			Path:   r.URL.Path,
			Method: r.Method,
		})
	})

	return &testEnv{
		router: r,
		users:  userStore,
		tasks:  taskStore,
		jwt:    jwtService,
	}
}

// do performs a request against the test router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewBuffer(encoded)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates a user through the API and returns a valid token.
func (e *testEnv) registerAndLogin(t *testing.T, email, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createTask creates a task through the API and returns its decoded body.
func (e *testEnv) createTask(t *testing.T, token, title string) api.TaskResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/tasks", token, map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task api.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

// errorBody decodes the standard error envelope.
func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

// taskPath builds the path for a single task.
func taskPath(id int64) string {
	return fmt.Sprintf("/tasks/%d", id)
}
