package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PUSHKARDEORE/Finalytics/internal/auth"
	"github.com/PUSHKARDEORE/Finalytics/internal/auth/store/memory"
	authHandler "github.com/PUSHKARDEORE/Finalytics/internal/http/auth"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := authHandler.NewHandler(auth.NewService(memory.New(), "test-secret", time.Hour))

	router := chi.NewRouter()
	router.Route("/api/auth", h.Routes)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)

	return resp
}

func token(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body.Token
}

func TestHandler_RegisterLoginProtected(t *testing.T) {
	ts := newServer(t)

	resp := postJSON(t, ts, "/api/auth/register", `{"email": "user@example.com", "password": "hunter22"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, token(t, resp))

	resp = postJSON(t, ts, "/api/auth/login", `{"email": "user@example.com", "password": "hunter22"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	tok := token(t, resp)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/protected", nil)
	require.NoError(t, err)
	req.Header.Set("x-auth-token", tok)

	protectedResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer protectedResp.Body.Close()

	assert.Equal(t, http.StatusOK, protectedResp.StatusCode)

	var identity struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(protectedResp.Body).Decode(&identity))
	assert.Equal(t, "user@example.com", identity.Email)
}

func TestHandler_Register_Duplicate(t *testing.T) {
	ts := newServer(t)

	resp := postJSON(t, ts, "/api/auth/register", `{"email": "user@example.com", "password": "hunter22"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, ts, "/api/auth/register", `{"email": "user@example.com", "password": "other"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_Register_MissingCredentials(t *testing.T) {
	ts := newServer(t)

	type testCase struct {
		name string
		body string
	}

	tests := []testCase{
		{name: "NoPassword", body: `{"email": "user@example.com"}`},
		{name: "NoEmail", body: `{"password": "hunter22"}`},
		{name: "NotJSON", body: `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts, "/api/auth/register", tt.body)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	ts := newServer(t)

	resp := postJSON(t, ts, "/api/auth/register", `{"email": "user@example.com", "password": "hunter22"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, ts, "/api/auth/login", `{"email": "user@example.com", "password": "wrong"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_Protected_RequiresToken(t *testing.T) {
	ts := newServer(t)

	type testCase struct {
		name  string
		setup func(req *http.Request)
	}

	tests := []testCase{
		{name: "NoToken", setup: func(req *http.Request) {}},
		{
			name:  "GarbageToken",
			setup: func(req *http.Request) { req.Header.Set("x-auth-token", "nonsense") },
		},
		{
			name:  "BearerGarbage",
			setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer nonsense") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/protected", nil)
			require.NoError(t, err)
			tt.setup(req)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
