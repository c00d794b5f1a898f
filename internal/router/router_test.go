package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/skillhub/internal/config"
	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/handler"
	"github.com/deppfellow/skillhub/internal/middleware"
	"github.com/deppfellow/skillhub/internal/repository"
	"github.com/deppfellow/skillhub/internal/server"
	"github.com/deppfellow/skillhub/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		Auth: config.AuthConfig{
			SecretKey:                "0123456789abcdef0123456789abcdef",
			AccessTokenExpireMinutes: 30,
		},
		Query: config.QueryConfig{Page: 1, PageSize: 20, Ordering: "id"},
		Cache: config.CacheConfig{SkillTTL: time.Minute},
	}
}

// newTestRouter wires the full stack over srv; repos may be unusable when
// the exercised routes never reach the database.
func newTestRouter(t *testing.T, srv *server.Server, repos *repository.Repositories) *echo.Echo {
	t.Helper()

	services, err := service.NewService(srv, repos)
	require.NoError(t, err)

	return NewRouter(
		middleware.NewMiddlewares(srv, services.Auth),
		handler.NewHandlers(srv, services),
	)
}

func TestRoutesWithoutDatabase(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()
	srv := &server.Server{Config: testConfig(), Logger: &logger}
	r := newTestRouter(t, srv, repository.NewRepositories(nil))

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantMsg    string
	}{
		{name: "ping", method: http.MethodGet, target: "/v1/ping", wantStatus: http.StatusOK},
		{name: "status without checks", method: http.MethodGet, target: "/status", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK},
		{name: "docs", method: http.MethodGet, target: "/docs", wantStatus: http.StatusOK},
		{name: "openapi document", method: http.MethodGet, target: "/static/openapi.json", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, target: "/v1/nowhere", wantStatus: http.StatusNotFound, wantMsg: "Route not found"},
		{name: "me needs a token", method: http.MethodGet, target: "/v1/auth/me", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "users need a token", method: http.MethodGet, target: "/v1/user", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "skill mutation needs a token", method: http.MethodPost, target: "/v1/skill", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "associations need a token", method: http.MethodPost, target: "/v1/user-skill", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "page past the offset range", method: http.MethodGet, target: "/v1/skill?page=9223372036854775807&page_size=20", wantStatus: http.StatusUnprocessableEntity, wantMsg: "Page is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

			if tt.wantMsg != "" {
				var body errs.HTTPError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body.Message)
			}
		})
	}
}

func TestBadTokenIsRejected(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()
	srv := &server.Server{Config: testConfig(), Logger: &logger}
	r := newTestRouter(t, srv, repository.NewRepositories(nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Could not validate credentials", body.Message)
}
