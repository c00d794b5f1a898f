//go:build integration

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/skillhub/internal/database"
	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/repository"
	"github.com/deppfellow/skillhub/internal/server"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Run with: go test -tags=integration ./internal/router/...
func startStack(t *testing.T) (*echo.Echo, *repository.Repositories) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("skillhub"),
		postgres.WithUsername("skillhub"),
		postgres.WithPassword("skillhub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.Nop()
	require.NoError(t, database.MigrateDSN(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	srv := &server.Server{
		Config: testConfig(),
		Logger: &logger,
		DB:     &database.Database{Pool: pool},
		Redis:  rdb,
	}
	repos := repository.NewRepositories(pool)
	return newTestRouter(t, srv, repos), repos
}

type client struct {
	t *testing.T
	r *echo.Echo
}

func (c client) do(method, target, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.r.ServeHTTP(rec, req)
	return rec
}

func (c client) signUp(email, username, password string) model.User {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/v1/auth/sign-up", "", map[string]string{
		"email": email, "username": username, "password": password,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	var user model.User
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func (c client) signIn(email, password string) string {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/v1/auth/sign-in", "", map[string]string{
		"email__eq": email, "password": password,
	})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.SignInResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.AccessToken
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEndToEnd(t *testing.T) {
	r, repos := startStack(t)
	c := client{t: t, r: r}
	ctx := context.Background()

	var ann model.User

	t.Run("sign up returns the account without its password", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/v1/auth/sign-up", "", map[string]string{
			"email": "a@x.com", "username": "a", "password": "p",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		assert.NotEmpty(t, raw["id"])
		assert.NotEmpty(t, raw["created_at"])
		assert.NotEmpty(t, raw["updated_at"])
		assert.NotContains(t, raw, "password")
		assert.Equal(t, "BASE_USER", raw["role"])

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ann))
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/v1/auth/sign-up", "", map[string]string{
			"email": "a@x.com", "username": "someone-else", "password": "p",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, errorBody(t, rec).Message, "Email already registered")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/v1/auth/sign-in", "", map[string]string{
			"email__eq": "a@x.com", "password": "nope",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Incorrect password", errorBody(t, rec).Message)
	})

	t.Run("skill pages follow id order", func(t *testing.T) {
		var ids []int
		for i := 1; i <= 8; i++ {
			skill, err := repos.Skills.Create(ctx, []repository.Assignment{
				repository.Set("skill_name", fmt.Sprintf("e2e-skill-%d", i)),
				repository.Set("category", string(model.CategoryBackend)),
			})
			require.NoError(t, err)
			ids = append(ids, skill.ID)
		}

		rec := c.do(http.MethodGet, "/v1/skill?page=2&page_size=4&ordering=id", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page query.Page[model.Skill]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Founds, 4)
		for i, skill := range page.Founds {
			assert.Equal(t, ids[4+i], skill.ID)
		}
		assert.Equal(t, 4, page.SearchOptions.TotalCount)
	})

	t.Run("base user cannot delete another account", func(t *testing.T) {
		bob := c.signUp("b@x.com", "b", "p")
		token := c.signIn("a@x.com", "p")

		rec := c.do(http.MethodDelete, "/v1/user/"+bob.ID.String(), token, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Not enough permissions", errorBody(t, rec).Message)

		rec = c.do(http.MethodGet, "/v1/user?id__eq="+bob.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page query.Page[model.User]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Founds, 1)
		assert.Equal(t, bob.ID, page.Founds[0].ID)
	})

	t.Run("duplicate association", func(t *testing.T) {
		token := c.signIn("a@x.com", "p")

		skill, err := repos.Skills.Create(ctx, []repository.Assignment{
			repository.Set("skill_name", "e2e-association"),
			repository.Set("category", string(model.CategoryDatabase)),
		})
		require.NoError(t, err)

		body := map[string]any{
			"users_id":               ann.ID.String(),
			"skill_id":               skill.ID,
			"skill_level":            "EXPERT",
			"skill_years_experience": 3,
		}

		rec := c.do(http.MethodPost, "/v1/user-skill", token, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = c.do(http.MethodPost, "/v1/user-skill", token, body)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Association already created", errorBody(t, rec).Message)
	})

	t.Run("me resolves the caller", func(t *testing.T) {
		token := c.signIn("a@x.com", "p")

		rec := c.do(http.MethodGet, "/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var me model.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		assert.Equal(t, ann.ID, me.ID)
	})

	t.Run("admin deletes a skill with no body", func(t *testing.T) {
		_, err := repos.Users.UpdateAttribute(ctx, repository.ByID(ann.ID), "role", string(model.RoleAdmin))
		require.NoError(t, err)
		token := c.signIn("a@x.com", "p")

		skill, err := repos.Skills.Create(ctx, []repository.Assignment{
			repository.Set("skill_name", "e2e-doomed"),
			repository.Set("category", string(model.CategoryBackend)),
		})
		require.NoError(t, err)

		rec := c.do(http.MethodDelete, fmt.Sprintf("/v1/skill/%d", skill.ID), token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		rec = c.do(http.MethodGet, fmt.Sprintf("/v1/skill/%d", skill.ID), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
