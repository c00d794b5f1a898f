package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/skillhub/internal/lib/token"
	"github.com/deppfellow/skillhub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMailer) EnqueueWelcomeEmail(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return f.err
}

const testSecret = "0123456789abcdef0123456789abcdef"

func newTokens() *token.Manager {
	return token.NewManager(testSecret, 30*time.Minute)
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	stored := hash(t, "right")

	tests := []struct {
		name       string
		user       *testUser
		password   string
		wantStatus int
		wantMsg    string
	}{
		{name: "unknown email", password: "right", wantStatus: http.StatusUnauthorized, wantMsg: "Incorrect email or password"},
		{name: "wrong password", user: &testUser{active: true}, password: "wrong", wantStatus: http.StatusUnauthorized, wantMsg: "Incorrect password"},
		{name: "inactive", user: &testUser{active: false}, password: "right", wantStatus: http.StatusForbidden, wantMsg: "Inactive user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, repos := newMock(t)
			q := mock.ExpectQuery(`FROM users WHERE email = \$1`).WithArgs("a@x.com")
			if tt.user == nil {
				q.WillReturnRows(mock.NewRows(userColumns))
			} else {
				u := *tt.user
				u.id, u.email, u.username, u.hash, u.role = uuid.New(), "a@x.com", "a", stored, model.RoleBaseUser
				q.WillReturnRows(u.rows(mock))
			}

			svc := NewAuthService(repos.Users, testHasher, newTokens(), nil)
			_, err := svc.SignIn(context.Background(), &model.SignInRequest{EmailEq: "a@x.com", Password: tt.password})

			requireHTTPError(t, err, tt.wantStatus, tt.wantMsg)
		})
	}
}

func TestSignInIssuesToken(t *testing.T) {
	t.Parallel()

	mock, repos := newMock(t)
	u := testUser{id: uuid.New(), email: "a@x.com", username: "a", hash: hash(t, "right"), active: true, role: model.RoleAdmin}
	mock.ExpectQuery(`FROM users WHERE email = \$1`).WithArgs("a@x.com").WillReturnRows(u.rows(mock))

	tokens := newTokens()
	svc := NewAuthService(repos.Users, testHasher, tokens, nil)

	res, err := svc.SignIn(context.Background(), &model.SignInRequest{EmailEq: "a@x.com", Password: "right"})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`), res.Expiration)
	assert.Equal(t, u.id, res.UserInfo.ID)

	claims, err := tokens.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.id.String(), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tokens := newTokens()
	id := uuid.New()
	valid, _, err := tokens.Issue(id.String(), "a@x.com", "a")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, repos := newMock(t)
		_, err := NewAuthService(repos.Users, testHasher, tokens, nil).Resolve(context.Background(), "not-a-token")
		requireHTTPError(t, err, http.StatusUnauthorized, "Could not validate credentials")
	})

	t.Run("foreign secret", func(t *testing.T) {
		t.Parallel()

		other, _, err := token.NewManager("another-secret-of-enough-length", time.Minute).Issue(id.String(), "a@x.com", "a")
		require.NoError(t, err)

		_, repos := newMock(t)
		_, err = NewAuthService(repos.Users, testHasher, tokens, nil).Resolve(context.Background(), other)
		requireHTTPError(t, err, http.StatusUnauthorized, "Could not validate credentials")
	})

	t.Run("account gone", func(t *testing.T) {
		t.Parallel()

		mock, repos := newMock(t)
		mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(id.String()).WillReturnError(pgx.ErrNoRows)

		_, err := NewAuthService(repos.Users, testHasher, tokens, nil).Resolve(context.Background(), valid)
		requireHTTPError(t, err, http.StatusUnauthorized, "User not found")
	})

	t.Run("resolves the account", func(t *testing.T) {
		t.Parallel()

		mock, repos := newMock(t)
		u := testUser{id: id, email: "a@x.com", username: "a", hash: "h", active: true, role: model.RoleModerator}
		mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(id.String()).WillReturnRows(u.rows(mock))

		user, err := NewAuthService(repos.Users, testHasher, tokens, nil).Resolve(context.Background(), valid)
		require.NoError(t, err)
		assert.Equal(t, model.RoleModerator, user.Role)
	})
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	for _, mailErr := range []error{nil, errors.New("redis down")} {
		mock, repos := newMock(t)
		u := testUser{id: uuid.New(), email: "a@x.com", username: "a", hash: "h", active: true, role: model.RoleBaseUser}
		mock.ExpectQuery(`INSERT INTO users \(email,username,password,role\)`).
			WithArgs("a@x.com", "a", pgxmock.AnyArg(), "BASE_USER").
			WillReturnRows(u.rows(mock))

		mailer := &fakeMailer{err: mailErr}
		svc := NewAuthService(repos.Users, testHasher, newTokens(), mailer)

		user, err := svc.SignUp(context.Background(), &model.SignUpRequest{Email: "a@x.com", Username: "a", Password: "p"})
		require.NoError(t, err)

		assert.Equal(t, u.id, user.ID)
		assert.Equal(t, []string{"a@x.com"}, mailer.sent)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}
