package repository

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "username", "password", "is_active", "role", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func userRow(mock pgxmock.PgxPoolIface, id uuid.UUID, email, username string) *pgxmock.Rows {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return mock.NewRows(userColumns).
		AddRow(id, email, username, "hash", true, model.RoleBaseUser, now, now)
}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserRepository(mock).GetByID(context.Background(), id)

	requireHTTPError(t, err, http.StatusNotFound, "id not found: "+id.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT id, email, username, password, is_active, role, created_at, updated_at FROM users WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(userRow(mock, id, "ann@x.com", "ann"))

	user, err := NewUserRepository(mock).GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, user.ID)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.Equal(t, model.RoleBaseUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	now := time.Now()
	rows := func(mock pgxmock.PgxPoolIface) *pgxmock.Rows {
		return mock.NewRows(userColumns).
			AddRow(id, "ann@x.com", "ann", "hash", true, model.RoleBaseUser, now, now).
			AddRow(id, "ann@x.com", "ann", "hash", true, model.RoleBaseUser, now, now)
	}

	t.Run("unique drops repeated identities", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectQuery(`FROM users WHERE email = \$1 ORDER BY id ASC`).
			WithArgs("ann@x.com").
			WillReturnRows(rows(mock))

		found, err := NewUserRepository(mock).GetByEmail(context.Background(), "ann@x.com", true)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("not unique keeps every row", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("ann@x.com").
			WillReturnRows(rows(mock))

		found, err := NewUserRepository(mock).GetByEmail(context.Background(), "ann@x.com", false)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("no match is empty", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("nobody@x.com").
			WillReturnRows(mock.NewRows(userColumns))

		found, err := NewUserRepository(mock).GetByEmail(context.Background(), "nobody@x.com", true)
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})
}

func TestCreateTranslatesUniqueViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		constraint string
		want       string
	}{
		{"users_email_key", "Email already registered"},
		{"users_username_key", "Username already registered"},
		{"users_pkey", "User already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			t.Parallel()

			mock := newMock(t)
			mock.ExpectQuery(`INSERT INTO users \(email,username\) VALUES \(\$1,\$2\) RETURNING id`).
				WithArgs("ann@x.com", "ann").
				WillReturnError(&pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: tt.constraint})

			_, err := NewUserRepository(mock).Create(context.Background(), []Assignment{
				Set("email", "ann@x.com"),
				Set("username", "ann"),
			})

			requireHTTPError(t, err, http.StatusConflict, tt.want)
		})
	}
}

func TestCreateAssociationDuplicate(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	userID := uuid.NewString()
	mock.ExpectQuery(`INSERT INTO user_skills \(users_id,skill_id\) VALUES \(\$1,\$2\)`).
		WithArgs(userID, 1).
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "user_skills", ConstraintName: "user_skills_users_id_skill_id_key"})

	_, err := NewUserSkillRepository(mock).Create(context.Background(), []Assignment{
		Set("users_id", userID),
		Set("skill_id", 1),
	})

	requireHTTPError(t, err, http.StatusConflict, "Association already created")
}

func TestCreateForeignKeyViolation(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO user_skills \(skill_id\) VALUES \(\$1\)`).
		WithArgs(99).
		WillReturnError(&pgconn.PgError{Code: "23503", TableName: "user_skills", ConstraintName: "user_skills_skill_id_fkey"})

	_, err := NewUserSkillRepository(mock).Create(context.Background(), []Assignment{Set("skill_id", 99)})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestUpdateNoChanges(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(userRow(mock, id, "ann@x.com", "ann"))
	mock.ExpectRollback()

	_, err := NewUserRepository(mock).Update(context.Background(), ByID(id), []Assignment{
		Set("username", "ann"),
		Set("role", model.RoleBaseUser),
	})

	requireHTTPError(t, err, http.StatusBadRequest, "No changes detected")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWritesChanges(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(userRow(mock, id, "ann@x.com", "ann"))
	mock.ExpectQuery(`UPDATE users SET updated_at = now\(\), username = \$1 WHERE id = \$2 RETURNING id`).
		WithArgs("annie", id.String()).
		WillReturnRows(userRow(mock, id, "ann@x.com", "annie"))
	mock.ExpectCommit()

	user, err := NewUserRepository(mock).UpdateAttribute(context.Background(), ByID(id), "username", "annie")
	require.NoError(t, err)

	assert.Equal(t, "annie", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRow(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := NewUserRepository(mock).UpdateAttribute(context.Background(), ByID(id), "username", "x")

	requireHTTPError(t, err, http.StatusNotFound, "id not found: "+id.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAttributeUnknownColumn(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	_, err := NewUserRepository(mock).UpdateAttribute(context.Background(), ByID(uuid.New()), "nickname", "x")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes the row", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(id.String()).
			WillReturnRows(userRow(mock, id, "ann@x.com", "ann"))
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		require.NoError(t, NewUserRepository(mock).Delete(context.Background(), ByID(id)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM skills WHERE id = \$1`).
			WithArgs(42).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		err := NewSkillRepository(mock).Delete(context.Background(), ByID(42))

		requireHTTPError(t, err, http.StatusNotFound, "not found id: 42")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByKeyTakesFirstMatch(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	userID, rowID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM user_skills WHERE skill_id = \$1 AND users_id = \$2 ORDER BY id ASC LIMIT 1`).
		WithArgs(3, userID.String()).
		WillReturnRows(mock.NewRows([]string{"id", "users_id", "skill_id", "skill_level", "skill_years_experience", "created_at", "updated_at"}).
			AddRow(rowID, userID, 3, model.SkillLevelExpert, 7, now, now))

	repo := NewUserSkillRepository(mock)
	us, err := repo.GetByKey(context.Background(), userID, 3)
	require.NoError(t, err)

	assert.Equal(t, rowID, us.ID)
	assert.Equal(t, model.SkillLevelExpert, us.SkillLevel)
	assert.Equal(t, "users_id="+userID.String()+", skill_id=3", repo.Key(userID, 3).String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
