package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserRepo(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newMockUserRepo(t)
	now := time.Now()
	user := &model.User{
		ID:           "user-1",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed",
		Role:         model.RoleCustomer,
		CreatedAt:    now,
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A unique-constraint trip on users.email surfaces as ErrDuplicateEmail so
// the service can answer 409 even when two registrations race.
func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, repo := newMockUserRepo(t)
	user := &model.User{ID: "user-1", Email: "test@example.com", CreatedAt: time.Now()}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, repo := newMockUserRepo(t)

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newMockUserRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
