package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jobdeck-dev/jobdeck/internal/models"
	"github.com/jobdeck-dev/jobdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreate(t *testing.T) {
	conn, mock := testutil.NewMockDB(t)
	s := NewUserStore(conn)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	user := models.User{Username: "asha", Email: "asha@example.com", PasswordHash: "hash"}

	require.NoError(t, s.Create(&user))
	assert.Equal(t, uint(1), user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreFindByIdentity(t *testing.T) {
	conn, mock := testutil.NewMockDB(t)
	s := NewUserStore(conn)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(username = .+ OR email = .+\)`).
		WithArgs("asha", "asha@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(1, "asha", "asha@example.com"))

	user, err := s.FindByIdentity("asha", "asha@example.com")
	require.NoError(t, err)

	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "asha", user.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreFindByIdentityNotFound(t *testing.T) {
	conn, mock := testutil.NewMockDB(t)
	s := NewUserStore(conn)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(username = .+ OR email = .+\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.FindByIdentity("nobody", "nobody@example.com")

	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreFindByUsernameNotFound(t *testing.T) {
	conn, mock := testutil.NewMockDB(t)
	s := NewUserStore(conn)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.FindByUsername("nobody")

	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreUpdatePreferences(t *testing.T) {
	conn, mock := testutil.NewMockDB(t)
	s := NewUserStore(conn)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpdatePreferences(1, "golang developer", "Delhi", true))
	require.NoError(t, mock.ExpectationsWereMet())
}
