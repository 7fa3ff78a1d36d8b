package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/simseminar-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nama", "email", "username", "password_hash", "role", "npm", "konsentrasi", "active", "last_login", "created_at", "updated_at"})
}

func TestFindByLogin(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := userRows().
		AddRow("1", "Budi", "budi@example.com", "budi", "hash", string(models.RoleMahasiswa), "1915061001", "RPL", true, now, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1 OR email = $1 LIMIT 1")).
		WithArgs("budi").
		WillReturnRows(rows)

	user, err := repo.FindByLogin(context.Background(), "budi")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)
	require.NotNil(t, user.NPM)
	assert.Equal(t, "1915061001", *user.NPM)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRefreshToken(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO refresh_tokens").WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateRefreshToken(context.Background(), &models.RefreshToken{ID: "1", UserID: "u1", Token: "token", ExpiresAt: time.Now(), CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	listRows := userRows().
		AddRow("1", "Admin", "a@example.com", "admin", "hash", string(models.RoleAdmin), nil, nil, true, now, now, now)
	mock.ExpectQuery("FROM users WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0").
		WillReturnRows(listRows)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE 1=1")).WillReturnRows(countRows)

	users, total, err := repo.List(context.Background(), models.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDosen(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nama", "konsentrasi"}).
		AddRow("d1", "Dr. Sari", "Jaringan").
		AddRow("d2", "Dr. Tono", nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nama, konsentrasi FROM users WHERE role = 'dosen' AND active = TRUE ORDER BY nama ASC")).
		WillReturnRows(rows)

	dosen, err := repo.ListDosen(context.Background())
	require.NoError(t, err)
	require.Len(t, dosen, 2)
	assert.Equal(t, "Dr. Sari", dosen[0].Nama)
	assert.Nil(t, dosen[1].Konsentrasi)
	assert.NoError(t, mock.ExpectationsWereMet())
}
