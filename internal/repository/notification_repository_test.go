package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/simseminar-api/internal/models"
)

func TestCreateNotificationFillsDefaults(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(1, 1))

	notification := &models.Notification{
		UserID:   "u1",
		Judul:    "Permintaan Review Seminar",
		Pesan:    "Anda ditunjuk sebagai reviewer",
		Tipe:     models.NotificationTypeInfo,
		Kategori: models.NotificationCategoryReview,
	}
	err := repo.Create(context.Background(), notification)
	require.NoError(t, err)
	assert.NotEmpty(t, notification.ID)
	assert.False(t, notification.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserClampsLimit(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "seminar_id", "judul", "pesan", "tipe", "kategori", "metadata", "dibaca", "created_at"}).
		AddRow("n1", "u1", "s1", "Jadwal Diperbarui", "Jadwal seminar anda berubah", "info", "jadwal", nil, false, now)
	mock.ExpectQuery("FROM notifications WHERE user_id = \\$1 ORDER BY created_at DESC LIMIT \\$2").
		WithArgs("u1", 10).
		WillReturnRows(rows)

	notifications, err := repo.ListByUser(context.Background(), "u1", 500)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Jadwal Diperbarui", notifications[0].Judul)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnread(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND dibaca = FALSE")).
		WithArgs("u1").
		WillReturnRows(rows)

	count, err := repo.CountUnread(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadScopedToOwner(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET dibaca = TRUE WHERE id = $1 AND user_id = $2")).
		WithArgs("n1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkRead(context.Background(), "n1", "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllRead(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET dibaca = TRUE WHERE user_id = $1 AND dibaca = FALSE")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.MarkAllRead(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
