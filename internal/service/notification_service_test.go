package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/pkg/jobs"
)

type mockNotificationRepo struct {
	mu      sync.Mutex
	created []models.Notification
	byUser  []models.Notification
	unread  int
	marked  []string
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *notification)
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return m.byUser, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	return m.unread, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked = append(m.marked, id)
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked = append(m.marked, "all")
	return nil
}

func (m *mockNotificationRepo) createdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

func startedNotificationService(t *testing.T, repo *mockNotificationRepo) *NotificationService {
	t.Helper()
	svc := NewNotificationService(repo, jobs.QueueConfig{Workers: 1, BufferSize: 16}, zap.NewNop())
	svc.StartQueue(context.Background())
	t.Cleanup(svc.StopQueue)
	return svc
}

func TestNotifyReviewRequestFansOutToAllSlots(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := startedNotificationService(t, repo)

	p2, u1, u2 := "d2", "d3", "d4"
	seminar := &models.Seminar{
		ID:            "s1",
		MahasiswaID:   "m1",
		Pembimbing1ID: "d1",
		Pembimbing2ID: &p2,
		Penguji1ID:    &u1,
		Penguji2ID:    &u2,
		Judul:         "Judul",
		Jenis:         models.CategoryProposal,
	}
	svc.NotifyReviewRequest(seminar, "Budi")

	require.Eventually(t, func() bool {
		return repo.createdCount() == 4
	}, 2*time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	recipients := make(map[string]bool)
	for _, notification := range repo.created {
		recipients[notification.UserID] = true
		assert.Equal(t, "Permintaan Review Seminar", notification.Judul)
		assert.Equal(t, models.NotificationCategoryReview, notification.Kategori)
	}
	assert.Len(t, recipients, 4)
}

func TestNotifyStatusChangePicksTipe(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := startedNotificationService(t, repo)

	seminar := &models.Seminar{ID: "s1", MahasiswaID: "m1", Jenis: models.CategoryHasil, Judul: "Judul"}
	svc.NotifyStatusChange(seminar, models.SeminarStatusDisetujui)
	svc.NotifyStatusChange(seminar, models.SeminarStatusDitolak)

	require.Eventually(t, func() bool {
		return repo.createdCount() == 2
	}, 2*time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	tipes := map[string]bool{}
	for _, notification := range repo.created {
		tipes[notification.Tipe] = true
		assert.Equal(t, "m1", notification.UserID)
	}
	assert.True(t, tipes[models.NotificationTypeSuccess])
	assert.True(t, tipes[models.NotificationTypeWarning])
}

func TestListForUserReturnsUnreadCount(t *testing.T) {
	repo := &mockNotificationRepo{
		byUser: []models.Notification{{ID: "n1"}, {ID: "n2"}},
		unread: 1,
	}
	svc := NewNotificationService(repo, jobs.QueueConfig{}, zap.NewNop())

	notifications, unread, err := svc.ListForUser(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, 1, unread)
}

func TestMarkRead(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, jobs.QueueConfig{}, zap.NewNop())

	require.NoError(t, svc.MarkRead(context.Background(), "n1", "u1"))
	require.NoError(t, svc.MarkAllRead(context.Background(), "u1"))
	assert.Equal(t, []string{"n1", "all"}, repo.marked)
}
