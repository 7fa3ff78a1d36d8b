package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/jobs"
)

type notificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationService persists in-app notifications. Writes run through a
// background queue so workflow endpoints never wait on, or fail because of,
// notification delivery.
type NotificationService struct {
	repo   notificationRepository
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewNotificationService constructs the service. Call StartQueue before
// dispatching.
func NewNotificationService(repo notificationRepository, queueCfg jobs.QueueConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{repo: repo, logger: logger}
	s.queue = jobs.NewQueue("notifications", s.handleJob, queueCfg)
	return s
}

// StartQueue launches the background workers.
func (s *NotificationService) StartQueue(ctx context.Context) {
	s.queue.Start(ctx)
}

// StopQueue drains the background workers.
func (s *NotificationService) StopQueue() {
	s.queue.Stop()
}

// Dispatch enqueues one notification for asynchronous persistence. Failures
// are logged and dropped after retries; they never propagate to the caller.
func (s *NotificationService) Dispatch(notification models.Notification) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if err := s.queue.Enqueue(jobs.Job{
		ID:      notification.ID,
		Type:    "notification.create",
		Payload: notification,
	}); err != nil {
		s.logger.Warn("failed to enqueue notification",
			zap.String("user_id", notification.UserID),
			zap.Error(err))
	}
}

// NotifyReviewRequest fans a review request out to every assigned reviewer.
func (s *NotificationService) NotifyReviewRequest(seminar *models.Seminar, mahasiswaNama string) {
	metadata, _ := json.Marshal(map[string]string{
		"seminar_id":    seminar.ID,
		"jenis_seminar": string(seminar.Jenis),
	})
	for _, slot := range seminar.ReviewerIDs() {
		s.Dispatch(models.Notification{
			UserID:    slot.UserID,
			SeminarID: &seminar.ID,
			Judul:     "Permintaan Review Seminar",
			Pesan:     fmt.Sprintf("%s mengajukan %s \"%s\" dan menunggu review Anda sebagai %s.", mahasiswaNama, seminar.Jenis.Label(), seminar.Judul, slot.Role.Label()),
			Tipe:      models.NotificationTypeInfo,
			Kategori:  models.NotificationCategoryReview,
			Metadata:  metadata,
		})
	}
}

// NotifyStatusChange informs the student about an aggregator decision.
func (s *NotificationService) NotifyStatusChange(seminar *models.Seminar, status models.SeminarStatus) {
	tipe := models.NotificationTypeInfo
	switch status {
	case models.SeminarStatusDisetujui:
		tipe = models.NotificationTypeSuccess
	case models.SeminarStatusDitolak:
		tipe = models.NotificationTypeWarning
	}
	s.Dispatch(models.Notification{
		UserID:    seminar.MahasiswaID,
		SeminarID: &seminar.ID,
		Judul:     "Status Seminar Diperbarui",
		Pesan:     fmt.Sprintf("%s \"%s\" kini berstatus %s.", seminar.Jenis.Label(), seminar.Judul, status.Label()),
		Tipe:      tipe,
		Kategori:  models.NotificationCategoryPendaftaran,
	})
}

// NotifyReschedule informs the assigned reviewers that the slot moved.
func (s *NotificationService) NotifyReschedule(seminar *models.Seminar) {
	for _, slot := range seminar.ReviewerIDs() {
		s.Dispatch(models.Notification{
			UserID:    slot.UserID,
			SeminarID: &seminar.ID,
			Judul:     "Jadwal Seminar Diperbarui",
			Pesan:     fmt.Sprintf("Jadwal %s \"%s\" telah diubah dan menunggu review ulang.", seminar.Jenis.Label(), seminar.Judul),
			Tipe:      models.NotificationTypeInfo,
			Kategori:  models.NotificationCategoryJadwal,
		})
	}
}

// ListForUser returns the newest notifications plus the unread count.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, int, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread notifications")
	}
	return notifications, unread, nil
}

// MarkRead flags one notification as read for its owner.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	return nil
}

// MarkAllRead flags every unread notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notifications read")
	}
	return nil
}

func (s *NotificationService) handleJob(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(models.Notification)
	if !ok {
		s.logger.Error("unexpected notification payload type", zap.String("job_id", job.ID))
		return nil
	}
	return s.repo.Create(ctx, &notification)
}
