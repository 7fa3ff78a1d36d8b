package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
)

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id string) (*models.Review, error)
	Exists(ctx context.Context, seminarID, dosenID string, peran models.ReviewerRole) (bool, error)
	Update(ctx context.Context, review *models.Review) error
	ListBySeminar(ctx context.Context, seminarID string) ([]models.ReviewDetail, error)
}

type reviewSeminarRepository interface {
	FindByID(ctx context.Context, id string) (*models.Seminar, error)
	UpdateStatus(ctx context.Context, id string, status models.SeminarStatus, reviewedAt time.Time) error
}

// SubmitReviewRequest is the reviewer decision payload. The reviewer role is
// resolved from the seminar's slots, never taken from the request.
type SubmitReviewRequest struct {
	Status  models.ReviewStatus `json:"status"`
	Catatan *string             `json:"catatan"`

	NilaiKomponen1 *int `json:"nilai_komponen_1" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen2 *int `json:"nilai_komponen_2" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen3 *int `json:"nilai_komponen_3" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen4 *int `json:"nilai_komponen_4" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen5 *int `json:"nilai_komponen_5" validate:"omitempty,gte=0,lte=100"`

	TanggalAlternatif *string `json:"tanggal_alternatif"`
	JamAlternatif     *string `json:"jam_alternatif"`
	RuangAlternatif   *string `json:"ruang_alternatif"`
}

// UpdateReviewRequest partially amends an existing review. Absent fields keep
// their stored value.
type UpdateReviewRequest struct {
	Status  *models.ReviewStatus `json:"status"`
	Catatan *string              `json:"catatan"`

	NilaiKomponen1 *int `json:"nilai_komponen_1" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen2 *int `json:"nilai_komponen_2" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen3 *int `json:"nilai_komponen_3" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen4 *int `json:"nilai_komponen_4" validate:"omitempty,gte=0,lte=100"`
	NilaiKomponen5 *int `json:"nilai_komponen_5" validate:"omitempty,gte=0,lte=100"`

	TanggalAlternatif *string `json:"tanggal_alternatif"`
	JamAlternatif     *string `json:"jam_alternatif"`
	RuangAlternatif   *string `json:"ruang_alternatif"`
}

// ReviewConfig bounds review document uploads.
type ReviewConfig struct {
	MaxReviewBytes int64
	AllowedMIMEs   []string
	QuorumSize     int
}

// ReviewService implements the reviewer workflow and the status aggregator.
type ReviewService struct {
	reviews       reviewRepository
	seminars      reviewSeminarRepository
	audit         auditRecorder
	files         FileStore
	notifications *NotificationService
	validator     *validator.Validate
	logger        *zap.Logger
	config        ReviewConfig
}

// NewReviewService constructs a ReviewService.
func NewReviewService(
	reviews reviewRepository,
	seminars reviewSeminarRepository,
	audit auditRecorder,
	files FileStore,
	notifications *NotificationService,
	validate *validator.Validate,
	logger *zap.Logger,
	config ReviewConfig,
) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.QuorumSize <= 0 {
		config.QuorumSize = 4
	}
	return &ReviewService{
		reviews:       reviews,
		seminars:      seminars,
		audit:         audit,
		files:         files,
		notifications: notifications,
		validator:     validate,
		logger:        logger,
		config:        config,
	}
}

// Submit records a reviewer decision on a seminar. The caller's role is
// resolved against the seminar's reviewer slots in fixed priority order; a
// second submission for the same (seminar, reviewer, role) triple is
// rejected. Afterwards the seminar status is re-aggregated.
func (s *ReviewService) Submit(ctx context.Context, seminarID string, dosen *models.User, req SubmitReviewRequest, document *FileUpload) (*models.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	seminar, err := s.seminars.FindByID(ctx, seminarID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seminar not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seminar")
	}

	peran := seminar.RoleOf(dosen.ID)
	if peran == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not assigned as a reviewer of this seminar")
	}

	exists, err := s.reviews.Exists(ctx, seminarID, dosen.ID, peran)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing review")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateReview, "")
	}

	status := req.Status
	if status == "" {
		status = models.ReviewStatusDireview
	}
	if !status.Valid() {
		return nil, appErrors.Validation([]appErrors.FieldError{{Field: "status", Message: "unknown review status"}}, "invalid review status")
	}

	now := time.Now().UTC()
	review := &models.Review{
		ID:             uuid.NewString(),
		SeminarID:      seminarID,
		DosenID:        dosen.ID,
		Peran:          peran,
		Status:         status,
		Catatan:        req.Catatan,
		NilaiKomponen1: req.NilaiKomponen1,
		NilaiKomponen2: req.NilaiKomponen2,
		NilaiKomponen3: req.NilaiKomponen3,
		NilaiKomponen4: req.NilaiKomponen4,
		NilaiKomponen5: req.NilaiKomponen5,
		TanggalReview:  &now,
	}
	review.RecomputeFinalScore()

	if err := applyAlternate(review, req.TanggalAlternatif, req.JamAlternatif, req.RuangAlternatif); err != nil {
		return nil, err
	}

	if document != nil {
		stored, err := storeUpload(s.files, "reviews", review.ID, document, s.config.MaxReviewBytes, s.config.AllowedMIMEs)
		if err != nil {
			return nil, err
		}
		review.FileReview = &stored
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if review.FileReview != nil {
			if cleanupErr := s.files.Delete(*review.FileReview); cleanupErr != nil {
				s.logger.Warn("failed to remove orphaned review file", zap.Error(cleanupErr))
			}
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create review")
	}

	s.aggregate(ctx, seminar)

	payload, _ := json.Marshal(map[string]interface{}{"peran": review.Peran, "status": review.Status})
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &dosen.ID,
		Action:     models.AuditActionReviewSubmit,
		Resource:   "seminar_reviews",
		ResourceID: &review.ID,
		NewValues:  payload,
	}); err != nil {
		s.logger.Warn("failed to record review submit audit log", zap.Error(err))
	}

	return review, nil
}

// Update amends a previously submitted review. Only the authoring reviewer
// may update it; absent fields keep their stored values and the final score
// is recomputed from the merged components.
func (s *ReviewService) Update(ctx context.Context, reviewID string, dosen *models.User, req UpdateReviewRequest, document *FileUpload) (*models.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "review not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load review")
	}
	if review.DosenID != dosen.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the authoring reviewer may update this review")
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, appErrors.Validation([]appErrors.FieldError{{Field: "status", Message: "unknown review status"}}, "invalid review status")
		}
		review.Status = *req.Status
	}
	if req.Catatan != nil {
		review.Catatan = req.Catatan
	}
	if req.NilaiKomponen1 != nil {
		review.NilaiKomponen1 = req.NilaiKomponen1
	}
	if req.NilaiKomponen2 != nil {
		review.NilaiKomponen2 = req.NilaiKomponen2
	}
	if req.NilaiKomponen3 != nil {
		review.NilaiKomponen3 = req.NilaiKomponen3
	}
	if req.NilaiKomponen4 != nil {
		review.NilaiKomponen4 = req.NilaiKomponen4
	}
	if req.NilaiKomponen5 != nil {
		review.NilaiKomponen5 = req.NilaiKomponen5
	}
	review.RecomputeFinalScore()

	if err := applyAlternate(review, req.TanggalAlternatif, req.JamAlternatif, req.RuangAlternatif); err != nil {
		return nil, err
	}

	if document != nil {
		previous := review.FileReview
		stored, err := storeUpload(s.files, "reviews", review.ID, document, s.config.MaxReviewBytes, s.config.AllowedMIMEs)
		if err != nil {
			return nil, err
		}
		review.FileReview = &stored
		if previous != nil {
			if err := s.files.Delete(*previous); err != nil {
				s.logger.Warn("failed to delete replaced review file", zap.Error(err))
			}
		}
	}

	now := time.Now().UTC()
	review.TanggalReview = &now

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update review")
	}

	seminar, err := s.seminars.FindByID(ctx, review.SeminarID)
	if err == nil {
		s.aggregate(ctx, seminar)
	} else {
		s.logger.Warn("failed to load seminar for aggregation", zap.Error(err))
	}

	payload, _ := json.Marshal(map[string]interface{}{"status": review.Status})
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &dosen.ID,
		Action:     models.AuditActionReviewUpdate,
		Resource:   "seminar_reviews",
		ResourceID: &review.ID,
		NewValues:  payload,
	}); err != nil {
		s.logger.Warn("failed to record review update audit log", zap.Error(err))
	}

	return review, nil
}

// ListBySeminar returns all reviews of a seminar with display labels.
func (s *ReviewService) ListBySeminar(ctx context.Context, seminarID string) ([]models.ReviewDetail, error) {
	reviews, err := s.reviews.ListBySeminar(ctx, seminarID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}
	for i := range reviews {
		reviews[i].PeranText = reviews[i].Peran.Label()
	}
	return reviews, nil
}

// aggregate recomputes the seminar status from its reviews. Fewer reviews
// than the quorum leave the status untouched; a unanimous quorum approves or
// rejects, anything mixed falls back to pending.
func (s *ReviewService) aggregate(ctx context.Context, seminar *models.Seminar) {
	reviews, err := s.reviews.ListBySeminar(ctx, seminar.ID)
	if err != nil {
		s.logger.Warn("failed to list reviews for aggregation", zap.String("seminar_id", seminar.ID), zap.Error(err))
		return
	}
	if len(reviews) < s.config.QuorumSize {
		return
	}

	allApproved := true
	allRejected := true
	for _, review := range reviews {
		if review.Status != models.ReviewStatusDisetujui {
			allApproved = false
		}
		if review.Status != models.ReviewStatusDitolak {
			allRejected = false
		}
	}

	next := models.SeminarStatusPending
	switch {
	case allApproved:
		next = models.SeminarStatusDisetujui
	case allRejected:
		next = models.SeminarStatusDitolak
	}

	if next == seminar.Status {
		return
	}

	if err := s.seminars.UpdateStatus(ctx, seminar.ID, next, time.Now().UTC()); err != nil {
		s.logger.Error("failed to persist aggregated status", zap.String("seminar_id", seminar.ID), zap.Error(err))
		return
	}
	seminar.Status = next

	if s.notifications != nil {
		s.notifications.NotifyStatusChange(seminar, next)
	}
}

func applyAlternate(review *models.Review, tanggal, jam, ruang *string) error {
	if tanggal == nil || *tanggal == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", *tanggal)
	if err != nil {
		return appErrors.Clone(appErrors.ErrInvalidSchedule, "invalid alternate date, expected YYYY-MM-DD")
	}
	review.TanggalAlternatif = &parsed
	if jam != nil && *jam != "" {
		review.JamAlternatif = jam
	}
	if ruang != nil && *ruang != "" {
		review.RuangAlternatif = ruang
	}
	return nil
}
