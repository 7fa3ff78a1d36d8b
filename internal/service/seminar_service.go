package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/repository"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
)

type seminarRepository interface {
	CreateWithQuota(ctx context.Context, seminar *models.Seminar) error
	FindByID(ctx context.Context, id string) (*models.Seminar, error)
	FindDetailByID(ctx context.Context, id string) (*models.SeminarDetail, error)
	List(ctx context.Context, filter models.SeminarFilter) ([]models.SeminarDetail, error)
	UpdateSchedule(ctx context.Context, id string, tanggal time.Time, jamMulai, jamSelesai, ruang string) error
	Complete(ctx context.Context, id string, nilai *string, nilaiAngka *float64, completedAt time.Time) error
}

type seminarReviewLister interface {
	ListBySeminar(ctx context.Context, seminarID string) ([]models.ReviewDetail, error)
}

type reviewerDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// FileStore persists uploaded documents.
type FileStore interface {
	Save(filename string, data []byte) (string, error)
	Delete(filename string) error
}

// FileUpload carries one multipart upload into the service layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// RegisterSeminarRequest is the student registration payload. Pembimbing 1 is
// the only required reviewer slot; a requested schedule is optional.
type RegisterSeminarRequest struct {
	Judul         string                 `json:"judul_seminar" validate:"required,max=255"`
	Jenis         models.SeminarCategory `json:"jenis_seminar" validate:"required"`
	Abstrak       string                 `json:"abstrak" validate:"required"`
	Pembimbing1ID string                 `json:"pembimbing_1_id" validate:"required"`
	Pembimbing2ID *string                `json:"pembimbing_2_id"`
	Penguji1ID    *string                `json:"penguji_1_id"`
	Penguji2ID    *string                `json:"penguji_2_id"`
	Tanggal       *string                `json:"tanggal_seminar"`
	JamMulai      *string                `json:"jam_mulai"`
	Ruang         *string                `json:"ruang_seminar"`
}

// ScheduleSeminarRequest moves a seminar to a new slot.
type ScheduleSeminarRequest struct {
	Tanggal  string `json:"tanggal_seminar" validate:"required"`
	JamMulai string `json:"jam_mulai" validate:"required"`
	Ruang    string `json:"ruang_seminar" validate:"required"`
}

// CompleteSeminarRequest records the outcome of a held seminar.
type CompleteSeminarRequest struct {
	Nilai      *string  `json:"nilai" validate:"omitempty,max=5"`
	NilaiAngka *float64 `json:"nilai_angka" validate:"omitempty,gte=0,lte=100"`
}

// SeminarConfig bounds proposal uploads.
type SeminarConfig struct {
	MaxProposalBytes int64
	AllowedMIMEs     []string
}

// SeminarService implements the registration workflow.
type SeminarService struct {
	seminars      seminarRepository
	reviews       seminarReviewLister
	users         reviewerDirectory
	audit         auditRecorder
	files         FileStore
	notifications *NotificationService
	validator     *validator.Validate
	logger        *zap.Logger
	config        SeminarConfig
}

// NewSeminarService constructs a SeminarService.
func NewSeminarService(
	seminars seminarRepository,
	reviews seminarReviewLister,
	users reviewerDirectory,
	audit auditRecorder,
	files FileStore,
	notifications *NotificationService,
	validate *validator.Validate,
	logger *zap.Logger,
	config SeminarConfig,
) *SeminarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SeminarService{
		seminars:      seminars,
		reviews:       reviews,
		users:         users,
		audit:         audit,
		files:         files,
		notifications: notifications,
		validator:     validate,
		logger:        logger,
		config:        config,
	}
}

// Register creates a seminar registration. The quota slot for the category is
// reserved in the same transaction as the insert; when the category is full
// the whole operation fails with QUOTA_EXHAUSTED. On success every assigned
// reviewer receives a review request notification.
func (s *SeminarService) Register(ctx context.Context, mahasiswa *models.User, req RegisterSeminarRequest, proposal *FileUpload) (*models.Seminar, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if !req.Jenis.Valid() {
		return nil, appErrors.Validation([]appErrors.FieldError{{Field: "jenis_seminar", Message: "unknown seminar category"}}, "invalid seminar category")
	}

	if err := s.verifyReviewers(ctx, req); err != nil {
		return nil, err
	}

	seminar := &models.Seminar{
		ID:            uuid.NewString(),
		MahasiswaID:   mahasiswa.ID,
		Pembimbing1ID: req.Pembimbing1ID,
		Pembimbing2ID: req.Pembimbing2ID,
		Penguji1ID:    req.Penguji1ID,
		Penguji2ID:    req.Penguji2ID,
		Judul:         req.Judul,
		Jenis:         req.Jenis,
		Abstrak:       req.Abstrak,
		Status:        models.SeminarStatusPending,
	}

	if req.Tanggal != nil && *req.Tanggal != "" {
		tanggal, err := time.Parse("2006-01-02", *req.Tanggal)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidSchedule, "invalid seminar date, expected YYYY-MM-DD")
		}
		if err := ValidateScheduleDate(tanggal, time.Now()); err != nil {
			return nil, err
		}
		if req.JamMulai == nil || *req.JamMulai == "" {
			return nil, appErrors.Clone(appErrors.ErrInvalidSchedule, "start time is required when a date is requested")
		}
		jamSelesai, err := ComputeEndTime(*req.JamMulai, req.Jenis)
		if err != nil {
			return nil, err
		}
		seminar.TanggalSeminar = &tanggal
		seminar.JamMulai = req.JamMulai
		seminar.JamSelesai = &jamSelesai
		seminar.RuangSeminar = req.Ruang
	}

	if proposal != nil {
		stored, err := storeUpload(s.files, "proposals", seminar.ID, proposal, s.config.MaxProposalBytes, s.config.AllowedMIMEs)
		if err != nil {
			return nil, err
		}
		seminar.FileProposal = &stored
	}

	if err := s.seminars.CreateWithQuota(ctx, seminar); err != nil {
		if seminar.FileProposal != nil {
			if cleanupErr := s.files.Delete(*seminar.FileProposal); cleanupErr != nil {
				s.logger.Warn("failed to remove orphaned proposal file", zap.Error(cleanupErr))
			}
		}
		if errors.Is(err, repository.ErrNoQuota) {
			return nil, appErrors.Clone(appErrors.ErrQuotaExhausted, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register seminar")
	}

	if s.notifications != nil {
		s.notifications.NotifyReviewRequest(seminar, mahasiswa.Nama)
	}

	payload, _ := json.Marshal(map[string]interface{}{"jenis_seminar": seminar.Jenis, "judul_seminar": seminar.Judul})
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &mahasiswa.ID,
		Action:     models.AuditActionSeminarRegister,
		Resource:   "seminars",
		ResourceID: &seminar.ID,
		NewValues:  payload,
	}); err != nil {
		s.logger.Warn("failed to record seminar register audit log", zap.Error(err))
	}

	return seminar, nil
}

// List returns seminars scoped to the caller: students see their own
// registrations, lecturers the ones they review, admins everything.
func (s *SeminarService) List(ctx context.Context, actorID string, role models.UserRole, filter models.SeminarFilter) ([]models.SeminarDetail, error) {
	switch role {
	case models.RoleMahasiswa:
		filter.MahasiswaID = actorID
		filter.ReviewerID = ""
	case models.RoleDosen:
		filter.ReviewerID = actorID
		filter.MahasiswaID = ""
	case models.RoleAdmin:
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "unknown role")
	}

	seminars, err := s.seminars.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list seminars")
	}
	return seminars, nil
}

// Detail returns the full seminar view with nested reviews and any
// reviewer-proposed alternate schedules. Access is limited to the owning
// student, the assigned reviewers and admins.
func (s *SeminarService) Detail(ctx context.Context, id, actorID string, role models.UserRole) (*models.SeminarView, error) {
	detail, err := s.seminars.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seminar not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seminar")
	}

	if role != models.RoleAdmin && detail.MahasiswaID != actorID && detail.RoleOf(actorID) == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not a participant of this seminar")
	}

	reviews, err := s.reviews.ListBySeminar(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reviews")
	}
	for i := range reviews {
		reviews[i].PeranText = reviews[i].Peran.Label()
	}

	view := &models.SeminarView{
		SeminarDetail: *detail,
		JenisText:     detail.Jenis.Label(),
		StatusText:    detail.Status.Label(),
		Reviews:       reviews,
		Alternates:    collectAlternates(reviews),
	}
	return view, nil
}

// UpdateSchedule moves a seminar to a new slot and resets its status back to
// pending so the reviewers decide again. Only the owning student or an admin
// may reschedule.
func (s *SeminarService) UpdateSchedule(ctx context.Context, id, actorID string, role models.UserRole, req ScheduleSeminarRequest) (*models.Seminar, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	seminar, err := s.seminars.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seminar not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seminar")
	}
	if role != models.RoleAdmin && seminar.MahasiswaID != actorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the registrant may reschedule")
	}
	if seminar.Status == models.SeminarStatusSelesai {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "completed seminars cannot be rescheduled")
	}

	tanggal, err := time.Parse("2006-01-02", req.Tanggal)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidSchedule, "invalid seminar date, expected YYYY-MM-DD")
	}
	if err := ValidateScheduleDate(tanggal, time.Now()); err != nil {
		return nil, err
	}
	jamSelesai, err := ComputeEndTime(req.JamMulai, seminar.Jenis)
	if err != nil {
		return nil, err
	}

	oldPayload, _ := json.Marshal(map[string]interface{}{"tanggal_seminar": seminar.TanggalSeminar, "jam_mulai": seminar.JamMulai, "status": seminar.Status})

	if err := s.seminars.UpdateSchedule(ctx, id, tanggal, req.JamMulai, jamSelesai, req.Ruang); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seminar not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}

	seminar.TanggalSeminar = &tanggal
	seminar.JamMulai = &req.JamMulai
	seminar.JamSelesai = &jamSelesai
	seminar.RuangSeminar = &req.Ruang
	seminar.Status = models.SeminarStatusPending

	if s.notifications != nil {
		s.notifications.NotifyReschedule(seminar)
	}

	newPayload, _ := json.Marshal(map[string]interface{}{"tanggal_seminar": req.Tanggal, "jam_mulai": req.JamMulai, "status": seminar.Status})
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionSeminarSchedule,
		Resource:   "seminars",
		ResourceID: &seminar.ID,
		OldValues:  oldPayload,
		NewValues:  newPayload,
	}); err != nil {
		s.logger.Warn("failed to record reschedule audit log", zap.Error(err))
	}

	return seminar, nil
}

// Complete marks an approved seminar as held and records the grade. Admin
// only; approval is a precondition.
func (s *SeminarService) Complete(ctx context.Context, id, actorID string, req CompleteSeminarRequest) (*models.Seminar, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid completion payload")
	}

	seminar, err := s.seminars.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seminar not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seminar")
	}
	if seminar.Status != models.SeminarStatusDisetujui {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "only approved seminars can be completed")
	}

	completedAt := time.Now().UTC()
	if err := s.seminars.Complete(ctx, id, req.Nilai, req.NilaiAngka, completedAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to complete seminar")
	}

	seminar.Status = models.SeminarStatusSelesai
	seminar.Nilai = req.Nilai
	seminar.NilaiAngka = req.NilaiAngka
	seminar.TanggalSelesai = &completedAt

	if s.notifications != nil {
		s.notifications.NotifyStatusChange(seminar, models.SeminarStatusSelesai)
	}

	payload, _ := json.Marshal(map[string]interface{}{"status": seminar.Status, "nilai": seminar.Nilai})
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionSeminarComplete,
		Resource:   "seminars",
		ResourceID: &seminar.ID,
		NewValues:  payload,
	}); err != nil {
		s.logger.Warn("failed to record completion audit log", zap.Error(err))
	}

	return seminar, nil
}

func (s *SeminarService) verifyReviewers(ctx context.Context, req RegisterSeminarRequest) error {
	ids := []string{req.Pembimbing1ID}
	for _, optional := range []*string{req.Pembimbing2ID, req.Penguji1ID, req.Penguji2ID} {
		if optional != nil && *optional != "" {
			ids = append(ids, *optional)
		}
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return appErrors.Validation([]appErrors.FieldError{{Field: "pembimbing_1_id", Message: "a lecturer cannot occupy two reviewer slots"}}, "duplicate reviewer assignment")
		}
		seen[id] = true

		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Validation([]appErrors.FieldError{{Field: "pembimbing_1_id", Message: fmt.Sprintf("lecturer %s not found", id)}}, "unknown reviewer")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify reviewer")
		}
		if user.Role != models.RoleDosen || !user.Active {
			return appErrors.Validation([]appErrors.FieldError{{Field: "pembimbing_1_id", Message: fmt.Sprintf("%s is not an active lecturer", user.Nama)}}, "invalid reviewer")
		}
	}
	return nil
}

func collectAlternates(reviews []models.ReviewDetail) []models.AlternateSchedule {
	var alternates []models.AlternateSchedule
	for _, review := range reviews {
		if !review.HasAlternate() {
			continue
		}
		alternates = append(alternates, models.AlternateSchedule{
			DosenNama:  review.DosenNama,
			Peran:      review.Peran,
			Tanggal:    *review.TanggalAlternatif,
			Jam:        review.JamAlternatif,
			Ruang:      review.RuangAlternatif,
			ProposedAt: review.TanggalReview,
		})
	}
	return alternates
}
