package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/repository"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
)

type mockSeminarStore struct {
	seminars      map[string]*models.Seminar
	createErr     error
	statusUpdates []models.SeminarStatus
	scheduleCalls int
	completeCalls int
}

func (m *mockSeminarStore) CreateWithQuota(ctx context.Context, seminar *models.Seminar) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.seminars == nil {
		m.seminars = make(map[string]*models.Seminar)
	}
	copy := *seminar
	m.seminars[seminar.ID] = &copy
	return nil
}

func (m *mockSeminarStore) FindByID(ctx context.Context, id string) (*models.Seminar, error) {
	if seminar, ok := m.seminars[id]; ok {
		copy := *seminar
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSeminarStore) FindDetailByID(ctx context.Context, id string) (*models.SeminarDetail, error) {
	seminar, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.SeminarDetail{Seminar: *seminar, MahasiswaNama: "Budi"}, nil
}

func (m *mockSeminarStore) List(ctx context.Context, filter models.SeminarFilter) ([]models.SeminarDetail, error) {
	var result []models.SeminarDetail
	for _, seminar := range m.seminars {
		if filter.MahasiswaID != "" && seminar.MahasiswaID != filter.MahasiswaID {
			continue
		}
		if filter.ReviewerID != "" && seminar.RoleOf(filter.ReviewerID) == "" {
			continue
		}
		if filter.Status != "" && seminar.Status != filter.Status {
			continue
		}
		result = append(result, models.SeminarDetail{Seminar: *seminar})
	}
	return result, nil
}

func (m *mockSeminarStore) UpdateSchedule(ctx context.Context, id string, tanggal time.Time, jamMulai, jamSelesai, ruang string) error {
	seminar, ok := m.seminars[id]
	if !ok {
		return sql.ErrNoRows
	}
	m.scheduleCalls++
	seminar.TanggalSeminar = &tanggal
	seminar.JamMulai = &jamMulai
	seminar.JamSelesai = &jamSelesai
	seminar.RuangSeminar = &ruang
	seminar.Status = models.SeminarStatusPending
	return nil
}

func (m *mockSeminarStore) UpdateStatus(ctx context.Context, id string, status models.SeminarStatus, reviewedAt time.Time) error {
	seminar, ok := m.seminars[id]
	if !ok {
		return sql.ErrNoRows
	}
	m.statusUpdates = append(m.statusUpdates, status)
	seminar.Status = status
	return nil
}

func (m *mockSeminarStore) Complete(ctx context.Context, id string, nilai *string, nilaiAngka *float64, completedAt time.Time) error {
	seminar, ok := m.seminars[id]
	if !ok {
		return sql.ErrNoRows
	}
	m.completeCalls++
	seminar.Status = models.SeminarStatusSelesai
	seminar.Nilai = nilai
	seminar.NilaiAngka = nilaiAngka
	return nil
}

type mockReviewStore struct {
	reviews   map[string]*models.Review
	bySeminar []models.ReviewDetail
	existing  bool
}

func (m *mockReviewStore) Create(ctx context.Context, review *models.Review) error {
	if m.reviews == nil {
		m.reviews = make(map[string]*models.Review)
	}
	copy := *review
	m.reviews[review.ID] = &copy
	return nil
}

func (m *mockReviewStore) FindByID(ctx context.Context, id string) (*models.Review, error) {
	if review, ok := m.reviews[id]; ok {
		copy := *review
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockReviewStore) Exists(ctx context.Context, seminarID, dosenID string, peran models.ReviewerRole) (bool, error) {
	return m.existing, nil
}

func (m *mockReviewStore) Update(ctx context.Context, review *models.Review) error {
	copy := *review
	m.reviews[review.ID] = &copy
	return nil
}

func (m *mockReviewStore) ListBySeminar(ctx context.Context, seminarID string) ([]models.ReviewDetail, error) {
	return m.bySeminar, nil
}

type mockFileStore struct {
	saved   []string
	deleted []string
}

func (m *mockFileStore) Save(filename string, data []byte) (string, error) {
	m.saved = append(m.saved, filename)
	return filename, nil
}

func (m *mockFileStore) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

type mockAudit struct {
	logs []*models.AuditLog
}

func (m *mockAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

type mockDirectory struct {
	users map[string]*models.User
}

func (m *mockDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func activeDosen(id string) *models.User {
	return &models.User{ID: id, Nama: "Dosen " + id, Role: models.RoleDosen, Active: true}
}

func newSeminarService(seminars *mockSeminarStore, reviews *mockReviewStore, users *mockDirectory, audit *mockAudit, files *mockFileStore) *SeminarService {
	return NewSeminarService(seminars, reviews, users, audit, files, nil, validator.New(), zap.NewNop(), SeminarConfig{})
}

func TestSeminarRegisterSuccess(t *testing.T) {
	seminars := &mockSeminarStore{}
	users := &mockDirectory{users: map[string]*models.User{"d1": activeDosen("d1")}}
	audit := &mockAudit{}
	svc := newSeminarService(seminars, &mockReviewStore{}, users, audit, &mockFileStore{})

	mahasiswa := &models.User{ID: "m1", Nama: "Budi", Role: models.RoleMahasiswa}
	seminar, err := svc.Register(context.Background(), mahasiswa, RegisterSeminarRequest{
		Judul:         "Sistem Informasi Seminar",
		Jenis:         models.CategoryProposal,
		Abstrak:       "Abstrak.",
		Pembimbing1ID: "d1",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SeminarStatusPending, seminar.Status)
	assert.Len(t, seminars.seminars, 1)
	assert.NotEmpty(t, audit.logs)
}

func TestSeminarRegisterQuotaExhausted(t *testing.T) {
	seminars := &mockSeminarStore{createErr: repository.ErrNoQuota}
	users := &mockDirectory{users: map[string]*models.User{"d1": activeDosen("d1")}}
	svc := newSeminarService(seminars, &mockReviewStore{}, users, &mockAudit{}, &mockFileStore{})

	_, err := svc.Register(context.Background(), &models.User{ID: "m1", Nama: "Budi"}, RegisterSeminarRequest{
		Judul:         "Judul",
		Jenis:         models.CategoryHasil,
		Abstrak:       "Abstrak.",
		Pembimbing1ID: "d1",
	}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrQuotaExhausted.Code, appErr.Code)
}

func TestSeminarRegisterRejectsDuplicateReviewer(t *testing.T) {
	users := &mockDirectory{users: map[string]*models.User{"d1": activeDosen("d1")}}
	svc := newSeminarService(&mockSeminarStore{}, &mockReviewStore{}, users, &mockAudit{}, &mockFileStore{})

	same := "d1"
	_, err := svc.Register(context.Background(), &models.User{ID: "m1", Nama: "Budi"}, RegisterSeminarRequest{
		Judul:         "Judul",
		Jenis:         models.CategoryProposal,
		Abstrak:       "Abstrak.",
		Pembimbing1ID: "d1",
		Penguji1ID:    &same,
	}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSeminarRegisterComputesEndTime(t *testing.T) {
	seminars := &mockSeminarStore{}
	users := &mockDirectory{users: map[string]*models.User{"d1": activeDosen("d1")}}
	svc := newSeminarService(seminars, &mockReviewStore{}, users, &mockAudit{}, &mockFileStore{})

	tanggal := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	jam := "09:00"
	seminar, err := svc.Register(context.Background(), &models.User{ID: "m1", Nama: "Budi"}, RegisterSeminarRequest{
		Judul:         "Judul",
		Jenis:         models.CategoryProposal,
		Abstrak:       "Abstrak.",
		Pembimbing1ID: "d1",
		Tanggal:       &tanggal,
		JamMulai:      &jam,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, seminar.JamSelesai)
	assert.Equal(t, "11:00", *seminar.JamSelesai)
}

func TestSeminarDetailForbiddenForOutsider(t *testing.T) {
	seminars := &mockSeminarStore{seminars: map[string]*models.Seminar{
		"s1": {ID: "s1", MahasiswaID: "m1", Pembimbing1ID: "d1", Status: models.SeminarStatusPending},
	}}
	svc := newSeminarService(seminars, &mockReviewStore{}, &mockDirectory{}, &mockAudit{}, &mockFileStore{})

	_, err := svc.Detail(context.Background(), "s1", "intruder", models.RoleMahasiswa)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestSeminarDetailCollectsAlternates(t *testing.T) {
	alt := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	reviews := &mockReviewStore{bySeminar: []models.ReviewDetail{
		{Review: models.Review{ID: "r1", Peran: models.RolePenguji1, Status: models.ReviewStatusRevisi, TanggalAlternatif: &alt}, DosenNama: "Dr. Tono"},
		{Review: models.Review{ID: "r2", Peran: models.RolePembimbing1, Status: models.ReviewStatusDisetujui}, DosenNama: "Dr. Sari"},
	}}
	seminars := &mockSeminarStore{seminars: map[string]*models.Seminar{
		"s1": {ID: "s1", MahasiswaID: "m1", Pembimbing1ID: "d1", Jenis: models.CategoryProposal, Status: models.SeminarStatusPending},
	}}
	svc := newSeminarService(seminars, reviews, &mockDirectory{}, &mockAudit{}, &mockFileStore{})

	view, err := svc.Detail(context.Background(), "s1", "m1", models.RoleMahasiswa)
	require.NoError(t, err)
	require.Len(t, view.Alternates, 1)
	assert.Equal(t, "Dr. Tono", view.Alternates[0].DosenNama)
	assert.Equal(t, "Penguji 1", view.Reviews[0].PeranText)
}

func TestSeminarUpdateScheduleResetsStatus(t *testing.T) {
	seminars := &mockSeminarStore{seminars: map[string]*models.Seminar{
		"s1": {ID: "s1", MahasiswaID: "m1", Pembimbing1ID: "d1", Jenis: models.CategoryKP, Status: models.SeminarStatusDitolak},
	}}
	svc := newSeminarService(seminars, &mockReviewStore{}, &mockDirectory{}, &mockAudit{}, &mockFileStore{})

	tanggal := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	seminar, err := svc.UpdateSchedule(context.Background(), "s1", "m1", models.RoleMahasiswa, ScheduleSeminarRequest{
		Tanggal:  tanggal,
		JamMulai: "13:00",
		Ruang:    "Ruang Sidang 2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SeminarStatusPending, seminar.Status)
	require.NotNil(t, seminar.JamSelesai)
	assert.Equal(t, "14:30", *seminar.JamSelesai)
	assert.Equal(t, 1, seminars.scheduleCalls)
}

func TestSeminarUpdateScheduleRejectsPastDate(t *testing.T) {
	seminars := &mockSeminarStore{seminars: map[string]*models.Seminar{
		"s1": {ID: "s1", MahasiswaID: "m1", Pembimbing1ID: "d1", Jenis: models.CategoryProposal, Status: models.SeminarStatusPending},
	}}
	svc := newSeminarService(seminars, &mockReviewStore{}, &mockDirectory{}, &mockAudit{}, &mockFileStore{})

	_, err := svc.UpdateSchedule(context.Background(), "s1", "m1", models.RoleMahasiswa, ScheduleSeminarRequest{
		Tanggal:  "2020-01-01",
		JamMulai: "09:00",
		Ruang:    "R1",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidSchedule.Code, appErr.Code)
}

func TestSeminarCompleteRequiresApproval(t *testing.T) {
	seminars := &mockSeminarStore{seminars: map[string]*models.Seminar{
		"s1": {ID: "s1", MahasiswaID: "m1", Pembimbing1ID: "d1", Status: models.SeminarStatusPending},
	}}
	svc := newSeminarService(seminars, &mockReviewStore{}, &mockDirectory{}, &mockAudit{}, &mockFileStore{})

	_, err := svc.Complete(context.Background(), "s1", "admin", CompleteSeminarRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
	assert.Zero(t, seminars.completeCalls)
}

func TestSeminarCompleteRecordsGrade(t *testing.T) {
	seminars := &mockSeminarStore{seminars: map[string]*models.Seminar{
		"s1": {ID: "s1", MahasiswaID: "m1", Pembimbing1ID: "d1", Status: models.SeminarStatusDisetujui},
	}}
	svc := newSeminarService(seminars, &mockReviewStore{}, &mockDirectory{}, &mockAudit{}, &mockFileStore{})

	nilai := "A"
	angka := 88.5
	seminar, err := svc.Complete(context.Background(), "s1", "admin", CompleteSeminarRequest{Nilai: &nilai, NilaiAngka: &angka})
	require.NoError(t, err)
	assert.Equal(t, models.SeminarStatusSelesai, seminar.Status)
	assert.Equal(t, 1, seminars.completeCalls)
}
