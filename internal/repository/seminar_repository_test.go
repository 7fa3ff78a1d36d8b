package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/simseminar-api/internal/models"
)

func testSeminar() *models.Seminar {
	return &models.Seminar{
		MahasiswaID:   "m1",
		Pembimbing1ID: "d1",
		Judul:         "Sistem Monitoring Jaringan",
		Jenis:         models.CategoryProposal,
		Abstrak:       "Abstrak penelitian.",
		Status:        models.SeminarStatusPending,
	}
}

func TestCreateWithQuotaReservesAndInserts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSeminarRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE kuota_seminar").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO seminars").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	seminar := testSeminar()
	err := repo.CreateWithQuota(context.Background(), seminar)
	require.NoError(t, err)
	assert.NotEmpty(t, seminar.ID)
	assert.False(t, seminar.TanggalDaftar.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithQuotaExhaustedRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSeminarRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE kuota_seminar").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateWithQuota(context.Background(), testSeminar())
	require.ErrorIs(t, err, ErrNoQuota)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func seminarDetailRows(now time.Time, id, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "mahasiswa_id", "pembimbing_1_id", "pembimbing_2_id", "penguji_1_id", "penguji_2_id",
		"judul_seminar", "jenis_seminar", "abstrak", "file_proposal",
		"tanggal_seminar", "jam_mulai", "jam_selesai", "ruang_seminar",
		"status", "catatan", "nilai", "nilai_angka",
		"tanggal_daftar", "tanggal_review", "tanggal_selesai", "created_at", "updated_at",
		"mahasiswa_nama", "mahasiswa_npm",
		"pembimbing_1_nama", "pembimbing_2_nama", "penguji_1_nama", "penguji_2_nama",
	}).AddRow(
		id, "m1", "d1", nil, nil, nil,
		"Judul", string(models.CategoryProposal), "Abstrak", nil,
		nil, nil, nil, nil,
		status, nil, nil, nil,
		now, nil, nil, now, now,
		"Budi", "1915061001",
		"Dr. Sari", nil, nil, nil,
	)
}

func TestListSeminarsByReviewer(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSeminarRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM seminars s").
		WithArgs("d1").
		WillReturnRows(seminarDetailRows(now, "s1", string(models.SeminarStatusPending)))

	seminars, err := repo.List(context.Background(), models.SeminarFilter{ReviewerID: "d1"})
	require.NoError(t, err)
	require.Len(t, seminars, 1)
	assert.Equal(t, "Budi", seminars[0].MahasiswaNama)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateScheduleResetsStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSeminarRepository(db)

	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE seminars SET tanggal_seminar").
		WithArgs("s1", date, "09:00", "11:00", "Ruang Sidang 1", string(models.SeminarStatusPending), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSchedule(context.Background(), "s1", date, "09:00", "11:00", "Ruang Sidang 1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSeminarRepository(db)

	rows := sqlmock.NewRows([]string{"total", "disetujui", "pending", "ditolak"}).AddRow(5, 2, 2, 1)
	mock.ExpectQuery("FROM seminars WHERE 1=1 AND mahasiswa_id").
		WithArgs("m1").
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background(), models.SeminarFilter{MahasiswaID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, 5, counts.Total)
	assert.Equal(t, 2, counts.Disetujui)
	assert.NoError(t, mock.ExpectationsWereMet())
}
