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

func TestCreateReview(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectExec("INSERT INTO seminar_reviews").WillReturnResult(sqlmock.NewResult(0, 1))

	review := &models.Review{
		SeminarID: "s1",
		DosenID:   "d1",
		Peran:     models.RolePembimbing1,
		Status:    models.ReviewStatusDireview,
	}
	err := repo.Create(context.Background(), review)
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("s1", "d1", string(models.RolePembimbing1)).
		WillReturnRows(rows)

	exists, err := repo.Exists(context.Background(), "s1", "d1", models.RolePembimbing1)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySeminarOrdersOldestFirst(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "seminar_id", "dosen_id", "peran", "status", "catatan", "file_review",
		"nilai_komponen_1", "nilai_komponen_2", "nilai_komponen_3", "nilai_komponen_4", "nilai_komponen_5", "nilai_akhir",
		"tanggal_alternatif", "jam_alternatif", "ruang_alternatif",
		"tanggal_review", "deadline_review", "created_at", "updated_at",
		"dosen_nama",
	}).
		AddRow("r1", "s1", "d1", string(models.RolePembimbing1), string(models.ReviewStatusDisetujui), nil, nil,
			80, 85, 90, 75, 80, 82.0, nil, nil, nil, now, nil, now.Add(-time.Hour), now, "Dr. Sari").
		AddRow("r2", "s1", "d2", string(models.RolePenguji1), string(models.ReviewStatusDireview), nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, now, now, "Dr. Tono")
	mock.ExpectQuery("ORDER BY r.created_at ASC").
		WithArgs("s1").
		WillReturnRows(rows)

	reviews, err := repo.ListBySeminar(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Dr. Sari", reviews[0].DosenNama)
	require.NotNil(t, reviews[0].NilaiAkhir)
	assert.InDelta(t, 82.0, *reviews[0].NilaiAkhir, 0.001)
	assert.Nil(t, reviews[1].NilaiAkhir)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaReset(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQuotaRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE kuota_seminar SET kuota_terpakai = 0, kuota_tersisa = kuota_total")).
		WillReturnResult(sqlmock.NewResult(0, 5))

	affected, err := repo.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaGetByCategory(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQuotaRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "jenis_seminar", "tanggal", "kuota_total", "kuota_terpakai", "kuota_tersisa", "aktif", "created_at", "updated_at"}).
		AddRow("q1", string(models.CategoryProposal), nil, 10, 4, 6, true, now, now)
	mock.ExpectQuery("FROM kuota_seminar WHERE jenis_seminar").
		WithArgs(string(models.CategoryProposal)).
		WillReturnRows(rows)

	entry, err := repo.GetByCategory(context.Background(), models.CategoryProposal)
	require.NoError(t, err)
	assert.Equal(t, 6, entry.Tersisa)
	assert.NoError(t, mock.ExpectationsWereMet())
}
