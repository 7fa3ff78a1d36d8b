package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/simseminar-api/internal/models"
)

// ErrNoQuota signals that the quota ledger had no remaining capacity for the
// requested category. The registration transaction is rolled back.
var ErrNoQuota = errors.New("no remaining quota")

const seminarColumns = `id, mahasiswa_id, pembimbing_1_id, pembimbing_2_id, penguji_1_id, penguji_2_id,
	judul_seminar, jenis_seminar, abstrak, file_proposal,
	tanggal_seminar, jam_mulai, jam_selesai, ruang_seminar,
	status, catatan, nilai, nilai_angka,
	tanggal_daftar, tanggal_review, tanggal_selesai, created_at, updated_at`

const seminarDetailColumns = `s.id, s.mahasiswa_id, s.pembimbing_1_id, s.pembimbing_2_id, s.penguji_1_id, s.penguji_2_id,
	s.judul_seminar, s.jenis_seminar, s.abstrak, s.file_proposal,
	s.tanggal_seminar, s.jam_mulai, s.jam_selesai, s.ruang_seminar,
	s.status, s.catatan, s.nilai, s.nilai_angka,
	s.tanggal_daftar, s.tanggal_review, s.tanggal_selesai, s.created_at, s.updated_at,
	m.nama AS mahasiswa_nama, m.npm AS mahasiswa_npm,
	p1.nama AS pembimbing_1_nama, p2.nama AS pembimbing_2_nama,
	u1.nama AS penguji_1_nama, u2.nama AS penguji_2_nama`

const seminarDetailJoins = ` FROM seminars s
	JOIN users m ON m.id = s.mahasiswa_id
	LEFT JOIN users p1 ON p1.id = s.pembimbing_1_id
	LEFT JOIN users p2 ON p2.id = s.pembimbing_2_id
	LEFT JOIN users u1 ON u1.id = s.penguji_1_id
	LEFT JOIN users u2 ON u2.id = s.penguji_2_id`

// SeminarRepository provides database access for seminar registrations.
type SeminarRepository struct {
	db *sqlx.DB
}

// NewSeminarRepository creates a new instance of SeminarRepository.
func NewSeminarRepository(db *sqlx.DB) *SeminarRepository {
	return &SeminarRepository{db: db}
}

// CreateWithQuota atomically reserves one quota slot for the seminar's
// category and inserts the registration. The reserve is a conditional update
// guarded on remaining capacity; when it matches no row the transaction is
// rolled back and ErrNoQuota is returned, so capacity can never go negative
// under concurrent registrations.
func (r *SeminarRepository) CreateWithQuota(ctx context.Context, seminar *models.Seminar) error {
	if seminar.ID == "" {
		seminar.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if seminar.TanggalDaftar.IsZero() {
		seminar.TanggalDaftar = now
	}
	if seminar.CreatedAt.IsZero() {
		seminar.CreatedAt = now
	}
	seminar.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const reserve = `UPDATE kuota_seminar
		SET kuota_terpakai = kuota_terpakai + 1, kuota_tersisa = kuota_total - (kuota_terpakai + 1), updated_at = $2
		WHERE jenis_seminar = $1 AND aktif = TRUE AND kuota_tersisa > 0`
	result, err := tx.ExecContext(ctx, reserve, seminar.Jenis, now)
	if err != nil {
		return fmt.Errorf("reserve quota: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve quota rows: %w", err)
	}
	if affected == 0 {
		return ErrNoQuota
	}

	const insert = `INSERT INTO seminars (id, mahasiswa_id, pembimbing_1_id, pembimbing_2_id, penguji_1_id, penguji_2_id,
		judul_seminar, jenis_seminar, abstrak, file_proposal,
		tanggal_seminar, jam_mulai, jam_selesai, ruang_seminar,
		status, catatan, nilai, nilai_angka,
		tanggal_daftar, tanggal_review, tanggal_selesai, created_at, updated_at)
		VALUES (:id, :mahasiswa_id, :pembimbing_1_id, :pembimbing_2_id, :penguji_1_id, :penguji_2_id,
		:judul_seminar, :jenis_seminar, :abstrak, :file_proposal,
		:tanggal_seminar, :jam_mulai, :jam_selesai, :ruang_seminar,
		:status, :catatan, :nilai, :nilai_angka,
		:tanggal_daftar, :tanggal_review, :tanggal_selesai, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insert, seminar); err != nil {
		return fmt.Errorf("create seminar: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration tx: %w", err)
	}
	return nil
}

// FindByID returns a seminar by identifier.
func (r *SeminarRepository) FindByID(ctx context.Context, id string) (*models.Seminar, error) {
	const query = `SELECT ` + seminarColumns + ` FROM seminars WHERE id = $1 LIMIT 1`
	var seminar models.Seminar
	if err := r.db.GetContext(ctx, &seminar, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find seminar by id: %w", err)
	}
	return &seminar, nil
}

// FindDetailByID returns a seminar joined with participant names.
func (r *SeminarRepository) FindDetailByID(ctx context.Context, id string) (*models.SeminarDetail, error) {
	query := `SELECT ` + seminarDetailColumns + seminarDetailJoins + ` WHERE s.id = $1 LIMIT 1`
	var detail models.SeminarDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find seminar detail: %w", err)
	}
	return &detail, nil
}

// List returns seminars matching the filter, newest registrations first.
// ReviewerID matches any of the four reviewer slots.
func (r *SeminarRepository) List(ctx context.Context, filter models.SeminarFilter) ([]models.SeminarDetail, error) {
	query := `SELECT ` + seminarDetailColumns + seminarDetailJoins + ` WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.MahasiswaID != "" {
		conditions = append(conditions, fmt.Sprintf("s.mahasiswa_id = $%d", len(args)+1))
		args = append(args, filter.MahasiswaID)
	}
	if filter.ReviewerID != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(s.pembimbing_1_id = $%d OR s.pembimbing_2_id = $%d OR s.penguji_1_id = $%d OR s.penguji_2_id = $%d)", n, n, n, n))
		args = append(args, filter.ReviewerID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Jenis != "" {
		conditions = append(conditions, fmt.Sprintf("s.jenis_seminar = $%d", len(args)+1))
		args = append(args, filter.Jenis)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.tanggal_daftar DESC"

	var seminars []models.SeminarDetail
	if err := r.db.SelectContext(ctx, &seminars, query, args...); err != nil {
		return nil, fmt.Errorf("list seminars: %w", err)
	}
	return seminars, nil
}

// UpdateSchedule writes the allocated slot and resets the lifecycle back to
// pending so the reviewer panel re-evaluates the new schedule.
func (r *SeminarRepository) UpdateSchedule(ctx context.Context, id string, tanggal time.Time, jamMulai, jamSelesai, ruang string) error {
	const query = `UPDATE seminars SET tanggal_seminar = $2, jam_mulai = $3, jam_selesai = $4, ruang_seminar = $5, status = $6, updated_at = $7 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, tanggal, jamMulai, jamSelesai, ruang, models.SeminarStatusPending, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update seminar schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update seminar schedule rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus writes an aggregator decision together with the review
// timestamp.
func (r *SeminarRepository) UpdateStatus(ctx context.Context, id string, status models.SeminarStatus, reviewedAt time.Time) error {
	const query = `UPDATE seminars SET status = $2, tanggal_review = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, reviewedAt, time.Now().UTC()); err != nil {
		return fmt.Errorf("update seminar status: %w", err)
	}
	return nil
}

// Complete marks an approved seminar as held, recording the grade.
func (r *SeminarRepository) Complete(ctx context.Context, id string, nilai *string, nilaiAngka *float64, completedAt time.Time) error {
	const query = `UPDATE seminars SET status = $2, nilai = $3, nilai_angka = $4, tanggal_selesai = $5, updated_at = $6 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.SeminarStatusSelesai, nilai, nilaiAngka, completedAt, time.Now().UTC()); err != nil {
		return fmt.Errorf("complete seminar: %w", err)
	}
	return nil
}

const statusCountSelect = `COUNT(*) AS total,
	COUNT(*) FILTER (WHERE status = 'disetujui') AS disetujui,
	COUNT(*) FILTER (WHERE status = 'pending') AS pending,
	COUNT(*) FILTER (WHERE status = 'ditolak') AS ditolak`

// CountByStatus tallies seminars per lifecycle state, optionally scoped to
// one participant.
func (r *SeminarRepository) CountByStatus(ctx context.Context, filter models.SeminarFilter) (*models.SeminarStatusCounts, error) {
	query := `SELECT ` + statusCountSelect + ` FROM seminars WHERE 1=1`
	var args []interface{}

	if filter.MahasiswaID != "" {
		query += fmt.Sprintf(" AND mahasiswa_id = $%d", len(args)+1)
		args = append(args, filter.MahasiswaID)
	}
	if filter.ReviewerID != "" {
		n := len(args) + 1
		query += fmt.Sprintf(" AND (pembimbing_1_id = $%d OR pembimbing_2_id = $%d OR penguji_1_id = $%d OR penguji_2_id = $%d)", n, n, n, n)
		args = append(args, filter.ReviewerID)
	}

	var counts models.SeminarStatusCounts
	if err := r.db.GetContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("count seminars by status: %w", err)
	}
	return &counts, nil
}

// CategoryStats tallies seminars per category and lifecycle state.
func (r *SeminarRepository) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	const query = `SELECT jenis_seminar, ` + statusCountSelect + ` FROM seminars GROUP BY jenis_seminar ORDER BY jenis_seminar ASC`
	var stats []models.CategoryStat
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("seminar category stats: %w", err)
	}
	return stats, nil
}

// MonthlyStats tallies registrations per calendar month for one year.
func (r *SeminarRepository) MonthlyStats(ctx context.Context, year int) ([]models.MonthlyStat, error) {
	const query = `SELECT to_char(tanggal_daftar, 'YYYY-MM') AS month, ` + statusCountSelect + `
		FROM seminars WHERE EXTRACT(YEAR FROM tanggal_daftar) = $1
		GROUP BY to_char(tanggal_daftar, 'YYYY-MM') ORDER BY month ASC`
	var stats []models.MonthlyStat
	if err := r.db.SelectContext(ctx, &stats, query, year); err != nil {
		return nil, fmt.Errorf("seminar monthly stats: %w", err)
	}
	return stats, nil
}
