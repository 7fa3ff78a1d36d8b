package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/simseminar-api/internal/models"
)

const reviewColumns = `id, seminar_id, dosen_id, peran, status, catatan, file_review,
	nilai_komponen_1, nilai_komponen_2, nilai_komponen_3, nilai_komponen_4, nilai_komponen_5, nilai_akhir,
	tanggal_alternatif, jam_alternatif, ruang_alternatif,
	tanggal_review, deadline_review, created_at, updated_at`

// ReviewRepository provides database access for reviewer decisions.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review row.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	const query = `INSERT INTO seminar_reviews (id, seminar_id, dosen_id, peran, status, catatan, file_review,
		nilai_komponen_1, nilai_komponen_2, nilai_komponen_3, nilai_komponen_4, nilai_komponen_5, nilai_akhir,
		tanggal_alternatif, jam_alternatif, ruang_alternatif,
		tanggal_review, deadline_review, created_at, updated_at)
		VALUES (:id, :seminar_id, :dosen_id, :peran, :status, :catatan, :file_review,
		:nilai_komponen_1, :nilai_komponen_2, :nilai_komponen_3, :nilai_komponen_4, :nilai_komponen_5, :nilai_akhir,
		:tanggal_alternatif, :jam_alternatif, :ruang_alternatif,
		:tanggal_review, :deadline_review, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// FindByID returns a review by identifier.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM seminar_reviews WHERE id = $1 LIMIT 1`
	var review models.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return &review, nil
}

// Exists reports whether a review already exists for the (seminar, reviewer,
// role) triple.
func (r *ReviewRepository) Exists(ctx context.Context, seminarID, dosenID string, peran models.ReviewerRole) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM seminar_reviews WHERE seminar_id = $1 AND dosen_id = $2 AND peran = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, seminarID, dosenID, peran); err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}
	return exists, nil
}

// Update rewrites the mutable fields of a review.
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	review.UpdatedAt = time.Now().UTC()
	const query = `UPDATE seminar_reviews SET status = :status, catatan = :catatan, file_review = :file_review,
		nilai_komponen_1 = :nilai_komponen_1, nilai_komponen_2 = :nilai_komponen_2, nilai_komponen_3 = :nilai_komponen_3,
		nilai_komponen_4 = :nilai_komponen_4, nilai_komponen_5 = :nilai_komponen_5, nilai_akhir = :nilai_akhir,
		tanggal_alternatif = :tanggal_alternatif, jam_alternatif = :jam_alternatif, ruang_alternatif = :ruang_alternatif,
		tanggal_review = :tanggal_review, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// ListBySeminar returns reviews for a seminar with reviewer names, oldest
// first so the submission order is stable for readers.
func (r *ReviewRepository) ListBySeminar(ctx context.Context, seminarID string) ([]models.ReviewDetail, error) {
	const query = `SELECT r.id, r.seminar_id, r.dosen_id, r.peran, r.status, r.catatan, r.file_review,
		r.nilai_komponen_1, r.nilai_komponen_2, r.nilai_komponen_3, r.nilai_komponen_4, r.nilai_komponen_5, r.nilai_akhir,
		r.tanggal_alternatif, r.jam_alternatif, r.ruang_alternatif,
		r.tanggal_review, r.deadline_review, r.created_at, r.updated_at,
		d.nama AS dosen_nama
		FROM seminar_reviews r
		JOIN users d ON d.id = r.dosen_id
		WHERE r.seminar_id = $1
		ORDER BY r.created_at ASC`
	var reviews []models.ReviewDetail
	if err := r.db.SelectContext(ctx, &reviews, query, seminarID); err != nil {
		return nil, fmt.Errorf("list reviews by seminar: %w", err)
	}
	return reviews, nil
}

// CountByDosen tallies reviews written by one reviewer, grouped by decision.
func (r *ReviewRepository) CountByDosen(ctx context.Context, dosenID string) (map[models.ReviewStatus]int, error) {
	const query = `SELECT status, COUNT(*) AS n FROM seminar_reviews WHERE dosen_id = $1 GROUP BY status`
	rows, err := r.db.QueryxContext(ctx, query, dosenID)
	if err != nil {
		return nil, fmt.Errorf("count reviews by dosen: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ReviewStatus]int)
	for rows.Next() {
		var status models.ReviewStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan review count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review counts: %w", err)
	}
	return counts, nil
}
