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

const quotaColumns = `id, jenis_seminar, tanggal, kuota_total, kuota_terpakai, kuota_tersisa, aktif, created_at, updated_at`

// QuotaRepository manages the per-category seminar quota ledger.
type QuotaRepository struct {
	db *sqlx.DB
}

// NewQuotaRepository creates a new instance of QuotaRepository.
func NewQuotaRepository(db *sqlx.DB) *QuotaRepository {
	return &QuotaRepository{db: db}
}

// GetAll returns the active quota entry for every category.
func (r *QuotaRepository) GetAll(ctx context.Context) ([]models.QuotaEntry, error) {
	const query = `SELECT ` + quotaColumns + ` FROM kuota_seminar WHERE aktif = TRUE ORDER BY jenis_seminar ASC`
	var entries []models.QuotaEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list quota entries: %w", err)
	}
	return entries, nil
}

// GetByCategory returns the active quota entry for one category.
func (r *QuotaRepository) GetByCategory(ctx context.Context, jenis models.SeminarCategory) (*models.QuotaEntry, error) {
	const query = `SELECT ` + quotaColumns + ` FROM kuota_seminar WHERE jenis_seminar = $1 AND aktif = TRUE LIMIT 1`
	var entry models.QuotaEntry
	if err := r.db.GetContext(ctx, &entry, query, jenis); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get quota by category: %w", err)
	}
	return &entry, nil
}

// Upsert creates or replaces the active quota entry for a category. The
// remaining count is always recomputed from total and used.
func (r *QuotaRepository) Upsert(ctx context.Context, entry *models.QuotaEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	entry.Tersisa = entry.Total - entry.Terpakai

	const query = `INSERT INTO kuota_seminar (id, jenis_seminar, tanggal, kuota_total, kuota_terpakai, kuota_tersisa, aktif, created_at, updated_at)
		VALUES (:id, :jenis_seminar, :tanggal, :kuota_total, :kuota_terpakai, :kuota_tersisa, :aktif, :created_at, :updated_at)
		ON CONFLICT (jenis_seminar) WHERE aktif
		DO UPDATE SET kuota_total = EXCLUDED.kuota_total, kuota_terpakai = EXCLUDED.kuota_terpakai, kuota_tersisa = EXCLUDED.kuota_tersisa, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("upsert quota: %w", err)
	}
	return nil
}

// Reset zeroes the used counters on every active quota entry, restoring the
// remaining count to the configured total.
func (r *QuotaRepository) Reset(ctx context.Context) (int, error) {
	const query = `UPDATE kuota_seminar SET kuota_terpakai = 0, kuota_tersisa = kuota_total, updated_at = $1 WHERE aktif = TRUE`
	result, err := r.db.ExecContext(ctx, query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("reset quota: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset quota rows: %w", err)
	}
	return int(affected), nil
}
