package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
)

type quotaRepository interface {
	GetAll(ctx context.Context) ([]models.QuotaEntry, error)
	GetByCategory(ctx context.Context, jenis models.SeminarCategory) (*models.QuotaEntry, error)
	Upsert(ctx context.Context, entry *models.QuotaEntry) error
	Reset(ctx context.Context) (int, error)
}

const quotaCacheKey = "quota:all"

// QuotaService exposes the quota ledger. Reads are cached briefly; every
// write invalidates the cache.
type QuotaService struct {
	repo     quotaRepository
	audit    auditRecorder
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewQuotaService constructs a QuotaService.
func NewQuotaService(repo quotaRepository, audit auditRecorder, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *QuotaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &QuotaService{repo: repo, audit: audit, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// GetAll returns the quota snapshot keyed by category. Categories without an
// active ledger row are reported as inactive with zero capacity.
func (s *QuotaService) GetAll(ctx context.Context) (models.QuotaMap, error) {
	var cached models.QuotaMap
	if hit, err := s.cache.Get(ctx, quotaCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quota")
	}

	result := make(models.QuotaMap, len(models.AllCategories))
	for _, category := range models.AllCategories {
		result[category] = models.QuotaInfo{}
	}
	for _, entry := range entries {
		result[entry.Jenis] = models.QuotaInfo{
			Total:    entry.Total,
			Terpakai: entry.Terpakai,
			Tersisa:  entry.Tersisa,
			Aktif:    entry.Aktif,
		}
	}

	if err := s.cache.Set(ctx, quotaCacheKey, result, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache quota snapshot", zap.Error(err))
	}
	return result, nil
}

// GetByCategory returns the quota snapshot for one category.
func (s *QuotaService) GetByCategory(ctx context.Context, jenis models.SeminarCategory) (*models.QuotaInfo, error) {
	if !jenis.Valid() {
		return nil, appErrors.Validation([]appErrors.FieldError{{Field: "jenis_seminar", Message: "unknown seminar category"}}, "invalid seminar category")
	}
	entry, err := s.repo.GetByCategory(ctx, jenis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active quota for this category")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quota")
	}
	return &models.QuotaInfo{Total: entry.Total, Terpakai: entry.Terpakai, Tersisa: entry.Tersisa, Aktif: entry.Aktif}, nil
}

// Configure creates or replaces the active quota for a category. Admin only.
func (s *QuotaService) Configure(ctx context.Context, actorID string, jenis models.SeminarCategory, total int) (*models.QuotaEntry, error) {
	if !jenis.Valid() {
		return nil, appErrors.Validation([]appErrors.FieldError{{Field: "jenis_seminar", Message: "unknown seminar category"}}, "invalid seminar category")
	}
	if total < 0 {
		return nil, appErrors.Validation([]appErrors.FieldError{{Field: "kuota_total", Message: "total must not be negative"}}, "invalid quota total")
	}

	entry := &models.QuotaEntry{Jenis: jenis, Total: total, Aktif: true}
	if existing, err := s.repo.GetByCategory(ctx, jenis); err == nil {
		entry.ID = existing.ID
		entry.Terpakai = existing.Terpakai
		entry.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quota")
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save quota")
	}

	if err := s.cache.Invalidate(ctx, quotaCacheKey); err != nil {
		s.logger.Warn("failed to invalidate quota cache", zap.Error(err))
	}
	return entry, nil
}

// Reset zeroes the used counters for every active category, typically at the
// start of a new period. Admin only.
func (s *QuotaService) Reset(ctx context.Context, actorID string) (int, error) {
	affected, err := s.repo.Reset(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset quota")
	}

	if err := s.cache.Invalidate(ctx, quotaCacheKey); err != nil {
		s.logger.Warn("failed to invalidate quota cache", zap.Error(err))
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:    &actorID,
		Action:    models.AuditActionQuotaReset,
		Resource:  "kuota_seminar",
		NewValues: []byte(`{"kuota_terpakai":0}`),
	}); err != nil {
		s.logger.Warn("failed to record quota reset audit log", zap.Error(err))
	}

	return affected, nil
}
