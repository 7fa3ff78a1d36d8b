package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
)

type dashboardSeminarRepository interface {
	List(ctx context.Context, filter models.SeminarFilter) ([]models.SeminarDetail, error)
	CountByStatus(ctx context.Context, filter models.SeminarFilter) (*models.SeminarStatusCounts, error)
	CategoryStats(ctx context.Context) ([]models.CategoryStat, error)
	MonthlyStats(ctx context.Context, year int) ([]models.MonthlyStat, error)
}

type dashboardReviewRepository interface {
	CountByDosen(ctx context.Context, dosenID string) (map[models.ReviewStatus]int, error)
}

type dashboardUserRepository interface {
	CountByRole(ctx context.Context) (*models.RoleCounts, error)
}

// MahasiswaDashboard is the student home payload.
type MahasiswaDashboard struct {
	Counts models.SeminarStatusCounts `json:"counts"`
	Recent []models.SeminarDetail     `json:"recent"`
	Quota  models.QuotaMap            `json:"quota"`
}

// DosenDashboard is the lecturer home payload.
type DosenDashboard struct {
	PendingReview int                         `json:"pending_review"`
	ReviewCounts  map[models.ReviewStatus]int `json:"review_counts"`
	Recent        []models.SeminarDetail      `json:"recent"`
}

// AdminDashboard is the admin home payload.
type AdminDashboard struct {
	Counts     models.SeminarStatusCounts `json:"counts"`
	Users      models.RoleCounts          `json:"users"`
	Categories []models.CategoryStat      `json:"categories"`
	Monthly    []models.MonthlyStat       `json:"monthly"`
	Quota      models.QuotaMap            `json:"quota"`
}

var indonesianMonths = map[string]string{
	"01": "Januari", "02": "Februari", "03": "Maret", "04": "April",
	"05": "Mei", "06": "Juni", "07": "Juli", "08": "Agustus",
	"09": "September", "10": "Oktober", "11": "November", "12": "Desember",
}

// DashboardService assembles role-shaped home payloads. Each payload is
// cached per user (or globally for admin) for a short TTL.
type DashboardService struct {
	seminars dashboardSeminarRepository
	reviews  dashboardReviewRepository
	users    dashboardUserRepository
	quota    *QuotaService
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(
	seminars dashboardSeminarRepository,
	reviews dashboardReviewRepository,
	users dashboardUserRepository,
	quota *QuotaService,
	cache *CacheService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		seminars: seminars,
		reviews:  reviews,
		users:    users,
		quota:    quota,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ForMahasiswa returns the student dashboard.
func (s *DashboardService) ForMahasiswa(ctx context.Context, mahasiswaID string) (*MahasiswaDashboard, error) {
	cacheKey := fmt.Sprintf("dashboard:mahasiswa:%s", mahasiswaID)
	var cached MahasiswaDashboard
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	counts, err := s.seminars.CountByStatus(ctx, models.SeminarFilter{MahasiswaID: mahasiswaID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count seminars")
	}

	recent, err := s.seminars.List(ctx, models.SeminarFilter{MahasiswaID: mahasiswaID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list seminars")
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	quota, err := s.quota.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &MahasiswaDashboard{Counts: *counts, Recent: recent, Quota: quota}
	s.store(ctx, cacheKey, dashboard)
	return dashboard, nil
}

// ForDosen returns the lecturer dashboard.
func (s *DashboardService) ForDosen(ctx context.Context, dosenID string) (*DosenDashboard, error) {
	cacheKey := fmt.Sprintf("dashboard:dosen:%s", dosenID)
	var cached DosenDashboard
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	counts, err := s.seminars.CountByStatus(ctx, models.SeminarFilter{ReviewerID: dosenID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count assigned seminars")
	}

	reviewCounts, err := s.reviews.CountByDosen(ctx, dosenID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count reviews")
	}

	recent, err := s.seminars.List(ctx, models.SeminarFilter{ReviewerID: dosenID, Status: models.SeminarStatusPending})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assigned seminars")
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	dashboard := &DosenDashboard{
		PendingReview: counts.Pending,
		ReviewCounts:  reviewCounts,
		Recent:        recent,
	}
	s.store(ctx, cacheKey, dashboard)
	return dashboard, nil
}

// ForAdmin returns the admin dashboard with per-category and per-month
// registration statistics for the given year.
func (s *DashboardService) ForAdmin(ctx context.Context, year int) (*AdminDashboard, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	cacheKey := fmt.Sprintf("dashboard:admin:%d", year)
	var cached AdminDashboard
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	counts, err := s.seminars.CountByStatus(ctx, models.SeminarFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count seminars")
	}

	userCounts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count users")
	}

	categories, err := s.seminars.CategoryStats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load category stats")
	}

	monthly, err := s.seminars.MonthlyStats(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load monthly stats")
	}
	for i := range monthly {
		monthly[i].MonthName = monthName(monthly[i].Month)
	}

	quota, err := s.quota.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &AdminDashboard{
		Counts:     *counts,
		Users:      *userCounts,
		Categories: categories,
		Monthly:    monthly,
		Quota:      quota,
	}
	s.store(ctx, cacheKey, dashboard)
	return dashboard, nil
}

func (s *DashboardService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard", zap.String("key", key), zap.Error(err))
	}
}

// monthName translates a YYYY-MM bucket into its Indonesian month name.
func monthName(month string) string {
	if len(month) != 7 {
		return month
	}
	if name, ok := indonesianMonths[month[5:]]; ok {
		return name
	}
	return month
}
