package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
)

type mockDashboardSeminars struct {
	listed     []models.SeminarDetail
	counts     models.SeminarStatusCounts
	categories []models.CategoryStat
	monthly    []models.MonthlyStat
	countCalls int
}

func (m *mockDashboardSeminars) List(ctx context.Context, filter models.SeminarFilter) ([]models.SeminarDetail, error) {
	return m.listed, nil
}

func (m *mockDashboardSeminars) CountByStatus(ctx context.Context, filter models.SeminarFilter) (*models.SeminarStatusCounts, error) {
	m.countCalls++
	counts := m.counts
	return &counts, nil
}

func (m *mockDashboardSeminars) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	return m.categories, nil
}

func (m *mockDashboardSeminars) MonthlyStats(ctx context.Context, year int) ([]models.MonthlyStat, error) {
	return m.monthly, nil
}

type mockDashboardReviews struct {
	counts map[models.ReviewStatus]int
}

func (m *mockDashboardReviews) CountByDosen(ctx context.Context, dosenID string) (map[models.ReviewStatus]int, error) {
	return m.counts, nil
}

type mockDashboardUsers struct {
	counts models.RoleCounts
}

func (m *mockDashboardUsers) CountByRole(ctx context.Context) (*models.RoleCounts, error) {
	counts := m.counts
	return &counts, nil
}

func newDashboardService(seminars *mockDashboardSeminars, reviews *mockDashboardReviews, users *mockDashboardUsers, cache *CacheService) *DashboardService {
	quota := NewQuotaService(&mockQuotaRepo{}, &mockAudit{}, nil, time.Minute, zap.NewNop())
	return NewDashboardService(seminars, reviews, users, quota, cache, time.Minute, zap.NewNop())
}

func manySeminars(n int) []models.SeminarDetail {
	seminars := make([]models.SeminarDetail, n)
	for i := range seminars {
		seminars[i] = models.SeminarDetail{Seminar: models.Seminar{ID: "s", Status: models.SeminarStatusPending}}
	}
	return seminars
}

func TestDashboardForMahasiswa(t *testing.T) {
	seminars := &mockDashboardSeminars{
		listed: manySeminars(7),
		counts: models.SeminarStatusCounts{Total: 7, Pending: 3, Disetujui: 4},
	}
	svc := newDashboardService(seminars, &mockDashboardReviews{}, &mockDashboardUsers{}, nil)

	dashboard, err := svc.ForMahasiswa(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 7, dashboard.Counts.Total)
	assert.Len(t, dashboard.Recent, 5)
	assert.Len(t, dashboard.Quota, len(models.AllCategories))
}

func TestDashboardForDosen(t *testing.T) {
	seminars := &mockDashboardSeminars{
		listed: manySeminars(2),
		counts: models.SeminarStatusCounts{Total: 6, Pending: 2},
	}
	reviews := &mockDashboardReviews{counts: map[models.ReviewStatus]int{
		models.ReviewStatusDisetujui: 4,
		models.ReviewStatusRevisi:    1,
	}}
	svc := newDashboardService(seminars, reviews, &mockDashboardUsers{}, nil)

	dashboard, err := svc.ForDosen(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.PendingReview)
	assert.Equal(t, 4, dashboard.ReviewCounts[models.ReviewStatusDisetujui])
	assert.Len(t, dashboard.Recent, 2)
}

func TestDashboardForAdminTranslatesMonths(t *testing.T) {
	seminars := &mockDashboardSeminars{
		counts:     models.SeminarStatusCounts{Total: 12},
		categories: []models.CategoryStat{{Jenis: models.CategoryProposal}},
		monthly: []models.MonthlyStat{
			{Month: "2026-01"},
			{Month: "2026-08"},
		},
	}
	users := &mockDashboardUsers{counts: models.RoleCounts{Total: 30, Mahasiswa: 25, Dosen: 4, Admin: 1}}
	svc := newDashboardService(seminars, &mockDashboardReviews{}, users, nil)

	dashboard, err := svc.ForAdmin(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, dashboard.Monthly, 2)
	assert.Equal(t, "Januari", dashboard.Monthly[0].MonthName)
	assert.Equal(t, "Agustus", dashboard.Monthly[1].MonthName)
	assert.Equal(t, 25, dashboard.Users.Mahasiswa)
}

func TestDashboardServedFromCache(t *testing.T) {
	seminars := &mockDashboardSeminars{counts: models.SeminarStatusCounts{Total: 1}}
	svc := newDashboardService(seminars, &mockDashboardReviews{}, &mockDashboardUsers{}, testCache(&memoryCache{}))

	_, err := svc.ForMahasiswa(context.Background(), "m1")
	require.NoError(t, err)
	_, err = svc.ForMahasiswa(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, seminars.countCalls)
}
