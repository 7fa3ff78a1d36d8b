package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/simseminar-api/internal/models"
)

func TestSeminarDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, SeminarDuration(models.CategoryProposal))
	assert.Equal(t, 2*time.Hour, SeminarDuration(models.CategoryHasil))
	assert.Equal(t, 90*time.Minute, SeminarDuration(models.CategoryKP))
	assert.Equal(t, time.Hour, SeminarDuration(models.CategoryUmum))
	assert.Equal(t, 3*time.Hour, SeminarDuration(models.CategorySkripsi))
	assert.Equal(t, 2*time.Hour, SeminarDuration(models.SeminarCategory("lainnya")))
}

func TestComputeEndTime(t *testing.T) {
	end, err := ComputeEndTime("09:00", models.CategoryKP)
	require.NoError(t, err)
	assert.Equal(t, "10:30", end)

	end, err = ComputeEndTime("13:30", models.CategorySkripsi)
	require.NoError(t, err)
	assert.Equal(t, "16:30", end)
}

func TestComputeEndTimeRejectsBadClock(t *testing.T) {
	_, err := ComputeEndTime("9 pagi", models.CategoryProposal)
	require.Error(t, err)
}

func TestValidateScheduleDate(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateScheduleDate(now, now))
	assert.NoError(t, ValidateScheduleDate(now.AddDate(0, 0, 1), now))
	assert.Error(t, ValidateScheduleDate(now.AddDate(0, 0, -1), now))
}
