package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/simseminar-api/internal/models"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
)

// seminarDurations maps each category to its slot length.
var seminarDurations = map[models.SeminarCategory]time.Duration{
	models.CategoryProposal: 2 * time.Hour,
	models.CategoryHasil:    2 * time.Hour,
	models.CategoryKP:       90 * time.Minute,
	models.CategoryUmum:     time.Hour,
	models.CategorySkripsi:  3 * time.Hour,
}

const defaultSeminarDuration = 2 * time.Hour

// SeminarDuration returns the slot length for a category. Unknown categories
// fall back to the default two hour slot.
func SeminarDuration(jenis models.SeminarCategory) time.Duration {
	if d, ok := seminarDurations[jenis]; ok {
		return d
	}
	return defaultSeminarDuration
}

// ComputeEndTime derives the end time for a slot from its start time and the
// category duration. Times use the HH:MM wall clock format.
func ComputeEndTime(jamMulai string, jenis models.SeminarCategory) (string, error) {
	start, err := time.Parse("15:04", jamMulai)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrInvalidSchedule, fmt.Sprintf("invalid start time %q, expected HH:MM", jamMulai))
	}
	return start.Add(SeminarDuration(jenis)).Format("15:04"), nil
}

// ValidateScheduleDate rejects dates before today. Comparison is on the
// calendar day, not the instant, so a slot later today stays valid.
func ValidateScheduleDate(tanggal time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(tanggal.Year(), tanggal.Month(), tanggal.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return appErrors.Clone(appErrors.ErrInvalidSchedule, "seminar date must not be in the past")
	}
	return nil
}
