package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToWeekStart_MidWeek(t *testing.T) {
	t.Parallel()

	// Wednesday 2024-03-06 should normalize to Monday 2024-03-04 00:00 UTC.
	wednesday := time.Date(2024, 3, 6, 15, 42, 7, 0, time.UTC)
	got := NormalizeToWeekStart(wednesday)

	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeToWeekStart_EveryDayOfWeekHitsSameMonday(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 7; day++ {
		d := monday.AddDate(0, 0, day).Add(13 * time.Hour)
		assert.Equal(t, monday, NormalizeToWeekStart(d), "day offset %d", day)
	}
}

func TestNormalizeToWeekStart_Idempotent(t *testing.T) {
	t.Parallel()

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, NormalizeToWeekStart(monday))
	assert.Equal(t, monday, NormalizeToWeekStart(NormalizeToWeekStart(monday)))
}

func TestNormalizeToWeekStart_SundayBelongsToPrecedingMonday(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), NormalizeToWeekStart(sunday))
}

func TestNormalizeToWeekStart_ConvertsToUTCFirst(t *testing.T) {
	t.Parallel()

	// Monday 00:30 in UTC+2 is still Sunday in UTC, so it belongs to the
	// previous week.
	loc := time.FixedZone("UTC+2", 2*60*60)
	localMonday := time.Date(2024, 3, 11, 0, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), NormalizeToWeekStart(localMonday))
}

func TestWeekEnd(t *testing.T) {
	t.Parallel()

	wednesday := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), WeekEnd(wednesday))
}
