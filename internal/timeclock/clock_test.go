package timeclock

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveClockQueryOverride(t *testing.T) {
	q := url.Values{}
	q.Set("date", "2025-03-10")
	q.Set("time", "14:30")

	clock := ResolveClock("UTC", q, "")
	require.True(t, clock.Overridden())
	assert.Equal(t, "2025-03-10 14:30", clock.Now().Format("2006-01-02 15:04"))
}

func TestResolveClockCookieOverride(t *testing.T) {
	clock := ResolveClock("UTC", url.Values{}, "2025-06-01 09:00")
	require.True(t, clock.Overridden())
	assert.Equal(t, "2025-06-01 09:00", clock.Now().Format("2006-01-02 15:04"))
}

func TestResolveClockQueryBeatsCookie(t *testing.T) {
	q := url.Values{}
	q.Set("date", "2025-03-10")
	q.Set("time", "14:30")

	clock := ResolveClock("UTC", q, "2025-06-01 09:00")
	assert.Equal(t, "2025-03-10", clock.Now().Format("2006-01-02"))
}

func TestResolveClockMalformedOverrideIgnored(t *testing.T) {
	q := url.Values{}
	q.Set("date", "not-a-date")
	q.Set("time", "14:30")

	clock := ResolveClock("UTC", q, "also garbage")
	assert.False(t, clock.Overridden())
}

func TestResolveClockUnknownTimezoneFallsBackToUTC(t *testing.T) {
	clock := ResolveClock("Not/AZone", url.Values{}, "")
	assert.Equal(t, time.UTC, clock.Loc)
}

func TestStartOfDayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	// 2025-03-30 is the spring-forward day in the Netherlands.
	afternoon := time.Date(2025, 3, 30, 15, 0, 0, 0, loc)
	midnight := StartOfDay(afternoon, loc)

	assert.Equal(t, "2025-03-30 00:00", midnight.Format("2006-01-02 15:04"))
}

func TestAddDaysPreservesWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	eve := time.Date(2025, 3, 29, 9, 0, 0, 0, loc)
	next := AddDays(eve, 1, loc)

	assert.Equal(t, "2025-03-30 09:00", next.Format("2006-01-02 15:04"))
}

func TestParseAndFormatYMD(t *testing.T) {
	day, err := ParseYMD("2025-08-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-31", ToYMD(day, time.UTC))

	_, err = ParseYMD("31-08-2025", time.UTC)
	assert.Error(t, err)
}
