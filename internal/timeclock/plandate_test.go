package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedAt(t *testing.T, s string) Clock {
	t.Helper()
	at, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	require.NoError(t, err)
	return FixedClock(at, time.UTC)
}

func TestResolvePlanDate(t *testing.T) {
	clock := fixedAt(t, "2025-05-10 13:00")

	tests := []struct {
		name      string
		kind      string
		requested string
		wantDate  string
		wantRedir bool
	}{
		{"next defaults to tomorrow", KindNext, "", "2025-05-11", false},
		{"next honors future date", KindNext, "2025-05-20", "2025-05-20", false},
		{"next accepts tomorrow itself", KindNext, "2025-05-11", "2025-05-11", false},
		{"next clamps today to tomorrow", KindNext, "2025-05-10", "2025-05-11", true},
		{"next clamps past to tomorrow", KindNext, "2025-01-01", "2025-05-11", true},
		{"next clamps garbage to tomorrow", KindNext, "nope", "2025-05-11", true},
		{"live is today", KindLive, "", "2025-05-10", false},
		{"review is today", KindReview, "", "2025-05-10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePlanDate(tt.kind, clock, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, got.Date)
			assert.Equal(t, tt.wantRedir, got.Redirect)
		})
	}
}

func TestResolvePlanDateUnknownKind(t *testing.T) {
	_, err := ResolvePlanDate("someday", fixedAt(t, "2025-05-10 13:00"), "")
	assert.Error(t, err)
}

func TestResolvePlanDateJustBeforeMidnight(t *testing.T) {
	got, err := ResolvePlanDate(KindNext, fixedAt(t, "2025-05-10 23:59"), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-11", got.Date)
}
