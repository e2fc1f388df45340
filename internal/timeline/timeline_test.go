package timeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapMinutes(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{7, 15},
		{8, 15},
		{22, 15},
		{23, 30},
		{-7, 0},
		{-8, -15},
		{60, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapMinutes(tt.in), "SnapMinutes(%d)", tt.in)
	}
}

func TestMoveSnapsAndKeepsDuration(t *testing.T) {
	s := Span{Start: 540, End: 600} // 09:00-10:00
	moved := Move(s, 22, 0, DayEnd) // snaps to +15
	assert.Equal(t, Span{Start: 555, End: 615}, moved)
	assert.Equal(t, s.Duration(), moved.Duration())
}

func TestMoveClampsAtDayEdges(t *testing.T) {
	top := Move(Span{Start: 15, End: 75}, -60, 0, DayEnd)
	assert.Equal(t, Span{Start: 0, End: 60}, top)

	bottom := Move(Span{Start: 1380, End: 1425}, 120, 0, DayEnd)
	assert.Equal(t, Span{Start: 1395, End: 1440}, bottom)
}

func TestResizeTopPinsBottom(t *testing.T) {
	s := Span{Start: 540, End: 600}

	grown := Resize(s, EdgeTop, -30, 0, DayEnd)
	assert.Equal(t, Span{Start: 510, End: 600}, grown)

	// Shrinking past the bottom edge stops at the minimum duration.
	shrunk := Resize(s, EdgeTop, 90, 0, DayEnd)
	assert.Equal(t, Span{Start: 585, End: 600}, shrunk)
}

func TestResizeBottomPinsTop(t *testing.T) {
	s := Span{Start: 540, End: 600}

	grown := Resize(s, EdgeBottom, 45, 0, DayEnd)
	assert.Equal(t, Span{Start: 540, End: 645}, grown)

	shrunk := Resize(s, EdgeBottom, -90, 0, DayEnd)
	assert.Equal(t, Span{Start: 540, End: 555}, shrunk)

	clamped := Resize(Span{Start: 1380, End: 1410}, EdgeBottom, 120, 0, DayEnd)
	assert.Equal(t, Span{Start: 1380, End: 1440}, clamped)
}

func TestOverlapsAndContains(t *testing.T) {
	a := Span{Start: 60, End: 120}
	b := Span{Start: 90, End: 150}
	c := Span{Start: 120, End: 180}
	inner := Span{Start: 75, End: 105}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c), "touching spans do not overlap")
	assert.True(t, a.Contains(inner))
	assert.False(t, a.Contains(a), "a span does not contain itself")
}

func TestFindFreeSlotPrefersHour(t *testing.T) {
	spans := []Span{{Start: 0, End: 480}} // busy until 08:00
	slot, err := FindFreeSlot(spans, 0, DayEnd, nil)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 480, End: 540}, slot)
}

func TestFindFreeSlotFallsBackToHalfHour(t *testing.T) {
	// Free gaps of exactly 30 minutes between hour-long blocks.
	spans := []Span{
		{Start: 0, End: 480},
		{Start: 510, End: 990},
		{Start: 1020, End: 1440},
	}
	slot, err := FindFreeSlot(spans, 0, DayEnd, nil)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 480, End: 510}, slot)
}

func TestFindFreeSlotRandomFallback(t *testing.T) {
	// Only two free 15-minute gaps remain.
	spans := []Span{
		{Start: 0, End: 480},
		{Start: 495, End: 990},
		{Start: 1005, End: 1440},
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		slot, err := FindFreeSlot(spans, 0, DayEnd, rng)
		require.NoError(t, err)
		assert.Equal(t, SnapStep, slot.Duration())
		assert.Contains(t, []int{480, 990}, slot.Start)
	}
}

func TestFindFreeSlotFullDay(t *testing.T) {
	spans := []Span{{Start: 0, End: DayEnd}}
	_, err := FindFreeSlot(spans, 0, DayEnd, nil)
	assert.ErrorIs(t, err, ErrNoFreeSlot)
}

func TestFindFreeSlotRespectsWindow(t *testing.T) {
	slot, err := FindFreeSlot(nil, 540, 720, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, slot.Start, 540)
	assert.LessOrEqual(t, slot.End, 720)
}

func TestNestingDepth(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 240},   // outer
		{Start: 30, End: 180},  // inside outer
		{Start: 60, End: 120},  // inside both
		{Start: 300, End: 360}, // standalone
	}
	assert.Equal(t, []int{0, 1, 2, 0}, NestingDepth(spans))
}

func TestNestingDepthIdenticalSpans(t *testing.T) {
	spans := []Span{{Start: 60, End: 120}, {Start: 60, End: 120}}
	assert.Equal(t, []int{0, 0}, NestingDepth(spans))
}

func TestSortByStart(t *testing.T) {
	spans := []Span{
		{Start: 300, End: 360},
		{Start: 60, End: 180},
		{Start: 60, End: 120},
	}
	SortByStart(spans)
	assert.Equal(t, []Span{{60, 120}, {60, 180}, {300, 360}}, spans)
}

func TestPruneFeedback(t *testing.T) {
	now := time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)
	blocks := []BlockEnd{
		{ID: "done", EndAt: now.Add(-2 * time.Hour)},
		{ID: "running", EndAt: now.Add(time.Hour)},
	}
	feedback := map[string]string{
		"done":    "went well",
		"running": "too early to tell",
		"deleted": "block is gone",
	}

	pruned := PruneFeedback(feedback, blocks, now)
	assert.Equal(t, map[string]string{"done": "went well"}, pruned)
}

func TestOffsetConversionRoundTrip(t *testing.T) {
	const ppm = 1.5
	assert.Equal(t, 90.0, MinutesToOffset(60, ppm))
	assert.Equal(t, 60, OffsetToMinutes(90, ppm))
	assert.Equal(t, 0, OffsetToMinutes(100, 0))
}
