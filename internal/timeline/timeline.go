// Package timeline implements the scheduling math behind the daily plan
// editor: 15-minute snapping, drag move/resize clamping, free-slot search
// for newly added blocks and visual nesting depth. Everything operates on
// minute offsets from midnight and performs no I/O.
package timeline

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"
)

// SnapStep is the drag granularity in minutes.
const SnapStep = 15

// MinDuration is the smallest allowed block length in minutes.
const MinDuration = 15

// DayEnd is the number of minutes in a full day window.
const DayEnd = 24 * 60

// ErrNoFreeSlot is returned when the visible window has no room for a new
// block, even at the smallest granularity.
var ErrNoFreeSlot = errors.New("no free slot in window")

// Span is a block's time range in minutes from midnight, end exclusive.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Duration returns the span length in minutes.
func (s Span) Duration() int { return s.End - s.Start }

// Overlaps reports whether two spans share any minute.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether s strictly contains o: o fits inside s and the
// ranges are not identical.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End && s != o
}

// MinutesToOffset converts a minute offset to pixels.
func MinutesToOffset(minutes int, pixelsPerMinute float64) float64 {
	return float64(minutes) * pixelsPerMinute
}

// OffsetToMinutes converts a pixel offset back to whole minutes.
func OffsetToMinutes(offset, pixelsPerMinute float64) int {
	if pixelsPerMinute == 0 {
		return 0
	}
	return int(math.Round(offset / pixelsPerMinute))
}

// SnapMinutes rounds m to the nearest 15-minute step.
func SnapMinutes(m int) int {
	return int(math.Round(float64(m)/SnapStep)) * SnapStep
}

// Move shifts a span by delta minutes, snapped to the grid, keeping its
// duration and clamping the whole span inside [dayStart, dayEnd].
func Move(s Span, delta, dayStart, dayEnd int) Span {
	d := SnapMinutes(delta)
	moved := Span{Start: s.Start + d, End: s.End + d}
	if moved.Start < dayStart {
		shift := dayStart - moved.Start
		moved.Start += shift
		moved.End += shift
	}
	if moved.End > dayEnd {
		shift := moved.End - dayEnd
		moved.Start -= shift
		moved.End -= shift
	}
	if moved.Start < dayStart {
		// Span longer than the window; pin to the window.
		moved.Start = dayStart
		moved.End = dayEnd
	}
	return moved
}

// Edge identifies which handle of a block is being dragged.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
)

// Resize moves only the dragged edge by delta minutes, snapped. The other
// edge stays pinned, so the dragged edge is clamped to keep at least
// MinDuration between them and to stay inside the day window.
func Resize(s Span, edge Edge, delta, dayStart, dayEnd int) Span {
	d := SnapMinutes(delta)
	switch edge {
	case EdgeTop:
		start := s.Start + d
		if start < dayStart {
			start = dayStart
		}
		if start > s.End-MinDuration {
			start = s.End - MinDuration
		}
		s.Start = start
	case EdgeBottom:
		end := s.End + d
		if end > dayEnd {
			end = dayEnd
		}
		if end < s.Start+MinDuration {
			end = s.Start + MinDuration
		}
		s.End = end
	}
	return s
}

// SortByStart orders spans by start minute, then end.
func SortByStart(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}

// free reports whether candidate overlaps none of the spans.
func free(spans []Span, candidate Span) bool {
	for _, s := range spans {
		if s.Overlaps(candidate) {
			return false
		}
	}
	return true
}

// FindFreeSlot picks where a new block should land inside the visible
// window. It scans at 15-minute granularity for the first free 60-minute
// slot, retries with 30 minutes, then falls back to a uniformly random
// free 15-minute start. ErrNoFreeSlot means the window genuinely has no
// room and the caller should surface that instead of overlapping.
func FindFreeSlot(spans []Span, windowStart, windowEnd int, rng *rand.Rand) (Span, error) {
	for _, duration := range []int{60, 30} {
		for start := windowStart; start+duration <= windowEnd; start += SnapStep {
			candidate := Span{Start: start, End: start + duration}
			if free(spans, candidate) {
				return candidate, nil
			}
		}
	}

	var starts []int
	for start := windowStart; start+SnapStep <= windowEnd; start += SnapStep {
		if free(spans, Span{Start: start, End: start + SnapStep}) {
			starts = append(starts, start)
		}
	}
	if len(starts) == 0 {
		return Span{}, ErrNoFreeSlot
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	start := starts[rng.Intn(len(starts))]
	return Span{Start: start, End: start + SnapStep}, nil
}

// NestingDepth returns, for each span, the count of other spans that
// strictly contain it. Outer blocks render behind inner ones; the depth is
// cosmetic and never constrains scheduling.
func NestingDepth(spans []Span) []int {
	depths := make([]int, len(spans))
	for i, s := range spans {
		for j, o := range spans {
			if i == j {
				continue
			}
			if o.Contains(s) {
				depths[i]++
			}
		}
	}
	return depths
}

// BlockEnd pairs a block id with its end instant, for feedback pruning.
type BlockEnd struct {
	ID    string
	EndAt time.Time
}

// PruneFeedback cleans review feedback against the current block set:
// feedback for a block that no longer exists is dropped, and feedback for
// a block whose end is still in the future is cleared, so reflections can
// never be attached ahead of the fact.
func PruneFeedback(feedback map[string]string, blocks []BlockEnd, now time.Time) map[string]string {
	ends := make(map[string]time.Time, len(blocks))
	for _, b := range blocks {
		ends[b.ID] = b.EndAt
	}
	pruned := make(map[string]string, len(feedback))
	for id, text := range feedback {
		end, ok := ends[id]
		if !ok {
			continue
		}
		if end.After(now) {
			continue
		}
		pruned[id] = text
	}
	return pruned
}
