package timeclock

import "fmt"

// Page kinds for plan views.
const (
	KindNext   = "next"
	KindLive   = "live"
	KindReview = "review"
)

// PlanDate is the result of resolving which calendar day a plan page
// targets. Redirect is set when a requested date was clamped and the
// caller should redirect to Date.
type PlanDate struct {
	Date     string `json:"date"`
	Redirect bool   `json:"redirect"`
}

// ResolvePlanDate computes the target date for a plan page. For "next" the
// default is tomorrow and an explicit requested date is honored only when
// it is on or after tomorrow; earlier requests clamp to tomorrow so the
// page can never edit the past. "live" and "review" always target today.
func ResolvePlanDate(kind string, clock Clock, requested string) (PlanDate, error) {
	today := StartOfDay(clock.Now(), clock.Loc)

	switch kind {
	case KindNext:
		tomorrow := AddDays(today, 1, clock.Loc)
		if requested != "" {
			req, err := ParseYMD(requested, clock.Loc)
			if err == nil && !req.Before(tomorrow) {
				return PlanDate{Date: ToYMD(req, clock.Loc)}, nil
			}
			return PlanDate{Date: ToYMD(tomorrow, clock.Loc), Redirect: true}, nil
		}
		return PlanDate{Date: ToYMD(tomorrow, clock.Loc)}, nil
	case KindLive, KindReview:
		return PlanDate{Date: ToYMD(today, clock.Loc)}, nil
	default:
		return PlanDate{}, fmt.Errorf("unknown plan kind %q", kind)
	}
}
