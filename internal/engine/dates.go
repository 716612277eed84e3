package engine

import (
	"time"

	"github.com/ekobrazil/birthday-panel/internal/config"
)

// BirthdayKind categorizes a birthday relative to literal "today" for message
// personalization and badge text. It is a narrower comparison than the
// reference-date resolver and deliberately ignores any user override.
type BirthdayKind string

const (
	KindToday    BirthdayKind = "today"
	KindTomorrow BirthdayKind = "tomorrow"
	KindSaturday BirthdayKind = "saturday"
	KindSunday   BirthdayKind = "sunday"
	KindTuesday  BirthdayKind = "tuesday"
	KindOther    BirthdayKind = "other"
)

// DayMonth formats a date as zero-padded DD/MM.
func DayMonth(t time.Time) string {
	return t.Format(config.DayMonthLayout)
}

// TodayDayMonth returns the current calendar day as DD/MM. This is the
// default reference when no override is active and the anchor for the
// "is this literally today?" badge label.
func TodayDayMonth(clock Clock) string {
	return DayMonth(clock.Now())
}

// DateReferences computes the ordered, deduplicated DD/MM dates that birthday
// matching should target, given the weekday of "now":
//
//	Monday    -> Monday and Tuesday (catches up after the weekend run-up)
//	Tue-Thu   -> next calendar day only
//	Friday    -> Saturday and Sunday (front-loads the weekend)
//	Sat/Sun   -> following Monday only
//
// Month and year rollover is handled by real calendar arithmetic via AddDate.
func DateReferences(now time.Time) []string {
	var dates []string

	switch now.Weekday() {
	case time.Monday:
		dates = append(dates, DayMonth(now), DayMonth(now.AddDate(0, 0, 1)))
	case time.Tuesday, time.Wednesday, time.Thursday:
		dates = append(dates, DayMonth(now.AddDate(0, 0, 1)))
	case time.Friday:
		dates = append(dates, DayMonth(now.AddDate(0, 0, 1)), DayMonth(now.AddDate(0, 0, 2)))
	case time.Saturday:
		dates = append(dates, DayMonth(now.AddDate(0, 0, 2)))
	case time.Sunday:
		dates = append(dates, DayMonth(now.AddDate(0, 0, 1)))
	}

	return dedupDates(dates)
}

// dedupDates removes repeated DD/MM entries while preserving order.
func dedupDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := dates[:0]
	for _, d := range dates {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// ClassifyBirthday determines the kind of a DD/MM birthday relative to "now".
// Saturday/Sunday kinds only exist when now is a Friday, and the Tuesday kind
// only when now is a Monday, mirroring the send-date policy.
func ClassifyBirthday(birthday string, now time.Time) BirthdayKind {
	if birthday == DayMonth(now) {
		return KindToday
	}
	if birthday == DayMonth(now.AddDate(0, 0, 1)) {
		switch now.Weekday() {
		case time.Friday:
			return KindSaturday
		case time.Monday:
			return KindTuesday
		default:
			return KindTomorrow
		}
	}
	if now.Weekday() == time.Friday && birthday == DayMonth(now.AddDate(0, 0, 2)) {
		return KindSunday
	}
	return KindOther
}
