package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/emersion/go-ical"
)

// SummaryFormatter renders the localized calendar event summary for a name.
type SummaryFormatter func(name string) string

// BuildCalendar renders the roster as an iCalendar feed: one all-day event
// per contact for the previous, current and next year, so calendar clients
// scrolling either way see events without an immediate refresh. Contacts
// whose DD/MM string does not parse as numbers are skipped; the feed is the
// one place where exact string matching is not enough.
func BuildCalendar(contacts []Contact, now time.Time, format SummaryFormatter) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	loc := now.Location()
	targetYears := []int{now.Year() - 1, now.Year(), now.Year() + 1}
	generated := 0

	for _, c := range contacts {
		day, month, ok := splitDayMonth(c.Birthday)
		if !ok {
			slog.Debug(config.MsgSkippedRecord,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, c.Birthday)
			continue
		}

		summary := fmt.Sprintf(config.FallbackSummary, c.Name)
		if format != nil {
			summary = format(c.Name)
		}

		input := fmt.Sprintf(config.FormatHashInput, c.Key(), c.Birthday, config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		for _, y := range targetYears {
			event := ical.NewEvent()
			event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
			event.Props.SetText(config.PropSummary, summary)

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(time.Date(y, time.Month(month), day, 0, 0, 0, 0, loc))
			event.Props.Set(dtStartProp)
			event.Props.Set(dtStampProp)

			cal.Children = append(cal.Children, event.Component)
			generated++
		}
	}

	if generated == 0 {
		// A valid empty VCALENDAR keeps feed clients from flagging the URL.
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, generated)
	return buf.Bytes(), nil
}

// splitDayMonth parses a DD/MM string into numeric day and month.
func splitDayMonth(birthday string) (day, month int, ok bool) {
	if len(birthday) != config.DayMonthLen || birthday[2] != '/' {
		return 0, 0, false
	}
	d, err := strconv.Atoi(birthday[:2])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(birthday[3:])
	if err != nil {
		return 0, 0, false
	}
	if d < 1 || d > 31 || m < 1 || m > 12 {
		return 0, 0, false
	}
	return d, m, true
}
