// Package calendar turns stored reservations into an iCalendar document.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	ical "github.com/arran4/golang-ical"

	"github.com/ariefcatur/reservation-calendar/internal/reservations"
)

const (
	ContentType = "text/calendar"

	TimeZone = "Etc/UTC"

	// basicFormat is the iCalendar DATE-TIME form without a UTC suffix; the
	// zone comes from the TZID parameter.
	basicFormat = "20060102T150405"

	productName = "reservation-calendar"
)

var ErrRender = errors.New("calendar render failed")

// Render builds the document in the order given, with CRLF line endings.
// The output depends only on records, so equal input gives byte-identical
// output.
func Render(records []reservations.Reservation) (string, error) {
	cal := ical.NewCalendarFor(productName)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRTimezone(TimeZone)
	addUTCTimezone(cal)

	for _, r := range records {
		addEvent(cal, r)
	}

	var b strings.Builder
	if err := cal.SerializeTo(&b, ical.WithNewLineWindows); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return b.String(), nil
}

func addEvent(cal *ical.Calendar, r reservations.Reservation) {
	start := r.Start.UTC().Format(basicFormat)
	end := r.End.UTC().Format(basicFormat)

	ev := cal.AddEvent(strconv.FormatInt(r.ID, 10))
	ev.SetProperty(ical.ComponentPropertyDtstamp, start+"Z")
	ev.SetSummary(r.BusinessName + " - " + r.ItemName)
	ev.SetDescription(strings.Join(r.Options, "\n"))
	if r.Location != "" {
		ev.SetLocation(r.Location)
	}
	ev.SetProperty(ical.ComponentPropertyDtStart, start, ical.WithTZID(TimeZone))
	ev.SetProperty(ical.ComponentPropertyDtEnd, end, ical.WithTZID(TimeZone))
}

func addUTCTimezone(cal *ical.Calendar) {
	std := cal.AddTimezone(TimeZone).AddStandard()
	std.SetProperty(ical.ComponentPropertyDtStart, "19700101T000000")
	std.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom), "+0000")
	std.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto), "+0000")
	std.SetProperty(ical.ComponentProperty(ical.PropertyTzname), "UTC")
}
