package exporter

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
)

// GenerateICS writes the given departures as calendar events, one per
// departure, anchored at now plus the countdown. Useful for pinning the next
// trains of a board into a calendar view.
func GenerateICS(deps []board.Departure, stationName string, now time.Time, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for i, d := range deps {
		departure := now.Add(time.Duration(d.Minutes) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%s-%d", departure.Format("20060102T150405Z"), i))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(departure)
		// Trains don't wait; a short block keeps the event visible
		event.SetEndAt(departure.Add(2 * time.Minute))

		summary := fmt.Sprintf("%s train to %s", d.Line, d.Destination)
		if d.Line == "" {
			summary = fmt.Sprintf("Train to %s", d.Destination)
		}
		event.SetSummary(summary)

		location := stationName
		if d.Platform != "" {
			location = fmt.Sprintf("%s, Platform %s", stationName, d.Platform)
		}
		event.SetLocation(location)

		event.SetDescription(fmt.Sprintf("Pattern: %s\nStops: %s", d.Pattern, d.Stops))
	}

	return cal.SerializeTo(w)
}
