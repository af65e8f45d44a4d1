package board

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognisedTime is returned when a display string matches none of the
// time formats Transperth is known to emit.
var ErrUnrecognisedTime = errors.New("unrecognised departure time format")

var (
	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	digitPattern = regexp.MustCompile(`\d+`)
)

// MinutesUntil converts a raw display string like "5 min", "Now", "Due" or
// "10:45" into whole minutes from now.
//
// Clock times are checked before bare digit runs, otherwise "10:45" would be
// read as a 10 minute countdown. A wall-clock time earlier than now is taken
// to mean tomorrow.
func MinutesUntil(display string, now time.Time) (int, error) {
	display = strings.ToLower(strings.TrimSpace(display))
	if display == "" {
		return 0, ErrUnrecognisedTime
	}

	if strings.Contains(display, "now") || strings.Contains(display, "due") {
		return 0, nil
	}

	if m := clockPattern.FindStringSubmatch(display); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, ErrUnrecognisedTime
		}

		departure := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if departure.Before(now) {
			departure = departure.Add(24 * time.Hour)
		}

		diff := int(departure.Sub(now).Minutes())
		if diff < 0 {
			diff = 0
		}
		return diff, nil
	}

	if m := digitPattern.FindString(display); m != "" {
		minutes, err := strconv.Atoi(m)
		if err != nil {
			return 0, ErrUnrecognisedTime
		}
		return minutes, nil
	}

	return 0, ErrUnrecognisedTime
}
