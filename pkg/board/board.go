package board

import (
	"sort"
	"strings"
	"time"
)

// DefaultLimit caps each direction list when Options.Limit is not set.
const DefaultLimit = 10

// Default display values for optional fields the source could not provide.
const (
	DefaultPattern = "W"
	DefaultStops   = "All Stations"
)

// Direction labels a departure relative to the city hub.
type Direction string

const (
	DirectionCitybound Direction = "citybound"
	DirectionOutbound  Direction = "outbound"
)

// RawDeparture is one row as extracted by a departure source, before any
// validation or time normalization.
type RawDeparture struct {
	Platform    string
	Destination string
	TimeDisplay string
	Pattern     string
	Stops       string
	Line        string
}

// Departure is a validated departure ready for display, with the countdown
// already computed.
type Departure struct {
	Platform    string `json:"platform"`
	Destination string `json:"destination"`
	TimeDisplay string `json:"time_display"`
	Minutes     int    `json:"minutes"`
	Pattern     string `json:"pattern"`
	Stops       string `json:"stops"`
	Line        string `json:"line"`
}

// DropReason explains why a raw record was excluded from the board.
type DropReason string

const (
	DropMissingDestination DropReason = "missing_destination"
	DropMissingTime        DropReason = "missing_time"
	DropUnparseableTime    DropReason = "unparseable_time"
)

// Drop pairs an excluded record with its reason so callers can log and count
// what was filtered instead of it disappearing silently.
type Drop struct {
	Raw    RawDeparture
	Reason DropReason
}

// Options controls classification and ranking.
type Options struct {
	// HubToken is matched case-insensitively against destinations; a hit
	// classifies the departure as citybound.
	HubToken string

	// PlatformDirections maps platform identifiers to a direction. When the
	// platform of a record is present in the map it takes precedence over
	// the destination token match.
	PlatformDirections map[string]Direction

	// Limit caps each direction list. Zero or negative means DefaultLimit.
	Limit int
}

// Board holds the two direction lists, each sorted soonest-first.
type Board struct {
	Citybound []Departure
	Outbound  []Departure
}

// Build filters, normalizes, classifies and ranks raw departures.
//
// Records missing a destination or time display, or with a time display that
// cannot be parsed, are dropped and reported in the second return value.
// Each list is sorted ascending by minutes; ties keep input order. The
// function is pure: identical input and now always produce identical output.
func Build(raws []RawDeparture, now time.Time, opts Options) (Board, []Drop) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := Board{
		Citybound: []Departure{},
		Outbound:  []Departure{},
	}
	var drops []Drop

	for _, raw := range raws {
		if strings.TrimSpace(raw.Destination) == "" {
			drops = append(drops, Drop{Raw: raw, Reason: DropMissingDestination})
			continue
		}
		if strings.TrimSpace(raw.TimeDisplay) == "" {
			drops = append(drops, Drop{Raw: raw, Reason: DropMissingTime})
			continue
		}

		minutes, err := MinutesUntil(raw.TimeDisplay, now)
		if err != nil {
			drops = append(drops, Drop{Raw: raw, Reason: DropUnparseableTime})
			continue
		}

		dep := Departure{
			Platform:    raw.Platform,
			Destination: raw.Destination,
			TimeDisplay: raw.TimeDisplay,
			Minutes:     minutes,
			Pattern:     raw.Pattern,
			Stops:       raw.Stops,
			Line:        raw.Line,
		}
		if dep.Pattern == "" {
			dep.Pattern = DefaultPattern
		}
		if dep.Stops == "" {
			dep.Stops = DefaultStops
		}

		if classify(raw, opts) == DirectionCitybound {
			result.Citybound = append(result.Citybound, dep)
		} else {
			result.Outbound = append(result.Outbound, dep)
		}
	}

	sortAndClip(&result.Citybound, limit)
	sortAndClip(&result.Outbound, limit)

	return result, drops
}

// classify decides the direction of a single record. An explicit platform
// mapping wins; otherwise the hub token is searched for in the destination.
func classify(raw RawDeparture, opts Options) Direction {
	if opts.PlatformDirections != nil && raw.Platform != "" {
		if dir, ok := opts.PlatformDirections[raw.Platform]; ok {
			return dir
		}
	}

	if opts.HubToken != "" &&
		strings.Contains(strings.ToLower(raw.Destination), strings.ToLower(opts.HubToken)) {
		return DirectionCitybound
	}

	return DirectionOutbound
}

func sortAndClip(deps *[]Departure, limit int) {
	// Stable so that equal countdowns keep their upstream order
	sort.SliceStable(*deps, func(i, j int) bool {
		return (*deps)[i].Minutes < (*deps)[j].Minutes
	})

	if len(*deps) > limit {
		*deps = (*deps)[:limit]
	}
}
