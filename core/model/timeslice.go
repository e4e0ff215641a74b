package model

import (
	"fmt"
	"strings"
	"time"
)

// Season is the month component of the timeslice rule.
type Season int

const (
	SeasonWinter Season = iota // December, January, February
	SeasonSpring               // March, April, May
	SeasonSummer               // June, July, August
	SeasonAutumn               // September, October, November
)

// String returns the canonical season code.
func (s Season) String() string {
	switch s {
	case SeasonWinter:
		return "WINTER"
	case SeasonSpring:
		return "SPRING"
	case SeasonSummer:
		return "SUMMER"
	case SeasonAutumn:
		return "AUTUMN"
	default:
		return "unknown"
	}
}

// ParseSeason resolves a season code from the timeslice table.
func ParseSeason(s string) (Season, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WINTER":
		return SeasonWinter, nil
	case "SPRING":
		return SeasonSpring, nil
	case "SUMMER":
		return SeasonSummer, nil
	case "AUTUMN", "FALL":
		return SeasonAutumn, nil
	default:
		return 0, &ConfigurationError{Table: "timeslices", Key: s, Msg: "unknown season"}
	}
}

// ContainsMonth reports whether m falls inside the season.
func (s Season) ContainsMonth(m time.Month) bool {
	switch s {
	case SeasonWinter:
		return m == time.December || m == time.January || m == time.February
	case SeasonSpring:
		return m >= time.March && m <= time.May
	case SeasonSummer:
		return m >= time.June && m <= time.August
	case SeasonAutumn:
		return m >= time.September && m <= time.November
	default:
		return false
	}
}

// Band is the time-of-day component of the timeslice rule: a half-open
// hour-of-day range that may wrap midnight.
type Band struct {
	Start int // inclusive, 0..23
	End   int // exclusive, 1..24; the band wraps midnight when End <= Start
}

// The four standard bands of the planning model.
var (
	BandNight   = Band{Start: 22, End: 6}
	BandMorning = Band{Start: 6, End: 10}
	BandDay     = Band{Start: 10, End: 18}
	BandEvening = Band{Start: 18, End: 22}
)

// String returns the band name for standard bands, or the explicit range.
func (b Band) String() string {
	switch b {
	case BandNight:
		return "NIGHT"
	case BandMorning:
		return "MORNING"
	case BandDay:
		return "DAY"
	case BandEvening:
		return "EVENING"
	default:
		return fmt.Sprintf("%02d-%02d", b.Start, b.End)
	}
}

// ParseBand resolves a band code from the timeslice table: one of the four
// standard names or an explicit "HH-HH" hour range.
func ParseBand(s string) (Band, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NIGHT":
		return BandNight, nil
	case "MORNING":
		return BandMorning, nil
	case "DAY":
		return BandDay, nil
	case "EVENING":
		return BandEvening, nil
	}
	var start, end int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d-%d", &start, &end); err == nil {
		if start < 0 || start > 23 || end < 1 || end > 24 || start == end {
			return Band{}, &ConfigurationError{Table: "timeslices", Key: s, Msg: "band range outside 00-24"}
		}
		return Band{Start: start, End: end}, nil
	}
	return Band{}, &ConfigurationError{Table: "timeslices", Key: s, Msg: "unknown band"}
}

// ContainsHour reports whether the hour of day (0..23) falls inside the
// band.
func (b Band) ContainsHour(h int) bool {
	if b.Start < b.End {
		return h >= b.Start && h < b.End
	}
	return h >= b.Start || h < b.End
}

// Timeslice is one representative block of the planning year. Its
// represented-hour set is derived from the season and band rule against the
// weather-year calendar; the weight is the size of that set. The slices of
// one table must partition the modeled horizon exactly.
type Timeslice struct {
	ID     string
	Season Season
	Band   Band
}

// Contains reports whether the calendar instant falls inside the slice.
func (t Timeslice) Contains(at time.Time) bool {
	return t.Season.ContainsMonth(at.Month()) && t.Band.ContainsHour(at.Hour())
}
