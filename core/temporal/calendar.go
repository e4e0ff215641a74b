// Package temporal maps timeslices onto the weather-year calendar and
// expands timeslice-level plan values into hourly series under the
// as-planned and realistic policies.
package temporal

import (
	"fmt"
	"time"

	"github.com/vanditkanudia/gridgap/core/model"
)

// Calendar enumerates the hours of one weather year in UTC. Hour indexes
// are 0-based positions from January 1st 00:00.
type Calendar struct {
	Year  int
	start time.Time
	hours int
}

// NewCalendar builds the calendar for a weather year, 8760 hours or 8784 in
// leap years.
func NewCalendar(year int) Calendar {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Calendar{
		Year:  year,
		start: start,
		hours: int(end.Sub(start) / time.Hour),
	}
}

// NewHorizon builds a truncated calendar covering the first n hours of the
// year. Scenario fixtures run short horizons; production runs use
// NewCalendar.
func NewHorizon(year, n int) Calendar {
	cal := NewCalendar(year)
	if n < cal.hours {
		cal.hours = n
	}
	return cal
}

// Hours returns the number of hours in the year.
func (c Calendar) Hours() int {
	return c.hours
}

// At returns the calendar instant of the given hour index.
func (c Calendar) At(hour int) time.Time {
	return c.start.Add(time.Duration(hour) * time.Hour)
}

// SliceHours resolves every timeslice's represented-hour set against the
// calendar. The slices must partition the year exactly: every hour covered
// by exactly one slice, no duplicate ids. Weight of a slice is the size of
// its set.
func SliceHours(cal Calendar, slices []model.Timeslice) (map[string][]int, error) {
	byID := make(map[string][]int, len(slices))
	for _, s := range slices {
		if _, ok := byID[s.ID]; ok {
			return nil, &model.ConfigurationError{Table: "timeslices", Key: s.ID, Msg: "duplicate timeslice id"}
		}
		byID[s.ID] = nil
	}
	for h := 0; h < cal.Hours(); h++ {
		at := cal.At(h)
		owner := ""
		for _, s := range slices {
			if !s.Contains(at) {
				continue
			}
			if owner != "" {
				return nil, &model.ConfigurationError{
					Table: "timeslices",
					Key:   s.ID,
					Msg:   fmt.Sprintf("overlaps %s at hour %d (%s)", owner, h, at.Format(time.RFC3339)),
				}
			}
			owner = s.ID
		}
		if owner == "" {
			return nil, &model.ConfigurationError{
				Table: "timeslices",
				Msg:   fmt.Sprintf("no timeslice covers hour %d (%s)", h, at.Format(time.RFC3339)),
			}
		}
		byID[owner] = append(byID[owner], h)
	}
	return byID, nil
}
