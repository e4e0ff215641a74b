package model

import "fmt"

// ProfileKey addresses one hourly series: a profile zone, a technology and a
// weather year. Keys use canonical codes only.
type ProfileKey struct {
	Zone string
	Tech Technology
	Year int
}

// String returns the key in zone/tech/year form for logs and errors.
func (k ProfileKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.Zone, k.Tech, k.Year)
}

// HourlyProfile is a read-only series covering every hour of one weather
// year: dimensionless capacity factors in [0,1] for weather-driven
// technologies, absolute MW for demand.
type HourlyProfile struct {
	Key    ProfileKey
	Values []float64
}

// Validate checks length and value ranges against the weather-year hour
// count.
func (p HourlyProfile) Validate(hours int) error {
	if len(p.Values) != hours {
		return &ConfigurationError{
			Table: "profile",
			Key:   p.Key.String(),
			Msg:   fmt.Sprintf("expected %d hourly values, got %d", hours, len(p.Values)),
		}
	}
	class, err := ClassOf(p.Key.Tech)
	if err != nil {
		return err
	}
	for h, v := range p.Values {
		switch class {
		case ClassVariable:
			if v < 0 || v > 1 {
				return &ConfigurationError{
					Table: "profile",
					Key:   p.Key.String(),
					Msg:   fmt.Sprintf("capacity factor %g at hour %d outside [0,1]", v, h),
				}
			}
		default:
			if v < 0 {
				return &ConfigurationError{
					Table: "profile",
					Key:   p.Key.String(),
					Msg:   fmt.Sprintf("negative value %g at hour %d", v, h),
				}
			}
		}
	}
	return nil
}
