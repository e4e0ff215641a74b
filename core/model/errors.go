package model

import (
	"errors"
	"fmt"
)

// ConfigurationError reports invalid or contradictory input data: unknown
// group, timeslice or technology codes, malformed mappings, impossible
// storage definitions. Detected during loading and validation, before any
// simulation starts.
type ConfigurationError struct {
	Table string // input table or config section
	Key   string // offending code, may be empty
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration: %s: %q: %s", e.Table, e.Key, e.Msg)
	}
	return fmt.Sprintf("configuration: %s: %s", e.Table, e.Msg)
}

// MissingDataError reports a required record that is absent: an hourly
// profile or a capacity/generation entry the plan needs. Missing data is
// never substituted with a default.
type MissingDataError struct {
	Kind string // "profile", "capacity", "generation"
	Key  string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing %s for %s", e.Kind, e.Key)
}

// AggregationError reports a membership conflict discovered while grouping
// regions: a region claimed by more than one group, or two region codes
// normalizing to the same canonical form.
type AggregationError struct {
	Group string
	Code  string
	Msg   string
}

func (e *AggregationError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("aggregation: group %s: region %q: %s", e.Group, e.Code, e.Msg)
	}
	return fmt.Sprintf("aggregation: region %q: %s", e.Code, e.Msg)
}

// EnergyBalanceError reports a violated conservation invariant: a timeslice
// whose as-planned series does not integrate back to its planned energy, an
// hourly balance identity failure, or a rescale with no profile energy to
// scale. Hour is -1 when the violation is not hour specific.
type EnergyBalanceError struct {
	Group     string
	Timeslice string
	Hour      int
	Deviation float64
	Msg       string
}

func (e *EnergyBalanceError) Error() string {
	switch {
	case e.Timeslice != "":
		return fmt.Sprintf("energy balance: group %s: timeslice %s: %s (deviation %g)", e.Group, e.Timeslice, e.Msg, e.Deviation)
	case e.Hour >= 0:
		return fmt.Sprintf("energy balance: group %s: hour %d: %s (deviation %g)", e.Group, e.Hour, e.Msg, e.Deviation)
	default:
		return fmt.Sprintf("energy balance: group %s: %s", e.Group, e.Msg)
	}
}

// IsConfiguration reports whether err wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsMissingData reports whether err wraps a MissingDataError.
func IsMissingData(err error) bool {
	var me *MissingDataError
	return errors.As(err, &me)
}

// IsAggregation reports whether err wraps an AggregationError.
func IsAggregation(err error) bool {
	var ae *AggregationError
	return errors.As(err, &ae)
}

// IsEnergyBalance reports whether err wraps an EnergyBalanceError.
func IsEnergyBalance(err error) bool {
	var be *EnergyBalanceError
	return errors.As(err, &be)
}

// ErrorKind classifies err into one of the four fatal kinds, or "internal"
// for anything else. Used for log fields and monitoring tags.
func ErrorKind(err error) string {
	switch {
	case IsConfiguration(err):
		return "configuration"
	case IsMissingData(err):
		return "missing_data"
	case IsAggregation(err):
		return "aggregation"
	case IsEnergyBalance(err):
		return "energy_balance"
	default:
		return "internal"
	}
}
