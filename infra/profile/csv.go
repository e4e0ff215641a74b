// Package profile provides the hourly-profile sources: CSV files on disk, an
// HTTP endpoint serving the same payload, and a deterministic synthetic
// generator for demos and fixtures.
package profile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vanditkanudia/gridgap/core/model"
)

// CSVSource reads profiles from <dir>/<technology>_<zone>_<year>.csv files
// with hour,value rows.
type CSVSource struct {
	dir string
}

// NewCSVSource creates a source rooted at dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Filename returns the conventional file name for a profile key.
func Filename(key model.ProfileKey) string {
	return fmt.Sprintf("%s_%s_%d.csv",
		strings.ToLower(string(key.Tech)), strings.ToLower(key.Zone), key.Year)
}

// Fetch reads the profile file for key. A missing file is a
// MissingDataError: profiles are never defaulted.
func (s *CSVSource) Fetch(_ context.Context, key model.ProfileKey) (model.HourlyProfile, error) {
	path := filepath.Join(s.dir, Filename(key))
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return model.HourlyProfile{}, &model.MissingDataError{Kind: "profile", Key: key.String()}
	}
	if err != nil {
		return model.HourlyProfile{}, fmt.Errorf("opening profile %s: %w", path, err)
	}
	defer f.Close()

	values, err := parseSeries(f, key)
	if err != nil {
		return model.HourlyProfile{}, err
	}
	return model.HourlyProfile{Key: key, Values: values}, nil
}

// parseSeries reads hour,value rows. Hours must run contiguously from zero
// so a truncated or reordered series is caught here, not as a length
// mismatch downstream.
func parseSeries(r io.Reader, key model.ProfileKey) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", key, err)
	}
	if len(rows) < 2 {
		return nil, &model.ConfigurationError{Table: "profile", Key: key.String(), Msg: "no data rows"}
	}
	if len(rows[0]) < 2 || !strings.EqualFold(strings.TrimSpace(rows[0][0]), "hour") {
		return nil, &model.ConfigurationError{Table: "profile", Key: key.String(), Msg: "missing hour,value header"}
	}

	values := make([]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		hour, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil || hour != i {
			return nil, &model.ConfigurationError{
				Table: "profile",
				Key:   key.String(),
				Msg:   fmt.Sprintf("hour %q at row %d, expected %d", row[0], i+1, i),
			}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &model.ConfigurationError{
				Table: "profile",
				Key:   key.String(),
				Msg:   fmt.Sprintf("invalid value %q at hour %d", row[1], i),
			}
		}
		values = append(values, v)
	}
	return values, nil
}
