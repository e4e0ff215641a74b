// Package plan loads the expansion-plan input tables from CSV and validates
// them into a model.Plan. Loading is strict: unknown codes, malformed values
// and contradictory rows abort with a typed error before any simulation runs.
package plan

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/core/region"
	"github.com/vanditkanudia/gridgap/infra/logger"
)

// Files names the four plan tables.
type Files struct {
	Regions    string `json:"regions"`
	Capacity   string `json:"capacity"`
	Generation string `json:"generation"`
	Timeslices string `json:"timeslices"`
}

// DefaultFiles returns the conventional table names under dir.
func DefaultFiles(dir string) Files {
	return Files{
		Regions:    filepath.Join(dir, "regions.csv"),
		Capacity:   filepath.Join(dir, "capacity.csv"),
		Generation: filepath.Join(dir, "generation.csv"),
		Timeslices: filepath.Join(dir, "timeslices.csv"),
	}
}

// Loader reads the plan tables.
type Loader struct {
	files Files
	log   logger.Logger
}

// NewLoader creates a Loader for the given table files.
func NewLoader(files Files) *Loader {
	return &Loader{files: files, log: logger.New("plan-loader")}
}

// Load reads and cross-validates the four tables. The returned CodeMap holds
// the original spelling behind every canonical region code.
func (l *Loader) Load() (model.Plan, *region.CodeMap, error) {
	slices, err := loadTimeslices(l.files.Timeslices)
	if err != nil {
		return model.Plan{}, nil, err
	}
	regions, order, groups, codes, err := loadRegions(l.files.Regions)
	if err != nil {
		return model.Plan{}, nil, err
	}
	if err := loadCapacity(l.files.Capacity, regions, codes); err != nil {
		return model.Plan{}, nil, err
	}
	if err := loadGeneration(l.files.Generation, regions, codes, slices); err != nil {
		return model.Plan{}, nil, err
	}

	// Membership and capacity must cover the same regions.
	for _, code := range order {
		r := regions[code]
		if len(r.CapacityMW) == 0 && len(r.StorageMWh) == 0 {
			return model.Plan{}, nil, &model.ConfigurationError{
				Table: "capacity",
				Key:   code,
				Msg:   "region has no capacity entry",
			}
		}
	}

	p := model.Plan{Timeslices: slices, Groups: groups}
	for _, code := range order {
		p.Regions = append(p.Regions, *regions[code])
	}
	l.log.Infof("loaded plan: %d regions, %d groups, %d timeslices",
		len(p.Regions), len(p.Groups), len(p.Timeslices))
	return p, codes, nil
}

// readTable reads a whole CSV file including the header row.
func readTable(table, path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s table: %w", table, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s table: %w", table, err)
	}
	if len(rows) < 2 {
		return nil, &model.ConfigurationError{Table: table, Msg: "table has no data rows"}
	}
	return rows, nil
}

// columns indexes the header row and checks the required column names.
func columns(table string, header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, &model.ConfigurationError{Table: table, Key: name, Msg: "missing column"}
		}
	}
	return idx, nil
}

// parseNonNegative parses a finite float value that must be >= 0.
func parseNonNegative(table, key, col, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &model.ConfigurationError{
			Table: table,
			Key:   key,
			Msg:   fmt.Sprintf("invalid %s %q", col, raw),
		}
	}
	return v, nil
}
