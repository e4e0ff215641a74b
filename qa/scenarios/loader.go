// Package scenarios runs the YAML acceptance fixtures: small plans with
// known hourly outcomes, checked against the real expansion, dispatch and
// aggregation code.
package scenarios

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanditkanudia/gridgap/core/model"
)

type SliceDef struct {
	ID     string `yaml:"id"`
	Season string `yaml:"season"`
	Band   string `yaml:"band"`
}

func (d SliceDef) ToModel() (model.Timeslice, error) {
	season, err := model.ParseSeason(d.Season)
	if err != nil {
		return model.Timeslice{}, err
	}
	band, err := model.ParseBand(d.Band)
	if err != nil {
		return model.Timeslice{}, err
	}
	return model.Timeslice{ID: strings.ToUpper(strings.TrimSpace(d.ID)), Season: season, Band: band}, nil
}

// TechDef describes one technology of a region: installed capacity, storage
// energy and planned generation per timeslice.
type TechDef struct {
	CapacityMW float64            `yaml:"capacity_mw"`
	EnergyMWh  float64            `yaml:"energy_mwh,omitempty"`
	Generation map[string]float64 `yaml:"generation,omitempty"`
}

type RegionDef struct {
	Code         string             `yaml:"code"`
	Group        string             `yaml:"group"`
	Zone         string             `yaml:"zone,omitempty"`
	PeakDemandMW float64            `yaml:"peak_demand_mw"`
	Technologies map[string]TechDef `yaml:"technologies"`
}

func (d RegionDef) ToModel() (model.Region, error) {
	r := model.Region{
		Code:          strings.ToUpper(strings.TrimSpace(d.Code)),
		Group:         strings.ToUpper(strings.TrimSpace(d.Group)),
		Zone:          strings.ToUpper(strings.TrimSpace(d.Zone)),
		PeakDemandMW:  d.PeakDemandMW,
		CapacityMW:    make(map[model.Technology]float64),
		StorageMWh:    make(map[model.Technology]float64),
		GenerationMWh: make(map[model.Technology]map[string]float64),
	}
	if r.Zone == "" {
		r.Zone = r.Code
	}
	for code, def := range d.Technologies {
		tech := model.Technology(strings.ToUpper(strings.TrimSpace(code)))
		if !tech.Known() {
			return model.Region{}, &model.ConfigurationError{Table: "scenario", Key: code, Msg: "not in the technology catalog"}
		}
		if def.CapacityMW > 0 {
			r.CapacityMW[tech] = def.CapacityMW
		}
		if def.EnergyMWh > 0 {
			r.StorageMWh[tech] = def.EnergyMWh
		}
		if len(def.Generation) > 0 {
			slices := make(map[string]float64, len(def.Generation))
			for id, e := range def.Generation {
				slices[strings.ToUpper(strings.TrimSpace(id))] = e
			}
			r.GenerationMWh[tech] = slices
		}
	}
	return r, nil
}

type ProfileDef struct {
	Zone   string    `yaml:"zone"`
	Tech   string    `yaml:"tech"`
	Values []float64 `yaml:"values"`
}

type Expected struct {
	MaxRampAsPlannedMW    float64            `yaml:"max_ramp_as_planned_mw,omitempty"`
	RealisticRampSmaller  bool               `yaml:"realistic_ramp_smaller,omitempty"`
	MinRampHoursRealistic int                `yaml:"min_ramp_hours_realistic,omitempty"`
	CapacityMW            map[string]float64 `yaml:"capacity_mw,omitempty"`
	CapacityAfterRemoval  map[string]float64 `yaml:"capacity_after_removal_mw,omitempty"`
	MissingData           bool               `yaml:"missing_data,omitempty"`
}

type Scenario struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description,omitempty"`
	Year         int          `yaml:"year"`
	HorizonHours int          `yaml:"horizon_hours"`
	Group        string       `yaml:"group"`
	RemoveRegion string       `yaml:"remove_region,omitempty"`
	Timeslices   []SliceDef   `yaml:"timeslices"`
	Regions      []RegionDef  `yaml:"regions"`
	Profiles     []ProfileDef `yaml:"profiles,omitempty"`
	Expected     Expected     `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Plan assembles the scenario's model.Plan. Group membership follows the
// regions' group fields in definition order.
func (s *Scenario) Plan() (model.Plan, error) {
	var p model.Plan
	for _, d := range s.Timeslices {
		slice, err := d.ToModel()
		if err != nil {
			return model.Plan{}, err
		}
		p.Timeslices = append(p.Timeslices, slice)
	}
	members := make(map[string][]string)
	var order []string
	for _, d := range s.Regions {
		r, err := d.ToModel()
		if err != nil {
			return model.Plan{}, err
		}
		p.Regions = append(p.Regions, r)
		if _, ok := members[r.Group]; !ok {
			order = append(order, r.Group)
		}
		members[r.Group] = append(members[r.Group], r.Code)
	}
	for _, id := range order {
		p.Groups = append(p.Groups, model.TransmissionGroup{ID: id, Regions: members[id]})
	}
	return p, nil
}
