package plan

import (
	"fmt"
	"strings"

	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/core/region"
)

// loadTimeslices reads the timeslice definition table. IDs must be unique;
// the partition check against a concrete calendar happens later, once the
// weather year is known.
func loadTimeslices(path string) ([]model.Timeslice, error) {
	rows, err := readTable("timeslices", path)
	if err != nil {
		return nil, err
	}
	idx, err := columns("timeslices", rows[0], "timeslice", "season", "band")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var slices []model.Timeslice
	for _, row := range rows[1:] {
		id := strings.ToUpper(strings.TrimSpace(row[idx["timeslice"]]))
		if id == "" {
			return nil, &model.ConfigurationError{Table: "timeslices", Msg: "empty timeslice id"}
		}
		if seen[id] {
			return nil, &model.ConfigurationError{Table: "timeslices", Key: id, Msg: "duplicate timeslice id"}
		}
		seen[id] = true

		season, err := model.ParseSeason(row[idx["season"]])
		if err != nil {
			return nil, err
		}
		band, err := model.ParseBand(row[idx["band"]])
		if err != nil {
			return nil, err
		}
		slices = append(slices, model.Timeslice{ID: id, Season: season, Band: band})
	}
	return slices, nil
}

// loadRegions reads the membership table: one row per region with its group,
// peak demand and optional profile-zone override. Returns the regions keyed
// by canonical code, the load order, the groups in first-appearance order and
// the code map.
func loadRegions(path string) (map[string]*model.Region, []string, []model.TransmissionGroup, *region.CodeMap, error) {
	rows, err := readTable("regions", path)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	idx, err := columns("regions", rows[0], "region", "group", "peak_demand_mw")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	zoneIdx, hasZone := idx["zone"]

	codes := region.NewCodeMap()
	regions := make(map[string]*model.Region)
	var order []string
	members := make(map[string][]string)
	var groupOrder []string

	for _, row := range rows[1:] {
		raw := row[idx["region"]]
		if strings.TrimSpace(raw) == "" {
			return nil, nil, nil, nil, &model.ConfigurationError{Table: "regions", Msg: "empty region code"}
		}
		code, err := codes.Add(raw)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if _, ok := regions[code]; ok {
			return nil, nil, nil, nil, &model.ConfigurationError{Table: "regions", Key: raw, Msg: "duplicate region row"}
		}

		groupID := strings.ToUpper(strings.TrimSpace(row[idx["group"]]))
		if groupID == "" {
			return nil, nil, nil, nil, &model.ConfigurationError{Table: "regions", Key: raw, Msg: "missing group"}
		}
		peak, err := parseNonNegative("regions", raw, "peak_demand_mw", row[idx["peak_demand_mw"]])
		if err != nil {
			return nil, nil, nil, nil, err
		}

		zone := code
		if hasZone && strings.TrimSpace(row[zoneIdx]) != "" {
			zone = region.Normalize(row[zoneIdx])
		}

		regions[code] = &model.Region{
			Code:          code,
			Group:         groupID,
			Zone:          zone,
			PeakDemandMW:  peak,
			CapacityMW:    make(map[model.Technology]float64),
			StorageMWh:    make(map[model.Technology]float64),
			GenerationMWh: make(map[model.Technology]map[string]float64),
		}
		order = append(order, code)
		if _, ok := members[groupID]; !ok {
			groupOrder = append(groupOrder, groupID)
		}
		members[groupID] = append(members[groupID], code)
	}

	var groups []model.TransmissionGroup
	for _, id := range groupOrder {
		groups = append(groups, model.TransmissionGroup{ID: id, Regions: members[id]})
	}
	return regions, order, groups, codes, nil
}

// loadCapacity reads installed capacity per region and technology. The
// energy_mwh column is required for storage technologies and forbidden
// elsewhere.
func loadCapacity(path string, regions map[string]*model.Region, codes *region.CodeMap) error {
	rows, err := readTable("capacity", path)
	if err != nil {
		return err
	}
	idx, err := columns("capacity", rows[0], "region", "technology", "capacity_mw")
	if err != nil {
		return err
	}
	energyIdx, hasEnergy := idx["energy_mwh"]

	for _, row := range rows[1:] {
		code, err := codes.Resolve("capacity", row[idx["region"]])
		if err != nil {
			return err
		}
		r := regions[code]

		tech, err := parseTechnology("capacity", row[idx["technology"]])
		if err != nil {
			return err
		}
		if tech.Class() == model.ClassDemand {
			return &model.ConfigurationError{Table: "capacity", Key: string(tech), Msg: "demand carries no installed capacity"}
		}
		if _, ok := r.CapacityMW[tech]; ok {
			return &model.ConfigurationError{
				Table: "capacity",
				Key:   string(tech),
				Msg:   fmt.Sprintf("duplicate row for region %s", code),
			}
		}

		cap, err := parseNonNegative("capacity", code, "capacity_mw", row[idx["capacity_mw"]])
		if err != nil {
			return err
		}
		r.CapacityMW[tech] = cap

		var energy float64
		if hasEnergy && strings.TrimSpace(row[energyIdx]) != "" {
			energy, err = parseNonNegative("capacity", code, "energy_mwh", row[energyIdx])
			if err != nil {
				return err
			}
		}
		switch {
		case tech.Class() == model.ClassStorage && energy <= 0:
			return &model.ConfigurationError{
				Table: "capacity",
				Key:   string(tech),
				Msg:   fmt.Sprintf("storage in region %s requires energy_mwh", code),
			}
		case tech.Class() == model.ClassStorage && cap <= 0:
			return &model.ConfigurationError{
				Table: "capacity",
				Key:   string(tech),
				Msg:   fmt.Sprintf("storage in region %s requires capacity_mw", code),
			}
		case tech.Class() != model.ClassStorage && energy > 0:
			return &model.ConfigurationError{
				Table: "capacity",
				Key:   string(tech),
				Msg:   "energy_mwh is only valid for storage technologies",
			}
		case tech.Class() == model.ClassStorage:
			r.StorageMWh[tech] = energy
		}
	}
	return nil
}

// loadGeneration reads planned energy per region, technology and timeslice.
// Storage and demand rows are rejected: storage is dispatched, demand is
// profile driven.
func loadGeneration(path string, regions map[string]*model.Region, codes *region.CodeMap, slices []model.Timeslice) error {
	rows, err := readTable("generation", path)
	if err != nil {
		return err
	}
	idx, err := columns("generation", rows[0], "region", "technology", "timeslice", "energy_mwh")
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(slices))
	for _, ts := range slices {
		known[ts.ID] = true
	}

	for _, row := range rows[1:] {
		code, err := codes.Resolve("generation", row[idx["region"]])
		if err != nil {
			return err
		}
		r := regions[code]

		tech, err := parseTechnology("generation", row[idx["technology"]])
		if err != nil {
			return err
		}
		switch tech.Class() {
		case model.ClassStorage, model.ClassDemand:
			return &model.ConfigurationError{
				Table: "generation",
				Key:   string(tech),
				Msg:   "only generating technologies carry planned energy",
			}
		}

		slice := strings.ToUpper(strings.TrimSpace(row[idx["timeslice"]]))
		if !known[slice] {
			return &model.ConfigurationError{Table: "generation", Key: slice, Msg: "unknown timeslice"}
		}

		energy, err := parseNonNegative("generation", code, "energy_mwh", row[idx["energy_mwh"]])
		if err != nil {
			return err
		}
		if r.GenerationMWh[tech] == nil {
			r.GenerationMWh[tech] = make(map[string]float64)
		}
		if _, ok := r.GenerationMWh[tech][slice]; ok {
			return &model.ConfigurationError{
				Table: "generation",
				Key:   string(tech),
				Msg:   fmt.Sprintf("duplicate row for region %s timeslice %s", code, slice),
			}
		}
		r.GenerationMWh[tech][slice] = energy
	}
	return nil
}

// parseTechnology resolves a technology code against the catalog.
func parseTechnology(table, raw string) (model.Technology, error) {
	tech := model.Technology(strings.ToUpper(strings.TrimSpace(raw)))
	if !tech.Known() {
		return "", &model.ConfigurationError{Table: table, Key: raw, Msg: "not in the technology catalog"}
	}
	return tech, nil
}
