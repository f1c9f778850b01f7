package galaxy

import (
	"log/slog"

	"starmap-server/internal/world"
)

// StationArchetype selects which facility bundle a station receives.
type StationArchetype string

const (
	StationHub         StationArchetype = "hub"
	StationMilitary    StationArchetype = "military"
	StationPirateDen   StationArchetype = "pirate_den"
	StationBlackMarket StationArchetype = "black_market"
	StationMining      StationArchetype = "mining"
	StationOutpost     StationArchetype = "outpost"
)

type facilitySpec struct {
	ftype world.FacilityType
	level int
}

// Facility bundles are fixed data. Changing an entry changes every world
// generated from here on, so treat this table like a balance sheet.
var facilityBundles = map[StationArchetype][]facilitySpec{
	StationHub: {
		{world.FacilityShop, 3},
		{world.FacilityBar, 3},
		{world.FacilityMissionBoard, 3},
		{world.FacilityRepairYard, 3},
		{world.FacilityRecruitment, 3},
		{world.FacilityMedical, 3},
		{world.FacilityBlackMarket, 3},
		{world.FacilityFuelDepot, 3},
	},
	StationMilitary: {
		{world.FacilityShop, 2},
		{world.FacilityMissionBoard, 2},
		{world.FacilityRepairYard, 3},
		{world.FacilityRecruitment, 2},
		{world.FacilityMedical, 2},
		{world.FacilityFuelDepot, 2},
	},
	StationPirateDen: {
		{world.FacilityBar, 2},
		{world.FacilityBlackMarket, 3},
		{world.FacilityRepairYard, 1},
		{world.FacilityRecruitment, 1},
		{world.FacilityFuelDepot, 1},
	},
	StationBlackMarket: {
		{world.FacilityShop, 1},
		{world.FacilityBar, 1},
		{world.FacilityBlackMarket, 2},
		{world.FacilityFuelDepot, 1},
	},
	StationMining: {
		{world.FacilityShop, 1},
		{world.FacilityBar, 1},
		{world.FacilityRepairYard, 2},
		{world.FacilityFuelDepot, 2},
	},
	StationOutpost: {
		{world.FacilityShop, 2},
		{world.FacilityBar, 1},
		{world.FacilityMissionBoard, 2},
		{world.FacilityRepairYard, 1},
		{world.FacilityMedical, 1},
		{world.FacilityFuelDepot, 1},
	},
}

var stationNameSuffix = map[StationArchetype]string{
	StationHub:         "Hub",
	StationMilitary:    "Garrison",
	StationPirateDen:   "Freeport",
	StationBlackMarket: "Exchange",
	StationMining:      "Mining Platform",
	StationOutpost:     "Station",
}

// placeStations walks systems in id order and anchors at most one station to
// each inhabited one. Derelict and Contested systems never host a station
// regardless of the inhabited-types configuration. Placement draws nothing
// from the RNG stream; it is fully determined by prior phases.
func placeStations(g *world.Graph, cfg GenerationConfig, logger *slog.Logger) {
	inhabited := make(map[world.SystemType]bool, len(cfg.InhabitedTypes))
	for _, t := range cfg.InhabitedTypes {
		inhabited[t] = true
	}

	nextID := 1
	for _, s := range g.Systems() {
		if s.Type == world.SystemTypeDerelict || s.Type == world.SystemTypeContested {
			continue
		}
		if !inhabited[s.Type] {
			continue
		}

		archetype := pickStationArchetype(s)
		bundle := facilityBundles[archetype]
		facilities := make([]world.Facility, len(bundle))
		for i, spec := range bundle {
			facilities[i] = world.Facility{
				Type:      spec.ftype,
				Level:     spec.level,
				Available: true,
			}
		}

		station := &world.Station{
			ID:         nextID,
			Name:       s.Name + " " + stationNameSuffix[archetype],
			SystemID:   s.ID,
			OwnerID:    s.OwnerID,
			Facilities: facilities,
			Tags:       world.NewTagSet(string(archetype)),
		}
		if err := g.AddStation(station); err != nil {
			// Parent came from the same graph walk; this is a defect.
			logger.Error("Failed to add station", "system_id", s.ID, "error", err)
			continue
		}
		nextID++
	}
	logger.Debug("Stations placed", "stations", g.StationCount())
}

// pickStationArchetype applies the selection priority: hub, military,
// pirate-haven, lawless, then archetype dispatch. First match wins.
func pickStationArchetype(s *world.StarSystem) StationArchetype {
	switch {
	case s.Tags.Has(world.TagHub):
		return StationHub
	case s.Tags.Has(world.TagMilitary):
		return StationMilitary
	case s.Tags.Has(world.TagPirateHaven):
		return StationPirateDen
	case s.Tags.Has(world.TagLawless):
		return StationBlackMarket
	}

	switch s.Type {
	case world.SystemTypeStation, world.SystemTypeOutpost:
		return StationOutpost
	case world.SystemTypeAsteroid:
		return StationMining
	case world.SystemTypeNebula:
		if s.Metrics.CriminalActivity >= 3 {
			return StationBlackMarket
		}
		return StationOutpost
	default:
		return StationOutpost
	}
}
