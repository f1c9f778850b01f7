package galaxy

import "starmap-server/internal/world"

// Themed name pools, one per system archetype. Pools may be smaller than the
// system count; the content assigner retries collisions and falls back to
// numeric suffixes, so exhaustion is safe.

var stationNames = []string{
	"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
	"Betelgeuse", "Aldebaran", "Spica", "Antares", "Pollux", "Fomalhaut",
	"Deneb", "Regulus", "Adhara", "Castor", "Bellatrix", "Elnath", "Alnilam",
	"Alioth", "Dubhe", "Mirfak", "Wezen", "Avior", "Alhena", "Polaris",
	"Alphard", "Hamal", "Algieba", "Mizar", "Nunki", "Mirach", "Alpheratz",
	"Kochab", "Saiph", "Enif", "Schedar", "Markab", "Unukalhai",
}

var outpostNames = []string{
	"Haven Reach", "Kessler Point", "Meridian Post", "Tycho Landing",
	"Farrow's Rest", "Calder Station", "Dunmore Hold", "Vesper Anchorage",
	"Larkin's Claim", "Outlook Ridge", "Redrock Berth", "Solace Point",
	"Hadley Verge", "Corwin Depot", "Bastion Minor", "Ashford Relay",
	"Torren Gate", "Milder's Watch", "Pallas Rest", "Quayle Landing",
}

var derelictNames = []string{
	"Forsaken Drift", "Hollow Wreck", "Silent Expanse", "Graveyard Reach",
	"Cold Harbor", "Ruined Spire", "Lost Meridian", "Ashen Hulk",
	"Broken Anchorage", "Mourning Deep", "Derelict Row", "Faded Beacon",
	"Sundered Gate", "Ghostlight Shoal", "Barren Cradle", "Withered Span",
}

var asteroidNames = []string{
	"Ceres Verge", "Ironfield Belt", "Pallas Cluster", "Vesta Shoal",
	"Hygiea Drift", "Crag Hollow", "Slagheap Run", "Ore Garden",
	"Juno Scatter", "Basalt Ring", "Flint Corridor", "Davida Reef",
	"Eunomia Field", "Gravel Span", "Psyche Lode", "Interamnia Breaks",
}

var nebulaNames = []string{
	"Violet Shroud", "Ember Veil", "Ghost Nebula", "Cinder Haze",
	"Sapphire Pall", "Wraith Cloud", "Umbral Drift", "Rose Expanse",
	"Murkwater Veil", "Pale Curtain", "Static Gloom", "Aurora Deep",
	"Smoke Ring", "Twilight Bank", "Opal Mist", "Raven Shroud",
}

var contestedNames = []string{
	"Flashpoint", "Crossfire Reach", "Embargo Line", "Skirmish Verge",
	"No Man's Drift", "Standoff Point", "Tripwire Expanse", "Breach Sector",
	"Ironclash Span", "Salvo Corridor", "Deadlock Reach", "Attrition Field",
	"Picket Line", "Scorched Verge", "Vanguard Gap", "Ceasefire Ruins",
}

// namePool returns the pool matching an archetype. Contested borders get war
// names; everything unexpected shares the outpost pool.
func namePool(t world.SystemType) []string {
	switch t {
	case world.SystemTypeStation:
		return stationNames
	case world.SystemTypeOutpost:
		return outpostNames
	case world.SystemTypeDerelict:
		return derelictNames
	case world.SystemTypeAsteroid:
		return asteroidNames
	case world.SystemTypeNebula:
		return nebulaNames
	case world.SystemTypeContested:
		return contestedNames
	default:
		return outpostNames
	}
}
