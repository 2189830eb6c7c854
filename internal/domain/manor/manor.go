// Package manor defines the rooms of the house and how they color the night.
// This package is PURE and must NOT import any infrastructure packages.
package manor

import "strings"

// StartLocation is where every run begins.
const StartLocation = "foyer"

// Location is a static room definition.
type Location struct {
	ID          string
	Name        string
	FearFactor  float64  // multiplier on fear triggers in this room
	DecayScale  float64  // multiplier on passive fear decay in this room
	Comforting  bool     // chapels and bedrooms soften what the house does
	Aliases     []string // substrings matched against spoken commands
	Connections []string // rooms reachable from here
	Flavor      string   // narration on entering
}

// Registry maps a location id to its definition.
var Registry = map[string]Location{
	"foyer": {
		ID:          "foyer",
		Name:        "Entrance Foyer",
		FearFactor:  1.0,
		DecayScale:  1.0,
		Aliases:     []string{"foyer", "entrance", "front door"},
		Connections: []string{"hallway", "library"},
		Flavor:      "The front door is behind you. It will not open again before dawn.",
	},
	"hallway": {
		ID:          "hallway",
		Name:        "Long Hallway",
		FearFactor:  1.1,
		DecayScale:  1.0,
		Aliases:     []string{"hallway", "hall", "corridor"},
		Connections: []string{"foyer", "study", "bedroom", "cellar"},
		Flavor:      "Portraits line the hallway. None of the faces agree on where to look.",
	},
	"library": {
		ID:          "library",
		Name:        "Library",
		FearFactor:  0.9,
		DecayScale:  0.9,
		Aliases:     []string{"library", "books"},
		Connections: []string{"foyer", "study"},
		Flavor:      "Dust sheets drape the shelves like a ward full of patients.",
	},
	"study": {
		ID:          "study",
		Name:        "Study",
		FearFactor:  1.0,
		DecayScale:  0.9,
		Aliases:     []string{"study", "office", "desk"},
		Connections: []string{"hallway", "library"},
		Flavor:      "The desk drawers have been gone through. Recently.",
	},
	"bedroom": {
		ID:          "bedroom",
		Name:        "Master Bedroom",
		FearFactor:  0.8,
		DecayScale:  0.7,
		Comforting:  true,
		Aliases:     []string{"bedroom", "bed"},
		Connections: []string{"hallway", "attic"},
		Flavor:      "The bed is made. Someone still turns down one corner every night.",
	},
	"chapel": {
		ID:          "chapel",
		Name:        "Family Chapel",
		FearFactor:  0.6,
		DecayScale:  0.7,
		Comforting:  true,
		Aliases:     []string{"chapel", "altar"},
		Connections: []string{"cellar"},
		Flavor:      "Wax from a hundred winters has sealed the altar cloth in place.",
	},
	"cellar": {
		ID:          "cellar",
		Name:        "Cellar",
		FearFactor:  1.5,
		DecayScale:  1.0,
		Aliases:     []string{"cellar", "basement", "downstairs"},
		Connections: []string{"hallway", "chapel"},
		Flavor:      "The stairs end in standing dark. The cold here is older than the house.",
	},
	"attic": {
		ID:          "attic",
		Name:        "Attic",
		FearFactor:  1.4,
		DecayScale:  1.0,
		Aliases:     []string{"attic", "loft", "upstairs"},
		Connections: []string{"bedroom"},
		Flavor:      "Beams sag under a century of stored grief.",
	},
}

// Get returns the location for an id.
func Get(id string) (Location, bool) {
	loc, ok := Registry[id]
	return loc, ok
}

// Resolve matches free text against location aliases.
func Resolve(text string) (Location, bool) {
	text = strings.ToLower(text)
	for _, loc := range Registry {
		for _, alias := range loc.Aliases {
			if strings.Contains(text, alias) {
				return loc, true
			}
		}
	}
	return Location{}, false
}

// Connected reports whether two rooms share a doorway.
func Connected(fromID, toID string) bool {
	from, ok := Registry[fromID]
	if !ok {
		return false
	}
	for _, c := range from.Connections {
		if c == toID {
			return true
		}
	}
	return false
}
