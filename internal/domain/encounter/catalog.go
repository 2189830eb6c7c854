package encounter

// Catalog is the ordered content of the night. Order matters: it is the tie
// break for deterministic sampling and the review order for designers.
var Catalog = []Definition{
	{
		ID:        "settling_creak",
		Category:  CategoryAmbient,
		Window:    Window{FromHour: 23, ToHour: 23}, // whole night
		Weight:    30,
		Narration: "Somewhere above you, a floorboard eases under a weight that is not yours.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.0, Ref: "creak"},
			{Kind: ConsequenceSound, Ref: "creak_long"},
		},
	},
	{
		ID:        "cold_draft",
		Category:  CategoryAmbient,
		Window:    Window{FromHour: 23, ToHour: 23},
		Weight:    25,
		Narration: "A draft moves through the room with the deliberation of someone passing.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.0, Ref: "draft"},
			{Kind: ConsequenceAmbient, Ref: "wind_low"},
		},
	},
	{
		ID:        "hallway_whisper",
		Category:  CategoryAmbient,
		Window:    Window{FromHour: 0, ToHour: 4},
		Gate:      Gate{MinFear: 20},
		Weight:    18,
		Narration: "A voice too close to your ear says a name. Not yours. Worse.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.2, Ref: "whisper"},
			{Kind: ConsequenceSound, Ref: "whisper_close"},
		},
	},
	{
		ID:        "slamming_door",
		Category:  CategoryAmbient,
		Window:    Window{FromHour: 0, ToHour: 5},
		Weight:    15,
		Narration: "A door slams hard enough to shake dust from the ceiling. Every door you can see is still open.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.3, Ref: "door_slam"},
			{Kind: ConsequenceSound, Ref: "slam_heavy"},
		},
	},
	{
		ID:        "shadow_at_the_stairs",
		Category:  CategoryThreat,
		Window:    Window{FromHour: 1, ToHour: 4},
		Gate:      Gate{MinFear: 30},
		Weight:    12,
		Narration: "At the edge of the light, a shape the size of a man unfolds from the wall and waits.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.4, Ref: "shadow"},
		},
		Responses: []Response{
			{
				Pattern:   "hide",
				Narration: "You press into the dark and hold your breath until the shape loses interest.",
				Outcome: []Consequence{
					{Kind: ConsequenceCalm, Value: 8},
				},
			},
			{
				Pattern:   "run",
				Narration: "You bolt. Something rakes your shoulder as you clear the doorway.",
				Outcome: []Consequence{
					{Kind: ConsequenceDamage, Value: 0.8, Ref: "scratch"},
					{Kind: ConsequenceCalm, Value: 12},
				},
			},
			{
				Pattern:   "face",
				Narration: "You stand your ground. The shape studies you for a long moment, then folds away.",
				Outcome: []Consequence{
					{Kind: ConsequenceFear, Value: 0.8, Ref: "shadow"},
					{Kind: ConsequenceSecret, Value: 1},
				},
			},
		},
		TimeoutOutcome: []Consequence{
			{Kind: ConsequenceDamage, Value: 1.0, Ref: "strike"},
			{Kind: ConsequenceFear, Value: 1.2, Ref: "touch"},
			{Kind: ConsequenceNarrate, Ref: "You hesitate too long. The cold reaches you first."},
		},
	},
	{
		ID:        "grip_in_the_dark",
		Category:  CategoryThreat,
		Window:    Window{FromHour: 2, ToHour: 4},
		Gate:      Gate{MinFear: 50},
		Weight:    8,
		Narration: "Fingers close around your wrist. There is no one at the other end of them.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.5, Ref: "touch"},
		},
		Responses: []Response{
			{
				Pattern:   "pull",
				Narration: "You wrench free. The grip leaves a bracelet of white marks.",
				Outcome: []Consequence{
					{Kind: ConsequenceDamage, Value: 0.6, Ref: "scratch"},
				},
			},
			{
				Pattern:   "pray",
				Narration: "You speak the old words. The fingers open one by one, reluctant.",
				Outcome: []Consequence{
					{Kind: ConsequenceCalm, Value: 15},
				},
			},
		},
		TimeoutOutcome: []Consequence{
			{Kind: ConsequenceDamage, Value: 1.2, Ref: "chill"},
			{Kind: ConsequenceNarrate, Ref: "The cold climbs your arm before the grip lets go on its own."},
		},
	},
	{
		ID:        "scream_below",
		Category:  CategoryAmbient,
		Window:    Window{FromHour: 2, ToHour: 4},
		Gate:      Gate{MinFear: 40},
		Weight:    10,
		Narration: "A scream rises through the floor, goes on past the point a throat could sustain it, and stops.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.4, Ref: "scream"},
			{Kind: ConsequenceSound, Ref: "scream_far"},
		},
	},
	{
		ID:        "the_widow_appears",
		Category:  CategoryThreat,
		Window:    Window{FromHour: 2, ToHour: 4},
		Gate:      Gate{MinFear: 60},
		Weight:    5,
		Narration: "She is in the doorway in her mourning dress, face turned exactly toward you.",
		Consequences: []Consequence{
			{Kind: ConsequenceFear, Value: 1.6, Ref: "apparition"},
			{Kind: ConsequenceAmbient, Ref: "silence_total"},
		},
		Responses: []Response{
			{
				Pattern:   "crucifix",
				Narration: "You raise the crucifix. She regards it with something like grief, and is gone.",
				Outcome: []Consequence{
					{Kind: ConsequenceCalm, Value: 20},
					{Kind: ConsequenceSecret, Value: 1},
				},
			},
			{
				Pattern:   "hide",
				Narration: "You look away and count. When you look back the doorway is empty.",
				Outcome: []Consequence{
					{Kind: ConsequenceCalm, Value: 10},
				},
			},
			{
				Pattern:   "speak",
				Narration: "You ask her name. The answer arrives inside your skull, all at once.",
				Outcome: []Consequence{
					{Kind: ConsequenceFear, Value: 1.2, Ref: "whisper"},
					{Kind: ConsequenceSecret, Value: 1},
				},
			},
		},
		TimeoutOutcome: []Consequence{
			{Kind: ConsequenceFear, Value: 1.8, Ref: "apparition"},
			{Kind: ConsequenceDamage, Value: 0.8, Ref: "chill"},
			{Kind: ConsequenceNarrate, Ref: "She crosses the room without taking a step."},
		},
	},
	{
		ID:        "loose_floorboard",
		Category:  CategoryDiscovery,
		Window:    Window{FromHour: 23, ToHour: 1},
		Gate:      Gate{MaxFear: 70},
		Weight:    10,
		Narration: "A floorboard shifts under your foot. Something has been tucked into the gap beneath.",
		Consequences: []Consequence{
			{Kind: ConsequenceItem, Ref: "salt_pouch"},
		},
	},
	{
		ID:        "letter_in_the_desk",
		Category:  CategoryDiscovery,
		Window:    Window{FromHour: 23, ToHour: 2},
		Gate:      Gate{MaxFear: 60},
		Weight:    8,
		Narration: "A drawer that would not open before gives way. A sealed letter waits inside.",
		Consequences: []Consequence{
			{Kind: ConsequenceItem, Ref: "sealed_letter"},
			{Kind: ConsequenceSecret, Value: 1},
		},
	},
	{
		ID:        "weeping_behind_the_wall",
		Category:  CategoryChoice,
		Window:    Window{FromHour: 0, ToHour: 3},
		Gate:      Gate{MinFear: 15},
		Weight:    10,
		Narration: "Quiet weeping starts behind the wainscoting, close enough to touch.",
		Responses: []Response{
			{
				Pattern:   "listen",
				Narration: "You put your ear to the wall. Between sobs, a voice spells out where something is hidden.",
				Outcome: []Consequence{
					{Kind: ConsequenceSecret, Value: 1},
					{Kind: ConsequenceFear, Value: 0.8, Ref: "whisper"},
				},
			},
			{
				Pattern:   "knock",
				Narration: "You knock twice. The weeping stops mid breath. The silence after is worse.",
				Outcome: []Consequence{
					{Kind: ConsequenceFear, Value: 1.0, Ref: "whisper"},
				},
			},
			{
				Pattern:   "ignore",
				Narration: "You move away. The weeping follows you to the threshold and no further.",
				Outcome: []Consequence{
					{Kind: ConsequenceCalm, Value: 4},
				},
			},
		},
		TimeoutOutcome: []Consequence{
			{Kind: ConsequenceFear, Value: 0.9, Ref: "whisper"},
			{Kind: ConsequenceNarrate, Ref: "The weeping fades on its own, unanswered."},
		},
	},
	{
		ID:        "first_light",
		Category:  CategoryAmbient,
		Window:    Window{FromHour: 5, ToHour: 5},
		Weight:    20,
		Narration: "The windows have gone from black to grey. The house seems to notice it too.",
		Consequences: []Consequence{
			{Kind: ConsequenceCalm, Value: 6},
			{Kind: ConsequenceAmbient, Ref: "birds_first"},
		},
	},
}

// ByID returns the catalog entry with the given id.
func ByID(id string) (Definition, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
