package ending

// Catalog is the ordered list of outcomes. Order is the tie break when two
// endings score the same, so the more specific endings come first and each
// tier closes with a criteria-free fallback.
var Catalog = []Definition{
	// Victory tier.
	{
		ID:     "perfect_survivor",
		Tier:   TierVictory,
		Rarity: RarityLegendary,
		Title:  "Master of the House",
		Epilogue: "You open the front door to the dawn with steady hands. The house " +
			"kept its secrets for a century. Tonight it kept none from you.",
		Criteria: map[string]Criterion{
			StatFinalFear:    AtMost(25),
			StatFinalHealth:  AtLeast(80),
			StatSecretsFound: AtLeast(2),
		},
	},
	{
		ID:     "fearless_victor",
		Tier:   TierVictory,
		Rarity: RarityRare,
		Title:  "The Unshaken",
		Epilogue: "Whatever walks that house found nothing in you to feed on. " +
			"You leave the way you came: unhurried.",
		Criteria: map[string]Criterion{
			StatFinalFear: AtMost(10),
		},
	},
	{
		ID:     "scholar_of_the_house",
		Tier:   TierVictory,
		Rarity: RarityRare,
		Title:  "Keeper of Secrets",
		Epilogue: "You carry out more of the family's history than the family " +
			"ever wrote down. Some of it should stay unread.",
		Criteria: map[string]Criterion{
			StatSecretsFound: AtLeast(4),
		},
	},
	{
		ID:     "armed_survivor",
		Tier:   TierVictory,
		Rarity: RarityUncommon,
		Title:  "Survivor by Preparation",
		Epilogue: "Every drawer you opened, every tool you carried, bought you " +
			"another hour. The house respects thoroughness, grudgingly.",
		Criteria: map[string]Criterion{
			StatItemsUsed:   AtLeast(5),
			StatFinalHealth: AtLeast(50),
		},
	},
	{
		ID:     "trembling_survivor",
		Tier:   TierVictory,
		Rarity: RarityUncommon,
		Title:  "Survivor, Barely",
		Epilogue: "You make it to dawn on the far edge of panic, and you will " +
			"never again trust a quiet room.",
		Criteria: map[string]Criterion{
			StatFinalFear: AtLeast(75),
		},
	},
	{
		ID:     "basic_survivor",
		Tier:   TierVictory,
		Rarity: RarityCommon,
		Title:  "Survivor",
		Epilogue: "The sun comes up and the house lets you go. You do not look " +
			"back, and it does not call after you.",
	},

	// Death tier.
	{
		ID:     "fear_death",
		Tier:   TierDeath,
		Rarity: RarityUncommon,
		Title:  "Dead of Fright",
		Epilogue: "They find no mark on you. Only the face, which the undertaker " +
			"cannot quite make restful.",
		Criteria: map[string]Criterion{
			StatFinalFear: Exactly(100),
		},
	},
	{
		ID:     "terror_collapse",
		Tier:   TierDeath,
		Rarity: RarityRare,
		Title:  "Hunted Down",
		Epilogue: "You ran out of body before you ran out of terror. The house " +
			"was patient about the order.",
		Criteria: map[string]Criterion{
			StatFinalHealth: Exactly(0),
			StatFinalFear:   AtLeast(80),
		},
	},
	{
		ID:     "fighter_fallen",
		Tier:   TierDeath,
		Rarity: RarityRare,
		Title:  "Fallen Fighting",
		Epilogue: "You used everything the house gave you against it. It was " +
			"keeping count, and it had more.",
		Criteria: map[string]Criterion{
			StatItemsUsed:   AtLeast(3),
			StatFinalHealth: Exactly(0),
		},
	},
	{
		ID:     "early_victim",
		Tier:   TierDeath,
		Rarity: RarityUncommon,
		Title:  "Gone Before Midnight",
		Epilogue: "The night had barely started. The house did not even have to " +
			"try.",
		Criteria: map[string]Criterion{
			StatSurvivalHours: AtMost(2),
		},
	},
	{
		ID:     "broken_body",
		Tier:   TierDeath,
		Rarity: RarityCommon,
		Title:  "Broken",
		Epilogue: "It was never the ghosts that killed you. It was the stairs, " +
			"the cold, and the dark between them.",
		Criteria: map[string]Criterion{
			StatFinalHealth: Exactly(0),
		},
	},
	{
		ID:     "claimed_by_the_house",
		Tier:   TierDeath,
		Rarity: RarityCommon,
		Title:  "Claimed",
		Epilogue: "One more name for the parish register, one more room the " +
			"caretaker keeps locked.",
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
