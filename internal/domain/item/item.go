// Package item defines the catalog of objects hidden in the manor and the
// inventory that holds their instances.
// This package is PURE and must NOT import any infrastructure packages.
package item

// Kind represents the category of an item.
type Kind string

const (
	KindTool       Kind = "TOOL"
	KindKey        Kind = "KEY"
	KindConsumable Kind = "CONSUMABLE"
	KindWeapon     Kind = "WEAPON"
	KindDocument   Kind = "DOCUMENT"
)

// EffectKind identifies what using an item does to the run.
type EffectKind string

const (
	EffectCalm   EffectKind = "CALM"   // lowers fear by the value
	EffectHeal   EffectKind = "HEAL"   // restores health by the value
	EffectWard   EffectKind = "WARD"   // fear trigger dampening factor while active
	EffectLight  EffectKind = "LIGHT"  // counts as a lit light source while active
	EffectReveal EffectKind = "REVEAL" // uncovers a secret of the house
	EffectUnlock EffectKind = "UNLOCK" // opens the door the key belongs to
)

// Definition is the static catalog entry for an item id.
type Definition struct {
	ID            string
	Name          string
	Kind          Kind
	MaxDurability float64
	UsageCost     float64
	Effects       map[EffectKind]float64
	Aliases       []string           // substrings matched against spoken commands
	Discovery     map[string]float64 // location id -> chance per search
	Requires      string             // prerequisite item id, "" for none
	BurnPerMinute float64            // durability lost per minute while active
	CooldownSec   float64            // reuse cooldown (Consumable/Weapon)
	UseLocation   string             // keys only work at their door
	UseHint       string             // narration hint on successful use
}

// Registry contains every item the manor can yield.
var Registry = map[string]Definition{
	"oil_lantern": {
		ID:            "oil_lantern",
		Name:          "Oil Lantern",
		Kind:          KindTool,
		MaxDurability: 100,
		UsageCost:     5,
		Effects:       map[EffectKind]float64{EffectLight: 1, EffectWard: 0.75, EffectCalm: 4},
		Aliases:       []string{"lantern", "lamp"},
		Discovery:     map[string]float64{"cellar": 0.35, "hallway": 0.2},
		Requires:      "oil_flask",
		BurnPerMinute: 2,
		UseHint:       "The lantern hisses and throws long shadows across the wall.",
	},
	"oil_flask": {
		ID:            "oil_flask",
		Name:          "Flask of Lamp Oil",
		Kind:          KindConsumable,
		MaxDurability: 100,
		UsageCost:     100,
		Effects:       map[EffectKind]float64{},
		Aliases:       []string{"oil", "flask"},
		Discovery:     map[string]float64{"cellar": 0.4, "study": 0.15},
		CooldownSec:   5,
		UseHint:       "You top up the lantern reservoir with the last of the oil.",
	},
	"tallow_candle": {
		ID:            "tallow_candle",
		Name:          "Tallow Candle",
		Kind:          KindConsumable,
		MaxDurability: 60,
		UsageCost:     5,
		Effects:       map[EffectKind]float64{EffectLight: 1, EffectCalm: 3},
		Aliases:       []string{"candle"},
		Discovery:     map[string]float64{"chapel": 0.45, "bedroom": 0.25},
		BurnPerMinute: 6,
		CooldownSec:   3,
		UseHint:       "The candle flame steadies your breathing.",
	},
	"iron_crucifix": {
		ID:            "iron_crucifix",
		Name:          "Iron Crucifix",
		Kind:          KindTool,
		MaxDurability: 100,
		UsageCost:     10,
		Effects:       map[EffectKind]float64{EffectWard: 0.6, EffectCalm: 8},
		Aliases:       []string{"crucifix", "cross"},
		Discovery:     map[string]float64{"chapel": 0.5},
		UseHint:       "The cold iron bites your palm and the whispers pull back.",
	},
	"linen_bandage": {
		ID:            "linen_bandage",
		Name:          "Linen Bandage",
		Kind:          KindConsumable,
		MaxDurability: 40,
		UsageCost:     20,
		Effects:       map[EffectKind]float64{EffectHeal: 15},
		Aliases:       []string{"bandage", "bandages"},
		Discovery:     map[string]float64{"bedroom": 0.35, "study": 0.2},
		CooldownSec:   8,
		UseHint:       "You bind the wound tight. The throbbing dulls.",
	},
	"valerian_tonic": {
		ID:            "valerian_tonic",
		Name:          "Valerian Tonic",
		Kind:          KindConsumable,
		MaxDurability: 30,
		UsageCost:     30,
		Effects:       map[EffectKind]float64{EffectCalm: 20},
		Aliases:       []string{"tonic", "valerian"},
		Discovery:     map[string]float64{"study": 0.3},
		CooldownSec:   10,
		UseHint:       "The tonic is bitter, but your hands stop shaking.",
	},
	"fire_poker": {
		ID:            "fire_poker",
		Name:          "Fireplace Poker",
		Kind:          KindWeapon,
		MaxDurability: 80,
		UsageCost:     15,
		Effects:       map[EffectKind]float64{EffectCalm: 5},
		Aliases:       []string{"poker", "iron bar"},
		Discovery:     map[string]float64{"library": 0.3, "hallway": 0.2},
		CooldownSec:   6,
		UseHint:       "You swing the poker through the dark. Something recoils.",
	},
	"cellar_key": {
		ID:            "cellar_key",
		Name:          "Rusted Cellar Key",
		Kind:          KindKey,
		MaxDurability: 100,
		UsageCost:     50,
		Effects:       map[EffectKind]float64{EffectUnlock: 1},
		Aliases:       []string{"cellar key", "rusted key"},
		Discovery:     map[string]float64{"hallway": 0.2, "library": 0.15},
		UseLocation:   "hallway",
		UseHint:       "The lock grinds open. Stale air rises from below.",
	},
	"attic_key": {
		ID:            "attic_key",
		Name:          "Brass Attic Key",
		Kind:          KindKey,
		MaxDurability: 100,
		UsageCost:     50,
		Effects:       map[EffectKind]float64{EffectUnlock: 1},
		Aliases:       []string{"attic key", "brass key"},
		Discovery:     map[string]float64{"bedroom": 0.2, "study": 0.15},
		UseLocation:   "bedroom",
		UseHint:       "The hatch swings down on screaming hinges.",
	},
	"widow_diary": {
		ID:            "widow_diary",
		Name:          "The Widow's Diary",
		Kind:          KindDocument,
		MaxDurability: 100,
		UsageCost:     25,
		Effects:       map[EffectKind]float64{EffectReveal: 1},
		Aliases:       []string{"diary", "journal"},
		Discovery:     map[string]float64{"bedroom": 0.25, "attic": 0.4},
		UseHint:       "The handwriting deteriorates page by page. Now you know her name.",
	},
	"sealed_letter": {
		ID:            "sealed_letter",
		Name:          "Sealed Letter",
		Kind:          KindDocument,
		MaxDurability: 100,
		UsageCost:     25,
		Effects:       map[EffectKind]float64{EffectReveal: 1},
		Aliases:       []string{"letter", "envelope"},
		Discovery:     map[string]float64{"study": 0.3, "library": 0.25},
		UseHint:       "The wax seal crumbles. The letter was never meant to be delivered.",
	},
	"salt_pouch": {
		ID:            "salt_pouch",
		Name:          "Pouch of Salt",
		Kind:          KindConsumable,
		MaxDurability: 20,
		UsageCost:     20,
		Effects:       map[EffectKind]float64{EffectWard: 0.5, EffectCalm: 6},
		Aliases:       []string{"salt"},
		Discovery:     map[string]float64{"cellar": 0.25, "chapel": 0.2},
		CooldownSec:   5,
		UseHint:       "You pour a thin white line across the threshold.",
	},
}

// Get returns the definition for an item id.
func Get(id string) (Definition, bool) {
	def, ok := Registry[id]
	return def, ok
}
