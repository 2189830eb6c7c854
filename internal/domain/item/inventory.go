package item

import (
	"math/rand"
	"sort"
)

// Instance is a held copy of a catalog item, with its own durability and
// activation state. Fields are exported so a run can be saved and restored.
type Instance struct {
	ID              string                 `json:"id"`
	Kind            Kind                   `json:"kind"`
	Durability      float64                `json:"durability"`
	IsActive        bool                   `json:"is_active"`
	Effects         map[EffectKind]float64 `json:"effects"`
	CooldownUntilMs float64                `json:"cooldown_until_ms"`
}

// NewInstance creates a fresh instance at full durability.
func NewInstance(def Definition) Instance {
	effects := make(map[EffectKind]float64, len(def.Effects))
	for k, v := range def.Effects {
		effects[k] = v
	}
	return Instance{
		ID:         def.ID,
		Kind:       def.Kind,
		Durability: def.MaxDurability,
		Effects:    effects,
	}
}

// Broken reports whether the instance is out of durability. Tools and
// weapons persist broken; consumables are removed instead.
func (i *Instance) Broken() bool { return i.Durability <= 0 }

// UseContext carries the run state an item needs to validate its use.
type UseContext struct {
	NowMs     float64
	FearLevel float64
	Location  string
}

// UseResult is the structured outcome of a use attempt. Failures are
// in-fiction outcomes, not errors: the tick carries on either way.
type UseResult struct {
	Success       bool
	Reason        string
	NarrationHint string
	Consumed      bool
	Activated     bool
	Deactivated   bool
	Effects       map[EffectKind]float64
}

// Failure reasons surfaced to the caller and to narration.
const (
	ReasonUnknownItem   = "unknown_item"
	ReasonNotOwned      = "not_owned"
	ReasonBroken        = "broken"
	ReasonOnCooldown    = "on_cooldown"
	ReasonTooAfraid     = "too_afraid"
	ReasonWrongLocation = "wrong_location"
	ReasonMissingPrereq = "missing_prerequisite"
)

// Inventory is the ordered collection of held instances. Insertion order is
// discovery order and survives save/restore.
type Inventory struct {
	items []Instance
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add takes ownership of a fresh instance of the definition. Duplicate ids
// are rejected.
func (inv *Inventory) Add(def Definition) bool {
	if _, ok := inv.Get(def.ID); ok {
		return false
	}
	inv.items = append(inv.items, NewInstance(def))
	return true
}

// Get returns a pointer to the held instance with the given id.
func (inv *Inventory) Get(id string) (*Instance, bool) {
	for i := range inv.items {
		if inv.items[i].ID == id {
			return &inv.items[i], true
		}
	}
	return nil, false
}

// Remove drops the instance with the given id, preserving order.
func (inv *Inventory) Remove(id string) {
	for i := range inv.items {
		if inv.items[i].ID == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return
		}
	}
}

// Items returns the held instances in discovery order.
func (inv *Inventory) Items() []Instance {
	out := make([]Instance, len(inv.items))
	copy(out, inv.items)
	return out
}

// Count returns the number of held instances.
func (inv *Inventory) Count() int { return len(inv.items) }

// Restore replaces the inventory contents with saved instances.
func (inv *Inventory) Restore(items []Instance) {
	inv.items = make([]Instance, len(items))
	copy(inv.items, items)
}

// ActiveOf returns the active instance of the given kind, if any. At most
// one Tool and one Weapon can be active at a time.
func (inv *Inventory) ActiveOf(kind Kind) (*Instance, bool) {
	for i := range inv.items {
		if inv.items[i].Kind == kind && inv.items[i].IsActive {
			return &inv.items[i], true
		}
	}
	return nil, false
}

// MatchAlias finds the first held item whose alias appears in the normalized
// command text. Catalog aliases are lowercase already.
func (inv *Inventory) MatchAlias(contains func(alias string) bool) (string, bool) {
	for i := range inv.items {
		def, ok := Get(inv.items[i].ID)
		if !ok {
			continue
		}
		for _, alias := range def.Aliases {
			if contains(alias) {
				return def.ID, true
			}
		}
	}
	return "", false
}

// Use attempts to use a held item. Validation fails closed: broken items,
// cooldowns, a fear-locked weapon, a key at the wrong door, and missing
// prerequisites all return a structured failure and leave state untouched.
func (inv *Inventory) Use(id string, ctx UseContext) UseResult {
	def, ok := Get(id)
	if !ok {
		return UseResult{Reason: ReasonUnknownItem}
	}
	inst, ok := inv.Get(id)
	if !ok {
		return UseResult{Reason: ReasonNotOwned}
	}
	if inst.Broken() {
		return UseResult{Reason: ReasonBroken, NarrationHint: def.Name + " is spent. It will not serve again tonight."}
	}
	if ctx.NowMs < inst.CooldownUntilMs {
		return UseResult{Reason: ReasonOnCooldown}
	}
	if def.Kind == KindWeapon && ctx.FearLevel >= 90 {
		return UseResult{Reason: ReasonTooAfraid, NarrationHint: "Your hands shake too hard to hold it."}
	}
	if def.Kind == KindKey && def.UseLocation != "" && ctx.Location != def.UseLocation {
		return UseResult{Reason: ReasonWrongLocation, NarrationHint: "There is no lock here that fits this key."}
	}
	if def.Requires != "" {
		if _, owned := inv.Get(def.Requires); !owned {
			req, _ := Get(def.Requires)
			return UseResult{Reason: ReasonMissingPrereq, NarrationHint: def.Name + " needs " + req.Name + " first."}
		}
	}

	res := UseResult{
		Success:       true,
		NarrationHint: def.UseHint,
		Effects:       inst.Effects,
	}

	inst.Durability -= def.UsageCost
	if inst.Durability < 0 {
		inst.Durability = 0
	}

	switch def.Kind {
	case KindTool, KindWeapon:
		if inst.IsActive {
			inst.IsActive = false
			res.Deactivated = true
		} else {
			if other, ok := inv.ActiveOf(def.Kind); ok {
				other.IsActive = false
			}
			inst.IsActive = true
			res.Activated = true
		}
	case KindConsumable:
		if def.BurnPerMinute > 0 && inst.Durability > 0 {
			// Timed consumables stay lit and burn down over time.
			inst.IsActive = true
			res.Activated = true
		}
	}

	if def.CooldownSec > 0 && (def.Kind == KindConsumable || def.Kind == KindWeapon) {
		inst.CooldownUntilMs = ctx.NowMs + def.CooldownSec*1000
	}

	if def.Kind == KindConsumable && inst.Durability <= 0 {
		res.Consumed = true
		inv.Remove(id)
	}

	return res
}

// BurnResult reports what happened to one active timed item during a tick.
type BurnResult struct {
	ID       string
	Depleted bool
}

// Burn advances durability loss for active timed items. Depleted consumables
// are removed; anything else auto-deactivates at zero.
func (inv *Inventory) Burn(dtMs float64) []BurnResult {
	var out []BurnResult
	var remove []string
	for i := range inv.items {
		inst := &inv.items[i]
		if !inst.IsActive {
			continue
		}
		def, ok := Get(inst.ID)
		if !ok || def.BurnPerMinute <= 0 {
			continue
		}
		inst.Durability -= def.BurnPerMinute * dtMs / 60000.0
		if inst.Durability > 0 {
			continue
		}
		inst.Durability = 0
		inst.IsActive = false
		if inst.Kind == KindConsumable {
			remove = append(remove, inst.ID)
		}
		out = append(out, BurnResult{ID: inst.ID, Depleted: true})
	}
	for _, id := range remove {
		inv.Remove(id)
	}
	return out
}

// Discover rolls the catalog for the current location and returns the
// definitions found. Already-owned items never come up twice.
func (inv *Inventory) Discover(location string, rng *rand.Rand) []Definition {
	ids := make([]string, 0, len(Registry))
	for id := range Registry {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic roll order for a given seed

	var found []Definition
	for _, id := range ids {
		def := Registry[id]
		chance, ok := def.Discovery[location]
		if !ok {
			continue
		}
		if _, owned := inv.Get(id); owned {
			continue
		}
		if rng.Float64() < chance {
			found = append(found, def)
		}
	}
	return found
}
