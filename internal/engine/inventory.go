package engine

import (
	"fmt"
	"math/rand"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/item"
	"github.com/MValdesGames/NocheEnLaMansion/internal/events"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
)

// InventorySystem wraps the domain inventory with audit logging. It owns
// what the player carries; applying item effects to the meters stays with
// the orchestrator.
type InventorySystem struct {
	inv    *item.Inventory
	log    *events.Log
	logger *logger.Logger
}

// NewInventorySystem creates an empty inventory backed by the audit log.
func NewInventorySystem(log *events.Log, lg *logger.Logger) *InventorySystem {
	return &InventorySystem{
		inv:    item.NewInventory(),
		log:    log,
		logger: lg,
	}
}

// Grant adds a catalog item to the inventory and records the find.
// Returns false for unknown ids and duplicates.
func (is *InventorySystem) Grant(defID string, atMs float64) (item.Definition, bool) {
	def, ok := item.Get(defID)
	if !ok {
		is.logger.Warn("grant of unknown item %q ignored", defID)
		return item.Definition{}, false
	}
	if !is.inv.Add(def) {
		return def, false
	}
	is.log.Append(events.NewRecord(atMs, events.EventTypeItemFound, "player", 0, def.ID))
	is.logger.Event("ITEM_FOUND", "player", def.ID)
	return def, true
}

// Use attempts an item use and records the outcome either way.
func (is *InventorySystem) Use(id string, ctx item.UseContext) item.UseResult {
	res := is.inv.Use(id, ctx)
	if res.Success {
		is.log.Append(events.NewRecord(ctx.NowMs, events.EventTypeItemUsed, "player", 0, id))
		is.logger.Event("ITEM_USED", "player", id)
		if res.Consumed {
			is.log.Append(events.NewRecord(ctx.NowMs, events.EventTypeItemDepleted, "player", 0, id))
		}
	} else {
		is.log.Append(events.NewRecord(ctx.NowMs, events.EventTypeCommandFailed, "player",
			0, fmt.Sprintf("use %s: %s", id, res.Reason)))
	}
	return res
}

// Burn advances active timed items and records depletions.
func (is *InventorySystem) Burn(dtMs, nowMs float64) []item.BurnResult {
	burned := is.inv.Burn(dtMs)
	for _, b := range burned {
		is.log.Append(events.NewRecord(nowMs, events.EventTypeItemDepleted, "player", 0, b.ID))
		is.logger.Event("ITEM_DEPLETED", "player", b.ID)
	}
	return burned
}

// Discover rolls the room for findable items and grants every hit.
func (is *InventorySystem) Discover(location string, rng *rand.Rand, atMs float64) []item.Definition {
	found := is.inv.Discover(location, rng)
	var granted []item.Definition
	for _, def := range found {
		if _, ok := is.Grant(def.ID, atMs); ok {
			granted = append(granted, def)
		}
	}
	return granted
}

// MatchAlias resolves free text to a held item id.
func (is *InventorySystem) MatchAlias(contains func(alias string) bool) (string, bool) {
	return is.inv.MatchAlias(contains)
}

// Items returns the held instances in discovery order.
func (is *InventorySystem) Items() []item.Instance { return is.inv.Items() }

// Count returns the number of held instances.
func (is *InventorySystem) Count() int { return is.inv.Count() }

// Restore replaces the contents from a saved state.
func (is *InventorySystem) Restore(items []item.Instance) { is.inv.Restore(items) }

// ActiveOf exposes the active instance of a kind.
func (is *InventorySystem) ActiveOf(kind item.Kind) (*item.Instance, bool) {
	return is.inv.ActiveOf(kind)
}
