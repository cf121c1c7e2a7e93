package force

import (
	"github.com/hexcrawl/c3net/pkg/bv"
	"github.com/hexcrawl/c3net/pkg/c3"
	"github.com/hexcrawl/c3net/pkg/logging"
	"github.com/hexcrawl/c3net/pkg/pubsub"
	"github.com/hexcrawl/c3net/pkg/topology"
)

// Force is the aggregate owning a roster of units and their network topology.
// It tracks a modified flag flipped by every topology mutation and publishes
// change events for whatever wants to redraw; it never persists itself.
type Force struct {
	id       string
	name     string
	units    []*Unit
	byID     map[string]*Unit
	topo     *topology.Topology
	mutator  *topology.Mutator
	bus      *pubsub.PubSub
	log      logging.Logger
	modified bool
}

// New creates an empty force. The bus may be nil; a nil logger is replaced
// with a no-op logger.
func New(id, name string, log logging.Logger, bus *pubsub.PubSub) *Force {
	if log == nil {
		log = logging.NewNopLogger()
	}
	f := &Force{
		id:   id,
		name: name,
		byID: make(map[string]*Unit),
		topo: topology.New(),
		bus:  bus,
		log:  log,
	}
	f.topo.OnChange(f.topologyChanged)
	f.mutator = topology.NewMutator(f.topo, f, log)
	return f
}

// ID returns the force id.
func (f *Force) ID() string { return f.id }

// Name returns the force display name.
func (f *Force) Name() string { return f.name }

// Topology returns the force's network topology for read access.
func (f *Force) Topology() *topology.Topology { return f.topo }

// Mutator returns the single mutation entry point for the topology.
func (f *Force) Mutator() *topology.Mutator { return f.mutator }

// Profile implements c3.ProfileSource for the topology engine.
func (f *Force) Profile(unitID string) (c3.Profile, bool) {
	u, ok := f.byID[unitID]
	if !ok {
		return c3.Profile{}, false
	}
	return u.Profile(), true
}

// AddUnit adds a unit to the roster.
func (f *Force) AddUnit(u *Unit) error {
	if _, exists := f.byID[u.UnitID()]; exists {
		return opErr("AddUnit", "unit", u.UnitID(), ErrDuplicateUnit)
	}
	f.units = append(f.units, u)
	f.byID[u.UnitID()] = u
	f.markModified()
	return nil
}

// RemoveUnit removes a unit from the roster and detaches it from every
// network record it participates in.
func (f *Force) RemoveUnit(unitID string) error {
	u, ok := f.byID[unitID]
	if !ok {
		return opErr("RemoveUnit", "unit", unitID, ErrUnitNotFound)
	}
	f.mutator.DetachUnit(unitID)
	delete(f.byID, unitID)
	for i, candidate := range f.units {
		if candidate == u {
			f.units = append(f.units[:i], f.units[i+1:]...)
			break
		}
	}
	f.markModified()
	return nil
}

// Unit returns the unit with the given id, or nil.
func (f *Force) Unit(unitID string) *Unit {
	return f.byID[unitID]
}

// Units returns the roster in insertion order. The slice is a copy.
func (f *Force) Units() []*Unit {
	out := make([]*Unit, len(f.units))
	copy(out, f.units)
	return out
}

// Len returns the roster size.
func (f *Force) Len() int { return len(f.units) }

// BaseBV returns the sum of the roster's base battle values.
func (f *Force) BaseBV() int {
	total := 0
	for _, u := range f.units {
		total += u.BattleValue()
	}
	return total
}

// Tax returns the network surcharge for one unit.
func (f *Force) Tax(unitID string) int {
	u, ok := f.byID[unitID]
	if !ok {
		return 0
	}
	return bv.Tax(u, f.bvUnits())
}

// TotalBV returns the force's battle value including network surcharges.
func (f *Force) TotalBV() int {
	return f.BaseBV() + bv.ForceTax(f.bvUnits())
}

func (f *Force) bvUnits() []bv.Unit {
	out := make([]bv.Unit, len(f.units))
	for i, u := range f.units {
		out[i] = u
	}
	return out
}

// Modified reports whether the force changed since the last ClearModified.
func (f *Force) Modified() bool { return f.modified }

// ClearModified resets the modified flag, typically after a save.
func (f *Force) ClearModified() { f.modified = false }

// markModified flips the modified flag without publishing.
func (f *Force) markModified() { f.modified = true }

// topologyChanged runs after every successful topology mutation.
func (f *Force) topologyChanged() {
	f.modified = true
	if f.bus != nil {
		f.bus.Publish(pubsub.TopicTopologyChanged, f.id)
	}
}

// saved clears the modified flag and announces the save on the bus.
func (f *Force) saved() {
	f.modified = false
	if f.bus != nil {
		f.bus.Publish(pubsub.TopicForceSaved, f.id)
	}
}
