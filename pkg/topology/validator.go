package topology

import "github.com/hexcrawl/c3net/pkg/c3"

// Rejection reasons reported by CanConnect. Illegal connections are rejected,
// never raised: the engine's only error class is a rejected mutation.
const (
	ReasonSelfConnection   = "cannot connect a unit to itself"
	ReasonUnknownComponent = "unknown unit or component"
	ReasonIncompatible     = "components are not compatible"
	ReasonPinDisabled      = "target pin is disabled"
)

// ConnectCheck is the outcome of a connection legality check.
type ConnectCheck struct {
	Valid  bool
	Reason string
}

func valid() ConnectCheck                { return ConnectCheck{Valid: true} }
func invalid(reason string) ConnectCheck { return ConnectCheck{Reason: reason} }

// CompatibleComponents reports whether two components may ever be linked:
// their classes must fall in the same equivalence family and the role pair
// must be Master-Slave, Master-Master or Peer-Peer. Slave-Slave, Peer-Master
// and Peer-Slave are always illegal.
func CompatibleComponents(a, b c3.Component) bool {
	if !a.Class.Compatible(b.Class) {
		return false
	}
	switch {
	case a.Role == c3.Peer && b.Role == c3.Peer:
		return true
	case a.Role == c3.Master && b.Role == c3.Master:
		return true
	case a.Role == c3.Master && b.Role == c3.Slave:
		return true
	case a.Role == c3.Slave && b.Role == c3.Master:
		return true
	default:
		return false
	}
}

// Validator decides whether two components may be linked given the current
// topology. It is pure: no call mutates anything.
type Validator struct {
	units c3.ProfileSource
	topo  *Topology
}

// NewValidator creates a validator over the given unit source and topology.
func NewValidator(units c3.ProfileSource, topo *Topology) *Validator {
	return &Validator{units: units, topo: topo}
}

// CanConnect checks whether the source pin may be dragged onto the target
// pin. A Master-Master drag whose reverse edge already exists is NOT rejected
// here: the mutator repairs it, so drag-to-reparent keeps working.
func (v *Validator) CanConnect(srcUnit string, srcIdx int, tgtUnit string, tgtIdx int) ConnectCheck {
	if srcUnit == tgtUnit {
		return invalid(ReasonSelfConnection)
	}

	src, ok := v.component(srcUnit, srcIdx)
	if !ok {
		return invalid(ReasonUnknownComponent)
	}
	tgt, ok := v.component(tgtUnit, tgtIdx)
	if !ok {
		return invalid(ReasonUnknownComponent)
	}

	if !CompatibleComponents(src, tgt) {
		return invalid(ReasonIncompatible)
	}

	// Drags only start on enabled pins, so only the target needs the check.
	if v.PinDisabled(tgtUnit, tgt) {
		return invalid(ReasonPinDisabled)
	}

	return valid()
}

// PinDisabled reports whether a pin is out of play: a Master pin while its
// unit is consumed as a slave member elsewhere, or a Slave pin while its unit
// operates a non-empty master network. A unit's master and slave roles are
// mutually exclusive in effect.
func (v *Validator) PinDisabled(unitID string, comp c3.Component) bool {
	switch comp.Role {
	case c3.Master:
		return v.topo.IsUnitSlaveConnected(unitID)
	case c3.Slave:
		return v.topo.IsUnitMasterConnected(unitID)
	default:
		return false
	}
}

// component resolves a unit's component, defensively failing on unknown
// units or indices.
func (v *Validator) component(unitID string, index int) (c3.Component, bool) {
	profile, ok := v.units.Profile(unitID)
	if !ok {
		return c3.Component{}, false
	}
	return profile.Component(index)
}
