package force

import (
	"github.com/hexcrawl/c3net/pkg/c3"
	"github.com/hexcrawl/c3net/pkg/validation"
)

// Unit is one force member: a stable id, its battle value, the "linked" flag
// from the unit's static definition, and the communications profile derived
// from its equipment. The profile never changes after construction.
type Unit struct {
	id        string
	name      string
	bv        int
	linked    bool
	equipment []string
	profile   c3.Profile
}

// NewUnit creates a unit. The id is sanitized for the member-string codec;
// the communications profile is derived from the equipment list once.
func NewUnit(id, name string, battleValue int, linked bool, equipment []string) *Unit {
	eq := make([]string, len(equipment))
	copy(eq, equipment)
	return &Unit{
		id:        validation.SanitizeUnitID(id),
		name:      validation.SanitizeDisplayName(name),
		bv:        battleValue,
		linked:    linked,
		equipment: eq,
		profile:   c3.NewProfile(eq),
	}
}

// UnitID returns the unit's stable id.
func (u *Unit) UnitID() string { return u.id }

// Name returns the unit's display name.
func (u *Unit) Name() string { return u.name }

// BattleValue returns the unit's base battle value.
func (u *Unit) BattleValue() int { return u.bv }

// Linked reports whether the unit is flagged as network-linked.
func (u *Unit) Linked() bool { return u.linked }

// SetLinked flips the linked flag.
func (u *Unit) SetLinked(linked bool) { u.linked = linked }

// Equipment returns a copy of the unit's static equipment list.
func (u *Unit) Equipment() []string {
	out := make([]string, len(u.equipment))
	copy(out, u.equipment)
	return out
}

// Profile returns the unit's communications profile.
func (u *Unit) Profile() c3.Profile { return u.profile }

// NetworkClass returns the unit's static network class; false for units
// without communications equipment.
func (u *Unit) NetworkClass() (c3.NetworkClass, bool) {
	return u.profile.Class()
}
