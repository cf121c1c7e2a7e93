package c3

// Component is a single communications slot on a unit. Components are fixed
// by the unit's static definition; indices are stable for the unit's lifetime.
type Component struct {
	Index int
	Role  Role
	Class NetworkClass
}

// Profile is the read-only view of a unit's communications slots, derived
// once from the unit's static equipment list and never mutated afterwards.
type Profile struct {
	components []Component
}

// NewProfile derives a profile from an ordered list of equipment names.
// Names that are not communications hardware are skipped; component indices
// count only the slots that made it into the profile.
func NewProfile(equipment []string) Profile {
	var comps []Component
	for _, name := range equipment {
		class, role, ok := Classify(name)
		if !ok {
			continue
		}
		comps = append(comps, Component{
			Index: len(comps),
			Role:  role,
			Class: class,
		})
	}
	return Profile{components: comps}
}

// Components returns the profile's slots in index order. The returned slice
// is a copy; callers cannot mutate the profile through it.
func (p Profile) Components() []Component {
	out := make([]Component, len(p.components))
	copy(out, p.components)
	return out
}

// Component returns the slot at the given index.
// The boolean reports whether the index exists.
func (p Profile) Component(index int) (Component, bool) {
	if index < 0 || index >= len(p.components) {
		return Component{}, false
	}
	return p.components[index], true
}

// Len returns the number of communications slots on the unit.
func (p Profile) Len() int {
	return len(p.components)
}

// HasEquipment reports whether the unit carries any communications hardware.
func (p Profile) HasEquipment() bool {
	return len(p.components) > 0
}

// Class returns the network class of the unit's first component, which is the
// class used for force-wide compatibility scans (BV tax). The boolean reports
// whether the unit has any components at all.
func (p Profile) Class() (NetworkClass, bool) {
	if len(p.components) == 0 {
		return ClassC3, false
	}
	return p.components[0].Class, true
}

// ProfileSource resolves unit IDs to their communications profiles. It is
// implemented by the force aggregate; the topology engine depends only on
// this interface.
type ProfileSource interface {
	// Profile returns the profile for a unit. The boolean reports whether
	// the unit exists in the current force.
	Profile(unitID string) (Profile, bool)
}
