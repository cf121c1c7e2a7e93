package topology

// FindMasterNetwork returns the record whose master pin is exactly
// (unitID, compIndex), or nil. Invariant: at most one such record exists.
func (t *Topology) FindMasterNetwork(unitID string, compIndex int) *MasterNetwork {
	for _, g := range t.groups {
		if mn, ok := g.(*MasterNetwork); ok {
			if mn.MasterID == unitID && mn.MasterCompIndex == compIndex {
				return mn
			}
		}
	}
	return nil
}

// FindPeerNetwork returns the peer mesh containing the unit, or nil.
func (t *Topology) FindPeerNetwork(unitID string) *PeerNetwork {
	for _, g := range t.groups {
		if pn, ok := g.(*PeerNetwork); ok && pn.ContainsUnit(unitID) {
			return pn
		}
	}
	return nil
}

// TopLevelNetworks returns every peer mesh plus every master network whose
// master pin is not itself a sub-master member of another master network,
// i.e. the roots of each hierarchy.
func (t *Topology) TopLevelNetworks() []Group {
	var out []Group
	for _, g := range t.groups {
		mn, ok := g.(*MasterNetwork)
		if !ok {
			out = append(out, g)
			continue
		}
		if !t.isSubMasterPin(mn.MasterID, mn.MasterCompIndex) {
			out = append(out, g)
		}
	}
	return out
}

// isSubMasterPin reports whether the pin appears as a sub-master member in
// any master network.
func (t *Topology) isSubMasterPin(unitID string, compIndex int) bool {
	ref := SubMasterMember(unitID, compIndex)
	for _, g := range t.groups {
		if mn, ok := g.(*MasterNetwork); ok && mn.HasMember(ref) {
			return true
		}
	}
	return false
}

// SubNetworks returns the master networks rooted at each sub-master member of
// the given network, one level deep. Callers recurse for deeper trees.
// Sub-master members with no network of their own yet are skipped.
func (t *Topology) SubNetworks(network *MasterNetwork) []*MasterNetwork {
	var out []*MasterNetwork
	for _, ref := range network.Members {
		if !ref.SubMaster {
			continue
		}
		if sub := t.FindMasterNetwork(ref.UnitID, ref.CompIndex); sub != nil {
			out = append(out, sub)
		}
	}
	return out
}

// IsUnitSlaveConnected reports whether the unit is consumed as a slave member
// of any master network.
func (t *Topology) IsUnitSlaveConnected(unitID string) bool {
	ref := SlaveMember(unitID)
	for _, g := range t.groups {
		if mn, ok := g.(*MasterNetwork); ok && mn.HasMember(ref) {
			return true
		}
	}
	return false
}

// IsUnitMasterConnected reports whether the unit operates a non-empty master
// network on any of its pins.
func (t *Topology) IsUnitMasterConnected(unitID string) bool {
	for _, g := range t.groups {
		if mn, ok := g.(*MasterNetwork); ok {
			if mn.MasterID == unitID && len(mn.Members) > 0 {
				return true
			}
		}
	}
	return false
}

// IsUnitConnected reports whether the unit participates in any network record.
func (t *Topology) IsUnitConnected(unitID string) bool {
	for _, g := range t.groups {
		if g.ContainsUnit(unitID) {
			return true
		}
	}
	return false
}
