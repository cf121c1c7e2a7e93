package topology

import (
	"github.com/hexcrawl/c3net/pkg/c3"
	"github.com/hexcrawl/c3net/pkg/logging"
)

// Mutator is the only component allowed to create, merge, split or delete
// network records. Every mutation either fully succeeds and leaves the
// topology invariant-consistent, or is a no-op reported back as a rejection.
type Mutator struct {
	topo  *Topology
	units c3.ProfileSource
	check *Validator
	log   logging.Logger
}

// NewMutator creates a mutator over the given topology and unit source.
// A nil logger is replaced with a no-op logger.
func NewMutator(topo *Topology, units c3.ProfileSource, log logging.Logger) *Mutator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Mutator{
		topo:  topo,
		units: units,
		check: NewValidator(units, topo),
		log:   log,
	}
}

// Validator returns the legality checker the mutator consults, for callers
// that want to pre-flight a drag without mutating.
func (m *Mutator) Validator() *Validator {
	return m.check
}

// Connect links the source pin to the target pin, dispatching on the role
// pair of the two components. On success the topology-changed callbacks fire;
// on rejection nothing is touched.
func (m *Mutator) Connect(srcUnit string, srcIdx int, tgtUnit string, tgtIdx int) ConnectCheck {
	res := m.check.CanConnect(srcUnit, srcIdx, tgtUnit, tgtIdx)
	if !res.Valid {
		m.log.Debug("connection rejected",
			logging.String("source", srcUnit),
			logging.String("target", tgtUnit),
			logging.String("reason", res.Reason))
		return res
	}

	// CanConnect already resolved both components.
	src, _ := m.profileComponent(srcUnit, srcIdx)
	tgt, _ := m.profileComponent(tgtUnit, tgtIdx)

	switch {
	case src.Role == c3.Peer && tgt.Role == c3.Peer:
		m.connectPeers(srcUnit, tgtUnit, src.Class)
	case src.Role == c3.Master && tgt.Role == c3.Slave:
		m.connectMasterSlave(srcUnit, srcIdx, tgtUnit, src.Class)
	case src.Role == c3.Slave && tgt.Role == c3.Master:
		m.connectMasterSlave(tgtUnit, tgtIdx, srcUnit, tgt.Class)
	case src.Role == c3.Master && tgt.Role == c3.Master:
		m.connectMasters(srcUnit, srcIdx, tgtUnit, tgtIdx, src.Class)
	default:
		// Unreachable: CanConnect admits no other role pair.
		return invalid(ReasonIncompatible)
	}

	m.topo.changed()
	return valid()
}

// connectPeers joins two peer pins: create a fresh mesh, grow an existing
// one, or merge two meshes into the source's surviving record.
func (m *Mutator) connectPeers(a, b string, class c3.NetworkClass) {
	netA := m.topo.FindPeerNetwork(a)
	netB := m.topo.FindPeerNetwork(b)

	switch {
	case netA == nil && netB == nil:
		pn := &PeerNetwork{
			ID:      NewGroupID(),
			Class:   class,
			Color:   m.topo.nextColor(),
			PeerIDs: []string{a, b},
		}
		m.topo.add(pn)
		m.log.Debug("peer network created", logging.String("network", pn.ID))

	case netA != nil && netB == nil:
		netA.AddPeer(b)

	case netA == nil && netB != nil:
		netB.AddPeer(a)

	case netA.ID == netB.ID:
		// Already meshed together.

	default:
		// Merge: union into the source's mesh, discard the other record.
		for _, id := range netB.PeerIDs {
			netA.AddPeer(id)
		}
		m.topo.remove(netB.ID)
		m.log.Debug("peer networks merged",
			logging.String("surviving", netA.ID),
			logging.String("absorbed", netB.ID))
	}
}

// connectMasterSlave appends the slave unit to the master pin's network,
// creating the network on first use. Membership exclusivity: the slave is
// first stripped from every member list anywhere in the topology.
func (m *Mutator) connectMasterSlave(masterUnit string, masterIdx int, slaveUnit string, class c3.NetworkClass) {
	net := m.findOrCreateMasterNetwork(masterUnit, masterIdx, class)
	m.removeSlaveFromOthers(slaveUnit, net.ID)
	net.AddMember(SlaveMember(slaveUnit))
}

// connectMasters links two master pins into a hierarchy. The pin the user
// dragged from always ends up as the parent: if the reverse edge already
// exists it is torn down first, so an immediate 2-cycle can never form.
// Longer cycles are not checked here; see FindHierarchyCycles.
func (m *Mutator) connectMasters(fromUnit string, fromIdx int, tgtUnit string, tgtIdx int, class c3.NetworkClass) {
	if tgtNet := m.topo.FindMasterNetwork(tgtUnit, tgtIdx); tgtNet != nil {
		reverse := SubMasterMember(fromUnit, fromIdx)
		if tgtNet.RemoveMember(reverse) {
			m.log.Debug("reverse edge removed",
				logging.String("network", tgtNet.ID),
				logging.String("member", reverse.Encode()))
			m.deleteIfEmpty(tgtNet)
		}
	}

	net := m.findOrCreateMasterNetwork(fromUnit, fromIdx, class)
	net.AddMember(SubMasterMember(tgtUnit, tgtIdx))
}

// findOrCreateMasterNetwork returns the network for a master pin, creating it
// with the pin's pre-assigned color on first use.
func (m *Mutator) findOrCreateMasterNetwork(unitID string, compIdx int, class c3.NetworkClass) *MasterNetwork {
	if net := m.topo.FindMasterNetwork(unitID, compIdx); net != nil {
		return net
	}
	net := &MasterNetwork{
		ID:              NewGroupID(),
		Class:           class,
		Color:           m.topo.pinColor(unitID, compIdx),
		MasterID:        unitID,
		MasterCompIndex: compIdx,
	}
	m.topo.add(net)
	m.log.Debug("master network created",
		logging.String("network", net.ID),
		logging.String("master", unitID),
		logging.Int("component", compIdx))
	return net
}

// removeSlaveFromOthers strips the unit's slave memberships from every master
// network except the one it is about to join, deleting records that empty out.
func (m *Mutator) removeSlaveFromOthers(unitID string, exceptID string) {
	for _, g := range m.topo.Groups() {
		mn, ok := g.(*MasterNetwork)
		if !ok || mn.ID == exceptID {
			continue
		}
		if mn.RemoveSlave(unitID) {
			m.deleteIfEmpty(mn)
		}
	}
}

// RemoveMember strips a member from the identified master network, deleting
// the record once its member list is empty. Reports whether anything changed;
// unknown network ids defensively no-op.
func (m *Mutator) RemoveMember(networkID string, ref MemberRef) bool {
	g := m.topo.Group(networkID)
	mn, ok := g.(*MasterNetwork)
	if !ok || !mn.RemoveMember(ref) {
		return false
	}
	m.deleteIfEmpty(mn)
	m.topo.changed()
	return true
}

// RemoveUnitFromNetwork detaches a unit from one record. For a peer mesh the
// unit leaves PeerIDs and the mesh dies below two peers; for a master network
// this delegates to RemoveMember. A nil ref removes every reference to the
// unit in the member list. Reports whether anything changed.
func (m *Mutator) RemoveUnitFromNetwork(networkID string, unitID string, ref *MemberRef) bool {
	switch g := m.topo.Group(networkID).(type) {
	case *PeerNetwork:
		if !g.RemovePeer(unitID) {
			return false
		}
		if len(g.PeerIDs) < 2 {
			m.topo.remove(g.ID)
			m.log.Debug("peer network deleted", logging.String("network", g.ID))
		}
		m.topo.changed()
		return true

	case *MasterNetwork:
		if ref != nil {
			return m.RemoveMember(networkID, *ref)
		}
		changed := false
		for i := len(g.Members) - 1; i >= 0; i-- {
			if g.Members[i].UnitID == unitID {
				g.RemoveMember(g.Members[i])
				changed = true
			}
		}
		if !changed {
			return false
		}
		m.deleteIfEmpty(g)
		m.topo.changed()
		return true

	default:
		return false
	}
}

// DetachUnit removes every trace of a unit from the topology: its peer
// memberships, its slave and sub-master memberships, and the networks
// mastered by its pins. Used when a unit leaves the force. Reports whether
// anything changed.
func (m *Mutator) DetachUnit(unitID string) bool {
	changed := false
	for _, g := range m.topo.Groups() {
		switch n := g.(type) {
		case *PeerNetwork:
			if !n.RemovePeer(unitID) {
				continue
			}
			changed = true
			if len(n.PeerIDs) < 2 {
				m.topo.remove(n.ID)
			}

		case *MasterNetwork:
			if n.MasterID == unitID {
				m.topo.remove(n.ID)
				changed = true
				continue
			}
			removed := false
			for i := len(n.Members) - 1; i >= 0; i-- {
				if n.Members[i].UnitID == unitID {
					n.RemoveMember(n.Members[i])
					removed = true
				}
			}
			if removed {
				changed = true
				m.deleteIfEmpty(n)
			}
		}
	}
	if changed {
		m.topo.changed()
		m.log.Debug("unit detached", logging.String("unit", unitID))
	}
	return changed
}

// ClearAll empties the topology.
func (m *Mutator) ClearAll() {
	if m.topo.Len() == 0 {
		return
	}
	m.topo.clear()
	m.topo.changed()
	m.log.Info("topology cleared")
}

// deleteIfEmpty drops a master network the instant its member list empties.
func (m *Mutator) deleteIfEmpty(net *MasterNetwork) {
	if len(net.Members) == 0 {
		m.topo.remove(net.ID)
		m.log.Debug("master network deleted", logging.String("network", net.ID))
	}
}

func (m *Mutator) profileComponent(unitID string, index int) (c3.Component, bool) {
	profile, ok := m.units.Profile(unitID)
	if !ok {
		return c3.Component{}, false
	}
	return profile.Component(index)
}
