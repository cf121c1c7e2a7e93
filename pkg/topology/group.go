package topology

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/hexcrawl/c3net/pkg/c3"
)

// Group is one persisted network record: either a peer mesh or one node of a
// master/slave hierarchy.
type Group interface {
	// GroupID returns the record's unique id.
	GroupID() string
	// GroupClass returns the network class shared by every member.
	GroupClass() c3.NetworkClass
	// GroupColor returns the display color assigned to the record.
	GroupColor() string
	// ContainsUnit reports whether the unit participates in this record.
	ContainsUnit(unitID string) bool
}

// PeerNetwork is a symmetric mesh with no distinguished hub.
// It is only valid while it holds at least two peers.
type PeerNetwork struct {
	ID      string
	Class   c3.NetworkClass
	Color   string
	PeerIDs []string
}

func (p *PeerNetwork) GroupID() string             { return p.ID }
func (p *PeerNetwork) GroupClass() c3.NetworkClass { return p.Class }
func (p *PeerNetwork) GroupColor() string          { return p.Color }

func (p *PeerNetwork) ContainsUnit(unitID string) bool {
	return slices.Contains(p.PeerIDs, unitID)
}

// AddPeer adds a unit to the mesh. Adding an existing peer is a no-op.
// Reports whether the mesh changed.
func (p *PeerNetwork) AddPeer(unitID string) bool {
	if slices.Contains(p.PeerIDs, unitID) {
		return false
	}
	p.PeerIDs = append(p.PeerIDs, unitID)
	return true
}

// RemovePeer removes a unit from the mesh. Reports whether the mesh changed.
func (p *PeerNetwork) RemovePeer(unitID string) bool {
	idx := slices.Index(p.PeerIDs, unitID)
	if idx < 0 {
		return false
	}
	p.PeerIDs = slices.Delete(p.PeerIDs, idx, idx+1)
	return true
}

// MasterNetwork is one node of a hierarchy: a master pin plus its ordered
// member list. There is never more than one record for the same
// (MasterID, MasterCompIndex) pin.
type MasterNetwork struct {
	ID              string
	Class           c3.NetworkClass
	Color           string
	MasterID        string
	MasterCompIndex int
	Members         []MemberRef
}

func (m *MasterNetwork) GroupID() string             { return m.ID }
func (m *MasterNetwork) GroupClass() c3.NetworkClass { return m.Class }
func (m *MasterNetwork) GroupColor() string          { return m.Color }

func (m *MasterNetwork) ContainsUnit(unitID string) bool {
	if m.MasterID == unitID {
		return true
	}
	for _, ref := range m.Members {
		if ref.UnitID == unitID {
			return true
		}
	}
	return false
}

// HasMember reports whether the exact reference is in the member list.
func (m *MasterNetwork) HasMember(ref MemberRef) bool {
	return slices.Contains(m.Members, ref)
}

// AddMember appends a reference. Appending an existing reference is a no-op.
// Reports whether the list changed.
func (m *MasterNetwork) AddMember(ref MemberRef) bool {
	if slices.Contains(m.Members, ref) {
		return false
	}
	m.Members = append(m.Members, ref)
	return true
}

// RemoveMember removes the exact reference. Reports whether the list changed.
func (m *MasterNetwork) RemoveMember(ref MemberRef) bool {
	idx := slices.Index(m.Members, ref)
	if idx < 0 {
		return false
	}
	m.Members = slices.Delete(m.Members, idx, idx+1)
	return true
}

// RemoveSlave strips every slave reference to the unit from the member list.
// Sub-master references are left alone. Reports whether the list changed.
func (m *MasterNetwork) RemoveSlave(unitID string) bool {
	changed := false
	for i := len(m.Members) - 1; i >= 0; i-- {
		if !m.Members[i].SubMaster && m.Members[i].UnitID == unitID {
			m.Members = slices.Delete(m.Members, i, i+1)
			changed = true
		}
	}
	return changed
}

// NewGroupID allocates a fresh network record id.
func NewGroupID() string {
	return uuid.NewString()
}
