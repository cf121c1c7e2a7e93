package force

import (
	"github.com/hexcrawl/c3net/pkg/c3"
	"github.com/hexcrawl/c3net/pkg/logging"
	"github.com/hexcrawl/c3net/pkg/pubsub"
	"github.com/hexcrawl/c3net/pkg/topology"
	"github.com/hexcrawl/c3net/pkg/validation"
)

// UnitRecord is the persisted shape of one roster entry.
type UnitRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BattleValue int      `json:"battleValue"`
	Linked      bool     `json:"linked"`
	Equipment   []string `json:"equipment,omitempty"`
}

// SaveFile is the persisted shape of a whole force.
type SaveFile struct {
	ID       string                     `json:"id"`
	Name     string                     `json:"name"`
	Units    []UnitRecord               `json:"units"`
	Networks []validation.NetworkRecord `json:"networks,omitempty"`
}

// Snapshot captures the force into its persisted form.
func (f *Force) Snapshot() *SaveFile {
	save := &SaveFile{
		ID:   f.id,
		Name: f.name,
	}
	for _, u := range f.units {
		save.Units = append(save.Units, UnitRecord{
			ID:          u.UnitID(),
			Name:        u.Name(),
			BattleValue: u.BattleValue(),
			Linked:      u.Linked(),
			Equipment:   u.Equipment(),
		})
	}
	for _, g := range f.topo.Groups() {
		save.Networks = append(save.Networks, encodeGroup(g))
	}
	return save
}

// encodeGroup converts one topology record to its persisted shape.
func encodeGroup(g topology.Group) validation.NetworkRecord {
	rec := validation.NetworkRecord{
		ID:    g.GroupID(),
		Type:  g.GroupClass().WireName(),
		Color: g.GroupColor(),
	}
	switch n := g.(type) {
	case *topology.PeerNetwork:
		rec.PeerIDs = append(rec.PeerIDs, n.PeerIDs...)
	case *topology.MasterNetwork:
		idx := n.MasterCompIndex
		rec.MasterID = n.MasterID
		rec.MasterCompIndex = &idx
		rec.Members = topology.EncodeMembers(n.Members)
	}
	return rec
}

// Load rebuilds a force from its persisted form. Network records are
// validated before the topology is reconstructed; a bad record fails the
// whole load rather than silently dropping state.
func Load(save *SaveFile, log logging.Logger, bus *pubsub.PubSub) (*Force, error) {
	if save == nil {
		return nil, opErr("LoadForce", "force", "", ErrCorruptSave)
	}

	f := New(save.ID, save.Name, log, bus)
	for _, ur := range save.Units {
		u := NewUnit(ur.ID, ur.Name, ur.BattleValue, ur.Linked, ur.Equipment)
		if err := f.AddUnit(u); err != nil {
			return nil, err
		}
	}

	for i := range save.Networks {
		rec := &save.Networks[i]
		if err := validation.ValidateNetworkRecord(rec); err != nil {
			return nil, opErr("LoadForce", "network", rec.ID, err)
		}
		f.restoreGroup(rec)
	}

	// A freshly loaded force is clean until the user touches it.
	f.ClearModified()
	return f, nil
}

// restoreGroup rebuilds one topology record from its validated persisted
// shape. The record's wire type is already known-good.
func (f *Force) restoreGroup(rec *validation.NetworkRecord) {
	class, _ := c3.ClassFromWireName(rec.Type)
	if rec.IsPeer() {
		f.topo.Restore(&topology.PeerNetwork{
			ID:      rec.ID,
			Class:   class,
			Color:   rec.Color,
			PeerIDs: append([]string(nil), rec.PeerIDs...),
		})
		return
	}
	f.topo.Restore(&topology.MasterNetwork{
		ID:              rec.ID,
		Class:           class,
		Color:           rec.Color,
		MasterID:        rec.MasterID,
		MasterCompIndex: *rec.MasterCompIndex,
		Members:         topology.ParseMembers(rec.Members),
	})
}
