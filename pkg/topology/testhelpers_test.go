package topology

import (
	"github.com/hexcrawl/c3net/pkg/c3"
)

// fakeUnits is a ProfileSource backed by a plain equipment map.
type fakeUnits map[string][]string

func (f fakeUnits) Profile(unitID string) (c3.Profile, bool) {
	equipment, ok := f[unitID]
	if !ok {
		return c3.Profile{}, false
	}
	return c3.NewProfile(equipment), true
}

// standardForce is a small force covering every role pairing the engine has
// to handle: C3 masters and slaves, C3i peers, and a unit with no comms gear.
func standardForce() fakeUnits {
	return fakeUnits{
		"masterA": {"C3 Master"},
		"masterB": {"C3 Master"},
		"masterC": {"C3 Master"},
		"slaveA":  {"C3 Slave"},
		"slaveB":  {"C3 Slave"},
		"slaveC":  {"BC3"},
		"peerA":   {"C3i"},
		"peerB":   {"C3i"},
		"peerC":   {"C3i"},
		"peerD":   {"C3i"},
		"naval":   {"Naval C3"},
		"bare":    {"Medium Laser"},
	}
}

func newTestMutator(units fakeUnits) (*Mutator, *Topology) {
	topo := New()
	return NewMutator(topo, units, nil), topo
}

func mustConnect(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, m *Mutator, srcUnit string, srcIdx int, tgtUnit string, tgtIdx int) {
	t.Helper()
	res := m.Connect(srcUnit, srcIdx, tgtUnit, tgtIdx)
	if !res.Valid {
		t.Fatalf("Connect(%s,%d -> %s,%d) rejected: %s", srcUnit, srcIdx, tgtUnit, tgtIdx, res.Reason)
	}
}
