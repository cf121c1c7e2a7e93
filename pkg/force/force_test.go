package force

import (
	"errors"
	"testing"
	"time"

	"github.com/hexcrawl/c3net/pkg/pubsub"
)

func lance(t *testing.T) *Force {
	t.Helper()
	f := New("force-1", "Test Lance", nil, nil)
	units := []*Unit{
		NewUnit("m1", "Command Mech", 1200, true, []string{"C3 Master"}),
		NewUnit("s1", "Scout Mech", 600, true, []string{"C3 Slave"}),
		NewUnit("s2", "Fire Mech", 900, true, []string{"C3 Slave"}),
		NewUnit("p1", "Lancer", 800, true, []string{"C3i"}),
		NewUnit("p2", "Striker", 700, true, []string{"C3i"}),
		NewUnit("b1", "Bruiser", 1500, false, nil),
	}
	for _, u := range units {
		if err := f.AddUnit(u); err != nil {
			t.Fatalf("AddUnit(%s): %v", u.UnitID(), err)
		}
	}
	return f
}

func TestAddUnit_DuplicateRejected(t *testing.T) {
	f := lance(t)
	err := f.AddUnit(NewUnit("m1", "Imposter", 1, false, nil))
	if !errors.Is(err, ErrDuplicateUnit) {
		t.Errorf("expected ErrDuplicateUnit, got %v", err)
	}
	if f.Len() != 6 {
		t.Errorf("roster size changed on rejected add: %d", f.Len())
	}
}

func TestForce_ProfileSource(t *testing.T) {
	f := lance(t)
	p, ok := f.Profile("m1")
	if !ok || p.Len() != 1 {
		t.Errorf("Profile(m1) = %v, %v", p, ok)
	}
	if _, ok := f.Profile("ghost"); ok {
		t.Error("unknown unit should have no profile")
	}
}

func TestRemoveUnit_DetachesFromTopology(t *testing.T) {
	f := lance(t)
	m := f.Mutator()

	if res := m.Connect("m1", 0, "s1", 0); !res.Valid {
		t.Fatalf("connect rejected: %s", res.Reason)
	}
	if res := m.Connect("m1", 0, "s2", 0); !res.Valid {
		t.Fatalf("connect rejected: %s", res.Reason)
	}

	if err := f.RemoveUnit("s1"); err != nil {
		t.Fatalf("RemoveUnit: %v", err)
	}

	net := f.Topology().FindMasterNetwork("m1", 0)
	if net == nil {
		t.Fatal("network should survive with one member left")
	}
	if f.Topology().IsUnitConnected("s1") {
		t.Error("removed unit still in the topology")
	}
	if f.Unit("s1") != nil {
		t.Error("removed unit still in the roster")
	}

	if err := f.RemoveUnit("ghost"); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestRemoveUnit_MasterTearsDownItsNetwork(t *testing.T) {
	f := lance(t)
	m := f.Mutator()
	m.Connect("m1", 0, "s1", 0)

	if err := f.RemoveUnit("m1"); err != nil {
		t.Fatalf("RemoveUnit: %v", err)
	}
	if f.Topology().Len() != 0 {
		t.Error("master's network should be gone with the master")
	}
}

func TestModifiedFlag_TopologyMutationsFlipIt(t *testing.T) {
	f := lance(t)
	f.ClearModified()

	res := f.Mutator().Connect("p1", 0, "p2", 0)
	if !res.Valid {
		t.Fatalf("connect rejected: %s", res.Reason)
	}
	if !f.Modified() {
		t.Error("successful mutation must mark the force modified")
	}

	f.ClearModified()
	f.Mutator().Connect("s1", 0, "s2", 0)
	if f.Modified() {
		t.Error("rejected mutation must not mark the force modified")
	}
}

func TestTopologyChanged_PublishesEvent(t *testing.T) {
	bus := pubsub.New()
	defer bus.Close()
	sub := bus.Subscribe(pubsub.TopicTopologyChanged)

	f := New("force-2", "Bus Lance", nil, bus)
	f.AddUnit(NewUnit("p1", "", 100, true, []string{"C3i"}))
	f.AddUnit(NewUnit("p2", "", 100, true, []string{"C3i"}))
	f.Mutator().Connect("p1", 0, "p2", 0)

	select {
	case evt := <-sub.Channel():
		if evt.Payload != "force-2" {
			t.Errorf("unexpected payload: %v", evt.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no topology-changed event published")
	}
}

func TestBV_Totals(t *testing.T) {
	f := lance(t)

	if got := f.BaseBV(); got != 5700 {
		t.Fatalf("BaseBV = %d, want 5700", got)
	}

	// C3 pool: m1+s1+s2 = 2700, each pays round(135) = 135.
	// C3i pool: p1+p2 = 1500, each pays round(75) = 75.
	if got := f.Tax("s1"); got != 135 {
		t.Errorf("Tax(s1) = %d, want 135", got)
	}
	if got := f.Tax("p1"); got != 75 {
		t.Errorf("Tax(p1) = %d, want 75", got)
	}
	if got := f.Tax("b1"); got != 0 {
		t.Errorf("Tax(b1) = %d, want 0 for unlinked unit", got)
	}
	if got := f.Tax("ghost"); got != 0 {
		t.Errorf("Tax(ghost) = %d, want 0", got)
	}

	want := 5700 + 3*135 + 2*75
	if got := f.TotalBV(); got != want {
		t.Errorf("TotalBV = %d, want %d", got, want)
	}
}

func TestUnit_IDSanitized(t *testing.T) {
	u := NewUnit(" bad:id ", "Unit", 1, false, nil)
	if u.UnitID() != "bad-id" {
		t.Errorf("id not sanitized: %q", u.UnitID())
	}
}
