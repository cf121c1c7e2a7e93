package bv

import (
	"testing"

	"github.com/hexcrawl/c3net/pkg/c3"
)

type testUnit struct {
	id     string
	bv     int
	linked bool
	class  c3.NetworkClass
	hasC3  bool
}

func (u *testUnit) UnitID() string    { return u.id }
func (u *testUnit) BattleValue() int  { return u.bv }
func (u *testUnit) Linked() bool      { return u.linked }
func (u *testUnit) NetworkClass() (c3.NetworkClass, bool) {
	return u.class, u.hasC3
}

func c3Unit(id string, bv int, linked bool) *testUnit {
	return &testUnit{id: id, bv: bv, linked: linked, class: c3.ClassC3, hasC3: true}
}

func TestTax_ThreeLinkedUnits(t *testing.T) {
	u1 := c3Unit("u1", 100, true)
	u2 := c3Unit("u2", 80, true)
	u3 := c3Unit("u3", 90, true)
	all := []Unit{u1, u2, u3}

	// round((100+80+90)*0.05) = round(13.5) = 14
	if got := Tax(u2, all); got != 14 {
		t.Errorf("Tax(u2) = %d, want 14", got)
	}
	// the pool is the same for every member
	if got := Tax(u1, all); got != 14 {
		t.Errorf("Tax(u1) = %d, want 14", got)
	}
}

func TestTax_UnlinkedUnitPaysNothing(t *testing.T) {
	u1 := c3Unit("u1", 100, false)
	u2 := c3Unit("u2", 80, true)
	u3 := c3Unit("u3", 90, true)
	all := []Unit{u1, u2, u3}

	if got := Tax(u1, all); got != 0 {
		t.Errorf("unlinked unit taxed %d", got)
	}
	// and it does not contribute to anyone else's pool
	// round((80+90)*0.05) = round(8.5) = 9
	if got := Tax(u2, all); got != 9 {
		t.Errorf("Tax(u2) = %d, want 9", got)
	}
}

func TestTax_SingleLinkedUnitPaysNothing(t *testing.T) {
	u1 := c3Unit("u1", 100, true)
	u2 := c3Unit("u2", 80, false)
	all := []Unit{u1, u2}

	if got := Tax(u1, all); got != 0 {
		t.Errorf("a lone linked unit was taxed %d", got)
	}
}

func TestTax_IncompatibleClassesDoNotPool(t *testing.T) {
	u1 := c3Unit("u1", 100, true)
	naval := &testUnit{id: "n1", bv: 500, linked: true, class: c3.ClassNavalC3, hasC3: true}
	all := []Unit{u1, naval}

	if got := Tax(u1, all); got != 0 {
		t.Errorf("cross-class units pooled: tax %d", got)
	}
	if got := Tax(naval, all); got != 0 {
		t.Errorf("cross-class units pooled: tax %d", got)
	}
}

func TestTax_UnitWithoutEquipment(t *testing.T) {
	bare := &testUnit{id: "b1", bv: 100, linked: true}
	u2 := c3Unit("u2", 80, true)

	if got := Tax(bare, []Unit{bare, u2}); got != 0 {
		t.Errorf("unit without comms gear taxed %d", got)
	}
}

func TestTax_NilSafety(t *testing.T) {
	if got := Tax(nil, nil); got != 0 {
		t.Errorf("Tax(nil) = %d", got)
	}
	u1 := c3Unit("u1", 100, true)
	u2 := c3Unit("u2", 100, true)
	if got := Tax(u1, []Unit{u1, nil, u2}); got != 10 {
		t.Errorf("nil entries must be skipped, got %d", got)
	}
}

func TestForceTax(t *testing.T) {
	u1 := c3Unit("u1", 100, true)
	u2 := c3Unit("u2", 80, true)
	u3 := c3Unit("u3", 90, false)
	all := []Unit{u1, u2, u3}

	// each of u1, u2 pays round(180*0.05) = 9
	if got := ForceTax(all); got != 18 {
		t.Errorf("ForceTax = %d, want 18", got)
	}
}
