// Package bv derives the battle-value surcharge ("tax") paid by units that
// share a compatible communications network class.
package bv

import (
	"math"

	"github.com/hexcrawl/c3net/pkg/c3"
)

// TaxRate is the fraction of pooled battle value each networked unit pays.
const TaxRate = 0.05

// Unit is the read-only view of a force unit the calculator needs. The force
// aggregate's unit type implements it.
type Unit interface {
	// UnitID returns the unit's stable id.
	UnitID() string
	// BattleValue returns the unit's base battle value.
	BattleValue() int
	// Linked reports whether the unit is flagged as network-linked.
	Linked() bool
	// NetworkClass returns the unit's static network class; the boolean is
	// false for units without communications equipment.
	NetworkClass() (c3.NetworkClass, bool)
}

// Tax computes the surcharge for one unit. The pool is every linked unit in
// the force whose static class is compatible with the unit's, including the
// unit itself. This is a force-wide compatibility scan, not a traversal of
// the actual connected component: any unit that could plug into a compatible
// network pays a share of the cost.
func Tax(unit Unit, allUnits []Unit) int {
	if unit == nil || !unit.Linked() {
		return 0
	}
	class, ok := unit.NetworkClass()
	if !ok {
		return 0
	}

	pool := 0
	count := 0
	for _, u := range allUnits {
		if u == nil || !u.Linked() {
			continue
		}
		uClass, ok := u.NetworkClass()
		if !ok || !class.Compatible(uClass) {
			continue
		}
		pool += u.BattleValue()
		count++
	}

	// A network of one is no network.
	if count < 2 {
		return 0
	}

	return int(math.Round(float64(pool) * TaxRate))
}

// ForceTax computes the total surcharge across a force: the sum of each
// unit's individual tax.
func ForceTax(allUnits []Unit) int {
	total := 0
	for _, u := range allUnits {
		total += Tax(u, allUnits)
	}
	return total
}
