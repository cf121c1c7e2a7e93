package topology

// Pin identifies one master pin in a hierarchy cycle report.
type Pin struct {
	UnitID    string
	CompIndex int
}

// HierarchyCycle is a detected cycle as a sequence of master pins.
type HierarchyCycle []Pin

// FindHierarchyCycles walks the master-network hierarchy and reports every
// cycle longer than the immediate 2-node reversal the mutator already
// repairs. It is a diagnostic query: Connect never consults it, so legacy
// drag behavior is unchanged.
//
// DFS with three-color marking: WHITE unvisited, GRAY in the recursion stack,
// BLACK finished. A GRAY neighbor means a back edge, which is a cycle.
func (t *Topology) FindHierarchyCycles() []HierarchyCycle {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[pinKey]int)
	parent := make(map[pinKey]pinKey)
	cycles := make([]HierarchyCycle, 0)

	var visit func(pin pinKey)
	visit = func(pin pinKey) {
		color[pin] = gray

		net := t.FindMasterNetwork(pin.unitID, pin.compIndex)
		if net != nil {
			for _, ref := range net.Members {
				if !ref.SubMaster {
					continue
				}
				child := pinKey{unitID: ref.UnitID, compIndex: ref.CompIndex}
				switch color[child] {
				case white:
					parent[child] = pin
					visit(child)
				case gray:
					cycles = append(cycles, extractCycle(child, pin, parent))
				}
			}
		}

		color[pin] = black
	}

	for _, g := range t.groups {
		if mn, ok := g.(*MasterNetwork); ok {
			pin := pinKey{unitID: mn.MasterID, compIndex: mn.MasterCompIndex}
			if color[pin] == white {
				visit(pin)
			}
		}
	}

	return cycles
}

// extractCycle reconstructs the cycle from parent pointers, from the back
// edge's head up to its tail.
func extractCycle(head, tail pinKey, parent map[pinKey]pinKey) HierarchyCycle {
	cycle := HierarchyCycle{{UnitID: tail.unitID, CompIndex: tail.compIndex}}
	for at := tail; at != head; {
		at = parent[at]
		cycle = append(cycle, Pin{UnitID: at.unitID, CompIndex: at.compIndex})
	}
	// Reverse into head-first order
	for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}
	return cycle
}
