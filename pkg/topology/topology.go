package topology

import "golang.org/x/exp/slices"

// pinKey identifies one master pin: a unit plus a component index.
type pinKey struct {
	unitID    string
	compIndex int
}

// ChangeFunc is invoked after every mutation that alters the topology.
// The owning force aggregate registers one to set its modified flag and
// notify whatever wants to redraw; the engine itself never persists.
type ChangeFunc func()

// Topology is the full collection of network records for one force. It is a
// plain mutable collection: reads and writes operate on it directly, and the
// single-writer model means callers must not interleave mutations from
// concurrent goroutines.
type Topology struct {
	groups    []Group
	pinColors map[pinKey]string
	onChange  []ChangeFunc
}

// New creates an empty topology.
func New() *Topology {
	return &Topology{
		pinColors: make(map[pinKey]string),
	}
}

// OnChange registers a callback fired after every successful mutation.
func (t *Topology) OnChange(fn ChangeFunc) {
	if fn != nil {
		t.onChange = append(t.onChange, fn)
	}
}

// changed fires the registered change callbacks.
func (t *Topology) changed() {
	for _, fn := range t.onChange {
		fn()
	}
}

// Groups returns the current records. The slice is a copy but the records
// themselves are shared; callers treat them as read-only.
func (t *Topology) Groups() []Group {
	out := make([]Group, len(t.groups))
	copy(out, t.groups)
	return out
}

// Len returns the number of network records.
func (t *Topology) Len() int {
	return len(t.groups)
}

// Group returns the record with the given id, or nil.
func (t *Topology) Group(id string) Group {
	for _, g := range t.groups {
		if g.GroupID() == id {
			return g
		}
	}
	return nil
}

// Restore inserts a record rebuilt from persisted state. Change callbacks do
// not fire: loading is not a mutation. Master pins reclaim their persisted
// color.
func (t *Topology) Restore(g Group) {
	t.add(g)
	if mn, ok := g.(*MasterNetwork); ok {
		t.pinColors[pinKey{unitID: mn.MasterID, compIndex: mn.MasterCompIndex}] = mn.Color
	}
}

// add appends a record to the collection.
func (t *Topology) add(g Group) {
	t.groups = append(t.groups, g)
}

// remove deletes the record with the given id.
// Reports whether a record was removed.
func (t *Topology) remove(id string) bool {
	idx := slices.IndexFunc(t.groups, func(g Group) bool { return g.GroupID() == id })
	if idx < 0 {
		return false
	}
	t.groups = slices.Delete(t.groups, idx, idx+1)
	return true
}

// clear drops every record. Pin colors are kept so recreated master networks
// come back in their old colors.
func (t *Topology) clear() {
	t.groups = nil
}
