package topology

// palette is the fixed set of display colors handed out to network records.
// Colors only distinguish records on screen; nothing in the rules depends on
// them.
var palette = []string{
	"#cc4040", // red
	"#4068cc", // blue
	"#3f9940", // green
	"#b86c24", // orange
	"#8543b8", // purple
	"#2a9d8f", // teal
	"#b23d66", // maroon
	"#6b705c", // olive
}

// nextColor returns the first palette color not used by any current record.
// When every color is in use it wraps around by record count.
func (t *Topology) nextColor() string {
	used := make(map[string]bool, len(t.groups))
	for _, g := range t.groups {
		used[g.GroupColor()] = true
	}
	for _, c := range palette {
		if !used[c] {
			return c
		}
	}
	return palette[len(t.groups)%len(palette)]
}

// pinColor returns the color pre-assigned to a master pin, allocating and
// remembering a fresh one on first use. A master network torn down and
// recreated on the same pin keeps its color.
func (t *Topology) pinColor(unitID string, compIndex int) string {
	key := pinKey{unitID: unitID, compIndex: compIndex}
	if c, ok := t.pinColors[key]; ok {
		return c
	}
	c := t.nextColor()
	t.pinColors[key] = c
	return c
}
