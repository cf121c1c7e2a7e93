package validation

import "strings"

// SanitizeUnitID normalizes a raw unit id for use in the topology: trims
// whitespace, strips null bytes, replaces the reserved ':' member separator
// and caps the length. Display names are sanitized elsewhere; ids feed the
// member-string codec and must stay unambiguous.
func SanitizeUnitID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, "\x00", "")
	id = strings.ReplaceAll(id, ":", "-")
	if len(id) > MaxUnitIDLength {
		id = id[:MaxUnitIDLength]
	}
	return id
}

// SanitizeDisplayName trims and caps a unit display name. Names are
// presentation-only; they never enter the member codec.
func SanitizeDisplayName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\x00", "")
	const maxName = 120
	if len(name) > maxName {
		name = name[:maxName]
	}
	return name
}
