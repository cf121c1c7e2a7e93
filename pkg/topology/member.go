package topology

import (
	"fmt"
	"strconv"
	"strings"
)

// memberSeparator splits a unit id from a component index in the persisted
// member encoding. Unit ids must never contain it (see validation.SanitizeUnitID).
const memberSeparator = ":"

// MemberRef identifies one entry in a master network's member list: either a
// slave unit (bare unit id) or another master pin acting as a sub-master
// ("{unitId}:{compIndex}"). The encoded string is the only thing that
// distinguishes the two cases in the persisted form.
type MemberRef struct {
	UnitID    string
	CompIndex int
	SubMaster bool
}

// SlaveMember creates a reference to a slave unit.
func SlaveMember(unitID string) MemberRef {
	return MemberRef{UnitID: unitID}
}

// SubMasterMember creates a reference to another unit's master pin.
func SubMasterMember(unitID string, compIndex int) MemberRef {
	return MemberRef{UnitID: unitID, CompIndex: compIndex, SubMaster: true}
}

// ParseMember decodes a persisted member string. Anything that does not parse
// as "{unitId}:{compIndex}" is treated as a slave reference; a malformed
// component index falls open to the slave interpretation rather than erroring.
func ParseMember(s string) MemberRef {
	idx := strings.LastIndex(s, memberSeparator)
	if idx < 0 {
		return SlaveMember(s)
	}
	compIdx, err := strconv.Atoi(s[idx+len(memberSeparator):])
	if err != nil || compIdx < 0 {
		return SlaveMember(s)
	}
	return SubMasterMember(s[:idx], compIdx)
}

// Encode returns the persisted string form of the reference.
func (m MemberRef) Encode() string {
	if m.SubMaster {
		return fmt.Sprintf("%s%s%d", m.UnitID, memberSeparator, m.CompIndex)
	}
	return m.UnitID
}

// String implements fmt.Stringer using the persisted encoding.
func (m MemberRef) String() string {
	return m.Encode()
}

// EncodeMembers encodes an ordered member list to its persisted form.
func EncodeMembers(members []MemberRef) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Encode()
	}
	return out
}

// ParseMembers decodes an ordered persisted member list.
func ParseMembers(encoded []string) []MemberRef {
	out := make([]MemberRef, len(encoded))
	for i, s := range encoded {
		out[i] = ParseMember(s)
	}
	return out
}
