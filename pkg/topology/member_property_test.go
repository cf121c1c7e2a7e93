package topology

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestMemberCodecProperties verifies the persisted member encoding with
// property-based testing: these properties must hold for any well-formed
// unit id (sanitized ids never contain the ':' separator).
func TestMemberCodecProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	unitIDGen := gen.Identifier()

	properties.Property("slave refs round-trip through the string form", prop.ForAll(
		func(unitID string) bool {
			ref := SlaveMember(unitID)
			return ParseMember(ref.Encode()) == ref
		},
		unitIDGen,
	))

	properties.Property("sub-master refs round-trip through the string form", prop.ForAll(
		func(unitID string, compIdx int) bool {
			ref := SubMasterMember(unitID, compIdx)
			return ParseMember(ref.Encode()) == ref
		},
		unitIDGen,
		gen.IntRange(0, 32),
	))

	properties.Property("encoded member lists decode to the original list", prop.ForAll(
		func(unitIDs []string) bool {
			members := make([]MemberRef, 0, len(unitIDs))
			for i, id := range unitIDs {
				if i%2 == 0 {
					members = append(members, SlaveMember(id))
				} else {
					members = append(members, SubMasterMember(id, i))
				}
			}
			decoded := ParseMembers(EncodeMembers(members))
			if len(decoded) != len(members) {
				return false
			}
			for i := range members {
				if decoded[i] != members[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(unitIDGen),
	))

	properties.Property("the separator is the only sub-master marker", prop.ForAll(
		func(unitID string) bool {
			encoded := SlaveMember(unitID).Encode()
			return !strings.Contains(encoded, memberSeparator)
		},
		unitIDGen,
	))

	properties.TestingRun(t)
}
