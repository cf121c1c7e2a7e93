package c3

import "strings"

// equipmentSpec is one row of the static equivalence table: a known piece of
// communications hardware and the class/role it resolves to. Differently-named
// but functionally equivalent variants ("C3 Slave", "C3 Boosted Slave", "BC3")
// map to the same class so their units can still connect.
type equipmentSpec struct {
	Class NetworkClass
	Role  Role
}

// equipmentTable maps canonical (lowercased) equipment names to their spec.
var equipmentTable = map[string]equipmentSpec{
	"c3 master":                 {ClassC3, Master},
	"c3 company command master": {ClassC3, Master},
	"c3 boosted master":         {ClassC3, Master},
	"c3 emergency master":       {ClassC3, Master},
	"c3 slave":                  {ClassC3, Slave},
	"c3 boosted slave":          {ClassC3, Slave},
	"bc3":                       {ClassC3, Slave},
	"c3i":                       {ClassC3i, Peer},
	"improved c3":               {ClassC3i, Peer},
	"bc3i":                      {ClassC3i, Peer},
	"naval c3":                  {ClassNavalC3, Peer},
	"nova cews":                 {ClassNovaCEWS, Peer},
}

// Classify resolves an equipment name to its network class and role.
// Matching is case-insensitive and ignores surrounding whitespace.
// The boolean reports whether the name is known communications hardware.
func Classify(name string) (NetworkClass, Role, bool) {
	spec, ok := equipmentTable[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ClassC3, Slave, false
	}
	return spec.Class, spec.Role, true
}

// IsNetworkEquipment reports whether the name is in the equivalence table.
func IsNetworkEquipment(name string) bool {
	_, _, ok := Classify(name)
	return ok
}
