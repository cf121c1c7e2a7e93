package c3

// Role is the connection role a communications component plays on the wire.
type Role int

const (
	Master Role = iota
	Slave
	Peer
)

func (r Role) String() string {
	switch r {
	case Master:
		return "Master"
	case Slave:
		return "Slave"
	case Peer:
		return "Peer"
	default:
		return "Unknown"
	}
}

// NetworkClass identifies a family of communications equipment. Components
// can only be linked when their classes fall in the same family.
type NetworkClass int

const (
	ClassC3 NetworkClass = iota
	ClassC3i
	ClassNavalC3
	ClassNovaCEWS
)

func (c NetworkClass) String() string {
	switch c {
	case ClassC3:
		return "C3"
	case ClassC3i:
		return "C3i"
	case ClassNavalC3:
		return "NavalC3"
	case ClassNovaCEWS:
		return "NovaCEWS"
	default:
		return "Unknown"
	}
}

// WireName returns the persisted type tag for a network class.
func (c NetworkClass) WireName() string {
	switch c {
	case ClassC3:
		return "c3"
	case ClassC3i:
		return "c3i"
	case ClassNavalC3:
		return "naval"
	case ClassNovaCEWS:
		return "nova"
	default:
		return "unknown"
	}
}

// ClassFromWireName parses a persisted type tag. The boolean reports whether
// the tag named a known class.
func ClassFromWireName(s string) (NetworkClass, bool) {
	switch s {
	case "c3":
		return ClassC3, true
	case "c3i":
		return ClassC3i, true
	case "naval":
		return ClassNavalC3, true
	case "nova":
		return ClassNovaCEWS, true
	default:
		return ClassC3, false
	}
}

// Compatible reports whether two classes belong to the same equivalence
// family. Classes are their own families, so this is plain equality; the
// equivalence table lives in the equipment-name mapping (see Classify).
func (c NetworkClass) Compatible(other NetworkClass) bool {
	return c == other
}
