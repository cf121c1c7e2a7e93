package api

// ConnectResponse reports the outcome of a connection attempt. Rejected
// attempts are 200s with Valid=false: a rejection is an answer, not an error.
type ConnectResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// RemoveMemberRequest strips a member string from a master network.
type RemoveMemberRequest struct {
	NetworkID string `json:"networkId"`
	Member    string `json:"member"`
}

// RemoveUnitRequest detaches a unit from one network record.
type RemoveUnitRequest struct {
	NetworkID string `json:"networkId"`
	UnitID    string `json:"unitId"`
	// Member optionally pins the exact member string to remove.
	Member string `json:"member,omitempty"`
}

// NetworkResponse is the wire shape of one network record plus its one-level
// sub-networks.
type NetworkResponse struct {
	ID              string            `json:"id"`
	Type            string            `json:"type"`
	Color           string            `json:"color"`
	Kind            string            `json:"kind"`
	PeerIDs         []string          `json:"peerIds,omitempty"`
	MasterID        string            `json:"masterId,omitempty"`
	MasterCompIndex *int              `json:"masterCompIndex,omitempty"`
	Members         []string          `json:"members,omitempty"`
	SubNetworks     []NetworkResponse `json:"subNetworks,omitempty"`
}

// LoadRequest names the saved force to serve.
type LoadRequest struct {
	ForceID string `json:"forceId"`
}

// TaxResponse reports one unit's BV surcharge.
type TaxResponse struct {
	UnitID string `json:"unitId"`
	Tax    int    `json:"tax"`
}

// ForceSummaryResponse reports force-level figures.
type ForceSummaryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Units    int    `json:"units"`
	BaseBV   int    `json:"baseBv"`
	TotalBV  int    `json:"totalBv"`
	Modified bool   `json:"modified"`
	Networks int    `json:"networks"`
}

// CycleResponse reports one diagnosed hierarchy cycle.
type CycleResponse struct {
	Pins []PinResponse `json:"pins"`
}

// PinResponse identifies one master pin.
type PinResponse struct {
	UnitID    string `json:"unitId"`
	CompIndex int    `json:"compIndex"`
}

// ErrorResponse is the wire shape of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
