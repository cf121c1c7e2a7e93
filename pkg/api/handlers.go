package api

import (
	"errors"
	"net/http"

	"github.com/hexcrawl/c3net/pkg/force"
	"github.com/hexcrawl/c3net/pkg/graphql"
	"github.com/hexcrawl/c3net/pkg/topology"
	"github.com/hexcrawl/c3net/pkg/validation"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var req validation.ConnectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateConnectRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	peersBefore := s.countPeerNetworks()
	res := s.force.Mutator().Connect(req.SourceUnit, req.SourceComponent, req.TargetUnit, req.TargetComponent)
	s.metrics.RecordConnectAttempt(res.Valid, res.Reason)
	if s.countPeerNetworks() < peersBefore {
		s.metrics.PeerMergesTotal.Inc()
	}
	s.updateNetworkGauges()

	s.respondJSON(w, http.StatusOK, ConnectResponse{Valid: res.Valid, Reason: res.Reason})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var req RemoveMemberRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	changed := s.force.Mutator().RemoveMember(req.NetworkID, topology.ParseMember(req.Member))
	if changed {
		s.metrics.MemberMovesTotal.Inc()
	}
	s.updateNetworkGauges()
	s.respondJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (s *Server) handleRemoveUnit(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var req RemoveUnitRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	var ref *topology.MemberRef
	if req.Member != "" {
		parsed := topology.ParseMember(req.Member)
		ref = &parsed
	}
	changed := s.force.Mutator().RemoveUnitFromNetwork(req.NetworkID, req.UnitID, ref)
	s.updateNetworkGauges()
	s.respondJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	s.force.Mutator().ClearAll()
	s.metrics.TopologyClearsTotal.Inc()
	s.updateNetworkGauges()
	s.respondJSON(w, http.StatusOK, map[string]bool{"changed": true})
}

func (s *Server) handleNetworks(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	top := s.force.Topology().TopLevelNetworks()
	out := make([]NetworkResponse, 0, len(top))
	for _, g := range top {
		out = append(out, s.networkResponse(g, true))
	}
	s.respondJSON(w, http.StatusOK, out)
}

// networkResponse converts one record, expanding sub-networks one level when
// asked; deeper levels come back through their own top-level entries only
// when detached, so the editor recurses via this endpoint's nested payloads.
func (s *Server) networkResponse(g topology.Group, expand bool) NetworkResponse {
	resp := NetworkResponse{
		ID:    g.GroupID(),
		Type:  g.GroupClass().WireName(),
		Color: g.GroupColor(),
	}
	switch n := g.(type) {
	case *topology.PeerNetwork:
		resp.Kind = "peer"
		resp.PeerIDs = append(resp.PeerIDs, n.PeerIDs...)
	case *topology.MasterNetwork:
		resp.Kind = "master"
		idx := n.MasterCompIndex
		resp.MasterID = n.MasterID
		resp.MasterCompIndex = &idx
		resp.Members = topology.EncodeMembers(n.Members)
		if expand {
			for _, sub := range s.force.Topology().SubNetworks(n) {
				resp.SubNetworks = append(resp.SubNetworks, s.networkResponse(sub, true))
			}
		}
	}
	return resp
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	cycles := s.force.Topology().FindHierarchyCycles()
	out := make([]CycleResponse, 0, len(cycles))
	for _, cycle := range cycles {
		resp := CycleResponse{}
		for _, pin := range cycle {
			resp.Pins = append(resp.Pins, PinResponse{UnitID: pin.UnitID, CompIndex: pin.CompIndex})
		}
		out = append(out, resp)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleForceSummary(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	s.respondJSON(w, http.StatusOK, ForceSummaryResponse{
		ID:       s.force.ID(),
		Name:     s.force.Name(),
		Units:    s.force.Len(),
		BaseBV:   s.force.BaseBV(),
		TotalBV:  s.force.TotalBV(),
		Modified: s.force.Modified(),
		Networks: s.force.Topology().Len(),
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no save store configured")
		return
	}
	if err := s.store.Save(s.force); err != nil {
		s.metrics.SavesTotal.WithLabelValues("error").Inc()
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "save force"))
		return
	}
	s.metrics.SavesTotal.WithLabelValues("ok").Inc()
	s.respondJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	unitID := r.URL.Query().Get("unit")
	if unitID == "" {
		s.respondError(w, http.StatusBadRequest, "missing unit parameter")
		return
	}
	if s.force.Unit(unitID) == nil {
		s.respondError(w, http.StatusNotFound, "unit not found")
		return
	}

	s.metrics.TaxCalculationsTotal.Inc()
	s.respondJSON(w, http.StatusOK, TaxResponse{UnitID: unitID, Tax: s.force.Tax(unitID)})
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var req graphqlRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result := graphql.ExecuteQueryWithVariables(req.Query, s.schema, req.Variables)
	s.respondJSON(w, http.StatusOK, result)
}

// handleLoad replaces the served force with one loaded from the store.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no save store configured")
		return
	}

	var req LoadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateUnitID(req.ForceID); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid force id")
		return
	}

	save, err := s.store.Load(req.ForceID)
	if err != nil {
		s.metrics.LoadsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, force.ErrForceNotFound) {
			s.respondError(w, http.StatusNotFound, "force not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "load force"))
		return
	}

	loaded, err := force.Load(save, s.log, nil)
	if err != nil {
		s.metrics.LoadsTotal.WithLabelValues("error").Inc()
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "load force"))
		return
	}

	schema, err := graphql.BuildSchema(loaded)
	if err != nil {
		s.metrics.LoadsTotal.WithLabelValues("error").Inc()
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "load force"))
		return
	}

	s.force = loaded
	s.schema = schema
	s.metrics.LoadsTotal.WithLabelValues("ok").Inc()
	s.updateNetworkGauges()
	s.respondJSON(w, http.StatusOK, map[string]string{"loaded": loaded.ID()})
}

// handleForces lists the force IDs available in the store.
func (s *Server) handleForces(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no save store configured")
		return
	}
	ids, err := s.store.List()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "list forces"))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.respondJSON(w, http.StatusOK, ids)
}

func (s *Server) countPeerNetworks() int {
	n := 0
	for _, g := range s.force.Topology().Groups() {
		if _, ok := g.(*topology.PeerNetwork); ok {
			n++
		}
	}
	return n
}

// updateNetworkGauges refreshes the per-kind record gauges after a mutation.
func (s *Server) updateNetworkGauges() {
	peers, masters := 0, 0
	for _, g := range s.force.Topology().Groups() {
		switch g.(type) {
		case *topology.PeerNetwork:
			peers++
		case *topology.MasterNetwork:
			masters++
		}
	}
	s.metrics.UpdateNetworkCounts(peers, masters)
}
