package api

import (
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/hexcrawl/c3net/pkg/force"
	"github.com/hexcrawl/c3net/pkg/graphql"
	"github.com/hexcrawl/c3net/pkg/logging"
	"github.com/hexcrawl/c3net/pkg/metrics"
)

// Server serves the topology engine to the interactive editor: JSON
// endpoints for mutations, a read-only GraphQL endpoint for rendering, and a
// Prometheus metrics endpoint.
type Server struct {
	force   *force.Force
	store   *force.FileStore
	schema  gql.Schema
	metrics *metrics.Registry
	log     logging.Logger
	mux     *http.ServeMux
}

// NewServer wires a server around one force. The store may be nil; save and
// load endpoints answer 503 without one. A nil logger is replaced with a
// no-op logger, a nil registry with a fresh one.
func NewServer(f *force.Force, store *force.FileStore, reg *metrics.Registry, log logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	schema, err := graphql.BuildSchema(f)
	if err != nil {
		return nil, err
	}

	s := &Server{
		force:   f,
		store:   store,
		schema:  schema,
		metrics: reg,
		log:     log,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/topology/connect", s.handleConnect)
	s.mux.HandleFunc("/topology/members/remove", s.handleRemoveMember)
	s.mux.HandleFunc("/topology/units/remove", s.handleRemoveUnit)
	s.mux.HandleFunc("/topology/clear", s.handleClear)
	s.mux.HandleFunc("/topology/networks", s.handleNetworks)
	s.mux.HandleFunc("/topology/cycles", s.handleCycles)
	s.mux.HandleFunc("/force", s.handleForceSummary)
	s.mux.HandleFunc("/force/save", s.handleSave)
	s.mux.HandleFunc("/force/load", s.handleLoad)
	s.mux.HandleFunc("/forces", s.handleForces)
	s.mux.HandleFunc("/units/tax", s.handleTax)
	s.mux.HandleFunc("/graphql", s.handleGraphQL)
	s.mux.Handle("/metrics", s.metrics.Handler())
}

// Handler returns the server's root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.withMetrics(s.mux)
}
