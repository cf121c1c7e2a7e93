// Package graphql exposes the force's topology and BV figures as a read-only
// GraphQL surface for the interactive editor. Mutations go through the JSON
// API; this schema never touches the mutator.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/hexcrawl/c3net/pkg/force"
	"github.com/hexcrawl/c3net/pkg/topology"
)

// networkView flattens a topology record for resolution.
type networkView struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Color           string   `json:"color"`
	Kind            string   `json:"kind"`
	PeerIDs         []string `json:"peerIds"`
	MasterID        string   `json:"masterId"`
	MasterCompIndex int      `json:"masterCompIndex"`
	Members         []string `json:"members"`
}

func viewOf(g topology.Group) networkView {
	view := networkView{
		ID:    g.GroupID(),
		Type:  g.GroupClass().WireName(),
		Color: g.GroupColor(),
	}
	switch n := g.(type) {
	case *topology.PeerNetwork:
		view.Kind = "peer"
		view.PeerIDs = append(view.PeerIDs, n.PeerIDs...)
	case *topology.MasterNetwork:
		view.Kind = "master"
		view.MasterID = n.MasterID
		view.MasterCompIndex = n.MasterCompIndex
		view.Members = topology.EncodeMembers(n.Members)
	}
	return view
}

// BuildSchema builds the read-only schema over one force.
func BuildSchema(f *force.Force) (graphql.Schema, error) {
	unitType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Unit",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*force.Unit).UnitID(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*force.Unit).Name(), nil
				},
			},
			"battleValue": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*force.Unit).BattleValue(), nil
				},
			},
			"linked": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*force.Unit).Linked(), nil
				},
			},
			"tax": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return f.Tax(p.Source.(*force.Unit).UnitID()), nil
				},
			},
			"connected": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return f.Topology().IsUnitConnected(p.Source.(*force.Unit).UnitID()), nil
				},
			},
		},
	})

	networkType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Network",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"type":            &graphql.Field{Type: graphql.String},
			"color":           &graphql.Field{Type: graphql.String},
			"kind":            &graphql.Field{Type: graphql.String},
			"peerIds":         &graphql.Field{Type: graphql.NewList(graphql.String)},
			"masterId":        &graphql.Field{Type: graphql.String},
			"masterCompIndex": &graphql.Field{Type: graphql.Int},
			"members":         &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	// subNetworks is self-referential, so it is attached after construction
	networkType.AddFieldConfig("subNetworks", &graphql.Field{
		Type: graphql.NewList(networkType),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			view, ok := p.Source.(networkView)
			if !ok || view.Kind != "master" {
				return []networkView{}, nil
			}
			net := f.Topology().FindMasterNetwork(view.MasterID, view.MasterCompIndex)
			if net == nil {
				return []networkView{}, nil
			}
			subs := f.Topology().SubNetworks(net)
			out := make([]networkView, len(subs))
			for i, sub := range subs {
				out[i] = viewOf(sub)
			}
			return out, nil
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"force": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "Force",
					Fields: graphql.Fields{
						"id":      &graphql.Field{Type: graphql.ID},
						"name":    &graphql.Field{Type: graphql.String},
						"baseBv":  &graphql.Field{Type: graphql.Int},
						"totalBv": &graphql.Field{Type: graphql.Int},
					},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return map[string]any{
						"id":      f.ID(),
						"name":    f.Name(),
						"baseBv":  f.BaseBV(),
						"totalBv": f.TotalBV(),
					}, nil
				},
			},
			"units": &graphql.Field{
				Type: graphql.NewList(unitType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return f.Units(), nil
				},
			},
			"unit": &graphql.Field{
				Type: unitType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					u := f.Unit(id)
					if u == nil {
						return nil, fmt.Errorf("unit not found: %s", id)
					}
					return u, nil
				},
			},
			"topLevelNetworks": &graphql.Field{
				Type: graphql.NewList(networkType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					top := f.Topology().TopLevelNetworks()
					out := make([]networkView, len(top))
					for i, g := range top {
						out[i] = viewOf(g)
					}
					return out, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}
