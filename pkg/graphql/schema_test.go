package graphql

import (
	"testing"

	"github.com/hexcrawl/c3net/pkg/force"
)

func testForce(t *testing.T) *force.Force {
	t.Helper()
	f := force.New("f1", "GraphQL Lance", nil, nil)
	for _, u := range []*force.Unit{
		force.NewUnit("m1", "Command", 1000, true, []string{"C3 Master"}),
		force.NewUnit("m2", "Wing", 900, true, []string{"C3 Master"}),
		force.NewUnit("s1", "Scout", 500, true, []string{"C3 Slave"}),
	} {
		if err := f.AddUnit(u); err != nil {
			t.Fatalf("AddUnit: %v", err)
		}
	}
	m := f.Mutator()
	if res := m.Connect("m1", 0, "m2", 0); !res.Valid {
		t.Fatalf("connect: %s", res.Reason)
	}
	if res := m.Connect("m2", 0, "s1", 0); !res.Valid {
		t.Fatalf("connect: %s", res.Reason)
	}
	return f
}

func TestSchema_Health(t *testing.T) {
	schema, err := BuildSchema(testForce(t))
	if err != nil {
		t.Fatalf("BuildSchema: %v", err)
	}
	result := ExecuteQuery(`{ health }`, schema)
	if len(result.Errors) > 0 {
		t.Fatalf("query errors: %v", result.Errors)
	}
	data := result.Data.(map[string]any)
	if data["health"] != "ok" {
		t.Errorf("health = %v", data["health"])
	}
}

func TestSchema_ForceTotals(t *testing.T) {
	f := testForce(t)
	schema, _ := BuildSchema(f)

	result := ExecuteQuery(`{ force { id baseBv totalBv } }`, schema)
	if len(result.Errors) > 0 {
		t.Fatalf("query errors: %v", result.Errors)
	}
	forceData := result.Data.(map[string]any)["force"].(map[string]any)
	if forceData["id"] != "f1" {
		t.Errorf("force id = %v", forceData["id"])
	}
	if forceData["baseBv"] != 2400 {
		t.Errorf("baseBv = %v, want 2400", forceData["baseBv"])
	}
	if forceData["totalBv"] != f.TotalBV() {
		t.Errorf("totalBv = %v, want %d", forceData["totalBv"], f.TotalBV())
	}
}

func TestSchema_TopLevelNetworksWithSubNetworks(t *testing.T) {
	schema, _ := BuildSchema(testForce(t))

	result := ExecuteQuery(`{
		topLevelNetworks {
			kind
			masterId
			members
			subNetworks { masterId members }
		}
	}`, schema)
	if len(result.Errors) > 0 {
		t.Fatalf("query errors: %v", result.Errors)
	}

	nets := result.Data.(map[string]any)["topLevelNetworks"].([]any)
	if len(nets) != 1 {
		t.Fatalf("expected 1 top-level network, got %d", len(nets))
	}
	root := nets[0].(map[string]any)
	if root["masterId"] != "m1" {
		t.Errorf("root master = %v, want m1", root["masterId"])
	}
	subs := root["subNetworks"].([]any)
	if len(subs) != 1 {
		t.Fatalf("expected 1 sub-network, got %d", len(subs))
	}
	if subs[0].(map[string]any)["masterId"] != "m2" {
		t.Errorf("sub-network master = %v, want m2", subs[0].(map[string]any)["masterId"])
	}
}

func TestSchema_UnitLookup(t *testing.T) {
	schema, _ := BuildSchema(testForce(t))

	result := ExecuteQueryWithVariables(
		`query($id: ID!) { unit(id: $id) { id battleValue linked connected } }`,
		schema,
		map[string]any{"id": "s1"},
	)
	if len(result.Errors) > 0 {
		t.Fatalf("query errors: %v", result.Errors)
	}
	unit := result.Data.(map[string]any)["unit"].(map[string]any)
	if unit["id"] != "s1" || unit["battleValue"] != 500 {
		t.Errorf("unexpected unit: %v", unit)
	}
	if unit["connected"] != true {
		t.Error("s1 should be connected")
	}

	missing := ExecuteQueryWithVariables(
		`query($id: ID!) { unit(id: $id) { id } }`,
		schema,
		map[string]any{"id": "ghost"},
	)
	if len(missing.Errors) == 0 {
		t.Error("expected error for unknown unit")
	}
}
