package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcrawl/c3net/pkg/api"
	"github.com/hexcrawl/c3net/pkg/force"
	"github.com/hexcrawl/c3net/pkg/metrics"
	"github.com/hexcrawl/c3net/pkg/pubsub"
)

// TestCompleteEditorWorkflow walks the whole editor journey over real HTTP:
// build a company-level C3 network, check the BV figures, save, and reload.
func TestCompleteEditorWorkflow(t *testing.T) {
	bus := pubsub.New()
	defer bus.Close()

	f := force.New("e2e-force", "Kurita Strike Company", nil, bus)
	units := []*force.Unit{
		force.NewUnit("cmd", "Tai-i Command", 1400, true, []string{"C3 Company Command Master", "C3 Master"}),
		force.NewUnit("lance-m", "Lance Lead", 1100, true, []string{"C3 Master"}),
		force.NewUnit("sl-1", "Panther", 750, true, []string{"C3 Slave"}),
		force.NewUnit("sl-2", "Jenner", 820, true, []string{"C3 Slave"}),
		force.NewUnit("sl-3", "Dragon", 980, true, []string{"C3 Slave"}),
	}
	for _, u := range units {
		require.NoError(t, f.AddUnit(u))
	}

	dir := t.TempDir()
	store, err := force.NewFileStore(dir, true)
	require.NoError(t, err)

	srv, err := api.NewServer(f, store, metrics.NewRegistry(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	// Step 1: hang two slaves on the lance master.
	connect(t, ts.URL, "sl-1", 0, "lance-m", 0)
	connect(t, ts.URL, "sl-2", 0, "lance-m", 0)

	// Step 2: drag from the company command master onto the lance master,
	// making the lance net a sub-network of the company net.
	connect(t, ts.URL, "cmd", 0, "lance-m", 0)

	// Step 3: a third slave goes straight to the command master's second pin.
	connect(t, ts.URL, "sl-3", 0, "cmd", 1)

	// Step 4: the editor renders from the top-level networks.
	var nets []api.NetworkResponse
	getJSON(t, ts.URL+"/topology/networks", &nets)
	require.Len(t, nets, 2, "company pin 0 and pin 1 networks")
	for _, n := range nets {
		assert.Equal(t, "master", n.Kind)
		assert.Equal(t, "cmd", n.MasterID)
	}

	// Step 5: BV tax reflects the linked pool regardless of wiring shape.
	var tax api.TaxResponse
	getJSON(t, ts.URL+"/units/tax?unit=sl-1", &tax)
	assert.Equal(t, f.Tax("sl-1"), tax.Tax)
	assert.Greater(t, tax.Tax, 0)

	// Step 6: no hierarchy cycles in a well-formed tree.
	var cycles []api.CycleResponse
	getJSON(t, ts.URL+"/topology/cycles", &cycles)
	assert.Empty(t, cycles)

	// Step 7: save, then load a second force from the same file and compare.
	resp, err := http.Post(ts.URL+"/force/save", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	save, err := store.Load("e2e-force")
	require.NoError(t, err)
	reloaded, err := force.Load(save, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, f.TotalBV(), reloaded.TotalBV())
	assert.Equal(t, f.Topology().Len(), reloaded.Topology().Len())
	assert.True(t, reloaded.Topology().IsUnitSlaveConnected("sl-1"))
}

func connect(t *testing.T, baseURL, srcUnit string, srcIdx int, tgtUnit string, tgtIdx int) {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"sourceUnit":      srcUnit,
		"sourceComponent": srcIdx,
		"targetUnit":      tgtUnit,
		"targetComponent": tgtIdx,
	})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/topology/connect", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.ConnectResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Valid, fmt.Sprintf("connect %s->%s rejected: %s", srcUnit, tgtUnit, out.Reason))
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
