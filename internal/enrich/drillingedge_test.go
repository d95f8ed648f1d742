package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAPI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3305304567", "33-053-04567"},
		{"33-053-04567", "33-053-04567"},
		{"33 053 04567", "33-053-04567"},
		{"12345", ""},
		{"", ""},
		{"330530456789", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAPI(tt.in), "input %q", tt.in)
	}
}

const detailPage = `<html><body>
<h1>JOHNSON 1-H</h1>
<table>
<tr><th>Well Status</th><td>Active</td></tr>
<tr><th>Well Type</th><td>Oil &amp; Gas</td></tr>
<tr><th>Closest City</th><td>Watford City</td></tr>
</table>
<p>396 Barrels of Oil Produced in Dec 2025</p>
<p>2.2 k MCF of Gas Produced in Dec 2025</p>
</body></html>`

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<a href="/about">About</a>
			<a href="/wells/nd/other-well-11-111-11111">OTHER WELL</a>
			<a href="/wells/nd/johnson-1-h-33-053-04567">JOHNSON 1-H</a>
		</body></html>`))
	})
	mux.HandleFunc("/wells/nd/johnson-1-h-33-053-04567", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailPage))
	})
	mux.HandleFunc("/wells/nd/other-well-11-111-11111", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>OTHER WELL</h1></body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup_ByAPI(t *testing.T) {
	srv := newSite(t)
	c := NewClient(srv.URL, 0, 0, nil)

	res, err := c.Lookup(context.Background(), "33-053-04567", "JOHNSON 1-H")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Contains(t, res.URL, "/wells/nd/johnson-1-h-33-053-04567")
	assert.Equal(t, "Active", res.WellStatus)
	assert.Equal(t, "Oil & Gas", res.WellType)
	assert.Equal(t, "Watford City", res.ClosestCity)
	require.NotNil(t, res.LatestOilBBL)
	assert.InDelta(t, 396.0, *res.LatestOilBBL, 1e-9)
	require.NotNil(t, res.LatestGasMCF)
	assert.InDelta(t, 2200.0, *res.LatestGasMCF, 1e-9, "k suffix multiplies by a thousand")
	assert.Equal(t, "Dec 2025", res.LatestProdLabel)
}

func TestLookup_FallsBackToFirstWellLink(t *testing.T) {
	srv := newSite(t)
	c := NewClient(srv.URL, 0, 0, nil)

	// API not present in any href, so the first well link wins
	res, err := c.Lookup(context.Background(), "99-999-99999", "")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Contains(t, res.URL, "/wells/nd/other-well-11-111-11111")
	assert.Empty(t, res.WellStatus)
}

func TestLookup_NoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>no matches</body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 0, 0, nil)
	res, err := c.Lookup(context.Background(), "33-053-04567", "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestLookup_NothingToSearchBy(t *testing.T) {
	c := NewClient("http://unused.invalid", 0, 0, nil)
	res, err := c.Lookup(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, res)
}
