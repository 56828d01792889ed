package titan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskCTEKey(t *testing.T) {
	key := strings.Repeat("0", 28) + "123456" + strings.Repeat("0", 10)
	require.Len(t, key, 44)
	assert.Equal(t, "123456", MaskCTEKey(key))
	assert.Equal(t, "", MaskCTEKey("too short"))
	assert.Equal(t, "", MaskCTEKey(""))
}

func TestClient_Fetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"destinatario_uf":"SP","qtd_volumes":10,"cte_chave":"k1","extra":"kept"},
			{"destinatario_uf":"BA","qtd_volumes":2,"cte_chave":"k2"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	orders, err := c.Fetch(context.Background(), "31715616000504", from, to)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Contains(t, gotQuery, "di=2025-05-01")
	assert.Contains(t, gotQuery, "df=2025-05-30")
	assert.Contains(t, gotQuery, "emissor=31715616000504")

	assert.Equal(t, "SP", orders[0].DestinationUF)
	assert.Equal(t, 10, orders[0].VolumeCount)
	// Uninterpreted columns survive in Raw for the orders table.
	assert.Contains(t, string(orders[0].Raw), `"extra":"kept"`)
}

func TestClient_FetchErrorIsRecoverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), "x", time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestFetchAll_CollectsWarningsPerSupplier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("emissor") == "bad" {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"destinatario_uf":"SP","qtd_volumes":7}]`))
	}))
	defer srv.Close()

	suppliers := []Supplier{
		{Name: "Ok Co", CNPJ: "good"},
		{Name: "Down Co", CNPJ: "bad"},
	}
	result := FetchAll(context.Background(), NewClient(srv.URL), suppliers, time.Now(), time.Now())

	require.Len(t, result.Orders, 1)
	assert.Equal(t, "Ok Co", result.Orders[0].Supplier)
	assert.Equal(t, 7, result.VolumeBySupplier["Ok Co"])
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Down Co")
}

func TestBuildInsights(t *testing.T) {
	states := map[string]string{"SP": "São Paulo", "BA": "Bahia", "PR": "Paraná", "AM": "Amazonas"}
	orders := []Order{
		{DestinationUF: "SP", VolumeCount: 90},
		{DestinationUF: "BA", VolumeCount: 6},
		{DestinationUF: "PR", VolumeCount: 4},
	}

	ins := BuildInsights(orders, states)

	assert.Equal(t, 100, ins.TotalVolume)
	assert.InDelta(t, 25.0, ins.MeanPerState, 1e-9)

	require.NotEmpty(t, ins.TopStates)
	assert.Equal(t, "SP", ins.TopStates[0].UF)
	assert.Equal(t, []string{"Amazonas"}, ins.ZeroStates)

	// 90 > 2*25: concentration callout.
	assert.True(t, ins.Concentrated)
	assert.Equal(t, "São Paulo", ins.ConcentratedIn)
}

func TestBuildInsights_Empty(t *testing.T) {
	ins := BuildInsights(nil, map[string]string{})
	assert.Equal(t, 0, ins.TotalVolume)
	assert.Equal(t, 0.0, ins.MeanPerState)
	assert.False(t, ins.Concentrated)
	assert.Empty(t, ins.TopStates)
}

func TestCompareSuppliers(t *testing.T) {
	cmp := CompareSuppliers(map[string]int{
		"Mercedes-Benz": 2000,
		"Mobis":         400,
		"Scania":        1000,
	})

	require.Len(t, cmp.Ranking, 3)
	assert.Equal(t, "Mercedes-Benz", cmp.Ranking[0].Name)
	assert.Equal(t, "Mobis", cmp.Ranking[2].Name)
	assert.InDelta(t, 80.0, cmp.RelativeDiff, 1e-9)
	assert.Equal(t, []string{"Mobis"}, cmp.LowVolumeNames)
}

func TestCompareSuppliers_ZeroTop(t *testing.T) {
	cmp := CompareSuppliers(map[string]int{"A": 0, "B": 0})
	assert.Equal(t, 0.0, cmp.RelativeDiff)
}
