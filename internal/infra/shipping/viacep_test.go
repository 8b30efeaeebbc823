//go:build unit

package shipping_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shophub/internal/infra/shipping"
	"shophub/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCEPClient(baseURL string) *shipping.CEPClient {
	return shipping.NewCEPClient(config.ShippingConfig{
		CEPBaseURL: baseURL,
		Timeout:    2 * time.Second,
	})
}

func TestCEPClient_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ws/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Avenida Paulista",
			"bairro": "Bela Vista",
			"localidade": "Sao Paulo",
			"uf": "SP"
		}`))
	}))
	defer srv.Close()

	address, err := newCEPClient(srv.URL).Lookup(context.Background(), "01310100")

	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", address.Street)
	assert.Equal(t, "Sao Paulo", address.City)
	assert.Equal(t, "SP", address.State)
}

func TestCEPClient_Lookup_UnknownCEP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	_, err := newCEPClient(srv.URL).Lookup(context.Background(), "99999999")

	require.ErrorIs(t, err, shipping.ErrCEPNotFound)
}

func TestHaversineKm(t *testing.T) {
	saoPaulo := shipping.Coordinates{Lat: -23.5505, Lon: -46.6333}
	rio := shipping.Coordinates{Lat: -22.9068, Lon: -43.1729}

	distance := shipping.HaversineKm(saoPaulo, rio)

	// Roughly 360 km between the two city centers.
	assert.InDelta(t, 360, distance, 10)

	assert.Zero(t, shipping.HaversineKm(saoPaulo, saoPaulo))
}
