package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktracker_api/config"
	"stocktracker_api/config/values"
	"stocktracker_api/internal/platform/business/errs"
)

type staticCreds map[Panel]string

func (c staticCreds) Token(ctx context.Context, panel Panel) (string, error) {
	return c[panel], nil
}

func testConfig(retailURL, warehouseURL string) config.PlatformConfig {
	return config.PlatformConfig{
		Retail:    config.PanelConfig{BaseURL: retailURL},
		Warehouse: config.PanelConfig{BaseURL: warehouseURL},
		Values: values.PlatformValues{
			CountryCode: "RU",
			Language:    "ru",
			ClientID:    "shop-1",
		},
	}
}

func TestCatalogClient_SuccessSendsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(testConfig(srv.URL, srv.URL), staticCreds{PanelRetail: "secret"}, io.Discard)
	raw, err := client.Call(context.Background(), PanelRetail, http.MethodPost, "/stocks", nil, nil, 5*time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(raw))
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestCatalogClient_WarehouseHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(testConfig(srv.URL, srv.URL), staticCreds{PanelWarehouse: "wh-token"}, io.Discard)
	_, err := client.Call(context.Background(), PanelWarehouse, http.MethodPost, "/warehouse/301/products", nil, nil, 5*time.Second)
	require.NoError(t, err)

	assert.Equal(t, "RU", got.Get("countrycode"))
	assert.Equal(t, "ru", got.Get("language"))
	assert.Equal(t, "shop-1", got.Get("clientid"))
}

func TestCatalogClient_NoTokenNeverHitsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := NewCatalogClient(testConfig(srv.URL, srv.URL), staticCreds{}, io.Discard)
	_, err := client.Call(context.Background(), PanelRetail, http.MethodGet, "/stocks", nil, nil, 5*time.Second)
	require.Error(t, err)
	assert.Equal(t, errs.KindNoToken, errs.KindOf(err))
	assert.Zero(t, requests)
}

func TestCatalogClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   errs.Kind
	}{
		{http.StatusUnauthorized, errs.KindUnauthorized},
		{http.StatusForbidden, errs.KindForbidden},
		{http.StatusNotFound, errs.KindNotFound},
		{http.StatusInternalServerError, errs.KindAPI},
		{http.StatusTooManyRequests, errs.KindAPI},
	}
	for _, tc := range tests {
		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"error":"nope"}`))
		}))

		client := NewCatalogClient(testConfig(srv.URL, srv.URL), staticCreds{PanelRetail: "t"}, io.Discard)
		_, err := client.Call(context.Background(), PanelRetail, http.MethodGet, "/stocks", nil, nil, 5*time.Second)
		require.Error(t, err, "status %d", tc.status)
		assert.Equal(t, tc.kind, errs.KindOf(err), "status %d", tc.status)
		// неуспех не ретраится, даже 429
		assert.Equal(t, 1, requests, "status %d", tc.status)
		srv.Close()
	}
}

func TestCatalogClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewCatalogClient(testConfig(srv.URL, srv.URL), staticCreds{PanelRetail: "t"}, io.Discard)
	_, err := client.Call(context.Background(), PanelRetail, http.MethodGet, "/stocks", nil, nil, 30*time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, errs.KindTimeout, errs.KindOf(err))
}

func TestCatalogClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // соединение некуда устанавливать

	client := NewCatalogClient(testConfig(srv.URL, srv.URL), staticCreds{PanelRetail: "t"}, io.Discard)
	_, err := client.Call(context.Background(), PanelRetail, http.MethodGet, "/stocks", nil, nil, 5*time.Second)
	require.Error(t, err)
	assert.Equal(t, errs.KindNetwork, errs.KindOf(err))
}

func TestCatalogClient_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	query := url.Values{}
	query.Set("limit", "1000")
	query.Set("offset", "2000")

	client := NewCatalogClient(testConfig(srv.URL, srv.URL), staticCreds{PanelRetail: "t"}, io.Discard)
	_, err := client.Call(context.Background(), PanelRetail, http.MethodPost, "/stocks", query, map[string]string{"x": "y"}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "1000", gotQuery.Get("limit"))
	assert.Equal(t, "2000", gotQuery.Get("offset"))
}
