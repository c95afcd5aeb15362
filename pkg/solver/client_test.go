package solver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Solve_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(86400), req.DistributeOptions.MaxVehicleWorkTime)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{
			Routes: []Route{{Vehicle: 10000, Steps: []Step{{Type: "start"}}}},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, RateLimit: 1000, Burst: 1000})
	require.NoError(t, err)

	resp, err := client.Solve(context.Background(), NewRequest())
	require.NoError(t, err)
	require.Len(t, resp.Routes, 1)
	assert.Equal(t, 10000, resp.Routes[0].Vehicle)
}

func TestClient_Solve_NonOKIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("solver exploded"))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, RateLimit: 1000, Burst: 1000})
	require.NoError(t, err)

	_, err = client.Solve(context.Background(), NewRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
