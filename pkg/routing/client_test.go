package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Routes_BuildsFixedPathAndQuery(t *testing.T) {
	var gotPath, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{
			Routes: []Route{{Legs: []Leg{{Duration: 60, Distance: 500}}}},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURLs:  map[models.Profile]string{models.ProfileCar: server.URL},
		RateLimit: 1000,
		Burst:     1000,
	})
	require.NoError(t, err)

	resp, err := client.Routes(context.Background(), models.ProfileCar, []models.Coordinate{{126.5, 33.3}, {126.6, 33.4}})
	require.NoError(t, err)
	require.Len(t, resp.Routes, 1)
	assert.Equal(t, 60.0, resp.Routes[0].Legs[0].Duration)

	assert.Equal(t, "/route/v1/car/126.5,33.3;126.6,33.4", gotPath)
	assert.Contains(t, gotQuery, "geometries=polyline")
	assert.Contains(t, gotQuery, "overview=false")
	assert.Contains(t, gotQuery, "generate_hints=false")
	assert.Contains(t, gotQuery, "continue_straight=false")
}

func TestClient_Routes_NonOKIsSkipNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURLs:  map[models.Profile]string{models.ProfileCar: server.URL},
		RateLimit: 1000,
		Burst:     1000,
	})
	require.NoError(t, err)

	resp, err := client.Routes(context.Background(), models.ProfileCar, []models.Coordinate{{1, 1}, {2, 2}})
	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestClient_Routes_UnknownProfileErrors(t *testing.T) {
	client, err := NewClient(Config{
		BaseURLs: map[models.Profile]string{models.ProfileCar: "http://example.invalid"},
	})
	require.NoError(t, err)

	_, err = client.Routes(context.Background(), models.Profile("bike"), []models.Coordinate{{1, 1}})
	assert.Error(t, err)
}
