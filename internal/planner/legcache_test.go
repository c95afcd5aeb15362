package planner

import (
	"context"
	"testing"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/routing"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	cache := newLegCache(rdb)
	ctx := context.Background()

	locations := []models.Coordinate{{126.5, 33.3}, {126.6, 33.4}}
	legs := []routing.Leg{{Duration: 120, Distance: 850}}

	_, ok := cache.get(ctx, models.ProfileCar, locations)
	assert.False(t, ok)

	cache.set(ctx, models.ProfileCar, locations, legs)

	got, ok := cache.get(ctx, models.ProfileCar, locations)
	require.True(t, ok)
	assert.Equal(t, legs, got)
}

func TestLegCache_DifferentCoordinatesMiss(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	cache := newLegCache(rdb)
	ctx := context.Background()

	cache.set(ctx, models.ProfileCar, []models.Coordinate{{1, 1}, {2, 2}}, []routing.Leg{{Duration: 10, Distance: 10}})

	_, ok := cache.get(ctx, models.ProfileCar, []models.Coordinate{{3, 3}, {4, 4}})
	assert.False(t, ok)
}

func TestLegCache_NilClientIsNoop(t *testing.T) {
	var cache *legCache
	ctx := context.Background()

	cache.set(ctx, models.ProfileCar, []models.Coordinate{{1, 1}}, []routing.Leg{{Duration: 1}})

	_, ok := cache.get(ctx, models.ProfileCar, []models.Coordinate{{1, 1}})
	assert.False(t, ok)
}
