package planner

import (
	"testing"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(group string, minX, minY, maxX, maxY float64) Zone {
	return Zone{
		Group: group,
		Polygon: orb.Polygon{
			orb.Ring{
				{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
			},
		},
	}
}

func TestAssignGroup(t *testing.T) {
	zones := []Zone{
		square("east", 10, 10, 20, 20),
		square("west", -20, -20, -10, -10),
	}

	assert.Equal(t, "east", AssignGroup(zones, models.Coordinate{15, 15}))
	assert.Equal(t, "west", AssignGroup(zones, models.Coordinate{-15, -15}))
	assert.Equal(t, "", AssignGroup(zones, models.Coordinate{1000, 1000}))
}

func TestZonesFromBoundaries(t *testing.T) {
	boundaries := []models.Boundary{
		{
			ID: "east",
			Polygon: []models.Coordinate{
				{10, 10}, {20, 10}, {20, 20}, {10, 20},
			},
		},
		{ID: "degenerate", Polygon: []models.Coordinate{{0, 0}, {1, 1}}},
	}

	zones := ZonesFromBoundaries(boundaries)
	require.Len(t, zones, 1)
	assert.Equal(t, "east", AssignGroup(zones, models.Coordinate{15, 15}))
}

func TestAssignWorkGroups_OnlyFillsEmpty(t *testing.T) {
	zones := []Zone{square("east", 10, 10, 20, 20)}

	works := []models.Work{
		{
			ID:     1,
			Pickup: models.WorkPoint{Location: models.Coordinate{15, 15}},
			Delivery: models.WorkPoint{
				Location: models.Coordinate{15, 15},
				Group:    "already-set",
			},
		},
	}

	AssignWorkGroups(zones, works)

	assert.Equal(t, "east", works[0].Pickup.Group)
	assert.Equal(t, "already-set", works[0].Delivery.Group)
}
