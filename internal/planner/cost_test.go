package planner

import (
	"testing"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"
	"github.com/stretchr/testify/assert"
)

func TestCostFunction_SumsWave3FinalDistances(t *testing.T) {
	ws := newWaves(models.Schedules{
		Wave1: models.Schedule{},
		Wave2: models.Schedule{},
		Wave3: models.Schedule{
			Vehicles: []models.VehicleSchedule{
				{ID: 1, FromAssemblyID: 100},
				{ID: 2, FromAssemblyID: 200},
			},
		},
	})

	v1Index := ws.w3.vehicleIDToIndex(1)
	v2Index := ws.w3.vehicleIDToIndex(2)

	resp := &solver.Response{
		Routes: []solver.Route{
			{Vehicle: v1Index, Steps: []solver.Step{{Distance: 100}, {Distance: 4200}}},
			{Vehicle: v2Index, Steps: []solver.Step{{Distance: 300}, {Distance: 900}}},
		},
	}

	assert.Equal(t, int64(4200+900), costFunction(resp, ws))
}

func TestCostFunction_SkipsVehicleWithNoRoute(t *testing.T) {
	ws := newWaves(models.Schedules{
		Wave1: models.Schedule{},
		Wave2: models.Schedule{},
		Wave3: models.Schedule{
			Vehicles: []models.VehicleSchedule{
				{ID: 1, FromAssemblyID: 100},
			},
		},
	})

	resp := &solver.Response{Routes: []solver.Route{}}

	assert.Equal(t, int64(0), costFunction(resp, ws))
}
