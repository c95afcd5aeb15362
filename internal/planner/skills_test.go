package planner

import (
	"testing"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestSkillEncoder() (*skillEncoder, []models.Vehicle) {
	vehicles := []models.Vehicle{{ID: 1}, {ID: 2}, {ID: 3}}
	assemblies := []models.Assembly{{ID: 100}}

	schedules := models.Schedules{
		Wave1: models.Schedule{Vehicles: []models.VehicleSchedule{
			{ID: 1, FromAssemblyID: 100},
			{ID: 2, FromAssemblyID: 100},
			{ID: 3, FromAssemblyID: 100},
		}},
		Wave2: models.Schedule{Vehicles: []models.VehicleSchedule{
			{ID: 1, FromAssemblyID: 100},
			{ID: 2, FromAssemblyID: 100},
			{ID: 3, FromAssemblyID: 100},
		}},
		Wave3: models.Schedule{Vehicles: []models.VehicleSchedule{
			{ID: 1, FromAssemblyID: 100},
			{ID: 2, FromAssemblyID: 100},
			{ID: 3, FromAssemblyID: 100},
		}},
	}

	return newSkillEncoder(vehicles, assemblies, schedules), vehicles
}

// hasAllSkills reports whether every skill in "want" appears in "have",
// the same subset test the solver itself performs.
func hasAllSkills(have []int, want []int) bool {
	set := make(map[int]struct{}, len(have))
	for _, s := range have {
		set[s] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

func TestSkillEncoder_OnlyAllowedVehicleMatchesTask(t *testing.T) {
	s, _ := newTestSkillEncoder()

	taskSkills := s.getTaskSkillsWaveVehicles([]waveVehicle{{wave: 2, id: 2}})

	vs1 := &models.VehicleSchedule{ID: 1}
	vs2 := &models.VehicleSchedule{ID: 2}
	vs3 := &models.VehicleSchedule{ID: 3}

	assert.False(t, hasAllSkills(s.getVehicleSkills(2, vs1), taskSkills), "vehicle 1 should not match")
	assert.True(t, hasAllSkills(s.getVehicleSkills(2, vs2), taskSkills), "vehicle 2 should match")
	assert.False(t, hasAllSkills(s.getVehicleSkills(2, vs3), taskSkills), "vehicle 3 should not match")
}

func TestSkillEncoder_VehicleDoesNotMatchItsOwnWaveElsewhere(t *testing.T) {
	s, _ := newTestSkillEncoder()

	taskSkills := s.getTaskSkillsWaveVehicles([]waveVehicle{{wave: 1, id: 1}})

	vs1InWave1 := &models.VehicleSchedule{ID: 1}

	assert.True(t, hasAllSkills(s.getVehicleSkills(1, vs1InWave1), taskSkills))
	// vehicle 1 working wave 2 was not in the allowed set, so it must not
	// satisfy a task restricted to (wave 1, vehicle 1).
	assert.False(t, hasAllSkills(s.getVehicleSkills(2, vs1InWave1), taskSkills))
}

func TestSkillEncoder_EmptyAllowedSetMatchesNoVehicle(t *testing.T) {
	s, _ := newTestSkillEncoder()

	taskSkills := s.getTaskSkillsWaveVehicles(nil)

	for _, v := range []int64{1, 2, 3} {
		vs := &models.VehicleSchedule{ID: v}
		assert.False(t, hasAllSkills(s.getVehicleSkills(1, vs), taskSkills))
	}
}
