package planner

import "github.com/Yeong-ho/jeju-onul-api/internal/models"

// wave holds one schedule's vehicles plus a dense, prefix-offset vehicle
// index space for solver requests.
type wave struct {
	vehicles     []models.VehicleSchedule
	vehiclesByID map[int64]*models.VehicleSchedule

	indexPrefix int
	vehicleIdx  map[int64]int

	startTime *int64
	endTime   *int64

	assemblyStopoverTimes map[int64]int64
	stopoverWaitingTime   int64
}

func newWave(schedule models.Schedule, indexPrefix int) *wave {
	w := &wave{
		vehicles:            schedule.Vehicles,
		vehiclesByID:         make(map[int64]*models.VehicleSchedule, len(schedule.Vehicles)),
		indexPrefix:          indexPrefix,
		vehicleIdx:           make(map[int64]int, len(schedule.Vehicles)),
		startTime:            schedule.Start,
		endTime:              schedule.End,
		stopoverWaitingTime:  schedule.StopoverWaitingTimeOrDefault(),
	}

	for i := range w.vehicles {
		v := &w.vehicles[i]
		w.vehiclesByID[v.ID] = v
		w.vehicleIdx[v.ID] = i
	}

	if schedule.AssemblyStopoverTime != nil {
		w.assemblyStopoverTimes = make(map[int64]int64, len(schedule.AssemblyStopoverTime))
		for _, ast := range schedule.AssemblyStopoverTime {
			w.assemblyStopoverTimes[ast.AssemblyID] = ast.StopoverTime
		}
	}

	return w
}

func (w *wave) vehicleIDToIndex(id int64) int {
	return w.indexPrefix + w.vehicleIdx[id]
}

func (w *wave) vehicleIndexToID(index int) int64 {
	return w.vehicles[index-w.indexPrefix].ID
}

// waves holds the three disjoint per-wave vehicle index spaces for a single
// planning request.
type waves struct {
	w1, w2, w3 *wave
}

const (
	wave1Prefix = 10000
	wave2Prefix = 20000
	wave3Prefix = 30000
)

func newWaves(schedules models.Schedules) *waves {
	return &waves{
		w1: newWave(schedules.Wave1, wave1Prefix),
		w2: newWave(schedules.Wave2, wave2Prefix),
		w3: newWave(schedules.Wave3, wave3Prefix),
	}
}

// vehicleIndexToID maps a dense solver vehicle index back to the wave it
// belongs to and the vehicle id within that wave.
func (ws *waves) vehicleIndexToID(index int) (wave int, vehicleID int64) {
	switch {
	case index >= wave3Prefix:
		return 3, ws.w3.vehicleIndexToID(index)
	case index >= wave2Prefix:
		return 2, ws.w2.vehicleIndexToID(index)
	default:
		return 1, ws.w1.vehicleIndexToID(index)
	}
}
