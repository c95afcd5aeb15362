package planner

import (
	"context"
	"fmt"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"
)

// vehicleAssembly pairs a vehicle with the assembly it met the given work
// item at, used while deriving swap manifests below.
type vehicleAssembly struct {
	vehicleID  int64
	assemblyID int64
}

// makeResponse turns a solver assignment into the final per-wave task
// schedules and inter-vehicle swap manifests, enriching every vehicle's
// route with leg duration/distance through the routing worker pool before
// deriving swaps from where each work item's pickup and delivery land.
func (h *Handler) makeResponse(ctx context.Context, req *models.Request, resp *solver.Response, stopoverTime map[int64]int64) (*models.Response, error) {
	routesByVehicle := make(map[int]solver.Route, len(resp.Routes))
	for _, r := range resp.Routes {
		routesByVehicle[r.Vehicle] = r
	}

	wave1Dict := make(map[int64]models.VehicleTasks)
	swap12Dict := make(map[int64]*models.VehicleSwaps)
	wave2Dict := make(map[int64]models.VehicleTasks)
	swap23Dict := make(map[int64]*models.VehicleSwaps)
	wave3Dict := make(map[int64]models.VehicleTasks)

	wave1P := make(map[int64]vehicleAssembly)
	wave2P := make(map[int64]vehicleAssembly)
	wave2D := make(map[int64]vehicleAssembly)
	wave3D := make(map[int64]vehicleAssembly)

	var enrichJobs []enrichJob
	status := req.CurrentStatusOrDefault()

	for i := range h.waves.w1.vehicles {
		vs := &h.waves.w1.vehicles[i]
		v := h.vehicleDict[vs.ID]

		w1End := *h.waves.w1.endTime
		swap12Dict[vs.ID] = &models.VehicleSwaps{
			VehicleID:    vs.ID,
			AssemblyID:   *vs.ToAssemblyID,
			StopoverTime: &w1End,
		}

		var tasks []models.Task
		vehicleIndex := h.waves.w1.vehicleIDToIndex(vs.ID)
		departureDone := false

		for _, t := range vs.Tasks {
			if !t.Done {
				break
			}
			task := t
			departureDone = true
			if t.Type == models.TaskDeparture {
				from := vs.FromAssemblyID
				task.AssemblyID = &from
			}
			if t.Type == models.TaskArrival {
				task.AssemblyID = vs.ToAssemblyID
			}
			tasks = append(tasks, task)
		}

		if route, ok := routesByVehicle[vehicleIndex]; ok {
			for _, step := range route.Steps {
				if step.Type != "job" && step.Type != "pickup" && step.Type != "delivery" {
					continue
				}
				p, wid := h.index.workID(*step.ID)
				switch p {
				case kindPickup, kindShipmentPickup:
					done := h.workDict[wid].Status.Type == models.WorkStatusAssembly
					tasks = append(tasks, models.Task{
						WorkID: &wid, Type: models.TaskPickup, ETA: step.Arrival,
						SetupTime: step.Setup, ServiceTime: step.Service,
						Location: step.Location, Done: done,
					})
					if done {
						departureDone = true
					}
				case kindDelivery, kindShipmentDelivery:
					tasks = append(tasks, models.Task{
						WorkID: &wid, Type: models.TaskDelivery, ETA: step.Arrival,
						SetupTime: step.Setup, ServiceTime: step.Service,
						Location: step.Location,
					})
				}
			}
		} else if status == models.StatusWave1 {
			nextTask := vs.FirstUndoneTask()
			running := nextTask != nil && vs.IsRunning()

			var handlingWork *models.Work
			if running && nextTask.WorkID != nil {
				handlingWork = h.workDict[*nextTask.WorkID]
			}

			if handlingWork != nil && handlingWork.Status.Type == models.WorkStatusHandlePickup {
				tasks = append(tasks, models.Task{
					WorkID: &handlingWork.ID, Type: models.TaskPickup, ETA: nextTask.ETA,
					SetupTime: handlingWork.Pickup.SetupTime, ServiceTime: handlingWork.Pickup.ServiceTime,
					Location: handlingWork.Pickup.Location,
				})
			} else if handlingWork != nil && handlingWork.Status.Type == models.WorkStatusHandleDelivery {
				tasks = append(tasks, models.Task{
					WorkID: &handlingWork.ID, Type: models.TaskDelivery, ETA: nextTask.ETA,
					SetupTime: handlingWork.Delivery.SetupTime, ServiceTime: handlingWork.Delivery.ServiceTime,
					Location: handlingWork.Delivery.Location,
				})
			}
		}

		fromAssembly := h.assemblyDict[vs.FromAssemblyID]
		toAssembly := h.assemblyDict[*vs.ToAssemblyID]

		if len(tasks) == 0 || tasks[0].Type != models.TaskDeparture {
			_, departed := h.wave1Departed[vs.ID]
			tasks = append([]models.Task{{
				Type: models.TaskDeparture, ETA: *h.waves.w1.startTime,
				AssemblyID: &fromAssembly.ID, Location: fromAssembly.Location,
				Done: departureDone || departed,
			}}, tasks...)
		}

		if tasks[len(tasks)-1].Type != models.TaskArrival {
			_, arrived := h.wave1Arrived[vs.ID]
			tasks = append(tasks, models.Task{
				Type: models.TaskArrival, ETA: *h.waves.w1.endTime,
				AssemblyID: &toAssembly.ID, Location: toAssembly.Location,
				Done: arrived,
			})
		}

		for _, t := range tasks {
			if t.Type == models.TaskPickup && t.WorkID != nil {
				wave1P[*t.WorkID] = vehicleAssembly{vs.ID, *vs.ToAssemblyID}
			}
		}

		enrichJobs = append(enrichJobs, enrichJob{profile: v.Profile, tasks: tasks})
		wave1Dict[vs.ID] = models.VehicleTasks{VehicleID: vs.ID, Tasks: tasks}
	}

	for i := range h.waves.w2.vehicles {
		vs := &h.waves.w2.vehicles[i]
		v := h.vehicleDict[vs.ID]

		stopAt := stopoverTime[*vs.ToAssemblyID]
		swap23Dict[vs.ID] = &models.VehicleSwaps{
			VehicleID:    vs.ID,
			AssemblyID:   *vs.ToAssemblyID,
			StopoverTime: &stopAt,
		}

		var tasks []models.Task
		vehicleIndex := h.waves.w2.vehicleIDToIndex(vs.ID)

		if route, ok := routesByVehicle[vehicleIndex]; ok {
			for _, step := range route.Steps {
				switch step.Type {
				case "start":
					from := vs.FromAssemblyID
					tasks = append(tasks, models.Task{
						Type: models.TaskDeparture, ETA: step.Arrival,
						SetupTime: step.Setup, ServiceTime: step.Service,
						AssemblyID: &from, Location: step.Location,
					})
				case "job", "pickup", "delivery":
					p, wid := h.index.workID(*step.ID)
					if p == kindPickup || p == kindShipmentPickup {
						tasks = append(tasks, models.Task{
							WorkID: &wid, Type: models.TaskPickup, ETA: step.Arrival,
							SetupTime: step.Setup, ServiceTime: step.Service, Location: step.Location,
						})
					} else if p == kindDelivery || p == kindShipmentDelivery {
						tasks = append(tasks, models.Task{
							WorkID: &wid, Type: models.TaskDelivery, ETA: step.Arrival,
							SetupTime: step.Setup, ServiceTime: step.Service, Location: step.Location,
						})
					}
				case "end":
					to := *vs.ToAssemblyID
					tasks = append(tasks, models.Task{
						Type: models.TaskArrival, ETA: step.Arrival,
						SetupTime: step.Setup, ServiceTime: step.Service,
						AssemblyID: &to, Location: step.Location,
					})
				}
			}
		}

		fromAssembly := h.assemblyDict[vs.FromAssemblyID]
		toAssembly := h.assemblyDict[*vs.ToAssemblyID]

		if len(tasks) == 0 {
			tasks = append(tasks, models.Task{
				Type: models.TaskDeparture, ETA: *h.waves.w2.startTime,
				AssemblyID: &fromAssembly.ID, Location: fromAssembly.Location,
			})
		}

		if tasks[len(tasks)-1].Type != models.TaskArrival {
			tasks = append(tasks, models.Task{
				Type: models.TaskArrival, ETA: stopoverTime[toAssembly.ID],
				AssemblyID: &toAssembly.ID, Location: toAssembly.Location,
			})
		}

		for _, t := range tasks {
			if t.WorkID == nil {
				continue
			}
			switch t.Type {
			case models.TaskPickup:
				wave2P[*t.WorkID] = vehicleAssembly{vs.ID, *vs.ToAssemblyID}
			case models.TaskDelivery:
				wave2D[*t.WorkID] = vehicleAssembly{vs.ID, vs.FromAssemblyID}
			}
		}

		enrichJobs = append(enrichJobs, enrichJob{profile: v.Profile, tasks: tasks})
		wave2Dict[vs.ID] = models.VehicleTasks{VehicleID: vs.ID, Tasks: tasks}
	}

	for i := range h.waves.w3.vehicles {
		vs := &h.waves.w3.vehicles[i]
		v := h.vehicleDict[vs.ID]

		var tasks []models.Task
		vehicleIndex := h.waves.w3.vehicleIDToIndex(vs.ID)

		if route, ok := routesByVehicle[vehicleIndex]; ok {
			for _, step := range route.Steps {
				switch step.Type {
				case "start":
					from := vs.FromAssemblyID
					tasks = append(tasks, models.Task{
						Type: models.TaskDeparture, ETA: step.Arrival,
						SetupTime: step.Setup, ServiceTime: step.Service,
						AssemblyID: &from, Location: step.Location,
					})
				case "job", "pickup", "delivery":
					p, wid := h.index.workID(*step.ID)
					if p == kindPickup || p == kindShipmentPickup {
						tasks = append(tasks, models.Task{
							WorkID: &wid, Type: models.TaskPickup, ETA: step.Arrival,
							SetupTime: step.Setup, ServiceTime: step.Service, Location: step.Location,
						})
					} else if p == kindDelivery || p == kindShipmentDelivery {
						tasks = append(tasks, models.Task{
							WorkID: &wid, Type: models.TaskDelivery, ETA: step.Arrival,
							SetupTime: step.Setup, ServiceTime: step.Service, Location: step.Location,
						})
					}
				case "end":
					tasks = append(tasks, models.Task{
						Type: models.TaskArrival, ETA: step.Arrival,
						SetupTime: step.Setup, ServiceTime: step.Service,
						Location: step.Location,
					})
				}
			}
		}

		for _, t := range tasks {
			if t.Type == models.TaskDelivery && t.WorkID != nil {
				wave3D[*t.WorkID] = vehicleAssembly{vs.ID, vs.FromAssemblyID}
			}
		}

		enrichJobs = append(enrichJobs, enrichJob{profile: v.Profile, tasks: tasks})
		wave3Dict[vs.ID] = models.VehicleTasks{VehicleID: vs.ID, Tasks: tasks}
	}

	if h.pool != nil {
		h.pool.enrichAll(ctx, enrichJobs)
	}

	for wid := range h.workDict {
		if va1, ok := wave1P[wid]; ok {
			if va2, ok := wave2D[wid]; ok {
				if va1.vehicleID != va2.vehicleID {
					if va1.assemblyID != va2.assemblyID {
						return nil, fmt.Errorf("%w: work %d down at %d by %d, but up at %d by %d",
							ErrSwapReconciliation, wid, va1.assemblyID, va1.vehicleID, va2.assemblyID, va2.vehicleID)
					}
					swap12Dict[va1.vehicleID].Down = append(swap12Dict[va1.vehicleID].Down, wid)
					swap12Dict[va2.vehicleID].Up = append(swap12Dict[va2.vehicleID].Up, wid)
				}
			} else if va3, ok := wave3D[wid]; ok {
				if va1.vehicleID != va3.vehicleID {
					vs1w2 := h.waves.w2.vehiclesByID[va1.vehicleID]
					vs3w2 := h.waves.w2.vehiclesByID[va3.vehicleID]

					if vs3w2 != nil && va1.assemblyID == vs3w2.FromAssemblyID {
						swap12Dict[va1.vehicleID].Down = append(swap12Dict[va1.vehicleID].Down, wid)
						swap12Dict[va3.vehicleID].Up = append(swap12Dict[va3.vehicleID].Up, wid)
					} else if vs1w2 != nil && *vs1w2.ToAssemblyID == va3.assemblyID {
						swap23Dict[va1.vehicleID].Down = append(swap23Dict[va1.vehicleID].Down, wid)
						swap23Dict[va3.vehicleID].Up = append(swap23Dict[va3.vehicleID].Up, wid)
					} else {
						toAssembly := int64(-1)
						if vs1w2 != nil && vs1w2.ToAssemblyID != nil {
							toAssembly = *vs1w2.ToAssemblyID
						}
						fromAssembly3w2 := int64(-1)
						if vs3w2 != nil {
							fromAssembly3w2 = vs3w2.FromAssemblyID
						}
						return nil, fmt.Errorf("%w: work %d cannot match at 1_2 (down at %d by %d, up at %d by %d) and 2_3 (down at %d by %d, up at %d by %d)",
							ErrSwapReconciliation, wid,
							va1.assemblyID, va1.vehicleID, fromAssembly3w2, va3.vehicleID,
							toAssembly, va1.vehicleID, va3.assemblyID, va3.vehicleID)
					}
				}
			}
		} else if va2, ok := wave2P[wid]; ok {
			if va3, ok := wave3D[wid]; ok {
				if va2.vehicleID != va3.vehicleID {
					if va2.assemblyID != va3.assemblyID {
						return nil, fmt.Errorf("%w: work %d down at %d by %d, but up at %d by %d",
							ErrSwapReconciliation, wid, va2.assemblyID, va2.vehicleID, va3.assemblyID, va3.vehicleID)
					}
					swap23Dict[va2.vehicleID].Down = append(swap23Dict[va2.vehicleID].Down, wid)
					swap23Dict[va3.vehicleID].Up = append(swap23Dict[va3.vehicleID].Up, wid)
				}
			}
		}
	}

	out := &models.Response{}
	for _, vt := range wave1Dict {
		out.Wave1 = append(out.Wave1, vt)
	}
	for _, s := range swap12Dict {
		out.Swap12 = append(out.Swap12, *s)
	}
	for _, vt := range wave2Dict {
		out.Wave2 = append(out.Wave2, vt)
	}
	for _, s := range swap23Dict {
		out.Swap23 = append(out.Swap23, *s)
	}
	for _, vt := range wave3Dict {
		out.Wave3 = append(out.Wave3, vt)
	}

	return out, nil
}
