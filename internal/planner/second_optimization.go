package planner

import (
	"context"
	"fmt"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"
)

// secondOptimization builds the full three-wave plan given a rendezvous
// time for every assembly. Wave 2 vehicles close at their rendezvous time
// (plus a 10 minute cushion to avoid solver infeasibility right at the
// boundary); wave 3 vehicles open stopover_waiting_time after it and are
// left out of the request entirely when no rendezvous time is pinned yet.
func (h *Handler) secondOptimization(ctx context.Context, req *models.Request, stopoverTime map[int64]int64) (*solver.Response, error) {
	var soVehicles []solver.Vehicle
	var soJobs []solver.Job
	var soShipments []solver.Shipment

	minimumTimeVehicles := make(map[int]struct{})
	mustHandleIDs := make(map[int]struct{})

	status := req.CurrentStatusOrDefault()

	if status == models.StatusWait || status == models.StatusWave1 {
		for i := range h.waves.w1.vehicles {
			vs := &h.waves.w1.vehicles[i]
			v := h.vehicleDict[vs.ID]

			nextTask := vs.FirstUndoneTask()
			running := nextTask != nil && vs.IsRunning()

			start := v.Location
			switch {
			case status == models.StatusWait:
				start = h.assemblyDict[vs.FromAssemblyID].Location
			case status == models.StatusWave1 && running:
				start = nextTask.Location
			}

			end := h.assemblyDict[*vs.ToAssemblyID].Location
			vehicle := solver.Vehicle{
				ID:      h.waves.w1.vehicleIDToIndex(vs.ID),
				Profile: v.Profile,
				Start:   start,
				End:     &end,
				Skills:  h.skills.getVehicleSkills(1, vs),
				Wave:    1,
			}
			if v.Capacity != nil {
				vehicle.Capacity = v.Capacity
			}

			twStart := *h.waves.w1.startTime
			twEnd := *h.waves.w1.endTime

			if status == models.StatusWave1 {
				if running {
					twStart = nextTask.ETA
					if twStart < req.CurrentTime {
						twStart = req.CurrentTime
					}
				} else {
					twStart = req.CurrentTime
				}
			}

			if twStart < twEnd {
				tw := solver.TimeWindow{twStart, twEnd}
				vehicle.TimeWindow = &tw
				soVehicles = append(soVehicles, vehicle)
			}
		}
	}

	for i := range h.waves.w2.vehicles {
		vs := &h.waves.w2.vehicles[i]
		v := h.vehicleDict[vs.ID]

		start := h.assemblyDict[vs.FromAssemblyID].Location
		end := h.assemblyDict[*vs.ToAssemblyID].Location

		vehicle := solver.Vehicle{
			ID:      h.waves.w2.vehicleIDToIndex(vs.ID),
			Profile: v.Profile,
			Start:   start,
			End:     &end,
			Skills:  h.skills.getVehicleSkills(2, vs),
			Wave:    2,
		}
		if v.Capacity != nil {
			vehicle.Capacity = v.Capacity
		}

		twStart := *h.waves.w2.startTime
		twEnd := twStart + 86400

		if t, ok := stopoverTime[*vs.ToAssemblyID]; ok {
			twEnd = t + 600
		} else {
			minimumTimeVehicles[vehicle.ID] = struct{}{}
		}

		tw := solver.TimeWindow{twStart, twEnd}
		vehicle.TimeWindow = &tw
		soVehicles = append(soVehicles, vehicle)
	}

	for i := range h.waves.w3.vehicles {
		vs := &h.waves.w3.vehicles[i]
		v := h.vehicleDict[vs.ID]

		start := h.assemblyDict[vs.FromAssemblyID].Location
		vehicle := solver.Vehicle{
			ID:      h.waves.w3.vehicleIDToIndex(vs.ID),
			Profile: v.Profile,
			Start:   start,
			Skills:  h.skills.getVehicleSkills(3, vs),
			Wave:    3,
		}
		if v.Capacity != nil {
			vehicle.Capacity = v.Capacity
		}

		if t, ok := stopoverTime[vs.FromAssemblyID]; ok {
			twStart := t + h.waves.w3.stopoverWaitingTime
			twEnd := twStart + 86400

			tw := solver.TimeWindow{twStart, twEnd}
			vehicle.TimeWindow = &tw

			soVehicles = append(soVehicles, vehicle)
			minimumTimeVehicles[vehicle.ID] = struct{}{}
		}
	}

	switch status {
	case models.StatusWait, models.StatusWave1:
		for wid, w := range h.workDict {
			if _, ok := h.wave1DoneDeliveries[wid]; ok {
				continue
			}

			hasPickup, hasDelivery, hasShipment := false, false, false
			assemblyJob := w.Status.Type == models.WorkStatusAssembly

			var pickupSkills, deliverySkills, shipmentSkills []int

			if w.Status.Type == models.WorkStatusHandleDelivery {
				vid := *w.Status.VehicleID
				deliverySkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{1, vid}})
				hasDelivery = true

			} else if vid, ok := h.wave1DonePickups[wid]; ok {
				deliverySkills = h.skills.getTaskSkillsMeetShippedVehicle(w, 1, vid, true)
				hasDelivery = true

			} else if vid, ok := h.wave1Pickups[wid]; ok {
				if _, shipped := h.wave1Shipments[wid]; !shipped {
					pickupSkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{1, vid}})
					deliverySkills = h.skills.getTaskSkillsMeetShippedVehicle(w, 1, vid, false)
					hasPickup, hasDelivery = true, true
				} else {
					shipmentSkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{1, vid}})
					hasShipment = true
				}

			} else if vid, ok := h.wave2Pickups[wid]; ok {
				if _, shipped := h.wave2Shipments[wid]; !shipped {
					pickupSkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{2, vid}})
					deliverySkills = h.skills.getTaskSkillsMeetShippedVehicle(w, 2, vid, false)
					hasPickup, hasDelivery = true, true
				} else {
					shipmentSkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{2, vid}})
					hasShipment = true
				}
			}

			addJobsAndShipments(h, &soJobs, &soShipments, mustHandleIDs, wid, w, assemblyJob,
				hasPickup, hasDelivery, hasShipment, pickupSkills, deliverySkills, shipmentSkills)
		}

	case models.StatusStopover:
		for wid, w := range h.workDict {
			if _, ok := h.wave1DoneDeliveries[wid]; ok {
				continue
			}

			hasPickup, hasDelivery, hasShipment := false, false, false

			var pickupSkills, deliverySkills, shipmentSkills []int

			if w.Status.Type == models.WorkStatusHandleDelivery {
				vid := *w.Status.VehicleID
				deliverySkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{1, vid}})
				hasDelivery = true

			} else if vid, ok := h.wave1DonePickups[wid]; ok {
				if _, down12 := h.swap12Down[wid]; down12 {
					upvid := h.swap12Up[wid]
					deliverySkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{2, upvid}, {3, upvid}})
				} else if _, down23 := h.swap23Down[wid]; down23 {
					upvid := h.swap23Up[wid]
					deliverySkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{3, upvid}})
				} else {
					deliverySkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{2, vid}, {3, vid}})
				}
				hasDelivery = true

			} else if vid, ok := h.wave2Pickups[wid]; ok {
				if _, shipped := h.wave2Shipments[wid]; !shipped {
					pickupSkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{2, vid}})
					deliverySkills = h.skills.getTaskSkillsMeetShippedVehicle(w, 2, vid, false)
					hasPickup, hasDelivery = true, true
				} else {
					shipmentSkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{2, vid}})
					hasShipment = true
				}
			}

			addJobsAndShipments(h, &soJobs, &soShipments, mustHandleIDs, wid, w, false,
				hasPickup, hasDelivery, hasShipment, pickupSkills, deliverySkills, shipmentSkills)
		}

	default:
		return nil, fmt.Errorf("%w: current_status=%s", ErrUnsupportedStatus, status)
	}

	soRequest := solver.NewRequest()
	soRequest.Jobs = soJobs
	soRequest.Shipments = soShipments
	soRequest.Vehicles = soVehicles

	return h.minimumEndTime(ctx, &soRequest, *h.waves.w2.startTime, minimumTimeVehicles, mustHandleIDs)
}

// addJobsAndShipments appends the pickup/delivery/shipment solver entries
// for one work item, mirroring the job/shipment construction shared by
// Second Optimization's wait/wave_1 and stopover branches. Unlike First
// Optimization, every job and shipment leg Second Optimization constructs
// is mandatory: by this stage the pipeline already knows which wave must
// handle each remaining leg.
func addJobsAndShipments(
	h *Handler,
	jobs *[]solver.Job,
	shipments *[]solver.Shipment,
	mustHandleIDs map[int]struct{},
	wid int64,
	w *models.Work,
	assemblyJob bool,
	hasPickup, hasDelivery, hasShipment bool,
	pickupSkills, deliverySkills, shipmentSkills []int,
) {
	if hasPickup {
		pickupJob := solver.Job{
			ID:          h.index.pickupIndex(wid),
			Description: fmt.Sprintf("pickup-%s", w.Description),
			Location:    w.Pickup.Location,
			Setup:       w.Pickup.SetupTime,
			Service:     w.Pickup.ServiceTime,
			Skills:      pickupSkills,
		}
		if w.Amount != nil {
			pickupJob.Pickup = w.Amount
		}
		if assemblyJob {
			assembly := h.assemblyDict[*w.Status.AssemblyID]
			pickupJob.Location = assembly.Location
			pickupJob.Setup = 0
			pickupJob.Service = 0
		}
		*jobs = append(*jobs, pickupJob)
		mustHandleIDs[pickupJob.ID] = struct{}{}
	}

	if hasDelivery {
		deliveryJob := solver.Job{
			ID:          h.index.deliveryIndex(wid),
			Description: fmt.Sprintf("delivery-%s", w.Description),
			Location:    w.Delivery.Location,
			Setup:       w.Delivery.SetupTime,
			Service:     w.Delivery.ServiceTime,
			Skills:      deliverySkills,
		}
		if w.Amount != nil {
			deliveryJob.Delivery = w.Amount
		}
		*jobs = append(*jobs, deliveryJob)
		mustHandleIDs[deliveryJob.ID] = struct{}{}
	}

	if hasShipment {
		shipment := solver.Shipment{
			Pickup: solver.ShipmentStep{
				ID:          h.index.shipmentPickupIndex(wid),
				Description: fmt.Sprintf("pickup-%s", w.Description),
				Location:    w.Pickup.Location,
				Setup:       w.Pickup.SetupTime,
				Service:     w.Pickup.ServiceTime,
			},
			Delivery: solver.ShipmentStep{
				ID:          h.index.shipmentDeliveryIndex(wid),
				Description: fmt.Sprintf("delivery-%s", w.Description),
				Location:    w.Delivery.Location,
				Setup:       w.Delivery.SetupTime,
				Service:     w.Delivery.ServiceTime,
			},
			Skills: shipmentSkills,
		}
		if w.Amount != nil {
			shipment.Amount = w.Amount
		}
		if assemblyJob {
			assembly := h.assemblyDict[*w.Status.AssemblyID]
			shipment.Pickup.Location = assembly.Location
			shipment.Pickup.Setup = 0
			shipment.Pickup.Service = 0
		}
		*shipments = append(*shipments, shipment)
		mustHandleIDs[shipment.Pickup.ID] = struct{}{}
		mustHandleIDs[shipment.Delivery.ID] = struct{}{}
	}
}
