package planner

import (
	"context"
	"fmt"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"
)

// firstOptimization decides, for every still-open work item, whether its
// pickup will be handled in wave 1 or wave 2, and pins a provisional
// assembly rendezvous time for wave 2 (wave_2_stopover_times) that Second
// Optimization uses as wave 3's earliest start. Pickup is mandatory here;
// delivery is optional and left to Second Optimization whenever possible.
func (h *Handler) firstOptimization(ctx context.Context, req *models.Request) error {
	var foVehicles []solver.Vehicle
	var foJobs []solver.Job
	var foShipments []solver.Shipment

	minimumTimeVehicles := make(map[int]struct{})
	mustHandleIDs := make(map[int]struct{})

	status := req.CurrentStatusOrDefault()

	if status == models.StatusWait || status == models.StatusWave1 {
		for i := range h.waves.w1.vehicles {
			vs := &h.waves.w1.vehicles[i]
			v := h.vehicleDict[vs.ID]

			var nextTask *models.Task
			running := false

			if status == models.StatusWave1 {
				nextTask = vs.FirstUndoneTask()
				running = nextTask != nil && vs.IsRunning()

				if running && nextTask.WorkID != nil {
					handlingWork := h.workDict[*nextTask.WorkID]
					switch nextTask.Type {
					case models.TaskPickup:
						handlingWork.Status.Type = models.WorkStatusHandlePickup
						handlingWork.Status.VehicleID = &vs.ID
					case models.TaskDelivery:
						handlingWork.Status.Type = models.WorkStatusHandleDelivery
						handlingWork.Status.VehicleID = &vs.ID
					}
				}
			}

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
			twEnd := *h.waves.w1.endTime - 300

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
				foVehicles = append(foVehicles, vehicle)
				foJobs = append(foJobs, solver.Job{
					ID:       h.index.dummyIndex(1, vs.ID),
					Location: start,
					Skills:   h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{1, vs.ID}}),
				})
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
		tw := solver.TimeWindow{twStart, twEnd}
		vehicle.TimeWindow = &tw

		foVehicles = append(foVehicles, vehicle)
		foJobs = append(foJobs, solver.Job{
			ID:       h.index.dummyIndex(2, vs.ID),
			Location: start,
			Skills:   h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{2, vs.ID}}),
		})
		minimumTimeVehicles[vehicle.ID] = struct{}{}
	}

	for wid, w := range h.workDict {
		if _, ok := h.wave1DoneDeliveries[wid]; ok {
			continue
		}

		hasPickup, hasDelivery, hasShipment := false, false, false
		assemblyJob := false

		var pickupSkills, deliverySkills, shipmentSkills []int

		switch {
		case w.Status.Type == models.WorkStatusHandlePickup:
			vid := *w.Status.VehicleID
			pickupSkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{1, vid}})
			hasPickup, hasDelivery = true, false
			if w.Pickup.Group == w.Delivery.Group {
				shipmentSkills = pickupSkills
				hasShipment = true
			}

		case w.Status.Type == models.WorkStatusHandleDelivery:
			vid := *w.Status.VehicleID
			deliverySkills = h.skills.getTaskSkillsWaveVehicles([]waveVehicle{{1, vid}})
			hasPickup, hasDelivery = false, true

		case w.Status.Type == models.WorkStatusAssembly:
			assemblyID := *w.Status.AssemblyID
			pickupSkills = h.skills.getTaskSkillsAssemblyVisits(w, []assemblyVisit{{1, 's', assemblyID}}, true, false)
			hasPickup, hasDelivery = true, false
			assemblyJob = true
			if w.Pickup.Group == w.Delivery.Group {
				shipmentSkills = pickupSkills
				hasShipment = true
			}

		default:
			if vid, ok := h.wave1DonePickups[wid]; ok {
				deliverySkills = h.skills.getTaskSkillsMeetShippedVehicle(w, 1, vid, true)
				hasPickup, hasDelivery = false, true
			} else {
				pickupSkills = h.skills.getTaskSkillsWaitingPickup(w)
				hasPickup, hasDelivery = true, false
				if w.Pickup.Group == w.Delivery.Group {
					shipmentSkills = h.skills.getTaskSkillsWaitingShipment(w)
					hasShipment = true
				}
			}
		}

		if hasPickup {
			pickupJob := solver.Job{
				ID:          h.index.pickupIndex(wid),
				Description: fmt.Sprintf("pickup-%s", w.Description),
				Location:    w.Pickup.Location,
				Setup:       w.Pickup.SetupTime,
				Service:     w.Pickup.ServiceTime,
				Priority:    models.PriorityHighest,
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
			foJobs = append(foJobs, pickupJob)
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
			if w.Status.Type == models.WorkStatusHandleDelivery {
				deliveryJob.Priority = models.PriorityHighest
				mustHandleIDs[deliveryJob.ID] = struct{}{}
			}
			foJobs = append(foJobs, deliveryJob)
		}

		if hasShipment {
			shipment := solver.Shipment{
				Pickup: solver.ShipmentStep{
					ID:          h.index.shipmentPickupIndex(wid),
					Description: fmt.Sprintf("pickup-%s", w.Description),
					Location:    w.Pickup.Location,
					Setup:       w.Pickup.SetupTime,
					Service:     0,
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
			foShipments = append(foShipments, shipment)
		}
	}

	foRequest := solver.NewRequest()
	foRequest.Jobs = foJobs
	foRequest.Shipments = foShipments
	foRequest.Vehicles = foVehicles

	foResponse, err := h.minimumEndTime(ctx, &foRequest, *h.waves.w2.startTime, minimumTimeVehicles, mustHandleIDs)
	if err != nil {
		return err
	}

	mustHandleUnassigned := false
	for _, u := range foResponse.Unassigned {
		if _, ok := mustHandleIDs[u.ID]; ok {
			mustHandleUnassigned = true
			break
		}
	}

	if mustHandleUnassigned {
		if h.waves.w2.assemblyStopoverTimes == nil {
			return ErrMissingStopoverTime
		}

		for _, vs := range h.waves.w1.vehicles {
			for _, t := range vs.Tasks {
				if t.Type == models.TaskPickup && t.WorkID != nil {
					h.wave1Pickups[*t.WorkID] = vs.ID
				}
			}
		}
		for _, vs := range h.waves.w2.vehicles {
			for _, t := range vs.Tasks {
				if t.Type == models.TaskPickup && t.WorkID != nil {
					h.wave2Pickups[*t.WorkID] = vs.ID
				}
			}
		}

		for aid, t := range h.waves.w2.assemblyStopoverTimes {
			h.wave2StopoverTimes[aid] = t
		}

		return nil
	}

	for _, route := range foResponse.Routes {
		wave, vid := h.waves.vehicleIndexToID(route.Vehicle)
		w := h.waves.w1
		if wave == 2 {
			w = h.waves.w2
		}
		vehicleSchedule := w.vehiclesByID[vid]
		assembly := h.assemblyDict[*vehicleSchedule.ToAssemblyID]

		for _, s := range route.Steps {
			switch {
			case s.Type == "job":
				if s.ID == nil || h.index.isDummy(*s.ID) {
					continue
				}
				p, wid := h.index.workID(*s.ID)
				if p == kindPickup || p == kindShipmentPickup {
					if wave == 1 {
						h.wave1Pickups[wid] = vid
					} else {
						h.wave2Pickups[wid] = vid
					}
				}

			case s.Type == "end" && wave == 2:
				arrival := s.Arrival
				existing, ok := h.wave2StopoverTimes[assembly.ID]
				if !ok || existing < arrival {
					h.wave2StopoverTimes[assembly.ID] = arrival
				}
			}
		}

		for _, s := range route.Steps {
			if s.Type != "pickup" {
				continue
			}
			if s.ID == nil || h.index.isDummy(*s.ID) {
				continue
			}
			_, wid := h.index.workID(*s.ID)
			if wave == 1 {
				if pv, ok := h.wave1Pickups[wid]; ok && pv == vid {
					h.wave1Shipments[wid] = vid
				}
			} else if wave == 2 {
				if pv, ok := h.wave2Pickups[wid]; ok && pv == vid {
					h.wave2Shipments[wid] = vid
				}
			}
		}
	}

	for aid := range h.assemblyDict {
		if _, ok := h.wave2StopoverTimes[aid]; !ok {
			h.wave2StopoverTimes[aid] = *h.waves.w2.startTime + 10800
		}
	}

	return nil
}
