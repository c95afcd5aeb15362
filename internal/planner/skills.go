package planner

import (
	"fmt"
	"sort"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
)

// waveVehicle identifies a vehicle within a specific wave's index space.
type waveVehicle struct {
	wave int
	id   int64
}

// assemblyVisit identifies an assembly stopover by wave, side ('s' start /
// 'e' end), and assembly id.
type assemblyVisit struct {
	wave int
	side byte
	id   int64
}

// skillEncoder builds the negative-skill encoding that lets the VRP solver
// express "this task may only be handled by one of these (wave, vehicle)
// pairs" using its ordinary skill-subset matching: every (wave, vehicle)
// pair gets a unique negative skill; a vehicle carries every negative skill
// except its own, and a task restricted to an allowed set carries every
// negative skill NOT in that set, so only vehicles in the set can match it.
type skillEncoder struct {
	nextSkillID int
	skillIDs    map[string]int

	waves    []int
	vehicles []int64

	groupVehicles map[string]map[waveVehicle]struct{}

	// assemblyVisits[wave][side][assemblyID] = set of vehicle ids present there
	assemblyVisits map[int]map[byte]map[int64]map[int64]struct{}
}

func newSkillEncoder(vehicles []models.Vehicle, assemblies []models.Assembly, schedules models.Schedules) *skillEncoder {
	s := &skillEncoder{
		skillIDs:       make(map[string]int),
		waves:          []int{1, 2, 3},
		groupVehicles:  make(map[string]map[waveVehicle]struct{}),
		assemblyVisits: make(map[int]map[byte]map[int64]map[int64]struct{}),
	}

	for _, v := range vehicles {
		s.vehicles = append(s.vehicles, v.ID)
	}

	for _, w := range s.waves {
		s.assemblyVisits[w] = map[byte]map[int64]map[int64]struct{}{
			's': make(map[int64]map[int64]struct{}),
			'e': make(map[int64]map[int64]struct{}),
		}

		for _, v := range vehicles {
			s.addKey(waveVehicleNegKey(w, v.ID))

			for _, a := range assemblies {
				s.assemblyVisits[w]['s'][a.ID] = make(map[int64]struct{})
				s.assemblyVisits[w]['e'][a.ID] = make(map[int64]struct{})
			}
		}
	}

	schedulesByWave := []struct {
		schedule models.Schedule
		wave     int
	}{
		{schedules.Wave1, 1},
		{schedules.Wave2, 2},
		{schedules.Wave3, 3},
	}

	for _, sw := range schedulesByWave {
		for _, vs := range sw.schedule.Vehicles {
			group := ""
			if vs.Group != nil {
				group = *vs.Group
			}

			if s.groupVehicles[group] == nil {
				s.groupVehicles[group] = make(map[waveVehicle]struct{})
			}
			s.groupVehicles[group][waveVehicle{sw.wave, vs.ID}] = struct{}{}

			s.assemblyVisits[sw.wave]['s'][vs.FromAssemblyID][vs.ID] = struct{}{}
			if vs.ToAssemblyID != nil {
				s.assemblyVisits[sw.wave]['e'][*vs.ToAssemblyID][vs.ID] = struct{}{}
			}
		}
	}

	return s
}

func waveVehicleNegKey(wave int, vehicle int64) string {
	return fmt.Sprintf("!w%d-v%d", wave, vehicle)
}

func (s *skillEncoder) addKey(key string) {
	if _, ok := s.skillIDs[key]; !ok {
		s.skillIDs[key] = s.nextSkillID
		s.nextSkillID++
	}
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// getVehicleSkills returns the negative skills a vehicle carries while
// working the given wave: every (wave, vehicle) negative skill except its
// own.
func (s *skillEncoder) getVehicleSkills(wave int, vehicle *models.VehicleSchedule) []int {
	skills := make(map[int]struct{})

	for _, w := range s.waves {
		for _, v := range s.vehicles {
			if w == wave && v == vehicle.ID {
				continue
			}
			skills[s.skillIDs[waveVehicleNegKey(w, v)]] = struct{}{}
		}
	}

	return sortedInts(skills)
}

// getTaskSkillsWaveVehicles returns the negative skills a task must carry
// to be restricted to exactly the given set of (wave, vehicle) pairs.
func (s *skillEncoder) getTaskSkillsWaveVehicles(waveVehicles []waveVehicle) []int {
	allowed := make(map[waveVehicle]struct{}, len(waveVehicles))
	for _, wv := range waveVehicles {
		allowed[wv] = struct{}{}
	}

	skills := make(map[int]struct{})

	for _, w := range s.waves {
		for _, v := range s.vehicles {
			if _, ok := allowed[waveVehicle{w, v}]; ok {
				continue
			}
			skills[s.skillIDs[waveVehicleNegKey(w, v)]] = struct{}{}
		}
	}

	return sortedInts(skills)
}

// getTaskSkillsAssemblyVisits restricts a task to whichever vehicles visit
// one of the given assembly stopovers and (if requested) belong to the
// work's pickup/delivery group.
func (s *skillEncoder) getTaskSkillsAssemblyVisits(work *models.Work, visits []assemblyVisit, pickupGroup, deliveryGroup bool) []int {
	accessible := make(map[waveVehicle]struct{})

	for _, vis := range visits {
		for v := range s.assemblyVisits[vis.wave][vis.side][vis.id] {
			wv := waveVehicle{vis.wave, v}
			if pickupGroup {
				if _, ok := s.groupVehicles[work.Pickup.Group][wv]; !ok {
					continue
				}
			}
			if deliveryGroup {
				if _, ok := s.groupVehicles[work.Delivery.Group][wv]; !ok {
					continue
				}
			}
			accessible[wv] = struct{}{}
		}
	}

	return s.getTaskSkillsWaveVehicles(waveVehicleSlice(accessible))
}

// getTaskSkillsMeetShippedVehicle restricts a delivery task to the vehicle
// currently carrying the parcel (when shippedCanDeliver) plus any vehicle
// it will later meet at a rendezvous and that belongs to the work's
// delivery group, for every wave from that rendezvous onward.
func (s *skillEncoder) getTaskSkillsMeetShippedVehicle(work *models.Work, wave int, vehicle int64, shippedCanDeliver bool) []int {
	accessible := make(map[waveVehicle]struct{})

	if shippedCanDeliver {
		wv := waveVehicle{wave, vehicle}
		if _, ok := s.groupVehicles[work.Delivery.Group][wv]; ok {
			accessible[wv] = struct{}{}
		}
	}

	for w := wave + 1; w <= 3; w++ {
		for _, vs := range s.assemblyVisits[w]['s'] {
			if _, ok := vs[vehicle]; !ok {
				continue
			}
			for v := range vs {
				if _, ok := s.groupVehicles[work.Delivery.Group][waveVehicle{w, v}]; !ok {
					continue
				}
				for ww := w; ww <= 3; ww++ {
					accessible[waveVehicle{ww, v}] = struct{}{}
				}
			}
		}
	}

	return s.getTaskSkillsWaveVehicles(waveVehicleSlice(accessible))
}

// getTaskSkillsWaitingPickup restricts an unhandled pickup to vehicles
// eligible to both pick it up (in wave 1 or 2, since pickups are never
// handled in wave 3) and, for the same work, deliver it later at a shared
// vehicle or at a subsequent rendezvous.
func (s *skillEncoder) getTaskSkillsWaitingPickup(w *models.Work) []int {
	accessible := make(map[waveVehicle]struct{})

	for pickupWV := range s.groupVehicles[w.Pickup.Group] {
		pickupWave, pickupVehicle := pickupWV.wave, pickupWV.id
		if pickupWave != 1 && pickupWave != 2 {
			continue
		}

		for deliveryWV := range s.groupVehicles[w.Delivery.Group] {
			deliveryWave, deliveryVehicle := deliveryWV.wave, deliveryWV.id

			if pickupVehicle != deliveryVehicle && pickupWave >= deliveryWave {
				continue
			}
			if pickupVehicle == deliveryVehicle && pickupWave > deliveryWave {
				continue
			}

			for _, vs := range s.assemblyVisits[pickupWave]['e'] {
				_, pickupPresent := vs[pickupVehicle]
				_, deliveryPresent := vs[deliveryVehicle]
				if !pickupPresent || !deliveryPresent {
					continue
				}
				accessible[waveVehicle{pickupWave, pickupVehicle}] = struct{}{}
			}
		}
	}

	return s.getTaskSkillsWaveVehicles(waveVehicleSlice(accessible))
}

// getTaskSkillsWaitingShipment restricts a same-vehicle pickup+delivery
// shipment leg to vehicles eligible to pick it up in wave 1 or 2.
func (s *skillEncoder) getTaskSkillsWaitingShipment(w *models.Work) []int {
	accessible := make(map[waveVehicle]struct{})

	for wv := range s.groupVehicles[w.Pickup.Group] {
		if wv.wave != 1 && wv.wave != 2 {
			continue
		}
		accessible[wv] = struct{}{}
	}

	return s.getTaskSkillsWaveVehicles(waveVehicleSlice(accessible))
}

func waveVehicleSlice(set map[waveVehicle]struct{}) []waveVehicle {
	out := make([]waveVehicle, 0, len(set))
	for wv := range set {
		out = append(out, wv)
	}
	return out
}
