// Package planner implements the multi-wave delivery optimization pipeline:
// First Optimization decides which wave handles each pickup and pins
// rendezvous times, Second Optimization builds the full three-wave plan
// around those rendezvous times, and reconciliation turns the solver's
// route assignment into per-vehicle task schedules and swap manifests.
package planner

import (
	"context"
	"fmt"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/routing"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"
)

// Handler runs one planning request end to end. It is built fresh per
// request; none of its state is shared or persisted across requests.
type Handler struct {
	vehicleDict  map[int64]models.Vehicle
	assemblyDict map[int64]models.Assembly
	workDict     map[int64]*models.Work

	skills *skillEncoder
	index  *workIndex
	waves  *waves

	wave1DonePickups    map[int64]int64
	wave1DoneDeliveries map[int64]int64
	wave1Departed       map[int64]struct{}
	wave1Arrived        map[int64]struct{}

	wave1Pickups   map[int64]int64
	wave1Shipments map[int64]int64

	swap12Down map[int64]int64
	swap12Up   map[int64]int64

	wave2Pickups        map[int64]int64
	wave2Shipments      map[int64]int64
	wave2StopoverTimes  map[int64]int64

	swap23Down map[int64]int64
	swap23Up   map[int64]int64

	solver  *solver.Client
	routing *routing.Client
	pool    *routingPool

	version string
}

// Deps bundles the external collaborators a Handler needs.
type Deps struct {
	Solver  *solver.Client
	Routing *routing.Client
	Pool    *routingPool
	Version string
}

// NewHandler builds a Handler from one planning request, indexing vehicles,
// assemblies and works, deriving the negative-skill encoding, and (for
// current_status=stopover) reconstructing the wave 1/2 swap manifests
// already committed by a prior run.
func NewHandler(req *models.Request, deps Deps) *Handler {
	h := &Handler{
		vehicleDict:  make(map[int64]models.Vehicle, len(req.Vehicles)),
		assemblyDict: make(map[int64]models.Assembly, len(req.Assemblies)),
		workDict:     make(map[int64]*models.Work, len(req.Works)),

		index: newWorkIndex(),
		waves: newWaves(req.Schedules),

		wave1DonePickups:    make(map[int64]int64),
		wave1DoneDeliveries: make(map[int64]int64),
		wave1Departed:       make(map[int64]struct{}),
		wave1Arrived:        make(map[int64]struct{}),
		wave1Pickups:        make(map[int64]int64),
		wave1Shipments:      make(map[int64]int64),
		swap12Down:          make(map[int64]int64),
		swap12Up:            make(map[int64]int64),
		wave2Pickups:        make(map[int64]int64),
		wave2Shipments:      make(map[int64]int64),
		wave2StopoverTimes:  make(map[int64]int64),
		swap23Down:          make(map[int64]int64),
		swap23Up:            make(map[int64]int64),

		solver:  deps.Solver,
		routing: deps.Routing,
		pool:    deps.Pool,
		version: deps.Version,
	}

	for _, v := range req.Vehicles {
		h.vehicleDict[v.ID] = v
	}
	for _, a := range req.Assemblies {
		h.assemblyDict[a.ID] = a
	}
	for i := range req.Works {
		h.workDict[req.Works[i].ID] = &req.Works[i]
	}

	h.skills = newSkillEncoder(req.Vehicles, req.Assemblies, req.Schedules)

	for _, vs := range h.waves.w1.vehicles {
		for _, t := range vs.Tasks {
			if !t.Done {
				continue
			}
			switch t.Type {
			case models.TaskPickup:
				if t.WorkID != nil {
					h.wave1DonePickups[*t.WorkID] = vs.ID
				}
			case models.TaskDelivery:
				if t.WorkID != nil {
					h.wave1DoneDeliveries[*t.WorkID] = vs.ID
				}
			case models.TaskDeparture:
				h.wave1Departed[vs.ID] = struct{}{}
			case models.TaskArrival:
				h.wave1Arrived[vs.ID] = struct{}{}
			}
		}
	}

	if req.CurrentStatusOrDefault() == models.StatusStopover {
		for _, vs := range h.waves.w1.vehicles {
			for _, d := range vs.Down {
				h.swap12Down[d] = vs.ID
			}
		}
		for _, vs := range h.waves.w2.vehicles {
			for _, u := range vs.Up {
				h.swap12Up[u] = vs.ID
			}
			for _, d := range vs.Down {
				h.swap23Down[d] = vs.ID
			}
		}
		for _, vs := range h.waves.w3.vehicles {
			for _, u := range vs.Up {
				h.swap23Up[u] = vs.ID
			}
		}
	}

	return h
}

// Plan runs the full pipeline: First Optimization, then either a single
// Second Optimization pass (handle_pickup) or a search over candidate
// rendezvous offsets (select_best), and finally reconciliation into the
// final response.
func (h *Handler) Plan(ctx context.Context, req *models.Request) (*models.Response, error) {
	algo := req.Algorithm.SecondAssembly.WithDefaults()

	if err := h.firstOptimization(ctx, req); err != nil {
		return nil, fmt.Errorf("first optimization: %w", err)
	}

	var best *solver.Response
	var bestStopover map[int64]int64

	switch algo.Type {
	case models.AlgorithmSelectBest:
		bestCost := int64(-1)
		for _, candidate := range algo.AssemblyTimeCandidates {
			stopoverTime := make(map[int64]int64, len(h.assemblyDict))
			for aid := range h.assemblyDict {
				stopoverTime[aid] = *h.waves.w2.startTime + candidate
			}

			resp, err := h.secondOptimization(ctx, req, stopoverTime)
			if err != nil {
				continue
			}

			cost := costFunction(resp, h.waves)
			if bestCost == -1 || cost < bestCost {
				bestCost = cost
				best = resp
				bestStopover = stopoverTime
			}
		}
		if best == nil {
			return nil, fmt.Errorf("second optimization: no candidate rendezvous offset produced a feasible plan")
		}

	default:
		resp, err := h.secondOptimization(ctx, req, h.wave2StopoverTimes)
		if err != nil {
			return nil, fmt.Errorf("second optimization: %w", err)
		}
		best = resp
		bestStopover = h.wave2StopoverTimes
	}

	resp, err := h.makeResponse(ctx, req, best, bestStopover)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	resp.V = h.version

	return resp, nil
}
