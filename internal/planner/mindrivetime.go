package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yeong-ho/jeju-onul-api/internal/metrics"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"
)

// pruneSkills drops every negative skill that either no job/shipment uses,
// or that every vehicle already carries (and so constrains nothing). The
// solver's skill-subset matching is unaffected; this only shrinks the wire
// payload and the matching work the solver has to do per candidate vehicle.
func pruneSkills(req *solver.Request) {
	usedUnion := make(map[int]struct{})

	for _, j := range req.Jobs {
		for _, s := range j.Skills {
			usedUnion[s] = struct{}{}
		}
	}
	for _, s := range req.Shipments {
		for _, sk := range s.Skills {
			usedUnion[sk] = struct{}{}
		}
	}

	var intersect map[int]struct{}
	for _, v := range req.Vehicles {
		have := make(map[int]struct{}, len(v.Skills))
		for _, s := range v.Skills {
			have[s] = struct{}{}
		}
		if intersect == nil {
			intersect = have
			continue
		}
		for s := range intersect {
			if _, ok := have[s]; !ok {
				delete(intersect, s)
			}
		}
	}
	if intersect == nil {
		intersect = make(map[int]struct{})
	}

	for s := range intersect {
		delete(usedUnion, s)
	}

	filter := func(skills []int) []int {
		out := make([]int, 0, len(skills))
		for _, s := range skills {
			if _, ok := usedUnion[s]; ok {
				out = append(out, s)
			}
		}
		return out
	}

	for i := range req.Jobs {
		req.Jobs[i].Skills = filter(req.Jobs[i].Skills)
	}
	for i := range req.Shipments {
		req.Shipments[i].Skills = filter(req.Shipments[i].Skills)
	}
	for i := range req.Vehicles {
		req.Vehicles[i].Skills = filter(req.Vehicles[i].Skills)
	}
}

// minimumEndTime bisects the earliest end time that still lets the solver
// place every must-handle job/shipment step, by repeatedly narrowing the
// time window of minimumTimeVehicles and re-solving. It converges to within
// 1000 seconds rather than exactly, trading precision for solver calls.
func (h *Handler) minimumEndTime(
	ctx context.Context,
	req *solver.Request,
	start int64,
	minimumTimeVehicles map[int]struct{},
	mustHandleIDs map[int]struct{},
) (*solver.Response, error) {
	pruneSkills(req)

	originalVehicles := make([]solver.Vehicle, len(req.Vehicles))
	copy(originalVehicles, req.Vehicles)

	const timeThreshold = int64(1000)
	l, r := start, start+86400

	var best *solver.Response
	iterations := 0

	for l+timeThreshold < r {
		c := (l + r) / 2
		iterations++

		for i, v := range req.Vehicles {
			if _, ok := minimumTimeVehicles[v.ID]; !ok {
				continue
			}

			tw := originalVehicles[i].TimeWindow
			var newTW solver.TimeWindow
			if tw != nil && tw[0] > c {
				newTW = solver.TimeWindow{tw[0], tw[0]}
			} else if tw != nil {
				newTW = solver.TimeWindow{tw[0], c}
			}
			req.Vehicles[i].TimeWindow = &newTW
		}

		resp, err := h.solver.Solve(ctx, *req)
		if err != nil {
			if errors.Is(err, solver.ErrUpstreamStatus) {
				return nil, fmt.Errorf("minimum end time: %w: %w", ErrSolverUpstream, err)
			}
			return nil, fmt.Errorf("minimum end time: %w", err)
		}

		unassignedHasMustHandle := false
		for _, u := range resp.Unassigned {
			if _, ok := mustHandleIDs[u.ID]; ok {
				unassignedHasMustHandle = true
				break
			}
		}

		if unassignedHasMustHandle {
			l = c
		} else {
			r = c
			best = resp
		}
	}

	metrics.MinimumEndTimeIterations.Observe(float64(iterations))

	if best == nil {
		return &solver.Response{}, nil
	}
	return best, nil
}
