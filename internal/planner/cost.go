package planner

import "github.com/Yeong-ho/jeju-onul-api/pkg/solver"

// costFunction scores a candidate Second Optimization assignment by the
// total distance wave 3's vehicles still have left to drive: the sum of
// each wave 3 route's final cumulative distance. A vehicle with no route
// in the response (because no rendezvous time was pinned for its
// departure assembly yet) simply contributes nothing.
func costFunction(resp *solver.Response, ws *waves) int64 {
	routesByVehicle := make(map[int]solver.Route, len(resp.Routes))
	for _, r := range resp.Routes {
		routesByVehicle[r.Vehicle] = r
	}

	var total int64

	for i := range ws.w3.vehicles {
		vs := &ws.w3.vehicles[i]
		vehicleIndex := ws.w3.vehicleIDToIndex(vs.ID)

		route, ok := routesByVehicle[vehicleIndex]
		if !ok || len(route.Steps) == 0 {
			continue
		}

		total += int64(route.Steps[len(route.Steps)-1].Distance)
	}

	return total
}
