package planner

import (
	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Zone is a named delivery group boundary used to pre-assign work items'
// pickup/delivery points to a group before a v2 request reaches the
// pipeline, instead of requiring the caller to already know each point's
// group.
type Zone struct {
	Group   string
	Polygon orb.Polygon
}

// ZonesFromBoundaries builds the zone list a single request's boundary
// polygons describe. Each boundary's ring is closed if the caller didn't
// already repeat its first point as its last.
func ZonesFromBoundaries(boundaries []models.Boundary) []Zone {
	zones := make([]Zone, 0, len(boundaries))
	for _, b := range boundaries {
		if len(b.Polygon) < 3 {
			continue
		}

		ring := make(orb.Ring, len(b.Polygon))
		for i, c := range b.Polygon {
			ring[i] = orb.Point{c[0], c[1]}
		}
		if !ring[0].Equal(ring[len(ring)-1]) {
			ring = append(ring, ring[0])
		}

		zones = append(zones, Zone{Group: b.ID, Polygon: orb.Polygon{ring}})
	}
	return zones
}

// AssignGroup returns the name of the first zone whose polygon contains
// the given coordinate, or "" if no zone claims it.
func AssignGroup(zones []Zone, location models.Coordinate) string {
	point := orb.Point{location[0], location[1]}

	for _, z := range zones {
		if planar.PolygonContains(z.Polygon, point) {
			return z.Group
		}
	}

	return ""
}

// AssignWorkGroups fills in Pickup.Group and Delivery.Group for every work
// item whose group is still empty, by testing its pickup/delivery location
// against the given zones.
func AssignWorkGroups(zones []Zone, works []models.Work) {
	for i := range works {
		w := &works[i]
		if w.Pickup.Group == "" {
			w.Pickup.Group = AssignGroup(zones, w.Pickup.Location)
		}
		if w.Delivery.Group == "" {
			w.Delivery.Group = AssignGroup(zones, w.Delivery.Location)
		}
	}
}
