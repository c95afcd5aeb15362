// Package solver wraps the external VRP solver collaborator ("vroouty" in
// the wave planner's own deployment): a VRP-over-HTTP service that accepts
// jobs, shipments and vehicles with skill-subset eligibility constraints
// and returns an assignment of routes.
package solver

import "github.com/Yeong-ho/jeju-onul-api/internal/models"

// TimeWindow is an inclusive [start, end] unix-seconds work window.
type TimeWindow [2]int64

// Vehicle is one solver-facing vehicle definition.
type Vehicle struct {
	ID         int              `json:"id"`
	Profile    models.Profile   `json:"profile"`
	Start      models.Coordinate `json:"start"`
	End        *models.Coordinate `json:"end,omitempty"`
	Skills     []int            `json:"skills"`
	Wave       int              `json:"wave"`
	Capacity   []int            `json:"capacity,omitempty"`
	TimeWindow *TimeWindow      `json:"time_window,omitempty"`
}

// Job is one solver-facing single-stop task (a pickup or delivery that may
// be handled independently of its counterpart).
type Job struct {
	ID          int      `json:"id"`
	Description string   `json:"description,omitempty"`
	Location    models.Coordinate `json:"location"`
	Setup       int64    `json:"setup"`
	Service     int64    `json:"service"`
	Priority    int      `json:"priority,omitempty"`
	Skills      []int    `json:"skills"`
	Pickup      []int    `json:"pickup,omitempty"`
	Delivery    []int    `json:"delivery,omitempty"`
}

// ShipmentStep is one side (pickup or delivery) of a Shipment.
type ShipmentStep struct {
	ID          int    `json:"id"`
	Description string `json:"description,omitempty"`
	Location    models.Coordinate `json:"location"`
	Setup       int64  `json:"setup"`
	Service     int64  `json:"service"`
}

// Shipment is a solver-facing pickup+delivery pair that must be handled by
// the same vehicle, in order.
type Shipment struct {
	Pickup   ShipmentStep `json:"pickup"`
	Delivery ShipmentStep `json:"delivery"`
	Skills   []int        `json:"skills"`
	Amount   []int        `json:"amount,omitempty"`
}

// DistributeOptions are solver-wide tuning knobs.
type DistributeOptions struct {
	MaxVehicleWorkTime int64 `json:"max_vehicle_work_time"`
	CustomMatrix       struct {
		Enabled bool `json:"enabled"`
	} `json:"custom_matrix"`
}

// Request is the full body POSTed to the solver collaborator.
type Request struct {
	Jobs              []Job             `json:"jobs"`
	Shipments         []Shipment        `json:"shipments"`
	Vehicles          []Vehicle         `json:"vehicles"`
	DistributeOptions DistributeOptions `json:"distribute_options"`
}

// NewRequest returns a Request with the planner's standard distribute
// options pre-filled (a 24h per-vehicle work time ceiling and the custom
// distance/duration matrix turned on).
func NewRequest() Request {
	req := Request{
		Jobs:      []Job{},
		Shipments: []Shipment{},
		Vehicles:  []Vehicle{},
	}
	req.DistributeOptions.MaxVehicleWorkTime = 86400
	req.DistributeOptions.CustomMatrix.Enabled = true
	return req
}

// Step is one stop on an assigned route.
type Step struct {
	Type     string            `json:"type"`
	ID       *int              `json:"id,omitempty"`
	Arrival  int64             `json:"arrival"`
	Setup    int64             `json:"setup"`
	Service  int64             `json:"service"`
	Location models.Coordinate `json:"location"`
	Distance float64           `json:"distance"`
}

// Route is one vehicle's assigned sequence of steps.
type Route struct {
	Vehicle int    `json:"vehicle"`
	Steps   []Step `json:"steps"`
}

// Unassigned names a job/shipment step the solver could not place.
type Unassigned struct {
	ID int `json:"id"`
}

// Response is the full body the solver collaborator returns.
type Response struct {
	Routes     []Route      `json:"routes"`
	Unassigned []Unassigned `json:"unassigned"`
}
