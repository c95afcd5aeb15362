// Package models holds the request/response and internal domain types
// shared by the wave planning pipeline.
package models

// Coordinate is a [longitude, latitude] pair, matching the solver and
// routing collaborators' wire format.
type Coordinate [2]float64

// Profile names a routing engine vehicle profile (e.g. "car").
type Profile string

const (
	ProfileCar Profile = "car"
)

// WorkStatusType classifies the current handling state of a Work item.
type WorkStatusType string

const (
	WorkStatusWaiting        WorkStatusType = "waiting"
	WorkStatusShipped        WorkStatusType = "shipped"
	WorkStatusAssembly       WorkStatusType = "assembly"
	WorkStatusDone           WorkStatusType = "done"
	WorkStatusHandlePickup   WorkStatusType = "handle_pickup"
	WorkStatusHandleDelivery WorkStatusType = "handle_delivery"
)

// TaskType classifies a single scheduled stop.
type TaskType string

const (
	TaskPickup    TaskType = "pickup"
	TaskDelivery  TaskType = "delivery"
	TaskArrival   TaskType = "arrival"
	TaskDeparture TaskType = "departure"
	TaskWaiting   TaskType = "waiting"
)

// Priority constants mirror the solver's priority scale; only HIGHEST is
// currently assigned to a job, the remainder document the full ladder.
const (
	PriorityMustHaveTo = 99
	PriorityHighest    = 40
	PriorityHigh       = 30
	PriorityMedium     = 20
	PriorityLow        = 10
	PriorityLowest     = 0
)

// Task is a single scheduled stop on a vehicle's route.
type Task struct {
	WorkID      *int64     `json:"work_id,omitempty"`
	Type        TaskType   `json:"type"`
	ETA         int64      `json:"eta"`
	Duration    float64    `json:"duration"`
	Distance    float64    `json:"distance"`
	SetupTime   int64      `json:"setup_time"`
	ServiceTime int64      `json:"service_time"`
	AssemblyID  *int64     `json:"assembly_id,omitempty"`
	Location    Coordinate `json:"location"`
	Done        bool       `json:"done"`
}

// Vehicle describes a delivery vehicle's static attributes.
type Vehicle struct {
	ID       int64      `json:"id"`
	Profile  Profile    `json:"profile"`
	Location Coordinate `json:"location"`
	Capacity []int      `json:"capacity,omitempty"`
}

// WorkPoint is either the pickup or delivery side of a Work item.
type WorkPoint struct {
	Location    Coordinate `json:"location"`
	Group       string     `json:"group"`
	SetupTime   int64      `json:"setup_time"`
	ServiceTime int64      `json:"service_time"`
}

// WorkStatus carries the current handling state of a Work item plus the
// vehicle/assembly it is currently associated with, when applicable.
type WorkStatus struct {
	Type       WorkStatusType `json:"type"`
	VehicleID  *int64         `json:"vehicle_id,omitempty"`
	AssemblyID *int64         `json:"assembly_id,omitempty"`
}

// Work is a single pickup-and-delivery order.
type Work struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Pickup      WorkPoint  `json:"pickup"`
	Delivery    WorkPoint  `json:"delivery"`
	Amount      []int      `json:"amount,omitempty"`
	Status      WorkStatus `json:"status"`
}

// Assembly is a physical rendezvous hub where vehicles swap parcels between
// waves.
type Assembly struct {
	ID       int64      `json:"id"`
	Location Coordinate `json:"location"`
}

// VehicleSchedule is one vehicle's plan for a single wave, as known prior to
// optimization (including any already-completed tasks).
type VehicleSchedule struct {
	ID             int64   `json:"id"`
	FromAssemblyID int64   `json:"from_assembly_id"`
	ToAssemblyID   *int64  `json:"to_assembly_id,omitempty"`
	Group          *string `json:"group,omitempty"`
	Tasks          []Task  `json:"tasks"`
	Up             []int64 `json:"up,omitempty"`
	Down           []int64 `json:"down,omitempty"`
	// Running defaults to true when omitted; nil and true are equivalent.
	Running *bool `json:"running,omitempty"`
}

// FirstUndoneTask returns the earliest pickup/delivery task not yet marked
// done, or nil if every pickup/delivery task is done.
func (vs *VehicleSchedule) FirstUndoneTask() *Task {
	for i := range vs.Tasks {
		t := &vs.Tasks[i]
		if !t.Done && (t.Type == TaskPickup || t.Type == TaskDelivery) {
			return t
		}
	}
	return nil
}

// IsRunning reports whether the vehicle is actively driving toward its
// first undone task (the default when the field is omitted).
func (vs *VehicleSchedule) IsRunning() bool {
	return vs.Running == nil || *vs.Running
}
