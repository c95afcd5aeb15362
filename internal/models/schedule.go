package models

// CurrentStatus describes which phase of the delivery day the requesting
// fleet is currently in.
type CurrentStatus string

const (
	StatusWait     CurrentStatus = "wait"
	StatusWave1    CurrentStatus = "wave_1"
	StatusStopover CurrentStatus = "stopover"
	StatusWave2    CurrentStatus = "wave_2"
)

// AssemblyStopoverTime pins an assembly's wave 2/3 rendezvous time committed
// by a prior plan. The planner reads it from the wave 2 schedule only.
type AssemblyStopoverTime struct {
	AssemblyID   int64 `json:"assembly_id"`
	StopoverTime int64 `json:"stopover_time"`
}

// DefaultStopoverWaitingTime is the time budgeted for loading/unloading at
// a wave 2/3 rendezvous when a schedule omits stopover_waiting_time.
const DefaultStopoverWaitingTime = 900

// Schedule is the vehicle roster and timing window for a single wave.
type Schedule struct {
	Start                *int64                  `json:"start,omitempty"`
	End                  *int64                  `json:"end,omitempty"`
	Vehicles             []VehicleSchedule       `json:"vehicles"`
	AssemblyStopoverTime []AssemblyStopoverTime  `json:"assembly_stopover_time,omitempty"`
	StopoverWaitingTime  *int64                  `json:"stopover_waiting_time,omitempty"`
}

// StopoverWaitingTimeOrDefault returns the configured stopover waiting time
// or DefaultStopoverWaitingTime when omitted.
func (s *Schedule) StopoverWaitingTimeOrDefault() int64 {
	if s.StopoverWaitingTime != nil {
		return *s.StopoverWaitingTime
	}
	return DefaultStopoverWaitingTime
}

// Schedules bundles the three wave schedules of a single planning request.
type Schedules struct {
	Wave1 Schedule `json:"wave_1"`
	Wave2 Schedule `json:"wave_2"`
	Wave3 Schedule `json:"wave_3"`
}

// SecondAssemblyAlgorithmType selects how the second-wave rendezvous time
// is chosen.
type SecondAssemblyAlgorithmType string

const (
	// AlgorithmHandlePickup runs Second Optimization once using the
	// rendezvous times First Optimization already pinned.
	AlgorithmHandlePickup SecondAssemblyAlgorithmType = "handle_pickup"
	// AlgorithmSelectBest tries several uniform rendezvous-time candidates
	// and keeps whichever minimizes wave 3's total travel distance.
	AlgorithmSelectBest SecondAssemblyAlgorithmType = "select_best"
)

// DefaultAssemblyTimeCandidates mirrors the original's default uniform
// rendezvous-offset candidates, in seconds after wave 2's start.
var DefaultAssemblyTimeCandidates = []int64{7200, 10800, 14400, 18000}

// SecondAssemblyAlgorithm configures the second-rendezvous-time decision.
type SecondAssemblyAlgorithm struct {
	Type                    SecondAssemblyAlgorithmType `json:"type"`
	AssemblyTimeCandidates  []int64                     `json:"assembly_time_candidates,omitempty"`
}

// WithDefaults fills in the default algorithm type and candidate list when
// left zero-valued, mirroring the original's pydantic field defaults.
func (a SecondAssemblyAlgorithm) WithDefaults() SecondAssemblyAlgorithm {
	if a.Type == "" {
		a.Type = AlgorithmHandlePickup
	}
	if a.AssemblyTimeCandidates == nil {
		a.AssemblyTimeCandidates = DefaultAssemblyTimeCandidates
	}
	return a
}

// Algorithm groups the pipeline's tunable decision points.
type Algorithm struct {
	SecondAssembly SecondAssemblyAlgorithm `json:"second_assembly"`
}

// Boundary is a named delivery zone polygon carried on the request itself,
// so a caller can re-draw its delivery groups per request instead of
// relying on server-side configuration.
type Boundary struct {
	ID      string       `json:"id"`
	Polygon []Coordinate `json:"polygon"`
}

// Request is the full input to a wave planning run.
type Request struct {
	CurrentTime   int64         `json:"current_time"`
	CurrentStatus CurrentStatus `json:"current_status,omitempty"`
	Vehicles      []Vehicle     `json:"vehicles"`
	Works         []Work        `json:"works"`
	Assemblies    []Assembly    `json:"assemblies"`
	Boundaries    []Boundary    `json:"boundaries,omitempty"`
	Schedules     Schedules     `json:"schedules"`
	Algorithm     Algorithm     `json:"algorithm,omitempty"`
}

// CurrentStatusOrDefault returns the request's current status, defaulting
// to StatusWait when omitted.
func (r *Request) CurrentStatusOrDefault() CurrentStatus {
	if r.CurrentStatus == "" {
		return StatusWait
	}
	return r.CurrentStatus
}
