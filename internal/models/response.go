package models

// VehicleTasks is one vehicle's finalized, ordered task list for a wave.
type VehicleTasks struct {
	VehicleID int64  `json:"vehicle_id"`
	Tasks     []Task `json:"tasks"`
}

// VehicleSwaps is one vehicle's hand-off manifest at a rendezvous: what it
// drops off (down) and what it picks up (up).
type VehicleSwaps struct {
	VehicleID    int64   `json:"vehicle_id"`
	AssemblyID   int64   `json:"assembly_id"`
	StopoverTime *int64  `json:"stopover_time,omitempty"`
	Down         []int64 `json:"down"`
	Up           []int64 `json:"up"`
}

// Response is the full output of a wave planning run.
type Response struct {
	V       string         `json:"v"`
	Wave1   []VehicleTasks `json:"wave_1"`
	Swap12  []VehicleSwaps `json:"swap_1_2"`
	Wave2   []VehicleTasks `json:"wave_2"`
	Swap23  []VehicleSwaps `json:"swap_2_3"`
	Wave3   []VehicleTasks `json:"wave_3"`
}
