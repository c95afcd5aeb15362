package planner

import "errors"

// Sentinel errors returned by the planning pipeline; internal/handlers maps
// these to HTTP status codes.
var (
	// ErrMissingStopoverTime is returned when a must-handle job remains
	// unassigned after First Optimization and the wave 2 schedule carries no
	// assembly_stopover_time to fall back on.
	ErrMissingStopoverTime = errors.New("assembly_stopover_time is required on wave 1 ended")

	// ErrUnsupportedStatus is returned when Second Optimization is asked to
	// build a plan for a current_status it does not know how to classify
	// work items for.
	ErrUnsupportedStatus = errors.New("current_status not supported yet")

	// ErrSwapReconciliation is returned when a work item's pickup and
	// delivery vehicles disagree about where they should have met.
	ErrSwapReconciliation = errors.New("swap reconciliation failed")

	// ErrSolverUpstream is returned when the VRP solver collaborator
	// responds with a non-200 status.
	ErrSolverUpstream = errors.New("solver upstream error")
)
