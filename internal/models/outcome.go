package models

// Stage identifies the resolution step a lookup failed in.
type Stage string

const (
	// StageAddress is the postal code to address step.
	StageAddress Stage = "address"
	// StageCoordinates is the address to coordinates step.
	StageCoordinates Stage = "coordinates"
)

// OutcomeKind tags the result of a single lookup run.
type OutcomeKind string

const (
	// OutcomeSkipped means the postal code was empty and nothing happened.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeSuccess means the marker was placed and the view recentered.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeNotFound means one of the upstream services did not know the input.
	OutcomeNotFound OutcomeKind = "not_found"
	// OutcomeTransportError means an upstream call or its decoding failed.
	OutcomeTransportError OutcomeKind = "transport_error"
	// OutcomeSurfaceError means both lookups succeeded but the map could not be updated.
	OutcomeSurfaceError OutcomeKind = "surface_error"
	// OutcomeStale means a newer run or a teardown superseded this run and its effects were dropped.
	OutcomeStale OutcomeKind = "stale"
)

// Outcome is the tagged result of one lookup run. It is consumed right away and never stored.
type Outcome struct {
	Kind       OutcomeKind // Kind is the result tag.
	Stage      Stage       // Stage is set for NotFound and TransportError.
	Address    *Address    // Address is set once the directory step succeeded.
	Coordinate *Coordinate // Coordinate is set for Success and SurfaceError.
	Err        error       // Err carries the underlying failure, if any.
}

// Success builds a successful outcome.
func Success(addr Address, coords Coordinate) Outcome {
	return Outcome{Kind: OutcomeSuccess, Address: &addr, Coordinate: &coords}
}

// NotFound builds a not-found outcome for the given stage.
func NotFound(stage Stage, err error) Outcome {
	return Outcome{Kind: OutcomeNotFound, Stage: stage, Err: err}
}

// TransportError builds a transport failure outcome for the given stage.
func TransportError(stage Stage, err error) Outcome {
	return Outcome{Kind: OutcomeTransportError, Stage: stage, Err: err}
}
