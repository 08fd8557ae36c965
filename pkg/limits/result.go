package limits

import "encoding/json"

// ResultState identifies which variant a Result holds.
type ResultState string

const (
	// StateLoading means the snapshot has not been fetched yet.
	StateLoading ResultState = "loading"

	// StateReady means both inputs were fetched and evaluated.
	StateReady ResultState = "ready"

	// StateUnavailable means a fetch or evaluation failed and no
	// status can be shown.
	StateUnavailable ResultState = "unavailable"
)

// Result is the explicit tri-state outcome of a status snapshot:
// Loading, Ready with a Status, or Unavailable with an error.
//
// Modeling the placeholder states as variants keeps null sentinels out of
// the view layer: a consumer switches on State and only reads Status when
// the result is ready.
type Result struct {
	state  ResultState
	status *Status
	err    error
}

// Loading returns the placeholder result used before a snapshot completes.
func Loading() Result {
	return Result{state: StateLoading}
}

// Ready wraps an evaluated status.
func Ready(status *Status) Result {
	return Result{state: StateReady, status: status}
}

// Unavailable wraps a fetch or evaluation failure.
func Unavailable(err error) Result {
	return Result{state: StateUnavailable, err: err}
}

// State returns the variant of the result.
func (r Result) State() ResultState {
	return r.state
}

// IsReady reports whether the result carries a status.
func (r Result) IsReady() bool {
	return r.state == StateReady
}

// Status returns the evaluated status, or nil unless the result is ready.
func (r Result) Status() *Status {
	return r.status
}

// Err returns the failure, or nil unless the result is unavailable.
func (r Result) Err() error {
	return r.err
}

// MarshalJSON encodes the result as a tagged union:
//
//	{"state":"ready","status":{...}}
//	{"state":"unavailable","error":"..."}
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		State  ResultState `json:"state"`
		Status *Status     `json:"status,omitempty"`
		Error  string      `json:"error,omitempty"`
	}{
		State:  r.state,
		Status: r.status,
	}
	if r.err != nil {
		out.Error = r.err.Error()
	}
	return json.Marshal(out)
}
