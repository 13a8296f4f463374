package sim

import (
	"encoding/json"
	"fmt"
)

// The State struct is itself the save format: every field round-trips
// through JSON losslessly, so a restored state replays identically to the
// original given the same seed and inputs.

// MarshalState encodes a state for persistence.
func MarshalState(st State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("sim: cannot encode state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a persisted state.
func UnmarshalState(data []byte) (State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("sim: cannot decode state: %w", err)
	}
	return st, nil
}
