// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records

// State - lifecycle state of a transfer operation
type State uint64

// state machine values
//
// None is the absence sentinel and is never stored; Approved, Emergency
// and Cancelled are terminal - no transition leaves them
const (
	None State = iota
	Pending
	Approved
	Emergency
	Cancelled
	stateLimit
)

var stateNames = [stateLimit]string{
	None:      "none",
	Pending:   "pending",
	Approved:  "approved",
	Emergency: "emergency",
	Cancelled: "cancelled",
}

// String - name of the state
func (state State) String() string {
	if state < stateLimit {
		return stateNames[state]
	}
	return "unknown"
}

// IsTerminal - true when no further transition is allowed
func (state State) IsTerminal() bool {
	switch state {
	case Approved, Emergency, Cancelled:
		return true
	}
	return false
}

// MarshalText - name for JSON encoding
func (state State) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}

// UnmarshalText - parse name from JSON
func (state *State) UnmarshalText(s []byte) error {
	for i, name := range stateNames {
		if name == string(s) {
			*state = State(i)
			return nil
		}
	}
	*state = None
	return nil
}
