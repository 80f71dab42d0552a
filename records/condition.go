// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records

import (
	"strings"

	"github.com/F-K-C/projeto-hefesto/fault"
)

// Condition - material condition of a registered item
type Condition uint64

// possible conditions
// zero is reserved as an invalid marker so a missing field cannot
// decode as a valid condition
const (
	New Condition = iota + 1
	InUse
	Maintenance
	Decommissioned
	conditionLimit
)

var conditionNames = map[Condition]string{
	New:            "new",
	InUse:          "in-use",
	Maintenance:    "maintenance",
	Decommissioned: "decommissioned",
}

// ConditionFromString - parse a condition name, case insensitive
func ConditionFromString(s string) (Condition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range conditionNames {
		if name == s {
			return c, nil
		}
	}
	return Condition(0), fault.InvalidCondition
}

// ConditionFromUint64 - validate a numeric condition from a packed record
func ConditionFromUint64(u uint64) (Condition, error) {
	c := Condition(u)
	if c < New || c >= conditionLimit {
		return Condition(0), fault.InvalidCondition
	}
	return c, nil
}

// String - name of the condition
func (condition Condition) String() string {
	if name, ok := conditionNames[condition]; ok {
		return name
	}
	return "invalid"
}

// Uint64 - numeric form for packing
func (condition Condition) Uint64() uint64 {
	return uint64(condition)
}

// MarshalText - name for JSON encoding
func (condition Condition) MarshalText() ([]byte, error) {
	if _, ok := conditionNames[condition]; !ok {
		return nil, fault.InvalidCondition
	}
	return []byte(condition.String()), nil
}

// UnmarshalText - parse name from JSON
func (condition *Condition) UnmarshalText(s []byte) error {
	c, err := ConditionFromString(string(s))
	if nil != err {
		return err
	}
	*condition = c
	return nil
}
