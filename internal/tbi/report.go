package tbi

import "time"

// Value is one computed indicator. Score always lies within [0, Max].
// Set carries the full member list for set-valued indicators, Category the
// enumerated outcome for categorical ones.
type Value struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Score       int    `json:"score"`
	Max         int    `json:"max"`
	Set         []int  `json:"set,omitempty"`
	Category    string `json:"category,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// Report is the complete indicator set derived from one profile, in stable
// declaration order. Values depend only on the profile fields; ComputedAt is
// bookkeeping metadata and not part of the deterministic payload.
type Report struct {
	Profile    Profile   `json:"profile"`
	Values     []Value   `json:"indicators"`
	ComputedAt time.Time `json:"computed_at"`
}

// Get returns the value for key, if declared.
func (r *Report) Get(key string) (Value, bool) {
	for _, v := range r.Values {
		if v.Key == key {
			return v, true
		}
	}
	return Value{}, false
}

// Keys lists the indicator keys in declaration order.
func (r *Report) Keys() []string {
	keys := make([]string, len(r.Values))
	for i, v := range r.Values {
		keys[i] = v.Key
	}
	return keys
}
