package tbi

import "time"

// Compute derives the full indicator report for a validated profile. The
// computation is pure over the profile fields and safe for concurrent use;
// either every declared indicator is present or an error is returned with
// no partial report.
func Compute(profile Profile) (*Report, error) {
	features, err := NewFeatures(profile)
	if err != nil {
		return nil, err
	}

	values := make([]Value, 0, len(registry))
	for _, ind := range registry {
		values = append(values, ind.finalize(ind.compute(features)))
	}

	return &Report{
		Profile:    profile,
		Values:     values,
		ComputedAt: time.Now().UTC(),
	}, nil
}

// ComputeIndicator derives a single indicator by key. Unknown keys fail
// with UnsupportedIndicatorDomainError.
func ComputeIndicator(profile Profile, key string) (Value, error) {
	ind, err := Lookup(key)
	if err != nil {
		return Value{}, err
	}
	features, err := NewFeatures(profile)
	if err != nil {
		return Value{}, err
	}
	return ind.finalize(ind.compute(features)), nil
}
