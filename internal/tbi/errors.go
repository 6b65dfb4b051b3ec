package tbi

import "fmt"

// InvalidProfileError reports a profile field that failed validation.
type InvalidProfileError struct {
	Field  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("tbi: invalid profile field %q: %s", e.Field, e.Reason)
}

// UnsupportedIndicatorDomainError reports an input that falls outside every
// scoring function's defined domain. It signals a gap in the indicator
// definitions rather than a caller mistake, and is expected to be rare.
type UnsupportedIndicatorDomainError struct {
	Indicator string
	Reason    string
}

func (e *UnsupportedIndicatorDomainError) Error() string {
	return fmt.Sprintf("tbi: indicator %s: unsupported domain: %s", e.Indicator, e.Reason)
}
