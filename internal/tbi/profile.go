// Package tbi implements the Trading Behavior Intelligence engine: a pure,
// deterministic derivation of named behavioral indicators from a person's
// name, date of birth, and a reference date. The engine performs no I/O and
// reads no clocks beyond the supplied reference date; identical profiles
// always yield identical indicator values.
package tbi

import (
	"strings"
	"time"
)

// Date layouts accepted by ParseDate. The slash layout matches the wire
// format used by upstream producers.
const (
	DateLayoutISO   = "2006-01-02"
	DateLayoutSlash = "02/01/2006"
)

// Profile is the validated, immutable input to the engine.
type Profile struct {
	// Name is the person's full name, normalized (case-folded, diacritics
	// stripped, whitespace collapsed) at construction.
	Name string `json:"name"`
	// RawName preserves the name exactly as supplied.
	RawName string `json:"raw_name"`
	// DateOfBirth is the birth date at UTC midnight.
	DateOfBirth time.Time `json:"date_of_birth"`
	// ReferenceDate anchors the cyclical indicators. It is always strictly
	// after DateOfBirth.
	ReferenceDate time.Time `json:"reference_date"`
}

// NewProfile validates and normalizes the inputs. Dates are truncated to UTC
// midnight. The reference date must be strictly after the date of birth.
func NewProfile(name string, dob, ref time.Time) (Profile, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Profile{}, &InvalidProfileError{Field: "name", Reason: "must not be empty"}
	}

	if dob.IsZero() {
		return Profile{}, &InvalidProfileError{Field: "date_of_birth", Reason: "must be set"}
	}
	if ref.IsZero() {
		return Profile{}, &InvalidProfileError{Field: "reference_date", Reason: "must be set"}
	}

	dobDay := midnightUTC(dob)
	refDay := midnightUTC(ref)
	if !dobDay.Before(refDay) {
		return Profile{}, &InvalidProfileError{
			Field:  "date_of_birth",
			Reason: "must be strictly before the reference date",
		}
	}

	return Profile{
		Name:          NormalizeName(trimmed),
		RawName:       trimmed,
		DateOfBirth:   dobDay,
		ReferenceDate: refDay,
	}, nil
}

// ParseDate parses a calendar date in ISO (2006-01-02) or slash (02/01/2006)
// form, returning it at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayoutISO, DateLayoutSlash} {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), nil
		}
	}
	return time.Time{}, &InvalidProfileError{
		Field:  "date",
		Reason: "unrecognized format, want YYYY-MM-DD or DD/MM/YYYY",
	}
}

// Age returns the full years elapsed from the date of birth to the reference
// date. A Feb 29 birthday has not been reached on Feb 28 of a common year;
// its anniversary falls on Mar 1.
func (p Profile) Age() int {
	age := p.ReferenceDate.Year() - p.DateOfBirth.Year()
	refM, refD := int(p.ReferenceDate.Month()), p.ReferenceDate.Day()
	dobM, dobD := int(p.DateOfBirth.Month()), p.DateOfBirth.Day()
	if refM < dobM || (refM == dobM && refD < dobD) {
		age--
	}
	return age
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
