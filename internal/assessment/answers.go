// Package assessment implements the scoring and selection-state engine
// for the AFS assessment wizard. Everything here is pure: state flows in
// as snapshots and results flow out, with no I/O and no package-level
// mutable state. Persistence and rendering are the callers' problem.
package assessment

import (
	"bytes"
	"fmt"
)

// Answer is a tri-state response to a single yes/no question.
// The zero value is Unanswered.
type Answer int8

const (
	Unanswered Answer = iota
	No
	Yes
)

// String returns "yes", "no" or "unanswered".
func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unanswered"
	}
}

var jsonNull = []byte("null")

// MarshalJSON encodes the wire form: true, false or null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return jsonNull, nil
	}
}

// UnmarshalJSON decodes true, false or null. Anything else is an error.
func (a *Answer) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*a = Yes
	case bytes.Equal(data, []byte("false")):
		*a = No
	case bytes.Equal(data, jsonNull):
		*a = Unanswered
	default:
		return fmt.Errorf("invalid answer value %q", data)
	}
	return nil
}

// AnswerSheet maps area IDs to that area's ordered answer row. Rows are
// created lazily the first time the runner visits an area, not at
// selection time, so an area the user never reached simply has no entry.
type AnswerSheet map[string][]Answer

// NewAnswerSheet returns an empty sheet.
func NewAnswerSheet() AnswerSheet {
	return make(AnswerSheet)
}

// ForArea returns the answer row for an area, creating an all-Unanswered
// row of length n on first visit. An existing row of the wrong length
// (the framework document changed between sessions) is resized,
// preserving the answers that still fit.
func (s AnswerSheet) ForArea(areaID string, n int) []Answer {
	row, ok := s[areaID]
	if !ok {
		row = make([]Answer, n)
		s[areaID] = row
		return row
	}
	if len(row) != n {
		resized := make([]Answer, n)
		copy(resized, row)
		s[areaID] = resized
		return resized
	}
	return row
}

// Set records an answer. Out-of-range positions are ignored rather than
// grown: rows have a fixed length equal to the area's question count.
func (s AnswerSheet) Set(areaID string, question int, a Answer) {
	row := s[areaID]
	if question < 0 || question >= len(row) {
		return
	}
	row[question] = a
}

// YesCount counts answers strictly equal to Yes in an area's row.
func (s AnswerSheet) YesCount(areaID string) int {
	n := 0
	for _, a := range s[areaID] {
		if a == Yes {
			n++
		}
	}
	return n
}

// AnsweredCount counts non-Unanswered entries in an area's row.
func (s AnswerSheet) AnsweredCount(areaID string) int {
	n := 0
	for _, a := range s[areaID] {
		if a != Unanswered {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the sheet.
func (s AnswerSheet) Clone() AnswerSheet {
	out := make(AnswerSheet, len(s))
	for id, row := range s {
		cp := make([]Answer, len(row))
		copy(cp, row)
		out[id] = cp
	}
	return out
}
