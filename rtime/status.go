// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package rtime implements rational-valued time arithmetic: RationalTime,
// TimeRange, TimeTransform, SMPTE timecode conversion, and the
// HH:MM:SS.micros time-string format.
package rtime

import "fmt"

// Outcome is a stable, inspectable error code. It is shared by rtime and
// the timeline package so that every fallible operation in the module,
// whether about time arithmetic or about composition structure, reports
// through the same taxonomy.
type Outcome string

const (
	OK                               Outcome = "OK"
	NotImplemented                   Outcome = "NOT_IMPLEMENTED"
	UnresolvedObjectReference        Outcome = "UNRESOLVED_OBJECT_REFERENCE"
	DuplicateObjectReference         Outcome = "DUPLICATE_OBJECT_REFERENCE"
	MalformedSchema                  Outcome = "MALFORMED_SCHEMA"
	JSONParseError                   Outcome = "JSON_PARSE_ERROR"
	ChildAlreadyParented             Outcome = "CHILD_ALREADY_PARENTED"
	FileOpenFailed                   Outcome = "FILE_OPEN_FAILED"
	FileWriteFailed                  Outcome = "FILE_WRITE_FAILED"
	SchemaAlreadyRegistered          Outcome = "SCHEMA_ALREADY_REGISTERED"
	SchemaNotRegistered              Outcome = "SCHEMA_NOT_REGISTERED"
	SchemaVersionUnsupported         Outcome = "SCHEMA_VERSION_UNSUPPORTED"
	KeyNotFound                      Outcome = "KEY_NOT_FOUND"
	IllegalIndex                     Outcome = "ILLEGAL_INDEX"
	TypeMismatch                     Outcome = "TYPE_MISMATCH"
	InternalError                    Outcome = "INTERNAL_ERROR"
	NotAnItem                        Outcome = "NOT_AN_ITEM"
	NotAChildOf                      Outcome = "NOT_A_CHILD_OF"
	NotAChild                        Outcome = "NOT_A_CHILD"
	NotDescendedFrom                 Outcome = "NOT_DESCENDED_FROM"
	CannotComputeAvailableRange      Outcome = "CANNOT_COMPUTE_AVAILABLE_RANGE"
	InvalidTimeRange                 Outcome = "INVALID_TIME_RANGE"
	ObjectWithoutDuration            Outcome = "OBJECT_WITHOUT_DURATION"
	CannotTrimTransition             Outcome = "CANNOT_TRIM_TRANSITION"
	InvalidTimecodeRate              Outcome = "INVALID_TIMECODE_RATE"
	InvalidTimecodeString            Outcome = "INVALID_TIMECODE_STRING"
	TimecodeRateMismatch             Outcome = "TIMECODE_RATE_MISMATCH"
	InvalidRateForDropFrameTimecode  Outcome = "INVALID_RATE_FOR_DROP_FRAME_TIMECODE"
	NegativeValue                    Outcome = "NEGATIVE_VALUE"
	InvalidTimeString                Outcome = "INVALID_TIME_STRING"
)

// Status is the error type carrying an Outcome, an optional detail
// message, and an optional offending-object payload (set with WithObject).
// Mutation errors in the timeline package are typed errors of their own
// (ChildAlreadyParentedError and the like) that carry the offending object
// in a field and match the corresponding Status outcome through errors.Is.
type Status struct {
	Outcome Outcome
	Detail  string
	Object  any
}

// NewStatus builds a Status from an outcome and a formatted detail.
func NewStatus(outcome Outcome, format string, args ...any) *Status {
	return &Status{Outcome: outcome, Detail: fmt.Sprintf(format, args...)}
}

func (s *Status) Error() string {
	if s.Detail == "" {
		return string(s.Outcome)
	}
	return fmt.Sprintf("%s: %s", s.Outcome, s.Detail)
}

// Is lets errors.Is(err, &Status{Outcome: SomeOutcome}) work by comparing
// Outcome values,
// matching the pattern errors.As(err, &status) would otherwise require
// at every call site.
func (s *Status) Is(target error) bool {
	t, ok := target.(*Status)
	if !ok {
		return false
	}
	return s.Outcome == t.Outcome
}

// WithObject returns a copy of s carrying the offending object.
func (s *Status) WithObject(obj any) *Status {
	return &Status{Outcome: s.Outcome, Detail: s.Detail, Object: obj}
}
