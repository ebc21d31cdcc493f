// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"fmt"

	"github.com/arashpayan/tlio/rtime"
)

// Sentinel errors for conditions with no offending-object payload.
var (
	ErrMissingReference            = rtime.NewStatus(rtime.CannotComputeAvailableRange, "media reference is missing")
	ErrMediaReferenceNotFound      = rtime.NewStatus(rtime.KeyNotFound, "media reference key not found")
	ErrCannotComputeAvailableRange = rtime.NewStatus(rtime.CannotComputeAvailableRange, "cannot compute available range")
	ErrNoCommonAncestor            = rtime.NewStatus(rtime.NotDescendedFrom, "no common ancestor")
	ErrNotAnItem                   = rtime.NewStatus(rtime.NotAnItem, "object is not an Item")
)

// IndexError reports an out-of-bounds composition child index.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for size %d", e.Index, e.Size)
}

// Is lets errors.Is match IndexError against rtime.IllegalIndex.
func (e *IndexError) Is(target error) bool {
	s, ok := target.(*rtime.Status)
	return ok && s.Outcome == rtime.IllegalIndex
}

// TypeMismatchError reports a JSON payload that decoded to the wrong interface.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	s, ok := target.(*rtime.Status)
	return ok && s.Outcome == rtime.TypeMismatch
}

// ChildAlreadyParentedError reports insertion of a Composable that already
// has a different non-nil parent.
type ChildAlreadyParentedError struct {
	Child Composable
}

func (e *ChildAlreadyParentedError) Error() string {
	return "child already has a parent"
}

func (e *ChildAlreadyParentedError) Is(target error) bool {
	s, ok := target.(*rtime.Status)
	return ok && s.Outcome == rtime.ChildAlreadyParented
}

// NotAChildOfError reports that a Composable is not a descendant of the
// composition it was queried against.
type NotAChildOfError struct {
	Child  Composable
	Parent Composable
}

func (e *NotAChildOfError) Error() string {
	return "child is not a descendant of this composition"
}

func (e *NotAChildOfError) Is(target error) bool {
	s, ok := target.(*rtime.Status)
	return ok && s.Outcome == rtime.NotAChildOf
}

// CannotTrimTransitionError reports a track-trim that would cut a Transition
// short of its full in/out offsets.
type CannotTrimTransitionError struct {
	Transition *Transition
}

func (e *CannotTrimTransitionError) Error() string {
	return "cannot trim a transition"
}

func (e *CannotTrimTransitionError) Is(target error) bool {
	s, ok := target.(*rtime.Status)
	return ok && s.Outcome == rtime.CannotTrimTransition
}

// SchemaError reports a malformed or unsupported schema header.
type SchemaError struct {
	Outcome rtime.Outcome
	Detail  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Outcome, e.Detail)
}

func (e *SchemaError) Is(target error) bool {
	s, ok := target.(*rtime.Status)
	return ok && s.Outcome == e.Outcome
}
