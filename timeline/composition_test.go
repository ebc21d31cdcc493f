// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"testing"

	"github.com/arashpayan/tlio/rtime"
	"github.com/matryer/is"
)

// TestRangeOfChildMatchesRangeOfChildAtIndex checks that RangeOfChild (looks
// the child up by identity) and RangeOfChildAtIndex (looks it up by
// position) agree for every child of a Composition, across both Track
// (sequential placement) and Stack (parallel placement) layouts.
func TestRangeOfChildMatchesRangeOfChildAtIndex(t *testing.T) {
	is := is.New(t)

	track := NewTrack("test", nil, TrackKindVideo, nil, nil)
	sr1 := rtime.RangeFromValues(0, 24, 24)
	sr2 := rtime.RangeFromValues(0, 36, 24)
	clip1 := NewClip("clip1", nil, &sr1, nil, nil, nil, "", nil)
	clip2 := NewClip("clip2", nil, &sr2, nil, nil, nil, "", nil)
	is.NoErr(track.AppendChild(clip1))
	is.NoErr(track.AppendChild(clip2))

	for i, child := range track.Children() {
		byIndex, err := track.RangeOfChildAtIndex(i)
		is.NoErr(err)
		byIdentity, err := track.RangeOfChild(child)
		is.NoErr(err)
		is.Equal(byIndex.StartTime.Value, byIdentity.StartTime.Value)
		is.Equal(byIndex.Duration.Value, byIdentity.Duration.Value)
	}

	stack := NewStack("test", nil, nil, nil, nil, nil)
	is.NoErr(stack.AppendChild(clip1.Clone().(*Clip)))
	is.NoErr(stack.AppendChild(clip2.Clone().(*Clip)))

	for i, child := range stack.Children() {
		byIndex, err := stack.RangeOfChildAtIndex(i)
		is.NoErr(err)
		byIdentity, err := stack.RangeOfChild(child)
		is.NoErr(err)
		is.Equal(byIndex.StartTime.Value, byIdentity.StartTime.Value)
		is.Equal(byIndex.Duration.Value, byIdentity.Duration.Value)
	}
}

// TestRangeOfChildAtIndexSkipsTransitions checks that a Transition's zero
// Visible width does not shift where the following child lands, while the
// Transition's own RangeOfChildAtIndex still reports the boundary time it
// sits at.
func TestRangeOfChildAtIndexSkipsTransitions(t *testing.T) {
	is := is.New(t)

	track := NewTrack("test", nil, TrackKindVideo, nil, nil)
	sr := rtime.RangeFromValues(0, 50, 24)
	a := NewClip("A", nil, &sr, nil, nil, nil, "", nil)
	tr := NewTransition("t", TransitionTypeSMPTEDissolve, rtime.New(12, 24), rtime.New(20, 24), nil)
	bSR := rtime.RangeFromValues(0, 50, 24)
	b := NewClip("B", nil, &bSR, nil, nil, nil, "", nil)

	is.NoErr(track.AppendChild(a))
	is.NoErr(track.AppendChild(tr))
	is.NoErr(track.AppendChild(b))

	trRange, err := track.RangeOfChildAtIndex(1)
	is.NoErr(err)
	is.Equal(trRange.StartTime.Value, 50.0)

	bRange, err := track.RangeOfChildAtIndex(2)
	is.NoErr(err)
	is.Equal(bRange.StartTime.Value, 50.0)
}
