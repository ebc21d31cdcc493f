// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package algo

import (
	"errors"
	"testing"

	"github.com/arashpayan/tlio/rtime"
	"github.com/arashpayan/tlio/timeline"
	"github.com/matryer/is"
)

func TestTrackTrimmedToRange(t *testing.T) {
	is := is.New(t)

	track := timeline.NewTrack("test", nil, timeline.TrackKindVideo, nil, nil)

	sr1 := rtime.RangeFromValues(0, 48, 24)
	sr2 := rtime.RangeFromValues(0, 48, 24)
	sr3 := rtime.RangeFromValues(0, 48, 24)
	clip1 := timeline.NewClip("clip1", nil, &sr1, nil, nil, nil, "", nil)
	clip2 := timeline.NewClip("clip2", nil, &sr2, nil, nil, nil, "", nil)
	clip3 := timeline.NewClip("clip3", nil, &sr3, nil, nil, nil, "", nil)

	is.NoErr(track.AppendChild(clip1))
	is.NoErr(track.AppendChild(clip2))
	is.NoErr(track.AppendChild(clip3))

	// track spans [0, 144): clip1 [0,48), clip2 [48,96), clip3 [96,144)
	trimRange := rtime.RangeFromValues(24, 48, 24)

	result, err := TrackTrimmedToRange(track, trimRange)
	is.NoErr(err)
	is.Equal(len(result.Children()), 2) // trims into clip1 and clip2 only

	firstClip := result.Children()[0].(*timeline.Clip)
	is.Equal(firstClip.SourceRange().StartTime.Value, 24.0)
	is.Equal(firstClip.SourceRange().Duration.Value, 24.0)

	secondClip := result.Children()[1].(*timeline.Clip)
	is.Equal(secondClip.SourceRange().StartTime.Value, 0.0)
	is.Equal(secondClip.SourceRange().Duration.Value, 24.0)

	// original track must be untouched
	is.Equal(len(track.Children()), 3)
	is.Equal(clip1.SourceRange().StartTime.Value, 0.0)
}

func TestTrackTrimmedToRangeDropsOutsideChildren(t *testing.T) {
	is := is.New(t)

	track := timeline.NewTrack("test", nil, timeline.TrackKindVideo, nil, nil)
	sr1 := rtime.RangeFromValues(0, 10, 24)
	sr2 := rtime.RangeFromValues(0, 10, 24)
	clip1 := timeline.NewClip("clip1", nil, &sr1, nil, nil, nil, "", nil)
	clip2 := timeline.NewClip("clip2", nil, &sr2, nil, nil, nil, "", nil)
	is.NoErr(track.AppendChild(clip1))
	is.NoErr(track.AppendChild(clip2))

	// track spans [0, 20); trim entirely within clip2's span [10, 20)
	trimRange := rtime.RangeFromValues(10, 10, 24)

	result, err := TrackTrimmedToRange(track, trimRange)
	is.NoErr(err)
	is.Equal(len(result.Children()), 1)
	only := result.Children()[0].(*timeline.Clip)
	is.Equal(only.SourceRange().StartTime.Value, 0.0)
	is.Equal(only.SourceRange().Duration.Value, 10.0)
}

// buildTransitionTrack reproduces a track with two dissolves:
//
//	A(50), Transition(12,20), B(50), Transition(17,15), C(50), D(50)
//
// giving boundaries at 50 (between A and B) and 100 (between B and C).
func buildTransitionTrack() *timeline.Track {
	track := timeline.NewTrack("test", nil, timeline.TrackKindVideo, nil, nil)

	a := rtime.RangeFromValues(0, 50, 24)
	b := rtime.RangeFromValues(0, 50, 24)
	c := rtime.RangeFromValues(0, 50, 24)
	d := rtime.RangeFromValues(0, 50, 24)

	clipA := timeline.NewClip("A", nil, &a, nil, nil, nil, "", nil)
	clipB := timeline.NewClip("B", nil, &b, nil, nil, nil, "", nil)
	clipC := timeline.NewClip("C", nil, &c, nil, nil, nil, "", nil)
	clipD := timeline.NewClip("D", nil, &d, nil, nil, nil, "", nil)

	t1 := timeline.NewTransition("t1", timeline.TransitionType(""), rtime.New(12, 24), rtime.New(20, 24), nil)
	t2 := timeline.NewTransition("t2", timeline.TransitionType(""), rtime.New(17, 24), rtime.New(15, 24), nil)

	track.AppendChild(clipA)
	track.AppendChild(t1)
	track.AppendChild(clipB)
	track.AppendChild(t2)
	track.AppendChild(clipC)
	track.AppendChild(clipD)

	return track
}

func TestTrackTrimmedToRangeCannotTrimTransition(t *testing.T) {
	is := is.New(t)

	track := buildTransitionTrack()

	// trim (5, 50) cuts into the 50-boundary transition's out_offset of 20:
	// end time is 55, which falls strictly inside (50, 70).
	_, err := TrackTrimmedToRange(track, rtime.RangeFromValues(5, 50, 24))
	is.True(err != nil)
	var cannotTrim *timeline.CannotTrimTransitionError
	is.True(errors.As(err, &cannotTrim))
}

func TestTrackTrimmedToRangeAcrossTransitionBoundary(t *testing.T) {
	is := is.New(t)

	track := buildTransitionTrack()

	// trim (25, 50) ends exactly at 75, clear of (50,70) and (100,115).
	result, err := TrackTrimmedToRange(track, rtime.RangeFromValues(25, 50, 24))
	is.NoErr(err)

	// Expect: A trimmed to [25,50), transition t1, B trimmed to [0,25)
	is.Equal(len(result.Children()), 3)

	clipA := result.Children()[0].(*timeline.Clip)
	is.Equal(clipA.SourceRange().StartTime.Value, 25.0)
	is.Equal(clipA.SourceRange().Duration.Value, 25.0)

	_, isTransition := result.Children()[1].(*timeline.Transition)
	is.True(isTransition)

	clipB := result.Children()[2].(*timeline.Clip)
	is.Equal(clipB.SourceRange().StartTime.Value, 0.0)
	is.Equal(clipB.SourceRange().Duration.Value, 25.0)
}
