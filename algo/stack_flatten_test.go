// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package algo

import (
	"testing"

	"github.com/arashpayan/tlio/rtime"
	"github.com/arashpayan/tlio/timeline"
	"github.com/matryer/is"
)

func fiftyFrameClip(name string) *timeline.Clip {
	sr := rtime.RangeFromValues(0, 50, 24)
	return timeline.NewClip(name, nil, &sr, nil, nil, nil, "", nil)
}

func trackABC() *timeline.Track {
	track := timeline.NewTrack("ABC", nil, timeline.TrackKindVideo, nil, nil)
	track.AppendChild(fiftyFrameClip("A"))
	track.AppendChild(fiftyFrameClip("B"))
	track.AppendChild(fiftyFrameClip("C"))
	return track
}

func trackZ() *timeline.Track {
	track := timeline.NewTrack("Z", nil, timeline.TrackKindVideo, nil, nil)
	sr := rtime.RangeFromValues(0, 150, 24)
	track.AppendChild(timeline.NewClip("Z", nil, &sr, nil, nil, nil, "", nil))
	return track
}

func TestFlattenTracksObscures(t *testing.T) {
	is := is.New(t)

	// [trackABC, trackZ]: Z is drawn on top and is opaque across the
	// whole union range, so the result is equivalent to trackZ alone.
	result, err := FlattenTracks([]*timeline.Track{trackABC(), trackZ()})
	is.NoErr(err)
	is.Equal(len(result.Children()), 1)
	is.Equal(result.Children()[0].Name(), "Z")
	dur, err := result.Duration()
	is.NoErr(err)
	is.Equal(dur.Value, 150.0)
}

func TestFlattenTracksObscuresReversed(t *testing.T) {
	is := is.New(t)

	// Reversing the order puts ABC on top, so the result is equivalent
	// to trackABC.
	result, err := FlattenTracks([]*timeline.Track{trackZ(), trackABC()})
	is.NoErr(err)
	is.Equal(len(result.Children()), 3)
	is.Equal(result.Children()[0].Name(), "A")
	is.Equal(result.Children()[1].Name(), "B")
	is.Equal(result.Children()[2].Name(), "C")
}

func TestFlattenTracksGapFillIn(t *testing.T) {
	is := is.New(t)

	trackDgE := timeline.NewTrack("DgE", nil, timeline.TrackKindVideo, nil, nil)
	trackDgE.AppendChild(fiftyFrameClip("D"))
	trackDgE.AppendChild(timeline.NewGapWithDuration(rtime.New(50, 24)))
	trackDgE.AppendChild(fiftyFrameClip("E"))

	// [trackABC, trackDgE]: DgE is on top. Its central Gap lets B, the
	// base track's middle clip, show through.
	result, err := FlattenTracks([]*timeline.Track{trackABC(), trackDgE})
	is.NoErr(err)
	is.Equal(len(result.Children()), 3)
	is.Equal(result.Children()[0].Name(), "D")
	is.Equal(result.Children()[1].Name(), "B")
	is.Equal(result.Children()[2].Name(), "E")
}

func TestFlattenStack(t *testing.T) {
	is := is.New(t)

	stack := timeline.NewStack("stack", nil, nil, nil, nil, nil)
	is.NoErr(stack.AppendChild(trackABC()))
	is.NoErr(stack.AppendChild(trackZ()))

	result, err := FlattenStack(stack)
	is.NoErr(err)
	is.Equal(len(result.Children()), 1)
	is.Equal(result.Children()[0].Name(), "Z")
}

func TestFlattenTracksSingleTrack(t *testing.T) {
	is := is.New(t)

	result, err := FlattenTracks([]*timeline.Track{trackABC()})
	is.NoErr(err)
	is.Equal(len(result.Children()), 3)
}

func TestFlattenTracksEmpty(t *testing.T) {
	is := is.New(t)

	result, err := FlattenTracks(nil)
	is.NoErr(err)
	is.Equal(len(result.Children()), 0)
}
