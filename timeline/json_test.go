// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"testing"

	"github.com/arashpayan/tlio/rtime"
	"github.com/matryer/is"
)

// buildSampleTimeline builds a small object graph exercising most schema
// types: a Timeline holding a Stack of one Track, with a Clip, a Gap, a
// Transition, a Marker, and user metadata.
func buildSampleTimeline() *Timeline {
	sr := rtime.RangeFromValues(0, 48, 24)
	mediaRef := NewExternalReference("clip1_media", "file:///media/clip1.mov", nil, nil)
	clip := NewClip("clip1", mediaRef, &sr, nil, nil, nil, "", nil)

	marker := NewMarker("chapter", rtime.RangeFromValues(0, 1, 24), MarkerColorRed, "", nil)
	clip.SetMarkers([]*Marker{marker})

	gap := NewGapWithDuration(rtime.New(24, 24))
	tr := NewTransition("dissolve", TransitionTypeSMPTEDissolve, rtime.New(5, 24), rtime.New(5, 24), nil)

	track := NewTrack("V1", nil, TrackKindVideo, nil, nil)
	track.AppendChild(clip)
	track.AppendChild(tr)
	track.AppendChild(gap)

	stack := NewStack("tracks", nil, nil, nil, nil, nil)
	stack.AppendChild(track)

	metadata := NewAnyDictionary()
	metadata.Set("project", "sample")

	tl := NewTimeline("sample", nil, metadata)
	tl.SetTracks(stack)
	return tl
}

func TestTimelineRoundTripsThroughJSON(t *testing.T) {
	is := is.New(t)

	original := buildSampleTimeline()

	data, err := ToJSONBytes(original)
	is.NoErr(err)

	decoded, err := FromJSONBytes(data)
	is.NoErr(err)

	roundTripped, ok := decoded.(*Timeline)
	is.True(ok)
	is.True(original.IsEquivalentTo(roundTripped))
}

func TestClipRoundTripsThroughJSON(t *testing.T) {
	is := is.New(t)

	sr := rtime.RangeFromValues(10, 20, 24)
	original := NewClip("solo", nil, &sr, nil, nil, nil, "", nil)

	data, err := ToJSONBytes(original)
	is.NoErr(err)

	decoded, err := FromJSONBytes(data)
	is.NoErr(err)

	roundTripped, ok := decoded.(*Clip)
	is.True(ok)
	is.True(original.IsEquivalentTo(roundTripped))
}
