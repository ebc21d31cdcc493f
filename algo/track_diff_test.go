// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package algo

import (
	"testing"

	"github.com/arashpayan/tlio/rtime"
	"github.com/arashpayan/tlio/timeline"
	"github.com/matryer/is"
)

func byName(a, b timeline.Composable) bool {
	return a.Name() == b.Name()
}

func namesOf(track *timeline.Track) []string {
	children := track.Children()
	names := make([]string, len(children))
	for i, child := range children {
		if _, ok := child.(*timeline.Gap); ok {
			names[i] = ""
			continue
		}
		names[i] = child.Name()
	}
	return names
}

func TestTrackDiffEqualSequences(t *testing.T) {
	is := is.New(t)

	oldTrack := timeline.NewTrack("old", nil, timeline.TrackKindVideo, nil, nil)
	newTrack := timeline.NewTrack("new", nil, timeline.TrackKindVideo, nil, nil)
	oldTrack.AppendChild(fiftyFrameClip("A"))
	oldTrack.AppendChild(fiftyFrameClip("B"))
	newTrack.AppendChild(fiftyFrameClip("A"))
	newTrack.AppendChild(fiftyFrameClip("B"))

	result, err := TrackDiff(oldTrack, newTrack, byName)
	is.NoErr(err)
	is.Equal(len(result.Children()), 3)

	added := result.Children()[0].(*timeline.Track)
	removed := result.Children()[2].(*timeline.Track)

	for _, name := range namesOf(added) {
		is.Equal(name, "")
	}
	for _, name := range namesOf(removed) {
		is.Equal(name, "")
	}
}

func TestTrackDiffInsertAndDelete(t *testing.T) {
	is := is.New(t)

	oldTrack := timeline.NewTrack("old", nil, timeline.TrackKindVideo, nil, nil)
	newTrack := timeline.NewTrack("new", nil, timeline.TrackKindVideo, nil, nil)

	// old: A, B, C
	oldTrack.AppendChild(fiftyFrameClip("A"))
	oldTrack.AppendChild(fiftyFrameClip("B"))
	oldTrack.AppendChild(fiftyFrameClip("C"))

	// new: A, X, C  (B removed, X inserted)
	newTrack.AppendChild(fiftyFrameClip("A"))
	newTrack.AppendChild(fiftyFrameClip("X"))
	newTrack.AppendChild(fiftyFrameClip("C"))

	result, err := TrackDiff(oldTrack, newTrack, byName)
	is.NoErr(err)
	is.Equal(len(result.Children()), 3)

	added := result.Children()[0].(*timeline.Track)
	newClone := result.Children()[1].(*timeline.Track)
	removed := result.Children()[2].(*timeline.Track)

	is.Equal(namesOf(added), []string{"", "X", ""})
	is.Equal(namesOf(newClone), []string{"A", "X", "C"})
	is.Equal(namesOf(removed), []string{"", "B", ""})
}

func TestTrackDiffAllInserted(t *testing.T) {
	is := is.New(t)

	oldTrack := timeline.NewTrack("old", nil, timeline.TrackKindVideo, nil, nil)
	newTrack := timeline.NewTrack("new", nil, timeline.TrackKindVideo, nil, nil)
	newTrack.AppendChild(fiftyFrameClip("A"))
	newTrack.AppendChild(fiftyFrameClip("B"))

	result, err := TrackDiff(oldTrack, newTrack, byName)
	is.NoErr(err)

	added := result.Children()[0].(*timeline.Track)
	removed := result.Children()[2].(*timeline.Track)
	is.Equal(namesOf(added), []string{"A", "B"})
	is.Equal(len(removed.Children()), 0)
}

func TestTrackDiffGapDurationMatchesSharedItem(t *testing.T) {
	is := is.New(t)

	oldTrack := timeline.NewTrack("old", nil, timeline.TrackKindVideo, nil, nil)
	newTrack := timeline.NewTrack("new", nil, timeline.TrackKindVideo, nil, nil)

	sr := rtime.RangeFromValues(0, 50, 24)
	oldTrack.AppendChild(timeline.NewClip("A", nil, &sr, nil, nil, nil, "", nil))
	oldTrack.AppendChild(fiftyFrameClip("B"))
	newTrack.AppendChild(timeline.NewClip("A", nil, &sr, nil, nil, nil, "", nil))

	result, err := TrackDiff(oldTrack, newTrack, byName)
	is.NoErr(err)

	removed := result.Children()[2].(*timeline.Track)
	is.Equal(len(removed.Children()), 2)
	// A matches on both sides, so removed's first slot is a Gap standing
	// in for it; B survives only in old, so it appears as a clone.
	_, aIsGap := removed.Children()[0].(*timeline.Gap)
	is.True(aIsGap)
	bClip, ok := removed.Children()[1].(*timeline.Clip)
	is.True(ok)
	is.Equal(bClip.Name(), "B")

	added := result.Children()[0].(*timeline.Track)
	is.Equal(len(added.Children()), 1)
	gap, ok := added.Children()[0].(*timeline.Gap)
	is.True(ok)
	dur, err := gap.Duration()
	is.NoErr(err)
	is.Equal(dur.Value, 50.0)
}
