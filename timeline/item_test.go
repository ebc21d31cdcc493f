// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"testing"

	"github.com/arashpayan/tlio/rtime"
	"github.com/matryer/is"
)

// trimmedClip returns a Clip whose source range is [1, 51) at rate 24, the
// shared trim used across every item in this scenario.
func trimmedClip(name string) *Clip {
	sr := rtime.RangeFromValues(1, 50, 24)
	return NewClip(name, nil, &sr, nil, nil, nil, "", nil)
}

func TestItemVisibleRangeExtendsAcrossTransitions(t *testing.T) {
	is := is.New(t)

	track := NewTrack("test", nil, TrackKindVideo, nil, nil)

	a := trimmedClip("A")
	t1 := NewTransition("t1", TransitionTypeSMPTEDissolve, rtime.New(7, 24), rtime.New(10, 24), nil)
	b := trimmedClip("B")
	t2 := NewTransition("t2", TransitionTypeSMPTEDissolve, rtime.New(17, 24), rtime.New(15, 24), nil)
	c := trimmedClip("C")
	d := trimmedClip("D")

	is.NoErr(track.AppendChild(a))
	is.NoErr(track.AppendChild(t1))
	is.NoErr(track.AppendChild(b))
	is.NoErr(track.AppendChild(t2))
	is.NoErr(track.AppendChild(c))
	is.NoErr(track.AppendChild(d))

	aRange, err := a.VisibleRange()
	is.NoErr(err)
	is.Equal(aRange.Duration.Value, 60.0)

	bRange, err := b.VisibleRange()
	is.NoErr(err)
	is.Equal(bRange.Duration.Value, 72.0)

	cRange, err := c.VisibleRange()
	is.NoErr(err)
	is.Equal(cRange.Duration.Value, 67.0)

	dRange, err := d.VisibleRange()
	is.NoErr(err)
	is.Equal(dRange.Duration.Value, 50.0)
}

func TestItemVisibleRangeNoNeighboringTransition(t *testing.T) {
	is := is.New(t)

	track := NewTrack("test", nil, TrackKindVideo, nil, nil)
	a := trimmedClip("A")
	b := trimmedClip("B")
	is.NoErr(track.AppendChild(a))
	is.NoErr(track.AppendChild(b))

	aRange, err := a.VisibleRange()
	is.NoErr(err)
	is.Equal(aRange.Duration.Value, 50.0)
	is.Equal(aRange.StartTime.Value, 1.0)
}
