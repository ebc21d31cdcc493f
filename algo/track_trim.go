// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package algo holds the composition-level algorithms that operate across
// a timeline's children rather than on a single object: trimming a track
// to a range, flattening a stack of tracks, and diffing two tracks.
package algo

import (
	"github.com/arashpayan/tlio/rtime"
	"github.com/arashpayan/tlio/timeline"
)

// TrackTrimmedToRange returns a clone of track holding only the portion of
// its children overlapping trimRange. Children strictly outside trimRange
// are dropped, the children straddling either edge are cloned and
// reshaped to the intersection, and children wholly inside are kept as-is.
// The source track is never modified.
//
// A Transition takes up zero width on the track's visible timeline but
// draws in_offset of material from the item before it and out_offset from
// the item after it. Cutting trimRange into either offset asks the
// transition to draw on material the trim just removed, so that case
// fails with a CannotTrimTransitionError rather than silently shortening
// the dissolve.
func TrackTrimmedToRange(track *timeline.Track, trimRange rtime.TimeRange) (*timeline.Track, error) {
	if err := checkTransitionBoundaries(track, trimRange); err != nil {
		return nil, err
	}

	cloned := track.Clone().(*timeline.Track)

	var newChildren []timeline.Composable
	for i, child := range cloned.Children() {
		childRange, err := cloned.RangeOfChildAtIndex(i)
		if err != nil {
			continue
		}
		if !childRange.Intersects(trimRange, rtime.DefaultEpsilon) {
			continue
		}
		intersection := intersectRanges(childRange, trimRange)

		clonedChild := child.Clone().(timeline.Composable)

		item, isItem := clonedChild.(timeline.Item)
		if !isItem {
			// Transition: already cleared the boundary check above, and it
			// carries no source range of its own to reshape.
			newChildren = append(newChildren, clonedChild)
			continue
		}

		offsetFromChildStart := intersection.StartTime.Sub(childRange.StartTime)

		var itemSourceRange rtime.TimeRange
		if sr := item.SourceRange(); sr != nil {
			itemSourceRange = *sr
		} else {
			ar, err := item.AvailableRange()
			if err != nil {
				continue
			}
			itemSourceRange = ar
		}

		newSourceStart := itemSourceRange.StartTime.Add(offsetFromChildStart.RescaledTo(itemSourceRange.StartTime.Rate))
		newSourceDuration := intersection.Duration.RescaledTo(itemSourceRange.Duration.Rate)
		newSourceRange := rtime.TimeRange{StartTime: newSourceStart, Duration: newSourceDuration}
		item.SetSourceRange(&newSourceRange)

		newChildren = append(newChildren, clonedChild)
	}

	result := timeline.NewTrack(cloned.Name(), cloned.SourceRange(), cloned.Kind(), cloned.Metadata(), cloned.ItemColor())
	for _, child := range newChildren {
		if err := result.AppendChild(child); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// checkTransitionBoundaries fails with CannotTrimTransitionError if
// trimRange would cut into either offset of any Transition in track. A
// Transition's own RangeOfChildAtIndex starts exactly at the boundary time
// where the preceding Item ends and the following Item begins, since
// CompositionBase places children by summing only Visible durations and a
// Transition is never Visible.
func checkTransitionBoundaries(track *timeline.Track, trimRange rtime.TimeRange) error {
	trimStart := trimRange.StartTime
	trimEnd := trimRange.EndTimeExclusive()

	for i, child := range track.Children() {
		tr, ok := child.(*timeline.Transition)
		if !ok {
			continue
		}
		boundaryRange, err := track.RangeOfChildAtIndex(i)
		if err != nil {
			return err
		}
		boundary := boundaryRange.StartTime
		lowerBound := boundary.Sub(tr.InOffset())
		upperBound := boundary.Add(tr.OutOffset())

		if strictlyBetween(trimStart, lowerBound, boundary) || strictlyBetween(trimEnd, boundary, upperBound) {
			return &timeline.CannotTrimTransitionError{Transition: tr}
		}
	}
	return nil
}

func strictlyBetween(t, lo, hi rtime.RationalTime) bool {
	return t.Greater(lo) && t.Less(hi)
}

// intersectRanges returns the overlap of a and b; callers are expected to
// have already confirmed the two ranges intersect.
func intersectRanges(a, b rtime.TimeRange) rtime.TimeRange {
	start := a.StartTime
	if b.StartTime.Greater(start) {
		start = b.StartTime
	}
	end := a.EndTimeExclusive()
	bEnd := b.EndTimeExclusive()
	if bEnd.Less(end) {
		end = bEnd
	}
	return rtime.RangeFromStartEndTime(start, end)
}
