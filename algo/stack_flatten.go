// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package algo

import (
	"sort"

	"github.com/arashpayan/tlio/rtime"
	"github.com/arashpayan/tlio/timeline"
)

// occludingSpan is a non-Gap, enabled Item together with the absolute
// range it occupies within the track that holds it.
type occludingSpan struct {
	track      *timeline.Track
	composable timeline.Composable
	span       rtime.TimeRange
}

// FlattenStack composites stack's Track children, bottom to top (a Stack's
// last child is drawn on top), down to a single Track equivalent to the
// topmost opaque sample at every instant.
func FlattenStack(stack *timeline.Stack) (*timeline.Track, error) {
	var tracks []*timeline.Track
	for _, child := range stack.Children() {
		if track, ok := child.(*timeline.Track); ok {
			tracks = append(tracks, track)
		}
	}
	return FlattenTracks(tracks)
}

// FlattenTracks composites tracks, bottom to top (tracks[0] lowest,
// tracks[len(tracks)-1] topmost), down to a single Track.
//
// The union of every track's span is cut into candidate sub-ranges at
// every occluding item's boundary, and each candidate resolves to the
// topmost track's item that covers it (or to nothing, meaning a Gap).
// Consecutive candidates that resolve to the same item are then merged
// back into one sub-range before emitting — a boundary contributed by a
// track that never wins there (e.g. an occluded track's own internal cuts)
// must not fragment the item that's actually on top. Items from different
// tracks that happen to be adjacent and share a source are still emitted
// as separate, uncoalesced pieces.
func FlattenTracks(tracks []*timeline.Track) (*timeline.Track, error) {
	if len(tracks) == 0 {
		return timeline.NewTrack("Flattened", nil, timeline.TrackKindVideo, nil, nil), nil
	}
	if len(tracks) == 1 {
		clone := tracks[0].Clone().(*timeline.Track)
		clone.SetName("Flattened")
		return clone, nil
	}

	trackIndex := make(map[*timeline.Track]int, len(tracks))
	for i, track := range tracks {
		trackIndex[track] = i
	}

	var spans []occludingSpan
	boundaries := []rtime.RationalTime{{}}

	for _, track := range tracks {
		dur, err := track.Duration()
		if err != nil {
			return nil, err
		}
		boundaries = append(boundaries, dur)

		for i, child := range track.Children() {
			if _, isGap := child.(*timeline.Gap); isGap {
				continue
			}
			item, ok := child.(timeline.Item)
			if !ok {
				// Transitions claim no visible width; they play no part
				// in deciding what is on top at a given instant.
				continue
			}
			if !item.Enabled() {
				continue
			}
			r, err := track.RangeOfChildAtIndex(i)
			if err != nil {
				continue
			}
			spans = append(spans, occludingSpan{track: track, composable: child, span: r})
			boundaries = append(boundaries, r.StartTime, r.EndTimeExclusive())
		}
	}

	boundaries = uniqueSortedTimes(boundaries)

	// sub is a candidate range collapsed against its neighbors once its
	// resolved top span matches theirs.
	type sub struct {
		start, end rtime.RationalTime
		top        *occludingSpan
	}
	var subs []sub
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		if !start.Less(end) {
			continue
		}
		top := topmostSpanAt(spans, trackIndex, start)
		if n := len(subs); n > 0 && subs[n-1].top == top {
			subs[n-1].end = end
			continue
		}
		subs = append(subs, sub{start: start, end: end, top: top})
	}

	result := timeline.NewTrack("Flattened", nil, tracks[0].Kind(), nil, nil)

	for _, s := range subs {
		merged := rtime.RangeFromStartEndTime(s.start, s.end)

		if s.top == nil {
			if err := result.AppendChild(timeline.NewGapWithDuration(merged.Duration)); err != nil {
				return nil, err
			}
			continue
		}

		clonedChild := s.top.composable.Clone().(timeline.Composable)
		if clonedItem, ok := clonedChild.(timeline.Item); ok {
			reshapeSourceRange(clonedItem, s.top.span, merged)
		}
		if err := result.AppendChild(clonedChild); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// topmostSpanAt returns the occludingSpan covering t whose track sits
// latest in trackIndex, or nil if no span covers t.
func topmostSpanAt(spans []occludingSpan, trackIndex map[*timeline.Track]int, t rtime.RationalTime) *occludingSpan {
	var best *occludingSpan
	bestIndex := -1
	for i := range spans {
		span := &spans[i]
		if !span.span.Contains(t) {
			continue
		}
		if idx := trackIndex[span.track]; idx > bestIndex {
			bestIndex = idx
			best = span
		}
	}
	return best
}

// reshapeSourceRange offsets item's source range so it covers exactly
// newRange, a sub-range of originalRange expressed in the same track
// coordinate system.
func reshapeSourceRange(item timeline.Item, originalRange, newRange rtime.TimeRange) {
	var itemSourceRange rtime.TimeRange
	if sr := item.SourceRange(); sr != nil {
		itemSourceRange = *sr
	} else {
		ar, err := item.AvailableRange()
		if err != nil {
			return
		}
		itemSourceRange = ar
	}

	offsetFromStart := newRange.StartTime.Sub(originalRange.StartTime)
	newSourceStart := itemSourceRange.StartTime.Add(offsetFromStart.RescaledTo(itemSourceRange.StartTime.Rate))
	newSourceDuration := newRange.Duration.RescaledTo(itemSourceRange.Duration.Rate)
	newSourceRange := rtime.TimeRange{StartTime: newSourceStart, Duration: newSourceDuration}
	item.SetSourceRange(&newSourceRange)
}

// uniqueSortedTimes sorts times ascending and removes duplicates (by
// Equal, which rescales before comparing).
func uniqueSortedTimes(times []rtime.RationalTime) []rtime.RationalTime {
	sort.Slice(times, func(i, j int) bool { return times[i].Less(times[j]) })
	out := times[:0]
	for i, t := range times {
		if i == 0 || !out[len(out)-1].Equal(t) {
			out = append(out, t)
		}
	}
	return out
}
