// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package algo

import "github.com/arashpayan/tlio/timeline"

// EqualComposable reports whether a and b should be treated as the same
// timeline item for diffing purposes. Callers typically compare by clip
// name, ignoring trim or metadata differences.
type EqualComposable func(a, b timeline.Composable) bool

type diffOpKind int

const (
	diffEqual diffOpKind = iota
	diffDelete
	diffInsert
)

// diffOp is one step of an edit script. oldIndex/newIndex are -1 when the
// step has no counterpart on that side.
type diffOp struct {
	kind     diffOpKind
	oldIndex int
	newIndex int
}

// TrackDiff runs Myers' shortest-edit-script diff over oldTrack's and
// newTrack's child sequences, using equal to decide whether a child from
// one track matches a child from the other, and returns a Stack holding
// three Tracks:
//
//   - "added": clones of items present only in newTrack, positioned at
//     their new-track timeline offsets, with explicit Gaps standing in
//     for everything else.
//   - "new": a clone of newTrack.
//   - "removed": clones of items present only in oldTrack, positioned at
//     their old-track timeline offsets, with explicit Gaps standing in
//     for everything else.
func TrackDiff(oldTrack, newTrack *timeline.Track, equal EqualComposable) (*timeline.Stack, error) {
	ops := myersDiff(oldTrack.Children(), newTrack.Children(), equal)

	added, err := buildSideTrack("added", newTrack, ops, diffInsert, func(op diffOp) (int, bool) {
		return op.newIndex, op.newIndex >= 0
	})
	if err != nil {
		return nil, err
	}
	removed, err := buildSideTrack("removed", oldTrack, ops, diffDelete, func(op diffOp) (int, bool) {
		return op.oldIndex, op.oldIndex >= 0
	})
	if err != nil {
		return nil, err
	}

	newClone := newTrack.Clone().(*timeline.Track)
	newClone.SetName("new")

	result := timeline.NewStack("diff", nil, nil, nil, nil, nil)
	if err := result.AppendChild(added); err != nil {
		return nil, err
	}
	if err := result.AppendChild(newClone); err != nil {
		return nil, err
	}
	if err := result.AppendChild(removed); err != nil {
		return nil, err
	}
	return result, nil
}

// buildSideTrack walks ops in order and, for every step present on this
// side (sideIndex returns ok), either clones source's child at that index
// (when the step is highlightKind) or emits a duration-matched Gap.
func buildSideTrack(name string, source *timeline.Track, ops []diffOp, highlightKind diffOpKind, sideIndex func(diffOp) (int, bool)) (*timeline.Track, error) {
	track := timeline.NewTrack(name, nil, source.Kind(), nil, nil)
	children := source.Children()

	for _, op := range ops {
		index, ok := sideIndex(op)
		if !ok {
			continue
		}
		child := children[index]

		var toAppend timeline.Composable
		if op.kind == highlightKind {
			toAppend = child.Clone().(timeline.Composable)
		} else {
			dur, err := child.Duration()
			if err != nil {
				return nil, err
			}
			toAppend = timeline.NewGapWithDuration(dur)
		}
		if err := track.AppendChild(toAppend); err != nil {
			return nil, err
		}
	}
	return track, nil
}

// myersDiff computes the shortest edit script turning oldItems into
// newItems, following Eugene Myers' O(ND) algorithm: walk forward
// computing, for each edit distance d, the furthest-reaching point on
// each diagonal k = x - y, then walk the recorded frontiers backward from
// (len(oldItems), len(newItems)) to (0, 0) to recover the path.
func myersDiff(oldItems, newItems []timeline.Composable, equal EqualComposable) []diffOp {
	n, m := len(oldItems), len(newItems)
	max := n + m
	if max == 0 {
		return nil
	}

	offset := max + 1
	size := 2*offset + 1
	v := make([]int, size)
	v[offset+1] = 0

	var trace [][]int

found:
	for d := 0; d <= max; d++ {
		snapshot := make([]int, size)
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k

			for x < n && y < m && equal(oldItems[x], newItems[y]) {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				break found
			}
		}
	}

	return backtrackDiff(trace, offset, n, m)
}

// backtrackDiff replays the frontiers recorded by myersDiff in reverse to
// recover an ordered edit script: each round of the forward pass
// contributes zero or more diagonal (equal) steps followed by exactly one
// insert or delete.
func backtrackDiff(trace [][]int, offset, n, m int) []diffOp {
	var ops []diffOp
	x, y := n, m

	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, diffOp{kind: diffEqual, oldIndex: x, newIndex: y})
		}

		if d > 0 {
			if x == prevX {
				y--
				ops = append(ops, diffOp{kind: diffInsert, oldIndex: -1, newIndex: y})
			} else {
				x--
				ops = append(ops, diffOp{kind: diffDelete, oldIndex: x, newIndex: -1})
			}
		}

		x, y = prevX, prevY
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}
