// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// Track kinds recognized on disk.
const (
	TrackKindVideo = "Video"
	TrackKindAudio = "Audio"
)

// NeighborGapPolicy controls whether NeighborsOf synthesizes a zero-length
// Gap neighbor for a Transition sitting at a track boundary.
type NeighborGapPolicy int

const (
	NeighborGapPolicyNever              NeighborGapPolicy = 0
	NeighborGapPolicyAroundTransitions NeighborGapPolicy = 1
)

// TrackSchema is Track's on-disk schema, also registered under the legacy
// alias "Sequence".
var TrackSchema = Schema{Name: "Track", Version: 1}

// Track arranges its children sequentially in time.
type Track struct {
	CompositionBase
	kind string
}

// NewTrack returns a new, self-registered Track, defaulting kind to Video.
func NewTrack(name string, sourceRange *rtime.TimeRange, kind string, metadata *AnyDictionary, color *Color) *Track {
	if kind == "" {
		kind = TrackKindVideo
	}
	track := &Track{CompositionBase: NewCompositionBase(name, sourceRange, metadata, nil, nil, color), kind: kind}
	track.SetSelf(track)
	return track
}

func (t *Track) Kind() string      { return t.kind }
func (t *Track) SetKind(k string)  { t.kind = k }
func (t *Track) CompositionKind() string { return "Track" }

// HandlesOfChild returns the in/out offset a neighboring Transition
// contributes to child, used by Item.VisibleRange to extend the trim.
func (t *Track) HandlesOfChild(child Composable) (in, out *rtime.RationalTime, err error) {
	index, err := t.IndexOfChild(child)
	if err != nil {
		return nil, nil, err
	}
	if index > 0 {
		if tr, ok := t.children[index-1].(*Transition); ok {
			offset := tr.InOffset()
			in = &offset
		}
	}
	if index < len(t.children)-1 {
		if tr, ok := t.children[index+1].(*Transition); ok {
			offset := tr.OutOffset()
			out = &offset
		}
	}
	return in, out, nil
}

// NeighborsOf returns the Composables immediately before and after item.
func (t *Track) NeighborsOf(item Composable, gapPolicy NeighborGapPolicy) (prev, next Composable, err error) {
	index, err := t.IndexOfChild(item)
	if err != nil {
		return nil, nil, err
	}
	_, isTransition := item.(*Transition)

	if index > 0 {
		prev = t.children[index-1]
	} else if gapPolicy == NeighborGapPolicyAroundTransitions && isTransition {
		prev = NewGapWithDuration(rtime.RationalTime{})
	}
	if index < len(t.children)-1 {
		next = t.children[index+1]
	} else if gapPolicy == NeighborGapPolicyAroundTransitions && isTransition {
		next = NewGapWithDuration(rtime.RationalTime{})
	}
	return prev, next, nil
}

// AvailableImageBounds is the union of every Clip child's image bounds.
func (t *Track) AvailableImageBounds() (*Box2d, error) {
	var result *Box2d
	for _, child := range t.children {
		clip, ok := child.(*Clip)
		if !ok {
			continue
		}
		bounds, err := clip.AvailableImageBounds()
		if err != nil || bounds == nil {
			continue
		}
		result = unionBox2d(result, bounds)
	}
	return result, nil
}

func unionBox2d(result, bounds *Box2d) *Box2d {
	if result == nil {
		clone := *bounds
		return &clone
	}
	if bounds.Min.X < result.Min.X {
		result.Min.X = bounds.Min.X
	}
	if bounds.Min.Y < result.Min.Y {
		result.Min.Y = bounds.Min.Y
	}
	if bounds.Max.X > result.Max.X {
		result.Max.X = bounds.Max.X
	}
	if bounds.Max.Y > result.Max.Y {
		result.Max.Y = bounds.Max.Y
	}
	return result
}

func (t *Track) SchemaName() string  { return TrackSchema.Name }
func (t *Track) SchemaVersion() int  { return TrackSchema.Version }

func (t *Track) Clone() SerializableObject {
	clone := &Track{CompositionBase: t.cloneCompositionBase(), kind: t.kind}
	clone.SetSelf(clone)
	reparentClonedChildren(clone, clone.children)
	return clone
}

func (t *Track) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*Track)
	if !ok || t.name != o.name || t.kind != o.kind || len(t.children) != len(o.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].IsEquivalentTo(o.children[i]) {
			return false
		}
	}
	return true
}

const fieldKind = "kind"

func (t *Track) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	t.writeCompositionFields(ctx, fields)
	fields.Set(fieldKind, t.kind)
	t.appendExtraFields(fields)
	return fields, nil
}

func (t *Track) readFields(fields *AnyDictionary) error {
	if err := t.readCompositionFields(fields); err != nil {
		return err
	}
	t.kind = asString(fields, fieldKind)
	if t.kind == "" {
		t.kind = TrackKindVideo
	}
	splitExtraFields(&t.SerializableObjectBase, fields, compositionKnownFields(fieldKind))
	t.SetSelf(t)
	t.reparentChildren()
	return nil
}

func (t *Track) walkChildren(visit func(SerializableObject)) {
	t.walkCompositionChildren(visit)
}

func init() {
	RegisterSchema(TrackSchema, func() SerializableObject {
		return NewTrack("", nil, "", nil, nil)
	})
	RegisterSchemaAlias("Sequence", "Track")
}
