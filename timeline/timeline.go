// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// TimelineSchema is Timeline's on-disk schema.
var TimelineSchema = Schema{Name: "Timeline", Version: 1}

// Timeline is the root document: a single Stack of tracks plus an optional
// offset mapping track-zero to wall-clock/timecode zero.
type Timeline struct {
	SerializableObjectBase
	globalStartTime *rtime.RationalTime
	tracks          *Stack
}

// NewTimeline returns a new Timeline with an empty "tracks" Stack.
func NewTimeline(name string, globalStartTime *rtime.RationalTime, metadata *AnyDictionary) *Timeline {
	return &Timeline{
		SerializableObjectBase: NewSerializableObjectBase(name, metadata),
		globalStartTime:        globalStartTime,
		tracks:                 NewStack("tracks", nil, nil, nil, nil, nil),
	}
}

func (t *Timeline) GlobalStartTime() *rtime.RationalTime           { return t.globalStartTime }
func (t *Timeline) SetGlobalStartTime(gst *rtime.RationalTime)     { t.globalStartTime = gst }
func (t *Timeline) Tracks() *Stack                                 { return t.tracks }
func (t *Timeline) SetTracks(tracks *Stack)                        { t.tracks = tracks }

// Duration is the duration of the tracks Stack.
func (t *Timeline) Duration() (rtime.RationalTime, error) {
	if t.tracks == nil {
		return rtime.RationalTime{}, nil
	}
	return t.tracks.Duration()
}

// AvailableRange is the available range of the tracks Stack.
func (t *Timeline) AvailableRange() (rtime.TimeRange, error) {
	if t.tracks == nil {
		return rtime.TimeRange{}, nil
	}
	return t.tracks.AvailableRange()
}

// VideoTracks returns every top-level Track of kind video.
func (t *Timeline) VideoTracks() []*Track { return t.tracksByKind(TrackKindVideo) }

// AudioTracks returns every top-level Track of kind audio.
func (t *Timeline) AudioTracks() []*Track { return t.tracksByKind(TrackKindAudio) }

func (t *Timeline) tracksByKind(kind string) []*Track {
	var result []*Track
	if t.tracks == nil {
		return result
	}
	for _, child := range t.tracks.Children() {
		if track, ok := child.(*Track); ok && track.Kind() == kind {
			result = append(result, track)
		}
	}
	return result
}

// FindClips returns every Clip under the tracks Stack, optionally
// restricted to searchRange and to the top level only.
func (t *Timeline) FindClips(searchRange *rtime.TimeRange, shallowSearch bool) []*Clip {
	if t.tracks == nil {
		return nil
	}
	return t.tracks.FindClips(searchRange, shallowSearch)
}

// FindChildren returns every Composable under the tracks Stack matching
// filter, optionally restricted to searchRange and to the top level only.
func (t *Timeline) FindChildren(searchRange *rtime.TimeRange, shallowSearch bool, filter func(Composable) bool) []Composable {
	if t.tracks == nil {
		return nil
	}
	return t.tracks.FindChildren(searchRange, shallowSearch, filter)
}

// AvailableImageBounds is the union of every clip's available image bounds.
func (t *Timeline) AvailableImageBounds() (*Box2d, error) {
	if t.tracks == nil {
		return nil, nil
	}
	return t.tracks.AvailableImageBounds()
}

func (t *Timeline) SchemaName() string { return TimelineSchema.Name }
func (t *Timeline) SchemaVersion() int { return TimelineSchema.Version }

func (t *Timeline) Clone() SerializableObject {
	var gst *rtime.RationalTime
	if t.globalStartTime != nil {
		clone := *t.globalStartTime
		gst = &clone
	}
	var tracks *Stack
	if t.tracks != nil {
		tracks = t.tracks.Clone().(*Stack)
	}
	return &Timeline{
		SerializableObjectBase: t.cloneBase(),
		globalStartTime:        gst,
		tracks:                 tracks,
	}
}

func (t *Timeline) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*Timeline)
	if !ok || t.name != o.name {
		return false
	}
	if t.tracks == nil && o.tracks == nil {
		return true
	}
	if t.tracks == nil || o.tracks == nil {
		return false
	}
	return t.tracks.IsEquivalentTo(o.tracks)
}

const (
	fieldGlobalStartTime = "global_start_time"
	fieldTracks          = "tracks"
)

func (t *Timeline) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	t.writeBaseFields(fields)

	var gst any
	if t.globalStartTime != nil {
		gst = *t.globalStartTime
	}
	fields.Set(fieldGlobalStartTime, gst)

	var tracksValue any
	if t.tracks != nil {
		v, err := encodeValue(ctx, SerializableObject(t.tracks))
		if err != nil {
			return nil, err
		}
		tracksValue = v
	}
	fields.Set(fieldTracks, tracksValue)

	t.appendExtraFields(fields)
	return fields, nil
}

func (t *Timeline) readFields(fields *AnyDictionary) error {
	t.readBaseFields(fields)

	if v, ok := fields.Get(fieldGlobalStartTime); ok {
		if rt, ok := v.(rtime.RationalTime); ok {
			gst := rt
			t.globalStartTime = &gst
		}
	}

	t.tracks = nil
	if v, ok := fields.Get(fieldTracks); ok && v != nil {
		stack, ok := v.(*Stack)
		if !ok {
			return &TypeMismatchError{Expected: "Stack", Got: "other"}
		}
		t.tracks = stack
	}
	if t.tracks == nil {
		t.tracks = NewStack("tracks", nil, nil, nil, nil, nil)
	}

	splitExtraFields(&t.SerializableObjectBase, fields, baseKnownFields(fieldGlobalStartTime, fieldTracks))
	return nil
}

func (t *Timeline) walkChildren(visit func(SerializableObject)) {
	if t.tracks != nil {
		visit(t.tracks)
	}
}

func init() {
	RegisterSchema(TimelineSchema, func() SerializableObject {
		return NewTimeline("", nil, nil)
	})
}
