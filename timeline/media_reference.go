// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// Vec2d is a 2D point or extent.
type Vec2d struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box2d is an axis-aligned bounding box.
type Box2d struct {
	Min Vec2d `json:"min"`
	Max Vec2d `json:"max"`
}

func cloneBox2d(b *Box2d) *Box2d {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func asBox2dPtr(fields *AnyDictionary, key string) *Box2d {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case *Box2d:
		return t
	case *AnyDictionary:
		box := &Box2d{}
		if minDict, ok := t.Get("min"); ok {
			if md, ok := minDict.(*AnyDictionary); ok {
				box.Min = Vec2d{X: asFloat(md, "x", 0), Y: asFloat(md, "y", 0)}
			}
		}
		if maxDict, ok := t.Get("max"); ok {
			if md, ok := maxDict.(*AnyDictionary); ok {
				box.Max = Vec2d{X: asFloat(md, "x", 0), Y: asFloat(md, "y", 0)}
			}
		}
		return box
	default:
		return nil
	}
}

// MediaReference describes the media a Clip draws from.
type MediaReference interface {
	SerializableObjectWithMetadata

	AvailableRange() *rtime.TimeRange
	SetAvailableRange(r *rtime.TimeRange)
	AvailableImageBounds() *Box2d
	SetAvailableImageBounds(b *Box2d)

	// IsMissingReference is true only for MissingReference, letting
	// callers detect an intentionally absent media link without a type
	// assertion.
	IsMissingReference() bool
}

// MediaReferenceBase is the base implementation of MediaReference.
type MediaReferenceBase struct {
	SerializableObjectBase
	availableRange       *rtime.TimeRange
	availableImageBounds *Box2d
}

// NewMediaReferenceBase returns a base with the given fields.
func NewMediaReferenceBase(name string, availableRange *rtime.TimeRange, metadata *AnyDictionary, bounds *Box2d) MediaReferenceBase {
	return MediaReferenceBase{
		SerializableObjectBase: NewSerializableObjectBase(name, metadata),
		availableRange:         availableRange,
		availableImageBounds:   bounds,
	}
}

func (m *MediaReferenceBase) AvailableRange() *rtime.TimeRange       { return m.availableRange }
func (m *MediaReferenceBase) SetAvailableRange(r *rtime.TimeRange)   { m.availableRange = r }
func (m *MediaReferenceBase) AvailableImageBounds() *Box2d           { return m.availableImageBounds }
func (m *MediaReferenceBase) SetAvailableImageBounds(b *Box2d)       { m.availableImageBounds = b }
func (m *MediaReferenceBase) IsMissingReference() bool               { return false }

func (m MediaReferenceBase) cloneMediaReferenceBase() MediaReferenceBase {
	return MediaReferenceBase{
		SerializableObjectBase: m.cloneBase(),
		availableRange:         cloneSourceRange(m.availableRange),
		availableImageBounds:   cloneBox2d(m.availableImageBounds),
	}
}

const (
	fieldAvailableRange       = "available_range"
	fieldAvailableImageBounds = "available_image_bounds"
)

func mediaReferenceKnownFields(extra ...string) map[string]bool {
	return baseKnownFields(append([]string{fieldAvailableRange, fieldAvailableImageBounds}, extra...)...)
}

func (m *MediaReferenceBase) writeMediaReferenceFields(fields *AnyDictionary) {
	m.writeBaseFields(fields)
	var ar any
	if m.availableRange != nil {
		ar = *m.availableRange
	}
	fields.Set(fieldAvailableRange, ar)
	fields.Set(fieldAvailableImageBounds, m.availableImageBounds)
}

func (m *MediaReferenceBase) readMediaReferenceFields(fields *AnyDictionary) {
	m.readBaseFields(fields)
	m.availableRange = asTimeRangePtr(fields, fieldAvailableRange)
	m.availableImageBounds = asBox2dPtr(fields, fieldAvailableImageBounds)
}
