// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// MarkerSchema is Marker's on-disk schema.
var MarkerSchema = Schema{Name: "Marker", Version: 2}

// Marker annotates a range of an Item's time with a color and comment.
type Marker struct {
	SerializableObjectBase
	markedRange rtime.TimeRange
	color       MarkerColor
	comment     string
}

// NewMarker returns a new Marker, defaulting color to green when empty.
func NewMarker(name string, markedRange rtime.TimeRange, color MarkerColor, comment string, metadata *AnyDictionary) *Marker {
	if color == "" {
		color = MarkerColorGreen
	}
	return &Marker{
		SerializableObjectBase: NewSerializableObjectBase(name, metadata),
		markedRange:            markedRange,
		color:                  color,
		comment:                comment,
	}
}

func (m *Marker) MarkedRange() rtime.TimeRange          { return m.markedRange }
func (m *Marker) SetMarkedRange(r rtime.TimeRange)      { m.markedRange = r }
func (m *Marker) Color() MarkerColor                     { return m.color }
func (m *Marker) SetColor(c MarkerColor)                 { m.color = c }
func (m *Marker) Comment() string                        { return m.comment }
func (m *Marker) SetComment(c string)                    { m.comment = c }

func (m *Marker) SchemaName() string { return MarkerSchema.Name }
func (m *Marker) SchemaVersion() int { return MarkerSchema.Version }

func (m *Marker) Clone() SerializableObject {
	return &Marker{
		SerializableObjectBase: m.cloneBase(),
		markedRange:            m.markedRange,
		color:                  m.color,
		comment:                m.comment,
	}
}

func (m *Marker) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*Marker)
	return ok && m.name == o.name && m.markedRange.Equal(o.markedRange) && m.color == o.color && m.comment == o.comment
}

const (
	fieldMarkedRange = "marked_range"
	fieldColorName   = "color"
	fieldComment     = "comment"
)

func (m *Marker) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	m.writeBaseFields(fields)
	fields.Set(fieldMarkedRange, m.markedRange)
	fields.Set(fieldColorName, string(m.color))
	fields.Set(fieldComment, m.comment)
	m.appendExtraFields(fields)
	return fields, nil
}

func (m *Marker) readFields(fields *AnyDictionary) error {
	m.readBaseFields(fields)
	m.markedRange = asRationalTimeRange(fields, fieldMarkedRange)
	m.color = MarkerColor(asString(fields, fieldColorName))
	if m.color == "" {
		m.color = MarkerColorGreen
	}
	m.comment = asString(fields, fieldComment)
	splitExtraFields(&m.SerializableObjectBase, fields, baseKnownFields(fieldMarkedRange, fieldColorName, fieldComment))
	return nil
}

func (m *Marker) walkChildren(visit func(SerializableObject)) {}

func asRationalTimeRange(fields *AnyDictionary, key string) rtime.TimeRange {
	if p := asTimeRangePtr(fields, key); p != nil {
		return *p
	}
	return rtime.TimeRange{}
}

func init() {
	RegisterSchema(MarkerSchema, func() SerializableObject {
		return NewMarker("", rtime.TimeRange{}, "", "", nil)
	})
}
