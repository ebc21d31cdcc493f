// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// MissingReferenceSchema is MissingReference's on-disk schema.
var MissingReferenceSchema = Schema{Name: "MissingReference", Version: 1}

// MissingReference stands in for a Clip whose concrete media reference is
// unknown or unavailable.
type MissingReference struct {
	MediaReferenceBase
}

// NewMissingReference returns a new MissingReference.
func NewMissingReference(name string, availableRange *rtime.TimeRange, metadata *AnyDictionary, bounds *Box2d) *MissingReference {
	return &MissingReference{MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, bounds)}
}

func (m *MissingReference) IsMissingReference() bool { return true }

func (m *MissingReference) SchemaName() string { return MissingReferenceSchema.Name }
func (m *MissingReference) SchemaVersion() int { return MissingReferenceSchema.Version }

func (m *MissingReference) Clone() SerializableObject {
	return &MissingReference{MediaReferenceBase: m.cloneMediaReferenceBase()}
}

func (m *MissingReference) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*MissingReference)
	return ok && m.name == o.name
}

func (m *MissingReference) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	m.writeMediaReferenceFields(fields)
	m.appendExtraFields(fields)
	return fields, nil
}

func (m *MissingReference) readFields(fields *AnyDictionary) error {
	m.readMediaReferenceFields(fields)
	splitExtraFields(&m.SerializableObjectBase, fields, mediaReferenceKnownFields())
	return nil
}

func (m *MissingReference) walkChildren(visit func(SerializableObject)) {}

func init() {
	RegisterSchema(MissingReferenceSchema, func() SerializableObject {
		return NewMissingReference("", nil, nil, nil)
	})
}
