// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// SerializableObject is anything with a schema identity that can round-trip
// through the JSON codec. Go's garbage collector takes the place of the
// reference-counted retainer handles the original system uses at FFI
// boundaries (see DESIGN.md); every SerializableObject here is a plain
// pointer, kept alive by the ordinary rules of the language.
type SerializableObject interface {
	SchemaName() string
	SchemaVersion() int

	// Clone returns a deep copy sharing no mutable state with the
	// original.
	Clone() SerializableObject

	// IsEquivalentTo reports structural deep equality, comparing floats
	// by bit pattern rather than epsilon so round-trips compare exact.
	IsEquivalentTo(other SerializableObject) bool

	// writeFields returns this object's schema-defined fields, in the
	// object's fixed field order, ready for the JSON writer to append
	// after the OTIO_SCHEMA/OTIO_REF_ID header keys. Nested
	// SerializableObject-valued fields must be encoded through ctx so
	// shared references collapse to OTIO_REF.
	writeFields(ctx *marshalContext) (*AnyDictionary, error)

	// readFields populates the object from a decoded field dictionary,
	// the mirror operation of writeFields.
	readFields(fields *AnyDictionary) error

	// walkChildren invokes visit once for every directly-held
	// SerializableObject field (children, media references, effects,
	// markers, ...), for the reference-counting pre-pass described in
	// spec.md §4.5. Leaf objects with no such fields are a no-op.
	walkChildren(visit func(SerializableObject))
}

// SerializableObjectBase carries the fields every SerializableObject has:
// a name, a user metadata dictionary, and any fields the static schema
// didn't enumerate but which arrived over the wire (preserved verbatim for
// round-trip fidelity, per spec.md §4.4).
type SerializableObjectBase struct {
	name     string
	metadata *AnyDictionary
	extra    *AnyDictionary
}

// NewSerializableObjectBase returns a base with metadata defaulted to an
// empty dictionary when nil is passed.
func NewSerializableObjectBase(name string, metadata *AnyDictionary) SerializableObjectBase {
	if metadata == nil {
		metadata = NewAnyDictionary()
	}
	return SerializableObjectBase{name: name, metadata: metadata}
}

// Name returns the object's name.
func (b *SerializableObjectBase) Name() string { return b.name }

// SetName sets the object's name.
func (b *SerializableObjectBase) SetName(name string) { b.name = name }

// Metadata returns the object's user metadata dictionary.
func (b *SerializableObjectBase) Metadata() *AnyDictionary {
	if b.metadata == nil {
		b.metadata = NewAnyDictionary()
	}
	return b.metadata
}

// SetMetadata replaces the object's user metadata dictionary.
func (b *SerializableObjectBase) SetMetadata(metadata *AnyDictionary) {
	if metadata == nil {
		metadata = NewAnyDictionary()
	}
	b.metadata = metadata
}

// cloneBase returns a deep copy of the base fields.
func (b SerializableObjectBase) cloneBase() SerializableObjectBase {
	return SerializableObjectBase{
		name:     b.name,
		metadata: CloneAnyDictionary(b.metadata),
		extra:    CloneAnyDictionary(b.extra),
	}
}

func (b *SerializableObjectBase) extraFields() *AnyDictionary {
	if b.extra == nil {
		b.extra = NewAnyDictionary()
	}
	return b.extra
}

// appendExtraFields appends any preserved unknown fields to fields, in the
// order they were first seen, after the schema-known fields already set.
func (b *SerializableObjectBase) appendExtraFields(fields *AnyDictionary) {
	for _, k := range b.extraFields().Keys() {
		v, _ := b.extra.Get(k)
		fields.Set(k, v)
	}
}
