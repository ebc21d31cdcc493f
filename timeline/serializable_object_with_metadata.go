// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// SerializableObjectWithMetadata is a SerializableObject with a name and a
// user metadata dictionary, the shape shared by every concrete schema type
// in this package.
type SerializableObjectWithMetadata interface {
	SerializableObject

	Name() string
	SetName(name string)
	Metadata() *AnyDictionary
	SetMetadata(metadata *AnyDictionary)
}

const (
	fieldName     = "name"
	fieldMetadata = "metadata"
)

// baseKnownFields returns the keys every writeFields implementation reserves
// for SerializableObjectBase, used by readFields implementations to compute
// which incoming keys are schema-dynamic extras.
func baseKnownFields(extra ...string) map[string]bool {
	return knownKeySet(append([]string{fieldName, fieldMetadata}, extra...)...)
}

// writeBaseFields appends name and metadata, in that fixed order, to fields.
func (b *SerializableObjectBase) writeBaseFields(fields *AnyDictionary) {
	fields.Set(fieldName, b.name)
	fields.Set(fieldMetadata, b.Metadata())
}

// readBaseFields reads name and metadata from a decoded field dictionary.
func (b *SerializableObjectBase) readBaseFields(fields *AnyDictionary) {
	b.name = asString(fields, fieldName)
	b.metadata = asDictionary(fields, fieldMetadata)
}
