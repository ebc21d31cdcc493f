// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// UnknownSchema preserves a document fragment whose OTIO_SCHEMA header names
// a schema this build has no registration for. It round-trips the fragment
// byte-for-byte rather than discarding it, so a newer file opened by an
// older binary survives an edit-and-resave unscathed.
type UnknownSchema struct {
	schemaName    string
	schemaVersion int
	fields        *AnyDictionary
}

// NewUnknownSchema wraps fields under the given "Name.Version" schema
// header. A nil fields is treated as empty.
func NewUnknownSchema(schemaHeader string, fields *AnyDictionary) *UnknownSchema {
	name, version := ParseSchema(schemaHeader)
	if fields == nil {
		fields = NewAnyDictionary()
	}
	return &UnknownSchema{schemaName: name, schemaVersion: version, fields: fields}
}

// SchemaName returns the original, unrecognized schema name.
func (u *UnknownSchema) SchemaName() string { return u.schemaName }

// SchemaVersion returns the original on-disk version.
func (u *UnknownSchema) SchemaVersion() int { return u.schemaVersion }

// OriginalSchema renders the preserved "Name.Version" header.
func (u *UnknownSchema) OriginalSchema() string {
	return Schema{Name: u.schemaName, Version: u.schemaVersion}.String()
}

// Fields returns the preserved field dictionary, untouched by any
// upgrade/downgrade machinery since none is registered for an unknown name.
func (u *UnknownSchema) Fields() *AnyDictionary { return u.fields }

func (u *UnknownSchema) Clone() SerializableObject {
	return &UnknownSchema{
		schemaName:    u.schemaName,
		schemaVersion: u.schemaVersion,
		fields:        CloneAnyDictionary(u.fields),
	}
}

func (u *UnknownSchema) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*UnknownSchema)
	if !ok {
		return false
	}
	return u.schemaName == o.schemaName &&
		u.schemaVersion == o.schemaVersion &&
		areAnyDictionariesEqual(u.fields, o.fields)
}

func (u *UnknownSchema) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	return u.fields, nil
}

func (u *UnknownSchema) readFields(fields *AnyDictionary) error {
	u.fields = fields
	return nil
}

func (u *UnknownSchema) walkChildren(visit func(SerializableObject)) {
	for _, k := range u.fields.Keys() {
		v, _ := u.fields.Get(k)
		walkAnyValueChildren(v, visit)
	}
}

// walkAnyValueChildren recurses into nested AnyDictionary/AnyVector values
// looking for SerializableObject children, the generic counterpart of each
// concrete type's hand-written walkChildren.
func walkAnyValueChildren(v any, visit func(SerializableObject)) {
	switch t := v.(type) {
	case SerializableObject:
		visit(t)
	case *AnyDictionary:
		for _, k := range t.Keys() {
			cv, _ := t.Get(k)
			walkAnyValueChildren(cv, visit)
		}
	case *AnyVector:
		for i := 0; i < t.Len(); i++ {
			cv, _ := t.At(i)
			walkAnyValueChildren(cv, visit)
		}
	}
}

func init() {
	RegisterSchema(Schema{Name: "UnknownSchema", Version: 1}, func() SerializableObject {
		return &UnknownSchema{schemaName: "UnknownSchema", schemaVersion: 1, fields: NewAnyDictionary()}
	})
}
