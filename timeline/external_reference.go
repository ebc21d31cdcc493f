// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// ExternalReferenceSchema is ExternalReference's on-disk schema.
var ExternalReferenceSchema = Schema{Name: "ExternalReference", Version: 1}

// ExternalReference is a URL-addressed media reference.
type ExternalReference struct {
	MediaReferenceBase
	targetURL string
}

// NewExternalReference returns a new ExternalReference.
func NewExternalReference(name, targetURL string, availableRange *rtime.TimeRange, metadata *AnyDictionary) *ExternalReference {
	return &ExternalReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil),
		targetURL:          targetURL,
	}
}

func (e *ExternalReference) TargetURL() string        { return e.targetURL }
func (e *ExternalReference) SetTargetURL(url string)   { e.targetURL = url }

func (e *ExternalReference) SchemaName() string { return ExternalReferenceSchema.Name }
func (e *ExternalReference) SchemaVersion() int { return ExternalReferenceSchema.Version }

func (e *ExternalReference) Clone() SerializableObject {
	return &ExternalReference{
		MediaReferenceBase: e.cloneMediaReferenceBase(),
		targetURL:          e.targetURL,
	}
}

func (e *ExternalReference) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*ExternalReference)
	return ok && e.name == o.name && e.targetURL == o.targetURL
}

const fieldTargetURL = "target_url"

func (e *ExternalReference) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	e.writeMediaReferenceFields(fields)
	fields.Set(fieldTargetURL, e.targetURL)
	e.appendExtraFields(fields)
	return fields, nil
}

func (e *ExternalReference) readFields(fields *AnyDictionary) error {
	e.readMediaReferenceFields(fields)
	e.targetURL = asString(fields, fieldTargetURL)
	splitExtraFields(&e.SerializableObjectBase, fields, mediaReferenceKnownFields(fieldTargetURL))
	return nil
}

func (e *ExternalReference) walkChildren(visit func(SerializableObject)) {}

func init() {
	RegisterSchema(ExternalReferenceSchema, func() SerializableObject {
		return NewExternalReference("", "", nil, nil)
	})
}
