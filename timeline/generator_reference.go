// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// GeneratorReferenceSchema is GeneratorReference's on-disk schema.
var GeneratorReferenceSchema = Schema{Name: "GeneratorReference", Version: 1}

// GeneratorReference is a media reference produced algorithmically (bars,
// solids, noise) rather than read from a file.
type GeneratorReference struct {
	MediaReferenceBase
	generatorKind string
	parameters    *AnyDictionary
}

// NewGeneratorReference returns a new GeneratorReference.
func NewGeneratorReference(name, generatorKind string, parameters *AnyDictionary, availableRange *rtime.TimeRange, metadata *AnyDictionary) *GeneratorReference {
	if parameters == nil {
		parameters = NewAnyDictionary()
	}
	return &GeneratorReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil),
		generatorKind:      generatorKind,
		parameters:         parameters,
	}
}

func (g *GeneratorReference) GeneratorKind() string      { return g.generatorKind }
func (g *GeneratorReference) SetGeneratorKind(k string)  { g.generatorKind = k }
func (g *GeneratorReference) Parameters() *AnyDictionary { return g.parameters }

func (g *GeneratorReference) SetParameters(params *AnyDictionary) {
	if params == nil {
		params = NewAnyDictionary()
	}
	g.parameters = params
}

func (g *GeneratorReference) SchemaName() string { return GeneratorReferenceSchema.Name }
func (g *GeneratorReference) SchemaVersion() int { return GeneratorReferenceSchema.Version }

func (g *GeneratorReference) Clone() SerializableObject {
	return &GeneratorReference{
		MediaReferenceBase: g.cloneMediaReferenceBase(),
		generatorKind:      g.generatorKind,
		parameters:         CloneAnyDictionary(g.parameters),
	}
}

func (g *GeneratorReference) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*GeneratorReference)
	return ok && g.name == o.name && g.generatorKind == o.generatorKind
}

const (
	fieldGeneratorKind = "generator_kind"
	fieldParameters    = "parameters"
)

func (g *GeneratorReference) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	g.writeMediaReferenceFields(fields)
	fields.Set(fieldGeneratorKind, g.generatorKind)
	fields.Set(fieldParameters, g.parameters)
	g.appendExtraFields(fields)
	return fields, nil
}

func (g *GeneratorReference) readFields(fields *AnyDictionary) error {
	g.readMediaReferenceFields(fields)
	g.generatorKind = asString(fields, fieldGeneratorKind)
	g.parameters = asDictionary(fields, fieldParameters)
	if g.parameters == nil {
		g.parameters = NewAnyDictionary()
	}
	splitExtraFields(&g.SerializableObjectBase, fields, mediaReferenceKnownFields(fieldGeneratorKind, fieldParameters))
	return nil
}

func (g *GeneratorReference) walkChildren(visit func(SerializableObject)) {}

func init() {
	RegisterSchema(GeneratorReferenceSchema, func() SerializableObject {
		return NewGeneratorReference("", "", nil, nil, nil)
	})
}
