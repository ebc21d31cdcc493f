// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// Effect is a named, serializable operation attached to an Item.
type Effect interface {
	SerializableObjectWithMetadata

	EffectName() string
	SetEffectName(name string)
}

// EffectSchema is the generic Effect schema; TimeEffect, LinearTimeWarp and
// FreezeFrame specialize it.
var EffectSchema = Schema{Name: "Effect", Version: 1}

// EffectBase is the base implementation of Effect.
type EffectBase struct {
	SerializableObjectBase
	effectName string
}

// NewEffectBase returns a base with the given effect name.
func NewEffectBase(name, effectName string, metadata *AnyDictionary) EffectBase {
	return EffectBase{SerializableObjectBase: NewSerializableObjectBase(name, metadata), effectName: effectName}
}

func (e *EffectBase) EffectName() string        { return e.effectName }
func (e *EffectBase) SetEffectName(name string) { e.effectName = name }

func (e EffectBase) cloneEffectBase() EffectBase {
	return EffectBase{SerializableObjectBase: e.cloneBase(), effectName: e.effectName}
}

const fieldEffectName = "effect_name"

func effectKnownFields(extra ...string) map[string]bool {
	return baseKnownFields(append([]string{fieldEffectName}, extra...)...)
}

func (e *EffectBase) writeEffectFields(fields *AnyDictionary) {
	e.writeBaseFields(fields)
	fields.Set(fieldEffectName, e.effectName)
}

func (e *EffectBase) readEffectFields(fields *AnyDictionary) {
	e.readBaseFields(fields)
	e.effectName = asString(fields, fieldEffectName)
}

func (e *EffectBase) walkEffectChildren(visit func(SerializableObject)) {}

// EffectImpl is a plain, non-time-altering Effect.
type EffectImpl struct {
	EffectBase
}

// NewEffect returns a new EffectImpl.
func NewEffect(name, effectName string, metadata *AnyDictionary) *EffectImpl {
	return &EffectImpl{EffectBase: NewEffectBase(name, effectName, metadata)}
}

func (e *EffectImpl) SchemaName() string { return EffectSchema.Name }
func (e *EffectImpl) SchemaVersion() int { return EffectSchema.Version }

func (e *EffectImpl) Clone() SerializableObject {
	return &EffectImpl{EffectBase: e.cloneEffectBase()}
}

func (e *EffectImpl) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*EffectImpl)
	return ok && e.name == o.name && e.effectName == o.effectName
}

func (e *EffectImpl) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	e.writeEffectFields(fields)
	e.appendExtraFields(fields)
	return fields, nil
}

func (e *EffectImpl) readFields(fields *AnyDictionary) error {
	e.readEffectFields(fields)
	splitExtraFields(&e.SerializableObjectBase, fields, effectKnownFields())
	return nil
}

func (e *EffectImpl) walkChildren(visit func(SerializableObject)) { e.walkEffectChildren(visit) }

func init() {
	RegisterSchema(EffectSchema, func() SerializableObject { return NewEffect("", "", nil) })
}
