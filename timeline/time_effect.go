// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// TimeEffect marks an Effect that alters the flow of time rather than the
// image/audio content itself.
type TimeEffect interface {
	Effect
}

// TimeEffectSchema is TimeEffect's on-disk schema.
var TimeEffectSchema = Schema{Name: "TimeEffect", Version: 1}

// TimeEffectImpl is the base, unparametrized time effect.
type TimeEffectImpl struct {
	EffectBase
}

// NewTimeEffect returns a new TimeEffectImpl.
func NewTimeEffect(name, effectName string, metadata *AnyDictionary) *TimeEffectImpl {
	return &TimeEffectImpl{EffectBase: NewEffectBase(name, effectName, metadata)}
}

func (t *TimeEffectImpl) SchemaName() string { return TimeEffectSchema.Name }
func (t *TimeEffectImpl) SchemaVersion() int { return TimeEffectSchema.Version }

func (t *TimeEffectImpl) Clone() SerializableObject {
	return &TimeEffectImpl{EffectBase: t.cloneEffectBase()}
}

func (t *TimeEffectImpl) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*TimeEffectImpl)
	return ok && t.name == o.name && t.effectName == o.effectName
}

func (t *TimeEffectImpl) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	t.writeEffectFields(fields)
	t.appendExtraFields(fields)
	return fields, nil
}

func (t *TimeEffectImpl) readFields(fields *AnyDictionary) error {
	t.readEffectFields(fields)
	splitExtraFields(&t.SerializableObjectBase, fields, effectKnownFields())
	return nil
}

func (t *TimeEffectImpl) walkChildren(visit func(SerializableObject)) { t.walkEffectChildren(visit) }

func init() {
	RegisterSchema(TimeEffectSchema, func() SerializableObject {
		return NewTimeEffect("", "TimeEffect", nil)
	})
}
