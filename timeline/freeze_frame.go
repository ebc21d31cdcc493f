// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// FreezeFrameSchema is FreezeFrame's on-disk schema.
var FreezeFrameSchema = Schema{Name: "FreezeFrame", Version: 1}

// FreezeFrame holds a single frame for its entire duration: a
// LinearTimeWarp whose scalar is pinned to zero.
type FreezeFrame struct {
	EffectBase
}

// NewFreezeFrame returns a new FreezeFrame.
func NewFreezeFrame(name string, metadata *AnyDictionary) *FreezeFrame {
	return &FreezeFrame{EffectBase: NewEffectBase(name, "FreezeFrame", metadata)}
}

// TimeScalar is always zero: the output time never advances.
func (f *FreezeFrame) TimeScalar() float64 { return 0 }

func (f *FreezeFrame) SchemaName() string { return FreezeFrameSchema.Name }
func (f *FreezeFrame) SchemaVersion() int { return FreezeFrameSchema.Version }

func (f *FreezeFrame) Clone() SerializableObject {
	return &FreezeFrame{EffectBase: f.cloneEffectBase()}
}

func (f *FreezeFrame) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*FreezeFrame)
	return ok && f.name == o.name
}

func (f *FreezeFrame) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	f.writeEffectFields(fields)
	f.appendExtraFields(fields)
	return fields, nil
}

func (f *FreezeFrame) readFields(fields *AnyDictionary) error {
	f.readEffectFields(fields)
	if f.effectName == "" {
		f.effectName = "FreezeFrame"
	}
	splitExtraFields(&f.SerializableObjectBase, fields, effectKnownFields())
	return nil
}

func (f *FreezeFrame) walkChildren(visit func(SerializableObject)) { f.walkEffectChildren(visit) }

func init() {
	RegisterSchema(FreezeFrameSchema, func() SerializableObject { return NewFreezeFrame("", nil) })
}
