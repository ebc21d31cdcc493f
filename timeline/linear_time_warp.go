// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// LinearTimeWarpSchema is LinearTimeWarp's on-disk schema.
var LinearTimeWarpSchema = Schema{Name: "LinearTimeWarp", Version: 1}

// LinearTimeWarp scales time linearly by a constant factor: 2.0 plays at
// double speed, 0.5 at half speed.
type LinearTimeWarp struct {
	EffectBase
	timeScalar float64
}

// NewLinearTimeWarp returns a new LinearTimeWarp, defaulting the scalar to
// 1.0 (no change) when zero is passed.
func NewLinearTimeWarp(name string, timeScalar float64, metadata *AnyDictionary) *LinearTimeWarp {
	if timeScalar == 0 {
		timeScalar = 1.0
	}
	return &LinearTimeWarp{EffectBase: NewEffectBase(name, "LinearTimeWarp", metadata), timeScalar: timeScalar}
}

func (l *LinearTimeWarp) TimeScalar() float64      { return l.timeScalar }
func (l *LinearTimeWarp) SetTimeScalar(v float64)  { l.timeScalar = v }

func (l *LinearTimeWarp) SchemaName() string { return LinearTimeWarpSchema.Name }
func (l *LinearTimeWarp) SchemaVersion() int { return LinearTimeWarpSchema.Version }

func (l *LinearTimeWarp) Clone() SerializableObject {
	return &LinearTimeWarp{EffectBase: l.cloneEffectBase(), timeScalar: l.timeScalar}
}

func (l *LinearTimeWarp) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*LinearTimeWarp)
	return ok && l.name == o.name && l.timeScalar == o.timeScalar
}

const fieldTimeScalar = "time_scalar"

func (l *LinearTimeWarp) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	l.writeEffectFields(fields)
	fields.Set(fieldTimeScalar, l.timeScalar)
	l.appendExtraFields(fields)
	return fields, nil
}

func (l *LinearTimeWarp) readFields(fields *AnyDictionary) error {
	l.readEffectFields(fields)
	l.timeScalar = asFloat(fields, fieldTimeScalar, 1.0)
	splitExtraFields(&l.SerializableObjectBase, fields, effectKnownFields(fieldTimeScalar))
	return nil
}

func (l *LinearTimeWarp) walkChildren(visit func(SerializableObject)) { l.walkEffectChildren(visit) }

func init() {
	RegisterSchema(LinearTimeWarpSchema, func() SerializableObject {
		return NewLinearTimeWarp("", 0, nil)
	})
}
