// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// TransitionType names the visual treatment a Transition applies.
type TransitionType string

const (
	TransitionTypeSMPTEDissolve TransitionType = "SMPTE_Dissolve"
	TransitionTypeCustom        TransitionType = "Custom_Transition"
)

// TransitionSchema is Transition's on-disk schema.
var TransitionSchema = Schema{Name: "Transition", Version: 1}

// Transition overlaps the tail of the preceding Item and the head of the
// following one within a Track; it takes no space of its own (Visible is
// false) but claims InOffset+OutOffset of time (Overlapping is true).
type Transition struct {
	ComposableBase
	transitionType TransitionType
	inOffset       rtime.RationalTime
	outOffset      rtime.RationalTime
}

// NewTransition returns a new Transition.
func NewTransition(name string, transitionType TransitionType, inOffset, outOffset rtime.RationalTime, metadata *AnyDictionary) *Transition {
	tr := &Transition{
		ComposableBase: NewComposableBase(name, metadata),
		transitionType: transitionType,
		inOffset:       inOffset,
		outOffset:      outOffset,
	}
	tr.SetSelf(tr)
	return tr
}

func (t *Transition) TransitionType() TransitionType         { return t.transitionType }
func (t *Transition) SetTransitionType(tt TransitionType)    { t.transitionType = tt }
func (t *Transition) InOffset() rtime.RationalTime           { return t.inOffset }
func (t *Transition) SetInOffset(in rtime.RationalTime)      { t.inOffset = in }
func (t *Transition) OutOffset() rtime.RationalTime          { return t.outOffset }
func (t *Transition) SetOutOffset(out rtime.RationalTime)    { t.outOffset = out }

// Duration is the total time the transition claims in its parent track.
func (t *Transition) Duration() (rtime.RationalTime, error) {
	return t.inOffset.Add(t.outOffset), nil
}

// Visible is false: a transition draws from its neighbors, not itself.
func (t *Transition) Visible() bool { return false }

// Overlapping is true: a transition shares time with its neighbors.
func (t *Transition) Overlapping() bool { return true }

func (t *Transition) SchemaName() string { return TransitionSchema.Name }
func (t *Transition) SchemaVersion() int { return TransitionSchema.Version }

func (t *Transition) Clone() SerializableObject {
	clone := &Transition{
		ComposableBase: t.cloneComposableBase(),
		transitionType: t.transitionType,
		inOffset:       t.inOffset,
		outOffset:      t.outOffset,
	}
	clone.SetSelf(clone)
	return clone
}

func (t *Transition) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*Transition)
	return ok && t.name == o.name && t.transitionType == o.transitionType &&
		t.inOffset.Equal(o.inOffset) && t.outOffset.Equal(o.outOffset)
}

const (
	fieldTransitionType = "transition_type"
	fieldInOffset       = "in_offset"
	fieldOutOffset      = "out_offset"
)

func (t *Transition) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	t.writeBaseFields(fields)
	fields.Set(fieldTransitionType, string(t.transitionType))
	fields.Set(fieldInOffset, t.inOffset)
	fields.Set(fieldOutOffset, t.outOffset)
	t.appendExtraFields(fields)
	return fields, nil
}

func (t *Transition) readFields(fields *AnyDictionary) error {
	t.readBaseFields(fields)
	t.transitionType = TransitionType(asString(fields, fieldTransitionType))
	t.inOffset = asRationalTime(fields, fieldInOffset)
	t.outOffset = asRationalTime(fields, fieldOutOffset)
	splitExtraFields(&t.SerializableObjectBase, fields, baseKnownFields(fieldTransitionType, fieldInOffset, fieldOutOffset))
	t.SetSelf(t)
	return nil
}

func (t *Transition) walkChildren(visit func(SerializableObject)) {}

func init() {
	RegisterSchema(TransitionSchema, func() SerializableObject {
		return NewTransition("", TransitionTypeSMPTEDissolve, rtime.RationalTime{}, rtime.RationalTime{}, nil)
	})
}
