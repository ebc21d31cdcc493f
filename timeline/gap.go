// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// GapSchema is Gap's on-disk schema.
var GapSchema = Schema{Name: "Gap", Version: 1}

// Gap is empty space of a fixed duration in a Track.
type Gap struct {
	ItemBase
}

// NewGap returns a new Gap.
func NewGap(name string, sourceRange *rtime.TimeRange, metadata *AnyDictionary, effects []Effect, markers []*Marker, color *Color) *Gap {
	gap := &Gap{ItemBase: NewItemBase(name, sourceRange, metadata, effects, markers, true, color)}
	gap.SetSelf(gap)
	return gap
}

// NewGapWithDuration returns an unnamed Gap spanning duration starting at
// zero.
func NewGapWithDuration(duration rtime.RationalTime) *Gap {
	sourceRange := rtime.TimeRange{StartTime: rtime.RationalTime{}, Duration: duration}
	return NewGap("", &sourceRange, nil, nil, nil, nil)
}

// AvailableRange mirrors SourceRange: a Gap has no media of its own.
func (g *Gap) AvailableRange() (rtime.TimeRange, error) {
	if g.sourceRange != nil {
		return *g.sourceRange, nil
	}
	return rtime.TimeRange{}, ErrCannotComputeAvailableRange
}

// Duration is SourceRange's duration if set, else AvailableRange's.
func (g *Gap) Duration() (rtime.RationalTime, error) {
	if g.sourceRange != nil {
		return g.sourceRange.Duration, nil
	}
	ar, err := g.AvailableRange()
	if err != nil {
		return rtime.RationalTime{}, err
	}
	return ar.Duration, nil
}

func (g *Gap) SchemaName() string { return GapSchema.Name }
func (g *Gap) SchemaVersion() int { return GapSchema.Version }

func (g *Gap) Clone() SerializableObject {
	clone := &Gap{ItemBase: g.cloneItemBase()}
	clone.SetSelf(clone)
	return clone
}

func (g *Gap) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*Gap)
	return ok && g.name == o.name && g.enabled == o.enabled
}

func (g *Gap) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	g.writeItemFields(ctx, fields)
	g.appendExtraFields(fields)
	return fields, nil
}

func (g *Gap) readFields(fields *AnyDictionary) error {
	if err := g.readItemFields(fields); err != nil {
		return err
	}
	splitExtraFields(&g.SerializableObjectBase, fields, itemKnownFields())
	return nil
}

func (g *Gap) walkChildren(visit func(SerializableObject)) { g.walkItemChildren(visit) }

func init() {
	RegisterSchema(GapSchema, func() SerializableObject {
		return NewGap("", nil, nil, nil, nil, nil)
	})
	RegisterSchemaAlias("Filler", "Gap")
}
