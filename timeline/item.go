// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// Item is a Composable with its own internal timeline: a trimmable source
// range, effects, markers, and an enabled/color pair used by presentation
// tooling rather than by the timing algebra itself.
type Item interface {
	Composable

	SourceRange() *rtime.TimeRange
	SetSourceRange(sourceRange *rtime.TimeRange)

	Effects() []Effect
	SetEffects(effects []Effect)

	Markers() []*Marker
	SetMarkers(markers []*Marker)

	Enabled() bool
	SetEnabled(enabled bool)

	ItemColor() *Color
	SetItemColor(color *Color)

	// AvailableRange is the full range of media/content this item could
	// draw from, before any trim. Concrete types override this; the
	// ItemBase default reports CANNOT_COMPUTE_AVAILABLE_RANGE.
	AvailableRange() (rtime.TimeRange, error)

	// TrimmedRange is SourceRange if set, else AvailableRange.
	TrimmedRange() (rtime.TimeRange, error)

	// VisibleRange is TrimmedRange extended at either edge by the
	// in/out offset of an adjacent Transition in the parent Track, since
	// a cross-dissolve draws on media outside the nominal trim to supply
	// the overlap.
	VisibleRange() (rtime.TimeRange, error)

	TransformedTime(t rtime.RationalTime, toItem Item) (rtime.RationalTime, error)
	TransformedTimeRange(tr rtime.TimeRange, toItem Item) (rtime.TimeRange, error)
}

// ItemBase is the base implementation of Item.
type ItemBase struct {
	ComposableBase
	sourceRange *rtime.TimeRange
	effects     []Effect
	markers     []*Marker
	enabled     bool
	color       *Color
}

// NewItemBase returns a base built from the given fields.
func NewItemBase(name string, sourceRange *rtime.TimeRange, metadata *AnyDictionary, effects []Effect, markers []*Marker, enabled bool, color *Color) ItemBase {
	return ItemBase{
		ComposableBase: NewComposableBase(name, metadata),
		sourceRange:    sourceRange,
		effects:        effects,
		markers:        markers,
		enabled:        enabled,
		color:          color,
	}
}

func (i *ItemBase) SourceRange() *rtime.TimeRange          { return i.sourceRange }
func (i *ItemBase) SetSourceRange(sr *rtime.TimeRange)     { i.sourceRange = sr }
func (i *ItemBase) Effects() []Effect                      { return i.effects }
func (i *ItemBase) SetEffects(effects []Effect)            { i.effects = effects }
func (i *ItemBase) Markers() []*Marker                     { return i.markers }
func (i *ItemBase) SetMarkers(markers []*Marker)           { i.markers = markers }
func (i *ItemBase) Enabled() bool                          { return i.enabled }
func (i *ItemBase) SetEnabled(enabled bool)                { i.enabled = enabled }
func (i *ItemBase) ItemColor() *Color                      { return i.color }
func (i *ItemBase) SetItemColor(color *Color)               { i.color = color }

// AvailableRange is overridden by every concrete Item type; a bare
// ItemBase (which nothing instantiates directly) cannot compute one.
func (i *ItemBase) AvailableRange() (rtime.TimeRange, error) {
	return rtime.TimeRange{}, ErrCannotComputeAvailableRange
}

func (i *ItemBase) selfItem() Item {
	item, _ := i.Self().(Item)
	return item
}

// TrimmedRange returns SourceRange when set, falling back to the concrete
// type's AvailableRange (reached through Self for correct virtual
// dispatch) otherwise.
func (i *ItemBase) TrimmedRange() (rtime.TimeRange, error) {
	if i.sourceRange != nil {
		return *i.sourceRange, nil
	}
	if item := i.selfItem(); item != nil {
		return item.AvailableRange()
	}
	return i.AvailableRange()
}

// handlesInParentTrack looks up the in/out handle contributed by an
// adjacent Transition, when this item's parent is a Track (the only
// composition kind Transitions may appear in).
func (i *ItemBase) handlesInParentTrack() (in, out rtime.RationalTime) {
	self := i.Self()
	if self == nil {
		return
	}
	track, ok := i.parent.(*Track)
	if !ok {
		return
	}
	inHandle, outHandle, err := track.HandlesOfChild(self)
	if err != nil {
		return
	}
	if inHandle != nil {
		in = *inHandle
	}
	if outHandle != nil {
		out = *outHandle
	}
	return
}

// VisibleRange extends TrimmedRange by any neighboring Transition's
// in/out offset: a dissolve into or out of this item draws on source
// material beyond the plain trim to fill the overlap, and that material
// is what VisibleRange reports.
func (i *ItemBase) VisibleRange() (rtime.TimeRange, error) {
	trimmed, err := i.TrimmedRange()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	inHandle, outHandle := i.handlesInParentTrack()
	start := trimmed.StartTime.Sub(inHandle)
	duration := trimmed.Duration.Add(inHandle).Add(outHandle)
	return rtime.TimeRange{StartTime: start, Duration: duration}, nil
}

// TransformedTime converts t, expressed in this item's internal time, into
// toItem's internal time. Both items must descend from a common ancestor:
// the algorithm walks up from this item accumulating parent-coordinate
// offsets until it reaches toItem or the shared root, then walks back down
// applying the inverse offsets collected along toItem's own path to the
// root.
func (i *ItemBase) TransformedTime(t rtime.RationalTime, toItem Item) (rtime.RationalTime, error) {
	if toItem == nil {
		return t, nil
	}
	selfItem := i.selfItem()
	if selfItem == nil {
		return t, nil
	}

	root := i.highestAncestor()
	result := t
	item := selfItem

	for item != root && !sameComposable(item, toItem) {
		parent := item.Parent()
		if parent == nil {
			break
		}
		trimmedRange, err := item.TrimmedRange()
		if err != nil {
			return result, err
		}
		result = result.Sub(trimmedRange.StartTime)

		rangeInParent, err := parent.RangeOfChild(item)
		if err != nil {
			return result, err
		}
		result = result.Add(rangeInParent.StartTime)

		parentItem, ok := parent.(Item)
		if !ok {
			break
		}
		item = parentItem
	}

	if sameComposable(item, toItem) {
		return result, nil
	}

	ancestor := item
	item = toItem
	type step struct{ trimmedStart, rangeStart rtime.RationalTime }
	var steps []step

	for item != root && !sameComposable(item, ancestor) {
		parent := item.Parent()
		if parent == nil {
			break
		}
		trimmedRange, err := item.TrimmedRange()
		if err != nil {
			return result, err
		}
		rangeInParent, err := parent.RangeOfChild(item)
		if err != nil {
			return result, err
		}
		steps = append(steps, step{trimmedRange.StartTime, rangeInParent.StartTime})

		parentItem, ok := parent.(Item)
		if !ok {
			break
		}
		item = parentItem
	}

	for j := len(steps) - 1; j >= 0; j-- {
		result = result.Sub(steps[j].rangeStart)
		result = result.Add(steps[j].trimmedStart)
	}

	return result, nil
}

// TransformedTimeRange transforms tr's start time to toItem's coordinate
// space, preserving duration.
func (i *ItemBase) TransformedTimeRange(tr rtime.TimeRange, toItem Item) (rtime.TimeRange, error) {
	start, err := i.TransformedTime(tr.StartTime, toItem)
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return rtime.TimeRange{StartTime: start, Duration: tr.Duration}, nil
}

// highestAncestor walks up Parent links to the root of the composition
// hierarchy. An item with no parent is its own root.
func (i *ItemBase) highestAncestor() Item {
	selfItem := i.selfItem()
	if selfItem == nil {
		return nil
	}
	current := selfItem
	for {
		parent := current.Parent()
		if parent == nil {
			return current
		}
		parentItem, ok := parent.(Item)
		if !ok {
			return current
		}
		current = parentItem
	}
}

// sameComposable compares two Item values by the identity of their
// underlying Composable, since two different interface values (Item vs.
// Composition) can wrap the same concrete pointer.
func sameComposable(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ac, aok := a.(Composable)
	bc, bok := b.(Composable)
	if aok && bok {
		return ac == bc
	}
	return a == b
}

func cloneSourceRange(tr *rtime.TimeRange) *rtime.TimeRange {
	if tr == nil {
		return nil
	}
	clone := *tr
	return &clone
}

func cloneEffects(effects []Effect) []Effect {
	if effects == nil {
		return nil
	}
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = e.Clone().(Effect)
	}
	return out
}

func cloneMarkers(markers []*Marker) []*Marker {
	if markers == nil {
		return nil
	}
	out := make([]*Marker, len(markers))
	for i, m := range markers {
		out[i] = m.Clone().(*Marker)
	}
	return out
}

func (i ItemBase) cloneItemBase() ItemBase {
	return ItemBase{
		ComposableBase: i.cloneComposableBase(),
		sourceRange:    cloneSourceRange(i.sourceRange),
		effects:        cloneEffects(i.effects),
		markers:        cloneMarkers(i.markers),
		enabled:        i.enabled,
		color:          cloneColor(i.color),
	}
}

const (
	fieldSourceRange = "source_range"
	fieldEffects     = "effects"
	fieldMarkers     = "markers"
	fieldEnabled     = "enabled"
	fieldColor       = "item_color"
)

func itemKnownFields(extra ...string) map[string]bool {
	return baseKnownFields(append([]string{fieldSourceRange, fieldEffects, fieldMarkers, fieldEnabled, fieldColor}, extra...)...)
}

func (i *ItemBase) writeItemFields(ctx *marshalContext, fields *AnyDictionary) {
	i.writeBaseFields(fields)
	var sourceRangeValue any
	if i.sourceRange != nil {
		sourceRangeValue = *i.sourceRange
	}
	fields.Set(fieldSourceRange, sourceRangeValue)

	effects := NewAnyVector()
	for _, e := range i.effects {
		v, _ := encodeValue(ctx, e)
		effects.Append(v)
	}
	fields.Set(fieldEffects, effects)

	markers := NewAnyVector()
	for _, m := range i.markers {
		v, _ := encodeValue(ctx, SerializableObject(m))
		markers.Append(v)
	}
	fields.Set(fieldMarkers, markers)

	fields.Set(fieldEnabled, i.enabled)
	fields.Set(fieldColor, i.color)
}

func (i *ItemBase) readItemFields(fields *AnyDictionary) error {
	i.readBaseFields(fields)
	i.sourceRange = asTimeRangePtr(fields, fieldSourceRange)

	i.effects = nil
	effectsVec := asVector(fields, fieldEffects)
	for j := 0; j < effectsVec.Len(); j++ {
		v, _ := effectsVec.At(j)
		effect, ok := v.(Effect)
		if !ok {
			return &TypeMismatchError{Expected: "Effect", Got: "other"}
		}
		i.effects = append(i.effects, effect)
	}

	i.markers = nil
	markersVec := asVector(fields, fieldMarkers)
	for j := 0; j < markersVec.Len(); j++ {
		v, _ := markersVec.At(j)
		marker, ok := v.(*Marker)
		if !ok {
			return &TypeMismatchError{Expected: "Marker", Got: "other"}
		}
		i.markers = append(i.markers, marker)
	}

	i.enabled = asBool(fields, fieldEnabled, true)
	i.color = asColorPtr(fields, fieldColor)
	return nil
}

func (i *ItemBase) walkItemChildren(visit func(SerializableObject)) {
	for _, e := range i.effects {
		visit(e)
	}
	for _, m := range i.markers {
		visit(m)
	}
}
