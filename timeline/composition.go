// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// Composition is an Item that contains other Composables as children.
type Composition interface {
	Item

	CompositionKind() string
	Children() []Composable
	ClearChildren()
	SetChildren(children []Composable) error
	InsertChild(index int, child Composable) error
	SetChild(index int, child Composable) error
	RemoveChild(index int) error
	AppendChild(child Composable) error
	IndexOfChild(child Composable) (int, error)
	IsParentOf(child Composable) bool
	RangeOfChild(child Composable) (rtime.TimeRange, error)
	RangeOfChildAtIndex(index int) (rtime.TimeRange, error)
	TrimmedRangeOfChild(child Composable) (*rtime.TimeRange, error)
	TrimmedRangeOfChildAtIndex(index int) (rtime.TimeRange, error)
	HasChild(child Composable) bool
	HasClips() bool
	RangeOfAllChildren() (map[Composable]rtime.TimeRange, error)
	ChildAtTime(searchTime rtime.RationalTime, shallowSearch bool) (Composable, error)
	ChildrenInRange(searchRange rtime.TimeRange) ([]Composable, error)
	FindChildren(searchRange *rtime.TimeRange, shallowSearch bool, filter func(Composable) bool) []Composable
	FindClips(searchRange *rtime.TimeRange, shallowSearch bool) []*Clip
}

// CompositionSchema is the abstract base schema; TrackSchema and
// StackSchema are its two concrete specializations.
var CompositionSchema = Schema{Name: "Composition", Version: 1}

// CompositionBase is shared by Track and Stack. Its RangeOfChildAtIndex
// implements sequential (Track-style) placement; Stack overrides it for
// parallel placement.
type CompositionBase struct {
	ItemBase
	children []Composable
}

// NewCompositionBase returns a base with an empty, non-nil children slice.
func NewCompositionBase(name string, sourceRange *rtime.TimeRange, metadata *AnyDictionary, effects []Effect, markers []*Marker, color *Color) CompositionBase {
	return CompositionBase{
		ItemBase: NewItemBase(name, sourceRange, metadata, effects, markers, true, color),
		children: make([]Composable, 0),
	}
}

func (c *CompositionBase) CompositionKind() string  { return "Composition" }
func (c *CompositionBase) Children() []Composable   { return c.children }

// ClearChildren detaches every current child before emptying the slice.
func (c *CompositionBase) ClearChildren() {
	for _, child := range c.children {
		child.SetParent(nil)
	}
	c.children = make([]Composable, 0)
}

// SetChildren replaces the children wholesale, appending each one through
// AppendChild so parent links and ChildAlreadyParented checks still apply.
func (c *CompositionBase) SetChildren(children []Composable) error {
	c.ClearChildren()
	for _, child := range children {
		if err := c.self.(Composition).AppendChild(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *CompositionBase) requireUnparented(child Composable) error {
	if p := child.Parent(); p != nil && p != c.self {
		return &ChildAlreadyParentedError{Child: child}
	}
	return nil
}

// InsertChild inserts child at index. Track and Stack use this
// implementation as is: the parent it sets is c.self, the concrete
// composition, not the embedded base.
func (c *CompositionBase) InsertChild(index int, child Composable) error {
	if index < 0 || index > len(c.children) {
		return &IndexError{Index: index, Size: len(c.children)}
	}
	if err := c.requireUnparented(child); err != nil {
		return err
	}
	child.SetParent(c.self.(Composition))
	c.children = append(c.children[:index], append([]Composable{child}, c.children[index:]...)...)
	return nil
}

func (c *CompositionBase) AppendChild(child Composable) error {
	return c.self.(Composition).InsertChild(len(c.children), child)
}

func (c *CompositionBase) SetChild(index int, child Composable) error {
	if index < 0 || index >= len(c.children) {
		return &IndexError{Index: index, Size: len(c.children)}
	}
	if err := c.requireUnparented(child); err != nil {
		return err
	}
	c.children[index].SetParent(nil)
	child.SetParent(c.self.(Composition))
	c.children[index] = child
	return nil
}

func (c *CompositionBase) RemoveChild(index int) error {
	if index < 0 || index >= len(c.children) {
		return &IndexError{Index: index, Size: len(c.children)}
	}
	c.children[index].SetParent(nil)
	c.children = append(c.children[:index], c.children[index+1:]...)
	return nil
}

func (c *CompositionBase) IndexOfChild(child Composable) (int, error) {
	for i, ch := range c.children {
		if ch == child {
			return i, nil
		}
	}
	return -1, &NotAChildOfError{Child: child, Parent: c.self}
}

func (c *CompositionBase) IsParentOf(child Composable) bool { return c.HasChild(child) }

func (c *CompositionBase) HasChild(child Composable) bool {
	for _, ch := range c.children {
		if ch == child {
			return true
		}
	}
	return false
}

func (c *CompositionBase) HasClips() bool {
	for _, child := range c.children {
		if _, ok := child.(*Clip); ok {
			return true
		}
		if comp, ok := child.(Composition); ok && comp.HasClips() {
			return true
		}
	}
	return false
}

func (c *CompositionBase) RangeOfChild(child Composable) (rtime.TimeRange, error) {
	index, err := c.self.(Composition).IndexOfChild(child)
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return c.self.(Composition).RangeOfChildAtIndex(index)
}

// RangeOfChildAtIndex places children sequentially, skipping the duration
// contribution of non-Visible children (Transitions).
func (c *CompositionBase) RangeOfChildAtIndex(index int) (rtime.TimeRange, error) {
	if index < 0 || index >= len(c.children) {
		return rtime.TimeRange{}, &IndexError{Index: index, Size: len(c.children)}
	}
	dur, err := c.children[index].Duration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	start := rtime.New(0, dur.Rate)
	for j := 0; j < index; j++ {
		if c.children[j].Visible() {
			childDur, err := c.children[j].Duration()
			if err != nil {
				return rtime.TimeRange{}, err
			}
			start = start.Add(childDur)
		}
	}
	return rtime.TimeRange{StartTime: start, Duration: dur}, nil
}

func (c *CompositionBase) trimChildRange(childRange rtime.TimeRange) *rtime.TimeRange {
	if c.sourceRange == nil {
		return &childRange
	}
	if !c.sourceRange.Intersects(childRange, rtime.DefaultEpsilon) {
		return nil
	}
	clamped := c.sourceRange.ClampedRange(childRange)
	return &clamped
}

func (c *CompositionBase) TrimmedRangeOfChild(child Composable) (*rtime.TimeRange, error) {
	r, err := c.self.(Composition).RangeOfChild(child)
	if err != nil {
		return nil, err
	}
	return c.trimChildRange(r), nil
}

func (c *CompositionBase) TrimmedRangeOfChildAtIndex(index int) (rtime.TimeRange, error) {
	r, err := c.self.(Composition).RangeOfChildAtIndex(index)
	if err != nil {
		return rtime.TimeRange{}, err
	}
	trimmed := c.trimChildRange(r)
	if trimmed == nil {
		return rtime.TimeRange{}, nil
	}
	return *trimmed, nil
}

func (c *CompositionBase) RangeOfAllChildren() (map[Composable]rtime.TimeRange, error) {
	result := make(map[Composable]rtime.TimeRange, len(c.children))
	for i, child := range c.children {
		r, err := c.self.(Composition).RangeOfChildAtIndex(i)
		if err != nil {
			return nil, err
		}
		result[child] = r
	}
	return result, nil
}

func (c *CompositionBase) childrenAtTime(searchTime rtime.RationalTime) ([]Composable, error) {
	var result []Composable
	for i, child := range c.children {
		r, err := c.self.(Composition).RangeOfChildAtIndex(i)
		if err != nil {
			return nil, err
		}
		if r.Contains(searchTime) {
			result = append(result, child)
		}
	}
	return result, nil
}

func (c *CompositionBase) ChildAtTime(searchTime rtime.RationalTime, shallowSearch bool) (Composable, error) {
	children, err := c.childrenAtTime(searchTime)
	if err != nil || len(children) == 0 {
		return nil, err
	}
	child := children[0]
	if !shallowSearch {
		if comp, ok := child.(Composition); ok {
			childRange, err := c.self.(Composition).RangeOfChild(child)
			if err != nil {
				return nil, err
			}
			return comp.ChildAtTime(searchTime.Sub(childRange.StartTime), false)
		}
	}
	return child, nil
}

func (c *CompositionBase) ChildrenInRange(searchRange rtime.TimeRange) ([]Composable, error) {
	var result []Composable
	for i, child := range c.children {
		r, err := c.self.(Composition).RangeOfChildAtIndex(i)
		if err != nil {
			return nil, err
		}
		if searchRange.Intersects(r, rtime.DefaultEpsilon) {
			result = append(result, child)
		}
	}
	return result, nil
}

func (c *CompositionBase) FindChildren(searchRange *rtime.TimeRange, shallowSearch bool, filter func(Composable) bool) []Composable {
	var result []Composable
	children := c.children
	if searchRange != nil {
		if in, err := c.self.(Composition).ChildrenInRange(*searchRange); err == nil {
			children = in
		}
	}
	for _, child := range children {
		if filter == nil || filter(child) {
			result = append(result, child)
		}
		if shallowSearch {
			continue
		}
		comp, ok := child.(Composition)
		if !ok {
			continue
		}
		var childRange *rtime.TimeRange
		if searchRange != nil {
			if r, err := c.self.(Composition).RangeOfChild(child); err == nil {
				transformed := rtime.TimeRange{StartTime: searchRange.StartTime.Sub(r.StartTime), Duration: searchRange.Duration}
				childRange = &transformed
			}
		}
		result = append(result, comp.FindChildren(childRange, false, filter)...)
	}
	return result
}

func (c *CompositionBase) FindClips(searchRange *rtime.TimeRange, shallowSearch bool) []*Clip {
	children := c.self.(Composition).FindChildren(searchRange, shallowSearch, func(child Composable) bool {
		_, ok := child.(*Clip)
		return ok
	})
	result := make([]*Clip, len(children))
	for i, child := range children {
		result[i] = child.(*Clip)
	}
	return result
}

func (c *CompositionBase) computedDuration() (rtime.RationalTime, error) {
	var total rtime.RationalTime
	started := false
	for _, child := range c.children {
		if !child.Visible() {
			continue
		}
		dur, err := child.Duration()
		if err != nil {
			return rtime.RationalTime{}, err
		}
		if !started {
			total, started = dur, true
			continue
		}
		total = total.Add(dur)
	}
	return total, nil
}

func (c *CompositionBase) Duration() (rtime.RationalTime, error) {
	if c.sourceRange != nil {
		return c.sourceRange.Duration, nil
	}
	return c.computedDuration()
}

func (c *CompositionBase) AvailableRange() (rtime.TimeRange, error) {
	dur, err := c.computedDuration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return rtime.TimeRange{StartTime: rtime.RationalTime{}, Duration: dur}, nil
}

func cloneChildren(children []Composable) []Composable {
	if children == nil {
		return nil
	}
	out := make([]Composable, len(children))
	for i, child := range children {
		out[i] = child.Clone().(Composable)
	}
	return out
}

func (c CompositionBase) cloneCompositionBase() CompositionBase {
	clone := CompositionBase{ItemBase: c.cloneItemBase(), children: cloneChildren(c.children)}
	return clone
}

func reparentClonedChildren(parent Composition, children []Composable) {
	for _, child := range children {
		child.SetParent(parent)
	}
}

const fieldChildren = "children"

func compositionKnownFields(extra ...string) map[string]bool {
	return itemKnownFields(append([]string{fieldChildren}, extra...)...)
}

func (c *CompositionBase) writeCompositionFields(ctx *marshalContext, fields *AnyDictionary) {
	c.writeItemFields(ctx, fields)
	children := NewAnyVector()
	for _, child := range c.children {
		v, _ := encodeValue(ctx, child)
		children.Append(v)
	}
	fields.Set(fieldChildren, children)
}

func (c *CompositionBase) readCompositionFields(fields *AnyDictionary) error {
	if err := c.readItemFields(fields); err != nil {
		return err
	}
	c.children = nil
	childVec := asVector(fields, fieldChildren)
	for j := 0; j < childVec.Len(); j++ {
		v, _ := childVec.At(j)
		child, ok := v.(Composable)
		if !ok {
			return &TypeMismatchError{Expected: "Composable", Got: "other"}
		}
		c.children = append(c.children, child)
	}
	return nil
}

// reparentChildren sets every child's parent to this composition's Self;
// call after SetSelf so the dynamic type assertion succeeds.
func (c *CompositionBase) reparentChildren() {
	parent := c.self.(Composition)
	for _, child := range c.children {
		child.SetParent(parent)
	}
}

func (c *CompositionBase) walkCompositionChildren(visit func(SerializableObject)) {
	c.walkItemChildren(visit)
	for _, child := range c.children {
		visit(child)
	}
}

// CompositionGeneric backs the abstract "Composition" schema itself: files
// in the wild essentially never carry one (every real composition is a
// Track or a Stack), but the schema is part of the registered type system,
// so a concrete instance must exist to round-trip one if it ever appears.
type CompositionGeneric struct {
	CompositionBase
}

// NewCompositionGeneric returns a new, self-registered CompositionGeneric.
func NewCompositionGeneric(name string, sourceRange *rtime.TimeRange, metadata *AnyDictionary, effects []Effect, markers []*Marker, color *Color) *CompositionGeneric {
	comp := &CompositionGeneric{CompositionBase: NewCompositionBase(name, sourceRange, metadata, effects, markers, color)}
	comp.SetSelf(comp)
	return comp
}

func (c *CompositionGeneric) SchemaName() string  { return CompositionSchema.Name }
func (c *CompositionGeneric) SchemaVersion() int  { return CompositionSchema.Version }

func (c *CompositionGeneric) Clone() SerializableObject {
	clone := &CompositionGeneric{CompositionBase: c.cloneCompositionBase()}
	clone.SetSelf(clone)
	reparentClonedChildren(clone, clone.children)
	return clone
}

func (c *CompositionGeneric) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*CompositionGeneric)
	if !ok || c.name != o.name || len(c.children) != len(o.children) {
		return false
	}
	for i := range c.children {
		if !c.children[i].IsEquivalentTo(o.children[i]) {
			return false
		}
	}
	return true
}

func (c *CompositionGeneric) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	c.writeCompositionFields(ctx, fields)
	c.appendExtraFields(fields)
	return fields, nil
}

func (c *CompositionGeneric) readFields(fields *AnyDictionary) error {
	if err := c.readCompositionFields(fields); err != nil {
		return err
	}
	splitExtraFields(&c.SerializableObjectBase, fields, compositionKnownFields())
	c.SetSelf(c)
	c.reparentChildren()
	return nil
}

func (c *CompositionGeneric) walkChildren(visit func(SerializableObject)) {
	c.walkCompositionChildren(visit)
}

func init() {
	RegisterSchema(CompositionSchema, func() SerializableObject {
		return NewCompositionGeneric("", nil, nil, nil, nil, nil)
	})
}
