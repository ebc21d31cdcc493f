// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// StackSchema is Stack's on-disk schema.
var StackSchema = Schema{Name: "Stack", Version: 1}

// Stack arranges its children in parallel layers, all starting at time
// zero, with the last child drawn on top.
type Stack struct {
	CompositionBase
}

// NewStack returns a new, self-registered Stack.
func NewStack(name string, sourceRange *rtime.TimeRange, metadata *AnyDictionary, effects []Effect, markers []*Marker, color *Color) *Stack {
	stack := &Stack{CompositionBase: NewCompositionBase(name, sourceRange, metadata, effects, markers, color)}
	stack.SetSelf(stack)
	return stack
}

func (s *Stack) CompositionKind() string { return "Stack" }

// RangeOfChildAtIndex places every child at time zero; durations are not
// otherwise related across children.
func (s *Stack) RangeOfChildAtIndex(index int) (rtime.TimeRange, error) {
	if index < 0 || index >= len(s.children) {
		return rtime.TimeRange{}, &IndexError{Index: index, Size: len(s.children)}
	}
	dur, err := s.children[index].Duration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	return rtime.TimeRange{StartTime: rtime.New(0, dur.Rate), Duration: dur}, nil
}

// AvailableRange spans zero to the longest child's duration.
func (s *Stack) AvailableRange() (rtime.TimeRange, error) {
	if len(s.children) == 0 {
		return rtime.TimeRange{}, nil
	}
	max, err := s.children[0].Duration()
	if err != nil {
		return rtime.TimeRange{}, err
	}
	for _, child := range s.children[1:] {
		dur, err := child.Duration()
		if err != nil {
			return rtime.TimeRange{}, err
		}
		if dur.ToSeconds() > max.ToSeconds() {
			max = dur
		}
	}
	return rtime.TimeRange{StartTime: rtime.New(0, max.Rate), Duration: max}, nil
}

func (s *Stack) Duration() (rtime.RationalTime, error) {
	if s.sourceRange != nil {
		return s.sourceRange.Duration, nil
	}
	ar, err := s.AvailableRange()
	if err != nil {
		return rtime.RationalTime{}, err
	}
	return ar.Duration, nil
}

// ChildAtTime searches top-to-bottom (reverse child order), since a later
// child in a Stack is drawn over earlier ones and occludes them.
func (s *Stack) ChildAtTime(searchTime rtime.RationalTime, shallowSearch bool) (Composable, error) {
	for i := len(s.children) - 1; i >= 0; i-- {
		child := s.children[i]
		r, err := s.RangeOfChildAtIndex(i)
		if err != nil {
			return nil, err
		}
		if !r.Contains(searchTime) {
			continue
		}
		if !shallowSearch {
			if comp, ok := child.(Composition); ok {
				return comp.ChildAtTime(searchTime, false)
			}
		}
		return child, nil
	}
	return nil, nil
}

func (s *Stack) RangeOfAllChildren() (map[Composable]rtime.TimeRange, error) {
	result := make(map[Composable]rtime.TimeRange, len(s.children))
	for i, child := range s.children {
		dur, err := s.children[i].Duration()
		if err != nil {
			return nil, err
		}
		result[child] = rtime.TimeRange{StartTime: rtime.RationalTime{}, Duration: dur}
	}
	return result, nil
}

// AvailableImageBounds is the union of every descendant Clip's image
// bounds, recursing through nested Track/Stack children.
func (s *Stack) AvailableImageBounds() (*Box2d, error) {
	var result *Box2d
	for _, child := range s.children {
		var bounds *Box2d
		switch t := child.(type) {
		case *Clip:
			bounds, _ = t.AvailableImageBounds()
		case *Track:
			bounds, _ = t.AvailableImageBounds()
		case *Stack:
			bounds, _ = t.AvailableImageBounds()
		}
		if bounds == nil {
			continue
		}
		result = unionBox2d(result, bounds)
	}
	return result, nil
}

func (s *Stack) SchemaName() string { return StackSchema.Name }
func (s *Stack) SchemaVersion() int { return StackSchema.Version }

func (s *Stack) Clone() SerializableObject {
	clone := &Stack{CompositionBase: s.cloneCompositionBase()}
	clone.SetSelf(clone)
	reparentClonedChildren(clone, clone.children)
	return clone
}

func (s *Stack) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*Stack)
	if !ok || s.name != o.name || len(s.children) != len(o.children) {
		return false
	}
	for i := range s.children {
		if !s.children[i].IsEquivalentTo(o.children[i]) {
			return false
		}
	}
	return true
}

func (s *Stack) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	s.writeCompositionFields(ctx, fields)
	s.appendExtraFields(fields)
	return fields, nil
}

func (s *Stack) readFields(fields *AnyDictionary) error {
	if err := s.readCompositionFields(fields); err != nil {
		return err
	}
	splitExtraFields(&s.SerializableObjectBase, fields, compositionKnownFields())
	s.SetSelf(s)
	s.reparentChildren()
	return nil
}

func (s *Stack) walkChildren(visit func(SerializableObject)) {
	s.walkCompositionChildren(visit)
}

func init() {
	RegisterSchema(StackSchema, func() SerializableObject {
		return NewStack("", nil, nil, nil, nil, nil)
	})
}
