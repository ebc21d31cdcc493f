// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// Composable is anything that can sit in a Composition's child list: an
// Item, a nested Composition, or a Transition.
type Composable interface {
	SerializableObjectWithMetadata

	Parent() Composition
	SetParent(parent Composition)

	// Duration returns how much of the timeline this object claims,
	// independent of whether it is Visible.
	Duration() (rtime.RationalTime, error)

	// Visible reports whether this object takes up time in its parent's
	// rendered output (false for Transition).
	Visible() bool

	// Overlapping reports whether this object shares time with its
	// neighbors rather than being sequenced after them (true only for
	// Transition).
	Overlapping() bool
}

// ComposableBase carries the parent link and the self-reference used for
// virtual dispatch through embedding: a concrete type calls SetSelf(itself)
// once at construction so that base-struct methods which need to call back
// into the concrete type's overridden methods (AvailableRange, and so on)
// can do so through an interface value instead of calling their own
// shadowed implementation.
type ComposableBase struct {
	SerializableObjectBase
	parent Composition
	self   Composable
}

// NewComposableBase returns a base with the given name and metadata.
func NewComposableBase(name string, metadata *AnyDictionary) ComposableBase {
	return ComposableBase{SerializableObjectBase: NewSerializableObjectBase(name, metadata)}
}

// Parent returns the containing composition, or nil at the root.
func (c *ComposableBase) Parent() Composition { return c.parent }

// SetParent sets the containing composition.
func (c *ComposableBase) SetParent(parent Composition) { c.parent = parent }

// Visible defaults to true; Transition overrides this to false.
func (c *ComposableBase) Visible() bool { return true }

// Overlapping defaults to false; Transition overrides this to true.
func (c *ComposableBase) Overlapping() bool { return false }

// Self returns the concrete-type interface value set by SetSelf.
func (c *ComposableBase) Self() Composable { return c.self }

// SetSelf records the concrete type's own interface value; every concrete
// type must call this once, immediately after construction and after
// Clone, to enable correct virtual dispatch.
func (c *ComposableBase) SetSelf(self Composable) { c.self = self }

func (c ComposableBase) cloneComposableBase() ComposableBase {
	return ComposableBase{SerializableObjectBase: c.cloneBase()}
}
