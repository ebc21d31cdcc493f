// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import "github.com/arashpayan/tlio/rtime"

// DefaultMediaKey is the key used for a Clip's primary media reference when
// none is given explicitly.
const DefaultMediaKey = "DEFAULT_MEDIA"

// ClipSchema is Clip's on-disk schema.
var ClipSchema = Schema{Name: "Clip", Version: 2}

// Clip is a segment of editable media, usually audio or video, referencing
// one or more MediaReferences keyed by name with one marked active.
type Clip struct {
	ItemBase
	mediaReferences         map[string]MediaReference
	activeMediaReferenceKey string
}

// NewClip returns a new Clip. A nil mediaReference is replaced by a
// MissingReference so MediaReference() is never nil.
func NewClip(
	name string,
	mediaReference MediaReference,
	sourceRange *rtime.TimeRange,
	metadata *AnyDictionary,
	effects []Effect,
	markers []*Marker,
	activeMediaReferenceKey string,
	color *Color,
) *Clip {
	if activeMediaReferenceKey == "" {
		activeMediaReferenceKey = DefaultMediaKey
	}
	if mediaReference == nil {
		mediaReference = NewMissingReference("", nil, nil, nil)
	}
	clip := &Clip{
		ItemBase:                NewItemBase(name, sourceRange, metadata, effects, markers, true, color),
		mediaReferences:         map[string]MediaReference{activeMediaReferenceKey: mediaReference},
		activeMediaReferenceKey: activeMediaReferenceKey,
	}
	clip.SetSelf(clip)
	return clip
}

// MediaReference returns the active media reference.
func (c *Clip) MediaReference() MediaReference {
	return c.mediaReferences[c.activeMediaReferenceKey]
}

// SetMediaReference replaces the active media reference.
func (c *Clip) SetMediaReference(mediaReference MediaReference) {
	if mediaReference == nil {
		mediaReference = NewMissingReference("", nil, nil, nil)
	}
	c.mediaReferences[c.activeMediaReferenceKey] = mediaReference
}

// MediaReferences returns all known media references by key.
func (c *Clip) MediaReferences() map[string]MediaReference { return c.mediaReferences }

// SetMediaReferences replaces every media reference and selects activeKey,
// which must already be present in refs.
func (c *Clip) SetMediaReferences(refs map[string]MediaReference, activeKey string) error {
	if _, ok := refs[activeKey]; !ok {
		return ErrMediaReferenceNotFound
	}
	c.mediaReferences = refs
	c.activeMediaReferenceKey = activeKey
	return nil
}

// ActiveMediaReferenceKey returns the key selecting MediaReference().
func (c *Clip) ActiveMediaReferenceKey() string { return c.activeMediaReferenceKey }

// SetActiveMediaReferenceKey switches the active media reference, which
// must already exist in MediaReferences().
func (c *Clip) SetActiveMediaReferenceKey(key string) error {
	if _, ok := c.mediaReferences[key]; !ok {
		return ErrMediaReferenceNotFound
	}
	c.activeMediaReferenceKey = key
	return nil
}

// Duration is SourceRange's duration if set, else AvailableRange's.
func (c *Clip) Duration() (rtime.RationalTime, error) {
	if c.sourceRange != nil {
		return c.sourceRange.Duration, nil
	}
	ar, err := c.AvailableRange()
	if err != nil {
		return rtime.RationalTime{}, err
	}
	return ar.Duration, nil
}

// AvailableRange is the active media reference's available range.
func (c *Clip) AvailableRange() (rtime.TimeRange, error) {
	ref := c.MediaReference()
	if ref == nil {
		return rtime.TimeRange{}, ErrMissingReference
	}
	ar := ref.AvailableRange()
	if ar == nil {
		return rtime.TimeRange{}, ErrCannotComputeAvailableRange
	}
	return *ar, nil
}

// AvailableImageBounds is the active media reference's image bounds.
func (c *Clip) AvailableImageBounds() (*Box2d, error) {
	ref := c.MediaReference()
	if ref == nil {
		return nil, ErrMissingReference
	}
	return ref.AvailableImageBounds(), nil
}

func (c *Clip) SchemaName() string { return ClipSchema.Name }
func (c *Clip) SchemaVersion() int { return ClipSchema.Version }

func (c *Clip) Clone() SerializableObject {
	refs := make(map[string]MediaReference, len(c.mediaReferences))
	for k, v := range c.mediaReferences {
		refs[k] = v.Clone().(MediaReference)
	}
	clone := &Clip{
		ItemBase:                c.cloneItemBase(),
		mediaReferences:         refs,
		activeMediaReferenceKey: c.activeMediaReferenceKey,
	}
	clone.SetSelf(clone)
	return clone
}

func (c *Clip) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*Clip)
	if !ok {
		return false
	}
	if c.name != o.name || c.activeMediaReferenceKey != o.activeMediaReferenceKey {
		return false
	}
	if len(c.mediaReferences) != len(o.mediaReferences) {
		return false
	}
	for k, v := range c.mediaReferences {
		ov, ok := o.mediaReferences[k]
		if !ok || !v.IsEquivalentTo(ov) {
			return false
		}
	}
	return true
}

const fieldMediaReferences = "media_references"
const fieldActiveMediaReferenceKey = "active_media_reference_key"

func (c *Clip) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	c.writeItemFields(ctx, fields)

	refs := NewAnyDictionary()
	for k, v := range c.mediaReferences {
		value, err := encodeValue(ctx, SerializableObject(v))
		if err != nil {
			return nil, err
		}
		refs.Set(k, value)
	}
	fields.Set(fieldMediaReferences, refs)
	fields.Set(fieldActiveMediaReferenceKey, c.activeMediaReferenceKey)

	c.appendExtraFields(fields)
	return fields, nil
}

func (c *Clip) readFields(fields *AnyDictionary) error {
	if err := c.readItemFields(fields); err != nil {
		return err
	}

	c.mediaReferences = make(map[string]MediaReference)
	refs := asDictionary(fields, fieldMediaReferences)
	if refs != nil {
		for _, k := range refs.Keys() {
			v, _ := refs.Get(k)
			ref, ok := v.(MediaReference)
			if !ok {
				return &TypeMismatchError{Expected: "MediaReference", Got: "other"}
			}
			c.mediaReferences[k] = ref
		}
	}

	c.activeMediaReferenceKey = asString(fields, fieldActiveMediaReferenceKey)
	if c.activeMediaReferenceKey == "" {
		c.activeMediaReferenceKey = DefaultMediaKey
	}
	if _, ok := c.mediaReferences[c.activeMediaReferenceKey]; !ok {
		c.mediaReferences[c.activeMediaReferenceKey] = NewMissingReference("", nil, nil, nil)
	}

	splitExtraFields(&c.SerializableObjectBase, fields, itemKnownFields(fieldMediaReferences, fieldActiveMediaReferenceKey))
	return nil
}

func (c *Clip) walkChildren(visit func(SerializableObject)) {
	c.walkItemChildren(visit)
	for _, v := range c.mediaReferences {
		visit(v)
	}
}

func init() {
	RegisterSchema(ClipSchema, func() SerializableObject {
		return NewClip("", nil, nil, nil, nil, nil, "", nil)
	})
}
