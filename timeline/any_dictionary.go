// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/bytedance/sonic"
)

// MutationStamp is a heap-allocated monotonic counter shared between an
// AnyDictionary (or AnyVector) and any iterators taken out against it. It
// outlives the container it stamps: destruction of the container nulls the
// stamp's back-pointer rather than freeing the stamp itself, so an iterator
// that dereferences after the container is gone observes that fact instead
// of touching freed memory.
type MutationStamp struct {
	Stamp     int64
	container any
}

func newMutationStamp(container any) *MutationStamp {
	return &MutationStamp{Stamp: 1, container: container}
}

func (m *MutationStamp) bump() {
	if m == nil {
		return
	}
	m.Stamp++
}

// destroyed reports whether the container that owns this stamp has been
// explicitly closed.
func (m *MutationStamp) destroyed() bool {
	return m == nil || m.container == nil
}

// containerDestroyed and containerModified are the two ways an iterator can
// fail; spec.md describes them as "container destroyed"/"container
// modified" rather than taxonomy codes, so they're reported via plain
// errors rather than rtime.Status.
var (
	errContainerDestroyed = fmt.Errorf("container destroyed")
	errContainerModified  = fmt.Errorf("container modified")
)

// AnyDictionary is a string-keyed, insertion-ordered map of arbitrary
// values, with a MutationStamp bumped on every operation that can
// invalidate an outstanding iterator: Set (on a new key), Delete, Clear.
type AnyDictionary struct {
	order  []string
	values map[string]any
	stamp  *MutationStamp
}

// NewAnyDictionary returns an empty dictionary.
func NewAnyDictionary() *AnyDictionary {
	return &AnyDictionary{values: make(map[string]any)}
}

// anyDictionaryFromMap adapts a plain map into an AnyDictionary. Key order
// is whatever Go's map iteration yields, since a plain map carries no order
// of its own; callers that care about stable order should build the
// dictionary through Set calls instead.
func anyDictionaryFromMap(m map[string]any) *AnyDictionary {
	d := NewAnyDictionary()
	for k, v := range m {
		d.Set(k, v)
	}
	return d
}

func (d *AnyDictionary) ensure() {
	if d.values == nil {
		d.values = make(map[string]any)
	}
}

// Get returns the value at key and whether it was present.
func (d *AnyDictionary) Get(key string) (any, bool) {
	if d == nil || d.values == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// HasKey reports whether key is present.
func (d *AnyDictionary) HasKey(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores value at key, appending key to the insertion order if new.
func (d *AnyDictionary) Set(key string, value any) {
	d.ensure()
	if _, exists := d.values[key]; !exists {
		d.order = append(d.order, key)
		d.stamp.bump()
	}
	d.values[key] = value
}

// Delete removes key, bumping the mutation stamp if it was present.
func (d *AnyDictionary) Delete(key string) {
	if d == nil || d.values == nil {
		return
	}
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.stamp.bump()
}

// Clear removes all keys.
func (d *AnyDictionary) Clear() {
	d.ensure()
	d.order = nil
	d.values = make(map[string]any)
	d.stamp.bump()
}

// Close signals that the dictionary is being discarded, nulling any
// mutation stamp so outstanding iterators observe "container destroyed"
// rather than continuing to read a dictionary nobody is updating anymore.
func (d *AnyDictionary) Close() {
	if d == nil || d.stamp == nil {
		return
	}
	d.stamp.container = nil
	d.stamp = nil
}

// Len returns the number of keys.
func (d *AnyDictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (d *AnyDictionary) Keys() []string {
	if d == nil {
		return nil
	}
	return d.order
}

// GetOrCreateMutationStamp returns the dictionary's MutationStamp,
// allocating one on first use.
func (d *AnyDictionary) GetOrCreateMutationStamp() *MutationStamp {
	if d.stamp == nil {
		d.stamp = newMutationStamp(d)
	}
	return d.stamp
}

// Clone returns a shallow copy: keys, order and top-level values are
// copied, but any nested AnyDictionary/AnyVector/SerializableObject values
// are not recursively cloned (callers needing deep clone use
// CloneAnyDictionary, which recurses through the known value kinds).
func (d *AnyDictionary) Clone() *AnyDictionary {
	clone := NewAnyDictionary()
	if d == nil {
		return clone
	}
	for _, k := range d.order {
		clone.Set(k, d.values[k])
	}
	return clone
}

// CloneAnyDictionary deep-clones a dictionary, recursing into any nested
// AnyDictionary/AnyVector/SerializableObject values so the clone shares no
// mutable state with the original.
func CloneAnyDictionary(d *AnyDictionary) *AnyDictionary {
	clone := NewAnyDictionary()
	if d == nil {
		return clone
	}
	for _, k := range d.order {
		clone.Set(k, cloneAnyValue(d.values[k]))
	}
	return clone
}

func cloneAnyValue(v any) any {
	switch t := v.(type) {
	case *AnyDictionary:
		return CloneAnyDictionary(t)
	case *AnyVector:
		return CloneAnyVector(t)
	case SerializableObject:
		return t.Clone()
	default:
		return v
	}
}

// areAnyDictionariesEqual compares two dictionaries by key set and value
// equality, comparing float64 values by bit pattern rather than epsilon
// (used by UnknownSchema.IsEquivalentTo).
func areAnyDictionariesEqual(a, b *AnyDictionary) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok {
			return false
		}
		if !anyValuesEqual(av, bv) {
			return false
		}
	}
	return true
}

func anyValuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *AnyDictionary:
		bv, ok := b.(*AnyDictionary)
		return ok && areAnyDictionariesEqual(av, bv)
	case *AnyVector:
		bv, ok := b.(*AnyVector)
		return ok && areAnyVectorsEqual(av, bv)
	case SerializableObject:
		bv, ok := b.(SerializableObject)
		return ok && av.IsEquivalentTo(bv)
	case float64:
		bv, ok := b.(float64)
		return ok && math.Float64bits(av) == math.Float64bits(bv)
	default:
		return a == b
	}
}

// AnyDictionaryIterator walks a dictionary's keys in insertion order,
// detecting both mutation and destruction of the dictionary it was created
// against, per spec.md §4.2/§9's iterator-safety requirement.
type AnyDictionaryIterator struct {
	dict    *AnyDictionary
	stamp   *MutationStamp
	at      int64
	index   int
	started bool
}

// Iterator returns a new iterator positioned before the first key.
func (d *AnyDictionary) Iterator() *AnyDictionaryIterator {
	stamp := d.GetOrCreateMutationStamp()
	return &AnyDictionaryIterator{dict: d, stamp: stamp, at: stamp.Stamp}
}

// Next advances the iterator and returns the next key/value pair. ok is
// false once the dictionary is exhausted. err is non-nil if the dictionary
// was destroyed or mutated since the iterator was created.
func (it *AnyDictionaryIterator) Next() (key string, value any, ok bool, err error) {
	if it.stamp.destroyed() {
		return "", nil, false, errContainerDestroyed
	}
	if it.stamp.Stamp != it.at {
		return "", nil, false, errContainerModified
	}
	if it.index >= len(it.dict.order) {
		return "", nil, false, nil
	}
	k := it.dict.order[it.index]
	it.index++
	v, _ := it.dict.Get(k)
	return k, v, true, nil
}

// AnyVector is an ordered, mutation-stamped list of arbitrary values,
// mirroring AnyDictionary's iterator-safety discipline for indexed access.
type AnyVector struct {
	values []any
	stamp  *MutationStamp
}

// NewAnyVector returns an empty vector.
func NewAnyVector() *AnyVector {
	return &AnyVector{}
}

// Len returns the number of elements.
func (v *AnyVector) Len() int {
	if v == nil {
		return 0
	}
	return len(v.values)
}

// At returns the element at index.
func (v *AnyVector) At(index int) (any, error) {
	if v == nil || index < 0 || index >= len(v.values) {
		size := 0
		if v != nil {
			size = len(v.values)
		}
		return nil, &IndexError{Index: index, Size: size}
	}
	return v.values[index], nil
}

// Append adds a value to the end, bumping the mutation stamp.
func (v *AnyVector) Append(value any) {
	v.values = append(v.values, value)
	v.stamp.bump()
}

// Set replaces the element at index.
func (v *AnyVector) Set(index int, value any) error {
	if index < 0 || index >= len(v.values) {
		return &IndexError{Index: index, Size: len(v.values)}
	}
	v.values[index] = value
	v.stamp.bump()
	return nil
}

// RemoveAt removes the element at index, shifting later elements down.
func (v *AnyVector) RemoveAt(index int) error {
	if index < 0 || index >= len(v.values) {
		return &IndexError{Index: index, Size: len(v.values)}
	}
	v.values = append(v.values[:index], v.values[index+1:]...)
	v.stamp.bump()
	return nil
}

// GetOrCreateMutationStamp returns the vector's MutationStamp, allocating
// one on first use.
func (v *AnyVector) GetOrCreateMutationStamp() *MutationStamp {
	if v.stamp == nil {
		v.stamp = newMutationStamp(v)
	}
	return v.stamp
}

// Close nulls the vector's mutation stamp so outstanding iterators observe
// destruction rather than silently reading a discarded vector.
func (v *AnyVector) Close() {
	if v == nil || v.stamp == nil {
		return
	}
	v.stamp.container = nil
	v.stamp = nil
}

// CloneAnyVector deep-clones a vector's elements.
func CloneAnyVector(v *AnyVector) *AnyVector {
	clone := NewAnyVector()
	if v == nil {
		return clone
	}
	for _, e := range v.values {
		clone.Append(cloneAnyValue(e))
	}
	return clone
}

func areAnyVectorsEqual(a, b *AnyVector) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.values {
		if !anyValuesEqual(a.values[i], b.values[i]) {
			return false
		}
	}
	return true
}

// MarshalJSON emits the vector as a JSON array, each element encoded with
// sonic.Marshal.
func (v *AnyVector) MarshalJSON() ([]byte, error) {
	if v == nil || len(v.values) == 0 {
		return []byte("[]"), nil
	}
	return sonic.Marshal(v.values)
}

// AnyVectorIterator walks a vector's elements in order with the same
// destroyed/modified detection as AnyDictionaryIterator.
type AnyVectorIterator struct {
	vec   *AnyVector
	stamp *MutationStamp
	at    int64
	index int
}

// Iterator returns a new iterator positioned before the first element.
func (v *AnyVector) Iterator() *AnyVectorIterator {
	stamp := v.GetOrCreateMutationStamp()
	return &AnyVectorIterator{vec: v, stamp: stamp, at: stamp.Stamp}
}

// Next advances the iterator and returns the next element.
func (it *AnyVectorIterator) Next() (value any, ok bool, err error) {
	if it.stamp.destroyed() {
		return nil, false, errContainerDestroyed
	}
	if it.stamp.Stamp != it.at {
		return nil, false, errContainerModified
	}
	if it.index >= len(it.vec.values) {
		return nil, false, nil
	}
	val := it.vec.values[it.index]
	it.index++
	return val, true, nil
}

// MarshalJSON emits the dictionary as a JSON object in insertion order.
// encoding/json does not preserve map key order, so the object is built by
// hand here; each value is still encoded with sonic.Marshal, keeping sonic
// as the value-level codec for everything this module serializes.
func (d *AnyDictionary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := sonic.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		v, _ := d.Get(k)
		valBytes, err := sonic.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the dictionary, preserving key
// order. Preserving order requires walking the token stream, which sonic
// does not expose in a form compatible with per-value sonic.Unmarshal calls;
// encoding/json.Decoder.Token is used for the structural walk only, while
// each value's bytes are still decoded with sonic.Unmarshal.
func (d *AnyDictionary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for AnyDictionary")
	}

	*d = AnyDictionary{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key in AnyDictionary")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := decodeAnyValue(raw)
		if err != nil {
			return err
		}
		d.Set(key, value)
	}
	return nil
}
