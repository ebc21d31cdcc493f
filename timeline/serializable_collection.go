// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

// SerializableCollectionSchema is SerializableCollection's on-disk schema.
var SerializableCollectionSchema = Schema{Name: "SerializableCollection", Version: 1}

// SerializableCollection is an ordered, named group of arbitrary
// SerializableObjects with no timing semantics of its own — a filing
// cabinet, not a composition.
type SerializableCollection struct {
	SerializableObjectBase
	children []SerializableObject
}

// NewSerializableCollection returns a new SerializableCollection.
func NewSerializableCollection(name string, children []SerializableObject, metadata *AnyDictionary) *SerializableCollection {
	if children == nil {
		children = []SerializableObject{}
	}
	return &SerializableCollection{
		SerializableObjectBase: NewSerializableObjectBase(name, metadata),
		children:               children,
	}
}

func (s *SerializableCollection) Children() []SerializableObject { return s.children }

func (s *SerializableCollection) SetChildren(children []SerializableObject) {
	if children == nil {
		children = []SerializableObject{}
	}
	s.children = children
}

func (s *SerializableCollection) AppendChild(child SerializableObject) {
	s.children = append(s.children, child)
}

func (s *SerializableCollection) InsertChild(index int, child SerializableObject) error {
	if index < 0 || index > len(s.children) {
		return &IndexError{Index: index, Size: len(s.children)}
	}
	s.children = append(s.children[:index], append([]SerializableObject{child}, s.children[index:]...)...)
	return nil
}

func (s *SerializableCollection) RemoveChild(index int) error {
	if index < 0 || index >= len(s.children) {
		return &IndexError{Index: index, Size: len(s.children)}
	}
	s.children = append(s.children[:index], s.children[index+1:]...)
	return nil
}

func (s *SerializableCollection) ClearChildren() {
	s.children = []SerializableObject{}
}

// FindChildren returns every child for which filter returns true, or every
// child when filter is nil.
func (s *SerializableCollection) FindChildren(filter func(SerializableObject) bool) []SerializableObject {
	var result []SerializableObject
	for _, child := range s.children {
		if filter == nil || filter(child) {
			result = append(result, child)
		}
	}
	return result
}

func (s *SerializableCollection) SchemaName() string { return SerializableCollectionSchema.Name }
func (s *SerializableCollection) SchemaVersion() int { return SerializableCollectionSchema.Version }

func (s *SerializableCollection) Clone() SerializableObject {
	children := make([]SerializableObject, len(s.children))
	for i, child := range s.children {
		children[i] = child.Clone()
	}
	return &SerializableCollection{
		SerializableObjectBase: s.cloneBase(),
		children:               children,
	}
}

func (s *SerializableCollection) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*SerializableCollection)
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

func (s *SerializableCollection) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	s.writeBaseFields(fields)

	children := NewAnyVector()
	for _, child := range s.children {
		v, err := encodeValue(ctx, child)
		if err != nil {
			return nil, err
		}
		children.Append(v)
	}
	fields.Set(fieldChildren, children)

	s.appendExtraFields(fields)
	return fields, nil
}

func (s *SerializableCollection) readFields(fields *AnyDictionary) error {
	s.readBaseFields(fields)

	s.children = nil
	vec := asVector(fields, fieldChildren)
	for j := 0; j < vec.Len(); j++ {
		v, _ := vec.At(j)
		child, ok := v.(SerializableObject)
		if !ok {
			return &TypeMismatchError{Expected: "SerializableObject", Got: "other"}
		}
		s.children = append(s.children, child)
	}
	if s.children == nil {
		s.children = []SerializableObject{}
	}

	splitExtraFields(&s.SerializableObjectBase, fields, baseKnownFields(fieldChildren))
	return nil
}

func (s *SerializableCollection) walkChildren(visit func(SerializableObject)) {
	for _, child := range s.children {
		visit(child)
	}
}

func init() {
	RegisterSchema(SerializableCollectionSchema, func() SerializableObject {
		return NewSerializableCollection("", nil, nil)
	})
}
