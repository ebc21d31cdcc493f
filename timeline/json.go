// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arashpayan/tlio/rtime"
	"github.com/bytedance/sonic"
)

const (
	schemaKey = "OTIO_SCHEMA"
	refIDKey  = "OTIO_REF_ID"
	refKey    = "OTIO_REF"
)

// kv is an ordered key/value pair used to assemble JSON objects whose key
// order must be preserved (schema header, then fixed field order, then
// dynamic fields), since Go maps and encoding/json both discard order.
type kv struct {
	Key   string
	Value any
}

// orderedObject marshals as a JSON object in exactly the given key order.
// Every nested value (SerializableObject results, AnyDictionary, AnyVector,
// rtime types, orderedObject itself) implements MarshalJSON, so a single
// sonic.Marshal call on the top-level orderedObject drives the whole tree.
type orderedObject []kv

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := sonic.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := sonic.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalContext tracks the reference-counting pre-pass results (spec.md
// §4.5): which objects are referenced more than once, the stable ID
// assigned to each, and which of those have already been fully emitted
// once (so later occurrences collapse to {"OTIO_REF": id}).
type marshalContext struct {
	ids     map[SerializableObject]string
	emitted map[SerializableObject]bool
}

// refCounter performs the single-pass reference count used to decide which
// objects need a stable OTIO_REF_ID.
type refCounter struct {
	counts map[SerializableObject]int
	order  []SerializableObject
	seen   map[SerializableObject]bool
}

func (rc *refCounter) visit(obj SerializableObject) {
	if obj == nil {
		return
	}
	if !rc.seen[obj] {
		rc.seen[obj] = true
		rc.order = append(rc.order, obj)
	}
	rc.counts[obj]++
	if rc.counts[obj] > 1 {
		return
	}
	obj.walkChildren(rc.visit)
}

func newMarshalContext(root SerializableObject) *marshalContext {
	rc := &refCounter{counts: make(map[SerializableObject]int), seen: make(map[SerializableObject]bool)}
	rc.visit(root)

	ctx := &marshalContext{ids: make(map[SerializableObject]string), emitted: make(map[SerializableObject]bool)}
	nextIndex := make(map[string]int)
	for _, obj := range rc.order {
		if rc.counts[obj] > 1 {
			nextIndex[obj.SchemaName()]++
			ctx.ids[obj] = fmt.Sprintf("%s-%d", obj.SchemaName(), nextIndex[obj.SchemaName()])
		}
	}
	return ctx
}

// encodeValue prepares v for inclusion in an orderedObject: SerializableObject
// values route through encodeObject (to honor reference collapsing); every
// other value (rtime types, *AnyDictionary, *AnyVector, primitives,
// []SerializableObject-like slices the caller already flattened) is
// returned as-is since it already knows how to marshal itself.
func encodeValue(ctx *marshalContext, v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case SerializableObject:
		return encodeObject(ctx, t)
	default:
		return t, nil
	}
}

// encodeObject returns either the full ordered representation of obj
// (optionally carrying OTIO_REF_ID on first emission) or a one-key
// {"OTIO_REF": id} object on subsequent emissions of a multiply-referenced
// object.
func encodeObject(ctx *marshalContext, obj SerializableObject) (any, error) {
	if obj == nil {
		return nil, nil
	}
	if id, multi := ctx.ids[obj]; multi {
		if ctx.emitted[obj] {
			return orderedObject{{refKey, id}}, nil
		}
		ctx.emitted[obj] = true
		return encodeObjectFull(ctx, obj, id)
	}
	return encodeObjectFull(ctx, obj, "")
}

func encodeObjectFull(ctx *marshalContext, obj SerializableObject, refID string) (any, error) {
	fields, err := obj.writeFields(ctx)
	if err != nil {
		return nil, err
	}
	header := orderedObject{{schemaKey, Schema{Name: obj.SchemaName(), Version: obj.SchemaVersion()}.String()}}
	if refID != "" {
		header = append(header, kv{refIDKey, refID})
	}
	for _, k := range fields.Keys() {
		v, _ := fields.Get(k)
		header = append(header, kv{k, v})
	}
	return header, nil
}

// ToJSONBytes serializes obj and everything reachable from it to canonical
// JSON, assigning OTIO_REF_ID/OTIO_REF per spec.md §4.5.
func ToJSONBytes(obj SerializableObject) ([]byte, error) {
	ctx := newMarshalContext(obj)
	top, err := encodeObject(ctx, obj)
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(top)
}

// ToJSONBytesIndent serializes obj the same way as ToJSONBytes, then
// re-indents the result with the given prefix/indent (defaulting to 4
// spaces of indent when indent is empty, matching spec.md §6.1's default).
func ToJSONBytesIndent(obj SerializableObject, prefix, indent string) ([]byte, error) {
	raw, err := ToJSONBytes(obj)
	if err != nil {
		return nil, err
	}
	if indent == "" {
		indent = "    "
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ToJSONString is a string-returning convenience wrapper around
// ToJSONBytesIndent.
func ToJSONString(obj SerializableObject) (string, error) {
	b, err := ToJSONBytesIndent(obj, "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToJSONFile writes obj's canonical JSON form to path.
func ToJSONFile(obj SerializableObject, path string) error {
	b, err := ToJSONBytesIndent(obj, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &rtime.Status{Outcome: rtime.FileWriteFailed, Detail: err.Error()}
	}
	return nil
}

// decodeContext carries the placeholder table used to resolve OTIO_REF
// forward and backward references within a single decode.
type decodeContext struct {
	placeholders map[string]SerializableObject
	defined      map[string]bool
}

// FromJSONBytes parses canonical JSON into a SerializableObject graph,
// resolving OTIO_REF_ID/OTIO_REF references per spec.md §4.5.
func FromJSONBytes(data []byte) (SerializableObject, error) {
	ctx := &decodeContext{placeholders: make(map[string]SerializableObject), defined: make(map[string]bool)}
	if err := prescanReferences(data, ctx); err != nil {
		return nil, err
	}
	v, err := decodeValue(data, ctx)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(SerializableObject)
	if !ok {
		return nil, &SchemaError{Outcome: rtime.MalformedSchema, Detail: "top-level JSON value is not an object with OTIO_SCHEMA"}
	}
	for id := range ctx.placeholders {
		if !ctx.defined[id] {
			return nil, &rtime.Status{Outcome: rtime.UnresolvedObjectReference, Detail: id}
		}
	}
	return obj, nil
}

// FromJSONString is a string-accepting convenience wrapper around
// FromJSONBytes.
func FromJSONString(s string) (SerializableObject, error) {
	return FromJSONBytes([]byte(s))
}

// FromJSONFile reads and parses the JSON document at path.
func FromJSONFile(path string) (SerializableObject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &rtime.Status{Outcome: rtime.FileOpenFailed, Detail: err.Error()}
	}
	return FromJSONBytes(data)
}

// decodeOrderedKV walks a JSON object's tokens in document order, returning
// its key/raw-value pairs. encoding/json.Decoder is used only for this
// structural token walk; every value's bytes are handed to sonic for the
// actual decode (see any_dictionary.go's UnmarshalJSON for the identical
// justification).
func decodeOrderedKV(data []byte) ([]kv, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object")
	}
	var out []kv
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, kv{Key: key, Value: json.RawMessage(append([]byte(nil), raw...))})
	}
	return out, nil
}

func rawOf(v any) []byte {
	if rm, ok := v.(json.RawMessage); ok {
		return rm
	}
	return nil
}

// prescanReferences walks the raw document looking for every object that
// carries both OTIO_SCHEMA and OTIO_REF_ID, creating a zero-value
// placeholder of the right type for each. Creating placeholders up front
// (rather than lazily, in decode order) is what lets a forward reference
// (an OTIO_REF that textually precedes its OTIO_REF_ID definition) resolve
// to the same pointer that decode later fills in.
func prescanReferences(data []byte, ctx *decodeContext) error {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return &rtime.Status{Outcome: rtime.JSONParseError, Detail: err.Error()}
	}
	return prescanNode(generic, ctx)
}

func prescanNode(node any, ctx *decodeContext) error {
	switch t := node.(type) {
	case map[string]any:
		if schemaHeader, ok := t[schemaKey].(string); ok {
			if refID, ok := t[refIDKey].(string); ok {
				if ctx.placeholders[refID] != nil {
					return &rtime.Status{Outcome: rtime.DuplicateObjectReference, Detail: refID}
				}
				name, _ := ParseSchema(schemaHeader)
				obj, ok := CreateSchema(name)
				if !ok {
					obj = NewUnknownSchema(schemaHeader, nil)
				}
				ctx.placeholders[refID] = obj
			}
		}
		for _, v := range t {
			if err := prescanNode(v, ctx); err != nil {
				return err
			}
		}
	case []any:
		for _, v := range t {
			if err := prescanNode(v, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// decodeValue interprets one JSON value's raw bytes into the in-memory
// shape the rest of the package works with: a SerializableObject for
// schema-headered objects (resolving OTIO_REF via the placeholder table),
// an rtime value for the three time schemas, an *AnyDictionary for plain
// nested objects, an *AnyVector for arrays, and a primitive otherwise.
func decodeValue(raw []byte, ctx *decodeContext) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	switch trimmed[0] {
	case '{':
		return decodeObject(trimmed, ctx)
	case '[':
		var elems []json.RawMessage
		if err := sonic.Unmarshal(trimmed, &elems); err != nil {
			return nil, err
		}
		vec := NewAnyVector()
		for _, e := range elems {
			v, err := decodeValue(e, ctx)
			if err != nil {
				return nil, err
			}
			vec.Append(v)
		}
		return vec, nil
	default:
		var v any
		if err := sonic.Unmarshal(trimmed, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func decodeObject(raw []byte, ctx *decodeContext) (any, error) {
	kvs, err := decodeOrderedKV(raw)
	if err != nil {
		return nil, &rtime.Status{Outcome: rtime.JSONParseError, Detail: err.Error()}
	}

	var schemaHeader string
	var refID, refTarget string
	for _, p := range kvs {
		switch p.Key {
		case schemaKey:
			_ = sonic.Unmarshal(rawOf(p.Value), &schemaHeader)
		case refIDKey:
			_ = sonic.Unmarshal(rawOf(p.Value), &refID)
		case refKey:
			_ = sonic.Unmarshal(rawOf(p.Value), &refTarget)
		}
	}

	if refTarget != "" && schemaHeader == "" {
		obj, ok := ctx.placeholders[refTarget]
		if !ok {
			return nil, &rtime.Status{Outcome: rtime.UnresolvedObjectReference, Detail: refTarget}
		}
		return obj, nil
	}

	if schemaHeader == "" {
		d := NewAnyDictionary()
		for _, p := range kvs {
			v, err := decodeValue(rawOf(p.Value), ctx)
			if err != nil {
				return nil, err
			}
			d.Set(p.Key, v)
		}
		return d, nil
	}

	name, version := ParseSchema(schemaHeader)
	if rt, ok := decodeRtimeSchema(name, raw); ok {
		return rt, nil
	}

	fields := NewAnyDictionary()
	for _, p := range kvs {
		if p.Key == schemaKey || p.Key == refIDKey {
			continue
		}
		v, err := decodeValue(rawOf(p.Value), ctx)
		if err != nil {
			return nil, err
		}
		fields.Set(p.Key, v)
	}

	if refID != "" {
		placeholder, ok := ctx.placeholders[refID]
		if !ok {
			placeholder, _ = CreateSchema(resolveSchemaName(name))
			ctx.placeholders[refID] = placeholder
		}
		if placeholder == nil {
			placeholder = NewUnknownSchema(schemaHeader, nil)
		}
		applyUpgrades(resolveSchemaName(name), version, fields)
		if err := placeholder.readFields(fields); err != nil {
			return nil, &SchemaError{Outcome: rtime.MalformedSchema, Detail: err.Error()}
		}
		ctx.defined[refID] = true
		return placeholder, nil
	}

	return instanceFromSchema(name, version, fields)
}

// decodeRtimeSchema special-cases the three time-primitive schemas, which
// live in package rtime and are not SerializableObjects.
func decodeRtimeSchema(name string, raw []byte) (any, bool) {
	switch name {
	case "RationalTime":
		var t rtime.RationalTime
		if err := sonic.Unmarshal(raw, &t); err == nil {
			return t, true
		}
	case "TimeRange":
		var t rtime.TimeRange
		if err := sonic.Unmarshal(raw, &t); err == nil {
			return t, true
		}
	case "TimeTransform":
		var t rtime.TimeTransform
		if err := sonic.Unmarshal(raw, &t); err == nil {
			return t, true
		}
	}
	return nil, false
}

// decodeAnyValue decodes a single JSON value with no surrounding reference
// context. It backs AnyDictionary.UnmarshalJSON, which (as a
// json.Unmarshaler method) has no way to thread a decodeContext through from
// a top-level FromJSONBytes call. Schema objects decoded this way still
// construct correctly; only OTIO_REF/OTIO_REF_ID resolution across the
// whole document is unavailable here, which matters only for documents
// decoded one isolated value at a time rather than through FromJSONBytes.
func decodeAnyValue(raw json.RawMessage) (any, error) {
	ctx := &decodeContext{placeholders: make(map[string]SerializableObject), defined: make(map[string]bool)}
	return decodeValue(raw, ctx)
}

// asTimeRangePtr / asRationalTime pull a typed rtime value back out of a
// decoded field dictionary, tolerating both the rtime.* concrete type
// (the normal case) and a nil/absent entry.
func asTimeRangePtr(fields *AnyDictionary, key string) *rtime.TimeRange {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return nil
	}
	if tr, ok := v.(rtime.TimeRange); ok {
		return &tr
	}
	return nil
}

func asRationalTime(fields *AnyDictionary, key string) rtime.RationalTime {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return rtime.RationalTime{}
	}
	if rt, ok := v.(rtime.RationalTime); ok {
		return rt
	}
	return rtime.RationalTime{}
}

func asString(fields *AnyDictionary, key string) string {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func asBool(fields *AnyDictionary, key string, def bool) bool {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func asFloat(fields *AnyDictionary, key string, def float64) float64 {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		return def
	}
	return f
}

func asInt(fields *AnyDictionary, key string, def int) int {
	return int(asFloat(fields, key, float64(def)))
}

func asDictionary(fields *AnyDictionary, key string) *AnyDictionary {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return NewAnyDictionary()
	}
	if d, ok := v.(*AnyDictionary); ok {
		return d
	}
	return NewAnyDictionary()
}

func asVector(fields *AnyDictionary, key string) *AnyVector {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return NewAnyVector()
	}
	if vec, ok := v.(*AnyVector); ok {
		return vec
	}
	return NewAnyVector()
}

// knownKeySet builds a lookup set from a list of field names, used by
// readFields implementations to split schema-known keys from dynamic ones.
func knownKeySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// splitExtraFields copies every key in fields not present in known into
// base's preserved extra-fields dictionary.
func splitExtraFields(base *SerializableObjectBase, fields *AnyDictionary, known map[string]bool) {
	base.extra = NewAnyDictionary()
	for _, k := range fields.Keys() {
		if known[k] {
			continue
		}
		v, _ := fields.Get(k)
		base.extra.Set(k, v)
	}
}
