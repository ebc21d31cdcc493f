// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/arashpayan/tlio/rtime"
)

// Schema names a versioned record type, e.g. "Clip.2".
type Schema struct {
	Name    string
	Version int
}

// String renders the schema as its on-disk header value, "Name.Version".
func (s Schema) String() string {
	return fmt.Sprintf("%s.%d", s.Name, s.Version)
}

// SchemaFactory constructs a zero-value instance of a registered schema.
type SchemaFactory func() SerializableObject

// FieldUpgradeFunc rewrites a decoded field dictionary from one schema
// version to the next.
type FieldUpgradeFunc func(fields *AnyDictionary)

// schemaRecord is the type registry's per-name bookkeeping: current
// version, factory, and the upgrade/downgrade function tables keyed by the
// version each function produces (upgrade) or consumes (downgrade).
type schemaRecord struct {
	name      string
	version   int
	factory   SchemaFactory
	upgrades  map[int]FieldUpgradeFunc // key: version this function upgrades TO
	downgrades map[int]FieldUpgradeFunc // key: version this function downgrades FROM
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*schemaRecord)
	aliases    = make(map[string]string)
)

// RegisterSchema registers a schema's current version and factory.
//
// First registration wins; a duplicate registration with an identical
// current_version is idempotent (returns true); one with a different
// version is a no-op (returns false), per spec.md §4.3.
func RegisterSchema(schema Schema, factory SchemaFactory) bool {
	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := registry[schema.Name]; ok {
		return existing.version == schema.Version
	}
	registry[schema.Name] = &schemaRecord{
		name:       schema.Name,
		version:    schema.Version,
		factory:    factory,
		upgrades:   make(map[int]FieldUpgradeFunc),
		downgrades: make(map[int]FieldUpgradeFunc),
	}
	return true
}

// RegisterSchemaAlias registers an alternate on-disk name for an already
// registered schema (e.g. "Filler" for "Gap", "Sequence" for "Track").
func RegisterSchemaAlias(alias, canonical string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	aliases[alias] = canonical
}

// RegisterUpgradeFunction installs a function applied when reading a
// document at a version below toVersion. Functions run in increasing
// order of toVersion when multiple are registered for intermediate steps.
func RegisterUpgradeFunction(name string, toVersion int, fn FieldUpgradeFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if rec, ok := registry[name]; ok {
		rec.upgrades[toVersion] = fn
	}
}

// RegisterDowngradeFunction installs a function applied when writing to a
// target version below the schema's current version. Functions run in
// decreasing order of fromVersion.
func RegisterDowngradeFunction(name string, fromVersion int, fn FieldUpgradeFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if rec, ok := registry[name]; ok {
		rec.downgrades[fromVersion] = fn
	}
}

func resolveSchemaName(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

func lookupRecord(name string) (*schemaRecord, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	rec, ok := registry[resolveSchemaName(name)]
	return rec, ok
}

// IsSchemaRegistered reports whether name (or an alias of it) is known.
func IsSchemaRegistered(name string) bool {
	_, ok := lookupRecord(name)
	return ok
}

// CreateSchema constructs a fresh zero-value instance of the named schema.
func CreateSchema(name string) (SerializableObject, bool) {
	rec, ok := lookupRecord(name)
	if !ok {
		return nil, false
	}
	return rec.factory(), true
}

// ParseSchema splits an "OTIO_SCHEMA" header of the form "Name.Version"
// into its parts. A header with no numeric suffix is treated as version 1
// of a schema named exactly as given.
func ParseSchema(header string) (name string, version int) {
	idx := strings.LastIndex(header, ".")
	if idx < 0 {
		return header, 1
	}
	v, err := strconv.Atoi(header[idx+1:])
	if err != nil {
		return header, 1
	}
	return header[:idx], v
}

// applyUpgrades mutates fields in place, running every registered upgrade
// function for name whose toVersion exceeds onDiskVersion, in increasing
// order of toVersion.
func applyUpgrades(name string, onDiskVersion int, fields *AnyDictionary) {
	rec, ok := lookupRecord(name)
	if !ok || onDiskVersion >= rec.version {
		return
	}
	versions := make([]int, 0, len(rec.upgrades))
	for v := range rec.upgrades {
		if v > onDiskVersion {
			versions = append(versions, v)
		}
	}
	sort.Ints(versions)
	for _, v := range versions {
		rec.upgrades[v](fields)
	}
}

// applyDowngrades mutates fields in place, running every registered
// downgrade function for name whose fromVersion exceeds targetVersion, in
// decreasing order of fromVersion.
func applyDowngrades(name string, targetVersion int, fields *AnyDictionary) {
	rec, ok := lookupRecord(name)
	if !ok || targetVersion >= rec.version {
		return
	}
	versions := make([]int, 0, len(rec.downgrades))
	for v := range rec.downgrades {
		if v > targetVersion {
			versions = append(versions, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	for _, v := range versions {
		rec.downgrades[v](fields)
	}
}

// currentVersion returns the registered current_version for name, or 1 if
// unregistered.
func currentVersion(name string) int {
	rec, ok := lookupRecord(name)
	if !ok {
		return 1
	}
	return rec.version
}

// instanceFromSchema implements spec.md §4.3's instance_from_schema: build
// a fresh object of the named schema (or an UnknownSchema wrapper if the
// name is unregistered), applying upgrade functions if the on-disk version
// trails the registered current_version.
func instanceFromSchema(name string, version int, fields *AnyDictionary) (SerializableObject, error) {
	rec, ok := lookupRecord(name)
	if !ok {
		return NewUnknownSchema(Schema{Name: name, Version: version}.String(), fields), nil
	}
	applyUpgrades(name, version, fields)
	obj := rec.factory()
	if err := obj.readFields(fields); err != nil {
		return nil, &SchemaError{Outcome: rtime.MalformedSchema, Detail: err.Error()}
	}
	return obj, nil
}
