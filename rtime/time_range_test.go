// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package rtime

import (
	"testing"

	"github.com/matryer/is"
)

func TestEndTimeExclusive(t *testing.T) {
	is := is.New(t)
	r := RangeFromValues(0, 10, 24)
	is.Equal(r.EndTimeExclusive().Value, 10.0)
}

func TestEndTimeAcrossRates(t *testing.T) {
	is := is.New(t)

	whole := TimeRange{StartTime: New(0, 24), Duration: New(24, 24)}
	is.Equal(whole.EndTimeExclusive().Value, 24.0)
	is.Equal(whole.EndTimeInclusive().Value, 23.0)

	fractional := TimeRange{StartTime: New(0, 24), Duration: New(5.5, 24)}
	is.Equal(fractional.EndTimeInclusive().Value, 5.0)
}

func TestContains(t *testing.T) {
	is := is.New(t)
	r := RangeFromValues(10, 10, 24)
	is.True(r.Contains(New(10, 24)))
	is.True(r.Contains(New(19, 24)))
	is.True(!r.Contains(New(20, 24))) // exclusive end
	is.True(!r.Contains(New(9, 24)))
}

func TestContainsRangeStrict(t *testing.T) {
	is := is.New(t)
	outer := RangeFromValues(0, 20, 24)
	inner := RangeFromValues(5, 5, 24)
	is.True(outer.ContainsRange(inner, DefaultEpsilon))

	flushStart := RangeFromValues(0, 5, 24)
	is.True(!outer.ContainsRange(flushStart, DefaultEpsilon)) // shares start, not strictly contained
}

func TestOverlaps(t *testing.T) {
	is := is.New(t)
	a := RangeFromValues(0, 10, 24)
	b := RangeFromValues(5, 10, 24)
	is.True(a.Overlaps(b, DefaultEpsilon))

	c := RangeFromValues(10, 10, 24)
	is.True(!a.Overlaps(c, DefaultEpsilon)) // meets, does not overlap
}

func TestBeforeAndMeets(t *testing.T) {
	is := is.New(t)
	a := RangeFromValues(0, 10, 24)
	gapped := RangeFromValues(11, 5, 24)
	is.True(a.Before(gapped, DefaultEpsilon))

	adjacent := RangeFromValues(10, 5, 24)
	is.True(a.Meets(adjacent, DefaultEpsilon))
	is.True(!a.Before(adjacent, DefaultEpsilon))
}

func TestBeginsAndFinishes(t *testing.T) {
	is := is.New(t)
	outer := RangeFromValues(0, 20, 24)
	beginning := RangeFromValues(0, 10, 24)
	is.True(beginning.Begins(outer, DefaultEpsilon))

	finishing := RangeFromValues(10, 10, 24)
	is.True(finishing.Finishes(outer, DefaultEpsilon))
}

func TestIntersects(t *testing.T) {
	is := is.New(t)
	a := RangeFromValues(0, 10, 24)
	b := RangeFromValues(9, 10, 24)
	is.True(a.Intersects(b, DefaultEpsilon))

	c := RangeFromValues(10, 10, 24)
	is.True(!a.Intersects(c, DefaultEpsilon))
}

func TestExtendedBy(t *testing.T) {
	is := is.New(t)
	a := RangeFromValues(0, 10, 24)
	b := RangeFromValues(20, 10, 24)
	merged := a.ExtendedBy(b)
	is.Equal(merged.StartTime.Value, 0.0)
	is.Equal(merged.EndTimeExclusive().Value, 30.0)
}

func TestClamped(t *testing.T) {
	is := is.New(t)
	r := RangeFromValues(10, 10, 24)
	is.Equal(r.Clamped(New(0, 24)).Value, 10.0)
	is.Equal(r.Clamped(New(30, 24)).Value, r.EndTimeInclusive().Value)
}

// TestAllenRelationsAreMutuallyExclusive checks invariant 6: for a handful
// of representative range pairs, at most one of before/meets/overlaps/
// begins/finishes holds (contains and intersects are broader relations
// that legitimately coincide with several of the others, so they're
// checked for consistency rather than exclusivity).
func TestAllenRelationsAreMutuallyExclusive(t *testing.T) {
	is := is.New(t)

	a := RangeFromValues(0, 10, 24)
	cases := []TimeRange{
		RangeFromValues(20, 10, 24), // gapped: before only
		RangeFromValues(10, 10, 24), // adjacent: meets only
		RangeFromValues(5, 10, 24),  // overlaps only
		RangeFromValues(0, 5, 24),   // begins only
		RangeFromValues(5, 5, 24),   // finishes only
	}

	for _, b := range cases {
		count := 0
		if a.Before(b, DefaultEpsilon) {
			count++
		}
		if a.Meets(b, DefaultEpsilon) {
			count++
		}
		if a.Overlaps(b, DefaultEpsilon) {
			count++
		}
		if b.Begins(a, DefaultEpsilon) {
			count++
		}
		if b.Finishes(a, DefaultEpsilon) {
			count++
		}
		is.True(count <= 1)
	}

	is.True(a.Contains(New(5, 24)))
	is.True(a.Intersects(RangeFromValues(5, 10, 24), DefaultEpsilon))
}
