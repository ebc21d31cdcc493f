// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package rtime

import (
	"fmt"
	"math"
)

// DefaultEpsilon is half a sample at 192kHz, the fastest commonly
// encountered audio rate, and is the default tolerance for the Allen
// interval predicates below.
const DefaultEpsilon = 1.0 / (2 * 192000.0)

// TimeRange is inclusive of StartTime and exclusive of its end.
type TimeRange struct {
	StartTime RationalTime
	Duration  RationalTime
}

// RangeFromStartTime builds a zero-duration range at t's rate.
func RangeFromStartTime(t RationalTime) TimeRange {
	return TimeRange{StartTime: t, Duration: RationalTime{Value: 0, Rate: t.Rate}}
}

// RangeFromStartDuration builds a range from a start time and a
// duration, possibly at different rates.
func RangeFromStartDuration(start, duration RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: duration}
}

// RangeFromValues builds a range from three doubles sharing one rate.
func RangeFromValues(start, duration, rate float64) TimeRange {
	return TimeRange{
		StartTime: RationalTime{Value: start, Rate: rate},
		Duration:  RationalTime{Value: duration, Rate: rate},
	}
}

// RangeFromStartEndTime builds a range from a start time and an
// exclusive end time.
func RangeFromStartEndTime(start, endExclusive RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: DurationFromStartEndTime(start, endExclusive)}
}

// RangeFromStartEndTimeInclusive builds a range from a start time and an
// inclusive end time.
func RangeFromStartEndTimeInclusive(start, endInclusive RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: DurationFromStartEndTimeInclusive(start, endInclusive)}
}

// IsInvalid reports whether either endpoint is invalid or Duration is
// negative.
func (tr TimeRange) IsInvalid() bool {
	return tr.StartTime.IsInvalid() || tr.Duration.IsInvalid() || tr.Duration.Value < 0
}

// IsValid is the negation of IsInvalid.
func (tr TimeRange) IsValid() bool {
	return !tr.IsInvalid()
}

// EndTimeExclusive is start_time rescaled to duration's rate, plus
// duration. Duration's rate is authoritative when the two differ.
func (tr TimeRange) EndTimeExclusive() RationalTime {
	return tr.Duration.Add(tr.StartTime.RescaledTo(tr.Duration.Rate))
}

// EndTimeInclusive is one sample before the exclusive end, with a
// special case for fractional durations that floors the exclusive end
// instead.
func (tr TimeRange) EndTimeInclusive() RationalTime {
	end := tr.EndTimeExclusive()
	if end.Sub(tr.StartTime.RescaledTo(tr.Duration.Rate)).Value > 1 {
		if tr.Duration.Value != math.Floor(tr.Duration.Value) {
			return end.Floor()
		}
		return end.Sub(RationalTime{Value: 1, Rate: tr.Duration.Rate})
	}
	return tr.StartTime
}

// DurationExtendedBy returns a copy of tr with Duration lengthened by t.
func (tr TimeRange) DurationExtendedBy(t RationalTime) TimeRange {
	return TimeRange{StartTime: tr.StartTime, Duration: tr.Duration.Add(t)}
}

// ExtendedBy returns the minimal range covering both tr and other.
func (tr TimeRange) ExtendedBy(other TimeRange) TimeRange {
	newStart := tr.StartTime
	if other.StartTime.Less(newStart) {
		newStart = other.StartTime
	}
	newEnd := tr.EndTimeExclusive()
	if otherEnd := other.EndTimeExclusive(); otherEnd.Greater(newEnd) {
		newEnd = otherEnd
	}
	return TimeRange{StartTime: newStart, Duration: DurationFromStartEndTime(newStart, newEnd)}
}

// Clamped clamps t to [StartTime, EndTimeInclusive].
func (tr TimeRange) Clamped(t RationalTime) RationalTime {
	result := t
	if result.Less(tr.StartTime) {
		result = tr.StartTime
	}
	if endInclusive := tr.EndTimeInclusive(); result.Greater(endInclusive) {
		result = endInclusive
	}
	return result
}

// ClampedRange clips both endpoints of other to tr.
func (tr TimeRange) ClampedRange(other TimeRange) TimeRange {
	newStart := other.StartTime
	if tr.StartTime.Greater(newStart) {
		newStart = tr.StartTime
	}
	candidate := TimeRange{StartTime: newStart, Duration: other.Duration}
	candidateEnd := candidate.EndTimeExclusive()
	thisEnd := tr.EndTimeExclusive()
	end := candidateEnd
	if thisEnd.Less(candidateEnd) {
		end = thisEnd
	}
	return TimeRange{StartTime: newStart, Duration: end.Sub(newStart)}
}

// Contains reports start ≤ t < end_exclusive.
func (tr TimeRange) Contains(t RationalTime) bool {
	return tr.StartTime.LessEqual(t) && t.Less(tr.EndTimeExclusive())
}

// ContainsRange reports whether other lies strictly within tr:
// other.start > start ∧ other.end < end, both strict by epsilon.
func (tr TimeRange) ContainsRange(other TimeRange, epsilon float64) bool {
	thisStart, thisEnd := tr.StartTime.ToSeconds(), tr.EndTimeExclusive().ToSeconds()
	otherStart, otherEnd := other.StartTime.ToSeconds(), other.EndTimeExclusive().ToSeconds()
	return greaterThan(otherStart, thisStart, epsilon) && lessThan(otherEnd, thisEnd, epsilon)
}

// Overlaps reports start < other.end ∧ end > other.start ∧ other.end > end.
func (tr TimeRange) Overlaps(other TimeRange, epsilon float64) bool {
	thisStart, thisEnd := tr.StartTime.ToSeconds(), tr.EndTimeExclusive().ToSeconds()
	otherStart, otherEnd := other.StartTime.ToSeconds(), other.EndTimeExclusive().ToSeconds()
	return lessThan(thisStart, otherEnd, epsilon) &&
		greaterThan(thisEnd, otherStart, epsilon) &&
		greaterThan(otherEnd, thisEnd, epsilon)
}

// Before reports other.start − end ≥ epsilon.
func (tr TimeRange) Before(other TimeRange, epsilon float64) bool {
	return greaterThan(other.StartTime.ToSeconds(), tr.EndTimeExclusive().ToSeconds(), epsilon)
}

// BeforeTime reports whether tr ends strictly before t.
func (tr TimeRange) BeforeTime(t RationalTime, epsilon float64) bool {
	return lessThan(tr.EndTimeExclusive().ToSeconds(), t.ToSeconds(), epsilon)
}

// Meets reports 0 ≤ other.start − end ≤ epsilon.
func (tr TimeRange) Meets(other TimeRange, epsilon float64) bool {
	gap := other.StartTime.ToSeconds() - tr.EndTimeExclusive().ToSeconds()
	return gap >= 0 && gap <= epsilon
}

// Begins reports |other.start − start| ≤ epsilon ∧ end < other.end.
func (tr TimeRange) Begins(other TimeRange, epsilon float64) bool {
	thisStart, thisEnd := tr.StartTime.ToSeconds(), tr.EndTimeExclusive().ToSeconds()
	otherStart, otherEnd := other.StartTime.ToSeconds(), other.EndTimeExclusive().ToSeconds()
	return math.Abs(otherStart-thisStart) <= epsilon && lessThan(thisEnd, otherEnd, epsilon)
}

// BeginsAt reports whether tr's start is within epsilon of t.
func (tr TimeRange) BeginsAt(t RationalTime, epsilon float64) bool {
	return math.Abs(t.ToSeconds()-tr.StartTime.ToSeconds()) <= epsilon
}

// Finishes reports |end − other.end| ≤ epsilon ∧ start > other.start.
func (tr TimeRange) Finishes(other TimeRange, epsilon float64) bool {
	thisStart, thisEnd := tr.StartTime.ToSeconds(), tr.EndTimeExclusive().ToSeconds()
	otherStart, otherEnd := other.StartTime.ToSeconds(), other.EndTimeExclusive().ToSeconds()
	return math.Abs(thisEnd-otherEnd) <= epsilon && greaterThan(thisStart, otherStart, epsilon)
}

// FinishesAt reports whether tr's exclusive end is within epsilon of t.
func (tr TimeRange) FinishesAt(t RationalTime, epsilon float64) bool {
	return math.Abs(t.ToSeconds()-tr.EndTimeExclusive().ToSeconds()) <= epsilon
}

// Intersects reports start < other.end ∧ end > other.start.
func (tr TimeRange) Intersects(other TimeRange, epsilon float64) bool {
	thisStart, thisEnd := tr.StartTime.ToSeconds(), tr.EndTimeExclusive().ToSeconds()
	otherStart, otherEnd := other.StartTime.ToSeconds(), other.EndTimeExclusive().ToSeconds()
	return lessThan(thisStart, otherEnd, epsilon) && greaterThan(thisEnd, otherStart, epsilon)
}

// Equal reports approximate equality within DefaultEpsilon seconds.
func (tr TimeRange) Equal(other TimeRange) bool {
	startDiff := tr.StartTime.Sub(other.StartTime).ToSeconds()
	durationDiff := tr.Duration.Sub(other.Duration).ToSeconds()
	return math.Abs(startDiff) < DefaultEpsilon && math.Abs(durationDiff) < DefaultEpsilon
}

func (tr TimeRange) String() string {
	return fmt.Sprintf("TimeRange(%v, %v)", tr.StartTime, tr.Duration)
}

func greaterThan(lhs, rhs, epsilon float64) bool { return lhs-rhs >= epsilon }
func lessThan(lhs, rhs, epsilon float64) bool     { return rhs-lhs >= epsilon }
