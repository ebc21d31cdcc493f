// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package rtime

import "fmt"

// TimeTransform is a one-dimensional affine transform over RationalTime:
// value' = value*Scale + Offset. Rate <= 0 means "no rate override, use
// the input's rate."
type TimeTransform struct {
	Offset RationalTime
	Scale  float64
	Rate   float64
}

// IdentityTransform is the no-op transform.
func IdentityTransform() TimeTransform {
	return TimeTransform{Offset: RationalTime{Value: 0, Rate: 1}, Scale: 1, Rate: -1}
}

// Applied applies tt to t. The value is scaled and offset in t's rate,
// then rescaled to tt.Rate if positive, else left at t's rate.
func (tt TimeTransform) Applied(t RationalTime) RationalTime {
	result := RationalTime{Value: t.Value * tt.Scale, Rate: t.Rate}.Add(tt.Offset)

	targetRate := tt.Rate
	if targetRate <= 0 {
		targetRate = t.Rate
	}
	if targetRate > 0 {
		return result.RescaledTo(targetRate)
	}
	return result
}

// AppliedRange applies tt to both endpoints of r.
func (tt TimeTransform) AppliedRange(r TimeRange) TimeRange {
	return RangeFromStartEndTime(tt.Applied(r.StartTime), tt.Applied(r.EndTimeExclusive()))
}

// AppliedTransform composes tt with other: offsets add, scales multiply.
func (tt TimeTransform) AppliedTransform(other TimeTransform) TimeTransform {
	rate := tt.Rate
	if rate <= 0 {
		rate = other.Rate
	}
	return TimeTransform{
		Offset: tt.Offset.Add(other.Offset),
		Scale:  tt.Scale * other.Scale,
		Rate:   rate,
	}
}

// Equal reports field-wise equality (offset compared via RationalTime
// rescale equality, scale and rate exactly).
func (tt TimeTransform) Equal(other TimeTransform) bool {
	return tt.Offset.Equal(other.Offset) && tt.Scale == other.Scale && tt.Rate == other.Rate
}

func (tt TimeTransform) String() string {
	return fmt.Sprintf("TimeTransform(%v, %g, %g)", tt.Offset, tt.Scale, tt.Rate)
}
