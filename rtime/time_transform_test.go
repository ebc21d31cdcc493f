// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package rtime

import (
	"testing"

	"github.com/matryer/is"
)

func TestIdentityTransformIsNoOp(t *testing.T) {
	is := is.New(t)
	tt := IdentityTransform()
	rt := New(10, 24)
	is.True(tt.Applied(rt).Equal(rt))
}

func TestAppliedScaleAndOffset(t *testing.T) {
	is := is.New(t)
	tt := TimeTransform{Offset: New(5, 24), Scale: 2, Rate: -1}
	result := tt.Applied(New(10, 24))
	is.Equal(result.Value, 25.0) // 10*2 + 5
	is.Equal(result.Rate, 24.0)
}

func TestAppliedRateOverride(t *testing.T) {
	is := is.New(t)
	tt := TimeTransform{Offset: New(0, 1), Scale: 1, Rate: 48}
	result := tt.Applied(New(10, 24))
	is.Equal(result.Rate, 48.0)
	is.Equal(result.Value, 20.0)
}

func TestAppliedTransformComposition(t *testing.T) {
	is := is.New(t)
	a := TimeTransform{Offset: New(1, 24), Scale: 2, Rate: -1}
	b := TimeTransform{Offset: New(2, 24), Scale: 3, Rate: -1}
	composed := a.AppliedTransform(b)
	is.Equal(composed.Scale, 6.0)
	is.True(composed.Offset.Equal(New(3, 24)))
}
