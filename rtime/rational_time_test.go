// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package rtime

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestIsValid(t *testing.T) {
	is := is.New(t)
	is.True(New(10, 24).IsValid())
	is.True(New(10, 0).IsValid())   // rate 0 normalizes to 1 in New
	is.True(RationalTime{Value: 10, Rate: 0}.IsInvalid())
	is.True(RationalTime{Value: 10, Rate: -1}.IsInvalid())
	is.True(RationalTime{Value: math.NaN(), Rate: 24}.IsInvalid())
	is.True(RationalTime{Value: 10, Rate: math.NaN()}.IsInvalid())
}

func TestRescale(t *testing.T) {
	is := is.New(t)
	rt := New(24, 24)
	rescaled := rt.RescaledTo(48)
	is.Equal(rescaled.Value, 48.0)
	is.Equal(rescaled.Rate, 48.0)
}

func TestAddDifferingRates(t *testing.T) {
	is := is.New(t)
	a := New(1, 24)
	b := New(1, 48)
	sum := a.Add(b)
	is.Equal(sum.Rate, 48.0) // higher rate wins
	is.Equal(sum.Value, 3.0) // 1 at 24 rescales to 2 at 48, + 1
}

func TestAddIsCommutativeAndSubInverts(t *testing.T) {
	is := is.New(t)
	a := New(10, 24)
	b := New(7, 48)

	ab := a.Add(b)
	ba := b.Add(a)
	is.True(ab.Equal(ba))

	back := ab.Sub(b)
	is.True(back.AlmostEqual(a, DefaultEpsilon))
}

func TestEqualIsValueAfterRescale(t *testing.T) {
	is := is.New(t)
	a := New(24, 24)
	b := New(48, 48)
	is.True(a.Equal(b))
	is.True(!a.Equal(New(47, 48)))
}

func TestCompareUsesSeconds(t *testing.T) {
	is := is.New(t)
	a := New(24, 24) // 1 second
	b := New(30, 30) // 1 second
	is.Equal(a.Compare(b), 0)
	is.True(New(10, 24).Less(New(11, 24)))
}

func TestFromFramesTruncates(t *testing.T) {
	is := is.New(t)
	rt := FromFrames(10.9, 24)
	is.Equal(rt.Value, 10.0)
}

func TestFromSecondsAtRate(t *testing.T) {
	is := is.New(t)
	rt := FromSecondsAtRate(2, 24)
	is.Equal(rt.Rate, 24.0)
	is.Equal(rt.Value, 48.0)
}

func TestDurationFromStartEndTime(t *testing.T) {
	is := is.New(t)
	d := DurationFromStartEndTime(New(10, 24), New(20, 24))
	is.Equal(d.Value, 10.0)
	di := DurationFromStartEndTimeInclusive(New(10, 24), New(20, 24))
	is.Equal(di.Value, 11.0)
}

func TestIsValidTimecodeRate(t *testing.T) {
	is := is.New(t)
	is.True(IsValidTimecodeRate(24))
	is.True(IsValidTimecodeRate(30000.0 / 1001.0))
	is.True(!IsValidTimecodeRate(29.97)) // not in the exact closed set
	is.True(!IsValidTimecodeRate(100))
}

func TestNearestValidTimecodeRate(t *testing.T) {
	is := is.New(t)
	is.Equal(NearestValidTimecodeRate(29), 30000.0/1001.0)
	is.Equal(NearestValidTimecodeRate(24), 24.0)
}

func TestFromTimecodeDropFrame(t *testing.T) {
	is := is.New(t)
	rt, err := FromTimecode("10:03:00;05", 30000.0/1001.0)
	is.NoErr(err)
	is.Equal(rt.Value, 1084319.0)
}

func TestFromTimecodeNonDropFrame(t *testing.T) {
	is := is.New(t)
	rt, err := FromTimecode("00:00:01:00", 24)
	is.NoErr(err)
	is.Equal(rt.Value, 24.0)
}

func TestFromTimecodeRejectsDropSeparatorAtNonDropRate(t *testing.T) {
	is := is.New(t)
	_, err := FromTimecode("00:00:01;00", 24)
	is.True(err != nil)
	status := err.(*Status)
	is.Equal(status.Outcome, InvalidRateForDropFrameTimecode)
}

func TestFromTimecodeRejectsFramesBeyondNominalRate(t *testing.T) {
	is := is.New(t)
	_, err := FromTimecode("00:00:01:24", 24)
	is.True(err != nil)
	status := err.(*Status)
	is.Equal(status.Outcome, TimecodeRateMismatch)
}

func TestToTimecodeRoundTrip(t *testing.T) {
	is := is.New(t)
	rt := New(1084319, 30000.0/1001.0)

	forceYes, err := rt.ToTimecode(30000.0/1001.0, ForceYes)
	is.NoErr(err)
	is.Equal(forceYes, "10:03:00;05")

	forceNo, err := rt.ToTimecode(30000.0/1001.0, ForceNo)
	is.NoErr(err)
	is.Equal(forceNo, "10:02:23:29")

	inferred, err := rt.ToTimecode(30000.0/1001.0, InferFromRate)
	is.NoErr(err)
	is.Equal(inferred, "10:03:00;05")
}

func TestToTimecodeNegativeValueFails(t *testing.T) {
	is := is.New(t)
	rt := New(-1, 24)
	_, err := rt.ToTimecode(24, InferFromRate)
	is.True(err != nil)
	is.Equal(err.(*Status).Outcome, NegativeValue)
}

func TestToTimeStringFormatting(t *testing.T) {
	is := is.New(t)
	rt := FromSecondsAtRate(3661.5, 24)
	is.Equal(rt.ToTimeString(), "01:01:01.5")
}

func TestToTimeStringNegative(t *testing.T) {
	is := is.New(t)
	rt := FromSecondsAtRate(-1.25, 24)
	is.Equal(rt.ToTimeString(), "-00:00:01.25")
}

func TestFromTimeStringRoundTrip(t *testing.T) {
	is := is.New(t)
	rt, err := FromTimeString("01:01:01.5", 24)
	is.NoErr(err)
	is.True(math.Abs(rt.ToSeconds()-3661.5) < 1e-9)
}

func TestFromTimeStringMissingLeadingComponents(t *testing.T) {
	is := is.New(t)
	rt, err := FromTimeString("1.5", 24)
	is.NoErr(err)
	is.True(math.Abs(rt.ToSeconds()-1.5) < 1e-9)
}

func TestFromTimeStringRejectsOutOfRangeField(t *testing.T) {
	is := is.New(t)
	_, err := FromTimeString("00:60:00", 24)
	is.True(err != nil)
	is.Equal(err.(*Status).Outcome, InvalidTimeString)
}
