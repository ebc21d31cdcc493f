// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package rtime

import "github.com/bytedance/sonic"

type rationalTimeJSON struct {
	Schema string  `json:"OTIO_SCHEMA"`
	Rate   float64 `json:"rate"`
	Value  float64 `json:"value"`
}

// MarshalJSON implements json.Marshaler for RationalTime.
func (t RationalTime) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&rationalTimeJSON{Schema: "RationalTime.1", Rate: t.Rate, Value: t.Value})
}

// UnmarshalJSON implements json.Unmarshaler for RationalTime.
func (t *RationalTime) UnmarshalJSON(data []byte) error {
	var j rationalTimeJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	t.Value = j.Value
	t.Rate = j.Rate
	return nil
}

type timeRangeJSON struct {
	Schema    string       `json:"OTIO_SCHEMA"`
	StartTime RationalTime `json:"start_time"`
	Duration  RationalTime `json:"duration"`
}

// MarshalJSON implements json.Marshaler for TimeRange.
func (tr TimeRange) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&timeRangeJSON{Schema: "TimeRange.1", StartTime: tr.StartTime, Duration: tr.Duration})
}

// UnmarshalJSON implements json.Unmarshaler for TimeRange.
func (tr *TimeRange) UnmarshalJSON(data []byte) error {
	var j timeRangeJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	tr.StartTime = j.StartTime
	tr.Duration = j.Duration
	return nil
}

type timeTransformJSON struct {
	Schema string       `json:"OTIO_SCHEMA"`
	Offset RationalTime `json:"offset"`
	Scale  float64      `json:"scale"`
	Rate   float64      `json:"rate"`
}

// MarshalJSON implements json.Marshaler for TimeTransform.
func (tt TimeTransform) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(&timeTransformJSON{Schema: "TimeTransform.1", Offset: tt.Offset, Scale: tt.Scale, Rate: tt.Rate})
}

// UnmarshalJSON implements json.Unmarshaler for TimeTransform.
func (tt *TimeTransform) UnmarshalJSON(data []byte) error {
	var j timeTransformJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	tt.Offset = j.Offset
	tt.Scale = j.Scale
	tt.Rate = j.Rate
	return nil
}
