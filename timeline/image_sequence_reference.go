// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package timeline

import (
	"fmt"

	"github.com/arashpayan/tlio/rtime"
)

// MissingFramePolicy says what to do when a requested frame falls outside
// the sequence's available frames.
type MissingFramePolicy string

const (
	MissingFramePolicyError MissingFramePolicy = "error"
	MissingFramePolicyHold  MissingFramePolicy = "hold"
	MissingFramePolicyBlack MissingFramePolicy = "black"
)

// ImageSequenceReferenceSchema is ImageSequenceReference's on-disk schema.
var ImageSequenceReferenceSchema = Schema{Name: "ImageSequenceReference", Version: 1}

// ImageSequenceReference addresses media stored as a numbered sequence of
// still-image files, e.g. shot.0001.exr, shot.0002.exr, ...
type ImageSequenceReference struct {
	MediaReferenceBase
	targetURLBase      string
	namePrefix         string
	nameSuffix         string
	startFrame         int
	frameStep          int
	rate               float64
	frameZeroPadding   int
	missingFramePolicy MissingFramePolicy
}

// NewImageSequenceReference returns a new ImageSequenceReference.
// frameStep defaults to 1 and missingFramePolicy to
// MissingFramePolicyError when left zero.
func NewImageSequenceReference(
	name string,
	targetURLBase string,
	namePrefix string,
	nameSuffix string,
	startFrame int,
	frameStep int,
	rate float64,
	frameZeroPadding int,
	availableRange *rtime.TimeRange,
	metadata *AnyDictionary,
	missingFramePolicy MissingFramePolicy,
) *ImageSequenceReference {
	if frameStep == 0 {
		frameStep = 1
	}
	if missingFramePolicy == "" {
		missingFramePolicy = MissingFramePolicyError
	}
	return &ImageSequenceReference{
		MediaReferenceBase: NewMediaReferenceBase(name, availableRange, metadata, nil),
		targetURLBase:      targetURLBase,
		namePrefix:         namePrefix,
		nameSuffix:         nameSuffix,
		startFrame:         startFrame,
		frameStep:          frameStep,
		rate:               rate,
		frameZeroPadding:   frameZeroPadding,
		missingFramePolicy: missingFramePolicy,
	}
}

func (i *ImageSequenceReference) TargetURLBase() string      { return i.targetURLBase }
func (i *ImageSequenceReference) SetTargetURLBase(u string)  { i.targetURLBase = u }
func (i *ImageSequenceReference) NamePrefix() string         { return i.namePrefix }
func (i *ImageSequenceReference) SetNamePrefix(p string)     { i.namePrefix = p }
func (i *ImageSequenceReference) NameSuffix() string         { return i.nameSuffix }
func (i *ImageSequenceReference) SetNameSuffix(s string)     { i.nameSuffix = s }
func (i *ImageSequenceReference) StartFrame() int            { return i.startFrame }
func (i *ImageSequenceReference) SetStartFrame(f int)        { i.startFrame = f }
func (i *ImageSequenceReference) FrameStep() int             { return i.frameStep }
func (i *ImageSequenceReference) SetFrameStep(s int)         { i.frameStep = s }
func (i *ImageSequenceReference) Rate() float64              { return i.rate }
func (i *ImageSequenceReference) SetRate(r float64)          { i.rate = r }
func (i *ImageSequenceReference) FrameZeroPadding() int       { return i.frameZeroPadding }
func (i *ImageSequenceReference) SetFrameZeroPadding(p int)   { i.frameZeroPadding = p }
func (i *ImageSequenceReference) MissingFramePolicy() MissingFramePolicy {
	return i.missingFramePolicy
}
func (i *ImageSequenceReference) SetMissingFramePolicy(p MissingFramePolicy) {
	i.missingFramePolicy = p
}

// TargetURLForImageNumber formats the file path for a specific frame number.
func (i *ImageSequenceReference) TargetURLForImageNumber(frameNumber int) string {
	format := fmt.Sprintf("%%s%%s%%0%dd%%s", i.frameZeroPadding)
	return fmt.Sprintf(format, i.targetURLBase, i.namePrefix, frameNumber, i.nameSuffix)
}

// TargetURLForFrame is an alias for TargetURLForImageNumber.
func (i *ImageSequenceReference) TargetURLForFrame(frameNumber int) string {
	return i.TargetURLForImageNumber(frameNumber)
}

// FrameForTime converts a time expressed in the sequence's own rate to a
// frame number.
func (i *ImageSequenceReference) FrameForTime(t rtime.RationalTime) int {
	frameIndex := int(t.Value)
	return i.startFrame + frameIndex*i.frameStep
}

// EndFrame is the last frame number covered by AvailableRange.
func (i *ImageSequenceReference) EndFrame() int {
	if i.availableRange == nil {
		return i.startFrame
	}
	dur := i.availableRange.Duration
	frames := int(dur.Value * dur.Rate / i.rate)
	return i.startFrame + (frames-1)*i.frameStep
}

// NumberOfImagesInSequence is the count of frames covered by AvailableRange.
func (i *ImageSequenceReference) NumberOfImagesInSequence() int {
	if i.availableRange == nil {
		return 0
	}
	dur := i.availableRange.Duration
	return int(dur.Value * dur.Rate / i.rate)
}

func (i *ImageSequenceReference) SchemaName() string { return ImageSequenceReferenceSchema.Name }
func (i *ImageSequenceReference) SchemaVersion() int { return ImageSequenceReferenceSchema.Version }

func (i *ImageSequenceReference) Clone() SerializableObject {
	return &ImageSequenceReference{
		MediaReferenceBase: i.cloneMediaReferenceBase(),
		targetURLBase:      i.targetURLBase,
		namePrefix:         i.namePrefix,
		nameSuffix:         i.nameSuffix,
		startFrame:         i.startFrame,
		frameStep:          i.frameStep,
		rate:               i.rate,
		frameZeroPadding:   i.frameZeroPadding,
		missingFramePolicy: i.missingFramePolicy,
	}
}

func (i *ImageSequenceReference) IsEquivalentTo(other SerializableObject) bool {
	o, ok := other.(*ImageSequenceReference)
	if !ok {
		return false
	}
	return i.name == o.name &&
		i.targetURLBase == o.targetURLBase &&
		i.namePrefix == o.namePrefix &&
		i.nameSuffix == o.nameSuffix &&
		i.startFrame == o.startFrame &&
		i.frameStep == o.frameStep &&
		i.rate == o.rate
}

const (
	fieldTargetURLBase      = "target_url_base"
	fieldNamePrefix         = "name_prefix"
	fieldNameSuffix         = "name_suffix"
	fieldStartFrame         = "start_frame"
	fieldFrameStep          = "frame_step"
	fieldRate               = "rate"
	fieldFrameZeroPadding   = "frame_zero_padding"
	fieldMissingFramePolicy = "missing_frame_policy"
)

func (i *ImageSequenceReference) writeFields(ctx *marshalContext) (*AnyDictionary, error) {
	fields := NewAnyDictionary()
	i.writeMediaReferenceFields(fields)
	fields.Set(fieldTargetURLBase, i.targetURLBase)
	fields.Set(fieldNamePrefix, i.namePrefix)
	fields.Set(fieldNameSuffix, i.nameSuffix)
	fields.Set(fieldStartFrame, i.startFrame)
	fields.Set(fieldFrameStep, i.frameStep)
	fields.Set(fieldRate, i.rate)
	fields.Set(fieldFrameZeroPadding, i.frameZeroPadding)
	fields.Set(fieldMissingFramePolicy, string(i.missingFramePolicy))
	i.appendExtraFields(fields)
	return fields, nil
}

func (i *ImageSequenceReference) readFields(fields *AnyDictionary) error {
	i.readMediaReferenceFields(fields)
	i.targetURLBase = asString(fields, fieldTargetURLBase)
	i.namePrefix = asString(fields, fieldNamePrefix)
	i.nameSuffix = asString(fields, fieldNameSuffix)
	i.startFrame = asInt(fields, fieldStartFrame, 0)
	i.frameStep = asInt(fields, fieldFrameStep, 1)
	if i.frameStep == 0 {
		i.frameStep = 1
	}
	i.rate = asFloat(fields, fieldRate, 0)
	i.frameZeroPadding = asInt(fields, fieldFrameZeroPadding, 0)
	i.missingFramePolicy = MissingFramePolicy(asString(fields, fieldMissingFramePolicy))
	if i.missingFramePolicy == "" {
		i.missingFramePolicy = MissingFramePolicyError
	}
	splitExtraFields(&i.SerializableObjectBase, fields, mediaReferenceKnownFields(
		fieldTargetURLBase, fieldNamePrefix, fieldNameSuffix, fieldStartFrame,
		fieldFrameStep, fieldRate, fieldFrameZeroPadding, fieldMissingFramePolicy,
	))
	return nil
}

func (i *ImageSequenceReference) walkChildren(visit func(SerializableObject)) {}

func init() {
	RegisterSchema(ImageSequenceReferenceSchema, func() SerializableObject {
		return NewImageSequenceReference("", "", "", "", 0, 1, 24, 4, nil, nil, "")
	})
}
