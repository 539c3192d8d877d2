package calibration

import (
	"context"

	"github.com/itohio/spacecalibrator/mathutil"
)

// TrackingRuntime is the narrow contract the core consumes from the
// tracking runtime (spec.md §6). Implementations live under adapters/.
type TrackingRuntime interface {
	// DevicePoses returns raw/uncalibrated poses for all device slots,
	// equivalent to GetDeviceToAbsoluteTrackingPose(RawAndUncalibrated, 0).
	DevicePoses(ctx context.Context) ([MaxDevices]DevicePose, error)
	DeviceClass(id int) DeviceClass
	StringProperty(id int, prop StringProperty) (string, error)
}

// ChaperoneRuntime is the narrow contract the core consumes from the
// VRChaperoneSetup-equivalent API (spec.md §6).
type ChaperoneRuntime interface {
	RevertWorkingCopy() error
	LiveCollisionBounds() ([]Quad, error)
	SetWorkingCollisionBounds([]Quad) error
	WorkingStandingPose() (mathutil.Pose, error)
	SetWorkingStandingPose(mathutil.Pose) error
	WorkingPlayAreaSize() ([2]float64, error)
	SetWorkingPlayAreaSize([2]float64) error
	CommitWorkingCopy() error
}

// OffsetDriver is the single synchronous request the core sends to the
// external pose-offset driver process (spec.md §6).
type OffsetDriver interface {
	SetDeviceTransform(ctx context.Context, req SetDeviceTransformRequest) error
}

// ProfileStore persists and restores a Profile (spec.md §6, "Profile store").
type ProfileStore interface {
	Load(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
