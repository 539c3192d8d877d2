// Package calibration implements the rigid-body spatial calibration core
// described in spec.md: sample collection, rotation/translation solvers,
// quality gating, and the tick-driven state machine that applies the
// solved transform to target-universe devices.
package calibration

import "github.com/itohio/spacecalibrator/mathutil"

// MaxDevices bounds the tracked-device index space scanned each tick,
// matching the tracking runtime's fixed device table (spec.md §6).
const MaxDevices = 64

// DeviceClass mirrors the tracking runtime's device class enumeration.
type DeviceClass int

const (
	DeviceClassInvalid DeviceClass = iota
	DeviceClassHMD
	DeviceClassController
	DeviceClassGenericTracker
	DeviceClassTrackingReference
)

// StringProperty enumerates the device string properties the core reads.
type StringProperty int

const (
	PropTrackingSystemName StringProperty = iota
	PropSerialNumber
)

// DevicePose is one entry of the tracking runtime's per-tick pose array.
type DevicePose struct {
	Pose  mathutil.Pose
	Valid bool
}

// Quad is a single chaperone collision-bound quad: four corner points.
type Quad [4]mathutil.Vec3

// ChaperoneSnapshot is the persisted play-area geometry, per spec.md §3.
type ChaperoneSnapshot struct {
	Quads        []Quad
	StandingPose mathutil.Pose
	PlayAreaSize [2]float64
	Valid        bool
	AutoApply    bool
}

// SetDeviceTransformRequest is the single IPC request type the offset
// driver accepts (spec.md §6).
type SetDeviceTransformRequest struct {
	DeviceID    int
	Enabled     bool
	Translation mathutil.Vec3 // metres
	Rotation    mathutil.Quaternion
	Scale       float64
}

// IdentityRequest builds the zero/identity-disabled request for deviceID,
// used whenever the scan falls back to an identity offset (spec.md §4.7).
func IdentityRequest(deviceID int, enabled bool) SetDeviceTransformRequest {
	return SetDeviceTransformRequest{
		DeviceID: deviceID,
		Enabled:  enabled,
		Rotation: mathutil.IdentityQuaternion(),
		Scale:    1,
	}
}

// Profile is the subset of CalibrationContext that is persisted across
// process restarts by a ProfileStore (spec.md §3, §6).
type Profile struct {
	ReferenceID             int
	TargetID                int
	ReferenceTrackingSystem string
	TargetTrackingSystem    string
	CalibratedRotation      mathutil.EulerZYX
	CalibratedTranslation   mathutil.Vec3 // centimetres
	CalibratedScale         float64
	ValidProfile            bool
	Chaperone               ChaperoneSnapshot
}
