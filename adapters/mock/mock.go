// Package mock provides in-memory TrackingRuntime and ChaperoneRuntime
// implementations for tests and the demonstration CLI, in the style of
// the teacher's mock sources (e.g. orientation.NewMockSource).
package mock

import (
	"context"
	"fmt"

	"github.com/itohio/spacecalibrator/calibration"
	"github.com/itohio/spacecalibrator/mathutil"
)

// TrackingRuntime is a fully in-memory stand-in for the real tracking
// runtime, letting tests and the demo CLI drive device poses directly.
type TrackingRuntime struct {
	Poses      [calibration.MaxDevices]calibration.DevicePose
	Classes    [calibration.MaxDevices]calibration.DeviceClass
	TrackingSystem [calibration.MaxDevices]string
	Serial     [calibration.MaxDevices]string
}

// NewTrackingRuntime returns an empty mock with every device slot Invalid.
func NewTrackingRuntime() *TrackingRuntime {
	return &TrackingRuntime{}
}

func (m *TrackingRuntime) DevicePoses(ctx context.Context) ([calibration.MaxDevices]calibration.DevicePose, error) {
	return m.Poses, nil
}

func (m *TrackingRuntime) DeviceClass(id int) calibration.DeviceClass {
	if id < 0 || id >= calibration.MaxDevices {
		return calibration.DeviceClassInvalid
	}
	return m.Classes[id]
}

func (m *TrackingRuntime) StringProperty(id int, prop calibration.StringProperty) (string, error) {
	if id < 0 || id >= calibration.MaxDevices {
		return "", fmt.Errorf("mock: device %d out of range", id)
	}
	switch prop {
	case calibration.PropTrackingSystemName:
		return m.TrackingSystem[id], nil
	case calibration.PropSerialNumber:
		return m.Serial[id], nil
	default:
		return "", fmt.Errorf("mock: unknown string property %v", prop)
	}
}

// SetDevice configures device id as a tracked, valid device with the
// given pose, class, tracking system and serial.
func (m *TrackingRuntime) SetDevice(id int, pose mathutil.Pose, class calibration.DeviceClass, trackingSystem, serial string) {
	m.Poses[id] = calibration.DevicePose{Pose: pose, Valid: true}
	m.Classes[id] = class
	m.TrackingSystem[id] = trackingSystem
	m.Serial[id] = serial
}

// SetInvalid marks device id as untracked for this tick, without removing
// its class/tracking-system metadata.
func (m *TrackingRuntime) SetInvalid(id int) {
	m.Poses[id].Valid = false
}

// ChaperoneRuntime is an in-memory VRChaperoneSetup stand-in.
type ChaperoneRuntime struct {
	Live    []calibration.Quad
	Working []calibration.Quad
	Pose    mathutil.Pose
	Size    [2]float64
	Commits int
}

func NewChaperoneRuntime() *ChaperoneRuntime {
	return &ChaperoneRuntime{}
}

func (c *ChaperoneRuntime) RevertWorkingCopy() error {
	c.Working = append([]calibration.Quad(nil), c.Live...)
	return nil
}

func (c *ChaperoneRuntime) LiveCollisionBounds() ([]calibration.Quad, error) {
	return c.Live, nil
}

func (c *ChaperoneRuntime) SetWorkingCollisionBounds(q []calibration.Quad) error {
	c.Working = q
	return nil
}

func (c *ChaperoneRuntime) WorkingStandingPose() (mathutil.Pose, error) {
	return c.Pose, nil
}

func (c *ChaperoneRuntime) SetWorkingStandingPose(p mathutil.Pose) error {
	c.Pose = p
	return nil
}

func (c *ChaperoneRuntime) WorkingPlayAreaSize() ([2]float64, error) {
	return c.Size, nil
}

func (c *ChaperoneRuntime) SetWorkingPlayAreaSize(s [2]float64) error {
	c.Size = s
	return nil
}

func (c *ChaperoneRuntime) CommitWorkingCopy() error {
	c.Live = c.Working
	c.Commits++
	return nil
}
