package calibration

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// tickRateLimit is the minimum spacing between two processed ticks, per
// spec.md §4.6.
const tickRateLimit = 0.05 // seconds

// profileApplyIntervalNone and profileApplyIntervalEditing are the
// wanted-update-interval values the None/Editing states advertise, and the
// cadence at which they actually re-run profile application.
const (
	profileApplyIntervalNone    = 1.0
	profileApplyIntervalEditing = 0.1
)

// Calibrator binds a CalibrationContext to the external adapters it drives
// (spec.md §9: acquired once at construction, the design assumes process
// lifetime). It is not safe for concurrent/re-entrant Tick calls
// (spec.md §5).
type Calibrator struct {
	Ctx *CalibrationContext

	Tracking  TrackingRuntime
	Chaperone ChaperoneRuntime
	Driver    OffsetDriver
	Store     ProfileStore

	Log zerolog.Logger
}

// NewCalibrator wires a CalibrationContext to its adapters, following the
// teacher's InitCalibrator scoped-acquisition pattern (spec.md §9): the
// adapters are expected to live for the process's lifetime.
func NewCalibrator(ctx *CalibrationContext, tracking TrackingRuntime, chaperone ChaperoneRuntime, driver OffsetDriver, store ProfileStore) *Calibrator {
	return &Calibrator{
		Ctx:       ctx,
		Tracking:  tracking,
		Chaperone: chaperone,
		Driver:    driver,
		Store:     store,
		Log:       log.With().Str("component", "calibration").Logger(),
	}
}

// StartCalibration requests a transition into the Begin state on the next
// tick, per spec.md §4.6.
func (c *Calibrator) StartCalibration() {
	c.Ctx.State = StateBegin
	c.Ctx.Messages = nil
	c.Ctx.WantedUpdateInterval = 0
}

// Tick is the tick entry point described in spec.md §4.6. now is the
// current time in seconds, supplied by the host's tick source.
func (c *Calibrator) Tick(ctx context.Context, now float64) error {
	if c.Tracking == nil {
		return fmt.Errorf("calibration: tracking runtime unavailable")
	}
	if now-c.Ctx.TimeLastTick < tickRateLimit {
		return nil
	}
	c.Ctx.TimeLastTick = now

	poses, err := c.Tracking.DevicePoses(ctx)
	if err != nil {
		return fmt.Errorf("calibration: refresh device poses: %w", err)
	}
	c.Ctx.DevicePoses = poses

	switch c.Ctx.State {
	case StateNone:
		c.Ctx.WantedUpdateInterval = profileApplyIntervalNone
		if now-c.Ctx.TimeLastScan >= profileApplyIntervalNone {
			c.Ctx.TimeLastScan = now
			c.ScanAndApplyProfile(ctx)
		}
	case StateEditing:
		c.Ctx.WantedUpdateInterval = profileApplyIntervalEditing
		if now-c.Ctx.TimeLastScan >= profileApplyIntervalEditing {
			c.Ctx.TimeLastScan = now
			c.ScanAndApplyProfile(ctx)
		}
	case StateBegin:
		c.tickBegin(ctx)
	case StateRotation:
		c.tickRotation(ctx)
	}
	return nil
}

func (c *Calibrator) tickBegin(ctx context.Context) {
	ref := c.Ctx.ReferenceID
	target := c.Ctx.TargetID

	if ref < 0 || target < 0 || ref >= MaxDevices || target >= MaxDevices ||
		!c.Ctx.DevicePoses[ref].Valid || !c.Ctx.DevicePoses[target].Valid {
		if ref < 0 || ref >= MaxDevices || !c.Ctx.DevicePoses[ref].Valid {
			c.Ctx.Log("Reference device is not tracking")
		} else {
			c.Ctx.Log("Target device is not tracking")
		}
		c.Ctx.State = StateNone
		return
	}

	refSerial, _ := c.Tracking.StringProperty(ref, PropSerialNumber)
	targetSerial, _ := c.Tracking.StringProperty(target, PropSerialNumber)
	c.Ctx.Log(fmt.Sprintf("Reference device serial: %s", refSerial))
	c.Ctx.Log(fmt.Sprintf("Target device serial: %s", targetSerial))

	if c.Driver != nil {
		_ = c.Driver.SetDeviceTransform(ctx, IdentityRequest(target, false))
	}

	c.Ctx.samples = nil
	c.Ctx.State = StateRotation
	c.Ctx.WantedUpdateInterval = 0
}

func (c *Calibrator) tickRotation(ctx context.Context) {
	ref := c.Ctx.DevicePoses[c.Ctx.ReferenceID]
	target := c.Ctx.DevicePoses[c.Ctx.TargetID]

	if !ref.Valid || !target.Valid {
		c.Ctx.Log("Device lost tracking during rotation collection, aborting")
		c.Ctx.State = StateNone
		c.Ctx.samples = nil
		return
	}

	c.Ctx.samples = append(c.Ctx.samples, Sample{Ref: ref.Pose, Target: target.Pose, Valid: true})
	c.Ctx.Log(fmt.Sprintf("Collected sample %d/%d", len(c.Ctx.samples), c.Ctx.sampleCount))

	if len(c.Ctx.samples) < c.Ctx.sampleCount {
		return
	}

	c.solve(ctx)
}

func (c *Calibrator) solve(ctx context.Context) {
	samples := c.Ctx.samples
	original := make([]Sample, len(samples))
	copy(original, samples)

	rotation, err := CalibrateRotation(samples)
	if err != nil {
		c.Ctx.Log(fmt.Sprintf("Rejecting low quality calibration: %v", err))
		c.Ctx.samples = nil
		c.Ctx.State = StateNone
		return
	}

	rotQuat := rotation.ToQuaternion()
	R := rotQuat.ToMat3()
	for i := range samples {
		samples[i].Target.Rot = R.Mul(samples[i].Target.Rot)
		samples[i].Target.Trans = R.MulVec3(samples[i].Target.Trans)
	}

	translationCm, err := CalibrateTranslation(samples)
	if err != nil {
		c.Ctx.Log(fmt.Sprintf("Rejecting low quality calibration: %v", err))
		c.Ctx.samples = nil
		c.Ctx.State = StateNone
		return
	}

	vrTrans := translationCm.Scale(1.0 / 100)

	sensitivity := ComputeSensitivity(original, vrTrans, rotQuat)
	coplanar, variance := ComputeIndependence(original, vrTrans, rotQuat)
	if coplanar {
		c.Ctx.Log("Independence check: samples are nearly coplanar, move around more")
	}
	c.Log.Debug().
		Float64("baseErrorM", sensitivity.BaseError).
		Float64("deltaX", sensitivity.DeltaX).
		Float64("deltaY", sensitivity.DeltaY).
		Float64("deltaZ", sensitivity.DeltaZ).
		Float64("smallestVariance", variance).
		Msg("calibration sensitivity probe")

	if sensitivity.Reject {
		c.Ctx.Log(fmt.Sprintf("Rejecting low quality calibration: RMS error %.4f m exceeds threshold", sensitivity.BaseError))
		c.Ctx.samples = nil
		c.Ctx.State = StateNone
		return
	}

	c.Ctx.CalibratedRotation = rotation
	c.Ctx.CalibratedTranslation = translationCm

	if c.Driver != nil {
		req := SetDeviceTransformRequest{
			DeviceID:    c.Ctx.TargetID,
			Enabled:     true,
			Translation: vrTrans,
			Rotation:    rotQuat,
			Scale:       c.Ctx.calibratedScale,
		}
		if err := c.Driver.SetDeviceTransform(ctx, req); err != nil {
			c.Ctx.Log(fmt.Sprintf("Failed to send calibrated transform to offset driver: %v", err))
		}
	}

	c.Ctx.ValidProfile = true
	if c.Store != nil {
		if err := c.Store.Save(ctx, c.Ctx.Snapshot()); err != nil {
			c.Ctx.Log(fmt.Sprintf("Failed to persist calibration profile: %v", err))
		}
	}

	c.Ctx.Log("Calibration committed")
	c.Ctx.samples = nil
	c.Ctx.State = StateNone
}
