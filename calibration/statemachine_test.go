package calibration_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/spacecalibrator/adapters/mock"
	"github.com/itohio/spacecalibrator/calibration"
	"github.com/itohio/spacecalibrator/mathutil"
)

func newHarness(sampleCount int) (*calibration.Calibrator, *calibration.CalibrationContext, *mock.TrackingRuntime, *mock.OffsetDriver, *mock.ProfileStore) {
	ctx := calibration.NewContext(sampleCount)
	tracking := mock.NewTrackingRuntime()
	driver := mock.NewOffsetDriver()
	store := &mock.ProfileStore{}
	cal := calibration.NewCalibrator(ctx, tracking, mock.NewChaperoneRuntime(), driver, store)
	return cal, ctx, tracking, driver, store
}

// S1 — Cold start, no profile: one tick scans devices, target-universe
// devices get identity-disabled offsets, HMD gets identity.
func TestScenarioColdStartNoProfile(t *testing.T) {
	cal, ctx, tracking, driver, _ := newHarness(40)
	tracking.SetDevice(0, mathutil.IdentityPose(), calibration.DeviceClassHMD, "lighthouse", "hmd-serial")
	tracking.SetDevice(1, mathutil.IdentityPose(), calibration.DeviceClassGenericTracker, "other-universe", "tracker-serial")

	require.NoError(t, cal.Tick(context.Background(), 1.0))

	assert.False(t, ctx.ValidProfile)
	assert.False(t, ctx.Enabled)
	req0, ok := driver.ByDevice[0]
	require.True(t, ok)
	assert.False(t, req0.Enabled)
	req1, ok := driver.ByDevice[1]
	require.True(t, ok)
	assert.False(t, req1.Enabled)
}

// S2 — Begin rejects due to untracked reference device.
func TestScenarioBeginRejectsUntrackedReference(t *testing.T) {
	cal, ctx, tracking, _, _ := newHarness(40)
	tracking.SetDevice(3, mathutil.IdentityPose(), calibration.DeviceClassHMD, "lighthouse", "ref")
	tracking.SetInvalid(3)
	ctx.ReferenceID = 3
	ctx.TargetID = 1

	cal.StartCalibration()
	require.NoError(t, cal.Tick(context.Background(), 1.0))

	assert.Equal(t, calibration.StateNone, ctx.State)
	found := false
	for _, m := range ctx.Messages {
		if strings.Contains(m, "Reference device is not tracking") {
			found = true
		}
	}
	assert.True(t, found, "expected rejection message, got %v", ctx.Messages)
}

// S3 — Successful calibration over 40 synthetic samples.
func TestScenarioSuccessfulCalibration(t *testing.T) {
	const n = 40
	cal, ctx, tracking, driver, store := newHarness(n)

	rStar := mathutil.EulerZYX{30, 20, 10}.ToMat3()
	tStar := mathutil.Vec3{0.10, 0.20, -0.05}

	ctx.ReferenceID = 0
	ctx.TargetID = 1
	tracking.SetDevice(0, mathutil.IdentityPose(), calibration.DeviceClassHMD, "lighthouse", "hmd")
	tracking.SetDevice(1, mathutil.IdentityPose(), calibration.DeviceClassGenericTracker, "lighthouse", "tracker")

	cal.StartCalibration()
	now := 1.0
	require.NoError(t, cal.Tick(context.Background(), now)) // Begin -> Rotation

	rStarT := rStar.Transpose()
	for i := 0; i < n; i++ {
		z := float64(i%7) * 13.0
		y := float64((i*3)%11) * 9.0
		x := float64((i*5+2)%7) * 11.0
		trans := mathutil.Vec3{float64(i%4) * 0.3, float64((i*2)%5) * 0.25, float64((i*3)%6) * 0.2}
		refPose := mathutil.Pose{Rot: mathutil.EulerZYX{z, y, x}.ToMat3(), Trans: trans}
		targetPose := mathutil.Pose{
			Rot:   rStarT.Mul(refPose.Rot),
			Trans: rStarT.MulVec3(refPose.Trans.Sub(tStar)),
		}
		tracking.SetDevice(0, refPose, calibration.DeviceClassHMD, "lighthouse", "hmd")
		tracking.SetDevice(1, targetPose, calibration.DeviceClassGenericTracker, "lighthouse", "tracker")

		now += 0.1
		require.NoError(t, cal.Tick(context.Background(), now))
	}

	require.Equal(t, calibration.StateNone, ctx.State)
	assert.True(t, ctx.ValidProfile)

	want := mathutil.Mat3ToEulerZYX(rStar)
	assert.InDelta(t, want[0], ctx.CalibratedRotation[0], 0.5)
	assert.InDelta(t, want[1], ctx.CalibratedRotation[1], 0.5)
	assert.InDelta(t, want[2], ctx.CalibratedRotation[2], 0.5)

	wantCm := tStar.Scale(100)
	assert.InDelta(t, wantCm[0], ctx.CalibratedTranslation[0], 0.5)
	assert.InDelta(t, wantCm[1], ctx.CalibratedTranslation[1], 0.5)
	assert.InDelta(t, wantCm[2], ctx.CalibratedTranslation[2], 0.5)

	req, ok := driver.ByDevice[1]
	require.True(t, ok)
	assert.True(t, req.Enabled)
	require.NotNil(t, store.Profile)
	assert.True(t, store.Profile.ValidProfile)
}

// S4 — Rejected low-quality calibration: the reference rotates while the
// target never does, so no delta-rotation pair passes the gate and the solve
// is rejected, leaving validProfile untouched and logging the rejection.
func TestScenarioRejectsLowQualityCalibration(t *testing.T) {
	const n = 10
	cal, ctx, tracking, _, _ := newHarness(n)
	ctx.ReferenceID = 0
	ctx.TargetID = 1
	tracking.SetDevice(0, mathutil.IdentityPose(), calibration.DeviceClassHMD, "lighthouse", "hmd")
	tracking.SetDevice(1, mathutil.IdentityPose(), calibration.DeviceClassGenericTracker, "lighthouse", "tracker")

	cal.StartCalibration()
	now := 1.0
	require.NoError(t, cal.Tick(context.Background(), now))

	for i := 0; i < n; i++ {
		z := float64(i%7) * 13.0
		refPose := mathutil.Pose{Rot: mathutil.EulerZYX{z, 0, 0}.ToMat3(), Trans: mathutil.Vec3{float64(i) * 0.05, 0, 0}}
		targetPose := mathutil.Pose{
			Rot:   mathutil.Identity3(),
			Trans: mathutil.Vec3{0.3 * float64(i%3-1), 0.2, -0.4},
		}
		tracking.SetDevice(0, refPose, calibration.DeviceClassHMD, "lighthouse", "hmd")
		tracking.SetDevice(1, targetPose, calibration.DeviceClassGenericTracker, "lighthouse", "tracker")

		now += 0.1
		require.NoError(t, cal.Tick(context.Background(), now))
	}

	assert.Equal(t, calibration.StateNone, ctx.State)
	assert.False(t, ctx.ValidProfile)
	found := false
	for _, m := range ctx.Messages {
		if strings.Contains(m, "Rejecting low quality calibration") {
			found = true
		}
	}
	assert.True(t, found, "expected rejection message, got %v", ctx.Messages)
}

// S5 — HMD-universe mismatch: the HMD's tracking system no longer matches
// the stored reference tracking system, so the scan disables everything.
func TestScenarioHMDUniverseMismatch(t *testing.T) {
	cal, ctx, tracking, driver, _ := newHarness(40)
	ctx.ValidProfile = true
	ctx.ReferenceTrackingSystem = "lighthouse-a"
	ctx.TargetTrackingSystem = "lighthouse-b"

	tracking.SetDevice(0, mathutil.IdentityPose(), calibration.DeviceClassHMD, "lighthouse-z", "hmd")
	tracking.SetDevice(1, mathutil.IdentityPose(), calibration.DeviceClassGenericTracker, "lighthouse-b", "tracker")

	require.NoError(t, cal.Tick(context.Background(), 1.0))

	assert.False(t, ctx.Enabled)
	req0, ok := driver.ByDevice[0]
	require.True(t, ok)
	assert.False(t, req0.Enabled)
	req1, ok := driver.ByDevice[1]
	require.True(t, ok)
	assert.False(t, req1.Enabled, "every device must be disabled for the remainder of the scan once the HMD universe mismatches")
}

// S6 — Chaperone restoration when the live quad count no longer matches
// the stored snapshot.
func TestScenarioChaperoneRestoration(t *testing.T) {
	cal, ctx, tracking, _, _ := newHarness(40)
	ctx.ValidProfile = true
	ctx.ReferenceTrackingSystem = "lighthouse"
	ctx.TargetTrackingSystem = "lighthouse"
	ctx.Chaperone.Valid = true
	ctx.Chaperone.AutoApply = true
	storedQuads := make([]calibration.Quad, 8)
	ctx.Chaperone.Quads = storedQuads

	chaperone := mock.NewChaperoneRuntime() // live quad count starts at 0
	cal.Chaperone = chaperone

	tracking.SetDevice(0, mathutil.IdentityPose(), calibration.DeviceClassHMD, "lighthouse", "hmd")
	tracking.SetDevice(1, mathutil.IdentityPose(), calibration.DeviceClassGenericTracker, "lighthouse", "tracker")

	require.NoError(t, cal.Tick(context.Background(), 1.0))

	assert.Equal(t, 1, chaperone.Commits)
	assert.Equal(t, len(storedQuads), len(chaperone.Live))
}

// Property 7 — ScanAndApplyProfile is idempotent: unchanged context issues
// the same requests on successive calls.
func TestScanAndApplyProfileIdempotent(t *testing.T) {
	cal, ctx, tracking, driver, _ := newHarness(40)
	ctx.ValidProfile = true
	ctx.ReferenceTrackingSystem = "lighthouse"
	ctx.TargetTrackingSystem = "lighthouse"
	ctx.CalibratedRotation = mathutil.EulerZYX{1, 2, 3}
	ctx.CalibratedTranslation = mathutil.Vec3{4, 5, 6}
	tracking.SetDevice(0, mathutil.IdentityPose(), calibration.DeviceClassHMD, "lighthouse", "hmd")
	tracking.SetDevice(1, mathutil.IdentityPose(), calibration.DeviceClassGenericTracker, "lighthouse", "tracker")

	cal.ScanAndApplyProfile(context.Background())
	first := append([]calibration.SetDeviceTransformRequest(nil), driver.Requests...)

	driver.Requests = nil
	cal.ScanAndApplyProfile(context.Background())
	second := driver.Requests

	assert.Equal(t, first, second)
}

// Property 8 — two ticks within 50ms: the second is a no-op.
func TestTickRateLimit(t *testing.T) {
	cal, ctx, _, driver, _ := newHarness(40)

	require.NoError(t, cal.Tick(context.Background(), 1.000))
	firstState := ctx.State
	requestsAfterFirst := len(driver.Requests)

	require.NoError(t, cal.Tick(context.Background(), 1.030))
	assert.Equal(t, firstState, ctx.State)
	assert.Equal(t, requestsAfterFirst, len(driver.Requests), "a tick within 50ms of the last must not re-scan")
}
