package calibration

import "github.com/itohio/spacecalibrator/mathutil"

// State is one of the four calibration states driven by CalibrationTick.
type State int

const (
	StateNone State = iota
	StateEditing
	StateBegin
	StateRotation
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateEditing:
		return "Editing"
	case StateBegin:
		return "Begin"
	case StateRotation:
		return "Rotation"
	default:
		return "Unknown"
	}
}

// maxMessages bounds the host-visible message ring, an ambient robustness
// detail carried from original_source/ (see SPEC_FULL.md §6).
const maxMessages = 50

// CalibrationContext is the single process-wide record described in
// spec.md §3. It is owned by the tick thread; callers on other goroutines
// must add their own mutex at the boundary (spec.md §5).
type CalibrationContext struct {
	State State

	ReferenceID int
	TargetID    int

	DevicePoses [MaxDevices]DevicePose

	ReferenceTrackingSystem string
	TargetTrackingSystem    string

	CalibratedRotation    mathutil.EulerZYX
	CalibratedTranslation mathutil.Vec3 // centimetres
	calibratedScale       float64

	ValidProfile bool
	Enabled      bool

	TimeLastTick         float64
	TimeLastScan         float64
	WantedUpdateInterval float64

	Chaperone ChaperoneSnapshot

	Messages []string

	// sampleCount is the externally configured target sample count for a
	// Rotation-state session (spec.md §4.2's CalCtx.SampleCount()).
	sampleCount int
	samples     []Sample
}

// NewContext constructs a context with the given target sample count and
// unit calibrated scale, per spec.md §3's default.
func NewContext(sampleCount int) *CalibrationContext {
	return &CalibrationContext{
		State:           StateNone,
		calibratedScale: 1,
		sampleCount:     sampleCount,
	}
}

// SampleCount returns the configured target sample count for a Rotation
// session.
func (c *CalibrationContext) SampleCount() int { return c.sampleCount }

// SetSampleCount updates the configured target sample count.
func (c *CalibrationContext) SetSampleCount(n int) { c.sampleCount = n }

// CalibratedScale returns the externally configured uniform scale factor.
// It is read by ScanAndApplyProfile but never written by the solver
// (spec.md §9 Open Question; see DESIGN.md for the resolution).
func (c *CalibrationContext) CalibratedScale() float64 { return c.calibratedScale }

// SetCalibratedScale sets the externally configured scale factor, for a
// host UI or config loader to apply.
func (c *CalibrationContext) SetCalibratedScale(s float64) { c.calibratedScale = s }

// Log appends a message to the host-visible message ring, capping it at
// maxMessages entries (oldest dropped first).
func (c *CalibrationContext) Log(msg string) {
	c.Messages = append(c.Messages, msg)
	if len(c.Messages) > maxMessages {
		c.Messages = c.Messages[len(c.Messages)-maxMessages:]
	}
}

// ApplyProfile loads solved calibration fields from a persisted Profile,
// e.g. at startup.
func (c *CalibrationContext) ApplyProfile(p *Profile) {
	c.ReferenceID = p.ReferenceID
	c.TargetID = p.TargetID
	c.ReferenceTrackingSystem = p.ReferenceTrackingSystem
	c.TargetTrackingSystem = p.TargetTrackingSystem
	c.CalibratedRotation = p.CalibratedRotation
	c.CalibratedTranslation = p.CalibratedTranslation
	c.calibratedScale = p.CalibratedScale
	c.ValidProfile = p.ValidProfile
	c.Chaperone = p.Chaperone
}

// Snapshot builds the persistable Profile from the current context state.
func (c *CalibrationContext) Snapshot() *Profile {
	return &Profile{
		ReferenceID:             c.ReferenceID,
		TargetID:                c.TargetID,
		ReferenceTrackingSystem: c.ReferenceTrackingSystem,
		TargetTrackingSystem:    c.TargetTrackingSystem,
		CalibratedRotation:      c.CalibratedRotation,
		CalibratedTranslation:   c.CalibratedTranslation,
		CalibratedScale:         c.calibratedScale,
		ValidProfile:            c.ValidProfile,
		Chaperone:               c.Chaperone,
	}
}
