// Package profilestore implements calibration.ProfileStore by reading and
// writing a YAML file, following the teacher's
// cmd/spectrometer/internal/config Loader/Saver split. Only path-based
// Load and Save are provided; there are no reader/writer variants.
package profilestore

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/spacecalibrator/calibration"
	"github.com/itohio/spacecalibrator/mathutil"
)

// Store persists a calibration.Profile to a YAML file at Path.
type Store struct {
	Path string
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{Path: path}
}

type wireChaperone struct {
	Quads        [][4][3]float64 `yaml:"quads,omitempty"`
	StandingRot  [3][3]float64   `yaml:"standing_rotation"`
	StandingTr   [3]float64      `yaml:"standing_translation"`
	PlayAreaSize [2]float64      `yaml:"play_area_size"`
	Valid        bool            `yaml:"valid"`
	AutoApply    bool            `yaml:"auto_apply"`
}

type wireProfile struct {
	ReferenceID             int            `yaml:"reference_id"`
	TargetID                int            `yaml:"target_id"`
	ReferenceTrackingSystem string         `yaml:"reference_tracking_system"`
	TargetTrackingSystem    string         `yaml:"target_tracking_system"`
	CalibratedRotation      [3]float64     `yaml:"calibrated_rotation_deg"`
	CalibratedTranslation   [3]float64     `yaml:"calibrated_translation_cm"`
	CalibratedScale         float64        `yaml:"calibrated_scale"`
	ValidProfile            bool           `yaml:"valid_profile"`
	Chaperone               wireChaperone  `yaml:"chaperone"`
}

func toWire(p *calibration.Profile) wireProfile {
	quads := make([][4][3]float64, len(p.Chaperone.Quads))
	for i, q := range p.Chaperone.Quads {
		for c := 0; c < 4; c++ {
			quads[i][c] = [3]float64(q[c])
		}
	}
	return wireProfile{
		ReferenceID:             p.ReferenceID,
		TargetID:                p.TargetID,
		ReferenceTrackingSystem: p.ReferenceTrackingSystem,
		TargetTrackingSystem:    p.TargetTrackingSystem,
		CalibratedRotation:      [3]float64(p.CalibratedRotation),
		CalibratedTranslation:   [3]float64(p.CalibratedTranslation),
		CalibratedScale:         p.CalibratedScale,
		ValidProfile:            p.ValidProfile,
		Chaperone: wireChaperone{
			Quads:        quads,
			StandingRot:  [3][3]float64(p.Chaperone.StandingPose.Rot),
			StandingTr:   [3]float64(p.Chaperone.StandingPose.Trans),
			PlayAreaSize: p.Chaperone.PlayAreaSize,
			Valid:        p.Chaperone.Valid,
			AutoApply:    p.Chaperone.AutoApply,
		},
	}
}

func (w wireProfile) toProfile() *calibration.Profile {
	quads := make([]calibration.Quad, len(w.Chaperone.Quads))
	for i, q := range w.Chaperone.Quads {
		for c := 0; c < 4; c++ {
			quads[i][c] = q[c]
		}
	}
	return &calibration.Profile{
		ReferenceID:             w.ReferenceID,
		TargetID:                w.TargetID,
		ReferenceTrackingSystem: w.ReferenceTrackingSystem,
		TargetTrackingSystem:    w.TargetTrackingSystem,
		CalibratedRotation:      w.CalibratedRotation,
		CalibratedTranslation:   w.CalibratedTranslation,
		CalibratedScale:         w.CalibratedScale,
		ValidProfile:            w.ValidProfile,
		Chaperone: calibration.ChaperoneSnapshot{
			Quads:        quads,
			StandingPose: mathutil.Pose{Rot: mathutil.Mat3(w.Chaperone.StandingRot), Trans: mathutil.Vec3(w.Chaperone.StandingTr)},
			PlayAreaSize: w.Chaperone.PlayAreaSize,
			Valid:        w.Chaperone.Valid,
			AutoApply:    w.Chaperone.AutoApply,
		},
	}
}

// Load reads the profile from Path. A missing file is not an error: it
// returns an empty profile with ValidProfile=false and CalibratedScale=1,
// matching cold-start
// (spec.md S1).
func (s *Store) Load(ctx context.Context) (*calibration.Profile, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return &calibration.Profile{CalibratedScale: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profilestore: read %s: %w", s.Path, err)
	}

	var w wireProfile
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("profilestore: unmarshal %s: %w", s.Path, err)
	}
	return w.toProfile(), nil
}

// Save writes p to Path, overwriting any existing content.
func (s *Store) Save(ctx context.Context, p *calibration.Profile) error {
	data, err := yaml.Marshal(toWire(p))
	if err != nil {
		return fmt.Errorf("profilestore: marshal: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("profilestore: write %s: %w", s.Path, err)
	}
	return nil
}
