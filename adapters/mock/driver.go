package mock

import (
	"context"

	"github.com/itohio/spacecalibrator/calibration"
)

// OffsetDriver records every SetDeviceTransform request it receives,
// keyed by device ID (last request wins), for assertions in tests.
type OffsetDriver struct {
	Requests []calibration.SetDeviceTransformRequest
	ByDevice map[int]calibration.SetDeviceTransformRequest
}

func NewOffsetDriver() *OffsetDriver {
	return &OffsetDriver{ByDevice: map[int]calibration.SetDeviceTransformRequest{}}
}

func (d *OffsetDriver) SetDeviceTransform(ctx context.Context, req calibration.SetDeviceTransformRequest) error {
	d.Requests = append(d.Requests, req)
	d.ByDevice[req.DeviceID] = req
	return nil
}

// ProfileStore is an in-memory ProfileStore, for tests that do not need
// real file persistence.
type ProfileStore struct {
	Profile *calibration.Profile
}

func (s *ProfileStore) Load(ctx context.Context) (*calibration.Profile, error) {
	return s.Profile, nil
}

func (s *ProfileStore) Save(ctx context.Context, p *calibration.Profile) error {
	s.Profile = p
	return nil
}
