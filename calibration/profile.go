package calibration

import "context"

// ScanAndApplyProfile applies the active transform to every matching
// target-universe device and clears the offset elsewhere, per spec.md
// §4.7. It mutates c.Ctx.Enabled and issues one SetDeviceTransform request
// per non-Invalid device slot.
func (c *Calibrator) ScanAndApplyProfile(ctx context.Context) {
	enabled := c.Ctx.ValidProfile
	c.Ctx.Enabled = enabled

	for id := 0; id < MaxDevices; id++ {
		if c.Tracking.DeviceClass(id) == DeviceClassInvalid {
			continue
		}

		if !enabled {
			c.send(ctx, IdentityRequest(id, false))
			continue
		}

		trackingSystem, err := c.Tracking.StringProperty(id, PropTrackingSystemName)
		if err != nil {
			c.send(ctx, IdentityRequest(id, false))
			continue
		}

		if id == 0 {
			if trackingSystem != c.Ctx.ReferenceTrackingSystem {
				enabled = false
				c.Ctx.Enabled = false
			}
			c.send(ctx, IdentityRequest(id, false))
			continue
		}

		if trackingSystem != c.Ctx.TargetTrackingSystem {
			c.send(ctx, IdentityRequest(id, false))
			continue
		}

		c.send(ctx, SetDeviceTransformRequest{
			DeviceID:    id,
			Enabled:     true,
			Translation: c.Ctx.CalibratedTranslation.Scale(1.0 / 100),
			Rotation:    c.Ctx.CalibratedRotation.ToQuaternion(),
			Scale:       c.Ctx.calibratedScale,
		})
	}

	if enabled && c.Ctx.Chaperone.Valid && c.Ctx.Chaperone.AutoApply {
		c.maybeRestoreChaperone(ctx)
	}
}

func (c *Calibrator) send(ctx context.Context, req SetDeviceTransformRequest) {
	if c.Driver == nil {
		return
	}
	if err := c.Driver.SetDeviceTransform(ctx, req); err != nil {
		c.Ctx.Log("Failed to send device transform: " + err.Error())
	}
}
