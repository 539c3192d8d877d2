package calibration

import "context"

// maybeRestoreChaperone re-applies the stored chaperone geometry if the
// live collision-bounds quad count no longer matches it, per spec.md §4.7
// step 3.
func (c *Calibrator) maybeRestoreChaperone(ctx context.Context) {
	if c.Chaperone == nil {
		return
	}
	live, err := c.Chaperone.LiveCollisionBounds()
	if err != nil {
		c.Ctx.Log("Failed to read live chaperone bounds: " + err.Error())
		return
	}
	if len(live) == len(c.Ctx.Chaperone.Quads) {
		return
	}
	if err := c.ApplyChaperoneBounds(ctx); err != nil {
		c.Ctx.Log("Failed to restore chaperone bounds: " + err.Error())
	}
}

// ApplyChaperoneBounds writes the stored chaperone geometry back into the
// runtime's working copy and commits it live, per spec.md §6's
// VRChaperoneSetup sequence.
func (c *Calibrator) ApplyChaperoneBounds(ctx context.Context) error {
	if c.Chaperone == nil {
		return nil
	}
	if err := c.Chaperone.RevertWorkingCopy(); err != nil {
		return err
	}
	if err := c.Chaperone.SetWorkingCollisionBounds(c.Ctx.Chaperone.Quads); err != nil {
		return err
	}
	if err := c.Chaperone.SetWorkingStandingPose(c.Ctx.Chaperone.StandingPose); err != nil {
		return err
	}
	if err := c.Chaperone.SetWorkingPlayAreaSize(c.Ctx.Chaperone.PlayAreaSize); err != nil {
		return err
	}
	return c.Chaperone.CommitWorkingCopy()
}
