package campaign

// WantsPlatformShare is the routing half of the commission decision: it says
// whether this sale should attempt to settle to the platform. The other half,
// actually claiming a slice of the goal, is a conditional atomic increment on
// the campaign row, executed in the same unit of work, so concurrent checkouts
// cannot all pass the goal check.
//
// draw is a uniform value in [0, 1) supplied by the caller.
func (c *Campaign) WantsPlatformShare(draw float64) bool {
	if c.commissionReservedCents >= c.commissionGoalCents {
		return false
	}
	return draw <= c.commissionPercent
}
