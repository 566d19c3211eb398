package underwrite

import (
	"land_residual/pkg/core/policy"
	"land_residual/pkg/models"
)

// ulaTax applies a tiered documentary transfer tax. The rate of the highest
// tier whose threshold the price meets applies to the entire price — the
// schedule is cliff-style, not marginal.
func ulaTax(tiers []policy.ULATier, price float64) float64 {
	rate := 0.0
	bestThreshold := -1.0
	for _, t := range tiers {
		if price >= t.Threshold && t.Threshold > bestThreshold {
			bestThreshold = t.Threshold
			rate = t.Rate
		}
	}
	return price * rate
}

// ULAThreshold returns the lowest tier threshold, the price at which the
// tax first attaches. Zero when no schedule is configured. The sanity
// checker uses it to flag deals priced into the tax without the flag set.
func ULAThreshold(tiers []policy.ULATier) float64 {
	lowest := 0.0
	for i, t := range tiers {
		if i == 0 || t.Threshold < lowest {
			lowest = t.Threshold
		}
	}
	return lowest
}

// linkageFee charges the affordable-housing linkage fee on gross residential
// area, waived when the on-site set-aside meets the exemption fraction.
func linkageFee(in models.DealInputs, pol policy.Policy, grossBuildingSF float64) float64 {
	if pol.AHLF.ExemptAbovePct > 0 && in.AffordablePct >= pol.AHLF.ExemptAbovePct {
		return 0
	}
	return grossBuildingSF * pol.AHLF.FeePerSF
}
