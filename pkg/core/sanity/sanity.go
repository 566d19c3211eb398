// Package sanity runs the advisory rule set over one (inputs, calculations)
// pair. Every applicable rule fires on every call, in definition order; the
// presentation layer may re-sort by severity but the engine never does.
package sanity

import (
	"fmt"
	"strings"

	"land_residual/pkg/core/policy"
	"land_residual/pkg/core/underwrite"
	"land_residual/pkg/models"
)

// CheckType grades a finding.
type CheckType string

const (
	TypeInfo    CheckType = "info"
	TypeWarning CheckType = "warning"
	TypeError   CheckType = "error"
)

// Check is one advisory finding. Stateless: regenerated fresh each call,
// identified only by its rule ID.
type Check struct {
	ID      string    `json:"id"`
	Type    CheckType `json:"type"`
	Message string    `json:"message"`
}

type rule func(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check

// rules fire in this order. Independent by construction: no rule reads
// another's output.
var rules = []rule{
	checkDevSpread,
	checkExpenseRatio,
	checkGRM,
	checkNegativeResiduals,
	checkULAApplicability,
	checkVacancy,
	checkHardContingency,
	checkCommonArea,
	checkParkingRatio,
	checkEquityShare,
}

// Generate evaluates every rule against the pair. Pure; the returned order
// is the rule-definition order.
func Generate(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) []Check {
	checks := []Check{}
	for _, r := range rules {
		if chk := r(in, c, pol); chk != nil {
			checks = append(checks, *chk)
		}
	}
	return checks
}

func checkDevSpread(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if !c.DevSpreadBps.Defined {
		return nil
	}
	if c.DevSpreadBps.Value < pol.Sanity.DevSpreadMinBps {
		return &Check{
			ID:   "dev-spread-thin",
			Type: TypeWarning,
			Message: fmt.Sprintf("Development spread of %.0f bps over the next-best rental method is below the %.0f bps floor; the primary method's pricing edge is thin.",
				c.DevSpreadBps.Value, pol.Sanity.DevSpreadMinBps),
		}
	}
	return nil
}

func checkExpenseRatio(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if !c.ExpenseRatio.Defined {
		return nil
	}
	if c.ExpenseRatio.Value > pol.Sanity.ExpenseRatioMax {
		return &Check{
			ID:   "expense-ratio-high",
			Type: TypeWarning,
			Message: fmt.Sprintf("Operating expenses run %.1f%% of EGI, above the %.0f%% ceiling; re-check per-unit expense lines and the tax basis.",
				c.ExpenseRatio.Value*100, pol.Sanity.ExpenseRatioMax*100),
		}
	}
	return nil
}

func checkGRM(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if !c.GRM.Defined {
		return nil
	}
	if c.GRM.Value < pol.Sanity.GRMLow || c.GRM.Value > pol.Sanity.GRMHigh {
		return &Check{
			ID:   "grm-out-of-band",
			Type: TypeWarning,
			Message: fmt.Sprintf("Gross rent multiplier of %.1f sits outside the typical %.0f-%.0f band; rents and exit cap may be inconsistent.",
				c.GRM.Value, pol.Sanity.GRMLow, pol.Sanity.GRMHigh),
		}
	}
	return nil
}

func checkNegativeResiduals(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	var negative []string
	for _, mr := range c.Methods {
		if mr.Residual.Defined && mr.Residual.Value < 0 {
			negative = append(negative, mr.Label)
		}
	}
	if len(negative) == 0 {
		return nil
	}
	return &Check{
		ID:   "negative-residual",
		Type: TypeWarning,
		Message: fmt.Sprintf("Land residual is negative under: %s. The deal does not pencil under those methods at current assumptions.",
			strings.Join(negative, "; ")),
	}
}

func checkULAApplicability(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	threshold := underwrite.ULAThreshold(pol.ULASchedule)
	if threshold <= 0 || in.ApplyULA {
		return nil
	}
	if c.GrossSaleProceeds >= threshold {
		return &Check{
			ID:   "ula-not-applied",
			Type: TypeInfo,
			Message: fmt.Sprintf("Gross sale proceeds of $%.0f cross the $%.0f ULA threshold but the ULA flag is off; the condo residual may be overstated.",
				c.GrossSaleProceeds, threshold),
		}
	}
	return nil
}

func checkVacancy(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if in.Vacancy > pol.Sanity.VacancyHigh {
		return &Check{
			ID:   "vacancy-high",
			Type: TypeInfo,
			Message: fmt.Sprintf("Vacancy assumption of %.1f%% is unusually high for stabilized underwriting.",
				in.Vacancy*100),
		}
	}
	return nil
}

func checkHardContingency(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if in.HardCostContingency < pol.Sanity.HardContingencyMin {
		return &Check{
			ID:   "hard-contingency-thin",
			Type: TypeInfo,
			Message: fmt.Sprintf("Hard-cost contingency of %.1f%% is below the customary %.0f%% minimum.",
				in.HardCostContingency*100, pol.Sanity.HardContingencyMin*100),
		}
	}
	return nil
}

func checkCommonArea(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if in.CommonAreaFactor < pol.Sanity.CommonAreaLow || in.CommonAreaFactor > pol.Sanity.CommonAreaHigh {
		return &Check{
			ID:   "common-area-atypical",
			Type: TypeInfo,
			Message: fmt.Sprintf("Common-area factor of %.1f%% falls outside the typical %.0f%%-%.0f%% range for multifamily product.",
				in.CommonAreaFactor*100, pol.Sanity.CommonAreaLow*100, pol.Sanity.CommonAreaHigh*100),
		}
	}
	return nil
}

func checkParkingRatio(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if in.Units <= 0 {
		return nil
	}
	ratio := in.ParkingSpacesBase / in.Units
	if ratio < 1 {
		return &Check{
			ID:   "parking-under-one",
			Type: TypeInfo,
			Message: fmt.Sprintf("Parking ratio of %.2f spaces/unit is below 1.0; confirm the zoning allows the reduction.",
				ratio),
		}
	}
	return nil
}

func checkEquityShare(in models.DealInputs, c underwrite.DealCalculations, pol policy.Policy) *Check {
	if in.EquityPctOfTotalCost < pol.Sanity.EquityPctLow || in.EquityPctOfTotalCost > pol.Sanity.EquityPctHigh {
		return &Check{
			ID:   "equity-share-atypical",
			Type: TypeInfo,
			Message: fmt.Sprintf("Equity at %.0f%% of total cost sits outside the %.0f%%-%.0f%% range construction lenders typically require.",
				in.EquityPctOfTotalCost*100, pol.Sanity.EquityPctLow*100, pol.Sanity.EquityPctHigh*100),
		}
	}
	return nil
}
