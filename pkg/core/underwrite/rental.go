package underwrite

import (
	"math"

	"land_residual/pkg/core/finmath"
	"land_residual/pkg/core/policy"
	"land_residual/pkg/models"
)

const (
	landSolveTolerance = 1e-6
	landSolveMaxIter   = 200
)

// rentalOps carries the stabilized operating statement shared by the five
// rental residual solves.
type rentalOps struct {
	grossRent float64 // annual, market + affordable
	egi       float64
	opex      float64
	noi       float64
}

// rentalOperations builds EGI and NOI. Affordable units price off the policy
// AMI rent table net of the utility allowance instead of market rent.
// Property taxes accrue on the dev-cost basis ex land to keep the statement
// non-circular in the unknown being solved for.
func rentalOperations(in models.DealInputs, pol policy.Policy, totalDevCostExLand float64) rentalOps {
	affordableUnits := in.Units * in.AffordablePct
	marketUnits := in.Units - affordableUnits

	marketRent := marketUnits * in.AvgUnitSF * in.MarketRentPSF * 12

	affordableMonthly := pol.AMIRent(in.AffordableLevel) - in.UtilityAllowance
	if affordableMonthly < 0 {
		affordableMonthly = 0
	}
	affordableRent := affordableUnits * affordableMonthly * 12

	grossRent := marketRent + affordableRent
	otherIncome := in.Units * in.OtherIncome * 12

	egi := grossRent*(1-in.Vacancy-in.Concessions) + otherIncome

	opex := egi*in.PropertyManagement +
		in.Units*(in.InsurancePerUnit+
			in.RepairsMaintenancePerUnit+
			in.UtilitiesCommonPerUnit+
			in.TurnoverPerUnit+
			in.GeneralAdminPerUnit+
			in.ReservesPerUnit) +
		totalDevCostExLand*in.PropertyTaxRate

	return rentalOps{
		grossRent: grossRent,
		egi:       egi,
		opex:      opex,
		noi:       egi - opex,
	}
}

// solveDirectYield rearranges NOI / (land + TDC) = target. Used by both the
// yield-on-cost and unlevered return-on-cost methods; they differ only in
// which target they must hit.
func solveDirectYield(noi, target, totalDevCostExLand float64) Metric {
	if target == 0 {
		return Undef()
	}
	return Def(noi/target - totalDevCostExLand)
}

// solveDevMargin rearranges (SV - TC) / TC = target into TC = SV / (1 +
// target), so the realized margin on cost equals the target exactly.
func solveDevMargin(stabilized Metric, target, totalDevCostExLand float64) Metric {
	if !stabilized.Defined || 1+target == 0 {
		return Undef()
	}
	return Def(stabilized.Value/(1+target) - totalDevCostExLand)
}

// leveredFlows simulates the hold-period equity cash-flow stream for a
// candidate land value: acquisition at t=0, NOI less permanent debt service
// each year, stabilized sale net of selling costs and the remaining debt
// balance at exit. Returns ok=false when the capital structure degenerates
// (non-positive total cost, no equity, or no exit cap to value the sale).
func leveredFlows(in models.DealInputs, noi, totalDevCostExLand, land float64) (flows []float64, equity float64, ok bool) {
	totalCost := land + totalDevCostExLand
	if totalCost <= 0 || in.EquityPctOfTotalCost <= 0 || in.ExitCapRate <= 0 {
		return nil, 0, false
	}

	hold := in.HoldPeriodYears
	if hold < 1 {
		hold = 1
	}

	equity = totalCost * in.EquityPctOfTotalCost
	debt := totalCost - equity
	debtService := debt * finmath.MortgageConstant(in.PermLoanRate, in.PermAmortYears)

	flows = make([]float64, hold+1)
	flows[0] = -equity
	for y := 1; y <= hold; y++ {
		flows[y] = finmath.Compound(noi, in.NOIGrowth, y-1) - debtService
	}

	exitNOI := finmath.Compound(noi, in.NOIGrowth, hold)
	exitValue := exitNOI / in.ExitCapRate
	netSale := exitValue*(1-in.ExitSellingCostPct) -
		finmath.RemainingBalance(debt, in.PermLoanRate, in.PermAmortYears, hold)
	flows[hold] += netSale

	return flows, equity, true
}

// landBracket bounds the bisection over candidate land values. The lower
// edge keeps the total-cost basis barely positive (returns blow up toward
// it); the upper edge is generous enough that any achievable target roots
// inside it.
func landBracket(noi, totalDevCostExLand float64) (lo, hi float64) {
	lo = -totalDevCostExLand + 1.0
	hi = totalDevCostExLand*10 + math.Abs(noi)*100 + 1_000_000
	return lo, hi
}

// solveEquityMultiple finds the land value at which realized distributions
// over invested equity equal the target multiple. Monotone decreasing in
// land, so bisection; no sign change in the bracket means the target is
// unreachable and the metric is undefined.
func solveEquityMultiple(in models.DealInputs, noi, totalDevCostExLand float64) Metric {
	target := in.TargetEquityMultiple
	f := func(land float64) float64 {
		flows, equity, ok := leveredFlows(in, noi, totalDevCostExLand, land)
		if !ok {
			return math.Inf(1)
		}
		var distributions float64
		for _, cf := range flows[1:] {
			distributions += cf
		}
		return distributions/equity - target
	}

	if in.EquityPctOfTotalCost <= 0 || in.ExitCapRate <= 0 {
		return Undef()
	}

	lo, hi := landBracket(noi, totalDevCostExLand)
	land, ok := finmath.SolveBisection(f, lo, hi, landSolveTolerance, landSolveMaxIter)
	if !ok {
		return Undef()
	}
	return Def(land)
}

// solveLeveredIRR finds the land value whose equity cash-flow stream has an
// IRR equal to the target. Root-finding runs on the NPV of the stream at the
// target rate, which is zero exactly when the IRR hits target and is
// monotone decreasing in land.
func solveLeveredIRR(in models.DealInputs, noi, totalDevCostExLand float64) Metric {
	target := in.TargetLeveredIRR
	if target <= -1 {
		return Undef()
	}

	f := func(land float64) float64 {
		flows, _, ok := leveredFlows(in, noi, totalDevCostExLand, land)
		if !ok {
			return math.Inf(1)
		}
		return finmath.NPV(target, flows)
	}

	if in.EquityPctOfTotalCost <= 0 || in.ExitCapRate <= 0 {
		return Undef()
	}

	lo, hi := landBracket(noi, totalDevCostExLand)
	land, ok := finmath.SolveBisection(f, lo, hi, landSolveTolerance, landSolveMaxIter)
	if !ok {
		return Undef()
	}
	return Def(land)
}
