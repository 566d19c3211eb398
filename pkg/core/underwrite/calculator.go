// Package underwrite implements the land-residual deal calculator: a pure
// mapping from one DealInputs snapshot (plus a policy rate set) to the fully
// derived DealCalculations record. Six valuation methods share one cost
// waterfall and one stabilized NOI; each back-solves the land value that
// makes its target constraint hold exactly.
package underwrite

import (
	"land_residual/pkg/core/policy"
	"land_residual/pkg/models"
)

// Calculate derives the full calculations record. Total and deterministic:
// it never errors for well-typed input, performs no I/O, and reads no global
// state. Degenerate inputs (zero units, zero cap rate) surface as undefined
// metrics, never as NaN or a panic.
func Calculate(in models.DealInputs, pol policy.Policy) DealCalculations {
	c := DealCalculations{}

	// 1. Building metrics
	c.TotalSellableSF = in.Units * in.AvgUnitSF
	c.GrossBuildingSF = c.TotalSellableSF * (1 + in.CommonAreaFactor)

	// 2. Hard costs. Contingency applies to the subtotal, not line items.
	hardSubtotal := c.GrossBuildingSF*in.BaseBuildingCostPSF +
		in.ParkingSpacesBase*in.ParkingCostPerSpace +
		in.DemolitionAbatement +
		in.GradingUtilities +
		in.LandscapingHardscape
	c.TotalHardCosts = hardSubtotal * (1 + in.HardCostContingency)

	// 3. Soft costs, then financing/carry on a base that includes soft costs
	// but excludes land — land is the unknown being solved for.
	c.AHLFFees = linkageFee(in, pol, c.GrossBuildingSF)
	softSubtotal := c.TotalHardCosts*(in.ArchitectureEngineeringPct+in.LegalAccountingPct) +
		in.PermitsFeesPerUnit*in.Units +
		c.AHLFFees
	softWithContingency := softSubtotal * (1 + in.SoftCostContingency)
	developerFee := (c.TotalHardCosts + softWithContingency) * in.DeveloperFeePct
	c.TotalSoftCosts = softWithContingency + developerFee

	costBase := c.TotalHardCosts + c.TotalSoftCosts
	constructionInterest := costBase * in.AvgOutstandingPct * in.ConstructionLoanRate * (in.ConstructionMonths / 12.0)
	loanFees := costBase * in.LoanFeesPct
	c.TotalFinancingCarry = constructionInterest + loanFees

	c.TotalDevCostExLand = costBase + c.TotalFinancingCarry

	// 4. For-sale path. ULA taxes the entire price at the tier rate once the
	// threshold is crossed; the land value is the plug that makes the profit
	// margin hit target exactly.
	c.GrossSaleProceeds = c.TotalSellableSF * in.SalePricePSF
	if in.ApplyULA {
		c.ULAAmount = ulaTax(pol.ULASchedule, c.GrossSaleProceeds)
	}
	sellingCosts := c.GrossSaleProceeds*(in.BrokerCommission+in.TransferTaxClosing+in.MarketingSales) + c.ULAAmount
	c.NetSaleProceeds = c.GrossSaleProceeds - sellingCosts
	condoResidual := c.NetSaleProceeds*(1-in.CondoProfitMargin) - c.TotalDevCostExLand

	// 5. Rental path: one NOI, five target constraints.
	ops := rentalOperations(in, pol, c.TotalDevCostExLand)
	c.GrossRentAnnual = ops.grossRent
	c.EffectiveGrossIncome = ops.egi
	c.OperatingExpenses = ops.opex
	c.NOI = ops.noi
	c.StabilizedValue = Ratio(ops.noi, in.ExitCapRate)

	residuals := map[Method]Metric{
		MethodCondo:          Def(condoResidual),
		MethodYOC:            solveDirectYield(ops.noi, in.YOCTarget, c.TotalDevCostExLand),
		MethodUnleveredROC:   solveDirectYield(ops.noi, in.UnleveredROCTarget, c.TotalDevCostExLand),
		MethodDevMargin:      solveDevMargin(c.StabilizedValue, in.DevProfitMarginTarget, c.TotalDevCostExLand),
		MethodEquityMultiple: solveEquityMultiple(in, ops.noi, c.TotalDevCostExLand),
		MethodLeveredIRR:     solveLeveredIRR(in, ops.noi, c.TotalDevCostExLand),
	}

	// 6. Variant records with per-denominator figures. Negative residuals
	// pass through untouched: "does not pencil" is a signal, not an error.
	c.Methods = make([]MethodResult, 0, len(Methods))
	for _, m := range Methods {
		res := residuals[m]
		mr := MethodResult{Method: m, Label: m.Label(), Residual: res}
		if res.Defined {
			mr.PerUnit = Ratio(res.Value, in.Units)
			mr.PerSFLand = Ratio(res.Value, in.LotSizeSF)
			mr.PerBuildableSF = Ratio(res.Value, c.GrossBuildingSF)
			mr.LandPctOfTotal = Ratio(res.Value, res.Value+c.TotalDevCostExLand)
		}
		c.Methods = append(c.Methods, mr)
	}

	// 7. Primary selection is a pure function of product type and exit
	// strategy, never of which residual came out largest.
	c.PrimaryMethod = selectPrimary(in)
	c.PrimaryLabel = c.PrimaryMethod.Label()
	c.Primary = residuals[c.PrimaryMethod]

	if c.Primary.Defined {
		c.ListingLow = Def(c.Primary.Value * (1 + pol.Listing.Low))
		c.ListingHigh = Def(c.Primary.Value * (1 + pol.Listing.High))
	}

	c.SpectrumLow, c.SpectrumHigh = spectrum(residuals)

	// 8. Auxiliary ratios
	if c.Primary.Defined {
		c.YOCAtResidual = Ratio(ops.noi, c.Primary.Value+c.TotalDevCostExLand)
		c.DevSpreadBps = devSpread(c.PrimaryMethod, c.Primary, residuals, c.TotalDevCostExLand)
	}
	c.ExpenseRatio = Ratio(ops.opex, ops.egi)
	if c.StabilizedValue.Defined {
		c.GRM = Ratio(c.StabilizedValue.Value, ops.grossRent)
	}
	c.NOIPerUnit = Ratio(ops.noi, in.Units)

	return c
}

func selectPrimary(in models.DealInputs) Method {
	switch in.ProductType {
	case "for-sale-condo", "condo", "for-sale-townhome", "for-sale":
		return MethodCondo
	}
	switch in.RentalExitStrategy {
	case "merchant-build", "sell-at-stabilization":
		return MethodDevMargin
	}
	return MethodYOC
}

// spectrum spans the full buyer range: min and max across every method that
// produced a defined residual.
func spectrum(residuals map[Method]Metric) (Metric, Metric) {
	low, high := Undef(), Undef()
	for _, m := range Methods {
		r := residuals[m]
		if !r.Defined {
			continue
		}
		if !low.Defined || r.Value < low.Value {
			low = Def(r.Value)
		}
		if !high.Defined || r.Value > high.Value {
			high = Def(r.Value)
		}
	}
	return low, high
}

// devSpread measures how far the primary residual clears the next-best
// rental method, normalized by total dev cost and quoted in basis points.
func devSpread(primary Method, primaryRes Metric, residuals map[Method]Metric, tdc float64) Metric {
	if !primaryRes.Defined || tdc == 0 {
		return Undef()
	}

	best := Undef()
	for _, m := range Methods {
		if !m.Rental() || m == primary {
			continue
		}
		r := residuals[m]
		if !r.Defined {
			continue
		}
		if !best.Defined || r.Value > best.Value {
			best = Def(r.Value)
		}
	}
	if !best.Defined {
		return Undef()
	}
	return Def((primaryRes.Value - best.Value) / tdc * 10000)
}
