// Package validate screens raw deal assumptions before they reach the
// calculation engine. The engine itself is total and never rejects input;
// this package is for the surrounding layers (CLI, import, storage) that
// must refuse malformed records up front.
package validate

import (
	"fmt"

	"land_residual/pkg/models"
)

// Issue is one structural problem with a DealInputs record.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// DealInputs checks the invariants of the input schema: fractional fields
// in [0,1], per-unit and per-SF rates non-negative, categorical fields in
// their vocabulary. Returns every issue found, not just the first.
func DealInputs(in models.DealInputs) []Issue {
	var issues []Issue

	fractions := map[string]float64{
		"common_area_factor":           in.CommonAreaFactor,
		"broker_commission":            in.BrokerCommission,
		"transfer_tax_closing":         in.TransferTaxClosing,
		"marketing_sales":              in.MarketingSales,
		"condo_profit_margin":          in.CondoProfitMargin,
		"affordable_pct":               in.AffordablePct,
		"vacancy":                      in.Vacancy,
		"concessions":                  in.Concessions,
		"property_management":          in.PropertyManagement,
		"hard_cost_contingency":        in.HardCostContingency,
		"soft_cost_contingency":        in.SoftCostContingency,
		"avg_outstanding_pct":          in.AvgOutstandingPct,
		"loan_fees_pct":                in.LoanFeesPct,
		"equity_pct_of_total_cost":     in.EquityPctOfTotalCost,
		"exit_selling_cost_pct":        in.ExitSellingCostPct,
		"developer_fee_pct":            in.DeveloperFeePct,
		"architecture_engineering_pct": in.ArchitectureEngineeringPct,
		"legal_accounting_pct":         in.LegalAccountingPct,
	}
	for field, v := range fractions {
		if v < 0 || v > 1 {
			issues = append(issues, Issue{Field: field,
				Message: fmt.Sprintf("fraction %g must sit in [0,1], not 0-100", v)})
		}
	}

	nonNegative := map[string]float64{
		"lot_size_sf":                  in.LotSizeSF,
		"units":                        in.Units,
		"avg_unit_sf":                  in.AvgUnitSF,
		"parking_spaces_base":          in.ParkingSpacesBase,
		"sale_price_psf":               in.SalePricePSF,
		"market_rent_psf":              in.MarketRentPSF,
		"other_income":                 in.OtherIncome,
		"utility_allowance":            in.UtilityAllowance,
		"insurance_per_unit":           in.InsurancePerUnit,
		"repairs_maintenance_per_unit": in.RepairsMaintenancePerUnit,
		"utilities_common_per_unit":    in.UtilitiesCommonPerUnit,
		"turnover_per_unit":            in.TurnoverPerUnit,
		"general_admin_per_unit":       in.GeneralAdminPerUnit,
		"reserves_per_unit":            in.ReservesPerUnit,
		"base_building_cost_psf":       in.BaseBuildingCostPSF,
		"parking_cost_per_space":       in.ParkingCostPerSpace,
		"demolition_abatement":         in.DemolitionAbatement,
		"grading_utilities":            in.GradingUtilities,
		"landscaping_hardscape":        in.LandscapingHardscape,
		"permits_fees_per_unit":        in.PermitsFeesPerUnit,
		"construction_months":          in.ConstructionMonths,
	}
	for field, v := range nonNegative {
		if v < 0 {
			issues = append(issues, Issue{Field: field,
				Message: fmt.Sprintf("%g is negative", v)})
		}
	}

	if in.ProductType != "" && !knownProductType(in.ProductType) {
		issues = append(issues, Issue{Field: "product_type",
			Message: fmt.Sprintf("unknown product type %q", in.ProductType)})
	}
	if in.RentalExitStrategy != "" && !knownExitStrategy(in.RentalExitStrategy) {
		issues = append(issues, Issue{Field: "rental_exit_strategy",
			Message: fmt.Sprintf("unknown exit strategy %q", in.RentalExitStrategy)})
	}
	if in.HoldPeriodYears < 0 {
		issues = append(issues, Issue{Field: "hold_period_years",
			Message: "negative hold period"})
	}
	if in.PermAmortYears < 0 {
		issues = append(issues, Issue{Field: "perm_amort_years",
			Message: "negative amortization term"})
	}

	return issues
}

func knownProductType(pt string) bool {
	switch pt {
	case "rental", "for-sale-condo", "condo", "for-sale-townhome", "for-sale":
		return true
	}
	return false
}

func knownExitStrategy(s string) bool {
	switch s {
	case "hold", "merchant-build", "sell-at-stabilization":
		return true
	}
	return false
}
