package models

import (
	"time"

	"github.com/google/uuid"
)

// DealInputs is the full assumption set for one underwriting run.
// Every fractional field is expressed in [0,1], never 0-100.
// The engine treats a DealInputs value as immutable: sensitivity grids
// perturb copies, never the original.
type DealInputs struct {
	// Identity (opaque to the engine, pass-through only)
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PropertyAddress string    `json:"property_address"`
	APN             string    `json:"apn"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Site
	LotSizeSF         float64 `json:"lot_size_sf"`
	Units             float64 `json:"units"`
	AvgUnitSF         float64 `json:"avg_unit_sf"`
	CommonAreaFactor  float64 `json:"common_area_factor"`
	Stories           int     `json:"stories"`
	ConstructionType  string  `json:"construction_type"` // 'type-i', 'type-iii', 'type-v'
	ParkingType       string  `json:"parking_type"`      // 'surface', 'podium', 'subterranean'
	ParkingSpacesBase float64 `json:"parking_spaces_base"`
	Zoning            string  `json:"zoning"`
	Jurisdiction      string  `json:"jurisdiction"`
	HBU               string  `json:"hbu"`
	ProductType       string  `json:"product_type"` // 'for-sale-condo', 'rental'

	// Revenue (for-sale path)
	SalePricePSF       float64 `json:"sale_price_psf"`
	BrokerCommission   float64 `json:"broker_commission"`
	TransferTaxClosing float64 `json:"transfer_tax_closing"`
	MarketingSales     float64 `json:"marketing_sales"`
	CondoProfitMargin  float64 `json:"condo_profit_margin"`
	ApplyULA           bool    `json:"apply_ula"`

	// Rental path
	AffordablePct      float64 `json:"affordable_pct"`
	AffordableLevel    string  `json:"affordable_level"` // keys into policy AMI rent table
	UtilityAllowance   float64 `json:"utility_allowance"` // $/unit/month
	MarketRentPSF      float64 `json:"market_rent_psf"`   // $/SF/month
	OtherIncome        float64 `json:"other_income"`      // $/unit/month
	Vacancy            float64 `json:"vacancy"`
	Concessions        float64 `json:"concessions"`
	RentalExitStrategy string  `json:"rental_exit_strategy"` // 'hold', 'merchant-build'
	HoldPeriodYears    int     `json:"hold_period_years"`
	NOIGrowth          float64 `json:"noi_growth"` // annual, applied over the hold

	// Operating expenses
	PropertyManagement        float64 `json:"property_management"` // fraction of EGI
	InsurancePerUnit          float64 `json:"insurance_per_unit"`
	PropertyTaxRate           float64 `json:"property_tax_rate"` // on dev cost basis ex land
	RepairsMaintenancePerUnit float64 `json:"repairs_maintenance_per_unit"`
	UtilitiesCommonPerUnit    float64 `json:"utilities_common_per_unit"`
	TurnoverPerUnit           float64 `json:"turnover_per_unit"`
	GeneralAdminPerUnit       float64 `json:"general_admin_per_unit"`
	ReservesPerUnit           float64 `json:"reserves_per_unit"`

	// Hard costs
	BaseBuildingCostPSF  float64 `json:"base_building_cost_psf"`
	ParkingCostPerSpace  float64 `json:"parking_cost_per_space"`
	DemolitionAbatement  float64 `json:"demolition_abatement"`
	GradingUtilities     float64 `json:"grading_utilities"`
	LandscapingHardscape float64 `json:"landscaping_hardscape"`
	HardCostContingency  float64 `json:"hard_cost_contingency"` // on the hard-cost subtotal

	// Soft costs
	ArchitectureEngineeringPct float64 `json:"architecture_engineering_pct"` // of hard costs
	LegalAccountingPct         float64 `json:"legal_accounting_pct"`         // of hard costs
	PermitsFeesPerUnit         float64 `json:"permits_fees_per_unit"`
	DeveloperFeePct            float64 `json:"developer_fee_pct"` // of hard + soft subtotal
	SoftCostContingency        float64 `json:"soft_cost_contingency"`

	// Financing / carry (base excludes land by construction)
	ConstructionLoanRate float64 `json:"construction_loan_rate"`
	ConstructionMonths   float64 `json:"construction_months"`
	AvgOutstandingPct    float64 `json:"avg_outstanding_pct"` // average draw on the cost base
	LoanFeesPct          float64 `json:"loan_fees_pct"`
	PermLoanRate         float64 `json:"perm_loan_rate"`
	PermAmortYears       int     `json:"perm_amort_years"`
	ExitSellingCostPct   float64 `json:"exit_selling_cost_pct"`

	// Return targets
	YOCTarget            float64 `json:"yoc_target"`
	DevProfitMarginTarget float64 `json:"dev_profit_margin_target"`
	TargetEquityMultiple float64 `json:"target_equity_multiple"`
	EquityPctOfTotalCost float64 `json:"equity_pct_of_total_cost"`
	TargetLeveredIRR     float64 `json:"target_levered_irr"`
	UnleveredROCTarget   float64 `json:"unlevered_roc_target"`
	ExitCapRate          float64 `json:"exit_cap_rate"`
}

// NewDealInputs returns the default assumption set for a fresh deal.
// Defaults describe a mid-rise Los Angeles infill rental; callers override
// whatever the site actually supports.
func NewDealInputs() DealInputs {
	now := time.Now()
	return DealInputs{
		ID:        uuid.New().String(),
		Name:      "Untitled Deal",
		CreatedAt: now,
		UpdatedAt: now,

		LotSizeSF:         15000,
		Units:             40,
		AvgUnitSF:         850,
		CommonAreaFactor:  0.15,
		Stories:           5,
		ConstructionType:  "type-v",
		ParkingType:       "podium",
		ParkingSpacesBase: 40,
		Jurisdiction:      "los-angeles",
		ProductType:       "rental",

		SalePricePSF:       850,
		BrokerCommission:   0.05,
		TransferTaxClosing: 0.0056,
		MarketingSales:     0.015,
		CondoProfitMargin:  0.15,

		AffordablePct:      0.10,
		AffordableLevel:    "low-50-ami",
		UtilityAllowance:   75,
		MarketRentPSF:      3.25,
		OtherIncome:        50,
		Vacancy:            0.05,
		Concessions:        0.01,
		RentalExitStrategy: "hold",
		HoldPeriodYears:    5,
		NOIGrowth:          0.03,

		PropertyManagement:        0.03,
		InsurancePerUnit:          1200,
		PropertyTaxRate:           0.0125,
		RepairsMaintenancePerUnit: 800,
		UtilitiesCommonPerUnit:    600,
		TurnoverPerUnit:           300,
		GeneralAdminPerUnit:       400,
		ReservesPerUnit:           250,

		BaseBuildingCostPSF:  325,
		ParkingCostPerSpace:  35000,
		DemolitionAbatement:  150000,
		GradingUtilities:     200000,
		LandscapingHardscape: 100000,
		HardCostContingency:  0.05,

		ArchitectureEngineeringPct: 0.05,
		LegalAccountingPct:         0.01,
		PermitsFeesPerUnit:         15000,
		DeveloperFeePct:            0.04,
		SoftCostContingency:        0.05,

		ConstructionLoanRate: 0.085,
		ConstructionMonths:   22,
		AvgOutstandingPct:    0.55,
		LoanFeesPct:          0.01,
		PermLoanRate:         0.065,
		PermAmortYears:       30,
		ExitSellingCostPct:   0.02,

		YOCTarget:             0.0575,
		DevProfitMarginTarget: 0.15,
		TargetEquityMultiple:  1.8,
		EquityPctOfTotalCost:  0.35,
		TargetLeveredIRR:      0.18,
		UnleveredROCTarget:    0.055,
		ExitCapRate:           0.0475,
	}
}
