package underwrite

import (
	"encoding/json"
)

// Metric is a derived figure that may be undefined when its denominator is
// degenerate (zero units, zero lot, zero cap rate) or a solve fails to
// converge. It marshals to null so consumers render "N/A" deterministically
// instead of NaN/Infinity leaking into output.
type Metric struct {
	Value   float64
	Defined bool
}

// Def wraps a computed value.
func Def(v float64) Metric { return Metric{Value: v, Defined: true} }

// Undef is the declared "undefined metric" marker.
func Undef() Metric { return Metric{} }

// Ratio divides with a zero-denominator guard.
func Ratio(num, den float64) Metric {
	if den == 0 {
		return Undef()
	}
	return Def(num / den)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undef()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Def(v)
	return nil
}

// Method enumerates the six residual valuation methods.
type Method string

const (
	MethodCondo          Method = "condo"
	MethodYOC            Method = "yoc"
	MethodDevMargin      Method = "dev-margin"
	MethodEquityMultiple Method = "equity-multiple"
	MethodLeveredIRR     Method = "levered-irr"
	MethodUnleveredROC   Method = "unlevered-roc"
)

// Methods lists all six in canonical order. Grid metrics, spectrum ranges,
// and presentation tables all iterate in this order.
var Methods = []Method{
	MethodCondo,
	MethodYOC,
	MethodDevMargin,
	MethodEquityMultiple,
	MethodLeveredIRR,
	MethodUnleveredROC,
}

// Label returns the presentation name for a method.
func (m Method) Label() string {
	switch m {
	case MethodCondo:
		return "For-Sale Condo Profit Margin"
	case MethodYOC:
		return "Rental Yield on Cost"
	case MethodDevMargin:
		return "Rental Development Margin"
	case MethodEquityMultiple:
		return "Rental Target Equity Multiple"
	case MethodLeveredIRR:
		return "Rental Target Levered IRR"
	case MethodUnleveredROC:
		return "Rental Unlevered Return on Cost"
	}
	return string(m)
}

// Rental reports whether the method values the rental path.
func (m Method) Rental() bool { return m != MethodCondo }

// MethodResult is one variant of the six-method set: the residual land value
// under that method's target constraint plus its per-denominator figures.
type MethodResult struct {
	Method         Method `json:"method"`
	Label          string `json:"label"`
	Residual       Metric `json:"residual"`
	PerUnit        Metric `json:"per_unit"`
	PerSFLand      Metric `json:"per_sf_land"`
	PerBuildableSF Metric `json:"per_buildable_sf"`
	LandPctOfTotal Metric `json:"land_pct_of_total"`
}

// DealCalculations is the fully derived record for one DealInputs snapshot.
// It is produced fresh on every call and never mutated.
type DealCalculations struct {
	// Building metrics
	TotalSellableSF float64 `json:"total_sellable_sf"`
	GrossBuildingSF float64 `json:"gross_building_sf"`

	// Cost waterfall (land always excluded)
	TotalHardCosts      float64 `json:"total_hard_costs"`
	TotalSoftCosts      float64 `json:"total_soft_costs"`
	TotalFinancingCarry float64 `json:"total_financing_carry"`
	TotalDevCostExLand  float64 `json:"total_dev_cost_ex_land"`
	AHLFFees            float64 `json:"ahlf_fees"`

	// For-sale revenue
	GrossSaleProceeds float64 `json:"gross_sale_proceeds"`
	NetSaleProceeds   float64 `json:"net_sale_proceeds"`
	ULAAmount         float64 `json:"ula_amount"`

	// Rental operations
	GrossRentAnnual      float64 `json:"gross_rent_annual"`
	EffectiveGrossIncome float64 `json:"effective_gross_income"`
	OperatingExpenses    float64 `json:"operating_expenses"`
	NOI                  float64 `json:"noi"`
	StabilizedValue      Metric  `json:"stabilized_value"`

	// Six residual methods, canonical order, plus the selected primary
	Methods       []MethodResult `json:"methods"`
	PrimaryMethod Method         `json:"primary_method"`
	PrimaryLabel  string         `json:"primary_label"`
	Primary       Metric         `json:"primary_residual"`

	// Ranges
	ListingLow   Metric `json:"listing_low"`
	ListingHigh  Metric `json:"listing_high"`
	SpectrumLow  Metric `json:"spectrum_low"`
	SpectrumHigh Metric `json:"spectrum_high"`

	// Auxiliary ratios
	YOCAtResidual Metric `json:"yoc_at_residual"`
	DevSpreadBps  Metric `json:"dev_spread_bps"`
	ExpenseRatio  Metric `json:"expense_ratio"`
	GRM           Metric `json:"grm"`
	NOIPerUnit    Metric `json:"noi_per_unit"`
}

// MethodResult returns the variant for a method. The calculator always
// populates all six, so a miss means a zero-value result, never a panic.
func (c DealCalculations) MethodResult(m Method) MethodResult {
	for _, r := range c.Methods {
		if r.Method == m {
			return r
		}
	}
	return MethodResult{Method: m, Label: m.Label()}
}
