// Package policy isolates the published rates and thresholds the engine
// consumes: transfer-tax schedules, linkage fees, AMI rents, and the sanity
// cutoffs. These are jurisdiction policy, not algorithm, so they load from
// YAML and default to the current Los Angeles numbers.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ULATier is one bracket of a documentary transfer-tax schedule. The tax
// applies to the entire sale price at the rate of the highest tier whose
// threshold the price meets (Measure ULA is not marginal).
type ULATier struct {
	Threshold float64 `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

// AHLF parameterizes the Affordable Housing Linkage Fee: a per-SF charge on
// gross residential area, waived when the on-site affordable set-aside meets
// the exemption fraction.
type AHLF struct {
	FeePerSF     float64 `yaml:"fee_per_sf"`
	ExemptAbovePct float64 `yaml:"exempt_above_pct"`
}

// ListingBand widens the primary residual into a marketed price range.
// Fractions are signed offsets (e.g. -0.05 / +0.10).
type ListingBand struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// SanityThresholds holds the cutoffs the sanity checker compares against.
type SanityThresholds struct {
	DevSpreadMinBps   float64 `yaml:"dev_spread_min_bps"`
	ExpenseRatioMax   float64 `yaml:"expense_ratio_max"`
	GRMLow            float64 `yaml:"grm_low"`
	GRMHigh           float64 `yaml:"grm_high"`
	VacancyHigh       float64 `yaml:"vacancy_high"`
	HardContingencyMin float64 `yaml:"hard_contingency_min"`
	CommonAreaLow     float64 `yaml:"common_area_low"`
	CommonAreaHigh    float64 `yaml:"common_area_high"`
	EquityPctLow      float64 `yaml:"equity_pct_low"`
	EquityPctHigh     float64 `yaml:"equity_pct_high"`
}

// GridShape bounds the sensitivity matrices. CellsPerAxis must be odd so the
// current assumption sits on the center cell exactly.
type GridShape struct {
	CellsPerAxis     int     `yaml:"cells_per_axis"`
	HardCostStepPSF  float64 `yaml:"hard_cost_step_psf"`
	SalePriceStepPSF float64 `yaml:"sale_price_step_psf"`
	ExitCapStep      float64 `yaml:"exit_cap_step"`
	MarketRentStep   float64 `yaml:"market_rent_step"`
}

// Policy is the full injectable constant set.
type Policy struct {
	ULASchedule []ULATier          `yaml:"ula_schedule"`
	AHLF        AHLF               `yaml:"ahlf"`
	AMIRents    map[string]float64 `yaml:"ami_rents"` // monthly gross rent per unit by level
	Listing     ListingBand        `yaml:"listing"`
	Sanity      SanityThresholds   `yaml:"sanity"`
	Grid        GridShape          `yaml:"grid"`
}

// Default returns the engine's built-in rate set: LA Measure ULA thresholds
// as adjusted for FY2025, the citywide linkage-fee rate, and HCIDLA AMI
// rents for the common affordability levels.
func Default() Policy {
	return Policy{
		ULASchedule: []ULATier{
			{Threshold: 5_150_000, Rate: 0.04},
			{Threshold: 10_300_000, Rate: 0.055},
		},
		AHLF: AHLF{
			FeePerSF:       8.53,
			ExemptAbovePct: 0.11,
		},
		AMIRents: map[string]float64{
			"extremely-low-30-ami": 662,
			"very-low-50-ami":      1104,
			"low-50-ami":           1104,
			"low-80-ami":           1766,
			"moderate-120-ami":     2649,
		},
		Listing: ListingBand{Low: -0.05, High: 0.10},
		Sanity: SanityThresholds{
			DevSpreadMinBps:    150,
			ExpenseRatioMax:    0.40,
			GRMLow:             10,
			GRMHigh:            18,
			VacancyHigh:        0.15,
			HardContingencyMin: 0.05,
			CommonAreaLow:      0.10,
			CommonAreaHigh:     0.25,
			EquityPctLow:       0.20,
			EquityPctHigh:      0.50,
		},
		Grid: GridShape{
			CellsPerAxis:     7,
			HardCostStepPSF:  25,
			SalePriceStepPSF: 50,
			ExitCapStep:      0.0025,
			MarketRentStep:   0.25,
		},
	}
}

// Unmarshal overlays a YAML document on the defaults, so a policy file only
// needs to state what it overrides.
func Unmarshal(data []byte) (Policy, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("policy yaml: %v", err)
	}
	if p.Grid.CellsPerAxis%2 == 0 {
		return Policy{}, fmt.Errorf("policy grid cells_per_axis must be odd, got %d", p.Grid.CellsPerAxis)
	}
	return p, nil
}

// Load reads a policy YAML file.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("policy file: %v", err)
	}
	return Unmarshal(data)
}

// AMIRent resolves the monthly gross rent for an affordability level.
// Unknown levels fall back to the lowest published rent, the conservative
// underwriting assumption.
func (p Policy) AMIRent(level string) float64 {
	if rent, ok := p.AMIRents[level]; ok {
		return rent
	}
	lowest := 0.0
	first := true
	for _, rent := range p.AMIRents {
		if first || rent < lowest {
			lowest = rent
			first = false
		}
	}
	return lowest
}
