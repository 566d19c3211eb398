package models

import (
	"testing"
)

func TestNewDealInputsDefaults(t *testing.T) {
	in := NewDealInputs()
	if in.ID == "" {
		t.Error("Fresh deal needs an ID")
	}
	if in.Units <= 0 || in.LotSizeSF <= 0 {
		t.Error("Defaults must avoid degenerate site figures")
	}
	// Fractional fields ship in [0,1], never 0-100
	for name, v := range map[string]float64{
		"vacancy":               in.Vacancy,
		"broker_commission":     in.BrokerCommission,
		"hard_cost_contingency": in.HardCostContingency,
		"affordable_pct":        in.AffordablePct,
		"equity_pct":            in.EquityPctOfTotalCost,
	} {
		if v < 0 || v > 1 {
			t.Errorf("%s = %f escapes [0,1]", name, v)
		}
	}
}

func TestParseDealPatchRepairsSloppyJSON(t *testing.T) {
	// Single quotes, bare keys, trailing comma: typical extractor output
	raw := "{'units': 20, sale_price_psf: 900, name: 'Beach Parcel',}"
	patch, err := ParseDealPatch(raw)
	if err != nil {
		t.Fatalf("Expected repair to succeed: %v", err)
	}
	if _, ok := patch["units"]; !ok {
		t.Error("units missing from parsed patch")
	}
}

func TestApplyPatchOverridesOnlyPresentFields(t *testing.T) {
	base := NewDealInputs()
	patch, err := ParseDealPatch(`{"units": 20, "sale_price_psf": 900}`)
	if err != nil {
		t.Fatal(err)
	}

	merged, err := ApplyPatch(base, patch)
	if err != nil {
		t.Fatal(err)
	}

	if merged.Units != 20 {
		t.Errorf("Expected units 20, got %f", merged.Units)
	}
	if merged.SalePricePSF != 900 {
		t.Errorf("Expected sale price 900, got %f", merged.SalePricePSF)
	}
	// Untouched fields pass through
	if merged.AvgUnitSF != base.AvgUnitSF {
		t.Error("Unpatched field changed")
	}
	if merged.ID != base.ID {
		t.Error("Identity must survive a patch")
	}
	// The original is never mutated
	if base.Units == 20 {
		t.Error("ApplyPatch must not mutate its input")
	}
}

func TestApplyPatchIgnoresUnknownKeys(t *testing.T) {
	base := NewDealInputs()
	patch := map[string]interface{}{"not_a_field": 1, "units": 15.0}
	merged, err := ApplyPatch(base, patch)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Units != 15 {
		t.Errorf("Expected units 15, got %f", merged.Units)
	}
}
