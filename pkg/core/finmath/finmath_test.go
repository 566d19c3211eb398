package finmath

import (
	"math"
	"testing"
)

func TestMortgageConstant(t *testing.T) {
	// 6% / 30yr: i = 0.005, n = 360
	// monthly factor = 0.005 / (1 - 1.005^-360) = 0.00599551
	// annual constant = 0.0719461
	mc := MortgageConstant(0.06, 30)
	if math.Abs(mc-0.0719461) > 1e-5 {
		t.Errorf("Expected constant ~0.0719461, got %f", mc)
	}

	// Zero rate degenerates to straight-line: 1/30 per year
	mc0 := MortgageConstant(0, 30)
	if math.Abs(mc0-1.0/30.0) > 1e-9 {
		t.Errorf("Expected 1/30, got %f", mc0)
	}

	if MortgageConstant(0.06, 0) != 0 {
		t.Error("Zero amortization term should yield 0")
	}
}

func TestRemainingBalance(t *testing.T) {
	// Zero rate: linear paydown. Half the term leaves half the principal.
	b := RemainingBalance(100000, 0, 30, 15)
	if math.Abs(b-50000) > 1e-6 {
		t.Errorf("Expected 50000, got %f", b)
	}

	// Full term leaves nothing
	if RemainingBalance(100000, 0.06, 30, 30) != 0 {
		t.Error("Expected zero balance at term end")
	}

	// No elapsed time leaves everything
	if RemainingBalance(100000, 0.06, 30, 0) != 100000 {
		t.Error("Expected full principal at t=0")
	}

	// Amortizing balance must sit strictly between linear and full
	b6 := RemainingBalance(100000, 0.06, 30, 15)
	if b6 <= 50000 || b6 >= 100000 {
		t.Errorf("15yr balance at 6%% should exceed linear 50000, got %f", b6)
	}
}

func TestNPVAndIRR(t *testing.T) {
	// -100 now, +110 in a year: NPV at 10% is exactly 0
	flows := []float64{-100, 110}
	if math.Abs(NPV(0.10, flows)) > 1e-9 {
		t.Errorf("Expected NPV 0 at 10%%, got %f", NPV(0.10, flows))
	}

	irr, ok := IRR(flows)
	if !ok {
		t.Fatal("IRR should converge for a simple two-flow stream")
	}
	if math.Abs(irr-0.10) > 1e-5 {
		t.Errorf("Expected IRR 0.10, got %f", irr)
	}

	// All-positive stream has no root: must report non-convergence, not a number
	if _, ok := IRR([]float64{100, 100}); ok {
		t.Error("All-positive stream should not produce an IRR")
	}
}

func TestIRRMultiYear(t *testing.T) {
	// -1000 then 5 x 250: IRR ~ 7.93%
	flows := []float64{-1000, 250, 250, 250, 250, 250}
	irr, ok := IRR(flows)
	if !ok {
		t.Fatal("IRR should converge")
	}
	// Verify by plugging back into NPV
	if math.Abs(NPV(irr, flows)) > 1e-3 {
		t.Errorf("NPV at solved IRR should be ~0, got %f", NPV(irr, flows))
	}
}

func TestCompound(t *testing.T) {
	if math.Abs(Compound(100, 0.05, 2)-110.25) > 1e-9 {
		t.Errorf("Expected 110.25, got %f", Compound(100, 0.05, 2))
	}
	if Compound(100, 0.05, 0) != 100 {
		t.Error("Zero years should return the base")
	}
}

func TestSolveBisection(t *testing.T) {
	f := func(x float64) float64 { return x*x - 4 }
	root, ok := SolveBisection(f, 0, 10, 1e-9, 200)
	if !ok {
		t.Fatal("Bisection should converge on [0,10]")
	}
	if math.Abs(root-2) > 1e-6 {
		t.Errorf("Expected root 2, got %f", root)
	}

	// No sign change in the bracket
	if _, ok := SolveBisection(f, 3, 10, 1e-9, 200); ok {
		t.Error("Expected failure without a sign change")
	}
}
