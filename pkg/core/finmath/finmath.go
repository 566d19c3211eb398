// Package finmath holds the small reusable formulas shared by the residual
// land solves: amortization math, discounting, and root-finding.
package finmath

import (
	"math"
)

const (
	// IRRTolerance and IRRMaxIterations bound the bisection IRR solve.
	// Non-convergence is reported, never approximated.
	IRRTolerance     = 1e-7
	IRRMaxIterations = 200

	irrLowerBound = -0.99
	irrUpperBound = 10.0
)

// MortgageConstant returns the annualized payment per $1 of principal for a
// fully amortizing loan. Rate 0 degenerates to straight-line repayment.
func MortgageConstant(rate float64, amortYears int) float64 {
	if amortYears <= 0 {
		return 0
	}
	n := float64(amortYears * 12)
	if rate == 0 {
		return 12.0 / n
	}
	i := rate / 12.0
	monthly := i / (1 - math.Pow(1+i, -n))
	return monthly * 12.0
}

// RemainingBalance returns the outstanding principal per the amortization
// schedule after a number of elapsed years.
func RemainingBalance(principal, rate float64, amortYears, afterYears int) float64 {
	if amortYears <= 0 || afterYears >= amortYears {
		return 0
	}
	if afterYears <= 0 {
		return principal
	}
	if rate == 0 {
		return principal * (1 - float64(afterYears)/float64(amortYears))
	}
	i := rate / 12.0
	n := float64(amortYears * 12)
	k := float64(afterYears * 12)
	// B_k = P * ((1+i)^n - (1+i)^k) / ((1+i)^n - 1)
	growthN := math.Pow(1+i, n)
	growthK := math.Pow(1+i, k)
	return principal * (growthN - growthK) / (growthN - 1)
}

// NPV discounts a cash-flow stream at the given rate. flows[0] sits at t=0.
func NPV(rate float64, flows []float64) float64 {
	var pv float64
	for t, cf := range flows {
		pv += cf / math.Pow(1+rate, float64(t))
	}
	return pv
}

// IRR solves NPV(r)=0 by bisection over [-99%, 1000%]. Returns ok=false
// when the stream has no sign change in that window or the solve fails to
// converge; callers surface that as an undefined metric, not a number.
func IRR(flows []float64) (float64, bool) {
	f := func(r float64) float64 { return NPV(r, flows) }
	return SolveBisection(f, irrLowerBound, irrUpperBound, IRRTolerance, IRRMaxIterations)
}

// Compound grows a base amount at a constant annual rate.
func Compound(base, rate float64, years int) float64 {
	if years <= 0 {
		return base
	}
	return base * math.Pow(1+rate, float64(years))
}

// SolveBisection finds a root of f on [lo, hi]. The bracket must straddle a
// sign change. Returns ok=false when it doesn't, or when maxIter runs out
// before the interval shrinks below tol.
func SolveBisection(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, bool) {
	fLo := f(lo)
	fHi := f(hi)

	if fLo == 0 {
		return lo, true
	}
	if fHi == 0 {
		return hi, true
	}
	if fLo*fHi > 0 {
		return 0, false
	}

	for iter := 0; iter < maxIter; iter++ {
		mid := (lo + hi) / 2
		fMid := f(mid)

		if math.Abs(fMid) < tol || (hi-lo)/2 < tol {
			return mid, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	return 0, false
}
