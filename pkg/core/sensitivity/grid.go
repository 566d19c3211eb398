// Package sensitivity builds two-dimensional residual grids by re-running
// the deal calculator over perturbed copies of one DealInputs snapshot.
// Cells are independent calculator invocations with no shared mutable
// state, so rows compute in parallel; only axis order is guaranteed.
package sensitivity

import (
	"sync"

	"land_residual/pkg/core/policy"
	"land_residual/pkg/core/underwrite"
	"land_residual/pkg/models"
)

// Grid is a row-major matrix of one residual metric over two varying
// inputs. Rows[i] and Cols[j] label Values[i][j]; the center cell holds the
// unperturbed assumptions exactly, so presentation can highlight "current"
// by equality.
type Grid struct {
	RowLabel string               `json:"row_label"`
	ColLabel string               `json:"col_label"`
	Rows     []float64            `json:"rows"`
	Cols     []float64            `json:"cols"`
	Values   [][]underwrite.Metric `json:"values"`
}

// axis spans cells symmetrically around the center at a fixed step. The
// offset form (center + k*step with k=0 at the midpoint) puts the exact
// center value on the axis rather than the nearest step multiple.
func axis(center, step float64, cells int) []float64 {
	if cells < 1 {
		cells = 1
	}
	half := cells / 2
	out := make([]float64, cells)
	for i := 0; i < cells; i++ {
		out[i] = center + float64(i-half)*step
	}
	return out
}

// CondoGrid varies hard cost $/SF (rows) against sale $/SF (cols) and
// records the condo residual.
func CondoGrid(in models.DealInputs, pol policy.Policy) Grid {
	rows := axis(in.BaseBuildingCostPSF, pol.Grid.HardCostStepPSF, pol.Grid.CellsPerAxis)
	cols := axis(in.SalePricePSF, pol.Grid.SalePriceStepPSF, pol.Grid.CellsPerAxis)

	return fill(Grid{
		RowLabel: "Hard Cost $/SF",
		ColLabel: "Sale $/SF",
		Rows:     rows,
		Cols:     cols,
	}, func(row, col float64) underwrite.Metric {
		perturbed := in
		perturbed.BaseBuildingCostPSF = row
		perturbed.SalePricePSF = col
		calc := underwrite.Calculate(perturbed, pol)
		return calc.MethodResult(underwrite.MethodCondo).Residual
	})
}

// RentalGrid varies exit cap rate (rows) against market rent $/SF (cols)
// and records the yield-on-cost residual.
func RentalGrid(in models.DealInputs, pol policy.Policy) Grid {
	rows := axis(in.ExitCapRate, pol.Grid.ExitCapStep, pol.Grid.CellsPerAxis)
	cols := axis(in.MarketRentPSF, pol.Grid.MarketRentStep, pol.Grid.CellsPerAxis)

	return fill(Grid{
		RowLabel: "Exit Cap Rate",
		ColLabel: "Market Rent $/SF",
		Rows:     rows,
		Cols:     cols,
	}, func(row, col float64) underwrite.Metric {
		perturbed := in
		perturbed.ExitCapRate = row
		perturbed.MarketRentPSF = col
		calc := underwrite.Calculate(perturbed, pol)
		return calc.MethodResult(underwrite.MethodYOC).Residual
	})
}

// fill computes every cell, one goroutine per row. Each goroutine writes a
// disjoint row slice, so no synchronization beyond the WaitGroup is needed.
func fill(g Grid, cell func(row, col float64) underwrite.Metric) Grid {
	g.Values = make([][]underwrite.Metric, len(g.Rows))

	var wg sync.WaitGroup
	for i, row := range g.Rows {
		wg.Add(1)
		go func(i int, row float64) {
			defer wg.Done()
			vals := make([]underwrite.Metric, len(g.Cols))
			for j, col := range g.Cols {
				vals[j] = cell(row, col)
			}
			g.Values[i] = vals
		}(i, row)
	}
	wg.Wait()

	return g
}
