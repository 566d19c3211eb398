package sensitivity

import (
	"testing"

	"land_residual/pkg/core/policy"
	"land_residual/pkg/core/underwrite"
	"land_residual/pkg/models"
)

func fixture() (models.DealInputs, policy.Policy) {
	in := models.DealInputs{
		ProductType:           "for-sale-condo",
		Units:                 10,
		AvgUnitSF:             1000,
		LotSizeSF:             20000,
		CommonAreaFactor:      0.15,
		SalePricePSF:          800,
		BaseBuildingCostPSF:   350,
		BrokerCommission:      0.05,
		TransferTaxClosing:    0.01,
		MarketingSales:        0.02,
		CondoProfitMargin:     0.15,
		MarketRentPSF:         2,
		YOCTarget:             0.06,
		UnleveredROCTarget:    0.08,
		DevProfitMarginTarget: 0.20,
		ExitCapRate:           0.05,
		HoldPeriodYears:       5,
	}
	pol := policy.Default()
	pol.AHLF.FeePerSF = 0
	return in, pol
}

func TestCondoGridShape(t *testing.T) {
	in, pol := fixture()
	g := CondoGrid(in, pol)

	n := pol.Grid.CellsPerAxis
	if len(g.Rows) != n || len(g.Cols) != n || len(g.Values) != n {
		t.Fatalf("Expected %dx%d grid, got %dx%d", n, n, len(g.Rows), len(g.Cols))
	}
	for i := range g.Values {
		if len(g.Values[i]) != n {
			t.Fatalf("Row %d has %d cells, want %d", i, len(g.Values[i]), n)
		}
	}

	// Axes ascend at fixed steps
	for i := 1; i < n; i++ {
		if g.Rows[i] <= g.Rows[i-1] {
			t.Error("Row axis must ascend")
		}
		if g.Cols[i] <= g.Cols[i-1] {
			t.Error("Col axis must ascend")
		}
	}
}

func TestGridContainsExactCenter(t *testing.T) {
	in, pol := fixture()
	g := CondoGrid(in, pol)

	// The current assumptions must land on the axis by equality, not by
	// nearest step, so presentation can highlight the current cell.
	countRows, countCols := 0, 0
	for _, r := range g.Rows {
		if r == in.BaseBuildingCostPSF {
			countRows++
		}
	}
	for _, c := range g.Cols {
		if c == in.SalePricePSF {
			countCols++
		}
	}
	if countRows != 1 {
		t.Errorf("Expected base cost exactly once in rows, got %d", countRows)
	}
	if countCols != 1 {
		t.Errorf("Expected sale price exactly once in cols, got %d", countCols)
	}
}

func TestCenterCellMatchesCalculator(t *testing.T) {
	in, pol := fixture()
	g := CondoGrid(in, pol)

	mid := pol.Grid.CellsPerAxis / 2
	want := underwrite.Calculate(in, pol).MethodResult(underwrite.MethodCondo).Residual
	got := g.Values[mid][mid]

	if got != want {
		t.Errorf("Center cell %+v must equal the direct calculation %+v", got, want)
	}
}

func TestCondoGridMonotoneAcrossAxes(t *testing.T) {
	in, pol := fixture()
	g := CondoGrid(in, pol)

	// Residual rises with sale price (left to right) and falls with hard
	// cost (top to bottom).
	for i := range g.Rows {
		for j := 1; j < len(g.Cols); j++ {
			if g.Values[i][j].Value <= g.Values[i][j-1].Value {
				t.Fatalf("Row %d not increasing across sale price", i)
			}
		}
	}
	for j := range g.Cols {
		for i := 1; i < len(g.Rows); i++ {
			if g.Values[i][j].Value >= g.Values[i-1][j].Value {
				t.Fatalf("Col %d not decreasing down hard cost", j)
			}
		}
	}
}

func TestRentalGridCenter(t *testing.T) {
	in, pol := fixture()
	in.ProductType = "rental"
	in.RentalExitStrategy = "hold"
	g := RentalGrid(in, pol)

	mid := pol.Grid.CellsPerAxis / 2
	if g.Rows[mid] != in.ExitCapRate {
		t.Errorf("Center row %f must equal the exit cap %f", g.Rows[mid], in.ExitCapRate)
	}
	if g.Cols[mid] != in.MarketRentPSF {
		t.Errorf("Center col %f must equal market rent %f", g.Cols[mid], in.MarketRentPSF)
	}

	want := underwrite.Calculate(in, pol).MethodResult(underwrite.MethodYOC).Residual
	if g.Values[mid][mid] != want {
		t.Errorf("Center cell %+v must equal the direct calculation %+v", g.Values[mid][mid], want)
	}
}

func TestRentalGridHigherRentRaisesResidual(t *testing.T) {
	in, pol := fixture()
	in.ProductType = "rental"
	in.RentalExitStrategy = "hold"
	g := RentalGrid(in, pol)

	for i := range g.Rows {
		for j := 1; j < len(g.Cols); j++ {
			if g.Values[i][j].Value <= g.Values[i][j-1].Value {
				t.Fatalf("Row %d: YOC residual must rise with market rent", i)
			}
		}
	}
}
