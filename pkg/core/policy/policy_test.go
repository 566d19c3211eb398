package policy

import (
	"testing"
)

func TestDefaultsAreCoherent(t *testing.T) {
	p := Default()

	if len(p.ULASchedule) == 0 {
		t.Fatal("Default ULA schedule must not be empty")
	}
	for _, tier := range p.ULASchedule {
		if tier.Rate <= 0 || tier.Rate >= 1 {
			t.Errorf("Tier rate %f out of (0,1)", tier.Rate)
		}
	}
	if p.Grid.CellsPerAxis%2 != 1 {
		t.Error("Default grid must have an odd cell count")
	}
	if p.Listing.Low >= 0 || p.Listing.High <= 0 {
		t.Error("Listing band must widen downward and upward")
	}
}

func TestUnmarshalOverlaysDefaults(t *testing.T) {
	doc := []byte(`
sanity:
  expense_ratio_max: 0.45
grid:
  cells_per_axis: 5
`)
	p, err := Unmarshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if p.Sanity.ExpenseRatioMax != 0.45 {
		t.Errorf("Override lost: %f", p.Sanity.ExpenseRatioMax)
	}
	if p.Grid.CellsPerAxis != 5 {
		t.Errorf("Override lost: %d", p.Grid.CellsPerAxis)
	}
	// Untouched defaults survive the overlay
	if len(p.ULASchedule) != 2 {
		t.Errorf("Defaults clobbered: %d tiers", len(p.ULASchedule))
	}
}

func TestUnmarshalRejectsEvenGrid(t *testing.T) {
	doc := []byte("grid:\n  cells_per_axis: 6\n")
	if _, err := Unmarshal(doc); err == nil {
		t.Error("Even grid size must be rejected: the center cell would drift")
	}
}

func TestAMIRentFallback(t *testing.T) {
	p := Default()
	known := p.AMIRent("low-80-ami")
	if known != 1766 {
		t.Errorf("Expected published rent 1766, got %f", known)
	}

	// Unknown levels fall back to the lowest published rent
	fallback := p.AMIRent("unknown-level")
	lowest := p.AMIRents["extremely-low-30-ami"]
	if fallback != lowest {
		t.Errorf("Expected fallback %f, got %f", lowest, fallback)
	}
}
