package utils

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"land_residual/pkg/core/sanity"
	"land_residual/pkg/core/underwrite"
	"land_residual/pkg/models"
)

// BuildMarkdownReport renders one underwriting run as a Markdown document
// for export. Presentation only; nothing here feeds back into the engine.
func BuildMarkdownReport(in models.DealInputs, c underwrite.DealCalculations, checks []sanity.Check) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Land Residual Summary — %s\n\n", in.Name)
	if in.PropertyAddress != "" {
		fmt.Fprintf(&b, "%s (APN %s)\n\n", in.PropertyAddress, in.APN)
	}

	fmt.Fprintf(&b, "## Project\n\n")
	fmt.Fprintf(&b, "- Units: %.0f at %.0f SF average (%.0f SF sellable, %.0f SF gross)\n",
		in.Units, in.AvgUnitSF, c.TotalSellableSF, c.GrossBuildingSF)
	fmt.Fprintf(&b, "- Total dev cost ex land: %s (hard %s / soft %s / carry %s)\n\n",
		money(c.TotalDevCostExLand), money(c.TotalHardCosts), money(c.TotalSoftCosts), money(c.TotalFinancingCarry))

	fmt.Fprintf(&b, "## Residual Land Value by Method\n\n")
	fmt.Fprintf(&b, "| Method | Residual | Per Unit | Per SF Land |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	for _, mr := range c.Methods {
		marker := ""
		if mr.Method == c.PrimaryMethod {
			marker = " (primary)"
		}
		fmt.Fprintf(&b, "| %s%s | %s | %s | %s |\n",
			mr.Label, marker, metric(mr.Residual), metric(mr.PerUnit), metric(mr.PerSFLand))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Pricing Guidance\n\n")
	fmt.Fprintf(&b, "- Listing range: %s to %s\n", metric(c.ListingLow), metric(c.ListingHigh))
	fmt.Fprintf(&b, "- Full buyer spectrum: %s to %s\n\n", metric(c.SpectrumLow), metric(c.SpectrumHigh))

	if len(checks) > 0 {
		fmt.Fprintf(&b, "## Sanity Checks\n\n")
		for _, chk := range checks {
			fmt.Fprintf(&b, "- **%s** [%s]: %s\n", chk.ID, chk.Type, chk.Message)
		}
	}

	return b.String()
}

// ValidateMarkdown checks the rendered report parses cleanly. Goldmark is
// permissive, so this catches structural breakage, not style.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.0f", -v)
	}
	return fmt.Sprintf("$%.0f", v)
}

func metric(m underwrite.Metric) string {
	if !m.Defined {
		return "N/A"
	}
	return money(m.Value)
}
