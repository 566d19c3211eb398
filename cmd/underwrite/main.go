package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"land_residual/pkg/core/policy"
	"land_residual/pkg/core/sanity"
	"land_residual/pkg/core/sensitivity"
	"land_residual/pkg/core/underwrite"
	"land_residual/pkg/core/utils"
	"land_residual/pkg/core/validate"
	"land_residual/pkg/models"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: calculate, check, or sensitivity")
	dealPath := flag.String("deal", "", "Deal assumptions file (HJSON/JSON, partial over defaults)")
	policyPath := flag.String("policy", "", "Policy YAML override (optional)")
	reportPath := flag.String("report", "", "Write a markdown summary to this path")
	flag.Parse()

	godotenv.Load()

	pol := policy.Default()
	if *policyPath != "" {
		loaded, err := policy.Load(*policyPath)
		if err != nil {
			fmt.Printf("Error loading policy: %v\n", err)
			os.Exit(1)
		}
		pol = loaded
	}
	if path := os.Getenv("UNDERWRITE_POLICY"); path != "" && *policyPath == "" {
		loaded, err := policy.Load(path)
		if err != nil {
			fmt.Printf("Error loading policy from UNDERWRITE_POLICY: %v\n", err)
			os.Exit(1)
		}
		pol = loaded
	}

	in := models.NewDealInputs()
	if *dealPath != "" {
		raw, err := os.ReadFile(*dealPath)
		if err != nil {
			fmt.Printf("Error reading deal file: %v\n", err)
			os.Exit(1)
		}
		patch, err := models.ParseDealPatch(string(raw))
		if err != nil {
			fmt.Printf("Error parsing deal file: %v\n", err)
			os.Exit(1)
		}
		in, err = models.ApplyPatch(in, patch)
		if err != nil {
			fmt.Printf("Error applying deal file: %v\n", err)
			os.Exit(1)
		}
	}

	// The engine is total; malformed input gets rejected here, not there.
	if issues := validate.DealInputs(in); len(issues) > 0 {
		fmt.Println("Deal inputs failed validation:")
		for _, issue := range issues {
			fmt.Printf("  - %s\n", issue)
		}
		os.Exit(1)
	}

	calcs := underwrite.Calculate(in, pol)
	checks := sanity.Generate(in, calcs, pol)

	switch *mode {
	case "calculate":
		printSummary(in, calcs)
		printChecks(checks)
	case "check":
		printChecks(checks)
	case "sensitivity":
		printGrid("Condo Residual Sensitivity", sensitivity.CondoGrid(in, pol))
		fmt.Println()
		printGrid("Rental YOC Residual Sensitivity", sensitivity.RentalGrid(in, pol))
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}

	if *reportPath != "" {
		report := utils.BuildMarkdownReport(in, calcs, checks)
		if !utils.ValidateMarkdown(report) {
			fmt.Println("Error: generated report failed markdown validation")
			os.Exit(1)
		}
		if err := os.WriteFile(*reportPath, []byte(report), 0644); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *reportPath)
	}
}

func printSummary(in models.DealInputs, c underwrite.DealCalculations) {
	fmt.Printf("%s — %.0f units, %.0f SF gross, TDC ex land %s\n\n",
		in.Name, in.Units, c.GrossBuildingSF, fmtMoney(c.TotalDevCostExLand))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Method", "Residual", "Per Unit", "Per SF Land", "Per Bldg SF"})
	for _, mr := range c.Methods {
		label := mr.Label
		if mr.Method == c.PrimaryMethod {
			label += " *"
		}
		t.AppendRow(table.Row{label, fmtMetric(mr.Residual), fmtMetric(mr.PerUnit),
			fmtMetric(mr.PerSFLand), fmtMetric(mr.PerBuildableSF)})
	}
	t.Render()

	fmt.Printf("\nPrimary: %s\n", c.PrimaryLabel)
	fmt.Printf("Listing range: %s to %s\n", fmtMetric(c.ListingLow), fmtMetric(c.ListingHigh))
	fmt.Printf("Buyer spectrum: %s to %s\n", fmtMetric(c.SpectrumLow), fmtMetric(c.SpectrumHigh))
	fmt.Printf("NOI %s | Expense ratio %s | GRM %s | Dev spread %s bps\n",
		fmtMoney(c.NOI), fmtPct(c.ExpenseRatio), fmtNum(c.GRM), fmtNum(c.DevSpreadBps))
}

func printChecks(checks []sanity.Check) {
	if len(checks) == 0 {
		fmt.Println("\nNo sanity findings.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Check", "Type", "Message"})
	for _, chk := range checks {
		t.AppendRow(table.Row{chk.ID, chk.Type, chk.Message})
	}
	fmt.Println()
	t.Render()
}

func printGrid(title string, g sensitivity.Grid) {
	fmt.Println(title)
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	header := table.Row{fmt.Sprintf("%s \\ %s", g.RowLabel, g.ColLabel)}
	for _, col := range g.Cols {
		header = append(header, fmt.Sprintf("%.4g", col))
	}
	t.AppendHeader(header)

	for i, rowVal := range g.Rows {
		row := table.Row{fmt.Sprintf("%.4g", rowVal)}
		for _, v := range g.Values[i] {
			row = append(row, fmtMetric(v))
		}
		t.AppendRow(row)
	}
	t.Render()
}

func fmtMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.0f", -v)
	}
	return fmt.Sprintf("$%.0f", v)
}

func fmtMetric(m underwrite.Metric) string {
	if !m.Defined {
		return "N/A"
	}
	return fmtMoney(m.Value)
}

func fmtPct(m underwrite.Metric) string {
	if !m.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", m.Value*100)
}

func fmtNum(m underwrite.Metric) string {
	if !m.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", m.Value)
}
