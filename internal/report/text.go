// internal/report/text.go
package report

import (
	"fmt"
	"strings"
)

// Subject is the email subject line for a report.
func Subject(r Report) string {
	name := r.CompanyName
	if name == "" {
		name = "your organization"
	}
	return fmt.Sprintf("InfraIQ assessment for %s: %s %s", name, r.Score.MaturityEmoji, r.Score.MaturityLabel)
}

// PlainText renders the report as an email body.
func PlainText(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s (score %d/100)\n", r.Score.MaturityEmoji, r.Score.MaturityLabel, r.Score.TotalScore)
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n", r.Description)
	}

	b.WriteString("\nPillar scores vs industry benchmark\n")
	for _, bm := range r.Benchmarks {
		fmt.Fprintf(&b, "  %-15s %3d  (benchmark %d, %+d)\n", bm.Name, bm.Score, bm.Benchmark, bm.Gap)
	}

	b.WriteString("\nFinancial projection (annual)\n")
	fmt.Fprintf(&b, "  Estimated waste:            $%d (%.1f%% of $%d/month)\n",
		r.Financials.WasteEstimate, r.Financials.WastePercentage, r.Financials.MonthlySpend)
	fmt.Fprintf(&b, "  Optimization potential:     $%d\n", r.Financials.CostOptimizationPotential)
	fmt.Fprintf(&b, "  ROI projection:             $%d\n", r.Financials.ROIProjection)

	if len(r.Recommendations) > 0 {
		b.WriteString("\nRecommendations\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  %d. [%s] %s: %s (%s, %s)\n", i+1, rec.Priority, rec.Title, rec.Description, rec.Impact, rec.Timeline)
		}
	}

	b.WriteString("\n90-day roadmap\n")
	for _, phase := range r.Roadmap {
		fmt.Fprintf(&b, "  %s: %s\n", phase.Phase, phase.Title)
		for _, item := range phase.Items {
			fmt.Fprintf(&b, "    - %s\n", item)
		}
	}

	return b.String()
}
