package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Show the traceability matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		export, _ := cmd.Flags().GetString("export")
		if export != "" {
			data, err := client.ExportTraceabilityMatrix(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(export, data, 0644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Exported to %s\n", export)
			return nil
		}

		matrix, err := client.TraceabilityMatrix(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(matrix)
		}

		for _, row := range matrix.Rows {
			mark := " "
			if row.Covered {
				mark = "✓"
			}
			fmt.Printf("%s %-12s %-40s %s\n",
				mark, row.RequirementID, truncateCell(row.Title, 40), strings.Join(row.TestCaseIDs, ", "))
		}
		fmt.Printf("\nCoverage: %d/%d requirements (%.1f%%)\n",
			matrix.Covered, matrix.Requirements, matrix.CoveragePercent)
		return nil
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show aggregate project metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		m, err := client.Metrics(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(m)
		}
		fmt.Printf("Requirements:        %d\n", m.Requirements)
		fmt.Printf("Test cases:          %d\n", m.TestCases)
		fmt.Printf("Links:               %d\n", m.Links)
		fmt.Printf("Pending suggestions: %d\n", m.PendingSuggestions)
		fmt.Printf("Coverage:            %.1f%%\n", m.CoveragePercent)
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show historical suggestion review outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		a, err := client.SuggestionAnalytics(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(a)
		}
		fmt.Printf("Generated:       %d\n", a.Generated)
		fmt.Printf("Accepted:        %d\n", a.Accepted)
		fmt.Printf("Rejected:        %d\n", a.Rejected)
		fmt.Printf("Acceptance rate: %.1f%%\n", a.AcceptanceRate*100)
		fmt.Printf("Mean score:      %.3f\n", a.MeanScore)
		return nil
	},
}

func init() {
	matrixCmd.Flags().String("export", "", "write the CSV export to a file instead")
	matrixCmd.Flags().Bool("json", false, "output JSON")
	metricsCmd.Flags().Bool("json", false, "output JSON")
	analyticsCmd.Flags().Bool("json", false, "output JSON")
}

func truncateCell(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
