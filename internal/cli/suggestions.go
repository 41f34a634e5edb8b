package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/covtrace/tracetriage/internal/filter"
	"github.com/covtrace/tracetriage/internal/model"
)

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Generate, list, and export link suggestions",
}

var suggestionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending suggestions (non-interactive)",
	Long: `List pending suggestions without opening the dashboard. Accepts the
same --view query string as 'review', so a dashboard view can be dumped
or piped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		view, _ := cmd.Flags().GetString("view")
		filters := filter.DecodeString(view)

		page, pageSize := pageFlags(cmd)
		list, err := client.PendingSuggestions(cmd.Context(), filters.Encode(), page, pageSize)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(list)
		}
		for _, s := range list.Items {
			fmt.Printf("%-12s %.2f %-10s %s -> %s\n",
				s.ID, s.SimilarityScore, s.Method, s.RequirementID, s.TestCaseID)
		}
		fmt.Printf("\n%d of %d (page %d)\n", len(list.Items), list.Total, list.Page.Page)
		return nil
	},
}

var suggestionsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the server to generate new suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionGenerateSuggestions, "generate suggestions"); err != nil {
			return err
		}
		result, err := client.GenerateSuggestions(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%d suggestions generated\n", result.Created)
		return nil
	},
}

var suggestionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all suggestions as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		data, err := client.ExportSuggestionsCSV(cmd.Context())
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
		return nil
	},
}

func init() {
	suggestionsListCmd.Flags().String("view", "", "filter state as a query string")
	suggestionsListCmd.Flags().Bool("json", false, "output JSON")
	addPageFlags(suggestionsListCmd)

	suggestionsExportCmd.Flags().StringP("out", "o", "", "output file ('-' for stdout)")

	suggestionsCmd.AddCommand(suggestionsListCmd, suggestionsGenerateCmd, suggestionsExportCmd)
}
