package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covtrace/tracetriage/internal/model"
)

var testcasesCmd = &cobra.Command{
	Use:     "testcases",
	Aliases: []string{"tcs"},
	Short:   "Manage test cases",
}

var testcasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List test cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		page, pageSize := pageFlags(cmd)
		list, err := client.ListTestCases(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(list)
		}
		for _, tc := range list.Items {
			fmt.Printf("%-12s %-10s %-8s %s\n", tc.ID, tc.Module, tc.Priority, tc.Title)
		}
		fmt.Printf("\n%d of %d (page %d)\n", len(list.Items), list.Total, list.Page.Page)
		return nil
	},
}

var testcasesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		tc, err := client.GetTestCase(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(tc)
		}
		fmt.Printf("%s  %s\n", tc.ID, tc.Title)
		if tc.Description != "" {
			fmt.Println(tc.Description)
		}
		fmt.Printf("module=%s type=%s priority=%s status=%s version=%d\n",
			tc.Module, tc.Type, tc.Priority, tc.Status, tc.Version)
		return nil
	},
}

var testcasesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a test case",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditTestCases, "edit test cases"); err != nil {
			return err
		}
		created, err := client.CreateTestCase(cmd.Context(), testCaseFromFlags(cmd, model.TestCase{}))
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", created.ID)
		return nil
	},
}

var testcasesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditTestCases, "edit test cases"); err != nil {
			return err
		}
		current, err := client.GetTestCase(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		updated, err := client.UpdateTestCase(cmd.Context(), testCaseFromFlags(cmd, *current))
		if err != nil {
			return err
		}
		fmt.Printf("Updated %s (version %d)\n", updated.ID, updated.Version)
		return nil
	},
}

var testcasesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditTestCases, "edit test cases"); err != nil {
			return err
		}
		if err := client.DeleteTestCase(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	addPageFlags(testcasesListCmd)
	testcasesListCmd.Flags().Bool("json", false, "output JSON")
	testcasesGetCmd.Flags().Bool("json", false, "output JSON")

	for _, c := range []*cobra.Command{testcasesCreateCmd, testcasesUpdateCmd} {
		c.Flags().String("title", "", "title")
		c.Flags().String("description", "", "description")
		c.Flags().String("type", "", "test case type")
		c.Flags().String("priority", "", "priority")
		c.Flags().String("status", "", "status")
		c.Flags().String("module", "", "module")
		c.Flags().StringSlice("tag", nil, "tag (repeatable)")
	}

	testcasesCmd.AddCommand(
		testcasesListCmd,
		testcasesGetCmd,
		testcasesCreateCmd,
		testcasesUpdateCmd,
		testcasesDeleteCmd,
	)
}

func testCaseFromFlags(cmd *cobra.Command, base model.TestCase) model.TestCase {
	f := cmd.Flags()
	if f.Changed("title") {
		base.Title, _ = f.GetString("title")
	}
	if f.Changed("description") {
		base.Description, _ = f.GetString("description")
	}
	if f.Changed("type") {
		base.Type, _ = f.GetString("type")
	}
	if f.Changed("priority") {
		base.Priority, _ = f.GetString("priority")
	}
	if f.Changed("status") {
		base.Status, _ = f.GetString("status")
	}
	if f.Changed("module") {
		base.Module, _ = f.GetString("module")
	}
	if f.Changed("tag") {
		base.Tags, _ = f.GetStringSlice("tag")
	}
	return base
}
