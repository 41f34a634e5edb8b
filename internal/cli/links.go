package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covtrace/tracetriage/internal/model"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage confirmed requirement/test-case links",
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List links",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		page, pageSize := pageFlags(cmd)
		list, err := client.ListLinks(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(list)
		}
		for _, l := range list.Items {
			conf := ""
			if l.Confidence != nil {
				conf = fmt.Sprintf(" (%.2f)", *l.Confidence)
			}
			fmt.Printf("%-12s %s %s %s [%s/%s]%s\n",
				l.ID, l.RequirementID, l.LinkType, l.TestCaseID, l.Source, l.CreatedBy, conf)
		}
		fmt.Printf("\n%d of %d (page %d)\n", len(list.Items), list.Total, list.Page.Page)
		return nil
	},
}

var linksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a manual link",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditLinks, "edit links"); err != nil {
			return err
		}
		reqID, _ := cmd.Flags().GetString("requirement")
		tcID, _ := cmd.Flags().GetString("testcase")
		linkType, _ := cmd.Flags().GetString("type")
		if reqID == "" || tcID == "" {
			return fmt.Errorf("--requirement and --testcase are required")
		}

		created, err := client.CreateLink(cmd.Context(), model.Link{
			RequirementID: reqID,
			TestCaseID:    tcID,
			LinkType:      model.LinkType(linkType),
			Source:        model.SourceManual,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", created.ID)
		return nil
	},
}

var linksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditLinks, "edit links"); err != nil {
			return err
		}
		if err := client.DeleteLink(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	addPageFlags(linksListCmd)
	linksListCmd.Flags().Bool("json", false, "output JSON")

	linksCreateCmd.Flags().String("requirement", "", "requirement id")
	linksCreateCmd.Flags().String("testcase", "", "test case id")
	linksCreateCmd.Flags().String("type", string(model.LinkCovers), "link type: covers, verifies, validates, related")

	linksCmd.AddCommand(linksListCmd, linksCreateCmd, linksDeleteCmd)
}
