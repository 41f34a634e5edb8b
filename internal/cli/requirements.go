package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covtrace/tracetriage/internal/model"
)

var requirementsCmd = &cobra.Command{
	Use:     "requirements",
	Aliases: []string{"reqs"},
	Short:   "Manage requirements",
}

var requirementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List requirements",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		page, pageSize := pageFlags(cmd)
		list, err := client.ListRequirements(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(list)
		}
		for _, r := range list.Items {
			fmt.Printf("%-12s %-10s %-8s %s\n", r.ID, r.Module, r.Priority, r.Title)
		}
		fmt.Printf("\n%d of %d (page %d)\n", len(list.Items), list.Total, list.Page.Page)
		return nil
	},
}

var requirementsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one requirement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		r, err := client.GetRequirement(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(r)
		}
		fmt.Printf("%s  %s\n", r.ID, r.Title)
		if r.Description != "" {
			fmt.Println(r.Description)
		}
		fmt.Printf("module=%s type=%s priority=%s status=%s version=%d\n",
			r.Module, r.Type, r.Priority, r.Status, r.Version)
		return nil
	},
}

var requirementsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a requirement",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditRequirements, "edit requirements"); err != nil {
			return err
		}
		created, err := client.CreateRequirement(cmd.Context(), requirementFromFlags(cmd, model.Requirement{}))
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", created.ID)
		return nil
	},
}

var requirementsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a requirement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditRequirements, "edit requirements"); err != nil {
			return err
		}
		current, err := client.GetRequirement(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		updated, err := client.UpdateRequirement(cmd.Context(), requirementFromFlags(cmd, *current))
		if err != nil {
			return err
		}
		fmt.Printf("Updated %s (version %d)\n", updated.ID, updated.Version)
		return nil
	},
}

var requirementsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a requirement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionEditRequirements, "edit requirements"); err != nil {
			return err
		}
		if err := client.DeleteRequirement(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	addPageFlags(requirementsListCmd)
	requirementsListCmd.Flags().Bool("json", false, "output JSON")
	requirementsGetCmd.Flags().Bool("json", false, "output JSON")

	for _, c := range []*cobra.Command{requirementsCreateCmd, requirementsUpdateCmd} {
		c.Flags().String("title", "", "title")
		c.Flags().String("description", "", "description")
		c.Flags().String("type", "", "requirement type")
		c.Flags().String("priority", "", "priority")
		c.Flags().String("status", "", "status")
		c.Flags().String("module", "", "module")
		c.Flags().StringSlice("tag", nil, "tag (repeatable)")
	}

	requirementsCmd.AddCommand(
		requirementsListCmd,
		requirementsGetCmd,
		requirementsCreateCmd,
		requirementsUpdateCmd,
		requirementsDeleteCmd,
	)
}

// requirementFromFlags overlays the set flags onto base, so update only
// touches fields the user named.
func requirementFromFlags(cmd *cobra.Command, base model.Requirement) model.Requirement {
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

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("page-size", 50, "items per page")
}

func pageFlags(cmd *cobra.Command) (int, int) {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	return page, pageSize
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
