package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covtrace/tracetriage/internal/model"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionManageUsers, "manage users"); err != nil {
			return err
		}
		page, pageSize := pageFlags(cmd)
		list, err := client.ListUsers(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(list)
		}
		for _, u := range list.Items {
			fmt.Printf("%-12s %-10s %s\n", u.ID, u.Role, u.Email)
		}
		fmt.Printf("\n%d of %d (page %d)\n", len(list.Items), list.Total, list.Page.Page)
		return nil
	},
}

var usersSetRoleCmd = &cobra.Command{
	Use:   "set-role <id> <role>",
	Short: "Change a user's role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionManageUsers, "manage users"); err != nil {
			return err
		}
		role := model.Role(args[1])
		switch role {
		case model.RoleAdmin, model.RoleReviewer, model.RoleViewer:
		default:
			return fmt.Errorf("unknown role %q (admin, reviewer, viewer)", args[1])
		}

		u, err := client.SetUserRole(cmd.Context(), args[0], role)
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", u.Email, u.Role)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionManageUsers, "manage users"); err != nil {
			return err
		}
		if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit log (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAction(model.ActionViewAuditLog, "view the audit log"); err != nil {
			return err
		}
		page, pageSize := pageFlags(cmd)
		list, err := client.AuditLog(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(list)
		}
		for _, e := range list.Items {
			fmt.Printf("%s %-12s %-20s %s/%s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.UserID, e.Action, e.ResourceType, e.ResourceID)
		}
		fmt.Printf("\n%d of %d (page %d)\n", len(list.Items), list.Total, list.Page.Page)
		return nil
	},
}

func init() {
	addPageFlags(usersListCmd)
	usersListCmd.Flags().Bool("json", false, "output JSON")
	addPageFlags(auditCmd)
	auditCmd.Flags().Bool("json", false, "output JSON")

	usersCmd.AddCommand(usersListCmd, usersSetRoleCmd, usersDeleteCmd)
}
