package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notifs"},
	Short:   "List and manage notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		list, err := client.Notifications(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if asJSON(cmd) {
			return printJSON(list)
		}
		for _, n := range list.Items {
			mark := " "
			if !n.Read {
				mark = "*"
			}
			fmt.Printf("%s %-12s %s  %s\n", mark, n.ID, n.CreatedAt.Format("2006-01-02 15:04"), n.Title)
		}
		fmt.Printf("\n%d unread\n", list.UnreadCount)
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		return client.MarkNotificationRead(cmd.Context(), args[0])
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		return client.MarkAllNotificationsRead(cmd.Context())
	},
}

func init() {
	notificationsListCmd.Flags().Int("limit", 20, "maximum notifications to fetch")
	notificationsListCmd.Flags().Bool("json", false, "output JSON")

	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd, notificationsReadAllCmd)
}
