package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/covtrace/tracetriage/internal/cache"
	"github.com/covtrace/tracetriage/internal/filter"
	"github.com/covtrace/tracetriage/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Open the interactive suggestion review dashboard",
	Long: `Open an interactive TUI for triaging pending link suggestions.

The dashboard starts from your last-used filters. Pass --view to start
from an explicit filter state instead; the same string is printed on
exit so a view can be shared or scripted.

Examples:
  tracetriage review
  tracetriage review --view 'min_score=0.7&sort_by=created_at'
  tracetriage review --view 'algorithm=semantic&search=auth'`,
	Args: cobra.NoArgs,
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().String("view", "", "initial filter state as a query string")
}

func runReview(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	view, _ := cmd.Flags().GetString("view")
	filters := filter.Resolve(view, cfg.FilterSnapshotPath())

	// The entity cache is an optimization; the dashboard works without it.
	var db *cache.DB
	if opened, err := cache.Open(cfg.CachePath()); err == nil {
		db = opened
		defer db.Close()
	} else {
		log.Warn("opening entity cache failed", zap.Error(err))
	}

	sessionLost, err := tui.Run(tui.Options{
		Client:       client,
		Store:        store,
		Cache:        db,
		Logger:       log,
		Filters:      filters,
		SnapshotPath: cfg.FilterSnapshotPath(),
		PageSize:     cfg.UI.PageSize,
		PollInterval: cfg.PollInterval(),
		Debounce:     cfg.Debounce(),
		NotifLimit:   cfg.UI.NotificationLimit,
	})
	if err != nil {
		return err
	}
	if sessionLost {
		return errors.New("session expired; run 'tracetriage login' to continue")
	}

	if final, ok := filter.LoadSnapshot(cfg.FilterSnapshotPath()); ok && !final.IsDefault() {
		fmt.Fprintf(os.Stderr, "View: %s\n", final.EncodeString())
	}
	return nil
}
