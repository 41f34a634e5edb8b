package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"login", "register", "logout", "whoami",
		"review", "requirements", "testcases", "links", "suggestions",
		"matrix", "metrics", "analytics", "notifications",
		"users", "audit", "version",
	} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestManagementSubcommands(t *testing.T) {
	cases := []struct {
		parent *cobra.Command
		want   []string
	}{
		{requirementsCmd, []string{"list", "get", "create", "update", "delete"}},
		{testcasesCmd, []string{"list", "get", "create", "update", "delete"}},
		{linksCmd, []string{"list", "create", "delete"}},
		{suggestionsCmd, []string{"list", "generate", "export"}},
		{notificationsCmd, []string{"list", "read", "read-all"}},
		{usersCmd, []string{"list", "set-role", "delete"}},
	}

	for _, tc := range cases {
		names := make(map[string]bool)
		for _, c := range tc.parent.Commands() {
			names[c.Name()] = true
		}
		for _, w := range tc.want {
			if !names[w] {
				t.Errorf("%s missing subcommand %q", tc.parent.Name(), w)
			}
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
}
