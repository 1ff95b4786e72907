package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// shellCompletion describes one supported shell: how to write its script
// and where a user typically installs it.
type shellCompletion struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shellCompletions = []shellCompletion{
	{"bash", "chartgrid completion bash > ~/.local/share/bash-completion/completions/chartgrid",
		func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
	{"zsh", `chartgrid completion zsh > "${fpath[1]}/_chartgrid"`,
		func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
	{"fish", "chartgrid completion fish > ~/.config/fish/completions/chartgrid.fish",
		func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
	{"powershell", "chartgrid completion powershell >> $PROFILE",
		func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
}

func completionHelp() string {
	var b strings.Builder
	b.WriteString("Print a completion script for chartgrid's commands and flags.\n")
	b.WriteString("Install it once per shell:\n\n")
	for _, s := range shellCompletions {
		b.WriteString("  " + s.install + "\n")
	}
	return b.String()
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	names := make([]string, len(shellCompletions))
	for i, s := range shellCompletions {
		names[i] = s.name
	}
	return &cobra.Command{
		Use:                   "completion [" + strings.Join(names, "|") + "]",
		Short:                 "Generate shell completion scripts",
		Long:                  completionHelp(),
		DisableFlagsInUseLine: true,
		ValidArgs:             names,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range shellCompletions {
				if s.name == args[0] {
					return s.gen(cmd.Root(), cmd.OutOrStdout())
				}
			}
			return nil
		},
	}
}
