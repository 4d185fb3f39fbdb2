package cli

import (
	"github.com/spf13/cobra"
)

// graphExtensions are offered by shell completion for graph file arguments.
var graphExtensions = []string{
	"graphml", "xml", "json", "yaml", "yml", "dot", "gv",
	"gz", "zst", "lz4",
}

// completeGraphFiles restricts file completion to graph documents.
func completeGraphFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return graphExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for graphkit.

Bash:
  $ source <(graphkit completion bash)

Zsh:
  $ graphkit completion zsh > "${fpath[1]}/_graphkit"

Fish:
  $ graphkit completion fish > ~/.config/fish/completions/graphkit.fish

PowerShell:
  PS> graphkit completion powershell | Out-String | Invoke-Expression

File arguments of convert, info and validate complete to graph documents
only (.graphml, .json, .yaml, .dot and their compressed forms).
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
