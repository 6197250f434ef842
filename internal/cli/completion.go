package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandel/pkg/fractal"
	"github.com/matzehuels/mandel/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mandel.

Bash:
  $ source <(mandel completion bash)

Zsh:
  $ mandel completion zsh > "${fpath[1]}/_mandel"

Fish:
  $ mandel completion fish > ~/.config/fish/completions/mandel.fish

PowerShell:
  PS> mandel completion powershell | Out-String | Invoke-Expression
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
}

// registerValueCompletions completes the enumerated flags of cmd. Flags the
// command does not define are skipped.
func registerValueCompletions(cmd *cobra.Command) {
	formats := make([]string, len(io.Formats))
	for i, f := range io.Formats {
		formats[i] = string(f)
	}
	values := map[string][]string{
		"region":  fractal.RegionNames(),
		"palette": {"linear", "saturate"},
		"mapping": {"inclusive", "exclusive"},
		"theme":   {"grayscale", "fire", "water"},
		"format":  formats,
	}
	for flag, vals := range values {
		if cmd.Flags().Lookup(flag) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
	}
}
