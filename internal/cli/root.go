package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version, set by SetVersion
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the build information shown by --version and `version`.
// Typically called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionText() string {
	return fmt.Sprintf("lvfusion %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

// NewRootCommand builds the command tree. Results are written to out and
// logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "lvfusion",
		Short:        "lvfusion minimizes higher-order discrete energies with alpha-expansion",
		Long:         `lvfusion runs alpha-expansion and fusion moves on multi-label energy models with cliques of order up to ten, reducing every move to a binary problem solved by roof duality on a max-flow network.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(errOut, level)))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(versionText())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newBinaryCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the lvfusion CLI with ctx, which main cancels on SIGINT/SIGTERM.
func Execute(ctx context.Context, out, errOut io.Writer) error {
	return NewRootCommand(out, errOut).ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	}
}
