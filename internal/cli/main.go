package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCommand()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "hlselect <transcript>",
		Short:        "Pick one highlight segment from a timed transcript",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("config", "", "Config file (default ~/.config/hlselect/config.toml)")
	root.Flags().String("out", "", "Output directory (default from config, \"out\")")
	root.Flags().String("model", "", "Model used for automated selection")
	root.Flags().String("log-level", "", "Log level: debug, info, warn, error")

	// Hidden tuning flag (internal)
	root.Flags().Int("max-attempts", -1, "Max automated requests while replies are degenerate (0 = unbounded)")
	_ = root.Flags().MarkHidden("max-attempts")

	return root
}
