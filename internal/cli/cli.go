// Package cli implements the floorplan command-line interface.
//
// The CLI runs the layout engine and estimator locally without the API
// server, database, or cache:
//   - generate: partition an envelope from flags or a TOML request file
//   - estimate: recover generation parameters from a layout JSON file
//   - render: draw a layout JSON file as SVG
package cli

import (
	"context"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion sets the values printed by --version. main injects them via
// ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// NewRootCommand builds the command tree. Logs go to errOut.
func NewRootCommand(errOut io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "floorplan",
		Short:         "Generate and inspect rectangular floor plans",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := charmlog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(errOut, level)))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("floorplan %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newEstimateCmd())
	root.AddCommand(newRenderCmd())

	return root
}

// Execute runs the CLI with ctx and the process's standard streams.
func Execute(ctx context.Context, errOut io.Writer) error {
	return NewRootCommand(errOut).ExecuteContext(ctx)
}
