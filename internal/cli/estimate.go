package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/estimator"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/render"
)

func newEstimateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "estimate <layout.json>",
		Short: "Recover generation parameters from a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLayout(cmd, args[0])
			if err != nil {
				return err
			}

			est := estimator.New(domain.DefaultConfig()).Estimate(l)
			loggerFromContext(cmd.Context()).Debug("Estimated parameters", "variant", estimator.Variant(l))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(est)
			}
			_, err = fmt.Fprintln(out, estimateTable(est))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		output string
		scale  float64
		areas  bool
		title  string
	)

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a layout as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLayout(cmd, args[0])
			if err != nil {
				return err
			}

			opts := []render.SVGOption{render.WithScale(scale)}
			if areas {
				opts = append(opts, render.WithAreas())
			}
			if title != "" {
				opts = append(opts, render.WithTitle(title))
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				_, err := w.Write(render.RenderSVG(l, opts...))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().Float64Var(&scale, "scale", 10, "pixels per unit")
	cmd.Flags().BoolVar(&areas, "areas", false, "print room areas under labels")
	cmd.Flags().StringVar(&title, "title", "", "SVG title")
	return cmd
}

// readLayout accepts a bare layout or a generate result wrapping one.
// "-" reads stdin.
func readLayout(cmd *cobra.Command, path string) (domain.Layout, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Layout{}, err
	}

	var wrapped struct {
		Layout *domain.Layout `json:"layout"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Layout != nil {
		return *wrapped.Layout, wrapped.Layout.Validate()
	}

	var l domain.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return domain.Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l, l.Validate()
}
