package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/engine"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/render"
)

const (
	formatJSON  = "json"
	formatTable = "table"
	formatSVG   = "svg"
)

// requestFile is the TOML or YAML form of a generation request.
type requestFile struct {
	Width               float64 `toml:"width" yaml:"width"`
	Height              float64 `toml:"height" yaml:"height"`
	MasterRooms         *int    `toml:"master_rooms" yaml:"master_rooms"`
	UnattachedBathrooms *int    `toml:"unattached_bathrooms" yaml:"unattached_bathrooms"`
	Cars                *int    `toml:"cars" yaml:"cars"`
	Bikes               *int    `toml:"bikes" yaml:"bikes"`
	Orientation         string  `toml:"orientation" yaml:"orientation"`
}

// readRequestFile picks the decoder from the extension; anything other than
// .yaml or .yml is read as TOML.
func readRequestFile(path string) (requestFile, error) {
	var rf requestFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return rf, err
		}
		err = yaml.Unmarshal(data, &rf)
		return rf, err
	default:
		_, err := toml.DecodeFile(path, &rf)
		return rf, err
	}
}

type generateOpts struct {
	file        string
	width       float64
	height      float64
	masterRooms int
	bathrooms   int
	cars        int
	bikes       int
	orientation string
	format      string
	output      string
	scale       float64
}

func newGenerateCmd() *cobra.Command {
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a layout for an envelope",
		Example: `  floorplan generate --width 40 --height 30 --master-rooms 2 --cars 1
  floorplan generate --file house.toml --format svg -o house.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "TOML or YAML request file; flags override its values")
	f.Float64Var(&opts.width, "width", 0, "envelope width")
	f.Float64Var(&opts.height, "height", 0, "envelope height")
	f.IntVar(&opts.masterRooms, "master-rooms", 1, "master bedrooms with attached bathrooms")
	f.IntVar(&opts.bathrooms, "bathrooms", 1, "unattached bathrooms")
	f.IntVar(&opts.cars, "cars", 0, "car parking spaces")
	f.IntVar(&opts.bikes, "bikes", 0, "bike parking spaces")
	f.StringVar(&opts.orientation, "orientation", "", "standard or rotated")
	f.StringVar(&opts.format, "format", formatTable, "output format (json, table, svg)")
	f.StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	f.Float64Var(&opts.scale, "scale", 10, "SVG pixels per unit")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	switch opts.format {
	case formatJSON, formatTable, formatSVG:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	req, orientation, err := buildRequest(cmd, opts)
	if err != nil {
		return err
	}

	cfg := domain.DefaultConfig()
	cfg.Orientation = orientation

	prog := newProgress(logger)
	res, err := engine.New(cfg).Generate(req)
	if err != nil {
		return err
	}
	prog.done("Generated layout", "rooms", len(res.Layout.Rooms))

	for _, d := range res.Diagnostics {
		logger.Warn(d.Message, "code", d.Code, "room", d.Room)
	}

	return writeOutput(cmd, opts.output, func(w io.Writer) error {
		switch opts.format {
		case formatJSON:
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		case formatSVG:
			_, err := w.Write(render.RenderSVG(res.Layout, render.WithScale(opts.scale)))
			return err
		case formatTable:
			_, err := fmt.Fprintln(w, roomTable(res.Layout))
			return err
		default:
			return fmt.Errorf("unknown format %q", opts.format)
		}
	})
}

// buildRequest merges the request file (if any) with explicitly set flags.
func buildRequest(cmd *cobra.Command, opts generateOpts) (domain.GenerationRequest, domain.Orientation, error) {
	req := domain.GenerationRequest{
		Width:               opts.width,
		Height:              opts.height,
		MasterRooms:         opts.masterRooms,
		UnattachedBathrooms: opts.bathrooms,
		Cars:                opts.cars,
		Bikes:               opts.bikes,
	}
	orientation := opts.orientation

	if opts.file != "" {
		rf, err := readRequestFile(opts.file)
		if err != nil {
			return req, "", fmt.Errorf("read request file: %w", err)
		}
		flags := cmd.Flags()
		if !flags.Changed("width") {
			req.Width = rf.Width
		}
		if !flags.Changed("height") {
			req.Height = rf.Height
		}
		if rf.MasterRooms != nil && !flags.Changed("master-rooms") {
			req.MasterRooms = *rf.MasterRooms
		}
		if rf.UnattachedBathrooms != nil && !flags.Changed("bathrooms") {
			req.UnattachedBathrooms = *rf.UnattachedBathrooms
		}
		if rf.Cars != nil && !flags.Changed("cars") {
			req.Cars = *rf.Cars
		}
		if rf.Bikes != nil && !flags.Changed("bikes") {
			req.Bikes = *rf.Bikes
		}
		if !flags.Changed("orientation") {
			orientation = rf.Orientation
		}
	}

	o, err := domain.ParseOrientation(orientation)
	if err != nil {
		return req, "", err
	}
	return req, o, nil
}

func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("Wrote " + path)
	return nil
}
