package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/willbeason/fractal-trees/pkg/branch"
	"github.com/willbeason/fractal-trees/pkg/geometry"
	"github.com/willbeason/fractal-trees/pkg/render"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type app struct {
	params Params

	configPath string
	verbose    bool

	logger *slog.Logger
}

func mainCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Grow fractal trees from a handful of shape parameters",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "file of parameters (JSON, YAML or TOML); flags given on the command line take precedence")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debugging information to stderr")
	bindParams(flags)

	cmd.AddCommand(renderCmd(a), dumpCmd(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	render.SetLogger(a.logger)

	params, err := loadParams(cmd.Flags(), a.configPath)
	if err != nil {
		return err
	}
	a.params = params

	if a.configPath != "" {
		a.logger.Debug("loaded parameters", "path", a.configPath)
	}

	return nil
}

// generate grows the tree described by the merged parameters.
func (a *app) generate(cmd *cobra.Command) ([]branch.Segment, error) {
	p := a.params

	err := p.Validate()
	if err != nil {
		return nil, err
	}

	origin := geometry.XY{X: p.OriginX, Y: p.OriginY}

	a.logger.Debug("generating tree",
		"origin", origin,
		"length", p.Length,
		"segments", p.Segments,
		"angle", p.Angle,
		"jitter", p.Jitter,
		"baseWidth", p.BaseWidth)

	opts := []branch.Option{
		branch.WithLengthDecay(p.LengthDecay),
		branch.WithWidthDecay(p.WidthDecay),
	}
	// A seed of zero leaves the jitter seeded from the clock.
	if p.Seed != 0 {
		opts = append(opts, branch.WithSeed(p.Seed))
	}

	segments, err := branch.GenerateFractal(origin, p.Length, p.Segments, p.Angle, p.Jitter, p.BaseWidth, opts...)
	if err != nil {
		return nil, err
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(cmd.ErrOrStderr(), "generated %d segments\n", len(segments))

	return segments, nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
