package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/willbeason/fractal-trees/pkg/render"
)

func renderCmd(a *app) *cobra.Command {
	var (
		output      string
		supersample int
		roundCaps   bool
		background  string
		stroke      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a tree to a PNG file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			bg, err := parseHex("background", background)
			if err != nil {
				return err
			}
			fg, err := parseHex("stroke", stroke)
			if err != nil {
				return err
			}

			segments, err := a.generate(cmd)
			if err != nil {
				return err
			}

			opts := render.Options{
				Width:       a.params.Width,
				Height:      a.params.Height,
				Background:  bg,
				Stroke:      fg,
				Supersample: supersample,
				RoundCaps:   roundCaps,
			}

			if !render.Contains(segments, opts.Width, opts.Height) {
				a.logger.Warn("tree extends past the edge of the canvas",
					"width", opts.Width,
					"height", opts.Height)
			}

			return render.SavePNG(output, segments, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "out.png", "path of the PNG to write")
	flags.IntVar(&supersample, "supersample", 1, "draw at this many times the resolution, then downsample")
	flags.BoolVar(&roundCaps, "round-caps", false, "round the ends of each branch")
	flags.StringVar(&background, "background", "#ffffff", "background color as hex")
	flags.StringVar(&stroke, "stroke", "#000000", "branch color as hex")

	return cmd
}

// parseHex accepts RGB, RGBA, RRGGBB or RRGGBBAA hex digits with an optional
// leading '#'. gg.Hex itself turns anything else into black.
func parseHex(flag, value string) (color.Color, error) {
	digits := strings.TrimPrefix(value, "#")

	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return nil, fmt.Errorf("--%s %q: want 3, 4, 6 or 8 hex digits", flag, value)
	}

	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return nil, fmt.Errorf("--%s %q: %q is not a hex digit", flag, value, r)
		}
	}

	return gg.Hex(digits).Color(), nil
}
