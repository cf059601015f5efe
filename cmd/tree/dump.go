package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/willbeason/fractal-trees/pkg/branch"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type segmentJSON struct {
	From  point   `json:"from"`
	To    point   `json:"to"`
	Width float64 `json:"width"`
	Depth int     `json:"depth"`
}

func dumpCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write a tree's segments to stdout",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var write func(io.Writer, []branch.Segment) error
			switch format {
			case "json":
				write = writeJSON
			case "csv":
				write = writeCSV
			default:
				return fmt.Errorf("unknown format %q, want json or csv", format)
			}

			segments, err := a.generate(cmd)
			if err != nil {
				return err
			}

			return write(cmd.OutOrStdout(), segments)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")

	return cmd
}

func writeJSON(w io.Writer, segments []branch.Segment) error {
	out := make([]segmentJSON, len(segments))
	for i, s := range segments {
		out[i] = segmentJSON{
			From:  point{X: s.From.X, Y: s.From.Y},
			To:    point{X: s.To.X, Y: s.To.Y},
			Width: s.Width,
			Depth: s.Depth,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func writeCSV(w io.Writer, segments []branch.Segment) error {
	cw := csv.NewWriter(w)

	err := cw.Write([]string{"from_x", "from_y", "to_x", "to_y", "width", "depth"})
	if err != nil {
		return err
	}

	for _, s := range segments {
		err = cw.Write([]string{
			formatFloat(s.From.X),
			formatFloat(s.From.Y),
			formatFloat(s.To.X),
			formatFloat(s.To.Y),
			formatFloat(s.Width),
			strconv.Itoa(s.Depth),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
