package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/sweepline"
)

type Sweep struct {
	Format    string  `short:"f" default:"text" desc:"Output format: text or geojson"`
	Order     string  `default:"sweep" desc:"Sweep line order: sweep or fixed"`
	Epsilon   float64 `short:"e" default:"1e-6" desc:"Tolerance for horizontal and parallel segments"`
	MaxEvents int     `default:"0" desc:"Abort after processing this many events, 0 is unlimited"`
	Pairwise  bool    `desc:"Test all pairs of segments instead of sweeping"`
	Verbose   bool    `short:"v" desc:"Log sweep statistics to stderr"`
	Output    string  `short:"o" desc:"Output file"`
	Input     string  `index:"0" desc:"Input file with SVG path data or GeoJSON, - for stdin"`
}

func main() {
	root := argp.NewCmd(&Sweep{}, "Find all intersections between line segments")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Sweep) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	if cmd.Verbose {
		sweepline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	order, err := sweepline.ParseOrder(cmd.Order)
	if err != nil {
		return err
	}
	sweepline.Epsilon = cmd.Epsilon

	segs, err := readSegments(cmd.Input)
	if err != nil {
		return err
	}

	var zs sweepline.Intersections
	if cmd.Pairwise {
		zs = sweepline.Pairwise(segs)
	} else if zs, err = sweepline.Sweep(segs, sweepline.WithOrder(order), sweepline.WithMaxEvents(cmd.MaxEvents)); err != nil {
		return err
	}

	if cmd.Output == "" || cmd.Output == "-" {
		return cmd.write(os.Stdout, zs)
	}
	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := cmd.write(f, zs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (cmd *Sweep) write(w io.Writer, zs sweepline.Intersections) error {
	switch cmd.Format {
	case "text":
		for _, z := range zs {
			if _, err := fmt.Fprintf(w, "%g %g %d %d\n", z.X, z.Y, z.IndexA, z.IndexB); err != nil {
				return err
			}
		}
	case "geojson":
		b, err := json.Marshal(zs.FeatureCollection())
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	default:
		return fmt.Errorf("unknown output format %q", cmd.Format)
	}
	return nil
}

func readSegments(filename string) ([]sweepline.Segment, error) {
	var b []byte
	var err error
	if filename == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".json" && ext != ".geojson" {
		return sweepline.ParseSegments(b)
	}

	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON '%s': %w", filename, err)
	}
	segs := []sweepline.Segment{}
	for i, f := range fc.Features {
		s, err := sweepline.SegmentsFromGeometry(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		segs = append(segs, s...)
	}
	return segs, nil
}
