// Command star draws a skip-step star polygon with four line algorithms and
// writes the canvas as PPM and PNG.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/render"
	"github.com/ha1tch/starlines/pkg/star"
	"github.com/ha1tch/starlines/pkg/starfile"
)

const usage = `star - star polygon line rasterizer

Usage:
  star <command> [options]

Commands:
  render     Draw the star and write the output images
  info       Print vertices and segments without drawing
  svg        Write an SVG descriptor for a star
  compare    Draw each segment with every algorithm and compare pixels

Common options:
  -c, --config <file>   TOML configuration
  -i, --svg <file>      descriptor holding the radius
  -r, --radius <n>      radius, instead of a descriptor
  -n, --vertices <n>    number of vertices (default 8)
  -m, --skip <n>        connect every m-th vertex (default 3)
  -o, --output <file>   output image (repeatable; .ppm, .png, .bmp)
  --reference <name>    reference backend: gg or vector
  --legend              draw a legend
  -v, --verbose         debug logging on stderr

Examples:
  star render -i star_octagon.svg
  star render -r 150 -o star.ppm -o star.bmp
  star svg -r 150 -o star_octagon.svg
  star compare -i star_octagon.svg
`

// Console colours
var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed, color.Bold)
	dim     = color.New(color.FgWhite)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "render":
		err = runRender(args, os.Stdout)
	case "info":
		err = runInfo(args, os.Stdout)
	case "svg":
		err = runSVG(args, os.Stdout)
	case "compare":
		err = runCompare(args, os.Stdout)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		fatal("%v", err)
	}
}

// settings is the configuration after flags are applied.
type settings struct {
	cfg     starfile.Config
	outputs []string // -o values in order
	verbose bool
}

// parseArgs loads the config file, then applies flags over it. With
// imageOutputs set, -o replaces the configured image outputs and is
// validated as such; otherwise -o values are only collected.
func parseArgs(args []string, imageOutputs bool) (settings, error) {
	s := settings{cfg: starfile.DefaultConfig()}

	// The config file is loaded first so flags override it.
	for i := 0; i < len(args); i++ {
		if (args[i] == "-c" || args[i] == "--config") && i+1 < len(args) {
			cfg, err := starfile.LoadConfig(args[i+1])
			if err != nil {
				return s, err
			}
			s.cfg = cfg
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s needs a value", arg)
			}
			i++
			return args[i], nil
		}
		number := func() (int, error) {
			v, err := value()
			if err != nil {
				return 0, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf("%s: %q is not a number", arg, v)
			}
			return n, nil
		}

		var err error
		switch arg {
		case "-c", "--config":
			_, err = value()
		case "-i", "--svg":
			s.cfg.SVG, err = value()
		case "-r", "--radius":
			s.cfg.Radius, err = number()
			if err == nil {
				s.cfg.SVG = ""
			}
		case "-n", "--vertices":
			s.cfg.Vertices, err = number()
		case "-m", "--skip":
			s.cfg.Skip, err = number()
		case "-W", "--width":
			s.cfg.Width, err = number()
		case "-H", "--height":
			s.cfg.Height, err = number()
		case "-o", "--output":
			var out string
			out, err = value()
			s.outputs = append(s.outputs, out)
		case "--reference":
			s.cfg.Reference, err = value()
		case "--legend":
			s.cfg.Legend = true
		case "-v", "--verbose":
			s.verbose = true
		default:
			err = fmt.Errorf("unknown option %s", arg)
		}
		if err != nil {
			return s, err
		}
	}
	if imageOutputs && len(s.outputs) > 0 {
		s.cfg.Outputs = s.outputs
	}
	if s.verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return s, s.cfg.Validate()
}

func fatal(format string, a ...any) {
	failure.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}

// loadRadius returns the configured radius or reads it from the descriptor.
func loadRadius(cfg starfile.Config) (int, error) {
	if cfg.SVG == "" {
		return cfg.Radius, nil
	}
	return starfile.ReadRadiusFile(cfg.SVG)
}

// loadStar reads the radius and builds the configured star.
func loadStar(cfg starfile.Config) (*star.Geometry, error) {
	radius, err := loadRadius(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not find a radius: %w", err)
	}
	return star.New(cfg.Vertices, cfg.Skip, radius, raster.Pt(cfg.Center.X, cfg.Center.Y))
}

func renderOptions(cfg starfile.Config) (render.Options, error) {
	backend, err := raster.ParseBackend(cfg.Reference)
	if err != nil {
		return render.Options{}, err
	}
	opts := render.DefaultOptions()
	opts.Width, opts.Height = cfg.Width, cfg.Height
	opts.Backend = backend
	opts.Legend = cfg.Legend
	return opts, nil
}

// runRender draws the star and writes every output. Nothing is written
// unless the radius, star and plan all resolve.
func runRender(args []string, w io.Writer) error {
	s, err := parseArgs(args, true)
	if err != nil {
		return err
	}
	cfg := s.cfg

	plan, err := render.PlanFromConfig(cfg.Routes)
	if err != nil {
		return err
	}
	opts, err := renderOptions(cfg)
	if err != nil {
		return err
	}

	if cfg.SVG != "" {
		heading.Fprintf(w, "\n1. Reading radius from '%s'...\n", cfg.SVG)
	} else {
		heading.Fprintln(w, "\n1. Using radius from the command line...")
	}
	g, err := loadStar(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "   Circumradius: %d\n", g.Radius)
	fmt.Fprintf(w, "   Centre: (%d, %d)\n", g.Center.X, g.Center.Y)

	heading.Fprintln(w, "\n2. Building star segments...")
	fmt.Fprintf(w, "   %d segments\n", len(g.Edges))
	fmt.Fprintln(w, "   Vertices:")
	for i, v := range g.Vertices {
		fmt.Fprintf(w, "     V%d (%g°): (%d, %d)\n", i+1, g.Bearing(i), v.X, v.Y)
	}

	heading.Fprintln(w, "\n3. Creating canvas...")
	fmt.Fprintf(w, "   %dx%d, black\n", opts.Width, opts.Height)

	heading.Fprintln(w, "\n4. Drawing star segments...")
	c, rep := render.Draw(g, plan, opts)
	for ri, route := range plan {
		fmt.Fprintf(w, "   %s: %s\n", route.Algorithm, route.Color)
		for _, st := range rep.StrokesFor(ri) {
			dim.Fprintf(w, "     Segment %d: (%d,%d) - (%d,%d)\n", st.Index+1,
				st.Segment.A.X, st.Segment.A.Y, st.Segment.B.X, st.Segment.B.Y)
		}
	}
	for _, sk := range rep.Skipped {
		if sk.Index < 0 {
			warning.Fprintf(w, "   Route %d skipped: %s\n", sk.Route+1, sk.Reason)
		} else {
			warning.Fprintf(w, "   Segment %d skipped: %s\n", sk.Index+1, sk.Reason)
		}
	}

	heading.Fprintln(w, "\n5. Drawing vertices...")
	fmt.Fprintf(w, "   Vertex markers drawn (%s)\n", opts.VertexColor)
	heading.Fprintln(w, "\n6. Drawing centre...")
	fmt.Fprintf(w, "   Centre marker drawn (%s)\n", opts.CenterColor)

	heading.Fprintf(w, "\n7. Saving %s...\n", strings.Join(cfg.Outputs, ", "))
	for _, out := range cfg.Outputs {
		if err := starfile.WriteImageFile(out, c); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		success.Fprintf(w, "  Saved: %s\n", out)
	}

	heading.Fprintln(w, "\n8. Star summary:")
	printSummary(w, g)

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	success.Fprintln(w, "DONE. Files written:")
	for _, out := range cfg.Outputs {
		fmt.Fprintf(w, "  - %s\n", out)
	}
	fmt.Fprintln(w, strings.Repeat("=", 80))
	return nil
}

func printSummary(w io.Writer, g *star.Geometry) {
	fmt.Fprintf(w, "   - Circumradius: %d\n", g.Radius)
	fmt.Fprintf(w, "   - Centre: (%d, %d)\n", g.Center.X, g.Center.Y)
	fmt.Fprintf(w, "   - Vertices: %d\n", g.N)
	fmt.Fprintf(w, "   - Segments: %d\n", len(g.Edges))
	if g.IsSingleCycle() {
		fmt.Fprintf(w, "   - Type: connected star {%d/%d}\n", g.N, g.M)
	} else {
		fmt.Fprintf(w, "   - Type: compound star {%d/%d}, %d components\n", g.N, g.M, g.Components())
	}
	if len(g.Edges) == 0 {
		return
	}
	fmt.Fprintf(w, "   - Segment length: %.1f px\n", g.SegmentLength())
	fmt.Fprintf(w, "   - Angle between vertices: %g°\n", g.VertexAngle())

	fmt.Fprintln(w, "\n   Vertices relative to the centre:")
	for i := range g.Vertices {
		rel := g.Relative(i)
		fmt.Fprintf(w, "     V%d (%g°): (%+4d, %+4d)\n", i+1, g.Bearing(i), rel.X, rel.Y)
	}
}

func runInfo(args []string, w io.Writer) error {
	s, err := parseArgs(args, true)
	if err != nil {
		return err
	}
	g, err := loadStar(s.cfg)
	if err != nil {
		return err
	}

	printSummary(w, g)
	fmt.Fprintln(w, "\n   Segments:")
	for i, e := range g.Edges {
		fmt.Fprintf(w, "     %d: V%d-V%d  (%d,%d) - (%d,%d)\n", i+1, e.I+1, e.J+1,
			e.Segment.A.X, e.Segment.A.Y, e.Segment.B.X, e.Segment.B.Y)
	}
	return nil
}

// runSVG writes a descriptor to the last -o path, or to w without one.
func runSVG(args []string, w io.Writer) error {
	s, err := parseArgs(args, false)
	if err != nil {
		return err
	}
	cfg := s.cfg
	if cfg.Radius <= 0 {
		return errors.New("svg needs --radius")
	}
	g, err := star.New(cfg.Vertices, cfg.Skip, cfg.Radius, raster.Pt(cfg.Center.X, cfg.Center.Y))
	if err != nil {
		return err
	}

	opts := starfile.DefaultSVGOptions()
	opts.Width, opts.Height = cfg.Width, cfg.Height
	opts.Title = fmt.Sprintf("Star polygon {%d/%d}", g.N, g.M)

	if len(s.outputs) == 0 {
		return starfile.GenerateSVG(w, g, opts)
	}
	out := s.outputs[len(s.outputs)-1]
	if err := starfile.WriteSVGFile(out, g, opts); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	success.Fprintf(w, "Written: %s\n", out)
	return nil
}

func runCompare(args []string, w io.Writer) error {
	s, err := parseArgs(args, true)
	if err != nil {
		return err
	}
	g, err := loadStar(s.cfg)
	if err != nil {
		return err
	}
	opts, err := renderOptions(s.cfg)
	if err != nil {
		return err
	}

	algs := render.Algorithms()
	heading.Fprintf(w, "%-8s %-24s", "Segment", "Endpoints")
	for _, a := range algs {
		heading.Fprintf(w, " %18s", a.Name)
	}
	fmt.Fprintln(w)

	for _, row := range render.Compare(g, opts) {
		seg := row.Segment
		fmt.Fprintf(w, "%-8d %-24s", row.Index+1, fmt.Sprintf("%v-%v", seg.A, seg.B))
		for _, a := range algs {
			cell := fmt.Sprintf("%d", row.Pixels[a.Kind])
			if a.Kind != render.IntBresenham {
				cell += fmt.Sprintf(" (Δ%d)", row.Diff[a.Kind])
			}
			if row.Diff[a.Kind] == 0 {
				fmt.Fprintf(w, " %18s", cell)
			} else {
				warning.Fprintf(w, " %18s", cell)
			}
		}
		fmt.Fprintln(w)
	}
	dim.Fprintln(w, "\nΔ = pixels differing from integer Bresenham")
	return nil
}
