// SVG descriptor files: reading the circumradius out of <desc> and
// generating a descriptor for a star.

package starfile

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/star"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// ErrNoRadius means the descriptor parsed but no <desc> mentions a radius.
var ErrNoRadius = errors.New("no radius found in descriptor")

// radiusPattern matches "радиус", "радиуса: 150", "Radius 150" and so on.
var radiusPattern = regexp.MustCompile(`(?i)(?:радиус|radius)[а\s:]*(\d+)`)

// ParseError reports a descriptor that could not be read or held no radius.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "descriptor: " + e.Err.Error()
	}
	return fmt.Sprintf("descriptor %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadRadiusFile opens an SVG descriptor and extracts its radius.
func ReadRadiusFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	r, err := ParseRadius(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return 0, pe
		}
		return 0, &ParseError{Path: path, Err: err}
	}
	return r, nil
}

// ParseRadius scans every <desc> element of an SVG document, in document
// order, and returns the first radius it mentions. Elements in the SVG
// namespace and un-namespaced elements are both accepted.
func ParseRadius(r io.Reader) (int, error) {
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return 0, &ParseError{Err: ErrNoRadius}
		}
		if err != nil {
			return 0, &ParseError{Err: errors.Wrap(err, "decode svg")}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "desc" {
			continue
		}
		if start.Name.Space != svgNamespace && start.Name.Space != "" {
			continue
		}

		var desc struct {
			Text string `xml:",chardata"`
		}
		if err := d.DecodeElement(&desc, &start); err != nil {
			return 0, &ParseError{Err: errors.Wrap(err, "decode <desc>")}
		}
		if radius, ok, err := MatchRadius(desc.Text); err != nil {
			return 0, &ParseError{Err: err}
		} else if ok {
			return radius, nil
		}
	}
}

// MatchRadius extracts the radius from free text.
func MatchRadius(text string) (int, bool, error) {
	m := radiusPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false, errors.Wrapf(err, "radius %q", m[1])
	}
	return n, true, nil
}

// SVGOptions controls descriptor generation.
type SVGOptions struct {
	Width      int    // canvas width in pixels
	Height     int    // canvas height in pixels
	Title      string // document title
	Stroke     string // line colour
	Background string // fill of the background rectangle
}

// DefaultSVGOptions matches the default 600x400 canvas.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      600,
		Height:     400,
		Title:      "Star polygon",
		Stroke:     "#1565c0",
		Background: "#ffffff",
	}
}

// Description is the <desc> text written for g. ParseRadius reads the
// radius back out of it.
func Description(g *star.Geometry) string {
	return fmt.Sprintf("Star polygon {%d/%d}, center (%d, %d), radius: %d",
		g.N, g.M, g.Center.X, g.Center.Y, g.Radius)
}

// GenerateSVG writes a descriptor for g: the radius in <desc>, the
// circumcircle, the star edges and the vertices.
func GenerateSVG(w io.Writer, g *star.Geometry, opts SVGOptions) error {
	def := DefaultSVGOptions()
	if opts.Width == 0 {
		opts.Width = def.Width
	}
	if opts.Height == 0 {
		opts.Height = def.Height
	}
	if opts.Stroke == "" {
		opts.Stroke = def.Stroke
	}
	if opts.Background == "" {
		opts.Background = def.Background
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<svg xmlns="%s" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		svgNamespace, opts.Width, opts.Height, opts.Width, opts.Height))
	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf("  <title>%s</title>\n", html.EscapeString(opts.Title)))
	}
	sb.WriteString(fmt.Sprintf("  <desc>%s</desc>\n", html.EscapeString(Description(g))))
	sb.WriteString(fmt.Sprintf(`  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", opts.Background))

	sb.WriteString(fmt.Sprintf(`  <circle cx="%d" cy="%d" r="%d" fill="none" stroke="#999" stroke-dasharray="4 4"/>`+"\n",
		g.Center.X, g.Center.Y, g.Radius))

	sb.WriteString(fmt.Sprintf(`  <g stroke="%s" stroke-width="1" fill="none">`+"\n", opts.Stroke))
	for _, e := range g.Edges {
		s := e.Segment
		sb.WriteString(fmt.Sprintf(`    <line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n",
			s.A.X, s.A.Y, s.B.X, s.B.Y))
	}
	sb.WriteString("  </g>\n")

	sb.WriteString(`  <g fill="#333">` + "\n")
	for _, v := range g.Vertices {
		sb.WriteString(fmt.Sprintf(`    <circle cx="%d" cy="%d" r="%d"/>`+"\n", v.X, v.Y, raster.VertexMarkerRadius))
	}
	sb.WriteString("  </g>\n")
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write svg")
}

// WriteSVGFile writes GenerateSVG output to path.
func WriteSVGFile(path string, g *star.Geometry, opts SVGOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return GenerateSVG(f, g, opts)
}
