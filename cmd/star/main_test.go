package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/star"
	"github.com/ha1tch/starlines/pkg/starfile"
)

func TestParseArgsOverrides(t *testing.T) {
	s, err := parseArgs([]string{"-r", "120", "-n", "7", "-m", "2", "-o", "a.ppm", "--output", "b.bmp", "--legend", "--reference", "vector"}, true)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	cfg := s.cfg
	if cfg.Radius != 120 || cfg.SVG != "" {
		t.Errorf("Expected radius 120 without descriptor, got %d and %q", cfg.Radius, cfg.SVG)
	}
	if cfg.Vertices != 7 || cfg.Skip != 2 {
		t.Errorf("Expected {7/2}, got {%d/%d}", cfg.Vertices, cfg.Skip)
	}
	if len(cfg.Outputs) != 2 || cfg.Outputs[0] != "a.ppm" || cfg.Outputs[1] != "b.bmp" {
		t.Errorf("Outputs = %v", cfg.Outputs)
	}
	if !cfg.Legend || cfg.Reference != "vector" {
		t.Errorf("Expected legend and vector backend, got %v and %q", cfg.Legend, cfg.Reference)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown option", []string{"--frobnicate"}},
		{"missing value", []string{"-r"}},
		{"not a number", []string{"-r", "big"}},
		{"missing config", []string{"-c", "does-not-exist.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseArgs(tt.args, true); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestParseArgsConfigThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "star.toml")
	content := "radius = 90\nvertices = 5\nskip = 2\noutputs = [\"conf.png\"]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := parseArgs([]string{"-m", "1", "-c", path}, true)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if s.cfg.Radius != 90 || s.cfg.Vertices != 5 {
		t.Errorf("Expected values from the file, got %+v", s.cfg)
	}
	if s.cfg.Skip != 1 {
		t.Errorf("Flag should override the file, got skip %d", s.cfg.Skip)
	}
	if len(s.cfg.Outputs) != 1 || s.cfg.Outputs[0] != "conf.png" {
		t.Errorf("Outputs = %v", s.cfg.Outputs)
	}
}

func TestParseArgsKeepsNonImageOutputs(t *testing.T) {
	s, err := parseArgs([]string{"-r", "150", "-o", "star_octagon.svg"}, false)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if len(s.outputs) != 1 || s.outputs[0] != "star_octagon.svg" {
		t.Errorf("Expected the descriptor path collected, got %v", s.outputs)
	}
	if len(s.cfg.Outputs) != 2 {
		t.Errorf("Image outputs should keep their defaults, got %v", s.cfg.Outputs)
	}

	if _, err := parseArgs([]string{"-r", "150", "-o", "star_octagon.svg"}, true); err == nil {
		t.Error("Expected .svg to be rejected as an image output")
	}
}

// inDir runs the rest of the test with dir as the working directory.
func inDir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names
}

func writeDescriptor(t *testing.T, path string, radius int) {
	t.Helper()
	g, err := star.Default(radius, raster.Pt(300, 200))
	if err != nil {
		t.Fatal(err)
	}
	if err := starfile.WriteSVGFile(path, g, starfile.DefaultSVGOptions()); err != nil {
		t.Fatal(err)
	}
}

func TestRunRenderDefault(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)
	writeDescriptor(t, "star_octagon.svg", 150)

	var out bytes.Buffer
	if err := runRender(nil, &out); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	want := []string{"star.png", "star.ppm", "star_octagon.svg"}
	if got := listDir(t, dir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected files %v, got %v", want, got)
	}

	f, err := os.Open("star.ppm")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	c, err := starfile.ReadPPM(f)
	if err != nil {
		t.Fatalf("ReadPPM: %v", err)
	}
	if w, h := c.Size(); w != 600 || h != 400 {
		t.Errorf("Expected 600x400, got %dx%d", w, h)
	}
	if got := c.Pixel(300, 200); got != raster.Cyan {
		t.Errorf("Centre = %v, expected cyan", got)
	}

	text := out.String()
	for _, s := range []string{
		"Circumradius: 150",
		"- Segments: 8",
		"Segment length: 277.1 px",
		"Angle between vertices: 45°",
		"V1 (0°): (  +0, -150)",
		"DONE. Files written:",
	} {
		if !strings.Contains(text, s) {
			t.Errorf("Expected %q in output:\n%s", s, text)
		}
	}
}

func TestRunRenderWithoutRadiusWritesNothing(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string // "" means no file at all
		wantNoRad  bool
	}{
		{"no radius in desc", `<svg xmlns="http://www.w3.org/2000/svg"><desc>an octagon</desc></svg>`, true},
		{"broken xml", `<svg xmlns="http://www.w3.org/2000/svg"><desc>radius 150`, false},
		{"missing file", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			inDir(t, dir)
			if tt.descriptor != "" {
				if err := os.WriteFile("star_octagon.svg", []byte(tt.descriptor), 0644); err != nil {
					t.Fatal(err)
				}
			}

			var out bytes.Buffer
			err := runRender(nil, &out)
			if err == nil {
				t.Fatal("Expected an error")
			}
			var pe *starfile.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Expected a ParseError, got %v", err)
			}
			if tt.wantNoRad && !errors.Is(err, starfile.ErrNoRadius) {
				t.Errorf("Expected ErrNoRadius, got %v", err)
			}
			for _, name := range listDir(t, dir) {
				if name != "star_octagon.svg" {
					t.Errorf("Unexpected output %s", name)
				}
			}
		})
	}
}

func TestRunSVGWritesDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "star_octagon.svg")
	var out bytes.Buffer
	if err := runSVG([]string{"-r", "150", "-o", path}, &out); err != nil {
		t.Fatalf("runSVG: %v", err)
	}
	r, err := starfile.ReadRadiusFile(path)
	if err != nil {
		t.Fatalf("ReadRadiusFile: %v", err)
	}
	if r != 150 {
		t.Errorf("Expected radius 150, got %d", r)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("Expected the path in output, got %q", out.String())
	}

	out.Reset()
	if err := runSVG([]string{"-r", "90"}, &out); err != nil {
		t.Fatalf("runSVG to stdout: %v", err)
	}
	if r, err := starfile.ParseRadius(&out); err != nil || r != 90 {
		t.Errorf("Expected radius 90 from stdout, got %d, %v", r, err)
	}

	if err := runSVG(nil, &out); err == nil {
		t.Error("Expected an error without --radius")
	}
}

func TestRunInfoAndCompare(t *testing.T) {
	var out bytes.Buffer
	if err := runInfo([]string{"-r", "150"}, &out); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	if !strings.Contains(out.String(), "1: V1-V4  (300,50) - (406,306)") {
		t.Errorf("Unexpected info output:\n%s", out.String())
	}

	out.Reset()
	if err := runCompare([]string{"-r", "150"}, &out); err != nil {
		t.Fatalf("runCompare: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// header, eight rows, blank, footnote
	if len(lines) != 11 {
		t.Fatalf("Expected 11 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "257 (Δ4)") {
		t.Errorf("Expected float Bresenham to differ on segment 1, got %q", lines[1])
	}
}
