// Command starview shows the rendered star in the terminal.
package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/render"
	"github.com/ha1tch/starlines/pkg/star"
	"github.com/ha1tch/starlines/pkg/starfile"
)

// MessageType represents the type of status message
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// Viewer holds all viewer state
type Viewer struct {
	screen tcell.Screen
	geom   *star.Geometry
	cfg    starfile.Config
	plan   render.Plan
	opts   render.Options

	// Toggles
	hidden  map[render.Algorithm]bool
	markers bool
	legend  bool

	canvas *raster.Canvas
	report *render.Report

	message           string
	messageType       MessageType
	messageFlashStart atomic.Int64 // Unix milliseconds, 0 = no flash; read by the ticker
}

func main() {
	cfg := starfile.DefaultConfig()
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c", "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: %s needs a value\n", args[i])
				os.Exit(1)
			}
			i++
			loaded, err := starfile.LoadConfig(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", args[i], err)
				os.Exit(1)
			}
			cfg = loaded
		case "-h", "--help":
			fmt.Println("Usage: starview [-c star.toml] [descriptor.svg]")
			return
		default:
			cfg.SVG = args[i]
		}
	}

	g, err := loadStar(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.Clear()

	v, err := newViewer(screen, g, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	v.run()

	screen.Fini()
}

func loadStar(cfg starfile.Config) (*star.Geometry, error) {
	radius := cfg.Radius
	if cfg.SVG != "" {
		r, err := starfile.ReadRadiusFile(cfg.SVG)
		if err != nil {
			return nil, err
		}
		radius = r
	}
	return star.New(cfg.Vertices, cfg.Skip, radius, raster.Pt(cfg.Center.X, cfg.Center.Y))
}

func newViewer(screen tcell.Screen, g *star.Geometry, cfg starfile.Config) (*Viewer, error) {
	plan, err := render.PlanFromConfig(cfg.Routes)
	if err != nil {
		return nil, err
	}
	backend, err := raster.ParseBackend(cfg.Reference)
	if err != nil {
		return nil, err
	}
	opts := render.DefaultOptions()
	opts.Width, opts.Height = cfg.Width, cfg.Height
	opts.Backend = backend

	v := &Viewer{
		screen:  screen,
		geom:    g,
		cfg:     cfg,
		plan:    plan,
		opts:    opts,
		hidden:  make(map[render.Algorithm]bool),
		markers: true,
		legend:  cfg.Legend,
	}
	v.rebuild()
	return v, nil
}

// visiblePlan drops routes whose algorithm is toggled off.
func (v *Viewer) visiblePlan() render.Plan {
	out := make(render.Plan, 0, len(v.plan))
	for _, r := range v.plan {
		if !v.hidden[r.Algorithm] {
			out = append(out, r)
		}
	}
	return out
}

// rebuild redraws the off-screen canvas from the current toggles.
func (v *Viewer) rebuild() {
	opts := v.opts
	opts.NoMarkers = !v.markers
	opts.Legend = v.legend
	v.canvas, v.report = render.Draw(v.geom, v.visiblePlan(), opts)
}

func (v *Viewer) run() {
	done := make(chan struct{})
	defer close(done)
	go v.refreshFlash(done)

	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventInterrupt:
			// Flash refresh, just redraw
		case nil:
			return
		}
	}
}

// refreshFlash posts a redraw every 50 ms while a message flashes, until
// done is closed.
func (v *Viewer) refreshFlash(done <-chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}
		start := v.messageFlashStart.Load()
		if start == 0 {
			continue
		}
		if elapsed := time.Now().UnixMilli() - start; elapsed >= 0 && elapsed < 700 {
			v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}
}

// handleKey applies a key press and reports whether the viewer should quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	switch {
	case r == 'q' || r == 'Q':
		return true
	case r >= '1' && r <= '9':
		algs := render.Algorithms()
		idx := int(r - '1')
		if idx >= len(algs) {
			return false
		}
		kind := algs[idx].Kind
		v.hidden[kind] = !v.hidden[kind]
		state := "shown"
		if v.hidden[kind] {
			state = "hidden"
		}
		v.showMessage(fmt.Sprintf("%s %s", kind, state), MsgInfo)
		v.rebuild()
	case r == 'm' || r == 'M':
		v.markers = !v.markers
		v.rebuild()
	case r == 'l' || r == 'L':
		v.legend = !v.legend
		v.rebuild()
	case r == 'b' || r == 'B':
		if v.opts.Backend == raster.BackendGG {
			v.opts.Backend = raster.BackendVector
		} else {
			v.opts.Backend = raster.BackendGG
		}
		v.showMessage("Reference backend: "+v.opts.Backend.String(), MsgInfo)
		v.rebuild()
	case r == 's' || r == 'S':
		v.save()
	}
	return false
}

// save writes the current canvas to every configured output.
func (v *Viewer) save() {
	for _, out := range v.cfg.Outputs {
		if err := starfile.WriteImageFile(out, v.canvas); err != nil {
			v.showMessage(fmt.Sprintf("Save failed: %v", err), MsgError)
			return
		}
	}
	v.showMessage(fmt.Sprintf("Saved %d file(s)", len(v.cfg.Outputs)), MsgSuccess)
}

func (v *Viewer) showMessage(msg string, typ MessageType) {
	v.message = msg
	v.messageType = typ
	if shouldFlash(typ) {
		v.messageFlashStart.Store(time.Now().UnixMilli())
	} else {
		v.messageFlashStart.Store(0)
	}
}
