package main

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/render"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOff        = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// Two status rows at the bottom
const chromeRows = 2

// upperHalf shows the top pixel as foreground and the bottom one as
// background, so each cell carries two pixel rows.
const upperHalf = '▀'

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	v.drawCanvas(w, h-chromeRows)
	v.drawStatusBar(w, h)
}

// fitRect returns the largest rectangle with the aspect ratio of src that
// fits inside dst, centred.
func fitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}
	w, h := dstW, dstW*srcH/srcW
	if h > dstH {
		w, h = dstH*srcW/srcH, dstH
	}
	w, h = max(w, 1), max(h, 1)
	x0 := (dstW - w) / 2
	y0 := (dstH - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// scaleCanvas resamples c into a dstW x dstH pixel image. Downscaling uses
// Catmull-Rom so one-pixel lines fade instead of vanishing.
func scaleCanvas(c *raster.Canvas, dstW, dstH int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	srcW, srcH := c.Size()
	r := fitRect(srcW, srcH, dstW, dstH)
	if r.Empty() {
		return dst
	}
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if r.Dx() < srcW {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, r, c, c.Bounds(), xdraw.Src, nil)
	return dst
}

func cellStyle(top, bottom raster.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
}

func (v *Viewer) drawCanvas(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	img := scaleCanvas(v.canvas, w, 2*h)
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			top := raster.ColorOf(img.RGBAAt(cx, 2*cy))
			bottom := raster.ColorOf(img.RGBAAt(cx, 2*cy+1))
			v.screen.SetContent(cx, cy, upperHalf, nil, cellStyle(top, bottom))
		}
	}
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1
	if y < 0 {
		return
	}
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	g := v.geom
	info := fmt.Sprintf("{%d/%d} R=%d  %s", g.N, g.M, g.Radius, v.opts.Backend)
	v.drawString(1, y, info, styleStatus)

	if v.message != "" {
		style := styleMsgInfo
		switch v.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		if start := v.messageFlashStart.Load(); start > 0 && flashInverted(time.Now().UnixMilli()-start) {
			style = style.Reverse(true)
		}
		v.drawString(w-len([]rune(v.message))-2, y, v.message, style)
	}

	// Toggle bar
	y = h - 2
	if y < 0 {
		return
	}
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	x := 1
	for i, a := range render.Algorithms() {
		label := fmt.Sprintf("%d:%s", i+1, a.Name)
		style := styleHelp
		if v.hidden[a.Kind] {
			style = styleOff
		} else if c, ok := v.routeColor(a.Kind); ok {
			style = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		}
		v.drawString(x, y, label, style)
		x += len(label) + 2
	}
	v.drawString(x, y, v.helpString(), styleHelp)
}

// routeColor is the colour of the first route drawn with a.
func (v *Viewer) routeColor(a render.Algorithm) (raster.Color, bool) {
	for _, r := range v.plan {
		if r.Algorithm == a {
			return r.Color, true
		}
	}
	return raster.Color{}, false
}

func (v *Viewer) helpString() string {
	parts := []string{"M:Markers", "L:Legend", "B:Backend", "S:Save", "Q:Quit"}
	return strings.Join(parts, "  ")
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// flashInverted reports whether a flashing message is drawn inverted
// elapsed milliseconds after it was shown: normal, inverted, normal,
// inverted in 125 ms phases, then normal.
func flashInverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= 500 {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

func shouldFlash(t MessageType) bool {
	return t == MsgError || t == MsgSuccess
}
