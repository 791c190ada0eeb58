/*
Package raster renders scenes to images and encodes them as PNG, WebP or
TGA.

Shapes are rasterized with golang.org/x/image/vector at a multiple of the
target size and then downsampled with a Catmull-Rom filter. Shapes reaching
beyond the canvas are clipped as polygons before rasterization. Text is
drawn after downsampling with a fixed bitmap face.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/jhobby"
	"github.com/npillmayer/lfdtrade/polygon"
	"github.com/npillmayer/lfdtrade/scene"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer writes to trace with key 'render'
func tracer() tracing.Trace {
	return tracing.Select("render")
}

// ErrUnknownFormat is returned for image formats other than png, webp and tga.
var ErrUnknownFormat = errors.New("unknown image format")

// Options control rasterization.
type Options struct {
	Size        int // edge length of the square output image, 0 for the scene's size
	Supersample int // oversampling factor, values below 1 mean 1
}

// DefaultOptions are 600×600 pixels at 2× supersampling.
var DefaultOptions = Options{Size: scene.CanvasSize, Supersample: 2}

var (
	background = color.White
	foreground = color.Black
)

// pixels per curve segment when flattening arcs
const flattenSteps = 8

// Rasterize renders scene s into a new image.
func Rasterize(s scene.Scene, opts Options) *image.RGBA {
	size := opts.Size
	if size <= 0 {
		size = s.Width
	}
	if size <= 0 {
		size = scene.CanvasSize
	}
	k := max(opts.Supersample, 1)
	canvas := newCanvas(size * k)
	xspan, yspan := s.XRange[1]-s.XRange[0], s.YRange[1]-s.YRange[0]
	var labels []scene.TextLabel
	var at lfdtrade.AT
	if xspan > 0 && yspan > 0 {
		at = canvas.mapping(s, xspan, yspan)
		for _, p := range s.Primitives() {
			switch prim := p.(type) {
			case scene.Circle:
				canvas.circle(at.Transform(prim.Center), prim.Radius*at.Unit(), float64(k))
			case scene.LineSegment:
				canvas.line(at.Transform(prim.P0), at.Transform(prim.P1), prim.Weight*float64(k))
			case scene.PolylineArc:
				canvas.arc(transformAll(at, prim.Points), prim.Closed, float64(k))
			case scene.TextLabel:
				labels = append(labels, prim)
			}
		}
	}
	img := canvas.img
	if k > 1 {
		img = downsample(canvas.img, size)
	}
	if s.Title != "" {
		drawText(img, s.Title, lfdtrade.P(float64(size)/2, 20))
	}
	if len(labels) > 0 {
		final := at.Combine(lfdtrade.Scaling(1/float64(k), 1/float64(k)))
		for _, l := range labels {
			drawText(img, l.Text, final.Transform(l.Anchor))
		}
	}
	tracer().Debugf("rasterized %q at %s", s.Title, Options{Size: size, Supersample: k})
	return img
}

type canvas struct {
	img  *image.RGBA
	size float64
	clip *polygon.Polygon
	rast *vector.Rasterizer
}

func newCanvas(size int) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &canvas{
		img:  img,
		size: float64(size),
		clip: polygon.Box(lfdtrade.Origin, lfdtrade.P(float64(size), float64(size))),
		rast: vector.NewRasterizer(size, size),
	}
}

// mapping returns the transform from diagram coordinates to canvas pixels.
// The y axis is flipped; the view box is fitted to the canvas keeping the
// aspect ratio.
func (c *canvas) mapping(s scene.Scene, xspan, yspan float64) lfdtrade.AT {
	scale := c.size / math.Max(xspan, yspan)
	return lfdtrade.Translation(lfdtrade.P(-s.XRange[0], -s.YRange[1])).
		Combine(lfdtrade.Scaling(scale, -scale))
}

func transformAll(at lfdtrade.AT, pts []lfdtrade.Pair) []lfdtrade.Pair {
	out := make([]lfdtrade.Pair, len(pts))
	for i, p := range pts {
		out[i] = at.Transform(p)
	}
	return out
}

func (c *canvas) circle(center lfdtrade.Pair, r, width float64) {
	n := max(polygon.MinCircleSegments, int(math.Ceil(2*math.Pi*r/4)))
	c.fill(polygon.Ring(center, r, width, n))
}

// line strokes a segment as a rectangle of the given width.
func (c *canvas) line(p0, p1 lfdtrade.Pair, width float64) {
	d := p0.Dist(p1)
	if lfdtrade.Is0(d) {
		return
	}
	dir := (p1 - p0).Scaled(1 / d)
	n := lfdtrade.P(-dir.Y(), dir.X()).Scaled(width / 2)
	quad := polygon.NullPolygon().Knot(p0 - n).Knot(p1 - n).Knot(p1 + n).Knot(p0 + n).Cycle()
	c.fill(quad)
}

// arc strokes a smooth curve through pts, flattened to short segments.
func (c *canvas) arc(pts []lfdtrade.Pair, closed bool, width float64) {
	path := jhobby.Through(pts...)
	if closed {
		path.Cycle()
	}
	spline, err := jhobby.FindHobbyControls(path)
	if err != nil {
		tracer().Debugf("arc drawn as polyline: %v", err)
		for i := 1; i < len(pts); i++ {
			c.line(pts[i-1], pts[i], width)
		}
		return
	}
	for _, seg := range spline.Segments() {
		prev := seg.P0
		for i := 1; i <= flattenSteps; i++ {
			next := seg.At(float64(i) / flattenSteps)
			c.line(prev, next, width)
			prev = next
		}
	}
}

// fill paints a polygon, clipping it to the canvas if it reaches outside.
// Only the polygon's bounding box is rasterized.
func (c *canvas) fill(pg *polygon.Polygon) {
	lo, hi := pg.Bounds()
	if lo.X() < 0 || lo.Y() < 0 || hi.X() > c.size || hi.Y() > c.size {
		pg = pg.Intersect(c.clip)
	}
	if pg.IsEmpty() {
		return
	}
	box := pixelBox(pg, c.img.Bounds())
	if box.Empty() {
		return
	}
	c.rast.Reset(box.Dx(), box.Dy())
	x0, y0 := float64(box.Min.X), float64(box.Min.Y)
	for _, contour := range pg.Oriented() {
		for i, p := range contour {
			x, y := float32(p.X()-x0), float32(p.Y()-y0)
			if i == 0 {
				c.rast.MoveTo(x, y)
			} else {
				c.rast.LineTo(x, y)
			}
		}
		c.rast.ClosePath()
	}
	c.rast.DrawOp = draw.Over
	c.rast.Draw(c.img, box, image.NewUniform(foreground), image.Point{})
}

// pixelBox is the integer bounding box of pg, clamped to bounds.
func pixelBox(pg *polygon.Polygon, bounds image.Rectangle) image.Rectangle {
	lo, hi := pg.Bounds()
	r := image.Rect(
		int(math.Floor(lo.X())), int(math.Floor(lo.Y())),
		int(math.Ceil(hi.X())), int(math.Ceil(hi.Y())),
	)
	return r.Intersect(bounds)
}

// downsample scales a supersampled canvas to size×size.
func downsample(img *image.RGBA, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// The bitmap face has no Greek glyphs.
var asciiText = strings.NewReplacer("θ", "theta")

// drawText draws a line of text centered at p.
func drawText(img *image.RGBA, text string, p lfdtrade.Pair) {
	face := basicfont.Face7x13
	text = asciiText.Replace(text)
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(foreground), Face: face}
	width := dr.MeasureString(text)
	x := fixed.I(int(math.Round(p.X()))) - width/2
	y := fixed.I(int(math.Round(p.Y())) + face.Ascent/2)
	dr.Dot = fixed.Point26_6{X: x, Y: y}
	dr.DrawString(text)
}

func (o Options) String() string {
	return fmt.Sprintf("%dpx ×%d", o.Size, o.Supersample)
}
