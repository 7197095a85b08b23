// Package render draws a term table as a word-cloud PNG. The rest of the
// program only sees the Renderer interface.
package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// Renderer turns a term table into an image artifact named name and
// returns where it was written.
type Renderer interface {
	Render(ctx context.Context, table termfreq.Table, name string) (string, error)
}

// Options control the cloud layout.
type Options struct {
	Width       int
	Height      int
	MaxWords    int
	MinFontSize float64
	MaxFontSize float64
	FontPath    string // TrueType file; empty uses the bundled Go font
	Background  color.Color
	Palette     []color.Color
}

// DefaultOptions returns a 2000x1500 canvas with at most 150 words.
func DefaultOptions() Options {
	return Options{
		Width:       2000,
		Height:      1500,
		MaxWords:    150,
		MinFontSize: 12,
		MaxFontSize: 180,
		Background:  color.White,
		Palette:     defaultPalette,
	}
}

var defaultPalette = []color.Color{
	color.RGBA{0x75, 0x00, 0x8a, 0xff},
	color.RGBA{0x00, 0x00, 0xcc, 0xff},
	color.RGBA{0x00, 0x88, 0xdd, 0xff},
	color.RGBA{0x00, 0xa0, 0x88, 0xff},
	color.RGBA{0x00, 0xaa, 0x00, 0xff},
	color.RGBA{0x88, 0xcc, 0x00, 0xff},
	color.RGBA{0xee, 0xaa, 0x00, 0xff},
	color.RGBA{0xff, 0x33, 0x00, 0xff},
	color.RGBA{0xcc, 0x00, 0x00, 0xff},
}

// CloudRenderer writes PNG word clouds into a directory.
type CloudRenderer struct {
	dir  string
	opts Options
	font *truetype.Font
}

// NewCloudRenderer prepares a renderer writing into dir (created if missing).
func NewCloudRenderer(dir string, opts Options) (*CloudRenderer, error) {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = def.MaxWords
	}
	if opts.MinFontSize <= 0 {
		opts.MinFontSize = def.MinFontSize
	}
	if opts.MaxFontSize < opts.MinFontSize {
		opts.MaxFontSize = math.Max(def.MaxFontSize, opts.MinFontSize)
	}
	// a single word must be able to fit the canvas
	if limit := float64(opts.Height) / 4; opts.MaxFontSize > limit {
		opts.MaxFontSize = limit
		opts.MinFontSize = math.Min(opts.MinFontSize, limit)
	}
	if opts.Background == nil {
		opts.Background = def.Background
	}
	if len(opts.Palette) == 0 {
		opts.Palette = def.Palette
	}

	ttf := goregular.TTF
	if opts.FontPath != "" {
		data, err := os.ReadFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", opts.FontPath, err)
		}
		ttf = data
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	return &CloudRenderer{dir: dir, opts: opts, font: f}, nil
}

// Dir returns the output directory.
func (r *CloudRenderer) Dir() string {
	return r.dir
}

type box struct {
	x0, y0, x1, y1 float64
}

func (b box) overlaps(o box) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

// Render draws the heaviest MaxWords terms, largest first, placing each on an
// Archimedean spiral from the centre until it fits. Terms that fit nowhere
// are dropped.
func (r *CloudRenderer) Render(ctx context.Context, table termfreq.Table, name string) (string, error) {
	entries := table.Top(r.opts.MaxWords)
	if len(entries) == 0 {
		return "", fmt.Errorf("render %s: empty table", name)
	}

	w, h := float64(r.opts.Width), float64(r.opts.Height)
	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	dc.SetColor(r.opts.Background)
	dc.Clear()

	maxCount := float64(entries[0].Count)
	minCount := float64(entries[len(entries)-1].Count)

	var placed []box
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		face := r.face(r.fontSize(float64(e.Count), minCount, maxCount))
		dc.SetFontFace(face)
		tw, th := dc.MeasureString(e.Term)

		if b, ok := r.place(placed, tw, th, w, h); ok {
			placed = append(placed, b)
			dc.SetColor(r.opts.Palette[i%len(r.opts.Palette)])
			dc.DrawStringAnchored(e.Term, (b.x0+b.x1)/2, (b.y0+b.y1)/2, 0.5, 0.5)
		}
		face.Close()
	}

	path := filepath.Join(r.dir, name)
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// fontSize scales linearly between the configured bounds.
func (r *CloudRenderer) fontSize(count, minCount, maxCount float64) float64 {
	if maxCount <= minCount {
		return r.opts.MaxFontSize
	}
	frac := (count - minCount) / (maxCount - minCount)
	return r.opts.MinFontSize + frac*(r.opts.MaxFontSize-r.opts.MinFontSize)
}

func (r *CloudRenderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size})
}

func (r *CloudRenderer) place(placed []box, tw, th, w, h float64) (box, bool) {
	const (
		step     = 0.1
		spacing  = 4.0
		maxTurns = 4000
	)
	cx, cy := w/2, h/2
	pad := 2.0

	for i := 0; i < maxTurns; i++ {
		theta := float64(i) * step
		radius := spacing * theta
		x := cx + radius*math.Cos(theta)*(w/h)
		y := cy + radius*math.Sin(theta)

		b := box{
			x0: x - tw/2 - pad, y0: y - th/2 - pad,
			x1: x + tw/2 + pad, y1: y + th/2 + pad,
		}
		if b.x0 < 0 || b.y0 < 0 || b.x1 > w || b.y1 > h {
			continue
		}
		free := true
		for _, p := range placed {
			if b.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return b, true
		}
	}
	return box{}, false
}
