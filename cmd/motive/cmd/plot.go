package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-motive/motive/cmd/motive/internal/config"
	"github.com/go-motive/motive/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plot",
		Short: "Render easing curves to PNG files",
		Long: `Render each built-in easing path as a PNG curve plot, one file per
path. The x axis is time, the y axis the interpolated value. The dotted
guide lines mark the start and end values, so paths that leave the
range (overshoot, bounce) are visible.`,
		Usage: "motive plot [--out DIR] [--size N]",
		Run:   runPlot,
	})
}

func runPlot(args []string) error {
	out := ""
	size := 0

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--out":
			if i+1 >= len(args) {
				return fmt.Errorf("--out requires a directory path")
			}
			out = args[i+1]
			i++
		case strings.HasPrefix(arg, "--out="):
			out = strings.TrimPrefix(arg, "--out=")
		case arg == "--size":
			if i+1 >= len(args) {
				return fmt.Errorf("--size requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid --size value %q", args[i+1])
			}
			size = n
			i++
		case strings.HasPrefix(arg, "--size="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--size="))
			if err != nil {
				return fmt.Errorf("invalid --size value %q", arg)
			}
			size = n
		default:
			return fmt.Errorf("unknown argument %q", arg)
		}
	}

	// Pick up motive.yaml when run inside a project; flags win.
	if root, err := config.FindProjectRoot(); err == nil {
		if cfg, err := config.Resolve(root); err == nil {
			if out == "" {
				out = cfg.PlotOut
			}
			if size == 0 {
				size = cfg.PlotSize
			}
		}
	}
	if out == "" {
		out = config.DefaultPlotOut
	}
	if size == 0 {
		size = config.DefaultPlotSize
	}
	if size < 64 || size > 4096 {
		return fmt.Errorf("size must be between 64 and 4096 (got %d)", size)
	}

	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := []animation.Path{
		animation.Linear,
		animation.EaseIn,
		animation.EaseOut,
		animation.EaseInOut,
		animation.Overshoot,
		animation.Bounce,
		animation.Step,
	}

	for _, p := range paths {
		name := p.String()
		file := filepath.Join(out, name+".png")
		if err := writeCurvePNG(file, p, size); err != nil {
			return fmt.Errorf("failed to plot %s: %w", name, err)
		}
		fmt.Printf("Wrote %s\n", file)
	}

	return nil
}

// Plot geometry and palette.
var (
	plotBG    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	plotGuide = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	plotCurve = color.RGBA{0x1e, 0x6f, 0xd9, 0xff}
	plotText  = color.RGBA{0x40, 0x40, 0x40, 0xff}
)

const plotMargin = 24

// writeCurvePNG rasterizes one easing curve into a square PNG.
func writeCurvePNG(file string, p animation.Path, size int) error {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(plotBG), image.Point{}, draw.Src)

	w := size - 2*plotMargin
	h := size - 2*plotMargin

	// Sample the curve on the fixed-point axis: time 0..1024 maps to the
	// plot width, value 0..1024 to the start/end guide band.
	const duration = 1024
	samples := make([]int32, w+1)
	minV, maxV := int32(0), int32(duration)
	for x := 0; x <= w; x++ {
		elapsed := int32(int64(x) * duration / int64(w))
		v := p.Sample(elapsed, duration, 0, duration)
		samples[x] = v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	// Leave headroom so overshooting curves stay inside the frame.
	span := maxV - minV
	toY := func(v int32) float32 {
		return float32(plotMargin) + float32(h) - float32(h)*float32(v-minV)/float32(span)
	}
	toX := func(x int) float32 {
		return float32(plotMargin + x)
	}

	// Guide lines at the start and end values.
	drawHLine(img, plotMargin, w, int(toY(0)), plotGuide)
	drawHLine(img, plotMargin, w, int(toY(duration)), plotGuide)

	// The curve itself, stroked as overlapping quads.
	r := vector.NewRasterizer(size, size)
	const half = float32(1.2)
	for x := 0; x < w; x++ {
		x0, y0 := toX(x), toY(samples[x])
		x1, y1 := toX(x+1), toY(samples[x+1])
		strokeSegment(r, x0, y0, x1, y1, half)
	}
	r.Draw(img, img.Bounds(), image.NewUniform(plotCurve), image.Point{})

	// Label in the top-left corner.
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(plotText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(plotMargin, plotMargin-8),
	}
	d.DrawString(p.String())

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	return f.Close()
}

// strokeSegment appends a thick line segment to the rasterizer as a quad.
func strokeSegment(r *vector.Rasterizer, x0, y0, x1, y1, half float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length == 0 {
		return
	}
	// Unit normal scaled to half the stroke width.
	nx := -dy / length * half
	ny := dx / length * half

	r.MoveTo(x0+nx, y0+ny)
	r.LineTo(x1+nx, y1+ny)
	r.LineTo(x1-nx, y1-ny)
	r.LineTo(x0-nx, y0-ny)
	r.ClosePath()
}

func drawHLine(img *image.RGBA, x0, w, y int, c color.Color) {
	for x := x0; x <= x0+w; x += 3 {
		img.Set(x, y, c)
	}
}
