// Command ribbonpreview builds a ribbon batch, animates it and renders a
// PNG preview on the CPU.
//
// Without -scene it uses a demo of three lines: an open spiral, a closed
// star and a tapering wave.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/ribbon"
	"github.com/gogpu/ribbon/internal/linefile"
	"github.com/gogpu/ribbon/internal/preview"
)

func main() {
	var (
		scene     = flag.String("scene", "", "scene file (.yaml, .toml, .json, .csv); demo lines when empty")
		output    = flag.String("o", "ribbons.png", "output file")
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		lineWidth = flag.Float64("line-width", 8, "ribbon width in pixels")
		frames    = flag.Int("frames", 30, "position updates to run before rendering")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		ribbon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var (
		lines []ribbon.Polyline
		err   error
	)
	if *scene != "" {
		lines, err = linefile.Load(*scene)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	} else {
		lines = demoLines(0, 0)
	}

	b, err := ribbon.Build(lines)
	if err != nil {
		log.Fatalf("Failed to build batch: %v", err)
	}
	defer b.Dispose()

	if *scene == "" {
		animate(b, *frames)
	}
	b.ComputeBounds()

	opts := preview.DefaultOptions()
	opts.Width, opts.Height = *width, *height
	opts.LineWidth = float32(*lineWidth)
	img, err := preview.Render(b, opts)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("Failed to encode: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	s := b.Stats()
	p := message.NewPrinter(language.English)
	p.Printf("lines %d, vertices %d, indices %d (%v)\n", b.LineCount(), b.VertexCount(), b.IndexCount(), b.IndexFormat())
	p.Printf("builds %d, in-place updates %d, fallbacks %d, reused arrays %d, reallocated arrays %d\n",
		s.Builds, s.InPlaceUpdates, s.Fallbacks, s.Reuses, s.Reallocations)
	log.Printf("Preview saved to %s (%dx%d)\n", *output, *width, *height)
}

// animate runs frames position updates. Every tenth frame the wave gains a
// point, which forces a full rebuild.
func animate(b *ribbon.Batch, frames int) {
	extra := 0
	for f := 1; f <= frames; f++ {
		if f%10 == 0 {
			extra++
		}
		lines := demoLines(float32(f)*0.05, extra)
		points := make([]any, len(lines))
		for i, l := range lines {
			points[i] = l.Points
		}
		if _, err := b.SetPositions(points); err != nil {
			log.Fatalf("Failed to update frame %d: %v", f, err)
		}
	}
}

// demoLines returns the demo scene at animation phase. extra adds points
// to the wave.
func demoLines(phase float32, extra int) []ribbon.Polyline {
	return []ribbon.Polyline{
		{Points: spiral(120, phase)},
		{Points: star(5, phase), Closed: true},
		{Points: wave(60+extra, phase), Width: func(t float32) float32 { return 1.5 * (1 - t) }},
	}
}

func spiral(n int, phase float32) []ribbon.Vec3 {
	pts := make([]ribbon.Vec3, n)
	for i := range pts {
		t := float32(i) / float32(n-1)
		a := 6*math32.Pi*t + phase
		r := 0.2 + 2.8*t
		pts[i] = ribbon.V3(-4+r*math32.Cos(a), r*math32.Sin(a), 0)
	}
	return pts
}

func star(spikes int, phase float32) [][2]float32 {
	pts := make([][2]float32, 2*spikes)
	for i := range pts {
		a := math32.Pi*float32(i)/float32(spikes) + phase
		r := float32(2.5)
		if i%2 == 1 {
			r = 1
		}
		pts[i] = [2]float32{4 + r*math32.Cos(a), r * math32.Sin(a)}
	}
	return pts
}

func wave(n int, phase float32) []float32 {
	flat := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		x := -7 + 14*float32(i)/float32(n-1)
		flat = append(flat, x, -4+0.6*math32.Sin(2*x+4*phase), 0)
	}
	return flat
}
