// Package preview renders ribbon batches on the CPU.
//
// Extrude applies the screen-space extrusion that the ribbon shader runs on
// the GPU: every vertex pair is pushed apart along the normal of the path
// direction at its point. Render rasterizes the resulting triangles with
// golang.org/x/image/vector, coloring each by its counter.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/gogpu/ribbon"
)

// ErrNeedsNeighbors is returned for batches built without the previous or
// next attribute.
var ErrNeedsNeighbors = errors.New("preview: batch lacks previous/next attributes")

// Camera is an orthographic projection of the XY plane onto an image.
type Camera struct {
	Center ribbon.Vec3

	// Scale is pixels per world unit.
	Scale float32

	Width, Height int
}

// FitCamera centers box in a width x height image, leaving margin pixels
// on every side.
func FitCamera(box ribbon.Box3, width, height int, margin float32) Camera {
	cam := Camera{Scale: 1, Width: width, Height: height}
	if box.IsEmpty() {
		return cam
	}
	cam.Center = box.Center()

	size := box.Size()
	scale := math32.Inf(1)
	if size.X > 0 {
		scale = math32.Min(scale, (float32(width)-2*margin)/size.X)
	}
	if size.Y > 0 {
		scale = math32.Min(scale, (float32(height)-2*margin)/size.Y)
	}
	if !math32.IsInf(scale, 1) && scale > 0 {
		cam.Scale = scale
	}
	return cam
}

// Project maps p to pixel coordinates with y pointing down.
func (c Camera) Project(p ribbon.Vec3) (x, y float32) {
	x = float32(c.Width)/2 + (p.X-c.Center.X)*c.Scale
	y = float32(c.Height)/2 - (p.Y-c.Center.Y)*c.Scale
	return x, y
}

// Triangle is one extruded triangle in pixel space.
type Triangle struct {
	P [3][2]float32

	// Counter holds the counter attribute of each corner.
	Counter [3]float32
}

// Extrude computes the pixel-space triangles of b. lineWidth is the full
// ribbon width in pixels, multiplied per vertex by the width attribute.
func Extrude(b *ribbon.Batch, cam Camera, lineWidth float32) ([]Triangle, error) {
	pos := b.Attribute(ribbon.AttrPosition)
	prev := b.Attribute(ribbon.AttrPrevious)
	next := b.Attribute(ribbon.AttrNext)
	side := b.Attribute(ribbon.AttrSide)
	if pos == nil || side == nil {
		return nil, fmt.Errorf("preview: batch has no geometry")
	}
	if prev == nil || next == nil {
		return nil, ErrNeedsNeighbors
	}
	width := b.Attribute(ribbon.AttrWidth)
	counter := b.Attribute(ribbon.AttrCounter)

	n := b.VertexCount()
	screen := make([][2]float32, n)
	for v := 0; v < n; v++ {
		w := float32(1)
		if width != nil {
			w = width.Float32s()[v]
		}
		cx, cy := cam.Project(vec3(pos.Float32s(), v))
		px, py := cam.Project(vec3(prev.Float32s(), v))
		nx, ny := cam.Project(vec3(next.Float32s(), v))

		dx, dy := direction(cx-px, cy-py, nx-cx, ny-cy)
		h := 0.5 * lineWidth * w * side.Float32s()[v]
		screen[v] = [2]float32{cx - dy*h, cy + dx*h}
	}

	ix := b.Index()
	tris := make([]Triangle, 0, ix.Len()/3)
	for k := 0; k+2 < ix.Len(); k += 3 {
		var t Triangle
		for c := 0; c < 3; c++ {
			v := int(ix.At(k + c))
			t.P[c] = screen[v]
			if counter != nil {
				t.Counter[c] = counter.Float32s()[v]
			}
		}
		tris = append(tris, t)
	}
	return tris, nil
}

func vec3(flat []float32, i int) ribbon.Vec3 {
	return ribbon.V3(flat[i*3], flat[i*3+1], flat[i*3+2])
}

// direction returns the normalized sum of the normalized incoming and
// outgoing segments. A zero-length segment contributes nothing; when both
// vanish the direction is +x.
func direction(ax, ay, bx, by float32) (float32, float32) {
	ax, ay = normalize(ax, ay)
	bx, by = normalize(bx, by)
	x, y := normalize(ax+bx, ay+by)
	if x == 0 && y == 0 {
		if ax != 0 || ay != 0 {
			return ax, ay
		}
		return 1, 0
	}
	return x, y
}

func normalize(x, y float32) (float32, float32) {
	l := math32.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Options configures Render.
type Options struct {
	Width, Height int

	// LineWidth is the ribbon width in pixels.
	LineWidth float32

	// Margin is the free border kept by the fitted camera.
	Margin float32

	// Camera overrides the camera fitted to the batch bounds.
	Camera *Camera

	Background color.RGBA

	// From and To color the start and end of every line.
	From, To color.RGBA
}

// DefaultOptions returns a 512x512 dark preview with 6 pixel ribbons.
func DefaultOptions() Options {
	return Options{
		Width:      512,
		Height:     512,
		LineWidth:  6,
		Margin:     24,
		Background: color.RGBA{R: 16, G: 18, B: 24, A: 255},
		From:       color.RGBA{R: 64, G: 160, B: 255, A: 255},
		To:         color.RGBA{R: 255, G: 96, B: 64, A: 255},
	}
}

// Render draws b into a new image.
func Render(b *ribbon.Batch, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("preview: invalid image size %dx%d", opts.Width, opts.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	cam := FitCamera(b.BoundingBox(), opts.Width, opts.Height, opts.Margin)
	if opts.Camera != nil {
		cam = *opts.Camera
	}
	tris, err := Extrude(b, cam, opts.LineWidth)
	if err != nil {
		return nil, err
	}

	var z vector.Rasterizer
	for _, t := range tris {
		fillTriangle(img, &z, t, mix(opts.From, opts.To, (t.Counter[0]+t.Counter[1]+t.Counter[2])/3))
	}
	ribbon.Logger().Debug("preview: rendered", "triangles", len(tris), "width", opts.Width, "height", opts.Height)
	return img, nil
}

// fillTriangle rasterizes t over its pixel bounding box clipped to img.
func fillTriangle(img *image.RGBA, z *vector.Rasterizer, t Triangle, c color.RGBA) {
	minX, minY := t.P[0][0], t.P[0][1]
	maxX, maxY := minX, minY
	for _, p := range t.P[1:] {
		minX, maxX = math32.Min(minX, p[0]), math32.Max(maxX, p[0])
		minY, maxY = math32.Min(minY, p[1]), math32.Max(maxY, p[1])
	}
	r := image.Rect(
		int(math32.Floor(minX)), int(math32.Floor(minY)),
		int(math32.Ceil(maxX)), int(math32.Ceil(maxY)),
	).Intersect(img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	z.Reset(r.Dx(), r.Dy())
	z.MoveTo(t.P[0][0]-ox, t.P[0][1]-oy)
	z.LineTo(t.P[1][0]-ox, t.P[1][1]-oy)
	z.LineTo(t.P[2][0]-ox, t.P[2][1]-oy)
	z.ClosePath()
	z.Draw(img, r, image.NewUniform(c), image.Point{})
}

func mix(a, b color.RGBA, t float32) color.RGBA {
	t = math32.Min(math32.Max(t, 0), 1)
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
