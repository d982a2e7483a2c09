// Command pixdemo builds a small layered composition, runs a few filters
// and exports the rendered composite as a PNG.
package main

import (
	"flag"
	"image"
	_ "image/png"
	"log"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gopix/pix"
	"github.com/gopix/pix/filter"
	"github.com/gopix/pix/layer"
	"github.com/gopix/pix/shape"
)

func main() {
	var (
		width  = flag.Int("width", 640, "canvas width")
		height = flag.Int("height", 480, "canvas height")
		input  = flag.String("input", "", "optional background image (PNG)")
		output = flag.String("output", "pixdemo.png", "output file")
	)
	flag.Parse()

	comp := layer.NewComposition("demo", *width, *height)

	buildBackground(comp, *width, *height, *input)
	buildShapeOverlay(comp, *width, *height)
	runFilters(comp)

	rendered := comp.Render()
	annotate(rendered, comp.Name())

	if err := rendered.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Composite saved to %s (%dx%d, %d layers)\n",
		*output, comp.Canvas().Width(), comp.Canvas().Height(), comp.NumLayers())
}

// buildBackground fills the bottom layer from the input image if one was
// given, else paints a vertical sky gradient.
func buildBackground(comp *layer.Composition, w, h int, input string) {
	if input != "" {
		bg, err := loadPixmap(input)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", input, err)
		}
		comp.AddImageLayerFromPixmap("background", bg)
		return
	}

	bg := pix.NewPixmap(w, h)

	dc := gg.NewContextForRGBA(bg.RGBA())
	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, pix.RGBA{R: 0.1, G: 0.2, B: 0.45, A: 1}.Color())
	grad.AddColorStop(1, pix.RGBA{R: 0.85, G: 0.65, B: 0.35, A: 1}.Color())
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	comp.AddImageLayerFromPixmap("background", bg)
}

func loadPixmap(path string) (*pix.Pixmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return pix.FromImage(img), nil
}

// buildShapeOverlay adds a vector layer with a gradient-filled ellipse.
// The multiply blend forces the layer through its cached raster path.
func buildShapeOverlay(comp *layer.Composition, w, h int) {
	sl := comp.AddShapesLayer()

	s := shape.New(shape.KindEllipse, shape.RadialGradientStyle(
		pix.RGBA{R: 1, G: 0.95, B: 0.7, A: 1},
		pix.RGBA{R: 1, G: 0.95, B: 0.7, A: 0},
	))
	sl.SetStyledShape(s)
	s.SetGeometry(shape.Rect{
		X: float64(w) * 0.55,
		Y: float64(h) * 0.1,
		W: float64(w) * 0.3,
		H: float64(w) * 0.3,
	})
	sl.CreateTransformBox()
	sl.SetBlendMode(pix.BlendMultiply)
	sl.SetOpacity(0.9)
}

// runFilters exercises the preview and commit paths of the filter runner.
func runFilters(comp *layer.Composition) {
	noise := comp.AddImageLayer("grain")
	fillNoise(noise.Image())
	noise.SetOpacity(0.25)
	noise.SetBlendMode(pix.BlendOverlay)

	d, err := comp.ActiveDrawable()
	if err != nil {
		log.Fatalf("No drawable: %v", err)
	}

	// Preview a blur, then discard it; the committed pixels stay put.
	if err := layer.RunFilter(d, filter.NewBlur(2.5), layer.Previewing); err != nil {
		log.Fatalf("Blur preview: %v", err)
	}
	d.CancelPreview()

	// Commit a sepia pass over a selected band, then keep it.
	canvas := comp.Canvas()
	comp.SetSelection(layer.NewSelection(
		image.Rect(0, canvas.Height()/2, canvas.Width(), canvas.Height())))
	if err := layer.RunFilter(d, filter.NewSepia(), layer.Final); err != nil {
		log.Fatalf("Sepia: %v", err)
	}
	comp.ClearSelection()

	log.Printf("Last edit: %s", comp.History().LastEditName())
}

func fillNoise(pm *pix.Pixmap) {
	// Cheap deterministic noise, good enough for a demo texture.
	seed := uint32(2463534242)
	for y := 0; y < pm.Height(); y++ {
		for x := 0; x < pm.Width(); x++ {
			seed ^= seed << 13
			seed ^= seed >> 17
			seed ^= seed << 5
			v := float64(seed&0xff) / 255
			pm.SetPixel(x, y, pix.RGBA{R: v, G: v, B: v, A: 1})
		}
	}
}

// annotate draws a caption onto the composite.
func annotate(pm *pix.Pixmap, name string) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    18,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	dc := gg.NewContextForRGBA(pm.RGBA())
	dc.SetFontFace(face)
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawStringAnchored(name, 12, float64(pm.Height())-12, 0, 0)
}
