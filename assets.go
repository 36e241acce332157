package riverpass

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DefaultLayerNames are the parallax layers, back to front.
var DefaultLayerNames = []string{"p4.png", "p3.png", "p2.png", "p1.png"}

// LoadImages decodes each named image from fsys. The result always has one
// slot per name; a slot is nil when that image failed, and the returned
// error joins every failure. Callers render without the missing layers.
func LoadImages(fsys fs.FS, names ...string) ([]*ebiten.Image, error) {
	imgs := make([]*ebiten.Image, len(names))
	var errs []error
	for i, name := range names {
		img, _, err := ebitenutil.NewImageFromFileSystem(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("riverpass: load %s: %w", name, err))
			continue
		}
		imgs[i] = img
	}
	return imgs, errors.Join(errs...)
}

// LogAssetErrors prints one stderr line per failure joined by LoadImages.
func LogAssetErrors(err error) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			_, _ = fmt.Fprintf(os.Stderr, "[riverpass] %v\n", e)
		}
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[riverpass] %v\n", err)
}

// ProceduralLayers paints n stand-in parallax layers of w×h pixels: an opaque
// sky for layer 0 and progressively denser, transparent cloud banks for the
// rest. seed makes the output repeatable.
func ProceduralLayers(n, w, h int, seed uint64) []*ebiten.Image {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	sky := [2]Color{MustParseColor("#7fb8d8"), MustParseColor("#e9f4f8")}
	cloud := MustParseColor("#ffffff")

	layers := make([]*ebiten.Image, n)
	for i := range layers {
		img := ebiten.NewImage(w, h)
		if i == 0 {
			paintGradient(img, sky[0], sky[1])
		} else {
			depth := float64(i) / float64(max(n-1, 1))
			baseY := float32(float64(h) * (0.35 + 0.5*depth))
			count := 6 + 4*i
			for j := 0; j < count; j++ {
				cx := float32(rng.Float64() * float64(w))
				cy := baseY + float32((rng.Float64()-0.5)*float64(h)*0.15)
				r := float32(float64(h) * (0.06 + 0.08*rng.Float64()) * (0.6 + depth))
				c := cloud.WithAlpha(0.35 + 0.5*depth)
				vector.FillCircle(img, cx, cy, r, c.ToRGBA(), true)
			}
			vector.FillRect(img, 0, baseY, float32(w), float32(h)-baseY,
				cloud.WithAlpha(0.3+0.6*depth).ToRGBA(), false)
		}
		layers[i] = img
	}
	return layers
}

// paintGradient fills img with a vertical gradient from top to bottom.
func paintGradient(img *ebiten.Image, top, bottom Color) {
	b := img.Bounds()
	h := b.Dy()
	if h <= 0 {
		return
	}
	pix := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		t := math.Pow(float64(y)/float64(h), 0.8)
		c := top.Lerp(bottom, t).ToRGBA()
		for x := 0; x < b.Dx(); x++ {
			pix.SetRGBA(x, y, c)
		}
	}
	img.WritePixels(pix.Pix)
}
