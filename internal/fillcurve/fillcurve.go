// Package fillcurve paints images that use every RGB color of a given
// bit depth exactly once, by walking a random space-filling path where
// each pixel's color is drawn from the smallest color-cube neighborhood
// of its predecessor. Unrelated to the acoustic simulator.
package fillcurve

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
)

// Render walks the full canvas. The image is dimensions x dimensions
// where dimensions = sqrt(2^(3*bits)); bits must yield a power-of-two
// square (bits even, 2..8).
func Render(bits int, rng *rand.Rand) (*image.NRGBA, error) {
	if bits < 1 || bits > 8 {
		return nil, fmt.Errorf("bits must be in 1..8; got %d", bits)
	}
	colors := 1 << (bits * 3)
	dim := int(math.Sqrt(float64(colors)))
	if dim*dim != colors || dim&(dim-1) != 0 {
		return nil, fmt.Errorf("%d colors do not tile a power-of-two square", colors)
	}
	lim := 1 << bits

	visited := make([]bool, dim*dim)
	used := make([]bool, colors)
	img := image.NewNRGBA(image.Rect(0, 0, dim, dim))

	valid := func(x, y int) bool {
		return x >= 0 && x < dim && y >= 0 && y < dim && !visited[y*dim+x]
	}

	x, y := rng.Intn(dim), rng.Intn(dim)
	r, g, b := rng.Intn(lim), rng.Intn(lim), rng.Intn(lim)

	cont := make([]int, 0, dim*dim)
	var candidates []int

TOP:
	for {
		if !valid(x, y) {
			// Back up to a random earlier point of the path that still
			// has a free 4-neighbor; drop points that are surrounded.
			candidates = candidates[:0]
			for len(candidates) == 0 {
				if len(cont) == 0 {
					break TOP
				}
				ci := rng.Intn(len(cont))
				addr := cont[ci]
				cx, cy := addr%dim, addr/dim
				for i := 0; i < 4; i++ {
					tx, ty := cx, cy
					if i < 2 {
						tx += i*2 - 1
					} else {
						ty += i*2 - 5
					}
					if valid(tx, ty) {
						candidates = append(candidates, ty*dim+tx)
					}
				}
				if len(candidates) == 0 {
					cont[ci] = cont[len(cont)-1]
					cont = cont[:len(cont)-1]
					// All possibilities exhausted: the image is complete.
					if len(cont) == 0 {
						break TOP
					}
				} else {
					c := img.NRGBAAt(cx, cy)
					r = int(c.R) >> (8 - bits)
					g = int(c.G) >> (8 - bits)
					b = int(c.B) >> (8 - bits)
					addr := candidates[rng.Intn(len(candidates))]
					x, y = addr%dim, addr/dim
				}
			}
		}

		// Scan an expanding cube in color space around the current color
		// until unused colors turn up.
		candidates = candidates[:0]
		for rg := 1; len(candidates) == 0; rg++ {
			for r2 := max(0, r-rg); r2 < min(lim, r+rg+1); r2++ {
				for g2 := max(0, g-rg); g2 < min(lim, g+rg+1); g2++ {
					for b2 := max(0, b-rg); b2 < min(lim, b+rg+1); b2++ {
						if !used[(r2<<(bits*2))|(g2<<bits)|b2] {
							candidates = append(candidates, (r2<<16)|(g2<<8)|b2)
						}
					}
				}
			}
		}
		pick := candidates[rng.Intn(len(candidates))]
		r, g, b = (pick>>16)&0xff, (pick>>8)&0xff, pick&0xff

		addr := y*dim + x
		visited[addr] = true
		cont = append(cont, addr)
		img.SetNRGBA(x, y, color.NRGBA{
			R: uint8(r << (8 - bits)),
			G: uint8(g << (8 - bits)),
			B: uint8(b << (8 - bits)),
			A: 0xFF,
		})
		used[(r<<(bits*2))|(g<<bits)|b] = true

		// Random 4-neighbor step.
		i := rng.Intn(4)
		if i < 2 {
			x += i*2 - 1
		} else {
			y += i*2 - 5
		}
	}

	return img, nil
}
