package main

import (
	"flag"
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"time"

	"kinetic/internal/fillcurve"
)

func main() {
	var (
		bits = flag.Int("bits", 8, "color bits per channel (even, 2..8)")
		out  = flag.String("out", "fillcurve.png", "output PNG path")
		seed = flag.Int64("seed", 0, "RNG seed, 0 for time-derived")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	start := time.Now()
	fmt.Println("Beginning rendering")
	img, err := fillcurve.Render(*bits, rng)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ready: %s\n", time.Since(start))
}
