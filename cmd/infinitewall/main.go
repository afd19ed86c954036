package main

import (
	"flag"
	"fmt"
	"os"

	"kinetic/internal/reverb"
)

func main() {
	var (
		sx       = flag.Float64("sx", 1, "speaker x (distance from the wall)")
		sy       = flag.Float64("sy", 2, "speaker y")
		sz       = flag.Float64("sz", 1, "speaker z")
		lx       = flag.Float64("lx", 1.5, "listener x (distance from the wall)")
		ly       = flag.Float64("ly", 1.8, "listener y")
		lz       = flag.Float64("lz", 3.0, "listener z")
		rate     = flag.Float64("rate", 44100, "sample rate in Hz")
		duration = flag.Float64("duration", 0.025, "buffer duration in seconds")
		rays     = flag.Int("rays", reverb.InfiniteWallRays, "ray count")
		seed     = flag.Int64("seed", 0, "RNG seed, 0 for time-derived")
	)
	flag.Parse()
	reverb.Debug = os.Getenv("DEBUG") != ""

	wall, err := reverb.NewInfiniteWall(
		reverb.Vector3{X: *sx, Y: *sy, Z: *sz},
		reverb.Vector3{X: *lx, Y: *ly, Z: *lz},
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("# Speaker at: %+v\n", wall.Speaker)
	fmt.Printf("# Listener at: %+v\n", wall.Listener)
	buf := wall.CalculateSeeded(*rate, *duration, *rays, *seed)

	first := buf.FirstNonZero()
	if first < 0 {
		return
	}
	for i := first; i < len(buf); i++ {
		fmt.Printf("%d %.6f\n", i, buf[i])
	}
}
