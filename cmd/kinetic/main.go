package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"kinetic/internal/reverb"
)

func main() {
	reverb.Debug = os.Getenv("DEBUG") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "scenes/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	fmt.Println("# Calculating reverb")
	if err := reverb.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
