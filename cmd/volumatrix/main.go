package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rajwardhan1920/Volumatrix/internal/models"
	"github.com/rajwardhan1920/Volumatrix/pkg/config"
	"github.com/rajwardhan1920/Volumatrix/pkg/nrrd"
	"github.com/rajwardhan1920/Volumatrix/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Path to the NRRD header (.nhdr) file")
	configPath := flag.String("config", "volumatrix.yaml", "Path to the YAML configuration file")
	extractSlices := flag.Bool("extract-slices", false, "Extract and save slices along the configured axes")
	slicesDir := flag.String("slices-dir", "", "Directory to save extracted slices (overrides config)")
	window := flag.Float64("window", 0, "Explicit display window width (overrides config)")
	level := flag.Float64("level", 0, "Explicit display window center (overrides config)")
	flag.Parse()

	// Validate inputs
	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration, falling back to defaults when the file is absent
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Apply command-line overrides
	if *slicesDir != "" {
		cfg.Output.SlicesDir = *slicesDir
	}
	if *extractSlices {
		cfg.Output.ExtractSlices = true
	}
	if *window != 0 || *level != 0 {
		cfg.Windowing.Mode = config.WindowModeExplicit
		cfg.Windowing.Window = *window
		cfg.Windowing.Level = *level
	}

	fmt.Println("================================")
	fmt.Println("VOLUMATRIX NRRD VOLUME DECODER")
	fmt.Println("================================")

	// Route decode warnings to the log when requested
	decoder := nrrd.Decoder{}
	if cfg.Decoder.VerboseWarnings {
		decoder.Warn = func(format string, args ...interface{}) {
			log.Printf("Warning: "+format, args...)
		}
	}

	// Run the decode pipeline
	fmt.Printf("Decoding %s...\n", *inputPath)
	startTime := time.Now()
	vol, err := decoder.DecodeFile(*inputPath)
	if err != nil {
		log.Fatalf("Decode failed: %v", err)
	}
	decodeTime := time.Since(startTime)

	// Display volume summary
	world := vol.WorldDimensions()
	fmt.Printf("\nDecode completed in %.3f seconds\n\n", decodeTime.Seconds())
	fmt.Printf("Volume summary:\n")
	fmt.Printf("===============\n")
	fmt.Printf("Dimensions: %d x %d x %d voxels\n", vol.SizeX, vol.SizeY, vol.SizeZ)
	fmt.Printf("Spacing: %.3f x %.3f x %.3f mm\n", vol.Spacing.X, vol.Spacing.Y, vol.Spacing.Z)
	fmt.Printf("Origin: (%.3f, %.3f, %.3f) mm\n", vol.Origin.X, vol.Origin.Y, vol.Origin.Z)
	fmt.Printf("Physical size: %.1f x %.1f x %.1f mm\n", world.X, world.Y, world.Z)
	fmt.Printf("Buffer: %d bytes (%d-byte samples)\n", len(vol.Data), vol.BytesPerSample)
	fmt.Printf("Intensity range: [%d, %d]\n", vol.MinValue, vol.MaxValue)

	defWindow, defLevel := vol.DefaultWindow()
	autoWindow, autoLevel := vol.AutoWindow()
	fmt.Printf("\nWindow presets:\n")
	fmt.Printf("- Full range: window %.0f, level %.1f\n", defWindow, defLevel)
	fmt.Printf("- Auto: window %.0f, level %.1f\n", autoWindow, autoLevel)

	// Extract and save slices if requested
	if cfg.Output.ExtractSlices {
		wl := selectWindow(cfg, vol)
		fmt.Printf("\nExtracting slices (window %.0f, level %.1f)...\n", wl.Window, wl.Level)

		viewer := visualization.NewViewer(vol, wl)

		// Extract and save slices along each configured axis
		for _, axis := range cfg.Output.Axes {
			axisDir := filepath.Join(cfg.Output.SlicesDir, axis)
			fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)

			if err := viewer.SaveSliceSequence(axis, axisDir, cfg.Output.JPEGQuality); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}

		fmt.Println("Slice extraction completed!")
	}
}

// selectWindow resolves the configured windowing mode against the decoded
// volume's statistics.
func selectWindow(cfg *config.Config, vol *nrrd.Volume) models.WindowLevel {
	switch cfg.Windowing.Mode {
	case config.WindowModeExplicit:
		return models.WindowLevel{Window: cfg.Windowing.Window, Level: cfg.Windowing.Level}
	case config.WindowModeAuto:
		w, l := vol.AutoWindow()
		return models.WindowLevel{Window: w, Level: l}
	default:
		return models.FromRange(vol.MinValue, vol.MaxValue)
	}
}
