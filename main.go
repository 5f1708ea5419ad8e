package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line
type options struct {
	scene     string
	out       string
	format    string
	width     int
	height    int
	depth     int
	partition int
	verbose   bool
}

func parseFlags(args []string, stdout io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name or path to a .toml scene file")
	fs.StringVar(&opts.out, "out", "", "Output file; the format follows its extension")
	fs.StringVar(&opts.format, "format", "png", "Format for the default output path: png, ppm, bmp or tiff")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 uses the scene's)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 uses the scene's)")
	fs.IntVar(&opts.depth, "depth", -1, "Reflection and refraction depth (-1 uses the scene's)")
	fs.IntVar(&opts.partition, "partition", 0, "Regroup objects with a binary partition of this depth (0 disables)")
	fs.BoolVar(&opts.verbose, "v", false, "Log render progress")

	fs.Usage = func() {
		fmt.Fprintln(stdout, "Whitted Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Available scenes:")
		for _, name := range scene.Names() {
			fmt.Fprintf(stdout, "  %s\n", name)
		}
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Output will be saved to output/<scene>/render_<timestamp>.<format>")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer core.SetLogger(nil)

	preset, sceneDepth, err := createScene(opts.scene)
	if err != nil {
		return err
	}
	if opts.partition > 0 {
		if err := preset.World.Partition(opts.partition); err != nil {
			return err
		}
	}

	width, height := preset.View.Width, preset.View.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}

	camera, err := renderer.NewCamera(width, height, preset.View.FieldOfView)
	if err != nil {
		return err
	}
	if err := camera.SetTransform(preset.View.Transform()); err != nil {
		return err
	}

	filename := opts.out
	if filename == "" {
		format, err := output.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		outputDir := createOutputDir(opts.scene)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, "render_"+timestamp+format.Extension())
	} else if _, err := output.FormatFromPath(filename); err != nil {
		return err
	}

	rt := renderer.NewRaytracer(preset.World, camera)
	rt.SetMaxDepth(sceneDepth)
	if opts.depth >= 0 {
		rt.SetMaxDepth(opts.depth)
	}

	canvas, stats := rt.Render()
	fmt.Fprintf(stdout, "Render completed in %v (%dx%d, %.1f%% hits)\n",
		stats.Duration, width, height, stats.HitRatio()*100)

	if err := output.Save(filename, canvas); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

// createScene resolves a built-in scene name or a TOML scene file and
// returns it with its recursion depth
func createScene(sceneType string) (*scene.Preset, int, error) {
	if sceneType == "" {
		return nil, 0, errors.New("no scene given")
	}

	if isSceneFile(sceneType) {
		cfg, err := loaders.LoadConfig(sceneType)
		if err != nil {
			return nil, 0, err
		}
		preset, err := cfg.Build()
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", sceneType, err)
		}
		return preset, cfg.MaxDepth, nil
	}

	preset, err := scene.Lookup(sceneType)
	if err != nil {
		return nil, 0, err
	}
	return preset, renderer.DefaultMaxDepth, nil
}

func isSceneFile(sceneType string) bool {
	return strings.EqualFold(filepath.Ext(sceneType), ".toml")
}

// createOutputDir names the output directory for a scene. Scene files use
// their base name without the extension.
func createOutputDir(sceneType string) string {
	name := sceneType
	if isSceneFile(sceneType) {
		name = strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	}
	return filepath.Join("output", name)
}
