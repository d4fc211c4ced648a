// Command texatlas exports sprite atlas manifests and textures from layered
// document descriptions, and slices packed textures back into sprites.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/phanxgames/texatlas"
	"github.com/phanxgames/texatlas/internal/config"
	"github.com/phanxgames/texatlas/internal/script"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "texatlas: ", 0)
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "export":
		err = handleExport(ctx, args[1:], stdout, stderr)
	case "import":
		err = handleImport(ctx, args[1:], stdout, stderr)
	case "run":
		err = handleRun(ctx, args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `texatlas - sprite atlas exporter and importer

Usage: texatlas <command> [options]

Commands:
  export    Write the atlas manifest (and texture with -image) for a document
  import    Slice a texture into sprite PNGs using its manifest
  run       Execute a JSON script of export and import steps
  help      Show this help message

Examples:
  texatlas export -doc hero.json -image hero.png -out build -grid 16x16
  texatlas import -tex build/hero.tex -atlas build/hero.xml -out sprites
  texatlas run -script steps.json -workers 8`)
}

func newEnv(debug bool, stderr io.Writer) *texatlas.Env {
	return &texatlas.Env{Debug: debug, Stderr: stderr}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Empty(), nil
	}
	return config.Load(path)
}

func handleExport(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	doc := fs.String("doc", "", "Document JSON describing the layer tree (required)")
	out := fs.String("out", "", "Output directory (required)")
	image := fs.String("image", "", "Flattened document image; when set the texture is exported too")
	grid := fs.String("grid", "", "Snap grid as WxH, overrides the document grid")
	noAtlas := fs.Bool("no-atlas", false, "Skip the manifest when exporting a texture")
	pixelFormat := fs.String("pixel-format", "", "Texture pixel format: DXT1, DXT3, DXT5, ARGB")
	textureType := fs.String("texture-type", "", "Texture type: 1D, 2D, 3D, Cube Mapped")
	mipmapFilter := fs.String("mipmap-filter", "", "Mipmap filter: Default, Nearest Neighbor, Bilinear, Bicubic, ...")
	mipmaps := fs.Bool("mipmaps", false, "Generate mipmaps")
	premultiply := fs.Bool("premultiply", false, "Premultiply alpha")
	configPath := fs.String("config", "", "JSON config with export defaults")
	debug := fs.Bool("debug", false, "Log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *doc == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("export: -doc and -out are required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	opts := cfg.EncodeOptions()
	st := script.Step{
		Action:       "export",
		Doc:          *doc,
		Image:        *image,
		Out:          *out,
		NoAtlas:      !cfg.GetAtlas(),
		PixelFormat:  opts.PixelFormat.String(),
		TextureType:  opts.TextureType.String(),
		MipmapFilter: opts.MipmapFilter.String(),
		Mipmaps:      opts.GenerateMipmaps,
		Premultiply:  opts.PreMultiplyAlpha,
	}
	if cfg.Grid != nil {
		st.Grid = *cfg.Grid
	}

	// Flags given on the command line override the config.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "grid":
			st.Grid = *grid
		case "no-atlas":
			st.NoAtlas = *noAtlas
		case "pixel-format":
			st.PixelFormat = *pixelFormat
		case "texture-type":
			st.TextureType = *textureType
		case "mipmap-filter":
			st.MipmapFilter = *mipmapFilter
		case "mipmaps":
			st.Mipmaps = *mipmaps
		case "premultiply":
			st.Premultiply = *premultiply
		}
	})

	res, err := script.Run(ctx, newEnv(*debug || cfg.GetDebug(), stderr), []script.Step{st}, 1)
	if err != nil {
		return err
	}
	printResults(stdout, res)
	return nil
}

func handleImport(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tex := fs.String("tex", "", "Texture file to slice (required)")
	atlas := fs.String("atlas", "", "Atlas manifest; without it the whole texture is one sprite")
	out := fs.String("out", "", "Output directory for sprite PNGs (required)")
	debug := fs.Bool("debug", false, "Log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tex == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("import: -tex and -out are required")
	}

	st := script.Step{Action: "import", Tex: *tex, Atlas: *atlas, Out: *out}
	res, err := script.Run(ctx, newEnv(*debug, stderr), []script.Step{st}, 1)
	if err != nil {
		return err
	}
	imp := res[0].Import
	fmt.Fprintf(stdout, "Imported %s (%dx%d), %d sprites\n", imp.Name, imp.Width, imp.Height, len(imp.Regions))
	printResults(stdout, res)
	return nil
}

func handleRun(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scriptPath := fs.String("script", "", "JSON script of steps (required)")
	workers := fs.Int("workers", 0, "Steps run at once (default from config, else 4)")
	configPath := fs.String("config", "", "JSON config providing workers and debug defaults")
	debug := fs.Bool("debug", false, "Log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scriptPath == "" {
		fs.Usage()
		return fmt.Errorf("run: -script is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	s, err := script.LoadFile(*scriptPath)
	if err != nil {
		return err
	}
	n := cfg.GetWorkers()
	if *workers > 0 {
		n = *workers
	}

	res, err := script.Run(ctx, newEnv(*debug || cfg.GetDebug(), stderr), s.Steps, n)
	printResults(stdout, res)
	return err
}

func printResults(w io.Writer, results []script.StepResult) {
	for _, r := range results {
		if r.Action == "" {
			continue // step did not run
		}
		if r.Label != "" {
			fmt.Fprintf(w, "[%s]\n", r.Label)
		}
		for _, m := range r.Messages() {
			fmt.Fprintln(w, m)
		}
	}
}
