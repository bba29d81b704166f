// Command centr fits an image to the desktop so that its center stays
// visible, and optionally sets it as the wallpaper.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/jamesbarr/centr/config"
	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/pkg/source"
	"github.com/jamesbarr/centr/pkg/wallpaper"
	"github.com/jamesbarr/centr/util/log"
)

type options struct {
	configPath string
	display    string
	anchor     string
	monitors   string
	out        string
	preview    string
	stats      bool
	set        bool
	debug      bool
	uri        string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, wallpaper.NewOS()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = config.ConfigFileName
	}

	fs := flag.NewFlagSet("centr", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", defaultConfig, "path to the YAML config file")
	fs.StringVar(&opts.display, "display", "", "display size as WIDTHxHEIGHT (default: detected)")
	fs.StringVar(&opts.anchor, "anchor", "", "viewport anchor: center, smart or face")
	fs.StringVar(&opts.monitors, "monitors", "", "comma separated monitor sizes to render, e.g. 1920x1080,2560x1440")
	fs.StringVar(&opts.out, "out", "", "write the centered wallpaper to this file")
	fs.StringVar(&opts.preview, "preview", "", "write the cover-fit preview to this file")
	fs.BoolVar(&opts.stats, "stats", false, "print fit statistics")
	fs.BoolVar(&opts.set, "set", false, "set the result as the desktop wallpaper")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: centr [flags] <image path | URL>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one image")
	}
	opts.uri = fs.Arg(0)
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.display != "" {
		cfg.Display = opts.display
	}
	if opts.anchor != "" {
		cfg.Anchor = opts.anchor
	}
	if opts.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout io.Writer, host wallpaper.OS) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log.SetDebug(cfg.Debug)

	var faces *pigo.Pigo
	if cfg.Anchor == config.AnchorFace {
		if cfg.FaceModel == "" {
			log.Printf("Face anchor without face_model configured, falling back to center")
		} else if faces, err = wallpaper.LoadFaceDetector(cfg.FaceModel); err != nil {
			return err
		}
	}

	loader := source.NewLoader(
		source.WithUserAgent(cfg.UserAgent),
		source.WithRateLimit(cfg.RequestsPerSecond),
		source.WithMaxBytes(cfg.MaxDownloadBytes),
	)
	img, err := loader.Load(ctx, opts.uri)
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.uri, err)
	}

	processor := wallpaper.NewProcessor(host, cfg, faces)
	display, err := processor.DisplaySize()
	if err != nil {
		return err
	}

	acted := false
	if opts.out != "" {
		acted = true
		out, _, err := processor.Center(ctx, img, display)
		if err != nil {
			return err
		}
		if err := imaging.Save(out, opts.out, imaging.JPEGQuality(cfg.JPEGQuality)); err != nil {
			return fmt.Errorf("saving wallpaper: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", opts.out)
	}

	if opts.preview != "" {
		acted = true
		out, err := processor.Preview(ctx, img, display)
		if err != nil {
			return err
		}
		if err := imaging.Save(out, opts.preview, imaging.JPEGQuality(cfg.JPEGQuality)); err != nil {
			return fmt.Errorf("saving preview: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", opts.preview)
	}

	if opts.monitors != "" {
		acted = true
		if err := renderMonitors(ctx, processor, img, opts.monitors, cfg.OutputDir, stdout); err != nil {
			return err
		}
	}

	if opts.set {
		acted = true
		path, err := processor.Apply(ctx, img)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wallpaper set: %s\n", path)
	}

	if opts.stats || !acted {
		stats, err := wallpaper.DebugStats(img.Size(), display)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, stats)
	}
	return nil
}

func renderMonitors(ctx context.Context, processor *wallpaper.Processor, img *source.Image, list, outDir string, stdout io.Writer) error {
	monitors, err := parseMonitors(list)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	rendered, err := processor.RenderMonitors(ctx, img, monitors)
	if err != nil {
		return err
	}

	resolutions, users := wallpaper.GetUniqueResolutions(monitors)
	for _, res := range resolutions {
		data, ext, err := processor.Encode(ctx, rendered[res])
		if err != nil {
			return err
		}
		name := filepath.Join(outDir, fmt.Sprintf("centr-%s.%s", res, ext))
		if err := os.WriteFile(name, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Fprintf(stdout, "Wrote %s for monitors %v\n", name, users[res])
	}
	return nil
}

// parseMonitors turns "1920x1080,2560x1440" into monitors laid out left to
// right.
func parseMonitors(list string) ([]wallpaper.Monitor, error) {
	var monitors []wallpaper.Monitor
	x := 0
	for i, part := range strings.Split(list, ",") {
		size, err := geometry.ParseSize(part)
		if err != nil {
			return nil, fmt.Errorf("monitor %d: %w", i, err)
		}
		w, h := int(size.Width), int(size.Height)
		monitors = append(monitors, wallpaper.Monitor{
			ID:   i,
			Name: fmt.Sprintf("monitor-%d", i),
			Rect: image.Rect(x, 0, x+w, h),
		})
		x += w
	}
	return monitors, nil
}
