// Command lfdtrade-render writes the top view and side view diagrams of
// every display preset to image files, as SVG and in a raster format.
//
// Usage:
//
//	lfdtrade-render [-config lfdtrade.json] [-out renders] [-format png|webp|tga] [-size 600]
//
// Files are named <preset>-top.<ext> and <preset>-side.<ext>. Presets
// without geometry get placeholder diagrams.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/lfdtrade/internal/config"
	"github.com/npillmayer/lfdtrade/preset"
	"github.com/npillmayer/lfdtrade/render/raster"
	"github.com/npillmayer/lfdtrade/render/svg"
	"github.com/npillmayer/lfdtrade/scene"
	"github.com/npillmayer/lfdtrade/selector"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'render'
func tracer() tracing.Trace {
	return tracing.Select("render")
}

func main() {
	configPath := flag.String("config", "", "JSON config file")
	outDir := flag.String("out", "", "output directory (default renders)")
	format := flag.String("format", "", "raster format: png, webp or tga (default png)")
	size := flag.Int("size", 0, "image size in pixels (default 600)")
	trace := flag.String("trace", "", "trace level: debug, info or error")
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{OutputDir: *outDir, Format: *format, Size: *size, TraceLevel: *trace})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyTraceLevel()

	files, err := renderAll(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	for _, f := range files {
		fmt.Println(f)
	}
}

// renderAll renders all presets in catalog order and returns the names of
// the files written.
func renderAll(cfg config.Config) ([]string, error) {
	format, err := raster.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	var files []string
	for _, k := range preset.Keys() {
		sel, err := selector.SelectOrPlaceholder(k)
		if err != nil {
			return files, err
		}
		views := []struct {
			name string
			sc   scene.Scene
		}{{"top", sel.Top}, {"side", sel.Side}}
		for _, v := range views {
			base := filepath.Join(cfg.OutputDir, strings.ToLower(k.String())+"-"+v.name)
			written, err := writeScene(base, v.sc, format, cfg.RasterOptions())
			files = append(files, written...)
			if err != nil {
				return files, fmt.Errorf("%s %s view: %w", k, v.name, err)
			}
		}
		tracer().Infof("rendered %s", k)
	}
	return files, nil
}

// writeScene writes base.svg and base.<format>.
func writeScene(base string, sc scene.Scene, format raster.Format, opts raster.Options) ([]string, error) {
	var written []string
	svgName := base + ".svg"
	if err := writeFile(svgName, func(f *os.File) error { return svg.Render(f, sc) }); err != nil {
		return written, err
	}
	written = append(written, svgName)
	imgName := base + format.Ext()
	if err := writeFile(imgName, func(f *os.File) error { return raster.Render(f, sc, format, opts) }); err != nil {
		return written, err
	}
	return append(written, imgName), nil
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}
