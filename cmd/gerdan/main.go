// gerdan is a command-line tool for turning bead patterns into printable PDF
// documents, preview thumbnails and bead statistics.
//
// Patterns are read from JSON or YAML files with the same fields the pattern
// editor saves: name, width, height, pixelSize, backgroundColor and pixels.
//
// Configuration:
//
// An optional YAML configuration file sets rendering and storage options:
//
//	watermark: "Gerdan.js"
//	temp_dir: "/tmp/gerdan"
//	bucket_dir: "./bucket"
//	preview_scale: 5
//	outline_color: "#000000"
//	font:
//	  name: "Helvetica"
//	  style: ""
//	retrieval:
//	  interval: 100ms
//	  timeout: 60s
//
// The SITE_MARK environment variable, when set, replaces the watermark.
//
// Usage:
//
//	gerdan <command> -pattern pattern.json [options]
//
// Commands:
//
//	pdf      Render the printable pattern document
//	preview  Render a thumbnail image
//	stats    Print bead statistics
//
// Common flags:
//
//	-pattern string  Path to the pattern file (required)
//	-config string   Path to the YAML configuration file
//	-debug           Enable debug logging
//
// pdf flags:
//
//	-author string   Author shown on the title page (required)
//	-output string   Output PDF path (default "<author>-<name>.pdf")
//
// preview flags:
//
//	-output string   Output image path (default: a new file in bucket_dir)
//	-scale int       Image pixels per bead (default from config)
//	-png             Write a lossless PNG instead of JPEG
//
// stats flags:
//
//	-format string   Output format, json or yaml (default "json")
//
// Examples:
//
//	gerdan pdf -pattern sunflower.json -author alice -output sunflower.pdf
//	gerdan preview -pattern sunflower.json -scale 8
//	gerdan stats -pattern sunflower.yml -format yaml
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gerdanjs/gerdan/pkg/artifact"
	"github.com/gerdanjs/gerdan/pkg/document"
	"github.com/gerdanjs/gerdan/pkg/gerdan"
	"github.com/gerdanjs/gerdan/pkg/pattern"
	"github.com/gerdanjs/gerdan/pkg/preview"
)

// errGenerate is what the user sees when a render fails; details go to the log.
var errGenerate = errors.New("could not generate file")

type yamlConfig struct {
	Watermark    string `yaml:"watermark"`
	TempDir      string `yaml:"temp_dir"`
	BucketDir    string `yaml:"bucket_dir"`
	PreviewScale int    `yaml:"preview_scale"`
	OutlineColor string `yaml:"outline_color"`
	Font         struct {
		Name  string `yaml:"name"`
		Style string `yaml:"style"`
	} `yaml:"font"`
	Retrieval struct {
		Interval time.Duration `yaml:"interval"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"retrieval"`
}

// appConfig is the resolved configuration for one run
type appConfig struct {
	Document     document.Config
	Store        *artifact.Store
	PreviewScale int
}

func defaultAppConfig() *appConfig {
	return &appConfig{
		Document:     document.DefaultConfig(),
		Store:        artifact.NewStore(filepath.Join(os.TempDir(), "gerdan"), "bucket"),
		PreviewScale: preview.DefaultScale,
	}
}

// loadConfig reads a YAML file over the defaults. An empty path keeps the
// defaults. SITE_MARK overrides the watermark either way.
func loadConfig(path string) (*appConfig, error) {
	cfg := defaultAppConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var yc yamlConfig
		if err := yaml.Unmarshal(data, &yc); err != nil {
			return nil, err
		}
		applyYAML(cfg, yc)
	}

	if mark := os.Getenv("SITE_MARK"); mark != "" {
		cfg.Document.Watermark = mark
	}
	if _, err := pattern.ParseHex(cfg.Document.OutlineColor); err != nil {
		return nil, fmt.Errorf("outline_color: %w", err)
	}
	if cfg.PreviewScale <= 0 {
		return nil, fmt.Errorf("preview_scale must be positive, got %d", cfg.PreviewScale)
	}
	return cfg, nil
}

func applyYAML(cfg *appConfig, yc yamlConfig) {
	if yc.Watermark != "" {
		cfg.Document.Watermark = yc.Watermark
	}
	if yc.OutlineColor != "" {
		cfg.Document.OutlineColor = yc.OutlineColor
	}
	if yc.Font.Name != "" {
		cfg.Document.Font.Name = yc.Font.Name
		cfg.Document.Font.Style = yc.Font.Style
	}
	if yc.PreviewScale != 0 {
		cfg.PreviewScale = yc.PreviewScale
	}
	if yc.TempDir != "" {
		cfg.Store.TempDir = yc.TempDir
	}
	if yc.BucketDir != "" {
		cfg.Store.BucketDir = yc.BucketDir
	}
	if yc.Retrieval.Interval > 0 {
		cfg.Store.Retrieval.Interval = yc.Retrieval.Interval
	}
	if yc.Retrieval.Timeout > 0 {
		cfg.Store.Retrieval.Timeout = yc.Retrieval.Timeout
	}
}

// loadPattern decodes and validates a pattern file
func loadPattern(path string) (pattern.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return pattern.Spec{}, err
	}
	defer f.Close()

	spec, err := pattern.Decode(f)
	if err != nil {
		return pattern.Spec{}, err
	}
	if err := spec.Validate(); err != nil {
		return pattern.Spec{}, err
	}
	return spec, nil
}

// fileName turns a pattern or author name into a safe file name part
func fileName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case r == ' ':
			return '-'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		return "pattern"
	}
	return s
}

// commonFlags are accepted by every command
type commonFlags struct {
	pattern string
	config  string
	debug   bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.pattern, "pattern", "", "Path to the pattern JSON or YAML file (required)")
	fs.StringVar(&c.config, "config", "", "Path to the config YAML file")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging")
}

// setup installs the logger and loads the configuration and pattern
func (c *commonFlags) setup(fs *flag.FlagSet) (*appConfig, pattern.Spec, error) {
	level := slog.LevelInfo
	if c.debug {
		level = slog.LevelDebug
	}
	gerdan.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if c.pattern == "" {
		fmt.Fprintln(os.Stderr, "Error: -pattern flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		fs.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := loadConfig(c.config)
	if err != nil {
		return nil, pattern.Spec{}, fmt.Errorf("failed to load config: %w", err)
	}
	spec, err := loadPattern(c.pattern)
	if err != nil {
		return nil, pattern.Spec{}, fmt.Errorf("failed to load pattern: %w", err)
	}
	return cfg, spec, nil
}

func runPDF(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pdf", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	author := fs.String("author", "", "Author shown on the title page (required)")
	output := fs.String("output", "", "Output PDF path (default \"<author>-<name>.pdf\")")
	fs.Parse(args)

	cfg, spec, err := common.setup(fs)
	if err != nil {
		return err
	}
	if *author == "" {
		return fmt.Errorf("-author flag is required")
	}

	name := fileName(*author) + "-" + fileName(spec.Name)
	if *output == "" {
		*output = name + ".pdf"
	}

	tmpPath, err := cfg.Store.PrepareFilePath(name, "pdf")
	if err != nil {
		return err
	}

	fmt.Println("Generating pattern document:", spec.Name)
	if err := gerdan.GeneratePDF(tmpPath, spec, *author, cfg.Document); err != nil {
		gerdan.Logger().Debug("pdf generation failed", "pattern", spec.Name, "error", err)
		return errGenerate
	}

	data, err := cfg.Store.Extract(ctx, tmpPath)
	if err != nil {
		gerdan.Logger().Debug("pdf retrieval failed", "path", tmpPath, "error", err)
		return errGenerate
	}
	if err := cfg.Store.SaveFile(*output, data); err != nil {
		return err
	}
	fmt.Println("Pattern document saved to:", *output)
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	output := fs.String("output", "", "Output image path (default: a new file in bucket_dir)")
	scale := fs.Int("scale", 0, "Image pixels per bead (default from config)")
	asPNG := fs.Bool("png", false, "Write a lossless PNG instead of JPEG")
	fs.Parse(args)

	cfg, spec, err := common.setup(fs)
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Scale = cfg.PreviewScale
	if *scale > 0 {
		opts.Scale = *scale
	}
	if *asPNG {
		opts.Format = preview.PNG
	}

	data, err := gerdan.CreatePreviewWithOptions(spec, opts)
	if err != nil {
		gerdan.Logger().Debug("preview generation failed", "pattern", spec.Name, "error", err)
		return errGenerate
	}

	path := *output
	if path == "" {
		if path, err = cfg.Store.SaveToBucket(data, opts.Format.Extension()); err != nil {
			return err
		}
	} else if err := cfg.Store.SaveFile(path, data); err != nil {
		return err
	}
	fmt.Println("Preview saved to:", path)
	return nil
}

func runStats(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "json", "Output format, json or yaml")
	fs.Parse(args)

	_, spec, err := common.setup(fs)
	if err != nil {
		return err
	}

	stats, err := gerdan.Statistics(spec)
	if err != nil {
		return err
	}
	return writeStats(w, stats, *format)
}

func writeStats(w io.Writer, stats pattern.Statistics, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stats); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: gerdan <pdf|preview|stats> -pattern pattern.json [options]")
	fmt.Fprintln(os.Stderr, "Run 'gerdan <command> -h' for the options of a command.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "pdf":
		err = runPDF(context.Background(), os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "stats":
		err = runStats(os.Stdout, os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
