package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"glyphcast"
	"glyphcast/imageutil"
	"glyphcast/internal/config"
)

var (
	flagFont             string
	flagAlphabet         string
	flagWidth            int
	flagMetric           string
	flagThreads          int
	flagBrightnessOffset float64
	flagNoiseScale       float64
	flagSeed             int64
	flagFPS              float64
	flagColor            string
	flagNoEdge           bool
	flagConfig           string
	flagVerbose          bool

	flagOut   string
	flagScale int
)

var rootCmd = &cobra.Command{
	Use:   "glyphcast [flags] <image|gif|url>",
	Short: "Convert images and GIFs to glyph art",
	Long: `glyphcast matches blocks of image pixels against font glyphs and
emits the result as colored terminal output, interchange JSON, or a
re-rendered image or GIF.

Sources can be local files or http(s) URLs; PNG, JPEG, GIF, BMP, TIFF
and SVG are understood. Without --out, the result is written to stdout
and animated sources loop until interrupted.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runRender(args[0])
	}

	def := config.Default()

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFont, "font", "f", def.Font, "built-in font name or path to a .bdf/.ttf file")
	pf.StringVarP(&flagAlphabet, "alphabet", "a", def.Alphabet, "built-in alphabet name or path to a text file")
	pf.IntVarP(&flagWidth, "width", "w", def.Width, "target output width in pixels")
	pf.StringVarP(&flagMetric, "metric", "m", def.Metric, "glyph scoring metric ("+strings.Join(glyphcast.MetricNames(), ", ")+")")
	pf.IntVarP(&flagThreads, "threads", "t", def.Threads, "matching workers per frame")
	pf.Float64Var(&flagBrightnessOffset, "brightness-offset", def.BrightnessOffset, "luminance subtracted before matching (0-255)")
	pf.Float64Var(&flagNoiseScale, "noise-scale", def.NoiseScale, "random tie-breaking magnitude, 0 disables")
	pf.Int64Var(&flagSeed, "seed", 0, "fixed noise seed (default: random per run)")
	pf.Float64Var(&flagFPS, "fps", def.FPS, "playback rate for animated output")
	pf.StringVar(&flagColor, "color", def.Color, "color mode: true, 256, or none")
	pf.BoolVar(&flagNoEdge, "no-edge-detection", def.NoEdgeDetection, "disable sharpening and gradient features")
	pf.StringVarP(&flagConfig, "config", "c", "", "YAML file with default settings")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log the resolved configuration to stderr")

	fl := rootCmd.Flags()
	fl.StringVarP(&flagOut, "out", "o", "", "output path; extension picks the format (.json, .json.zst, .gif, .png, .jpg, .txt)")
	fl.IntVar(&flagScale, "scale", 1, "pixel scale for image and GIF output")
}

// Execute runs the root command and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "glyphcast:", err)
		os.Exit(1)
	}
}

// mergeConfig layers the three settings sources: defaults, then the
// YAML config file, then any flag the user actually set.
func mergeConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	pf := rootCmd.PersistentFlags()
	if pf.Changed("font") {
		cfg.Font = flagFont
	}
	if pf.Changed("alphabet") {
		cfg.Alphabet = flagAlphabet
	}
	if pf.Changed("width") {
		cfg.Width = flagWidth
	}
	if pf.Changed("metric") {
		cfg.Metric = flagMetric
	}
	if pf.Changed("threads") {
		cfg.Threads = flagThreads
	}
	if pf.Changed("brightness-offset") {
		cfg.BrightnessOffset = flagBrightnessOffset
	}
	if pf.Changed("noise-scale") {
		cfg.NoiseScale = flagNoiseScale
	}
	if pf.Changed("fps") {
		cfg.FPS = flagFPS
	}
	if pf.Changed("no-edge-detection") {
		cfg.NoEdgeDetection = flagNoEdge
	}
	if pf.Changed("color") {
		cfg.Color = flagColor
	}
	return cfg, nil
}

// converterOptions maps resolved settings onto converter options.
func converterOptions(cfg config.Config) []glyphcast.ConverterOption {
	opts := []glyphcast.ConverterOption{
		glyphcast.WithFont(cfg.Font),
		glyphcast.WithAlphabet(cfg.Alphabet),
		glyphcast.WithMetric(cfg.Metric),
		glyphcast.WithWidth(cfg.Width),
		glyphcast.WithThreads(cfg.Threads),
		glyphcast.WithBrightnessOffset(cfg.BrightnessOffset),
		glyphcast.WithNoiseScale(cfg.NoiseScale),
		glyphcast.WithEdgeDetection(!cfg.NoEdgeDetection),
		glyphcast.WithFPS(cfg.FPS),
	}
	if rootCmd.PersistentFlags().Changed("seed") {
		opts = append(opts, glyphcast.WithSeed(flagSeed))
	}
	return opts
}

// loadSource reads a sequence from a local path or an http(s) URL.
func loadSource(src string) (*imageutil.Sequence, error) {
	if u, err := url.Parse(src); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return imageutil.FetchSequence(src)
	}
	return imageutil.LoadSequence(src)
}

func newVerboseLog() *log.Logger {
	if !flagVerbose {
		return nil
	}
	return log.New(os.Stderr, "", 0)
}

func verbosef(l *log.Logger, key, format string, args ...any) {
	if l != nil {
		l.Printf("%-18s %s", key, fmt.Sprintf(format, args...))
	}
}

func runRender(src string) error {
	cfg, err := mergeConfig()
	if err != nil {
		return err
	}
	mode, err := glyphcast.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}

	vlog := newVerboseLog()

	seq, err := loadSource(src)
	if err != nil {
		return err
	}
	frames := seq.Images()
	verbosef(vlog, "source", "%s (%d frames)", src, len(frames))
	if fps := seq.FPS(); fps > 0 {
		verbosef(vlog, "source fps", "%.3g", fps)
	}

	opts := converterOptions(cfg)
	var bar *pb.ProgressBar
	if flagOut != "" && len(frames) > 1 {
		bar = pb.StartNew(len(frames))
		opts = append(opts, glyphcast.WithProgress(func(done, total int) {
			bar.Increment()
		}))
	}

	conv, err := glyphcast.NewConverter(opts...)
	if err != nil {
		if bar != nil {
			bar.Finish()
		}
		return err
	}

	font := conv.Font()
	verbosef(vlog, "font", "%s (%dx%d)", font.Name(), font.GlyphWidth(), font.GlyphHeight())
	verbosef(vlog, "alphabet", "%s (%d chars)", cfg.Alphabet, conv.Alphabet().Len())
	verbosef(vlog, "metric", "%s", conv.Metric().Name())
	verbosef(vlog, "width", "%d px", cfg.Width)
	verbosef(vlog, "threads", "%d", cfg.Threads)
	verbosef(vlog, "brightness offset", "%g", cfg.BrightnessOffset)
	if cfg.NoiseScale > 0 {
		verbosef(vlog, "noise", "scale %g, seed %d", cfg.NoiseScale, conv.Seed())
	}
	verbosef(vlog, "edge detection", "%t", !cfg.NoEdgeDetection)
	verbosef(vlog, "color", "%s", cfg.Color)

	anim, err := conv.ConvertSequence(seq)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}
	verbosef(vlog, "grid", "%dx%d", anim.Cols, anim.Rows)

	return writeOutput(anim, conv, mode)
}

// writeOutput dispatches on the --out extension. An empty --out writes
// to stdout, looping animated results until interrupted.
func writeOutput(anim *glyphcast.Animation, conv *glyphcast.Converter, mode glyphcast.ColorMode) error {
	withColor := mode != glyphcast.ColorNone
	out := strings.ToLower(flagOut)
	switch {
	case flagOut == "":
		return writeStdout(anim, mode)

	case strings.HasSuffix(out, ".json"), strings.HasSuffix(out, ".zst"):
		return glyphcast.WriteAnimationFile(flagOut, anim, withColor)

	case strings.HasSuffix(out, ".gif"):
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		if err := glyphcast.RenderGIF(f, anim, conv.Font(), flagScale, withColor); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	case strings.HasSuffix(out, ".png"), strings.HasSuffix(out, ".jpg"), strings.HasSuffix(out, ".jpeg"):
		img, err := glyphcast.RenderImage(anim.Frames[0], conv.Font(), flagScale, withColor)
		if err != nil {
			return err
		}
		return imageutil.SaveImage(img, flagOut)

	case strings.HasSuffix(out, ".txt"):
		return os.WriteFile(flagOut, []byte(anim.Frames[0].String()), 0o644)
	}
	return fmt.Errorf("unsupported output extension %q", filepath.Ext(flagOut))
}

// writeStdout prints a single frame, or loops an animation at its
// playback rate until the user interrupts.
func writeStdout(anim *glyphcast.Animation, mode glyphcast.ColorMode) error {
	if len(anim.Frames) == 1 {
		fmt.Print(glyphcast.RenderANSI(anim.Frames[0], mode))
		return nil
	}

	rendered := make([]string, len(anim.Frames))
	for i, f := range anim.Frames {
		rendered[i] = glyphcast.RenderANSI(f, mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := time.Duration(float64(time.Second) / anim.FPS)
	for i := 0; ; i = (i + 1) % len(rendered) {
		fmt.Print("\x1b[2J\x1b[H")
		fmt.Print(rendered[i])
		select {
		case <-ctx.Done():
			fmt.Print("\x1b[0m\n")
			return nil
		case <-time.After(interval):
		}
	}
}
