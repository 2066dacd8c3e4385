package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"glyphcast"
	"glyphcast/internal/fit"
	"glyphcast/internal/player"
)

var playCmd = &cobra.Command{
	Use:   "play <image|gif|url|animation.json[.zst]>",
	Short: "Play glyph art in the terminal",
	Long: `play converts a source and plays it on the alternate screen, sized
to fit the window. Interchange files written by --out (.json or
.json.zst) play back directly without converting again.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(args[0])
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(src string) error {
	cfg, err := mergeConfig()
	if err != nil {
		return err
	}
	mode, err := glyphcast.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}

	opts := []player.Option{
		player.WithTitle(filepath.Base(src)),
		player.WithColorMode(mode),
	}

	if isAnimationFile(src) {
		anim, err := glyphcast.ReadAnimationFile(src)
		if err != nil {
			return err
		}
		return player.Run(player.New(append(opts, player.WithAnimation(anim))...))
	}

	seq, err := loadSource(src)
	if err != nil {
		return err
	}

	alphabet, err := glyphcast.LoadAlphabet(cfg.Alphabet)
	if err != nil {
		return err
	}
	font, err := glyphcast.LoadFont(cfg.Font, alphabet)
	if err != nil {
		return err
	}

	fitter := fit.NewFitter()
	build := func(winCols, winRows int) (*glyphcast.Animation, error) {
		gw, gh := font.GlyphWidth(), font.GlyphHeight()
		// One row of chrome under the frame plus a cell of margin.
		budgetW := (winCols - 2) * gw
		budgetH := (winRows - 2) * gh
		if budgetW < gw || budgetH < gh {
			return nil, fmt.Errorf("terminal %dx%d is too small for %dx%d glyphs", winCols, winRows, gw, gh)
		}

		frames := fitter.FitAll(seq.Images(), budgetW, budgetH)
		convOpts := []glyphcast.ConverterOption{
			glyphcast.WithCustomFont(font),
			glyphcast.WithAlphabet(cfg.Alphabet),
			glyphcast.WithMetric(cfg.Metric),
			glyphcast.WithWidth(frames[0].Bounds().Dx()),
			glyphcast.WithThreads(cfg.Threads),
			glyphcast.WithBrightnessOffset(cfg.BrightnessOffset),
			glyphcast.WithNoiseScale(cfg.NoiseScale),
			glyphcast.WithEdgeDetection(!cfg.NoEdgeDetection),
			glyphcast.WithFPS(cfg.FPS),
		}
		if rootCmd.PersistentFlags().Changed("seed") {
			convOpts = append(convOpts, glyphcast.WithSeed(flagSeed))
		}
		conv, err := glyphcast.NewConverter(convOpts...)
		if err != nil {
			return nil, err
		}
		return conv.ConvertFrames(frames)
	}

	return player.Run(player.New(append(opts, player.WithBuilder(build))...))
}

// isAnimationFile reports whether src is an interchange file rather
// than raw media.
func isAnimationFile(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".zst")
}
