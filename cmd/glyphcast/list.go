package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glyphcast"
)

var fontsCmd = &cobra.Command{
	Use:           "fonts",
	Short:         "List built-in fonts",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		alphabet, err := glyphcast.LoadAlphabet(glyphcast.DefaultAlphabet)
		if err != nil {
			return err
		}
		for _, name := range glyphcast.FontNames() {
			font, err := glyphcast.LoadFont(name, alphabet)
			if err != nil {
				return err
			}
			fmt.Printf("%-18s %dx%d px\n", name, font.GlyphWidth(), font.GlyphHeight())
		}
		return nil
	},
}

var alphabetsCmd = &cobra.Command{
	Use:           "alphabets",
	Short:         "List built-in alphabets",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range glyphcast.AlphabetNames() {
			alphabet, err := glyphcast.LoadAlphabet(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %3d chars  %s\n", name, alphabet.Len(), preview(alphabet.String(), 48))
		}
		return nil
	},
}

func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func init() {
	rootCmd.AddCommand(fontsCmd)
	rootCmd.AddCommand(alphabetsCmd)
}
