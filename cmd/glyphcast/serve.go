package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"glyphcast/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the converter over HTTP",
	Long: `serve starts an HTTP API that fetches a remote image and returns its
glyph rendering:

    GET /render?src=https://host/image.png&width=480&format=ansi

Formats are ansi, text and json (the interchange format). Fonts and
alphabets are limited to the built-in names.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := mergeConfig()
		if err != nil {
			return err
		}
		srv := server.New(server.Options{
			Addr:    serveAddr,
			Threads: cfg.Threads,
			Logger:  log.New(os.Stderr, "glyphcast ", log.LstdFlags),
		})
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
