// Package server exposes the converter as a small HTTP API: fetch a
// remote image, convert it, and return text, ANSI, or interchange JSON.
package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"slices"
	"strconv"
	"time"

	"glyphcast"
	"glyphcast/imageutil"
)

// Width requests above this are refused to bound per-request work.
const maxWidth = 4096

// Options configure a Server.
type Options struct {
	// Addr is the listen address. Defaults to ":8080".
	Addr string

	// Threads is the per-frame worker count used for conversions.
	// Values below one are treated as one.
	Threads int

	// Logger receives one line per request. Nil disables logging.
	Logger *log.Logger
}

// Server converts remote images to glyph grids over HTTP. Fonts and
// alphabets are restricted to the built-in names, so requests cannot
// reach the server's filesystem.
type Server struct {
	addr    string
	threads int
	logger  *log.Logger
}

// New creates a Server from opts.
func New(opts Options) *Server {
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	return &Server{addr: addr, threads: threads, logger: opts.Logger}
}

// Handler returns the route table: GET / names the service and GET
// /render converts.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /render", s.handleRender)
	return mux
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logf("listening on %s", s.addr)
	return srv.ListenAndServe()
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "glyphcast image-to-glyph api")
	fmt.Fprintln(w, "GET /render?src=https://host/image.png&width=480&metric=grad&format=ansi")
}

// handleRender converts the image at src. Animated sources return all
// frames as interchange JSON; the text and ansi formats show the first
// frame only.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	src := q.Get("src")
	if src == "" {
		http.Error(w, "missing src parameter", http.StatusBadRequest)
		return
	}

	format := valueOr(q.Get("format"), "ansi")
	if format != "ansi" && format != "text" && format != "json" {
		http.Error(w, `format must be "ansi", "text" or "json"`, http.StatusBadRequest)
		return
	}

	mode, err := glyphcast.ParseColorMode(valueOr(q.Get("color"), "true"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	width := glyphcast.DefaultWidth
	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxWidth {
			http.Error(w, fmt.Sprintf("width must be an integer in [1, %d]", maxWidth), http.StatusBadRequest)
			return
		}
		width = n
	}

	offset := 0.0
	if v := q.Get("offset"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 255 {
			http.Error(w, "offset must be a number in [0, 255]", http.StatusBadRequest)
			return
		}
		offset = f
	}

	edges := true
	if v := q.Get("edges"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "edges must be a boolean", http.StatusBadRequest)
			return
		}
		edges = b
	}

	font := valueOr(q.Get("font"), glyphcast.DefaultFont)
	if !slices.Contains(glyphcast.FontNames(), font) {
		http.Error(w, fmt.Sprintf("unknown font %q (built-ins: %v)", font, glyphcast.FontNames()), http.StatusBadRequest)
		return
	}

	alphabet := valueOr(q.Get("alphabet"), glyphcast.DefaultAlphabet)
	if !slices.Contains(glyphcast.AlphabetNames(), alphabet) {
		http.Error(w, fmt.Sprintf("unknown alphabet %q (built-ins: %v)", alphabet, glyphcast.AlphabetNames()), http.StatusBadRequest)
		return
	}

	conv, err := glyphcast.NewConverter(
		glyphcast.WithFont(font),
		glyphcast.WithAlphabet(alphabet),
		glyphcast.WithMetric(valueOr(q.Get("metric"), glyphcast.DefaultMetric)),
		glyphcast.WithWidth(width),
		glyphcast.WithThreads(s.threads),
		glyphcast.WithBrightnessOffset(offset),
		glyphcast.WithEdgeDetection(edges),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	seq, err := imageutil.FetchSequence(src)
	if err != nil {
		s.logf("render src=%s fetch failed: %v", src, err)
		http.Error(w, fmt.Sprintf("fetching source: %v", err), http.StatusBadGateway)
		return
	}

	anim, err := conv.ConvertSequence(seq)
	if err != nil {
		s.logf("render src=%s convert failed: %v", src, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		if err := glyphcast.EncodeAnimation(w, anim, mode != glyphcast.ColorNone); err != nil {
			s.logf("render src=%s encode failed: %v", src, err)
			return
		}
	case "ansi":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, glyphcast.RenderANSI(anim.Frames[0], mode))
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, anim.Frames[0].String())
	}

	s.logf("render src=%s %dx%d frames=%d format=%s in %s",
		src, anim.Cols, anim.Rows, len(anim.Frames), format,
		time.Since(start).Round(time.Millisecond))
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
