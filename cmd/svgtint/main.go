package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
	"golang.org/x/net/html/charset"
	"golang.org/x/term"
	"pkt.systems/svgtint"
	"pkt.systems/version"
)

const (
	defaultUsageWidth = 80
	svgMediaType      = "image/svg+xml"
)

const usageText = "Tints an SVG by injecting a <style> block right after its opening <svg> tag, " +
	"forcing fill and stroke to one color. The input is a file path, a file:// or http(s):// URL, " +
	"or stdin when omitted. Output is streamed as the input arrives; only --minify buffers the document."

func init() {
	version.SetDefaultModule("pkt.systems/svgtint")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cliConfig struct {
	color      string
	noFill     bool
	noStroke   bool
	configPath string
	outPath    string
	encoding   string
	minify     bool
	chunkSize  int
	chunkDelay time.Duration
	verbose    bool
	version    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg cliConfig
	flags := pflag.NewFlagSet("svgtint", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&cfg.color, "color", "c", svgtint.DefaultColor, "Tint color: hex code or any CSS color")
	flags.BoolVar(&cfg.noFill, "no-fill", false, "Do not override fill")
	flags.BoolVar(&cfg.noStroke, "no-stroke", false, "Do not override stroke")
	flags.StringVar(&cfg.configPath, "config", "", "Options file (.yaml, .yml or .json)")
	flags.StringVarP(&cfg.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&cfg.encoding, "encoding", "e", "", "Decode input from this charset to UTF-8 first")
	flags.BoolVarP(&cfg.minify, "minify", "m", false, "Minify the tinted SVG (buffers the document)")
	flags.IntVar(&cfg.chunkSize, "chunk", 0, "Max bytes per read (0 reads 4096)")
	flags.DurationVar(&cfg.chunkDelay, "chunk-delay", 0, "Delay after each read")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "Report what was done on stderr")
	flags.BoolVar(&cfg.version, "version", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		width := terminalWidth(stderr, defaultUsageWidth)
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: svgtint [flags] [input]\n\n")
		fmt.Fprintln(stderr, wordwrap.String(usageText, width))
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if cfg.version {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	rest := flags.Args()
	if len(rest) > 1 {
		fmt.Fprintf(stderr, "expected at most one input, got %d\n", len(rest))
		return 2
	}
	if len(rest) == 0 && isTerminal(stdin) {
		flags.Usage()
		return 2
	}
	if cfg.chunkSize < 0 {
		fmt.Fprintf(stderr, "invalid --chunk %d: must be >= 0\n", cfg.chunkSize)
		return 2
	}

	opts, err := resolveOptions(cfg, flags.Changed("color"))
	if err != nil {
		fmt.Fprintf(stderr, "options: %v\n", err)
		return 2
	}
	style, err := svgtint.ParseStyle(opts)
	if err != nil {
		fmt.Fprintf(stderr, "options: %v\n", err)
		return 2
	}

	reader, closer, err := openInput(rest, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	if cfg.encoding != "" {
		decoded, err := charset.NewReaderLabel(cfg.encoding, reader)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --encoding %q: %v\n", cfg.encoding, err)
			return 2
		}
		reader = decoded
	}
	if cfg.chunkSize > 0 || cfg.chunkDelay > 0 {
		reader = &slowReader{r: reader, delay: cfg.chunkDelay, maxChunk: cfg.chunkSize}
	}

	writer, closeOut, err := resolveOutput(cfg.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	var mp *minifyPipe
	if cfg.minify {
		mp = newMinifyPipe(writer)
		writer = mp
	}
	res, err := svgtint.Tint(svgtint.TintRequest{
		Reader:    reader,
		Writer:    writer,
		Style:     style,
		ChunkSize: cfg.chunkSize,
	})
	if mp != nil {
		if cerr := mp.close(err); err == nil && cerr != nil {
			err = fmt.Errorf("minify: %w", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "tint: %v\n", err)
		return 1
	}
	if cfg.verbose {
		fmt.Fprintf(stderr, "svgtint: color %s, read %d bytes, wrote %d bytes, style injected: %t\n",
			style.Color, res.BytesRead, res.BytesWritten, res.Injected)
	}
	return 0
}

func resolveOptions(cfg cliConfig, colorSet bool) (svgtint.Options, error) {
	opts := svgtint.DefaultOptions()
	if cfg.configPath != "" {
		loaded, err := svgtint.LoadOptions(normalizePath(cfg.configPath))
		if err != nil {
			return svgtint.Options{}, err
		}
		opts = loaded
	}
	if colorSet || cfg.configPath == "" {
		color, err := svgtint.ResolveColor(cfg.color)
		if err != nil {
			return svgtint.Options{}, err
		}
		opts.Color = color
	}
	if cfg.noFill {
		off := false
		opts.Fill = &off
	}
	if cfg.noStroke {
		off := false
		opts.Stroke = &off
	}
	return opts, nil
}

func openInput(args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	raw := strings.TrimSpace(args[0])
	if raw == "" {
		return nil, nil, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return stdin, nil, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return openURL(raw)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return openFile(path)
		}
	}
	return openFile(raw)
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" || path == "-" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

// minifyPipe feeds written bytes to the SVG minifier running on its own
// goroutine.
type minifyPipe struct {
	pw   *io.PipeWriter
	done chan error
}

func newMinifyPipe(w io.Writer) *minifyPipe {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc(svgMediaType, svg.Minify)
	pr, pw := io.Pipe()
	p := &minifyPipe{pw: pw, done: make(chan error, 1)}
	go func() {
		err := m.Minify(svgMediaType, w, pr)
		_ = pr.CloseWithError(err)
		p.done <- err
	}()
	return p
}

func (p *minifyPipe) Write(b []byte) (int, error) {
	return p.pw.Write(b)
}

func (p *minifyPipe) close(cause error) error {
	if cause != nil {
		_ = p.pw.CloseWithError(cause)
	} else {
		_ = p.pw.Close()
	}
	return <-p.done
}

type slowReader struct {
	r        io.Reader
	delay    time.Duration
	maxChunk int
}

func (s *slowReader) Read(p []byte) (int, error) {
	if s.maxChunk > 0 && len(p) > s.maxChunk {
		p = p[:s.maxChunk]
	}
	n, err := s.r.Read(p)
	if n > 0 && s.delay > 0 {
		time.Sleep(s.delay)
	}
	return n, err
}
