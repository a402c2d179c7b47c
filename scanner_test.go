package svgtint

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const redBlock = "<style>*{fill:#f00!important;stroke:#f00!important;}</style>"

func newRedScanner(t *testing.T) *Scanner {
	t.Helper()
	sc, err := NewScanner("#f00")
	if err != nil {
		t.Fatalf("new scanner: %v", err)
	}
	return sc
}

func transformChunks(sc *Scanner, chunks []string) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, string(sc.Transform([]byte(c))))
	}
	return out
}

func TestScannerSplitOpeningTag(t *testing.T) {
	sc := newRedScanner(t)
	chunks := []string{`<?xml version="1.0"?>`, `<svg foo="bar`, `"></svg>`, `body`}
	want := []string{`<?xml version="1.0"?>`, `<svg foo="bar`, `">` + redBlock + `</svg>`, `body`}
	got := transformChunks(sc, chunks)
	if len(got) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d\nwant: %q\n got: %q", i, want[i], got[i])
		}
	}
	if !sc.Injected() {
		t.Fatalf("expected scanner to report injection")
	}
}

func TestScannerInjectsAfterOpeningTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		tag  string
	}{
		{name: "bare", tag: `<svg>`},
		{name: "uppercase", tag: `<SVG>`},
		{name: "mixed case with attribute", tag: `<Svg width="1">`},
		{name: "attributes", tag: `<svg foo="bar" bar='baz'>`},
		{name: "right arrows in attributes", tag: `<svg foo="<bar>" bar='<baz>'>`},
		{name: "quotes in attributes", tag: `<svg foo="'" bar='""'>`},
		{name: "newline after name", tag: "<svg\n  xmlns=\"http://www.w3.org/2000/svg\">"},
		{name: "tab after name", tag: "<svg\tid=\"a\">"},
		{name: "self closing", tag: `<svg/>`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sc := newRedScanner(t)
			chunks := []string{`<?xml version="1.0" encoding="UTF-8"?>`, tc.tag, `...`}
			got := transformChunks(sc, chunks)
			want := []string{chunks[0], tc.tag + redBlock, chunks[2]}
			if tc.name == "self closing" {
				// "svg/" is not the name "svg".
				want[1] = tc.tag
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("chunk %d\nwant: %q\n got: %q", i, want[i], got[i])
				}
			}
		})
	}
}

func TestScannerInjectsOnlyOnce(t *testing.T) {
	sc := newRedScanner(t)
	got := string(sc.Transform([]byte(`<svg><svg><SVG>`)))
	want := `<svg>` + redBlock + `<svg><SVG>`
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
	if out := string(sc.Transform([]byte(`<svg>`))); out != `<svg>` {
		t.Fatalf("expected later chunk to pass through, got %q", out)
	}
	if n := strings.Count(got, "<style>"); n != 1 {
		t.Fatalf("expected one style block, got %d", n)
	}
}

func TestScannerSkipsTagsOtherThanSVG(t *testing.T) {
	sc := newRedScanner(t)
	src := `<!-- <svg> --><img alt="<svg>"><svgx><sv><svg id="x">tail`
	got := string(sc.Transform([]byte(src)))
	want := `<!-- <svg> --><img alt="<svg>"><svgx><sv><svg id="x">` + redBlock + `tail`
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestScannerPassesThroughWithoutSVG(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"plain text > with < brackets",
		`<?xml version="1.0"?><html><body>svg</body></html>`,
		`<svgfoo></svgfoo>`,
		`<svg a="unterminated>`,
		`<svg a=it's>`,
		`<svg`,
		`< svg>`,
	}
	for _, src := range inputs {
		sc := newRedScanner(t)
		var out bytes.Buffer
		for i := 0; i < len(src); i++ {
			out.Write(sc.Transform([]byte{src[i]}))
		}
		if out.String() != src {
			t.Fatalf("expected pass-through for %q, got %q", src, out.String())
		}
		if sc.Injected() {
			t.Fatalf("unexpected injection for %q", src)
		}
	}
}

func TestScannerChunkBoundaryInvariance(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.svg")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no svg files under testdata")
	}
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			whole := string(newRedScanner(t).Transform(src))

			sc := newRedScanner(t)
			var perByte []byte
			for i := range src {
				perByte = sc.AppendTransform(perByte, src[i:i+1])
			}
			if string(perByte) != whole {
				t.Fatalf("per-byte output differs\nwant: %q\n got: %q", whole, perByte)
			}

			for split := 0; split <= len(src); split++ {
				sc := newRedScanner(t)
				got := string(sc.Transform(src[:split])) + string(sc.Transform(src[split:]))
				if got != whole {
					t.Fatalf("split at %d differs\nwant: %q\n got: %q", split, whole, got)
				}
			}
		})
	}
}

func TestScannerTransformStringMatchesBytes(t *testing.T) {
	chunks := []string{`<s`, `vg a='>'`, `>`, `<g/>`}
	byteScanner := newRedScanner(t)
	strScanner := newRedScanner(t)
	for _, c := range chunks {
		b := string(byteScanner.Transform([]byte(c)))
		s := strScanner.TransformString(c)
		if b != s {
			t.Fatalf("chunk %q: bytes %q, string %q", c, b, s)
		}
	}
}

func TestScannerReset(t *testing.T) {
	sc := newRedScanner(t)
	_ = sc.Transform([]byte(`<svg a="`))
	sc.Reset()
	if sc.Injected() {
		t.Fatalf("expected fresh state after reset")
	}
	got := string(sc.Transform([]byte(`<svg>`)))
	if got != `<svg>`+redBlock {
		t.Fatalf("expected injection after reset, got %q", got)
	}
	sc.Reset()
	got = string(sc.Transform([]byte(`<svg>`)))
	if got != `<svg>`+redBlock {
		t.Fatalf("expected second stream to be tinted, got %q", got)
	}
}

func TestScannerLongTagNamesAreNotSVG(t *testing.T) {
	sc := newRedScanner(t)
	src := `<svgsvgsvgsvgsvg><svg>`
	got := string(sc.Transform([]byte(src)))
	if got != src+redBlock {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestScannerAppendTransformKeepsPrefix(t *testing.T) {
	sc := newRedScanner(t)
	dst := []byte("prefix:")
	dst = sc.AppendTransform(dst, []byte("<svg>x"))
	if string(dst) != "prefix:<svg>"+redBlock+"x" {
		t.Fatalf("unexpected output %q", dst)
	}
	dst = sc.AppendTransform(dst, []byte("y"))
	if !strings.HasSuffix(string(dst), "xy") {
		t.Fatalf("expected pass-through append, got %q", dst)
	}
}
