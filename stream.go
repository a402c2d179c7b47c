package svgtint

import (
	"io"
)

const defaultChunkSize = 4096

// Writer tints everything written to it before passing it on. Each call to
// Write is treated as one chunk of the stream.
type Writer struct {
	w   io.Writer
	sc  *Scanner
	buf []byte
}

// NewWriter returns a Writer that writes the tinted stream to w.
func NewWriter(w io.Writer, sc *Scanner) *Writer {
	return &Writer{w: w, sc: sc}
}

// Write tints p and writes the result. It returns len(p) on success since
// the injected style block is not part of the caller's data.
func (w *Writer) Write(p []byte) (int, error) {
	if w.sc.Injected() {
		return w.w.Write(p)
	}
	out := w.sc.AppendTransform(w.buf[:0], p)
	if _, err := w.w.Write(out); err != nil {
		return 0, err
	}
	if cap(out) <= 2*defaultChunkSize {
		w.buf = out[:0]
	}
	return len(p), nil
}

// Injected reports whether the style block has been written.
func (w *Writer) Injected() bool {
	return w.sc.Injected()
}

// Reader tints the stream read from an underlying reader. Each Read from the
// underlying reader is treated as one chunk of the stream.
type Reader struct {
	r   io.Reader
	sc  *Scanner
	in  []byte
	out []byte
	off int
	err error
}

// NewReader returns a Reader tinting r.
func NewReader(r io.Reader, sc *Scanner) *Reader {
	return &Reader{r: r, sc: sc}
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for r.off >= len(r.out) {
		if r.err != nil {
			return 0, r.err
		}
		if r.sc.Injected() {
			return r.r.Read(p)
		}
		if r.in == nil {
			r.in = make([]byte, defaultChunkSize)
		}
		n, err := r.r.Read(r.in)
		r.out = r.sc.AppendTransform(r.out[:0], r.in[:n])
		r.off = 0
		r.err = err
	}
	n := copy(p, r.out[r.off:])
	r.off += n
	return n, nil
}

// Injected reports whether the style block has been produced.
func (r *Reader) Injected() bool {
	return r.sc.Injected()
}
