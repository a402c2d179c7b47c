package svgtint

import (
	"fmt"
	"io"
	"sync"
)

var scannerPool = sync.Pool{
	New: func() any {
		return &Scanner{}
	},
}

var chunkPool = sync.Pool{
	New: func() any {
		b := make([]byte, defaultChunkSize)
		return &b
	},
}

// TintRequest configures Tint.
type TintRequest struct {
	Reader io.Reader
	Writer io.Writer
	// Style is used as given when Color is set, otherwise Options is parsed.
	Style   Style
	Options Options
	// ChunkSize caps each read from Reader. Zero uses 4096.
	ChunkSize int
}

// TintResult reports what Tint did.
type TintResult struct {
	BytesRead    int64
	BytesWritten int64
	Injected     bool
}

// Tint copies Reader to Writer, injecting the style block after the first
// opening svg tag.
func Tint(req TintRequest) (TintResult, error) {
	var res TintResult
	if req.Reader == nil {
		return res, fmt.Errorf("tint: reader is nil")
	}
	if req.Writer == nil {
		return res, fmt.Errorf("tint: writer is nil")
	}
	if req.ChunkSize < 0 {
		return res, fmt.Errorf("tint: chunk size must be >= 0")
	}
	st := req.Style
	if st.Color == "" {
		var err error
		st, err = ParseStyle(req.Options)
		if err != nil {
			return res, fmt.Errorf("tint: %w", err)
		}
	} else if !isHexColor(st.Color) {
		return res, fmt.Errorf("tint: %w", &InvalidColorError{Color: st.Color})
	}
	sc := scannerPool.Get().(*Scanner)
	sc.style = st
	sc.Reset()
	bufp := chunkPool.Get().(*[]byte)
	buf := *bufp
	if req.ChunkSize > 0 && req.ChunkSize < len(buf) {
		buf = buf[:req.ChunkSize]
	}
	var out []byte
	var retErr error
	for {
		n, err := req.Reader.Read(buf)
		if n > 0 {
			res.BytesRead += int64(n)
			chunk := buf[:n]
			if !sc.Injected() {
				out = sc.AppendTransform(out[:0], chunk)
				chunk = out
			}
			w, werr := req.Writer.Write(chunk)
			res.BytesWritten += int64(w)
			if werr != nil {
				retErr = fmt.Errorf("tint: write: %w", werr)
				break
			}
		}
		if err != nil {
			if err != io.EOF {
				retErr = fmt.Errorf("tint: read: %w", err)
			}
			break
		}
	}
	res.Injected = sc.Injected()
	sc.Reset()
	scannerPool.Put(sc)
	chunkPool.Put(bufp)
	return res, retErr
}

// TintBytes returns src tinted with o.
func TintBytes(src []byte, o Options) ([]byte, error) {
	st, err := ParseStyle(o)
	if err != nil {
		return nil, err
	}
	sc := NewScannerWithStyle(st)
	return sc.AppendTransform(make([]byte, 0, len(src)+styleBlockMaxLen(st)), src), nil
}

// TintString returns src tinted with color.
func TintString(src string, color string, opts ...TintOption) (string, error) {
	sc, err := NewScanner(color, opts...)
	if err != nil {
		return "", err
	}
	return sc.TransformString(src), nil
}

// TintReader returns a reader yielding r tinted with o.
func TintReader(r io.Reader, o Options) (io.Reader, error) {
	if r == nil {
		return nil, fmt.Errorf("tint: reader is nil")
	}
	sc, err := NewScannerFromOptions(o)
	if err != nil {
		return nil, err
	}
	return NewReader(r, sc), nil
}
