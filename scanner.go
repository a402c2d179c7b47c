package svgtint

// maxTagName bounds the bytes kept for the tag name being read. Only "svg"
// matters, so longer names are counted but not stored.
const maxTagName = 8

// scanState tracks the tag scan across chunk boundaries.
type scanState struct {
	injected        bool
	inTag           bool
	tagNameResolved bool
	inAttr          bool
	attrQuote       byte
	tagName         [maxTagName]byte
	tagNameLen      int
}

func (st *scanState) reset() {
	*st = scanState{}
}

func (st *scanState) appendTagName(b byte) {
	if st.tagNameLen < maxTagName {
		st.tagName[st.tagNameLen] = b
	}
	st.tagNameLen++
}

func (st *scanState) isSVG() bool {
	if st.tagNameLen != 3 {
		return false
	}
	return lowerASCII(st.tagName[0]) == 's' &&
		lowerASCII(st.tagName[1]) == 'v' &&
		lowerASCII(st.tagName[2]) == 'g'
}

// step advances the state by one byte and reports whether b closed the
// first svg tag.
func (st *scanState) step(b byte) bool {
	if st.inTag && !st.tagNameResolved {
		if b == '>' || isSpace(b) {
			st.tagNameResolved = true
		} else {
			st.appendTagName(b)
		}
	}
	if b == '<' && !st.inTag {
		st.inTag = true
		st.tagNameResolved = false
		st.tagNameLen = 0
	}
	if (b == '"' || b == '\'') && st.inTag {
		if st.inAttr {
			if b == st.attrQuote {
				st.inAttr = false
				st.attrQuote = 0
			}
		} else {
			st.attrQuote = b
			st.inAttr = true
		}
	}
	if b == '>' && st.inTag && !st.inAttr {
		st.inTag = false
		if st.isSVG() {
			st.injected = true
			return true
		}
	}
	return false
}

// Scanner injects a tint style block after the first opening svg tag of a
// stream delivered in chunks. A Scanner holds the state of one stream and is
// not safe for concurrent use.
type Scanner struct {
	style Style
	state scanState
}

// NewScanner returns a Scanner tinting with color, a 3- or 6-digit hex code
// with or without the leading '#'.
func NewScanner(color string, opts ...TintOption) (*Scanner, error) {
	return NewScannerFromOptions(Options{Color: color}, opts...)
}

// NewScannerFromOptions returns a Scanner for the configuration record o.
// Options are applied after o.
func NewScannerFromOptions(o Options, opts ...TintOption) (*Scanner, error) {
	st, err := ParseStyle(o)
	if err != nil {
		return nil, err
	}
	applyOptions(&st, opts)
	return &Scanner{style: st}, nil
}

// NewScannerWithStyle returns a Scanner for an already validated Style.
func NewScannerWithStyle(st Style) *Scanner {
	return &Scanner{style: st}
}

// Style returns the tint configuration.
func (s *Scanner) Style() Style {
	return s.style
}

// StyleBlock returns the style element the Scanner injects.
func (s *Scanner) StyleBlock() string {
	return s.style.Block()
}

// Injected reports whether the style block has been emitted.
func (s *Scanner) Injected() bool {
	return s.state.injected
}

// Reset clears the scan state so the Scanner can serve a new stream.
func (s *Scanner) Reset() {
	s.state.reset()
}

// Transform returns the output for the next chunk of the stream. When the
// chunk is passed through unchanged the result is chunk itself.
func (s *Scanner) Transform(chunk []byte) []byte {
	if s.state.injected {
		return chunk
	}
	at := s.scan(chunk)
	if at < 0 {
		return chunk
	}
	out := make([]byte, 0, len(chunk)+styleBlockMaxLen(s.style))
	return s.splice(out, chunk, at)
}

// AppendTransform appends the output for the next chunk to dst.
func (s *Scanner) AppendTransform(dst, chunk []byte) []byte {
	if s.state.injected {
		return append(dst, chunk...)
	}
	at := s.scan(chunk)
	if at < 0 {
		return append(dst, chunk...)
	}
	return s.splice(dst, chunk, at)
}

// TransformString is Transform for string chunks.
func (s *Scanner) TransformString(chunk string) string {
	if s.state.injected {
		return chunk
	}
	at := s.scanString(chunk)
	if at < 0 {
		return chunk
	}
	out := make([]byte, 0, len(chunk)+styleBlockMaxLen(s.style))
	out = append(out, chunk[:at]...)
	out = s.style.AppendBlock(out)
	out = append(out, chunk[at:]...)
	return string(out)
}

// scan feeds chunk to the state machine and returns the offset just past
// the '>' that closed the svg tag, or -1.
func (s *Scanner) scan(chunk []byte) int {
	for i, b := range chunk {
		if s.state.step(b) {
			return i + 1
		}
	}
	return -1
}

func (s *Scanner) scanString(chunk string) int {
	for i := 0; i < len(chunk); i++ {
		if s.state.step(chunk[i]) {
			return i + 1
		}
	}
	return -1
}

func (s *Scanner) splice(dst, chunk []byte, at int) []byte {
	dst = append(dst, chunk[:at]...)
	dst = s.style.AppendBlock(dst)
	return append(dst, chunk[at:]...)
}

func styleBlockMaxLen(st Style) int {
	return len("<style>*{fill:!important;stroke:!important;}</style>") + 2*len(st.Color)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
