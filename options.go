package svgtint

// TintOption adjusts a Style after color normalization.
type TintOption func(*Style)

// WithFill enables or disables the fill override.
func WithFill(enabled bool) TintOption {
	return func(st *Style) {
		st.Fill = enabled
	}
}

// WithStroke enables or disables the stroke override.
func WithStroke(enabled bool) TintOption {
	return func(st *Style) {
		st.Stroke = enabled
	}
}

func applyOptions(st *Style, opts []TintOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(st)
		}
	}
}
