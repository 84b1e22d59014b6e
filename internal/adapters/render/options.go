package render

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithScale sets the number of pixels per pitch unit.
func WithScale(pxPerUnit float64) Option {
	return func(r *Renderer) {
		if pxPerUnit > 0 {
			r.scale = pxPerUnit
		}
	}
}

// WithPadding sets the blank border around the pitch in pixels.
func WithPadding(px int) Option {
	return func(r *Renderer) {
		if px >= 0 {
			r.pad = px
		}
	}
}

// WithFont sets the font family used for labels.
func WithFont(family string) Option {
	return func(r *Renderer) {
		if family != "" {
			r.font = family
		}
	}
}
