package cache

// ScopedKeyer wraps a Keyer with a prefix so that several producers can
// share one backend without colliding. The CLI and the server scope keys by
// program version, which invalidates entries written by older renderers.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "mandel:v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed key for a rendered buffer.
func (k *ScopedKeyer) RenderKey(opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(opts)
}
