package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments or format
// versions can share one Redis instance without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "graphkit:v1:")
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

// ConvertKey generates a prefixed conversion key.
func (k *ScopedKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(inputHash, opts)
}

// InfoKey generates a prefixed summary key.
func (k *ScopedKeyer) InfoKey(inputHash, format string) string {
	return k.prefix + k.inner.InfoKey(inputHash, format)
}
