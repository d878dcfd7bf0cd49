package theme

import "context"

type contextKey struct{}

// WithTheme returns a copy of ctx carrying r as the active theme.
func WithTheme(ctx context.Context, r *Resolved) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the theme stored by WithTheme, if any.
func FromContext(ctx context.Context) (*Resolved, bool) {
	r, ok := ctx.Value(contextKey{}).(*Resolved)
	return r, ok && r != nil
}
