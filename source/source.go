// Package source provides access to design token computation and full
// stylesheet extraction, both implemented by the JavaScript ecosystem.
package source

import (
	"context"

	"antcss/tokens"
)

// StyleOptions select theming configuration for stylesheet extraction.
type StyleOptions struct {
	CacheKey string
	Hashed   bool
}

// TokenSource computes flat design token set for theme algorithms applied to
// default seed.
type TokenSource interface {
	Tokens(ctx context.Context, algorithms []string) (*tokens.Set, error)
}

// StyleSource extracts full stylesheet of every component and base reset.
type StyleSource interface {
	Stylesheet(ctx context.Context, opts StyleOptions) (string, error)
	Reset(ctx context.Context) (string, error)
}

// ComponentLister is optionally implemented by sources which can enumerate
// components.
type ComponentLister interface {
	Components(ctx context.Context) ([]string, error)
}
