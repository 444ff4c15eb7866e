// Package routes declares the showcase route table and the process-wide
// router built from it.
package routes

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/showcase/internal/config"
	"github.com/vango-dev/showcase/internal/views"
	"github.com/vango-dev/showcase/pkg/router"
)

// Route names.
const (
	Home     = "home"
	Button   = "button"
	Checkbox = "checkbox"
	Card     = "card"
)

// Table returns the showcase route table in registration order.
func Table() []router.Descriptor {
	return []router.Descriptor{
		{Path: "/", Name: Home, Component: views.Home, Meta: map[string]string{"title": "Components"}},
		{Path: "/button", Name: Button, Component: views.Button, Meta: map[string]string{"title": "Button"}},
		{Path: "/checkbox", Name: Checkbox, Component: views.Checkbox, Meta: map[string]string{"title": "Checkbox"}},
		{Path: "/card", Name: Card, Component: views.Card, Meta: map[string]string{"title": "Card"}},
	}
}

// Build constructs a router for the table using the history strategy and
// base URL from cfg.
func Build(cfg *config.Config, opts ...router.Option) (*router.Router, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := router.New(cfg.NewHistory(), Table(), opts...)
	if err != nil {
		return nil, fmt.Errorf("build showcase routes: %w", err)
	}
	return r, nil
}

// WrapLoaders returns a copy of table with every loader passed through wrap.
func WrapLoaders(table []router.Descriptor, wrap func(name string, load router.Loader) router.Loader) []router.Descriptor {
	out := make([]router.Descriptor, len(table))
	for i, d := range table {
		d.Component = wrap(d.Name, d.Component)
		out[i] = d
	}
	return out
}

var (
	defaultOnce   sync.Once
	defaultRouter *router.Router
)

// Default returns the process-wide router, configured from the
// environment on first use. It panics if the router cannot be built.
func Default() *router.Router {
	defaultOnce.Do(func() {
		cfg, err := config.FromEnv()
		if err != nil {
			panic(fmt.Sprintf("routes: %v", err))
		}
		r, err := Build(cfg)
		if err != nil {
			panic(fmt.Sprintf("routes: %v", err))
		}
		slog.Default().With("component", "routes").Debug("router ready",
			"base", r.History().Base(), "history", cfg.History, "routes", len(r.Routes()))
		defaultRouter = r
	})
	return defaultRouter
}
