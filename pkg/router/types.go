package router

import (
	"context"
	"io"
	"net/url"
)

// View is a mounted page of the application.
type View interface {
	// Title is the human readable page title.
	Title() string

	// Render writes the view to w.
	Render(w io.Writer) error
}

// Loader produces the view for a route on demand.
// Loaders must be repeatable and free of side effects: the router may call
// a loader again after it failed.
type Loader func(ctx context.Context) (View, error)

// Descriptor declares a single route.
type Descriptor struct {
	// Path is the chi-style path pattern (e.g. "/card" or "/card/{id}").
	Path string

	// Name is the unique symbolic identifier of the route.
	Name string

	// Component loads the view for this route.
	Component Loader

	// Meta carries arbitrary static data attached to the route.
	Meta map[string]string
}

// Location is a navigation target. When Name is set the location is
// resolved by name and Params fill the pattern placeholders; otherwise
// Path is matched against the table.
type Location struct {
	Name   string
	Path   string
	Params map[string]string
	Query  url.Values
	Hash   string
}

// Route is a location resolved against the route table.
type Route struct {
	// Name is the matched route name.
	Name string

	// Pattern is the matched descriptor path pattern.
	Pattern string

	// Path is the canonical, app-relative path.
	Path string

	// FullPath is Path followed by the encoded query and the hash.
	FullPath string

	// Href is FullPath rendered through the history strategy.
	Href string

	// Params are the decoded pattern parameters.
	Params map[string]string

	// Query holds the parsed query string.
	Query url.Values

	// Hash is the fragment without the leading "#".
	Hash string

	// Meta is the descriptor meta data.
	Meta map[string]string

	rec *record
}

// Navigation is the state handed to guards.
type Navigation struct {
	// To is the route being navigated to.
	To *Route

	// From is the current route, nil during the initial navigation.
	From *Route

	// Replace reports whether the navigation replaces the current entry.
	Replace bool

	ctx context.Context
}

// Context returns the context of the navigation.
func (n *Navigation) Context() context.Context {
	if n.ctx == nil {
		return context.Background()
	}
	return n.ctx
}
