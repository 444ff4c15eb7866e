package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/showcase/pkg/routepath"
)

// maxRedirects bounds guard redirects within one navigation.
const maxRedirects = 10

// record is a registered descriptor plus its cached view.
type record struct {
	desc   Descriptor
	params []string

	mu   sync.Mutex
	view View
}

// Router resolves locations against the route table and tracks the
// current route.
type Router struct {
	history History
	mux     *chi.Mux
	logger  *slog.Logger

	routes    []Descriptor
	byName    map[string]*record
	byPattern map[string]*record

	mu      sync.Mutex
	guards  []Guard
	after   []AfterHook
	current *Route
	stop    func()
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGuards installs BeforeEach guards at construction.
func WithGuards(guards ...Guard) Option {
	return func(r *Router) {
		r.guards = append(r.guards, guards...)
	}
}

// WithAfterHooks installs AfterEach hooks at construction.
func WithAfterHooks(hooks ...AfterHook) Option {
	return func(r *Router) {
		r.after = append(r.after, hooks...)
	}
}

// New builds a router from a history strategy and an ordered route table.
func New(history History, routes []Descriptor, opts ...Option) (*Router, error) {
	if history == nil {
		return nil, ErrMissingHistory
	}

	r := &Router{
		history:   history,
		mux:       chi.NewRouter(),
		logger:    slog.Default().With("component", "router"),
		routes:    make([]Descriptor, 0, len(routes)),
		byName:    make(map[string]*record, len(routes)),
		byPattern: make(map[string]*record, len(routes)),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, d := range routes {
		if err := r.add(d); err != nil {
			return nil, err
		}
	}

	r.stop = history.Listen(r.onHistoryMove)
	r.logger.Debug("router ready", "routes", len(r.routes), "base", history.Base())
	return r, nil
}

// add registers one descriptor with the matcher.
func (r *Router) add(d Descriptor) (err error) {
	if d.Name == "" {
		return fmt.Errorf("%w: route %q has no name", ErrInvalidPattern, d.Path)
	}
	if !strings.HasPrefix(d.Path, "/") {
		return fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPattern, d.Path)
	}
	if d.Component == nil {
		return fmt.Errorf("%w: %q", ErrMissingLoader, d.Name)
	}
	if _, dup := r.byName[d.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
	}
	if _, dup := r.byPattern[d.Path]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicatePath, d.Path)
	}

	params, err := patternParams(d.Path)
	if err != nil {
		return err
	}

	// chi panics on patterns it cannot parse.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidPattern, p)
		}
	}()
	r.mux.Method(http.MethodGet, d.Path, http.NotFoundHandler())

	d.Meta = maps.Clone(d.Meta)
	rec := &record{desc: d, params: params}
	r.routes = append(r.routes, d)
	r.byName[d.Name] = rec
	r.byPattern[d.Path] = rec
	return nil
}

// Routes returns the route table in declaration order.
func (r *Router) Routes() []Descriptor {
	out := make([]Descriptor, len(r.routes))
	for i, d := range r.routes {
		d.Meta = maps.Clone(d.Meta)
		out[i] = d
	}
	return out
}

// HasRoute reports whether a route with the given name exists.
func (r *Router) HasRoute(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// History returns the history strategy.
func (r *Router) History() History {
	return r.history
}

// Current returns the current route, or nil before Start.
func (r *Router) Current() *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// BeforeEach appends guards run before every Push or Replace.
func (r *Router) BeforeEach(guards ...Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, guards...)
}

// AfterEach appends hooks run after every navigation.
func (r *Router) AfterEach(hooks ...AfterHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.after = append(r.after, hooks...)
}

// Close detaches the router from its history.
func (r *Router) Close() {
	if r.stop != nil {
		r.stop()
	}
}

// Resolve matches an app-relative location ("/card?size=lg") against the
// route table.
func (r *Router) Resolve(location string) (*Route, error) {
	return r.ResolveLocation(Location{Path: location})
}

// ResolveHref resolves a link target produced by the history strategy.
func (r *Router) ResolveHref(href string) (*Route, error) {
	loc, ok := r.history.Parse(href)
	if !ok {
		return nil, fmt.Errorf("%w: %q is outside base %q", ErrNoMatch, href, r.history.Base())
	}
	return r.Resolve(loc)
}

// ResolveLocation resolves a named or path location.
func (r *Router) ResolveLocation(loc Location) (*Route, error) {
	var (
		path  string
		query url.Values
		hash  = loc.Hash
	)

	switch {
	case loc.Name != "":
		rec, ok := r.byName[loc.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, loc.Name)
		}
		built, err := buildPath(rec.desc.Path, loc.Params)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", loc.Name, err)
		}
		canon, err := routepath.Canonicalize(built)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		path = canon.Path
		query = cloneValues(loc.Query)

	case loc.Path != "":
		canon, err := routepath.ValidateNavPath(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocation, loc.Path, err)
		}
		path = canon.Path
		query, err = url.ParseQuery(canon.Query)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocation, loc.Path, err)
		}
		for k, vs := range loc.Query {
			query[k] = append([]string(nil), vs...)
		}
		if hash == "" {
			hash = canon.Hash
		}

	default:
		return nil, fmt.Errorf("%w: neither name nor path set", ErrInvalidLocation)
	}

	route, err := r.match(path)
	if err != nil {
		return nil, err
	}
	if loc.Name != "" && route.Name != loc.Name {
		return nil, fmt.Errorf("%w: %q built %q which matches %q", ErrNoMatch, loc.Name, path, route.Name)
	}

	if len(query) == 0 {
		query = url.Values{}
	}
	route.Query = query
	route.Hash = hash
	route.FullPath = routepath.Result{Path: path, Query: query.Encode(), Hash: hash}.FullPath()
	route.Href = r.history.Href(route.FullPath)
	return route, nil
}

// match finds the route for a canonical path.
func (r *Router) match(path string) (*Route, error) {
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, path)
	}
	rec, ok := r.byPattern[rctx.RoutePattern()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, path)
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		value := rctx.URLParams.Values[i]
		if key != "*" {
			decoded, err := routepath.DecodeSegment(value)
			if err != nil {
				return nil, fmt.Errorf("%w: param %q: %v", ErrInvalidLocation, key, err)
			}
			value = decoded
		}
		params[key] = value
	}

	return &Route{
		Name:    rec.desc.Name,
		Pattern: rec.desc.Path,
		Path:    path,
		Params:  params,
		Meta:    maps.Clone(rec.desc.Meta),
		rec:     rec,
	}, nil
}

// Start resolves the history's initial location and makes it current.
func (r *Router) Start(ctx context.Context) (*Route, error) {
	return r.navigate(ctx, Location{Path: r.history.Location()}, true)
}

// Push navigates to loc, adding a history entry.
func (r *Router) Push(ctx context.Context, loc Location) (*Route, error) {
	return r.navigate(ctx, loc, false)
}

// Replace navigates to loc, replacing the current history entry.
func (r *Router) Replace(ctx context.Context, loc Location) (*Route, error) {
	return r.navigate(ctx, loc, true)
}

// Back moves one entry back in history.
func (r *Router) Back(ctx context.Context) (*Route, error) {
	return r.Go(ctx, -1)
}

// Forward moves one entry forward in history.
func (r *Router) Forward(ctx context.Context) (*Route, error) {
	return r.Go(ctx, 1)
}

// Go moves delta entries through history. Moving past either end is a
// no-op that returns the current route.
func (r *Router) Go(ctx context.Context, delta int) (*Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.history.Go(delta)
	return r.Current(), nil
}

// onHistoryMove syncs the current route after the history moved.
func (r *Router) onHistoryMove(to, from string) {
	route, err := r.Resolve(to)
	if err != nil {
		r.logger.Warn("history entry does not resolve", "location", to, "error", err)
		return
	}

	r.mu.Lock()
	prev := r.current
	r.current = route
	hooks := append([]AfterHook(nil), r.after...)
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(route, prev, nil)
	}
}

func (r *Router) navigate(ctx context.Context, loc Location, replace bool) (*Route, error) {
	for hop := 0; ; hop++ {
		if hop > maxRedirects {
			return nil, fmt.Errorf("%w: last target %+v", ErrTooManyRedirects, loc)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		to, err := r.ResolveLocation(loc)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		from := r.current
		guards := append([]Guard(nil), r.guards...)
		r.mu.Unlock()

		if from != nil && from.FullPath == to.FullPath {
			err := fmt.Errorf("%w: %s", ErrNavigationDuplicated, to.FullPath)
			r.afterEach(to, from, err)
			return nil, err
		}

		nav := &Navigation{To: to, From: from, Replace: replace, ctx: ctx}
		reached := false
		err = ComposeGuards(nav, guards, func() error {
			reached = true
			return nil
		})

		var redirect *RedirectError
		if errors.As(err, &redirect) {
			r.logger.Debug("navigation redirected", "from", to.FullPath, "to", redirect.To)
			loc = redirect.To
			continue
		}
		if err == nil && !reached {
			err = ErrNavigationAborted
		}
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			if !errors.Is(err, ErrNavigationAborted) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %w", ErrNavigationAborted, err)
			}
			r.afterEach(to, from, err)
			return nil, err
		}

		r.mu.Lock()
		if replace {
			r.history.Replace(to.FullPath)
		} else {
			r.history.Push(to.FullPath)
		}
		r.current = to
		r.mu.Unlock()

		r.afterEach(to, from, nil)
		return to, nil
	}
}

func (r *Router) afterEach(to, from *Route, err error) {
	r.mu.Lock()
	hooks := append([]AfterHook(nil), r.after...)
	r.mu.Unlock()
	for _, hook := range hooks {
		hook(to, from, err)
	}
}

// Load returns the view for route, calling its loader on first use.
func (r *Router) Load(ctx context.Context, route *Route) (View, error) {
	if route == nil {
		return nil, fmt.Errorf("%w: nil route", ErrInvalidLocation)
	}
	rec := route.rec
	if rec == nil {
		var ok bool
		if rec, ok = r.byName[route.Name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, route.Name)
		}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.view != nil {
		return rec.view, nil
	}
	view, err := rec.desc.Component(ctx)
	if err != nil {
		r.logger.Warn("view load failed", "route", rec.desc.Name, "error", err)
		return nil, fmt.Errorf("load %q: %w", rec.desc.Name, err)
	}
	rec.view = view
	r.logger.Debug("view loaded", "route", rec.desc.Name)
	return view, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
