// Package mount attaches a router to a terminal. It renders the current
// route's view, re-renders after every navigation and runs the command loop
// of the interactive browser.
package mount

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/router"
)

// Mounter renders router views to a writer.
type Mounter struct {
	router *router.Router
	out    io.Writer
	logger *slog.Logger
	prompt string

	mu      sync.Mutex
	ctx     context.Context
	mounted bool
	renders int
}

// Option configures a Mounter.
type Option func(*Mounter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mounter) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPrompt sets the prompt written before each command is read.
// An empty prompt disables it.
func WithPrompt(prompt string) Option {
	return func(m *Mounter) {
		m.prompt = prompt
	}
}

// New creates a Mounter for r writing to w.
func New(r *router.Router, w io.Writer, opts ...Option) *Mounter {
	m := &Mounter{
		router: r,
		out:    w,
		logger: slog.Default().With("component", "mount"),
		prompt: "> ",
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mount renders the current route, starting the router first if it has
// no current route, and re-renders after every later navigation.
func (m *Mounter) Mount(ctx context.Context) error {
	m.mu.Lock()
	if m.mounted {
		m.mu.Unlock()
		return nil
	}
	m.mounted = true
	m.ctx = ctx
	m.mu.Unlock()

	if m.router.Current() == nil {
		if _, err := m.router.Start(ctx); err != nil {
			return err
		}
	}
	m.router.AfterEach(m.afterNavigate)
	return m.render(ctx, m.router.Current())
}

// Renders reports how many views have been rendered.
func (m *Mounter) Renders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renders
}

func (m *Mounter) afterNavigate(to, _ *router.Route, err error) {
	if err != nil {
		return
	}
	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()
	if rerr := m.render(ctx, to); rerr != nil {
		m.report(rerr)
	}
}

func (m *Mounter) render(ctx context.Context, route *router.Route) error {
	view, err := m.router.Load(ctx, route)
	if err != nil {
		return err
	}
	if err := view.Render(m.out); err != nil {
		return fmt.Errorf("render %q: %w", route.Name, err)
	}
	fmt.Fprintln(m.out, pterm.FgDarkGray.Sprint(route.Href))

	m.mu.Lock()
	m.renders++
	m.mu.Unlock()
	m.logger.Debug("view rendered", "route", route.Name, "href", route.Href)
	return nil
}

// Run reads commands from in until quit, end of input or cancellation.
// Failed commands are reported and the loop continues.
func (m *Mounter) Run(ctx context.Context, in io.Reader) error {
	if err := m.Mount(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.prompt != "" {
			fmt.Fprint(m.out, m.prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		quit, err := m.exec(ctx, fields[0], fields[1:])
		if err != nil {
			m.report(err)
		}
		if quit {
			return nil
		}
	}
}

func (m *Mounter) exec(ctx context.Context, cmd string, args []string) (quit bool, err error) {
	switch cmd {
	case "go":
		if len(args) == 0 {
			return false, errors.New("E151").WithDetail("usage: go <name> [key=value...]")
		}
		params, err := ParseParams(args[1:])
		if err != nil {
			return false, err
		}
		_, err = m.router.Push(ctx, router.Location{Name: args[0], Params: params})
		return false, err

	case "open":
		if len(args) != 1 {
			return false, errors.New("E151").WithDetail("usage: open <path>")
		}
		_, err := m.router.Push(ctx, router.Location{Path: args[0]})
		return false, err

	case "back", "forward":
		before := m.router.Current()
		var after *router.Route
		if cmd == "back" {
			after, err = m.router.Back(ctx)
		} else {
			after, err = m.router.Forward(ctx)
		}
		if err == nil && after == before {
			fmt.Fprintf(m.out, "no %s entry\n", cmd)
		}
		return false, err

	case "routes":
		return false, m.printRoutes()

	case "where":
		if cur := m.router.Current(); cur != nil {
			fmt.Fprintf(m.out, "%s  %s  %s\n", cur.Name, cur.FullPath, cur.Href)
		}
		return false, nil

	case "help":
		fmt.Fprint(m.out, helpText)
		return false, nil

	case "quit", "exit":
		return true, nil
	}
	return false, errors.New("E150").WithDetail(cmd)
}

func (m *Mounter) printRoutes() error {
	data := pterm.TableData{{"Name", "Path", "Href"}}
	h := m.router.History()
	for _, d := range m.router.Routes() {
		data = append(data, []string{d.Name, d.Path, h.Href(d.Path)})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, out)
	return nil
}

func (m *Mounter) report(err error) {
	m.logger.Debug("command failed", "error", err)
	se := errors.FromError(err, "E107")
	msg := se.FormatCompact()
	if se.Detail == "" && se.Wrapped != nil {
		msg = se.Code + ": " + se.Wrapped.Error()
	}
	fmt.Fprintln(m.out, pterm.FgRed.Sprint(msg))
}

// ParseParams parses key=value arguments.
func ParseParams(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.New("E151").WithDetail(arg)
		}
		params[key] = value
	}
	return params, nil
}

const helpText = `Commands:
  go <name> [key=value...]  navigate to a named route
  open <path>               navigate to a path
  back, forward             move through history
  routes                    list the route table
  where                     show the current location
  help                      show this help
  quit                      leave the browser
`
