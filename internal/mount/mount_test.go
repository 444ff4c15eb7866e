package mount

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"github.com/vango-dev/showcase/pkg/router"
)

func init() {
	pterm.DisableStyling()
}

type textView struct {
	title string
}

func (v textView) Title() string { return v.title }

func (v textView) Render(w io.Writer) error {
	_, err := io.WriteString(w, "<"+v.title+">\n")
	return err
}

func load(title string) router.Loader {
	return func(context.Context) (router.View, error) {
		return textView{title: title}, nil
	}
}

func newRouter(t *testing.T, extra ...router.Descriptor) *router.Router {
	t.Helper()
	table := append([]router.Descriptor{
		{Path: "/", Name: "home", Component: load("home")},
		{Path: "/button", Name: "button", Component: load("button")},
		{Path: "/card/{id}", Name: "card", Component: load("card")},
	}, extra...)
	r, err := router.New(router.NewMemoryHistory("/ui"), table)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestMountRendersCurrentRoute(t *testing.T) {
	r := newRouter(t)
	var out strings.Builder
	m := New(r, &out)

	if err := m.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if !strings.Contains(out.String(), "<home>") {
		t.Errorf("output = %q, want home view", out.String())
	}
	if r.Current() == nil || r.Current().Name != "home" {
		t.Errorf("Current() = %+v", r.Current())
	}

	if _, err := r.Push(context.Background(), router.Location{Name: "button"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "<button>") || !strings.Contains(out.String(), "/ui/button") {
		t.Errorf("output = %q, want button view and href", out.String())
	}

	if err := m.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.Renders() != 2 {
		t.Errorf("Renders() = %d, want 2", m.Renders())
	}
}

func TestRunCommands(t *testing.T) {
	r := newRouter(t)
	var out strings.Builder
	m := New(r, &out, WithPrompt(""))

	script := strings.Join([]string{
		"go button",
		"go card id=42",
		"where",
		"back",
		"back",
		"back",
		"forward",
		"open /card/7?tab=details",
		"routes",
		"help",
		"quit",
		"go home",
	}, "\n")

	if err := m.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"<card>",
		"card  /card/42  /ui/card/42",
		"no back entry",
		"Commands:",
		"/card/{id}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	cur := r.Current()
	if cur.Name != "card" || cur.Params["id"] != "7" || cur.Query.Get("tab") != "details" {
		t.Errorf("Current() = %+v", cur)
	}
	if r.History().Location() != "/card/7?tab=details" {
		t.Errorf("Location() = %q", r.History().Location())
	}
}

func TestRunReportsFailures(t *testing.T) {
	r := newRouter(t, router.Descriptor{
		Path: "/broken",
		Name: "broken",
		Component: func(context.Context) (router.View, error) {
			return nil, errors.New("chunk missing")
		},
	})
	var out strings.Builder
	m := New(r, &out, WithPrompt(""))

	script := "jump\ngo nowhere\ngo card\nopen /missing\ngo home\ngo broken\ngo button x\n"
	if err := m.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"E150", "E100", "E102", "E101", "E105", "chunk missing", "E151"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if r.Current().Name != "broken" {
		t.Errorf("Current().Name = %q, a failed load still commits the navigation", r.Current().Name)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	m := New(r, io.Discard, WithPrompt(""))
	if err := m.Mount(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	err := m.Run(ctx, strings.NewReader("go button\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams([]string{"id=42", "tab=a=b"})
	if err != nil {
		t.Fatal(err)
	}
	if params["id"] != "42" || params["tab"] != "a=b" {
		t.Errorf("ParseParams() = %v", params)
	}

	if p, err := ParseParams(nil); err != nil || p != nil {
		t.Errorf("ParseParams(nil) = %v, %v", p, err)
	}
	if _, err := ParseParams([]string{"=x"}); err == nil {
		t.Error("ParseParams(=x) should fail")
	}
}
