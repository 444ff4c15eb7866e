// Package views holds the showcase pages. Each exported Loader builds its
// page on demand so the route table can defer the work until navigation.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/vango-dev/showcase/pkg/router"
)

// Page is a rendered showcase view.
type Page struct {
	title string
	build func() (string, error)
}

// Title implements router.View.
func (p *Page) Title() string {
	return p.title
}

// Render implements router.View.
func (p *Page) Render(w io.Writer) error {
	body, err := p.build()
	if err != nil {
		return err
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	_, err = io.WriteString(w, body)
	return err
}

// loader wraps a page constructor as a router.Loader that honors
// cancellation.
func loader(newPage func() *Page) router.Loader {
	return func(ctx context.Context) (router.View, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return newPage(), nil
	}
}

// Loaders for each showcase page.
var (
	Home     = loader(newHome)
	Button   = loader(newButton)
	Checkbox = loader(newCheckbox)
	Card     = loader(newCard)
)

// header renders the page title bar shared by every page.
func header(title string) string {
	return pterm.DefaultHeader.
		WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightWhite, pterm.Bold)).
		Sprint(title)
}

func join(parts ...string) string {
	return strings.Join(parts, "\n")
}
