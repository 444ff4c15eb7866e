package views

import "github.com/pterm/pterm"

var cards = []struct {
	title, body string
}{
	{"Getting started", "Cards group related content\nunder a single title."},
	{"Pricing", "Free for open source.\nPaid plans start at $9."},
}

func newCard() *Page {
	return &Page{
		title: "Card",
		build: func() (string, error) {
			row := make([]pterm.Panel, 0, len(cards))
			for _, c := range cards {
				box := pterm.DefaultBox.
					WithTitle(pterm.Bold.Sprint(c.title)).
					WithTitleTopLeft().
					Sprint(c.body)
				row = append(row, pterm.Panel{Data: box})
			}
			panels, err := pterm.DefaultPanel.WithPadding(2).WithPanels(pterm.Panels{row}).Srender()
			if err != nil {
				return "", err
			}
			return join(
				header("Card"),
				pterm.DefaultSection.Sprint("Examples"),
				panels,
			), nil
		},
	}
}
