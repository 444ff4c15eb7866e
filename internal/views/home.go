package views

import "github.com/pterm/pterm"

// components lists the showcased components in display order.
var components = []struct {
	name, summary string
}{
	{"button", "Clickable actions in four variants"},
	{"checkbox", "Binary choices with checked, unchecked and disabled states"},
	{"card", "Grouped content with a title and a body"},
}

func newHome() *Page {
	return &Page{
		title: "Home",
		build: func() (string, error) {
			items := make([]pterm.BulletListItem, 0, len(components))
			for _, c := range components {
				items = append(items, pterm.BulletListItem{
					Level: 0,
					Text:  pterm.Bold.Sprint(c.name) + "  " + c.summary,
				})
			}
			list, err := pterm.DefaultBulletList.WithItems(items).Srender()
			if err != nil {
				return "", err
			}
			return join(
				header("Component Showcase"),
				pterm.DefaultParagraph.Sprint("Pick a component to see it rendered. Type 'go <name>' to navigate."),
				"",
				list,
			), nil
		},
	}
}
