package views

import "github.com/pterm/pterm"

type checkboxItem struct {
	label    string
	checked  bool
	disabled bool
}

var checkboxItems = []checkboxItem{
	{label: "Remember me", checked: true},
	{label: "Subscribe to newsletter"},
	{label: "Accept terms", checked: true, disabled: true},
	{label: "Unavailable option", disabled: true},
}

func (c checkboxItem) String() string {
	box := "[ ]"
	style := pterm.NewStyle(pterm.FgDefault)
	if c.checked {
		box = "[x]"
		style = pterm.NewStyle(pterm.FgGreen)
	}
	label := c.label
	if c.disabled {
		style = pterm.NewStyle(pterm.FgDarkGray)
		label += " (disabled)"
	}
	return style.Sprint(box + " " + label)
}

func newCheckbox() *Page {
	return &Page{
		title: "Checkbox",
		build: func() (string, error) {
			items := make([]pterm.BulletListItem, 0, len(checkboxItems))
			for _, c := range checkboxItems {
				items = append(items, pterm.BulletListItem{Text: c.String(), Bullet: " "})
			}
			list, err := pterm.DefaultBulletList.WithItems(items).Srender()
			if err != nil {
				return "", err
			}
			return join(
				header("Checkbox"),
				pterm.DefaultSection.Sprint("States"),
				list,
			), nil
		},
	}
}
