package views

import "github.com/pterm/pterm"

type buttonVariant struct {
	label    string
	style    *pterm.Style
	disabled bool
}

var buttonVariants = []buttonVariant{
	{label: "Primary", style: pterm.NewStyle(pterm.BgBlue, pterm.FgLightWhite, pterm.Bold)},
	{label: "Secondary", style: pterm.NewStyle(pterm.BgWhite, pterm.FgBlack)},
	{label: "Danger", style: pterm.NewStyle(pterm.BgRed, pterm.FgLightWhite, pterm.Bold)},
	{label: "Disabled", style: pterm.NewStyle(pterm.FgDarkGray), disabled: true},
}

func newButton() *Page {
	return &Page{
		title: "Button",
		build: func() (string, error) {
			row := make([]pterm.Panel, 0, len(buttonVariants))
			for _, v := range buttonVariants {
				label := " " + v.label + " "
				if v.disabled {
					label = "(" + v.label + ")"
				}
				row = append(row, pterm.Panel{Data: v.style.Sprint("[" + label + "]")})
			}
			panels, err := pterm.DefaultPanel.WithPadding(2).WithPanels(pterm.Panels{row}).Srender()
			if err != nil {
				return "", err
			}
			return join(
				header("Button"),
				pterm.DefaultSection.Sprint("Variants"),
				panels,
			), nil
		},
	}
}
