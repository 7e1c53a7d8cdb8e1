package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/bridge"
	"github.com/Mohsinsiddi/stakeforms/internal/ui"
)

var formsCmd = &cobra.Command{
	Use:   "forms [category]",
	Short: "List the console's forms",
	Long: `List every form per section with its action and inputs.

Categories: write, read, admin, proxy-admin, proxy-read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _, err := loadTable(cfg)
		if err != nil {
			return err
		}

		categories := bridge.Categories
		if len(args) == 1 {
			c, err := bridge.ParseCategory(args[0])
			if err != nil {
				return err
			}
			categories = []bridge.Category{c}
		}

		out := cmd.OutOrStdout()
		for _, c := range categories {
			fmt.Fprintln(out, ui.StyleTitle.Render(c.Title()))
			fmt.Fprint(out, formsTable(table.InCategory(c)).Render())
			fmt.Fprintln(out)
		}
		return nil
	},
}

func formsTable(descriptors []*bridge.MethodDescriptor) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "Method", Width: 24},
		{Title: "Action", Width: 9},
		{Title: "Inputs", Width: 56},
	})
	for _, d := range descriptors {
		action := "Read"
		if d.Mutates {
			action = "Transact"
		}
		inputs := make([]string, len(d.Params))
		for i, p := range d.Params {
			inputs[i] = p.Placeholder()
		}
		t.AddRow(ui.Row{d.Name, action, strings.Join(inputs, " | ")})
	}
	return t
}
