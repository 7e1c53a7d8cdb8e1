package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
	"github.com/Mohsinsiddi/stakeforms/internal/ui"
)

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Inspect the built-in contract ABIs",
}

var abiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in ABIs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := ui.NewTable([]ui.Column{
			{Title: "ID", Width: 10},
			{Title: "Name", Width: 22},
			{Title: "Functions", Width: 10},
			{Title: "Description", Width: 50},
		})
		for _, b := range contract.AllBuiltins() {
			t.AddRow(ui.Row{b.ID, b.Name, fmt.Sprintf("%d", contract.CountFunctions(b.ABI)), b.Description})
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var abiShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the functions and events of a built-in ABI with selectors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, ok := contract.GetBuiltin(args[0])
		if !ok {
			return fmt.Errorf("unknown ABI %q (run `stakeforms abi list`)", args[0])
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Type", Width: 9},
			{Title: "Selector", Width: 12},
			{Title: "Signature", Width: 64},
			{Title: "Mutability", Width: 11},
		})
		for _, e := range b.ABI {
			if e.Type != "function" && e.Type != "event" {
				continue
			}
			selector := e.Selector()
			if e.Type == "event" {
				selector = ui.TruncateAddr(e.Topic())
			}
			t.AddRow(ui.Row{e.Type, selector, e.Signature(), e.StateMutability})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.StyleTitle.Render(b.Name))
		fmt.Fprint(out, t.Render())
		return nil
	},
}

func init() {
	abiCmd.AddCommand(abiListCmd, abiShowCmd)
}
