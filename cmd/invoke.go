package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/bridge"
	"github.com/Mohsinsiddi/stakeforms/internal/config"
	"github.com/Mohsinsiddi/stakeforms/internal/ui"
)

var invokeYes bool

// errFault reports a settled fault already printed to stdout.
var errFault = errors.New("invocation failed")

var invokeCmd = &cobra.Command{
	Use:   "invoke <method> [args...]",
	Short: "Invoke one form without the console",
	Long: `Fill one form with args and invoke it, printing what its output slot
would show. Name the form as method or section/method, e.g. owner or
proxy-read/owner. Lists are written as ['a','b'].

Transacting forms connect your wallets first and ask before sending.

Examples:
  stakeforms invoke pendingReward 0xYou... S1
  stakeforms invoke enterStaking S1 1000000000000000000 --yes
  stakeforms invoke proxy-read/implementation`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.InvokeTimeout)
		defer cancel()

		rt, err := newRuntime(ctx, cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		d, err := rt.table.Find(args[0])
		if err != nil {
			return err
		}
		g := rt.bridge.RenderOne(d)
		if err := g.SetInputs(args[1:]); err != nil {
			return fmt.Errorf("%s takes %d argument(s): %w", d.Name, g.Slots(), err)
		}

		out := cmd.OutOrStdout()
		if d.Mutates {
			if !invokeYes && !ui.Confirm(stdin, out, fmt.Sprintf("Send %s on %s?", d.Name, rt.chain.NetworkName(rt.mode))) {
				fmt.Fprintln(out, ui.Meta("Cancelled."))
				return nil
			}
			if _, err := rt.session.RequestAccounts(ctx); err != nil {
				return err
			}
		}

		spin := ui.NewSpinner(cmd.ErrOrStderr(), fmt.Sprintf("%s %s", g.Action(), d.Name))
		spin.Start()
		res := rt.bridge.Invoke(ctx, g)
		spin.Stop()

		return printResult(cmd, rt, res)
	},
}

func printResult(cmd *cobra.Command, rt *runtime, res bridge.Result) error {
	out := cmd.OutOrStdout()
	if !res.OK() {
		fmt.Fprintln(out, res.String())
		return fmt.Errorf("%w: %s fault", errFault, res.Fault.Kind)
	}
	fmt.Fprint(out, res.String())
	if v := res.Value; v != nil && !v.Structured() {
		fmt.Fprintln(out)
	}
	if v := res.Value; v != nil {
		for _, e := range v.Entries {
			if e.Key == "transactionHash" {
				if link := rt.chain.TxURL(rt.mode, e.Value); link != "" {
					fmt.Fprintln(out, ui.Meta(link))
				}
			}
		}
	}
	return nil
}

func init() {
	invokeCmd.Flags().BoolVarP(&invokeYes, "yes", "y", false, "send transactions without asking")
}
