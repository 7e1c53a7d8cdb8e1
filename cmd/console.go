package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/chain"
	"github.com/Mohsinsiddi/stakeforms/internal/ui"
	"github.com/Mohsinsiddi/stakeforms/internal/wallet"
)

var consoleYes bool

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive form console",
	Long: `Open the form console. After you agree to connect, every signing wallet
becomes an account (the default wallet first) and the five sections appear:
Write, Read, Admin, Proxy Owner and Proxy View.

Transactions are sent from the first account. Several forms can be in
flight at once; a form shows "…" on its action until its result lands.

Keys:
  ↑/↓, tab     move between inputs and actions
  typing       edits the focused input (ctrl+u clears it)
  enter        invoke the focused form
  q / esc      quit (q only while an action is focused)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		rt, err := newRuntime(ctx, cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Banner(Version))
		fmt.Fprintf(out, "  %s  %s\n", ui.Meta("Network:"), rt.chain.NetworkName(rt.mode))
		fmt.Fprintf(out, "  %s  %s\n", ui.Meta("RPC:"), rt.rpcURL)
		fmt.Fprintf(out, "  %s  %s\n", ui.Meta("Staking:"), ui.Addr(cfg.StakingAddress))
		if st, err := chain.GetStatus(ctx, rt.client); err == nil {
			gwei, _ := st.Gas.GasPriceDisplay()
			fmt.Fprintf(out, "  %s  %.2f gwei\n", ui.Meta("Gas:"), gwei)
		}
		fmt.Fprintln(out)

		if !consoleYes && !ui.Confirm(stdin, out, "Connect your wallets to this console?") {
			fmt.Fprintln(out, ui.Meta("Not connected. Nothing to show."))
			return nil
		}
		accounts, err := rt.session.RequestAccounts(ctx)
		if errors.Is(err, wallet.ErrNoAccounts) {
			return fmt.Errorf("%w (add one with `stakeforms wallet import <name>`)", err)
		}
		if err != nil {
			return err
		}

		header := fmt.Sprintf("%s  ·  %s", rt.chain.NetworkName(rt.mode), accounts[0].Hex())
		model := ui.NewConsoleModel(ctx, rt.bridge, header, rt.bridge.Render(rt.table))
		if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(os.Stdin)).Run(); err != nil {
			return fmt.Errorf("console: %w", err)
		}
		return nil
	},
}

func init() {
	consoleCmd.Flags().BoolVarP(&consoleYes, "yes", "y", false, "connect without asking")
}
