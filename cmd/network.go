package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/chain"
	"github.com/Mohsinsiddi/stakeforms/internal/config"
	"github.com/Mohsinsiddi/stakeforms/internal/ui"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Choose the network the console connects to",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported networks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 12},
			{Title: "Display", Width: 18},
			{Title: "Chain ID", Width: 10},
			{Title: "Testnet", Width: 14},
			{Title: "Testnet ID", Width: 10},
			{Title: "Currency", Width: 8},
		})
		for _, c := range reg.All() {
			name := c.Name
			if name == cfg.Network {
				name += " *"
			}
			t.AddRow(ui.Row{
				name,
				c.DisplayName,
				fmt.Sprintf("%d", c.ChainID),
				c.TestnetName,
				fmt.Sprintf("%d", c.TestnetChainID),
				c.NativeCurrency,
			})
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, t.Render())
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("* current (%s)", cfg.NetworkMode)))
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use <network>",
	Short: "Set the default network",
	Long: `Set the default network and persist it to config.

When combined with --testnet or --mainnet the network mode is also persisted.

Examples:
  stakeforms network use bnb --testnet
  stakeforms network use localhost`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, err := chain.NewRegistry().GetByName(name); err != nil {
			return fmt.Errorf("unknown network %q (run `stakeforms network list`)", name)
		}
		if err := cfg.Set("network", name); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Network set to %s (%s)", name, cfg.NetworkMode)))
		return nil
	},
}

var networkStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the selected RPC, gas price and latest block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.ConnectTimeout)
		defer cancel()

		client, ch, url, err := dial(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		st, err := chain.GetStatus(ctx, client)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock(ch.NetworkName(cfg.NetworkMode), statusPairs(url, st)))
		return nil
	},
}

func statusPairs(url string, st *chain.Status) [][2]string {
	gwei, eip1559 := st.Gas.GasPriceDisplay()
	price := fmt.Sprintf("%.2f gwei", gwei)
	if eip1559 {
		price += " (base fee)"
	}
	pairs := [][2]string{{"RPC", url}, {"Gas price", price}}
	if b := st.Block; b != nil {
		pairs = append(pairs,
			[2]string{"Block", fmt.Sprintf("%d (%s)", b.Number, b.Age())},
			[2]string{"Transactions", fmt.Sprintf("%d", b.TxCount)},
			[2]string{"Gas used", b.GasUsedPct()},
		)
	}
	return pairs
}

func init() {
	networkCmd.AddCommand(networkListCmd, networkUseCmd, networkStatusCmd)
}
