package cmd

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/bridge"
	"github.com/Mohsinsiddi/stakeforms/internal/config"
	"github.com/Mohsinsiddi/stakeforms/internal/contract"
	"github.com/Mohsinsiddi/stakeforms/internal/ui"
)

var (
	eventsFrom  uint64
	eventsTo    uint64
	eventsRange uint64
)

const defaultEventsRange = 5000

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Decode staking contract events",
	Long: `Fetch and decode the staking contract's logs: Deposit, Withdraw,
RewardHarvested, WithdrawRequested, NewStakeCreated, StakeUpdated and
OwnershipTransferred.

By default the last 5000 blocks are scanned.

Examples:
  stakeforms events
  stakeforms events --from 41000000 --to 41005000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.EventsTimeout)
		defer cancel()

		abis, err := loadABIs(cfg)
		if err != nil {
			return err
		}
		client, _, _, err := dial(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		var latest uint64
		if eventsFrom == 0 && eventsTo == 0 {
			if latest, err = client.BlockNumber(ctx); err != nil {
				return fmt.Errorf("eth_blockNumber: %w", err)
			}
		}
		from, toBlock, err := eventsWindow(latest, eventsFrom, eventsTo, eventsRange)
		if err != nil {
			return err
		}

		staking := contract.NewClient(common.HexToAddress(cfg.StakingAddress), abis[contract.BuiltinStaking], client, nil)
		events, err := staking.Events(ctx, new(big.Int).SetUint64(from), toBlock)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, ui.Meta(fmt.Sprintf("No events since block %d.", from)))
			return nil
		}
		fmt.Fprint(out, eventsTable(events).Render())
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%d event(s)", len(events))))
		return nil
	},
}

func eventsTable(events []*contract.Event) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "Block", Width: 10},
		{Title: "Event", Width: 20},
		{Title: "Tx", Width: 14},
		{Title: "Fields", Width: 80},
	})
	for _, ev := range events {
		t.AddRow(ui.Row{
			fmt.Sprintf("%d", ev.BlockNumber),
			ev.Name,
			ui.TruncateAddr(ev.TxHash.Hex()),
			eventFields(ev),
		})
	}
	return t
}

// eventFields renders fields in ABI order as "name=value" pairs.
func eventFields(ev *contract.Event) string {
	parts := make([]string, 0, len(ev.Order))
	for _, name := range ev.Order {
		parts = append(parts, name+"="+bridge.FormatValue(ev.Fields[name]))
	}
	return strings.Join(parts, " ")
}

func init() {
	eventsCmd.Flags().Uint64Var(&eventsFrom, "from", 0, "first block (default: latest minus --range)")
	eventsCmd.Flags().Uint64Var(&eventsTo, "to", 0, "last block (default: latest)")
	eventsCmd.Flags().Uint64Var(&eventsRange, "range", defaultEventsRange, "blocks to scan back when --from is not set")
}

// eventsWindow resolves the block range to scan. Without --from the window
// ends at --to, or at latest when --to is unset. A nil upper bound means latest.
func eventsWindow(latest, from, to, rng uint64) (uint64, *big.Int, error) {
	if to != 0 && from > to {
		return 0, nil, fmt.Errorf("--from %d is after --to %d", from, to)
	}
	var toBlock *big.Int
	if to != 0 {
		toBlock = new(big.Int).SetUint64(to)
	}
	if from != 0 {
		return from, toBlock, nil
	}
	end := latest
	if to != 0 {
		end = to
	}
	if end > rng {
		from = end - rng
	}
	return from, toBlock, nil
}
