package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/config"
	"github.com/Mohsinsiddi/stakeforms/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and update configuration",
	Long: `Inspect and update configuration. Every key can also be overridden for
one run with a ` + config.EnvPrefix + `_<KEY> environment variable, e.g.
` + config.EnvPrefix + `_NETWORK_MODE=mainnet.`,
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list"},
	Short:   "Show the current configuration",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := make([][2]string, 0, len(cfg.Keys())+len(cfg.CustomRPCs))
		for _, k := range cfg.Keys() {
			v, _ := cfg.Get(k)
			if v == "" {
				v = "—"
			}
			pairs = append(pairs, [2]string{k, v})
		}

		chains := make([]string, 0, len(cfg.CustomRPCs))
		for name := range cfg.CustomRPCs {
			chains = append(chains, name)
		}
		sort.Strings(chains)
		for _, name := range chains {
			if rpcs := cfg.GetRPCs(name); len(rpcs) > 0 {
				pairs = append(pairs, [2]string{"rpc." + name, strings.Join(rpcs, ", ")})
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.KeyValueBlock("Configuration", pairs))
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Keys: network, network_mode, rpc_algorithm, staking_address, token_address,
approval_method (empty disables the approve step), default_wallet,
log_level, abi_path.

rpc_algorithm is one of fastest, round-robin or failover. round-robin
rotates over healthy endpoints for selections made by one process; each
new command starts again from the first healthy endpoint.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		if err := cfg.Set(args[0], value); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s = %q", args[0], value)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
