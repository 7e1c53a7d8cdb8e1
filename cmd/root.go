package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/stakeforms/internal/config"
	"github.com/Mohsinsiddi/stakeforms/internal/logging"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/stakeforms/cmd.Version=1.2.3" .
var Version = "0.3.0"

// ConfigDirEnv overrides the default config directory.
const ConfigDirEnv = "STAKEFORMS_CONFIG_DIR"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
	testnet bool
	mainnet bool

	// stdin is swapped in tests.
	stdin io.Reader = os.Stdin
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "stakeforms",
	Short: "Form console for the staking contract",
	Long: `stakeforms builds one form per staking contract entry point and
invokes them through your local wallet.

  Write, Read and Admin sections target the staking contract; the Proxy
  sections target its upgradeable proxy. Every form has one input per
  argument, an action (Transact or Read) and an output slot.

Global flags --testnet and --mainnet override the configured network mode
for a single invocation. Persist with: stakeforms config set network_mode <mode>`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		mode := ""
		if testnet {
			mode = "testnet"
		}
		if mainnet {
			mode = "mainnet"
		}
		if mode != "" {
			if err := cfg.Set("network_mode", mode); err != nil {
				return err
			}
		}
		return initLogging(cmd)
	},
}

// initLogging writes to the rotating file always and to stderr with
// --verbose, except under the console which owns the terminal.
func initLogging(cmd *cobra.Command) error {
	lc := logging.DefaultConfig(cfg.LogPath())
	lc.Level = logging.ParseLevel(cfg.LogLevel)
	if verbose {
		lc.Level = logging.LevelDebug
		lc.Console = cmd.Name() != consoleCmd.Name()
	}
	if err := logging.Init(lc); err != nil {
		return fmt.Errorf("initialising logging: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	if envDir := os.Getenv(ConfigDirEnv); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.stakeforms)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging, mirrored to stderr")
	rootCmd.PersistentFlags().BoolVar(&testnet, "testnet", false, "use testnet instead of mainnet")
	rootCmd.PersistentFlags().BoolVar(&mainnet, "mainnet", false, "use mainnet instead of testnet")
	rootCmd.MarkFlagsMutuallyExclusive("testnet", "mainnet")

	rootCmd.AddCommand(
		consoleCmd,
		formsCmd,
		invokeCmd,
		eventsCmd,
		abiCmd,
		walletCmd,
		networkCmd,
		rpcCmd,
		configCmd,
	)
}
