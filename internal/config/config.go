package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	defaultNetwork   = "bnb"
	defaultMode      = "testnet"
	defaultAlgorithm = "fastest"
	defaultApproval  = "enterStaking"
	defaultLogLevel  = "info"

	configFile  = "config.json"
	walletsFile = "wallets.json"
	logFile     = "stakeforms.log"

	// EnvPrefix prefixes environment overrides, e.g. STAKEFORMS_NETWORK.
	EnvPrefix = "STAKEFORMS"
)

// ErrUnknownKey is returned by Set for keys that are not settable.
var ErrUnknownKey = errors.New("unknown config key")

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.stakeforms. STAKEFORMS_<KEY> environment variables override file values
// for this process only; Save never writes them back.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".stakeforms")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	v := newViper(true)
	file := newViper(false)
	if len(data) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if err := file.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}
	cfg.stored = make(map[string]string, len(cfg.settable()))
	for key := range cfg.settable() {
		cfg.stored[key] = file.GetString(key)
	}
	return cfg, nil
}

// newViper returns a JSON viper with every key defaulted. withEnv binds the
// STAKEFORMS_* overrides.
func newViper(withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
	}

	v.SetDefault("network", defaultNetwork)
	v.SetDefault("network_mode", defaultMode)
	v.SetDefault("rpc_algorithm", defaultAlgorithm)
	v.SetDefault("custom_rpcs", map[string][]string{})
	v.SetDefault("staking_address", DefaultStakingAddress)
	v.SetDefault("token_address", DefaultTokenAddress)
	v.SetDefault("approval_method", defaultApproval)
	v.SetDefault("default_wallet", "")
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("abi_path", "")
	return v
}

// envValue returns the non-empty STAKEFORMS_<KEY> override for key.
func envValue(key string) (string, bool) {
	val := os.Getenv(EnvPrefix + "_" + strings.ToUpper(key))
	return val, val != ""
}

// Save writes the config to disk. A value still equal to its active
// environment override is saved as the file held it.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	out := *c
	for key, p := range out.settable() {
		if ev, ok := envValue(key); ok && *p == ev {
			if stored, ok := c.stored[key]; ok {
				*p = stored
			}
		}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600); err != nil {
		return err
	}
	if c.stored == nil {
		c.stored = make(map[string]string)
	}
	for key, p := range out.settable() {
		c.stored[key] = *p
	}
	return nil
}

// settable maps `config set` keys to their field.
func (c *Config) settable() map[string]*string {
	return map[string]*string{
		"network":         &c.Network,
		"network_mode":    &c.NetworkMode,
		"rpc_algorithm":   &c.RPCAlgorithm,
		"staking_address": &c.StakingAddress,
		"token_address":   &c.TokenAddress,
		"approval_method": &c.ApprovalMethod,
		"default_wallet":  &c.DefaultWallet,
		"log_level":       &c.LogLevel,
		"abi_path":        &c.ABIPath,
	}
}

// Keys lists the keys accepted by Set, sorted.
func (c *Config) Keys() []string {
	keys := make([]string, 0, 9)
	for k := range c.settable() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string value of key.
func (c *Config) Get(key string) (string, error) {
	p, ok := c.settable()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return *p, nil
}

// Set validates and assigns value to key. It does not save.
func (c *Config) Set(key, value string) error {
	p, ok := c.settable()[key]
	if !ok {
		return fmt.Errorf("%w: %s (want one of %s)", ErrUnknownKey, key, strings.Join(c.Keys(), ", "))
	}
	if err := validate(key, value); err != nil {
		return err
	}
	*p = value
	if c.stored == nil {
		c.stored = make(map[string]string)
	}
	c.stored[key] = value
	return nil
}

// Validate checks every settable value.
func (c *Config) Validate() error {
	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		if err := validate(k, v); err != nil {
			return err
		}
	}
	return nil
}

func validate(key, value string) error {
	switch key {
	case "network_mode":
		if value != "mainnet" && value != "testnet" {
			return fmt.Errorf("network_mode must be mainnet or testnet, got %q", value)
		}
	case "rpc_algorithm":
		if !slices.Contains([]string{"fastest", "round-robin", "failover"}, value) {
			return fmt.Errorf("rpc_algorithm must be fastest, round-robin or failover, got %q", value)
		}
	case "staking_address", "token_address":
		if !common.IsHexAddress(value) {
			return fmt.Errorf("%s: %q is not a hex address", key, value)
		}
	case "network":
		if value == "" {
			return fmt.Errorf("network must not be empty")
		}
	}
	return nil
}

// AddRPC adds a custom RPC URL for a chain.
func (c *Config) AddRPC(chain, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[chain], url) {
		return fmt.Errorf("RPC %s already exists for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = append(c.CustomRPCs[chain], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a chain.
func (c *Config) RemoveRPC(chain, url string) error {
	rpcs := c.CustomRPCs[chain]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns custom RPCs for a chain.
func (c *Config) GetRPCs(chain string) []string {
	return c.CustomRPCs[chain]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath is where the wallet list is persisted.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// LogPath is the rotating log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.configDir, logFile)
}
