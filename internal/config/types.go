package config

// Config holds all stakeforms configuration.
type Config struct {
	Network        string              `json:"network"         mapstructure:"network"`
	NetworkMode    string              `json:"network_mode"    mapstructure:"network_mode"`  // "mainnet" | "testnet"
	RPCAlgorithm   string              `json:"rpc_algorithm"   mapstructure:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	CustomRPCs     map[string][]string `json:"custom_rpcs"     mapstructure:"custom_rpcs"`
	StakingAddress string              `json:"staking_address" mapstructure:"staking_address"`
	TokenAddress   string              `json:"token_address"   mapstructure:"token_address"`
	ApprovalMethod string              `json:"approval_method" mapstructure:"approval_method"` // "" disables the approve step
	DefaultWallet  string              `json:"default_wallet"  mapstructure:"default_wallet"`
	LogLevel       string              `json:"log_level"       mapstructure:"log_level"`
	ABIPath        string              `json:"abi_path"        mapstructure:"abi_path"` // staking ABI override

	// internal: config dir path used for Save()
	configDir string
	// stored holds the file's own values, without environment overrides.
	stored map[string]string
}
