package config

import "time"

// Timeouts used by the cmd layer.
const (
	RPCSelectTimeout = 10 * time.Second // endpoint benchmark / selection
	ConnectTimeout   = 15 * time.Second // dial + chain id check
	InvokeTimeout    = 3 * time.Minute  // one activation, including mining
	EventsTimeout    = time.Minute
)

// Default contract addresses on BNB Smart Chain testnet.
const (
	DefaultStakingAddress = "0x57e6F065A5136a26d47C22d46863B0d7ccB3AE26"
	DefaultTokenAddress   = "0x3B86874e10b02b115B03e4293fA48C94C1b3dd35"
)
