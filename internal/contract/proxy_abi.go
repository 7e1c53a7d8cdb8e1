package contract

// proxyABI is the owner-managed ERC1967 proxy sitting in front of the staking
// implementation. Calls go to the same address as the staking contract.
func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          BuiltinProxy,
		Name:        "ERC1967 Owned Proxy",
		Description: "Upgradeable proxy: implementation upgrades and proxy ownership.",
		ABI:         proxyABI,
	})
}

var proxyABI = []ABIEntry{
	// ── Read ─────────────────────────────────────────────────────────────────
	{
		Name: "implementation", Type: "function",
		Inputs:          nil,
		Outputs:         []ABIParam{{Name: "", Type: "address"}},
		StateMutability: "view",
	},
	{
		Name: "owner", Type: "function",
		Inputs:          nil,
		Outputs:         []ABIParam{{Name: "", Type: "address"}},
		StateMutability: "view",
	},
	// ── Write ────────────────────────────────────────────────────────────────
	{
		Name: "upgradeTo", Type: "function",
		Inputs:          []ABIParam{{Name: "newImplementation", Type: "address"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "upgradeToAndCall", Type: "function",
		Inputs: []ABIParam{
			{Name: "newImplementation", Type: "address"},
			{Name: "data", Type: "bytes"},
			{Name: "forceCall", Type: "bool"},
		},
		StateMutability: "payable",
	},
	{
		Name: "transferOwnership", Type: "function",
		Inputs:          []ABIParam{{Name: "newOwner", Type: "address"}},
		StateMutability: "nonpayable",
	},
	// ── Events ───────────────────────────────────────────────────────────────
	{
		Name: "Upgraded", Type: "event",
		Inputs: []ABIParam{{Name: "implementation", Type: "address", Indexed: true}},
	},
	{
		Name: "OwnershipTransferred", Type: "event",
		Inputs: []ABIParam{
			{Name: "previousOwner", Type: "address", Indexed: true},
			{Name: "newOwner", Type: "address", Indexed: true},
		},
	},
}
