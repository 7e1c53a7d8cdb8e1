package contract

// stakingABI is the interface of the upgradeable staking contract the console
// drives. Stakes are keyed by name; positions by (user, stake name).
func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          BuiltinStaking,
		Name:        "Staking (ERC1967 implementation)",
		Description: "Named stakes with lock-up, leaving lock-up, monthly emission and reward harvesting.",
		ABI:         stakingABI,
	})
}

var stakingABI = []ABIEntry{
	// ── Read ─────────────────────────────────────────────────────────────────
	{
		Name: "token", Type: "function",
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
	{
		Name: "pendingReward", Type: "function",
		Inputs:          []ABIParam{{Name: "_user", Type: "address"}, {Name: "_stakeName", Type: "string"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint128"}},
		StateMutability: "view",
	},
	{
		Name: "positions", Type: "function",
		Inputs:          []ABIParam{{Name: "", Type: "address"}, {Name: "", Type: "string"}},
		Outputs:         []ABIParam{
			{Name: "totalAmount", Type: "uint128"},
			{Name: "activeAmount", Type: "uint128"},
			{Name: "lastWithdrawalIndex", Type: "uint64"},
			{Name: "lastAvailableToRequestIndex", Type: "uint64"},
			{Name: "requestedAmount", Type: "uint128"},
			{Name: "withdrawalAmount", Type: "uint128"},
			{Name: "receivedReward", Type: "uint128"},
			{Name: "rewardDebt", Type: "uint128"},
			{Name: "lastUpdateTimestamp", Type: "uint64"},
		},
		StateMutability: "view",
	},
	{
		Name: "productsUser", Type: "function",
		Inputs:          []ABIParam{{Name: "", Type: "address"}},
		Outputs:         []ABIParam{{Name: "", Type: "bool"}},
		StateMutability: "view",
	},
	{
		Name: "rewardPool", Type: "function",
		Inputs:          nil,
		Outputs:         []ABIParam{{Name: "", Type: "address"}},
		StateMutability: "view",
	},
	{
		Name: "stakes", Type: "function",
		Inputs:          []ABIParam{{Name: "", Type: "string"}},
		Outputs:         []ABIParam{
			{Name: "lockUpPeriod", Type: "uint64"},
			{Name: "leavingLockUpPeriod", Type: "uint64"},
			{Name: "minStakingAmount", Type: "uint128"},
			{Name: "minWithdrawalAmount", Type: "uint128"},
			{Name: "exist", Type: "bool"},
			{Name: "active", Type: "bool"},
			{Name: "special", Type: "bool"},
		},
		StateMutability: "view",
	},
	{
		Name: "viewAmountSum", Type: "function",
		Inputs:          []ABIParam{{Name: "_user", Type: "address"}, {Name: "_stakeName", Type: "string"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint128[]"}},
		StateMutability: "view",
	},
	{
		Name: "viewDepositsTimestamp", Type: "function",
		Inputs:          []ABIParam{{Name: "_user", Type: "address"}, {Name: "_stakeName", Type: "string"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint64[]"}},
		StateMutability: "view",
	},
	{
		Name: "viewEmissionTimestamp", Type: "function",
		Inputs:          []ABIParam{{Name: "_stakeName", Type: "string"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint64[]"}},
		StateMutability: "view",
	},
	{
		Name: "viewMonthlyEmission", Type: "function",
		Inputs:          []ABIParam{{Name: "_stakeName", Type: "string"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint64[]"}},
		StateMutability: "view",
	},
	{
		Name: "viewRequestsTimestamp", Type: "function",
		Inputs:          []ABIParam{{Name: "_user", Type: "address"}, {Name: "_stakeName", Type: "string"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint64[]"}},
		StateMutability: "view",
	},
	{
		Name: "viewWithdrawalSum", Type: "function",
		Inputs:          []ABIParam{{Name: "_user", Type: "address"}, {Name: "_stakeName", Type: "string"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint128[]"}},
		StateMutability: "view",
	},
	// ── Write ────────────────────────────────────────────────────────────────
	{
		Name: "createNewStake", Type: "function",
		Inputs:          []ABIParam{
			{Name: "_stakeName", Type: "string"},
			{Name: "_active", Type: "bool"},
			{Name: "_special", Type: "bool"},
			{Name: "_lockUpPeriod", Type: "uint64"},
			{Name: "_leavingLockUpPeriod", Type: "uint64"},
			{Name: "_monthlyEmission", Type: "uint64"},
			{Name: "_minStakingAmount", Type: "uint128"},
			{Name: "_minWithdrawalAmount", Type: "uint128"},
		},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "enterStaking", Type: "function",
		Inputs:          []ABIParam{{Name: "_stakeName", Type: "string"}, {Name: "_amount", Type: "uint128"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "harvestReward", Type: "function",
		Inputs:          []ABIParam{{Name: "_stakeName", Type: "string"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "initialize", Type: "function",
		Inputs:          []ABIParam{{Name: "_token", Type: "address"}, {Name: "_rewardPool", Type: "address"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "leaveStaking", Type: "function",
		Inputs:          []ABIParam{{Name: "_stakeName", Type: "string"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "renounceOwnership", Type: "function",
		Inputs:          nil,
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "requestLeaving", Type: "function",
		Inputs:          []ABIParam{{Name: "_stakeName", Type: "string"}, {Name: "_amount", Type: "uint128"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "setProductsUser", Type: "function",
		Inputs:          []ABIParam{{Name: "_users", Type: "address[]"}, {Name: "_set", Type: "bool[]"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "setRewardPool", Type: "function",
		Inputs:          []ABIParam{{Name: "_newPool", Type: "address"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "transferOwnership", Type: "function",
		Inputs:          []ABIParam{{Name: "newOwner", Type: "address"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "updateStake", Type: "function",
		Inputs:          []ABIParam{
			{Name: "_stakeName", Type: "string"},
			{Name: "_active", Type: "bool"},
			{Name: "_special", Type: "bool"},
			{Name: "_lockUpPeriod", Type: "uint64"},
			{Name: "_leavingLockUpPeriod", Type: "uint64"},
			{Name: "_monthlyEmission", Type: "uint64"},
			{Name: "_minStakingAmount", Type: "uint128"},
			{Name: "_minWithdrawalAmount", Type: "uint128"},
		},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	// ── Events ───────────────────────────────────────────────────────────────
	{
		Name: "Deposit", Type: "event",
		Inputs: []ABIParam{
			{Name: "user", Type: "address", Indexed: true},
			{Name: "stakeName", Type: "string", Indexed: true},
			{Name: "amount", Type: "uint128"},
		},
	},
	{
		Name: "NewStakeCreated", Type: "event",
		Inputs: []ABIParam{{Name: "stakeName", Type: "string", Indexed: true}},
	},
	{
		Name: "OwnershipTransferred", Type: "event",
		Inputs: []ABIParam{
			{Name: "previousOwner", Type: "address", Indexed: true},
			{Name: "newOwner", Type: "address", Indexed: true},
		},
	},
	{
		Name: "RewardHarvested", Type: "event",
		Inputs: []ABIParam{
			{Name: "user", Type: "address", Indexed: true},
			{Name: "stakeName", Type: "string", Indexed: true},
			{Name: "reward", Type: "uint128"},
		},
	},
	{
		Name: "StakeUpdated", Type: "event",
		Inputs: []ABIParam{{Name: "stakeName", Type: "string", Indexed: true}},
	},
	{
		Name: "Withdraw", Type: "event",
		Inputs: []ABIParam{
			{Name: "user", Type: "address", Indexed: true},
			{Name: "stakeName", Type: "string", Indexed: true},
			{Name: "amount", Type: "uint128"},
		},
	},
	{
		Name: "WithdrawRequested", Type: "event",
		Inputs: []ABIParam{
			{Name: "user", Type: "address", Indexed: true},
			{Name: "stakeName", Type: "string", Indexed: true},
			{Name: "availableToRequest", Type: "uint128"},
		},
	},
}
