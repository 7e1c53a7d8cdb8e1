package bridge

// DefaultForms is the console's descriptor table for the staking contract
// and its proxy, in section order.
func DefaultForms() []FormSpec {
	var specs []FormSpec
	add := func(c Category, name string, params ...string) {
		specs = append(specs, FormSpec{Category: c, Name: name, Params: params})
	}

	add(CategoryWrite, "enterStaking", "string memory _stakeName", "uint128 _amount")
	add(CategoryWrite, "harvestReward", "string calldata _stakeName")
	add(CategoryWrite, "requestLeaving", "string calldata _stakeName", "uint128 _amount")
	add(CategoryWrite, "leaveStaking", "string calldata _stakeName")

	add(CategoryRead, "pendingReward", "address _user", "string calldata _stakeName")
	add(CategoryRead, "viewMonthlyEmission", "string calldata _stakeName")
	add(CategoryRead, "viewEmissionTimestamp", "string calldata _stakeName")
	add(CategoryRead, "viewDepositsTimestamp", "address _user", "string calldata _stakeName")
	add(CategoryRead, "viewAmountSum", "address _user", "string calldata _stakeName")
	add(CategoryRead, "viewWithdrawalSum", "address _user", "string calldata _stakeName")
	add(CategoryRead, "viewRequestsTimestamp", "address _user", "string calldata _stakeName")
	add(CategoryRead, "stakes", "string")
	add(CategoryRead, "positions", "address _user", "string _stakeName")
	add(CategoryRead, "productsUser", "address _user")
	add(CategoryRead, "owner")
	add(CategoryRead, "token")
	add(CategoryRead, "rewardPool")

	add(CategoryAdmin, "initialize", "BEP20 _token", "address _rewardPool")
	add(CategoryAdmin, "setProductsUser", "address[] calldata _users", "bool[] calldata _set")
	add(CategoryAdmin, "createNewStake", stakeParams...)
	add(CategoryAdmin, "updateStake", stakeParams...)
	add(CategoryAdmin, "setRewardPool", "address _newPool")
	add(CategoryAdmin, "renounceOwnership")
	add(CategoryAdmin, "transferOwnership", "address newOwner")

	add(CategoryProxyAdmin, "upgradeTo", "address newImplementation")
	add(CategoryProxyAdmin, "upgradeToAndCall", "address newImplementation", "bytes memory data", "bool forceCall")
	add(CategoryProxyAdmin, "transferOwnership", "address newOwner")

	add(CategoryProxyRead, "implementation")
	add(CategoryProxyRead, "owner")

	return specs
}

var stakeParams = []string{
	"string memory _stakeName",
	"bool _active",
	"bool _special",
	"uint64 _lockUpPeriod",
	"uint64 _leavingLockUpPeriod",
	"uint64 _monthlyEmission",
	"uint128 _minStakingAmount",
	"uint128 _minWithdrawAmount",
}

// HelpText maps method names to the one-line help shown next to a form.
var HelpText = map[string]string{
	"pendingReward":         "View function to see pending reward tokens on frontend.",
	"viewMonthlyEmission":   "Show monthly emissions array of the stake",
	"viewEmissionTimestamp": "Show emission timestamps array of the stake.",
	"viewDepositsTimestamp": "Show deposits timestamps array of the position",
	"viewAmountSum":         "Show requested amounts array of the position",
	"viewWithdrawalSum":     "Show withdrawal amounts array of the position",
	"viewRequestsTimestamp": "Show requests timestamps array of the position",
	"stakes":                "Stakes descriptions",
	"positions":             "Info about each user that stakes tokens",
	"productsUser":          "Staking products users",
	"owner":                 "Returns the address of the current owner",
	"token":                 "The TOKEN",
	"rewardPool":            "Reward wallet address",
	"enterStaking":          "Stake tokens",
	"harvestReward":         "Take all available reward",
	"requestLeaving":        "Request leaving from stake, requires Leaving Lock Up Period to wait",
	"leaveStaking":          "Withdraw tokens from staking",
	"initialize":            "For ERC1967 proxy we need to replace constructor with initialize function",
	"setProductsUser":       "Mark users of products as available for special stakes",
	"createNewStake":        "Create a new stake",
	"updateStake":           "Update existing stake",
	"setRewardPool":         "Change the reward pool",
	"renounceOwnership":     "Leaves the contract without owner. It will not be possible to call onlyOwner functions anymore. Can only be called by the current owner",
	"transferOwnership":     "Transfers ownership of the contract to a new account (newOwner). Can only be called by the current owner",
	"upgradeTo":             "Perform implementation upgrade",
	"upgradeToAndCall":      "Perform implementation upgrade with additional setup call",
	"implementation":        "Returns the current implementation address",
}
