package cmd

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/stakeforms/internal/bridge"
	"github.com/Mohsinsiddi/stakeforms/internal/chain"
	"github.com/Mohsinsiddi/stakeforms/internal/config"
	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

const hardhatAddr = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"

// run executes the root command against config dir dir.
func run(t *testing.T, dir, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", dir}, args...))
	stdin = strings.NewReader(input)
	testnet, mainnet, verbose = false, false, false
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestFormsListsEverySection(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "forms")
	require.NoError(t, err)

	for _, c := range bridge.Categories {
		assert.Contains(t, out, c.Title())
	}
	assert.Contains(t, out, "enterStaking")
	assert.Contains(t, out, "Transact")
	assert.Contains(t, out, "upgradeToAndCall")
	assert.Contains(t, out, "address newOwner")
}

func TestFormsSingleCategory(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "forms", "read")
	require.NoError(t, err)
	assert.Contains(t, out, "pendingReward")
	assert.NotContains(t, out, "enterStaking")

	_, err = run(t, t.TempDir(), "", "forms", "bogus")
	assert.ErrorContains(t, err, "want one of")
}

func TestABIList(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "abi", "list")
	require.NoError(t, err)
	for _, id := range []string{contract.BuiltinStaking, contract.BuiltinProxy, contract.BuiltinBEP20} {
		assert.Contains(t, out, id)
	}
}

func TestABIShowSelectors(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "abi", "show", contract.BuiltinStaking)
	require.NoError(t, err)

	entry, err := contract.FindFunction(contract.GetBuiltinABI(contract.BuiltinStaking), "enterStaking")
	require.NoError(t, err)
	assert.Contains(t, out, entry.Signature())
	assert.Contains(t, out, entry.Selector())
	assert.Contains(t, out, "Deposit(")

	_, err = run(t, t.TempDir(), "", "abi", "show", "nope")
	assert.ErrorContains(t, err, "unknown ABI")
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "config", "set", "network_mode", "mainnet")
	require.NoError(t, err)
	_, err = run(t, dir, "", "config", "set", "approval_method")
	require.NoError(t, err)

	reloaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", reloaded.NetworkMode)
	assert.Empty(t, reloaded.ApprovalMethod)

	out, err := run(t, dir, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "mainnet")
	assert.Contains(t, out, "staking_address")
	assert.Contains(t, out, dir)
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "", "config", "set", "token_address", "0x12")
	assert.Error(t, err)
	_, err = run(t, dir, "", "config", "set", "colour", "blue")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestWalletAddListUse(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "wallet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No wallets yet")

	_, err = run(t, dir, "", "wallet", "add", "watcher", hardhatAddr)
	require.NoError(t, err)
	_, err = run(t, dir, "", "wallet", "add", "bad", "0x123")
	assert.Error(t, err)

	out, err = run(t, dir, "", "wallet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "watcher")
	assert.Contains(t, out, common.HexToAddress(hardhatAddr).Hex())
	assert.Contains(t, out, "watch-only")

	_, err = run(t, dir, "", "wallet", "use", "watcher")
	require.NoError(t, err)
	reloaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "watcher", reloaded.DefaultWallet)

	_, err = run(t, dir, "", "wallet", "use", "ghost")
	assert.Error(t, err)
}

func TestWalletRemoveCancelled(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "", "wallet", "add", "watcher", hardhatAddr)
	require.NoError(t, err)

	out, err := run(t, dir, "n\n", "wallet", "remove", "watcher")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	out, err = run(t, dir, "", "wallet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "watcher")
}

func TestNetworkUse(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "network", "use", "ethereum")
	require.NoError(t, err)
	reloaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ethereum", reloaded.Network)

	_, err = run(t, dir, "", "network", "use", "atlantis")
	assert.ErrorContains(t, err, "unknown network")

	out, err := run(t, dir, "", "network", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ethereum *")
}

func TestRPCAddKeepsNetwork(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "rpc", "add", "ethereum", "https://my.eth.rpc")
	require.NoError(t, err)

	reloaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "bnb", reloaded.Network)
	assert.Equal(t, []string{"https://my.eth.rpc"}, reloaded.GetRPCs("ethereum"))

	_, err = run(t, dir, "", "rpc", "add", "atlantis", "https://x")
	assert.Error(t, err)
}

func TestLoadABIsOverride(t *testing.T) {
	c, err := config.Load(t.TempDir())
	require.NoError(t, err)

	abis, err := loadABIs(c)
	require.NoError(t, err)
	assert.Contains(t, abis[contract.BuiltinStaking].Methods, "enterStaking")
	assert.Contains(t, abis[contract.BuiltinProxy].Methods, "upgradeTo")

	c.ABIPath = "/nonexistent/Staking.json"
	_, err = loadABIs(c)
	assert.Error(t, err)
}

func TestRPCCandidatesCustomFirst(t *testing.T) {
	c, err := config.Load(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.AddRPC("bnb", "https://mine.example"))

	ch, err := resolveChain(c)
	require.NoError(t, err)
	urls := rpcCandidates(c, ch)
	require.NotEmpty(t, urls)
	assert.Equal(t, "https://mine.example", urls[0])
	assert.Equal(t, len(ch.RPCs(c.NetworkMode))+1, len(urls))
	assert.Len(t, c.GetRPCs("bnb"), 1, "building candidates must not grow the config slice")
}

func TestEventFields(t *testing.T) {
	ev := &contract.Event{
		Name:   "Deposit",
		Order:  []string{"user", "amount"},
		Fields: map[string]any{"amount": big.NewInt(5), "user": common.HexToAddress(hardhatAddr)},
	}
	assert.Equal(t, "user="+common.HexToAddress(hardhatAddr).Hex()+" amount=5", eventFields(ev))
}

func TestPrintResult(t *testing.T) {
	bnb, err := chain.NewRegistry().GetByName("bnb")
	require.NoError(t, err)
	rt := &runtime{chain: bnb, mode: chain.ModeTestnet}

	hash := "0x" + strings.Repeat("ab", 32)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	err = printResult(rootCmd, rt, bridge.Result{Value: &bridge.Value{Entries: []bridge.Entry{{Key: "transactionHash", Value: hash}}}})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "transactionHash: "+hash)
	assert.Contains(t, out.String(), "https://testnet.bscscan.com/tx/"+hash)

	out.Reset()
	err = printResult(rootCmd, rt, bridge.Result{Value: &bridge.Value{Scalar: "42"}})
	require.NoError(t, err)
	assert.Equal(t, "42\n", out.String())

	out.Reset()
	err = printResult(rootCmd, rt, bridge.Result{Fault: &bridge.Fault{Kind: bridge.FaultRevert, Method: "leaveStaking", Message: "execution reverted"}})
	assert.ErrorIs(t, err, errFault)
	assert.Contains(t, out.String(), `"kind": "revert"`)
}

func TestStatusPairs(t *testing.T) {
	st := &chain.Status{
		Gas:   &chain.GasInfo{GasPriceGwei: 1, BaseFee: big.NewInt(3_000_000_000), BaseFeeGwei: 3},
		Block: &chain.BlockInfo{Number: 16, TxCount: 2, GasUsed: 50, GasLimit: 100},
	}
	pairs := statusPairs("http://node", st)
	require.Len(t, pairs, 5)
	assert.Equal(t, [2]string{"RPC", "http://node"}, pairs[0])
	assert.Equal(t, [2]string{"Gas price", "3.00 gwei (base fee)"}, pairs[1])
	assert.Equal(t, [2]string{"Block", "16 (unknown)"}, pairs[2])
	assert.Equal(t, [2]string{"Gas used", "50.0%"}, pairs[4])

	legacy := statusPairs("http://node", &chain.Status{Gas: &chain.GasInfo{GasPriceGwei: 5}})
	assert.Equal(t, [][2]string{{"RPC", "http://node"}, {"Gas price", "5.00 gwei"}}, legacy)
}

func TestEventsWindow(t *testing.T) {
	tests := []struct {
		name             string
		latest, from, to uint64
		wantFrom         uint64
		wantTo           *big.Int
		wantErr          bool
	}{
		{name: "defaults to latest minus range", latest: 12000, wantFrom: 7000},
		{name: "young chain starts at genesis", latest: 300, wantFrom: 0},
		{name: "to only ends window at to", latest: 0, to: 9000, wantFrom: 4000, wantTo: big.NewInt(9000)},
		{name: "to below range", to: 100, wantFrom: 0, wantTo: big.NewInt(100)},
		{name: "explicit from and to", from: 10, to: 20, wantFrom: 10, wantTo: big.NewInt(20)},
		{name: "from only", latest: 12000, from: 11000, wantFrom: 11000},
		{name: "from after to", from: 30, to: 20, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := eventsWindow(tt.latest, tt.from, tt.to, 5000)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
			if tt.to != 0 {
				assert.LessOrEqual(t, from, tt.to)
			}
		})
	}
}
