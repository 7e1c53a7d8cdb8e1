package cmd

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Mohsinsiddi/stakeforms/internal/bridge"
	"github.com/Mohsinsiddi/stakeforms/internal/chain"
	"github.com/Mohsinsiddi/stakeforms/internal/config"
	"github.com/Mohsinsiddi/stakeforms/internal/contract"
	"github.com/Mohsinsiddi/stakeforms/internal/logging"
	"github.com/Mohsinsiddi/stakeforms/internal/rpc"
	"github.com/Mohsinsiddi/stakeforms/internal/wallet"
)

// runtime is everything an invocation needs: the connection, the wallet
// session and a bridge bound to the configured contracts.
type runtime struct {
	chain   *chain.Chain
	mode    string
	rpcURL  string
	client  *ethclient.Client
	session *wallet.Session
	bridge  *bridge.Bridge
	table   *bridge.Table
}

func (r *runtime) Close() {
	if r.client != nil {
		r.client.Close()
	}
}

// loadABIs returns the staking and proxy ABIs keyed by built-in id. A
// configured abi_path replaces the embedded staking ABI.
func loadABIs(c *config.Config) (map[string]abi.ABI, error) {
	abis := make(map[string]abi.ABI, 2)
	for _, id := range []string{contract.BuiltinStaking, contract.BuiltinProxy} {
		parsed, err := contract.ParseBuiltin(id)
		if err != nil {
			return nil, err
		}
		abis[id] = parsed
	}
	if c.ABIPath != "" {
		entries, err := contract.LoadFromArtifact(c.ABIPath)
		if err != nil {
			return nil, err
		}
		parsed, err := contract.Parse(entries)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", c.ABIPath, err)
		}
		abis[contract.BuiltinStaking] = parsed
	}
	return abis, nil
}

// loadTable builds and validates the descriptor table against the ABIs.
func loadTable(c *config.Config) (*bridge.Table, map[string]abi.ABI, error) {
	abis, err := loadABIs(c)
	if err != nil {
		return nil, nil, err
	}
	table, err := bridge.BuildTable(bridge.DefaultForms(), abis, bridge.HelpText)
	if err != nil {
		return nil, nil, fmt.Errorf("descriptor table: %w", err)
	}
	return table, abis, nil
}

func resolveChain(c *config.Config) (*chain.Chain, error) {
	ch, err := chain.NewRegistry().GetByName(c.Network)
	if err != nil {
		return nil, fmt.Errorf("unknown network %q (run `stakeforms network list`)", c.Network)
	}
	return ch, nil
}

// rpcCandidates lists custom endpoints before the built-in ones.
func rpcCandidates(c *config.Config, ch *chain.Chain) []string {
	urls := append([]string{}, c.GetRPCs(ch.Name)...)
	return append(urls, ch.RPCs(c.NetworkMode)...)
}

// dial selects an endpoint and verifies it serves the configured chain.
func dial(ctx context.Context, c *config.Config) (*ethclient.Client, *chain.Chain, string, error) {
	ch, err := resolveChain(c)
	if err != nil {
		return nil, nil, "", err
	}
	urls := rpcCandidates(c, ch)
	if len(urls) == 0 {
		return nil, nil, "", fmt.Errorf("no RPC for %s %s (add one with `stakeforms rpc add %s <url>`)", ch.Name, c.NetworkMode, ch.Name)
	}

	selectCtx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	url, err := rpc.Select(selectCtx, urls, c.RPCAlgorithm)
	cancel()
	if err != nil {
		return nil, nil, "", err
	}

	connectCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()
	client, err := chain.Connect(connectCtx, url, ch.ID(c.NetworkMode))
	if err != nil {
		return nil, nil, "", err
	}
	return client, ch, url, nil
}

// newWalletManager opens the wallet list. withKeys also opens the keyring,
// which may prompt for a password on the file backend.
func newWalletManager(c *config.Config, withKeys bool) (*wallet.Manager, error) {
	opts := []wallet.Option{wallet.WithStore(wallet.NewJSONStore(c.WalletsPath()))}
	if withKeys {
		ks, err := wallet.OpenKeystore(c.Dir())
		if err != nil {
			return nil, err
		}
		opts = append(opts, wallet.WithKeystore(ks))
	}
	return wallet.NewManager(opts...), nil
}

// newRuntime connects and wires the bridge. The session is returned
// disconnected; callers decide when to request accounts.
func newRuntime(ctx context.Context, c *config.Config) (*runtime, error) {
	table, abis, err := loadTable(c)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"staking_address", "token_address"} {
		v, _ := c.Get(key)
		if !common.IsHexAddress(v) {
			return nil, fmt.Errorf("%s %q is not a hex address", key, v)
		}
	}

	client, ch, url, err := dial(ctx, c)
	if err != nil {
		return nil, err
	}

	mgr, err := newWalletManager(c, true)
	if err != nil {
		client.Close()
		return nil, err
	}
	session := wallet.NewSession(mgr, ch.ID(c.NetworkMode), c.DefaultWallet)

	stakingAddr := common.HexToAddress(c.StakingAddress)
	bep20, err := contract.ParseBuiltin(contract.BuiltinBEP20)
	if err != nil {
		client.Close()
		return nil, err
	}
	staking := contract.NewClient(stakingAddr, abis[contract.BuiltinStaking], client, session)
	// The staking contract sits behind the proxy, so both share one address.
	proxy := contract.NewClient(stakingAddr, abis[contract.BuiltinProxy], client, session)
	token := contract.NewClient(common.HexToAddress(c.TokenAddress), bep20, client, session)

	opts := []bridge.Option{bridge.WithLogger(logging.WithComponent("bridge"))}
	if c.ApprovalMethod != "" {
		opts = append(opts, bridge.WithApproval(&bridge.Approval{
			Method:  c.ApprovalMethod,
			Token:   token,
			Spender: stakingAddr,
		}))
	}
	b := bridge.New(session, map[string]bridge.ContractClient{
		contract.BuiltinStaking: staking,
		contract.BuiltinProxy:   proxy,
	}, opts...)

	log := logging.WithComponent("cmd")
	log.Info().
		Str("network", ch.Name).Str("mode", c.NetworkMode).Str("rpc", url).
		Str("staking", stakingAddr.Hex()).Msg("runtime ready")

	return &runtime{
		chain:   ch,
		mode:    c.NetworkMode,
		rpcURL:  url,
		client:  client,
		session: session,
		bridge:  b,
		table:   table,
	}, nil
}
