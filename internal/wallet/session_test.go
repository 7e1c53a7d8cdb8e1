package wallet_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
	"github.com/Mohsinsiddi/stakeforms/internal/wallet"
)

var bscTestnet = big.NewInt(97)

func twoSigners(t *testing.T) *wallet.Manager {
	t.Helper()
	mgr := wallet.NewManager()
	require.NoError(t, mgr.AddWithKey("a-first", hardhatKey0))
	require.NoError(t, mgr.AddWithKey("b-second", hardhatKey1))
	require.NoError(t, mgr.Add("c-watch", &wallet.Wallet{Address: watchAddr}))
	return mgr
}

func TestSessionEmptyBeforeConnect(t *testing.T) {
	s := wallet.NewSession(twoSigners(t), bscTestnet, "")
	assert.False(t, s.Connected())
	assert.Nil(t, s.Accounts())
}

func TestRequestAccountsOnlySigningWallets(t *testing.T) {
	s := wallet.NewSession(twoSigners(t), bscTestnet, "")

	accounts, err := s.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{
		common.HexToAddress(hardhatAddr0),
		common.HexToAddress(hardhatAddr1),
	}, accounts)
	assert.True(t, s.Connected())
	assert.Equal(t, accounts, s.Accounts())
}

func TestRequestAccountsPreferredFirst(t *testing.T) {
	s := wallet.NewSession(twoSigners(t), bscTestnet, "b-second")

	accounts, err := s.RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, common.HexToAddress(hardhatAddr1), accounts[0])
}

func TestRequestAccountsDefaultFirst(t *testing.T) {
	mgr := twoSigners(t)
	require.NoError(t, mgr.SetDefault("b-second"))
	s := wallet.NewSession(mgr, bscTestnet, "")

	accounts, err := s.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(hardhatAddr1), accounts[0])
}

func TestRequestAccountsNoSigners(t *testing.T) {
	mgr := wallet.NewManager()
	require.NoError(t, mgr.Add("watch", &wallet.Wallet{Address: watchAddr}))
	s := wallet.NewSession(mgr, bscTestnet, "")

	_, err := s.RequestAccounts(context.Background())
	assert.ErrorIs(t, err, wallet.ErrNoAccounts)
	assert.False(t, s.Connected())
}

func TestRequestAccountsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := wallet.NewSession(twoSigners(t), bscTestnet, "").RequestAccounts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAccountsReturnsCopy(t *testing.T) {
	s := wallet.NewSession(twoSigners(t), bscTestnet, "")
	_, err := s.RequestAccounts(context.Background())
	require.NoError(t, err)

	got := s.Accounts()
	got[0] = common.Address{}
	assert.Equal(t, common.HexToAddress(hardhatAddr0), s.Accounts()[0])
}

func TestSessionTransactOptsSigns(t *testing.T) {
	s := wallet.NewSession(twoSigners(t), bscTestnet, "")
	_, err := s.RequestAccounts(context.Background())
	require.NoError(t, err)

	from := common.HexToAddress(hardhatAddr0)
	opts, err := s.TransactOpts(context.Background(), from)
	require.NoError(t, err)
	assert.Equal(t, from, opts.From)
	require.NotNil(t, opts.Context)

	to := common.HexToAddress(watchAddr)
	tx := types.NewTx(&types.LegacyTx{Nonce: 0, To: &to, Gas: 21000, GasPrice: big.NewInt(1)})
	signed, err := opts.Signer(from, tx)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(bscTestnet), signed)
	require.NoError(t, err)
	assert.Equal(t, from, sender)
}

func TestSessionTransactOptsUnknownAccount(t *testing.T) {
	s := wallet.NewSession(twoSigners(t), bscTestnet, "")

	_, err := s.TransactOpts(context.Background(), common.HexToAddress(hardhatAddr0))
	assert.ErrorIs(t, err, contract.ErrSignerUnavailable, "not connected yet")

	_, err = s.RequestAccounts(context.Background())
	require.NoError(t, err)
	_, err = s.TransactOpts(context.Background(), common.HexToAddress(watchAddr))
	assert.ErrorIs(t, err, contract.ErrSignerUnavailable)
}

func TestSessionSatisfiesSignerSource(t *testing.T) {
	var _ contract.SignerSource = wallet.NewSession(wallet.NewManager(), bscTestnet, "")
}
