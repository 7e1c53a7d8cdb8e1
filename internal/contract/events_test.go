package contract

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var staker = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func depositLog(t *testing.T, parsed abi.ABI, block uint64, amount int64) types.Log {
	t.Helper()
	ev := parsed.Events["Deposit"]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(amount))
	require.NoError(t, err)
	return types.Log{
		Address: stakingAddr,
		Topics: []common.Hash{
			ev.ID,
			common.BytesToHash(staker.Bytes()),
			crypto.Keccak256Hash([]byte("S1")),
		},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.HexToHash("0xaa"),
	}
}

func TestDecodeLogDeposit(t *testing.T) {
	parsed, err := Parse(stakingABI)
	require.NoError(t, err)

	ev, err := DecodeLog(parsed, depositLog(t, parsed, 7, 500))
	require.NoError(t, err)
	assert.Equal(t, "Deposit", ev.Name)
	assert.Equal(t, uint64(7), ev.BlockNumber)
	assert.Equal(t, []string{"user", "stakeName", "amount"}, ev.Order)
	assert.Equal(t, staker, ev.Fields["user"])
	assert.Equal(t, crypto.Keccak256Hash([]byte("S1")), ev.Fields["stakeName"])
	assert.Equal(t, big.NewInt(500), ev.Fields["amount"])
}

func TestDecodeLogTopicOnlyEvent(t *testing.T) {
	parsed, err := Parse(stakingABI)
	require.NoError(t, err)

	prev := common.HexToAddress("0x01")
	next := common.HexToAddress("0x02")
	lg := types.Log{Topics: []common.Hash{
		parsed.Events["OwnershipTransferred"].ID,
		common.BytesToHash(prev.Bytes()),
		common.BytesToHash(next.Bytes()),
	}}

	ev, err := DecodeLog(parsed, lg)
	require.NoError(t, err)
	assert.Equal(t, prev, ev.Fields["previousOwner"])
	assert.Equal(t, next, ev.Fields["newOwner"])
}

func TestDecodeLogErrors(t *testing.T) {
	parsed, err := Parse(stakingABI)
	require.NoError(t, err)

	_, err = DecodeLog(parsed, types.Log{})
	assert.ErrorContains(t, err, "anonymous log")

	_, err = DecodeLog(parsed, types.Log{Topics: []common.Hash{common.HexToHash("0xdead")}})
	assert.ErrorContains(t, err, "unknown event topic")
}

func TestDecodeLogsSkipsUnknownAndSorts(t *testing.T) {
	parsed, err := Parse(stakingABI)
	require.NoError(t, err)

	logs := []types.Log{
		depositLog(t, parsed, 9, 1),
		{Topics: []common.Hash{common.HexToHash("0xbeef")}, BlockNumber: 3},
		depositLog(t, parsed, 2, 2),
	}
	events := DecodeLogs(parsed, logs)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(2), events[0].BlockNumber)
	assert.Equal(t, uint64(9), events[1].BlockNumber)
}

func TestClientEvents(t *testing.T) {
	parsed, err := Parse(stakingABI)
	require.NoError(t, err)
	lg := depositLog(t, parsed, 12, 77)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		assert.Equal(t, "eth_getLogs", req.Method)

		topics := make([]string, len(lg.Topics))
		for i, tp := range lg.Topics {
			topics[i] = tp.Hex()
		}
		result := []map[string]any{{
			"address":          lg.Address.Hex(),
			"topics":           topics,
			"data":             hexutil.Encode(lg.Data),
			"blockNumber":      hexutil.EncodeUint64(lg.BlockNumber),
			"transactionHash":  lg.TxHash.Hex(),
			"transactionIndex": "0x0",
			"blockHash":        common.HexToHash("0xbb").Hex(),
			"logIndex":         "0x0",
			"removed":          false,
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
	}))
	defer srv.Close()

	ec, err := ethclient.Dial(srv.URL)
	require.NoError(t, err)
	defer ec.Close()

	c := NewClient(stakingAddr, parsed, ec, nil)
	events, err := c.Events(context.Background(), big.NewInt(0), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Deposit", events[0].Name)
	assert.Equal(t, uint64(12), events[0].BlockNumber)
	assert.Equal(t, big.NewInt(77), events[0].Fields["amount"])
}
