package chain

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeiToGwei(t *testing.T) {
	tests := []struct {
		wei  *big.Int
		want float64
	}{
		{nil, 0},
		{big.NewInt(0), 0},
		{big.NewInt(1_000_000_000), 1},
		{big.NewInt(3_500_000_000), 3.5},
		{new(big.Int).Mul(big.NewInt(100), big.NewInt(1_000_000_000)), 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WeiToGwei(tt.wei), 0.0001)
	}
}

func TestGasPriceDisplay(t *testing.T) {
	legacy := &GasInfo{GasPrice: big.NewInt(1_000_000_000), GasPriceGwei: 1}
	gwei, eip1559 := legacy.GasPriceDisplay()
	assert.InDelta(t, 1.0, gwei, 0.001)
	assert.False(t, eip1559)

	london := &GasInfo{GasPriceGwei: 2, BaseFee: big.NewInt(3_000_000_000), BaseFeeGwei: 3}
	gwei, eip1559 = london.GasPriceDisplay()
	assert.InDelta(t, 3.0, gwei, 0.001)
	assert.True(t, eip1559)

	// A zero base fee falls back to the legacy price.
	zero := &GasInfo{GasPriceGwei: 5, BaseFee: big.NewInt(0)}
	gwei, eip1559 = zero.GasPriceDisplay()
	assert.InDelta(t, 5.0, gwei, 0.001)
	assert.False(t, eip1559)
}

func TestBlockInfoAge(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		ago  uint64
		want string
	}{
		{5, "5s ago"},
		{59, "59s ago"},
		{60, "1m ago"},
		{120, "2m ago"},
		{3599, "59m ago"},
		{3600, "1h ago"},
		{7200, "2h ago"},
	}
	for _, tt := range tests {
		b := &BlockInfo{Timestamp: uint64(now.Unix()) - tt.ago}
		assert.Equal(t, tt.want, b.age(now))
	}

	assert.Equal(t, "unknown", (&BlockInfo{}).Age())
	future := &BlockInfo{Timestamp: uint64(now.Unix()) + 30}
	assert.Equal(t, "0s ago", future.age(now))
}

func TestGasUsedPct(t *testing.T) {
	tests := []struct {
		used, limit uint64
		want        string
	}{
		{1000, 0, "-"},
		{15_000_000, 15_000_000, "100.0%"},
		{15_000_000, 30_000_000, "50.0%"},
		{0, 30_000_000, "0.0%"},
		{12_345_678, 30_000_000, "41.2%"},
	}
	for _, tt := range tests {
		b := &BlockInfo{GasUsed: tt.used, GasLimit: tt.limit}
		assert.Equal(t, tt.want, b.GasUsedPct())
	}
}

func latestBlock(baseFee string) map[string]any {
	b := map[string]any{
		"number":       "0x10",
		"hash":         "0x" + "ab",
		"timestamp":    "0x6553f100",
		"transactions": []string{"0x01", "0x02"},
		"gasUsed":      "0x5208",
		"gasLimit":     "0xa410",
	}
	if baseFee != "" {
		b["baseFeePerGas"] = baseFee
	}
	return b
}

func TestGetStatusEIP1559(t *testing.T) {
	srv := rpcMock(t, map[string]any{
		"eth_gasPrice":         "0x3b9aca00",
		"eth_getBlockByNumber": latestBlock("0xb2d05e00"),
	})
	c, err := Connect(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	defer c.Close()

	st, err := GetStatus(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, st.Block)
	assert.Equal(t, uint64(16), st.Block.Number)
	assert.Equal(t, 2, st.Block.TxCount)
	assert.Equal(t, "50.0%", st.Block.GasUsedPct())

	gwei, eip1559 := st.Gas.GasPriceDisplay()
	assert.True(t, eip1559)
	assert.InDelta(t, 3.0, gwei, 0.001)
	assert.InDelta(t, 1.0, st.Gas.GasPriceGwei, 0.001)
}

func TestGetStatusLegacyChain(t *testing.T) {
	srv := rpcMock(t, map[string]any{
		"eth_gasPrice":         "0x12a05f200",
		"eth_getBlockByNumber": latestBlock(""),
	})
	c, err := Connect(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	defer c.Close()

	st, err := GetStatus(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, st.Block.BaseFee)
	gwei, eip1559 := st.Gas.GasPriceDisplay()
	assert.False(t, eip1559)
	assert.InDelta(t, 5.0, gwei, 0.001)
}

func TestGetStatusWithoutBlock(t *testing.T) {
	srv := rpcMock(t, map[string]any{"eth_gasPrice": "0x1"})
	c, err := Connect(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	defer c.Close()

	st, err := GetStatus(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, st.Block)
}

func TestGetStatusGasPriceError(t *testing.T) {
	srv := rpcMock(t, map[string]any{})
	c, err := Connect(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = GetStatus(context.Background(), c)
	assert.ErrorContains(t, err, "eth_gasPrice")
}

func TestLatestBlockNull(t *testing.T) {
	srv := rpcMock(t, map[string]any{"eth_getBlockByNumber": nil})
	c, err := Connect(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = LatestBlock(context.Background(), c)
	assert.ErrorContains(t, err, "block not found")
}
