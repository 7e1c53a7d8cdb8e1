package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
)

// GasInfo holds current gas pricing data for a chain.
type GasInfo struct {
	GasPrice     *big.Int // eth_gasPrice (Wei)
	BaseFee      *big.Int // EIP-1559 base fee (Wei), nil on legacy chains
	GasPriceGwei float64
	BaseFeeGwei  float64
}

// GasPriceDisplay returns the best gas price for display (Gwei) and whether
// the chain supports EIP-1559.
func (g *GasInfo) GasPriceDisplay() (gwei float64, isEIP1559 bool) {
	if g.BaseFee != nil && g.BaseFeeGwei > 0 {
		return g.BaseFeeGwei, true
	}
	return g.GasPriceGwei, false
}

// BlockInfo holds summary data for a block header.
type BlockInfo struct {
	Number    uint64
	Hash      string
	Timestamp uint64
	TxCount   int
	GasUsed   uint64
	GasLimit  uint64
	BaseFee   *big.Int // nil on pre-EIP-1559 chains
}

// Age returns a human-readable relative age string.
func (b *BlockInfo) Age() string {
	return b.age(time.Now())
}

func (b *BlockInfo) age(now time.Time) string {
	if b.Timestamp == 0 {
		return "unknown"
	}
	diff := uint64(0)
	if n := uint64(now.Unix()); n > b.Timestamp {
		diff = n - b.Timestamp
	}
	switch {
	case diff < 60:
		return fmt.Sprintf("%ds ago", diff)
	case diff < 3600:
		return fmt.Sprintf("%dm ago", diff/60)
	default:
		return fmt.Sprintf("%dh ago", diff/3600)
	}
}

// GasUsedPct returns gas utilisation as a percentage string.
func (b *BlockInfo) GasUsedPct() string {
	if b.GasLimit == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(b.GasUsed)/float64(b.GasLimit)*100)
}

// Status is a snapshot of the connected chain shown before sending
// transactions.
type Status struct {
	Gas   *GasInfo
	Block *BlockInfo
}

// rawBlock is the subset of eth_getBlockByNumber the status view needs.
type rawBlock struct {
	Number        hexutil.Uint64    `json:"number"`
	Hash          string            `json:"hash"`
	Timestamp     hexutil.Uint64    `json:"timestamp"`
	Transactions  []json.RawMessage `json:"transactions"`
	GasUsed       hexutil.Uint64    `json:"gasUsed"`
	GasLimit      hexutil.Uint64    `json:"gasLimit"`
	BaseFeePerGas *hexutil.Big      `json:"baseFeePerGas"`
}

// LatestBlock fetches the latest block header without transaction bodies.
func LatestBlock(ctx context.Context, c *ethclient.Client) (*BlockInfo, error) {
	var rb *rawBlock
	if err := c.Client().CallContext(ctx, &rb, "eth_getBlockByNumber", "latest", false); err != nil {
		return nil, fmt.Errorf("eth_getBlockByNumber: %w", err)
	}
	if rb == nil {
		return nil, fmt.Errorf("block not found")
	}
	info := &BlockInfo{
		Number:    uint64(rb.Number),
		Hash:      rb.Hash,
		Timestamp: uint64(rb.Timestamp),
		TxCount:   len(rb.Transactions),
		GasUsed:   uint64(rb.GasUsed),
		GasLimit:  uint64(rb.GasLimit),
	}
	if rb.BaseFeePerGas != nil {
		info.BaseFee = rb.BaseFeePerGas.ToInt()
	}
	return info, nil
}

// GetStatus fetches the gas price and the latest block. A missing block only
// drops the base fee and block half of the snapshot.
func GetStatus(ctx context.Context, c *ethclient.Client) (*Status, error) {
	gp, err := c.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice: %w", err)
	}
	st := &Status{Gas: &GasInfo{GasPrice: gp, GasPriceGwei: WeiToGwei(gp)}}

	block, err := LatestBlock(ctx, c)
	if err != nil {
		return st, nil
	}
	st.Block = block
	if block.BaseFee != nil {
		st.Gas.BaseFee = block.BaseFee
		st.Gas.BaseFeeGwei = WeiToGwei(block.BaseFee)
	}
	return st, nil
}

// WeiToGwei converts a Wei value to Gwei as float64.
func WeiToGwei(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		new(big.Float).SetFloat64(1e9),
	).Float64()
	return f
}
