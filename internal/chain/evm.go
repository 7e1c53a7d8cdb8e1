package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrWrongChain is returned by Connect when the node serves another chain.
var ErrWrongChain = errors.New("endpoint serves a different chain")

// Ping dials url, fetches the latest block number and reports the round trip.
func Ping(ctx context.Context, url string) (latency time.Duration, blockNum uint64, err error) {
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return 0, 0, fmt.Errorf("dialing %s: %w", url, err)
	}
	defer c.Close()

	start := time.Now()
	blockNum, err = c.BlockNumber(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("eth_blockNumber on %s: %w", url, err)
	}
	return time.Since(start), blockNum, nil
}

// Connect dials url and verifies its chain id. A nil want skips the check.
func Connect(ctx context.Context, url string, want *big.Int) (*ethclient.Client, error) {
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	if want == nil {
		return c, nil
	}
	got, err := c.ChainID(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("eth_chainId on %s: %w", url, err)
	}
	if got.Cmp(want) != 0 {
		c.Close()
		return nil, fmt.Errorf("%w: %s reports %s, want %s", ErrWrongChain, url, got, want)
	}
	return c, nil
}
