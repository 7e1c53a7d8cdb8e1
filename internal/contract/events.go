package contract

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Event is one decoded contract log.
type Event struct {
	Name        string
	BlockNumber uint64
	TxHash      common.Hash
	Fields      map[string]any
	// Order lists Fields keys in ABI declaration order.
	Order []string
}

// DecodeLog decodes a single log against the ABI's event definitions.
// Indexed dynamic values (string, bytes) come back as their topic hash.
func DecodeLog(parsed abi.ABI, lg types.Log) (*Event, error) {
	if len(lg.Topics) == 0 {
		return nil, fmt.Errorf("anonymous log in tx %s", lg.TxHash.Hex())
	}
	ev, err := parsed.EventByID(lg.Topics[0])
	if err != nil {
		return nil, fmt.Errorf("unknown event topic %s: %w", lg.Topics[0].Hex(), err)
	}

	fields := make(map[string]any, len(ev.Inputs))
	if len(lg.Data) > 0 {
		if err := parsed.UnpackIntoMap(fields, ev.Name, lg.Data); err != nil {
			return nil, fmt.Errorf("unpacking %s data: %w", ev.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, in := range ev.Inputs {
		if in.Indexed {
			indexed = append(indexed, in)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, lg.Topics[1:]); err != nil {
		return nil, fmt.Errorf("parsing %s topics: %w", ev.Name, err)
	}

	order := make([]string, 0, len(ev.Inputs))
	for _, in := range ev.Inputs {
		order = append(order, in.Name)
	}
	return &Event{
		Name:        ev.Name,
		BlockNumber: lg.BlockNumber,
		TxHash:      lg.TxHash,
		Fields:      fields,
		Order:       order,
	}, nil
}

// DecodeLogs decodes every log it recognises and skips the rest.
func DecodeLogs(parsed abi.ABI, logs []types.Log) []*Event {
	out := make([]*Event, 0, len(logs))
	for _, lg := range logs {
		ev, err := DecodeLog(parsed, lg)
		if err != nil {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BlockNumber < out[j].BlockNumber })
	return out
}

// Events fetches and decodes the contract's logs in [from, to]. A nil to
// means the latest block.
func (c *Client) Events(ctx context.Context, from, to *big.Int) ([]*Event, error) {
	logs, err := c.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: from,
		ToBlock:   to,
		Addresses: []common.Address{c.address},
	})
	if err != nil {
		return nil, fmt.Errorf("filtering logs: %w", err)
	}
	return DecodeLogs(c.abi, logs), nil
}
