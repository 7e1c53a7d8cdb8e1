package contract

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is what a Client needs from the chain connection.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// SignerSource hands out transaction options for an account.
type SignerSource interface {
	TransactOpts(ctx context.Context, from common.Address) (*bind.TransactOpts, error)
}

// Client calls and transacts against one deployed contract.
type Client struct {
	address common.Address
	abi     abi.ABI
	backend Backend
	bound   *bind.BoundContract
	signers SignerSource
}

// NewClient binds parsed to the contract at address. signers may be nil for a
// read-only client.
func NewClient(address common.Address, parsed abi.ABI, backend Backend, signers SignerSource) *Client {
	return &Client{
		address: address,
		abi:     parsed,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
		signers: signers,
	}
}

// Address returns the contract address.
func (c *Client) Address() common.Address { return c.address }

// ABI returns the contract ABI.
func (c *Client) ABI() abi.ABI { return c.abi }

// Method looks up a method by name.
func (c *Client) Method(name string) (abi.Method, bool) {
	m, ok := c.abi.Methods[name]
	return m, ok
}

// Call runs a read-only method and returns its unpacked outputs in
// declaration order.
func (c *Client) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}
	if !m.IsConstant() {
		return nil, fmt.Errorf("%w: %s (stateMutability: %s)", ErrNotReadFunction, method, m.StateMutability)
	}
	if _, err := c.abi.Pack(method, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var out []any
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}
	return out, nil
}

// Send signs a transaction for from, broadcasts it and waits until it is
// mined. A mined-but-failed transaction returns the receipt and ErrReverted.
func (c *Client) Send(ctx context.Context, from common.Address, method string, args ...any) (*types.Receipt, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}
	if m.IsConstant() {
		return nil, fmt.Errorf("%w: %s", ErrNotWriteFunction, method)
	}
	if _, err := c.abi.Pack(method, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if c.signers == nil {
		return nil, fmt.Errorf("%w: %s", ErrSignerUnavailable, from.Hex())
	}

	opts, err := c.signers.TransactOpts(ctx, from)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	tx, err := c.bound.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("sending %s: %w", method, err)
	}

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if err := checkReceipt(receipt); err != nil {
		return receipt, fmt.Errorf("%s: %w", method, err)
	}
	return receipt, nil
}

func checkReceipt(r *types.Receipt) error {
	if r.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("%w (tx %s)", ErrReverted, r.TxHash.Hex())
	}
	return nil
}
