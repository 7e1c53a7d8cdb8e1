package bridge

import (
	"context"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

// DefaultApprovalMethod is the write method that moves tokens into the
// staking contract and therefore needs an allowance first.
const DefaultApprovalMethod = "enterStaking"

// Approval issues approve(Spender, amount) on Token before Method is sent.
// The amount is the method's last argument.
type Approval struct {
	Method  string
	Token   ContractClient
	Spender common.Address
}

// Applies reports whether d must be preceded by the approval.
func (a *Approval) Applies(d *MethodDescriptor) bool {
	return a != nil && d.Mutates && d.Category == CategoryWrite && d.Name == a.Method
}

// run sends the approval and waits for it to be mined.
func (a *Approval) run(ctx context.Context, from common.Address, args []any) error {
	if a.Token == nil {
		return fmt.Errorf("%w: token contract", ErrNoClient)
	}
	amount, err := approvalAmount(args)
	if err != nil {
		return err
	}
	if _, err := a.Token.Send(ctx, from, "approve", a.Spender, amount); err != nil {
		return err
	}
	return nil
}

func approvalAmount(args []any) (*big.Int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: approval needs an amount argument", contract.ErrInvalidArgument)
	}
	switch v := args[len(args)-1].(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case string:
		n, ok := new(big.Int).SetString(v, 0)
		if !ok {
			return nil, fmt.Errorf("%w: approval amount %q", contract.ErrInvalidArgument, v)
		}
		return n, nil
	}

	rv := reflect.ValueOf(args[len(args)-1])
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	}
	return nil, fmt.Errorf("%w: approval amount of type %T", contract.ErrInvalidArgument, args[len(args)-1])
}
