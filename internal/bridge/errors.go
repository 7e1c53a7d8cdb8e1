package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

var (
	ErrNoABI              = errors.New("no ABI loaded for section")
	ErrUnknownMethod      = errors.New("method not in ABI")
	ErrArityMismatch      = errors.New("placeholder count does not match ABI inputs")
	ErrMutabilityMismatch = errors.New("method mutability does not match its section")
	ErrNoClient           = errors.New("no contract client for section")
	ErrNoAccount          = errors.New("no connected account")
	ErrNotRendered        = errors.New("form was not rendered by this bridge")
)

// FaultKind classifies an invocation failure.
type FaultKind string

const (
	// FaultProvider: no account, the signer refused, or the RPC endpoint failed.
	FaultProvider FaultKind = "provider"
	// FaultRevert: the contract rejected the call or gas estimation failed.
	FaultRevert FaultKind = "revert"
	// FaultMarshal: user input could not be turned into call arguments.
	FaultMarshal FaultKind = "marshal"
	// FaultApproval: the token approval issued before the primary call failed.
	FaultApproval FaultKind = "approval"
)

// Fault is the serialisable form of an invocation error.
type Fault struct {
	Kind    FaultKind `json:"kind"`
	Method  string    `json:"method"`
	Message string    `json:"message"`
	Cause   *Fault    `json:"cause,omitempty"`

	err error
}

func (f *Fault) Error() string {
	if f.Cause != nil {
		return string(f.Kind) + ": " + f.Method + ": " + f.Cause.Error()
	}
	return string(f.Kind) + ": " + f.Method + ": " + f.Message
}

func (f *Fault) Unwrap() error { return f.err }

// JSON renders the fault the way it is written into an output slot.
func (f *Fault) JSON() string {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return f.Error()
	}
	return string(b)
}

// approvalError marks a failure of the prerequisite approval.
type approvalError struct{ err error }

func (e *approvalError) Error() string { return "approval: " + e.err.Error() }
func (e *approvalError) Unwrap() error { return e.err }

// Classify turns an invocation error into a Fault for method.
func Classify(method string, err error) *Fault {
	var ae *approvalError
	if errors.As(err, &ae) {
		return &Fault{
			Kind:    FaultApproval,
			Method:  method,
			Message: ae.Error(),
			Cause:   Classify("approve", ae.err),
			err:     err,
		}
	}
	return &Fault{Kind: classifyKind(err), Method: method, Message: err.Error(), err: err}
}

func classifyKind(err error) FaultKind {
	switch {
	case errors.Is(err, contract.ErrInvalidArgument),
		errors.Is(err, contract.ErrUnsupportedType),
		errors.Is(err, ErrArityMismatch):
		return FaultMarshal
	case errors.Is(err, contract.ErrReverted):
		return FaultRevert
	case errors.Is(err, ErrNoAccount),
		errors.Is(err, ErrNoClient),
		errors.Is(err, contract.ErrSignerUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return FaultProvider
	}
	if strings.Contains(strings.ToLower(err.Error()), "revert") {
		return FaultRevert
	}
	return FaultProvider
}
