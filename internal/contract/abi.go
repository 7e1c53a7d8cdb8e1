package contract

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"
)

// Errors returned by ABI lookups and the contract client.
var (
	ErrMethodNotFound    = errors.New("method not found in ABI")
	ErrNotReadFunction   = errors.New("not a read function")
	ErrNotWriteFunction  = errors.New("not a write function")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnsupportedType   = errors.New("unsupported ABI type")
	ErrReverted          = errors.New("execution reverted")
	ErrSignerUnavailable = errors.New("no signer for account")
)

// ABIEntry is one ABI entry (function, event, etc.).
type ABIEntry struct {
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"`
}

// ABIParam is a parameter in an ABI entry.
type ABIParam struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	InternalType string `json:"internalType,omitempty"`
	Indexed      bool   `json:"indexed,omitempty"`
}

// IsReadFunction returns true if the function is read-only (view/pure).
func (e ABIEntry) IsReadFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "view" || e.StateMutability == "pure")
}

// IsWriteFunction returns true if the function modifies state.
func (e ABIEntry) IsWriteFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "nonpayable" || e.StateMutability == "payable")
}

// Signature returns the canonical signature, e.g. "enterStaking(string,uint128)".
func (e ABIEntry) Signature() string {
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Type
	}
	return e.Name + "(" + strings.Join(types, ",") + ")"
}

// Selector returns the 4-byte function selector as 0x-prefixed hex.
func (e ABIEntry) Selector() string {
	if e.Type != "function" {
		return ""
	}
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(e.Signature()))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// Topic returns the event topic hash as 0x-prefixed hex.
func (e ABIEntry) Topic() string {
	if e.Type != "event" {
		return ""
	}
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(e.Signature()))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// FindFunction finds a function entry by name.
func FindFunction(entries []ABIEntry, name string) (*ABIEntry, error) {
	for i := range entries {
		if entries[i].Type == "function" && entries[i].Name == name {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, name)
}

// Parse converts entries into a go-ethereum ABI usable for packing and
// unpacking.
func Parse(entries []ABIEntry) (abi.ABI, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("encoding ABI: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(string(data)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing ABI: %w", err)
	}
	return parsed, nil
}

// CountFunctions returns the number of "function" type entries.
func CountFunctions(entries []ABIEntry) int {
	n := 0
	for _, e := range entries {
		if e.Type == "function" {
			n++
		}
	}
	return n
}
