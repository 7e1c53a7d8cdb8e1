package contract

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Built-in ABI IDs used by the console.
const (
	BuiltinStaking = "staking"
	BuiltinProxy   = "proxy"
	BuiltinBEP20   = "bep20"
)

// BuiltinKind describes a contract interface whose ABI is embedded in the
// binary. New built-ins register themselves via init() in their own
// <name>_abi.go file.
type BuiltinKind struct {
	ID          string     // machine key, e.g. "staking", "bep20"
	Name        string     // human label
	Description string     // one-line summary shown in `abi list`
	ABI         []ABIEntry // full ABI, ready to use
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the global registry.
// Call this from init() in the file that defines the ABI.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// GetBuiltinABI returns the ABI entries for a built-in ID, or nil if unknown.
func GetBuiltinABI(id string) []ABIEntry {
	b, ok := builtinRegistry[id]
	if !ok {
		return nil
	}
	return b.ABI
}

// ParseBuiltin returns the parsed go-ethereum ABI of a built-in.
func ParseBuiltin(id string) (abi.ABI, error) {
	b, ok := builtinRegistry[id]
	if !ok {
		return abi.ABI{}, fmt.Errorf("unknown built-in ABI %q", id)
	}
	return Parse(b.ABI)
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
