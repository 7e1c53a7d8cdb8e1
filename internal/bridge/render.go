package bridge

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Entry is one "key: value" line of a structured value.
type Entry struct {
	Key   string
	Value string
}

// Value is a successful invocation result prepared for display: either a
// scalar or an ordered list of entries.
type Value struct {
	Scalar  string
	Entries []Entry
	// Sequence is set when the entries are the positions of a plain list.
	Sequence bool
}

// Structured reports whether the value renders as entries.
func (v Value) Structured() bool { return v.Entries != nil }

// String renders the value as it appears in an output slot.
func (v Value) String() string {
	if !v.Structured() {
		return v.Scalar
	}
	var b strings.Builder
	for _, e := range v.Entries {
		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(e.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// Result is either a Value or a Fault.
type Result struct {
	Value *Value
	Fault *Fault
}

// OK reports success.
func (r Result) OK() bool { return r.Fault == nil }

// String is the output slot text.
func (r Result) String() string {
	if r.Fault != nil {
		return r.Fault.JSON()
	}
	if r.Value != nil {
		return r.Value.String()
	}
	return ""
}

func success(v Value) Result { return Result{Value: &v} }
func failure(f *Fault) Result { return Result{Fault: f} }

// RenderOutputs shapes unpacked call outputs for display.
//
// A single output is a scalar unless it is a list, in which case every
// element gets its index as key. Several outputs become one entry each,
// keyed by the output name; the positional index is used only for outputs
// without a name, so named fields are never printed twice.
func RenderOutputs(outputs abi.Arguments, values []any) Value {
	switch len(values) {
	case 0:
		return Value{}
	case 1:
		if isList(values[0]) {
			rv := reflect.ValueOf(values[0])
			entries := make([]Entry, rv.Len())
			for i := range entries {
				entries[i] = Entry{Key: strconv.Itoa(i), Value: FormatValue(rv.Index(i).Interface())}
			}
			return Value{Entries: entries, Sequence: true}
		}
		return Value{Scalar: FormatValue(values[0])}
	}

	entries := make([]Entry, len(values))
	for i, v := range values {
		key := strconv.Itoa(i)
		if i < len(outputs) && outputs[i].Name != "" {
			key = outputs[i].Name
		}
		entries[i] = Entry{Key: key, Value: FormatValue(v)}
	}
	return Value{Entries: entries}
}

// RenderReceipt shapes a mined transaction for display.
func RenderReceipt(from common.Address, r *types.Receipt) Value {
	entries := []Entry{
		{"transactionHash", r.TxHash.Hex()},
		{"blockHash", r.BlockHash.Hex()},
		{"blockNumber", FormatValue(r.BlockNumber)},
		{"from", from.Hex()},
		{"gasUsed", strconv.FormatUint(r.GasUsed, 10)},
		{"status", strconv.FormatBool(r.Status == types.ReceiptStatusSuccessful)},
		{"logs", strconv.Itoa(len(r.Logs))},
	}
	if r.ContractAddress != (common.Address{}) {
		entries = append(entries, Entry{"contractAddress", r.ContractAddress.Hex()})
	}
	return Value{Entries: entries}
}

// FormatValue renders a single decoded ABI value. Lists are comma-joined.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *big.Int:
		if x == nil {
			return "0"
		}
		return x.String()
	case common.Address:
		return x.Hex()
	case common.Hash:
		return x.Hex()
	case []byte:
		return hexutil.Encode(x)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		fallthrough
	case reflect.Slice:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// isList is true for slices and arrays other than byte strings.
func isList(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	return rv.Type().Elem().Kind() != reflect.Uint8
}
