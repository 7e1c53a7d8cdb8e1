package contract

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Kind is the closed set of parameter shapes the console can coerce.
type Kind int

const (
	KindAddress Kind = iota + 1
	KindUint
	KindInt
	KindBool
	KindString
	KindBytes
	KindFixedBytes
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return "bytesN"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// ParamKind is the typed shape of one ABI input.
//
// Bits is set for KindUint/KindInt, Size for KindFixedBytes and for
// fixed-length arrays (0 means a dynamic slice), Elem for KindArray.
type ParamKind struct {
	Kind Kind
	Bits int
	Size int
	Elem *ParamKind

	typ abi.Type
}

// ParseKind maps a solidity type string ("uint128", "address[]", ...) to its
// ParamKind. Tuples and function types are rejected.
func ParseKind(solType string) (ParamKind, error) {
	t, err := abi.NewType(solType, "", nil)
	if err != nil {
		return ParamKind{}, fmt.Errorf("%w: %s", ErrUnsupportedType, solType)
	}
	return kindOf(t)
}

// KindOf returns the ParamKind of an already-parsed ABI type.
func KindOf(t abi.Type) (ParamKind, error) {
	return kindOf(t)
}

func kindOf(t abi.Type) (ParamKind, error) {
	k := ParamKind{typ: t}
	switch t.T {
	case abi.AddressTy:
		k.Kind = KindAddress
	case abi.UintTy:
		k.Kind, k.Bits = KindUint, t.Size
	case abi.IntTy:
		k.Kind, k.Bits = KindInt, t.Size
	case abi.BoolTy:
		k.Kind = KindBool
	case abi.StringTy:
		k.Kind = KindString
	case abi.BytesTy:
		k.Kind = KindBytes
	case abi.FixedBytesTy:
		k.Kind, k.Size = KindFixedBytes, t.Size
	case abi.SliceTy, abi.ArrayTy:
		elem, err := kindOf(*t.Elem)
		if err != nil {
			return ParamKind{}, err
		}
		k.Kind, k.Elem = KindArray, &elem
		if t.T == abi.ArrayTy {
			k.Size = t.Size
		}
	default:
		return ParamKind{}, fmt.Errorf("%w: %s", ErrUnsupportedType, t.String())
	}
	return k, nil
}

// String returns the solidity spelling of the kind.
func (k ParamKind) String() string {
	return k.typ.String()
}

// GoType is the Go type go-ethereum expects when packing this kind.
func (k ParamKind) GoType() reflect.Type {
	return k.typ.GetType()
}

// Example returns an input hint for the kind, used when a form has no
// placeholder text of its own.
func (k ParamKind) Example() string {
	switch k.Kind {
	case KindAddress:
		return "0x… (42 chars)"
	case KindUint:
		return fmt.Sprintf("0 … 2^%d-1", k.Bits)
	case KindInt:
		return "signed integer"
	case KindBool:
		return "true | false"
	case KindBytes, KindFixedBytes:
		return "0x hex"
	case KindArray:
		return "['…','…']"
	}
	return "text"
}
