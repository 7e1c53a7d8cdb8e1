package contract

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Coerce converts raw user text into the Go value go-ethereum packs for k.
// It holds no state: the same input always yields an equal value. String
// values are kept verbatim; every other kind ignores surrounding whitespace.
func Coerce(k ParamKind, raw string) (any, error) {
	v, err := coerce(k, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidArgument, k.String(), raw, err)
	}
	return v, nil
}

func coerce(k ParamKind, s string) (any, error) {
	if k.Kind != KindString {
		s = strings.TrimSpace(s)
	}
	switch k.Kind {
	case KindAddress:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("not a hex address")
		}
		return common.HexToAddress(s), nil

	case KindUint, KindInt:
		return coerceInteger(k, s)

	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("expected true or false")
		}
		return b, nil

	case KindString:
		return s, nil

	case KindBytes:
		return decodeHex(s)

	case KindFixedBytes:
		b, err := decodeHex(s)
		if err != nil {
			return nil, err
		}
		if len(b) > k.Size {
			return nil, fmt.Errorf("%d bytes do not fit in bytes%d", len(b), k.Size)
		}
		arr := reflect.New(k.GoType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case KindArray:
		return coerceArray(k, s)
	}
	return nil, ErrUnsupportedType
}

func coerceInteger(k ParamKind, s string) (any, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("not an integer")
	}
	if k.Kind == KindUint {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value for unsigned type")
		}
		if n.BitLen() > k.Bits {
			return nil, fmt.Errorf("overflows uint%d", k.Bits)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(k.Bits-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("overflows int%d", k.Bits)
		}
	}

	// go-ethereum wants native integers for the 8/16/32/64-bit sizes and
	// *big.Int for everything else.
	switch k.GoType().Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(n.Uint64()).Convert(k.GoType()).Interface(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(n.Int64()).Convert(k.GoType()).Interface(), nil
	}
	return n, nil
}

func coerceArray(k ParamKind, s string) (any, error) {
	items, err := SplitList(s)
	if err != nil {
		return nil, err
	}
	if k.Size > 0 && len(items) != k.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", k.Size, len(items))
	}

	var out reflect.Value
	if k.Size > 0 {
		out = reflect.New(k.GoType()).Elem()
	} else {
		out = reflect.MakeSlice(k.GoType(), len(items), len(items))
	}
	for i, item := range items {
		v, err := coerce(*k.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(v))
	}
	return out.Interface(), nil
}

// SplitList parses a one-level list literal such as ['0xabc','0xdef'],
// ["a","b"], [1,2] or a bare comma-separated a,b. Single quotes are
// normalised to double quotes first.
func SplitList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		return []string{}, nil
	}
	if !strings.HasPrefix(s, "[") {
		return splitBare(s), nil
	}
	if !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("unterminated list %q", s)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &raw); err != nil {
		// Unquoted elements like [0xabc,0xdef] are not JSON.
		return splitBare(s[1 : len(s)-1]), nil
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		var str string
		if json.Unmarshal(r, &str) == nil {
			out[i] = str
			continue
		}
		out[i] = string(r)
	}
	return out, nil
}

func splitBare(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(parts[i]), `"'`)
	}
	return parts
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex")
	}
	return b, nil
}
