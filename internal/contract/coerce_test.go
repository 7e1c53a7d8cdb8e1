package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0x1234567890abcdef1234567890abcdef12345678"
	addrB = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
)

func mustKind(t *testing.T, typ string) ParamKind {
	t.Helper()
	k, err := ParseKind(typ)
	require.NoError(t, err)
	return k
}

func TestCoerceAddress(t *testing.T) {
	v, err := Coerce(mustKind(t, "address"), "  "+addrA+" ")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(addrA), v)

	_, err = Coerce(mustKind(t, "address"), "0xabc")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCoerceUnsigned(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		raw     string
		want    any
		wantErr bool
	}{
		{"uint128 decimal", "uint128", "262800000", big.NewInt(262800000), false},
		{"uint128 hex", "uint128", "0xff", big.NewInt(255), false},
		{"uint64 native", "uint64", "10", uint64(10), false},
		{"uint8 native", "uint8", "255", uint8(255), false},
		{"uint8 overflow", "uint8", "256", nil, true},
		{"negative", "uint128", "-1", nil, true},
		{"not a number", "uint128", "abc", nil, true},
		{"empty", "uint64", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Coerce(mustKind(t, tt.typ), tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestCoerceSigned(t *testing.T) {
	v, err := Coerce(mustKind(t, "int64"), "-5")
	require.NoError(t, err)
	assert.Equal(t, int64(-5), v)

	v, err = Coerce(mustKind(t, "int256"), "-5")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(-5), v)

	_, err = Coerce(mustKind(t, "int8"), "128")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	v, err = Coerce(mustKind(t, "int8"), "-128")
	require.NoError(t, err)
	assert.Equal(t, int8(-128), v)
}

func TestCoerceBool(t *testing.T) {
	k := mustKind(t, "bool")
	for raw, want := range map[string]bool{"true": true, "false": false, "1": true, "0": false, "TRUE": true} {
		v, err := Coerce(k, raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, v, raw)
	}
	_, err := Coerce(k, "yes")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCoerceStringIsVerbatim(t *testing.T) {
	v, err := Coerce(mustKind(t, "string"), "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", v)

	v, err = Coerce(mustKind(t, "string"), "  S1 ")
	require.NoError(t, err)
	assert.Equal(t, "  S1 ", v)

	v, err = Coerce(mustKind(t, "string[]"), `[" S1","S2 "]`)
	require.NoError(t, err)
	assert.Equal(t, []string{" S1", "S2 "}, v)
}

func TestCoerceTrimsNonStringKinds(t *testing.T) {
	v, err := Coerce(mustKind(t, "address"), "  "+addrA+"\n")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(addrA), v)

	v, err = Coerce(mustKind(t, "uint256"), " 42 ")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), v)

	v, err = Coerce(mustKind(t, "bool"), "\ttrue ")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Coerce(mustKind(t, "bytes"), " 0xbeef ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbe, 0xef}, v)
}

func TestCoerceBytes(t *testing.T) {
	v, err := Coerce(mustKind(t, "bytes"), "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)

	v, err = Coerce(mustKind(t, "bytes"), "")
	require.NoError(t, err)
	assert.Equal(t, []byte{}, v)

	_, err = Coerce(mustKind(t, "bytes"), "0xzz")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCoerceFixedBytes(t *testing.T) {
	v, err := Coerce(mustKind(t, "bytes4"), "0x01020304")
	require.NoError(t, err)
	assert.Equal(t, [4]byte{1, 2, 3, 4}, v)

	v, err = Coerce(mustKind(t, "bytes4"), "0x01")
	require.NoError(t, err)
	assert.Equal(t, [4]byte{1, 0, 0, 0}, v)

	_, err = Coerce(mustKind(t, "bytes4"), "0x0102030405")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCoerceAddressArray(t *testing.T) {
	v, err := Coerce(mustKind(t, "address[]"), "['"+addrA+"','"+addrB+"']")
	require.NoError(t, err)
	assert.Equal(t, []common.Address{common.HexToAddress(addrA), common.HexToAddress(addrB)}, v)
}

func TestCoerceBoolArray(t *testing.T) {
	for _, raw := range []string{"[true,false]", "['true','false']", "true,false", `["true", "false"]`} {
		v, err := Coerce(mustKind(t, "bool[]"), raw)
		require.NoError(t, err, raw)
		assert.Equal(t, []bool{true, false}, v, raw)
	}
}

func TestCoerceUintArrays(t *testing.T) {
	v, err := Coerce(mustKind(t, "uint64[]"), "[1, 2, 3]")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, v)

	v, err = Coerce(mustKind(t, "uint128[]"), "['10','20']")
	require.NoError(t, err)
	assert.Equal(t, []*big.Int{big.NewInt(10), big.NewInt(20)}, v)
}

func TestCoerceFixedArray(t *testing.T) {
	v, err := Coerce(mustKind(t, "uint8[2]"), "[1,2]")
	require.NoError(t, err)
	assert.Equal(t, [2]uint8{1, 2}, v)

	_, err = Coerce(mustKind(t, "uint8[2]"), "[1,2,3]")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCoerceArrayElementError(t *testing.T) {
	_, err := Coerce(mustKind(t, "address[]"), "['0xnope']")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "element 0")
}

func TestCoerceEmptyArray(t *testing.T) {
	v, err := Coerce(mustKind(t, "address[]"), "[]")
	require.NoError(t, err)
	assert.Equal(t, []common.Address{}, v)
}

func TestCoerceIsIdempotent(t *testing.T) {
	inputs := map[string]string{
		"address":   addrA,
		"uint128":   "1000",
		"bool":      "false",
		"string":    "S1",
		"address[]": "['" + addrA + "']",
	}
	for typ, raw := range inputs {
		k := mustKind(t, typ)
		first, err := Coerce(k, raw)
		require.NoError(t, err)
		second, err := Coerce(k, raw)
		require.NoError(t, err)
		assert.Equal(t, first, second, typ)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"['0xabc','0xdef']", []string{"0xabc", "0xdef"}},
		{`["a","b"]`, []string{"a", "b"}},
		{"[0xabc,0xdef]", []string{"0xabc", "0xdef"}},
		{"[1,2]", []string{"1", "2"}},
		{"a, b", []string{"a", "b"}},
		{"[]", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := SplitList(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := SplitList("[1,2")
	assert.Error(t, err)
}
