package utils

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestAccountAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	sampleABI = `[
		{"type":"function","name":"Put","inputs":[{"name":"newValue","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"setOwner","inputs":[{"name":"owner","type":"address"},{"name":"enabled","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"setSmall","inputs":[{"name":"a","type":"uint8"},{"name":"b","type":"int64"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"label","inputs":[{"name":"text","type":"string"},{"name":"blob","type":"bytes"}],"outputs":[],"stateMutability":"nonpayable"}
	]`
)

func parseSampleABI(t *testing.T) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(sampleABI))
	require.NoError(t, err)
	return parsed
}

func TestParseABI(t *testing.T) {
	raw := []any{
		map[string]any{
			"type":            "function",
			"name":            "value",
			"inputs":          []any{},
			"outputs":         []any{map[string]any{"name": "", "type": "uint256"}},
			"stateMutability": "view",
		},
	}

	parsed, err := ParseABI(raw)
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "value")

	_, err = ParseABI(map[string]any{"not": "an abi"})
	assert.Error(t, err)
}

func TestDecodeBytecode(t *testing.T) {
	code, err := DecodeBytecode("0x6080")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80}, code)

	code, err = DecodeBytecode("6080")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80}, code)

	_, err = DecodeBytecode("0x")
	assert.Error(t, err)

	_, err = DecodeBytecode("0xzz")
	assert.Error(t, err)
}

func TestConvertMethodArgs(t *testing.T) {
	parsed := parseSampleABI(t)

	t.Run("uint256 from decimal", func(t *testing.T) {
		args, err := ConvertMethodArgs(parsed, "Put", "42")
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.Equal(t, 0, big.NewInt(42).Cmp(args[0].(*big.Int)))

		_, err = parsed.Pack("Put", args...)
		assert.NoError(t, err)
	})

	t.Run("uint256 from hex", func(t *testing.T) {
		args, err := ConvertMethodArgs(parsed, "Put", "0xff")
		require.NoError(t, err)
		assert.Equal(t, 0, big.NewInt(255).Cmp(args[0].(*big.Int)))
	})

	t.Run("address and bool", func(t *testing.T) {
		args, err := ConvertMethodArgs(parsed, "setOwner", TestAccountAddress, "TRUE")
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(TestAccountAddress), args[0])
		assert.Equal(t, true, args[1])

		_, err = parsed.Pack("setOwner", args...)
		assert.NoError(t, err)
	})

	t.Run("small integers are narrowed", func(t *testing.T) {
		args, err := ConvertMethodArgs(parsed, "setSmall", "7", "-3")
		require.NoError(t, err)
		assert.Equal(t, uint8(7), args[0])
		assert.Equal(t, int64(-3), args[1])

		_, err = parsed.Pack("setSmall", args...)
		assert.NoError(t, err)
	})

	t.Run("string and bytes", func(t *testing.T) {
		args, err := ConvertMethodArgs(parsed, "label", "hello", "0x0102")
		require.NoError(t, err)
		assert.Equal(t, "hello", args[0])
		assert.Equal(t, []byte{1, 2}, args[1])
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ConvertMethodArgs(parsed, "missing", "1")
		assert.Error(t, err)

		_, err = ConvertMethodArgs(parsed, "Put")
		assert.Error(t, err)

		_, err = ConvertMethodArgs(parsed, "Put", "abc")
		assert.Error(t, err)

		_, err = ConvertMethodArgs(parsed, "Put", "-1")
		assert.Error(t, err)

		_, err = ConvertMethodArgs(parsed, "setSmall", "256", "0")
		assert.Error(t, err)

		_, err = ConvertMethodArgs(parsed, "setOwner", "0x123", "true")
		assert.Error(t, err)
	})

	t.Run("bools are parsed strictly", func(t *testing.T) {
		args, err := ConvertMethodArgs(parsed, "setOwner", TestAccountAddress, "false")
		require.NoError(t, err)
		assert.Equal(t, false, args[1])

		for _, value := range []string{"yes", "", "enabled"} {
			_, err = ConvertMethodArgs(parsed, "setOwner", TestAccountAddress, value)
			assert.ErrorContains(t, err, "invalid bool", value)
		}
	})
}
