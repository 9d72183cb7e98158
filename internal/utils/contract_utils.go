package utils

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ParseABI converts a compiler ABI value (as returned in CompilationResult.Abi)
// into a go-ethereum ABI.
func ParseABI(raw any) (abi.ABI, error) {
	abiBytes, err := json.Marshal(raw)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to marshal ABI: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(string(abiBytes)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsedABI, nil
}

// DecodeBytecode decodes hex creation code with or without the 0x prefix.
func DecodeBytecode(bytecode string) ([]byte, error) {
	code, err := hex.DecodeString(strings.TrimPrefix(bytecode, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("empty bytecode")
	}
	return code, nil
}

// ConvertMethodArgs converts string arguments, as they arrive in a query
// string, into the Go values the ABI packer expects for the named method.
func ConvertMethodArgs(contractABI abi.ABI, method string, args ...string) ([]any, error) {
	m, ok := contractABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("function %s not found in ABI", method)
	}
	if len(args) != len(m.Inputs) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(m.Inputs), len(args))
	}

	converted := make([]any, len(args))
	for i, input := range m.Inputs {
		value, err := processArg(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("failed to process argument %d (%s): %w", i, input.Name, err)
		}
		converted[i] = value
	}
	return converted, nil
}

func processArg(argType abi.Type, value string) (any, error) {
	switch argType.T {
	case abi.AddressTy:
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("invalid address: %s", value)
		}
		return common.HexToAddress(value), nil

	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(value, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer: %s", value)
		}
		if argType.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("negative value for %s: %s", argType, value)
		}
		limit := argType.Size
		if argType.T == abi.IntTy {
			limit--
		}
		if n.BitLen() > limit {
			return nil, fmt.Errorf("value %s overflows %s", value, argType)
		}
		if argType.Size > 64 {
			return n, nil
		}
		return sizedInt(argType, n), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool: %s", value)
		}
		return b, nil

	case abi.StringTy:
		return value, nil

	case abi.BytesTy:
		b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid hex string: %w", err)
		}
		return b, nil

	default:
		return nil, fmt.Errorf("unsupported argument type: %v", argType)
	}
}

// sizedInt narrows n to the fixed-size Go integer go-ethereum packs for
// integer types of 64 bits or less.
func sizedInt(argType abi.Type, n *big.Int) any {
	if argType.T == abi.UintTy {
		v := n.Uint64()
		switch argType.Size {
		case 8:
			return uint8(v)
		case 16:
			return uint16(v)
		case 32:
			return uint32(v)
		default:
			return v
		}
	}
	v := n.Int64()
	switch argType.Size {
	case 8:
		return int8(v)
	case 16:
		return int16(v)
	case 32:
		return int32(v)
	default:
		return v
	}
}
