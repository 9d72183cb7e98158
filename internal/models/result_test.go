package models

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      common.HexToHash("0x01"),
		BlockHash:   common.HexToHash("0x02"),
		BlockNumber: big.NewInt(7),
	}
}

func TestNewDeploymentResult(t *testing.T) {
	address := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	result := NewDeploymentResult(address, sampleReceipt())

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", fields["address"])
	assert.Equal(t, common.HexToHash("0x01").Hex(), fields["txHash"])
	assert.Equal(t, float64(7), fields["blockNumber"])
	assert.Equal(t, common.HexToHash("0x02").Hex(), fields["blockHash"])
}

func TestNewTransferResult(t *testing.T) {
	from := common.HexToAddress("0x01")
	to := common.HexToAddress("0x02")
	result := NewTransferResult(from, to, sampleReceipt())

	assert.Equal(t, from.Hex(), result.From)
	assert.Equal(t, to.Hex(), result.To)
	assert.Equal(t, uint64(7), result.BlockNumber)
	assert.Len(t, result.TransactionHash, 66)
}

func TestNewWriteAndDestroyResult(t *testing.T) {
	write := NewWriteResult(sampleReceipt())
	assert.Equal(t, uint64(7), write.BlockNumber)

	destroy := NewDestroyResult(sampleReceipt())
	assert.Equal(t, uint64(7), destroy.BlockNumber)
	assert.Equal(t, common.HexToHash("0x02").Hex(), destroy.BlockHash)
}
