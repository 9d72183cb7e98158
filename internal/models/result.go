package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DeploymentResult summarizes a confirmed contract creation.
type DeploymentResult struct {
	Address         string `json:"address"`
	TransactionHash string `json:"txHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	BlockHash       string `json:"blockHash"`
}

// TransferResult summarizes a confirmed native-currency transfer.
type TransferResult struct {
	From            string `json:"from"`
	To              string `json:"to"`
	TransactionHash string `json:"txHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	BlockHash       string `json:"blockHash"`
}

// WriteResult summarizes a confirmed state-mutating contract call.
type WriteResult struct {
	BlockNumber     uint64 `json:"blockNumber"`
	TransactionHash string `json:"txHash"`
	BlockHash       string `json:"blockHash"`
}

type DestroyResult struct {
	BlockNumber     uint64 `json:"blockNumber"`
	BlockHash       string `json:"blockHash"`
	TransactionHash string `json:"txHash"`
}

type ValueResult struct {
	Address string `json:"address"`
	Value   string `json:"value"`
}

type BalanceResult struct {
	Address string `json:"address"`
	Balance string `json:"balance"` // wei
	Ether   string `json:"ether"`
}

type HealthResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func NewDeploymentResult(address common.Address, receipt *types.Receipt) DeploymentResult {
	return DeploymentResult{
		Address:         address.Hex(),
		TransactionHash: receipt.TxHash.Hex(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		BlockHash:       receipt.BlockHash.Hex(),
	}
}

func NewTransferResult(from, to common.Address, receipt *types.Receipt) TransferResult {
	return TransferResult{
		From:            from.Hex(),
		To:              to.Hex(),
		TransactionHash: receipt.TxHash.Hex(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		BlockHash:       receipt.BlockHash.Hex(),
	}
}

func NewWriteResult(receipt *types.Receipt) WriteResult {
	return WriteResult{
		BlockNumber:     receipt.BlockNumber.Uint64(),
		TransactionHash: receipt.TxHash.Hex(),
		BlockHash:       receipt.BlockHash.Hex(),
	}
}

func NewDestroyResult(receipt *types.Receipt) DestroyResult {
	return DestroyResult{
		BlockNumber:     receipt.BlockNumber.Uint64(),
		BlockHash:       receipt.BlockHash.Hex(),
		TransactionHash: receipt.TxHash.Hex(),
	}
}
