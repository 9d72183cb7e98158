package hooks

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rxtech-lab/contract-harness/internal/logger"
	"github.com/rxtech-lab/contract-harness/internal/models"
	"github.com/rxtech-lab/contract-harness/internal/services"
)

// ConfirmationLogHook writes one structured log line per confirmed transaction.
type ConfirmationLogHook struct {
	logger logger.Logger
}

// CanHandle implements Hook.
func (h *ConfirmationLogHook) CanHandle(txType models.TransactionType) bool {
	switch txType {
	case models.TransactionTypeTokenDeployment,
		models.TransactionTypeTestContractDeployment,
		models.TransactionTypeContractDestroy,
		models.TransactionTypeValueTransfer,
		models.TransactionTypeTestValueWrite:
		return true
	}
	return false
}

// OnTransactionConfirmed implements Hook.
func (h *ConfirmationLogHook) OnTransactionConfirmed(txType models.TransactionType, receipt *types.Receipt) error {
	keyValues := []any{
		"type", string(txType),
		"txHash", receipt.TxHash.Hex(),
		"blockNumber", receipt.BlockNumber.Uint64(),
		"gasUsed", receipt.GasUsed,
	}
	if receipt.ContractAddress != (common.Address{}) {
		keyValues = append(keyValues, "contractAddress", receipt.ContractAddress.Hex())
	}
	h.logger.Info("transaction confirmed", keyValues...)
	return nil
}

func NewConfirmationLogHook(log logger.Logger) services.Hook {
	return &ConfirmationLogHook{
		logger: log,
	}
}
