package services

import (
	"errors"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rxtech-lab/contract-harness/internal/models"
)

type HookService interface {
	AddHook(hook Hook) error
	OnTransactionConfirmed(txType models.TransactionType, receipt *types.Receipt) error
}

type hookService struct {
	hooks []Hook
}

func NewHookService() HookService {
	return &hookService{
		hooks: []Hook{},
	}
}

func (h *hookService) AddHook(hook Hook) error {
	if hook == nil {
		return errors.New("hook must not be nil")
	}
	h.hooks = append(h.hooks, hook)
	return nil
}

// OnTransactionConfirmed runs every hook that handles txType and stops at the first error.
func (h *hookService) OnTransactionConfirmed(txType models.TransactionType, receipt *types.Receipt) error {
	for _, hook := range h.hooks {
		if hook.CanHandle(txType) {
			if err := hook.OnTransactionConfirmed(txType, receipt); err != nil {
				return err
			}
		}
	}
	return nil
}
