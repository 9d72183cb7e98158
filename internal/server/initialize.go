package server

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rxtech-lab/contract-harness/internal/config"
	"github.com/rxtech-lab/contract-harness/internal/hooks"
	"github.com/rxtech-lab/contract-harness/internal/logger"
	"github.com/rxtech-lab/contract-harness/internal/services"
)

// InitializeServices compiles the contracts and connects the chain service to
// the configured node. The returned client must be closed by the caller.
func InitializeServices(ctx context.Context, cfg config.Config, hookService services.HookService, log logger.Logger) (services.ChainService, services.ArtifactService, *ethclient.Client, error) {
	artifacts, err := services.NewArtifactService(cfg.SolcVersion)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("contracts compiled", "solc", cfg.SolcVersion, "contracts", artifacts.Names())

	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.RPCURL, err)
	}

	key, err := cfg.Key()
	if err != nil {
		client.Close()
		return nil, nil, nil, err
	}

	chainService, err := services.NewChainService(client, artifacts, hookService, key, cfg.ChainID, log)
	if err != nil {
		client.Close()
		return nil, nil, nil, err
	}
	log.Info("chain client ready", "rpc", cfg.RPCURL, "sender", chainService.Sender().Hex())

	return chainService, artifacts, client, nil
}

func InitializeHooks(log logger.Logger) []services.Hook {
	return []services.Hook{
		hooks.NewConfirmationLogHook(log),
	}
}

func RegisterHooks(hookService services.HookService, registered ...services.Hook) error {
	for _, hook := range registered {
		if err := hookService.AddHook(hook); err != nil {
			return fmt.Errorf("failed to register hook: %w", err)
		}
	}
	return nil
}
