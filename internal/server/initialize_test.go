package server

import (
	"context"
	"testing"

	"github.com/rxtech-lab/contract-harness/internal/config"
	"github.com/rxtech-lab/contract-harness/internal/logger"
	"github.com/rxtech-lab/contract-harness/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHooks(t *testing.T) {
	hookService := services.NewHookService()

	hooks := InitializeHooks(logger.Nop())
	require.Len(t, hooks, 1)
	assert.NoError(t, RegisterHooks(hookService, hooks...))
	assert.Error(t, RegisterHooks(hookService, nil))
}

func TestInitializeServicesWithoutNode(t *testing.T) {
	cfg := config.Config{
		Host:        "127.0.0.1",
		Port:        3000,
		RPCURL:      "http://127.0.0.1:1",
		PrivateKey:  config.DefaultPrivateKey,
		SolcVersion: "0.8.24",
	}

	chainService, artifacts, client, err := InitializeServices(context.Background(), cfg, services.NewHookService(), logger.Nop())
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, chainService)
	assert.Contains(t, artifacts.Names(), "Test")
}
