package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rxtech-lab/contract-harness/internal/api"
	"github.com/rxtech-lab/contract-harness/internal/config"
	"github.com/rxtech-lab/contract-harness/internal/logger"
	"github.com/rxtech-lab/contract-harness/internal/server"
	"github.com/rxtech-lab/contract-harness/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	// Ethereum testnet configuration
	TESTNET_RPC      = "http://localhost:8545"
	TESTNET_CHAIN_ID = 31337 // Anvil default
)

// TestSetup holds a gateway connected to a local development node.
type TestSetup struct {
	APIServer  *api.APIServer
	ServerPort int
	EthClient  *ethclient.Client
	httpClient *http.Client
	t          *testing.T
}

// RequireTestnet skips the test unless anvil answers on TESTNET_RPC.
func RequireTestnet(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, TESTNET_RPC)
	if err != nil {
		t.Skipf("Skipping e2e test: anvil not running on %s", TESTNET_RPC)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		t.Skipf("Skipping e2e test: cannot connect to network: %v", err)
	}
	if chainID.Cmp(big.NewInt(TESTNET_CHAIN_ID)) != 0 {
		t.Skipf("Skipping e2e test: wrong chain ID (got %s, expected %d)", chainID, TESTNET_CHAIN_ID)
	}
}

// NewTestSetup starts the gateway on a random local port.
func NewTestSetup(t *testing.T) *TestSetup {
	cfg := config.Config{
		Host:        "127.0.0.1",
		Port:        0,
		RPCURL:      TESTNET_RPC,
		PrivateKey:  config.DefaultPrivateKey,
		ChainID:     TESTNET_CHAIN_ID,
		SolcVersion: "0.8.24",
	}

	log := logger.Nop()
	hookService := services.NewHookService()
	require.NoError(t, server.RegisterHooks(hookService, server.InitializeHooks(log)...))

	chainService, artifacts, client, err := server.InitializeServices(context.Background(), cfg, hookService, log)
	require.NoError(t, err)

	apiServer := api.NewAPIServer(chainService, artifacts, log)
	port, err := apiServer.Start(cfg.Address())
	require.NoError(t, err)

	setup := &TestSetup{
		APIServer:  apiServer,
		ServerPort: port,
		EthClient:  client,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		t:          t,
	}
	t.Cleanup(setup.Cleanup)
	return setup
}

func (s *TestSetup) Cleanup() {
	if s.APIServer != nil {
		_ = s.APIServer.Shutdown()
	}
	if s.EthClient != nil {
		s.EthClient.Close()
	}
}

func (s *TestSetup) URL(path string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", s.ServerPort, path)
}

// Get issues a GET request and decodes the JSON body into T.
func Get[T any](s *TestSetup, path string) (T, int) {
	s.t.Helper()

	var out T
	resp, err := s.httpClient.Get(s.URL(path))
	require.NoError(s.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	require.NoError(s.t, json.Unmarshal(body, &out), string(body))
	return out, resp.StatusCode
}
