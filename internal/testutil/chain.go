package testutil

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

const (
	// Anvil/hardhat development accounts #0 and #1
	TESTING_PK_1 = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	TESTING_PK_2 = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

// SimulatedChain is an in-process chain that mines a block for every
// transaction it receives.
type SimulatedChain struct {
	Backend *simulated.Backend
	Client  *AutoCommitClient
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// AutoCommitClient commits a block right after each accepted transaction so
// receipts are available to the next poll.
type AutoCommitClient struct {
	simulated.Client
	backend *simulated.Backend
}

func (c *AutoCommitClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.backend.Commit()
	return nil
}

// NewSimulatedChain starts a chain where TESTING_PK_1 holds 10000 ether. The
// backend is closed when the test finishes.
func NewSimulatedChain(t testing.TB) *SimulatedChain {
	t.Helper()

	key, err := crypto.HexToECDSA(strings.TrimPrefix(TESTING_PK_1, "0x"))
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	funds := new(big.Int).Mul(big.NewInt(10000), big.NewInt(1e18))
	backend := simulated.NewBackend(types.GenesisAlloc{
		address: {Balance: funds},
	})
	t.Cleanup(func() {
		backend.Close()
	})

	return &SimulatedChain{
		Backend: backend,
		Client:  &AutoCommitClient{Client: backend.Client(), backend: backend},
		Key:     key,
		Address: address,
	}
}

// SecondaryAddress returns the address of TESTING_PK_2, which starts unfunded.
func SecondaryAddress(t testing.TB) common.Address {
	t.Helper()
	key, err := crypto.HexToECDSA(strings.TrimPrefix(TESTING_PK_2, "0x"))
	require.NoError(t, err)
	return crypto.PubkeyToAddress(key.PublicKey)
}
