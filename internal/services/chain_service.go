package services

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rxtech-lab/contract-harness/internal/contracts"
	"github.com/rxtech-lab/contract-harness/internal/logger"
	"github.com/rxtech-lab/contract-harness/internal/models"
	"github.com/rxtech-lab/contract-harness/internal/utils"
)

var (
	ErrTransactionFailed = errors.New("transaction failed")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// Backend is the node connection the chain service talks to. Both
// *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ethereum.ChainIDReader
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// ChainService submits transactions signed by a single configured account
// and waits for their receipts.
type ChainService interface {
	// Sender is the address every transaction is sent from.
	Sender() common.Address
	Deploy(ctx context.Context, name string) (models.DeploymentResult, error)
	Destroy(ctx context.Context, name string, address common.Address) (models.DestroyResult, error)
	SendValue(ctx context.Context, to common.Address, amount *big.Int) (models.TransferResult, error)
	PutValue(ctx context.Context, address common.Address, value string) (models.WriteResult, error)
	GetValue(ctx context.Context, address common.Address) (*big.Int, error)
	Balance(ctx context.Context, address common.Address) (*big.Int, error)
}

type chainService struct {
	backend     Backend
	artifacts   ArtifactService
	hookService HookService
	key         *ecdsa.PrivateKey
	from        common.Address
	logger      logger.Logger

	chainIDMu sync.Mutex
	chainID   *big.Int
}

// NewChainService creates a ChainService without contacting the node. A zero
// chainID is resolved from the node on the first transaction.
func NewChainService(backend Backend, artifacts ArtifactService, hookService HookService, key *ecdsa.PrivateKey, chainID int64, log logger.Logger) (ChainService, error) {
	if key == nil {
		return nil, errors.New("signing key is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &chainService{
		backend:     backend,
		artifacts:   artifacts,
		hookService: hookService,
		key:         key,
		from:        crypto.PubkeyToAddress(key.PublicKey),
		logger:      log,
	}
	if chainID != 0 {
		s.chainID = big.NewInt(chainID)
	}
	return s, nil
}

func (s *chainService) Sender() common.Address {
	return s.from
}

func (s *chainService) Deploy(ctx context.Context, name string) (models.DeploymentResult, error) {
	artifact, err := s.artifacts.Get(name)
	if err != nil {
		return models.DeploymentResult{}, err
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return models.DeploymentResult{}, err
	}

	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, s.backend)
	if err != nil {
		return models.DeploymentResult{}, fmt.Errorf("failed to deploy %s: %w", name, err)
	}
	s.logger.Debug("deployment sent", "contract", name, "txHash", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := s.waitMined(ctx, tx, deploymentType(name))
	if err != nil {
		return models.DeploymentResult{}, err
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	return models.NewDeploymentResult(address, receipt), nil
}

func (s *chainService) Destroy(ctx context.Context, name string, address common.Address) (models.DestroyResult, error) {
	receipt, err := s.transact(ctx, name, address, models.TransactionTypeContractDestroy, "destroy")
	if err != nil {
		return models.DestroyResult{}, err
	}
	return models.NewDestroyResult(receipt), nil
}

func (s *chainService) PutValue(ctx context.Context, address common.Address, value string) (models.WriteResult, error) {
	artifact, err := s.artifacts.Get(contracts.Test)
	if err != nil {
		return models.WriteResult{}, err
	}

	args, err := utils.ConvertMethodArgs(artifact.ABI, "Put", value)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	receipt, err := s.transact(ctx, contracts.Test, address, models.TransactionTypeTestValueWrite, "Put", args...)
	if err != nil {
		return models.WriteResult{}, err
	}
	return models.NewWriteResult(receipt), nil
}

func (s *chainService) GetValue(ctx context.Context, address common.Address) (*big.Int, error) {
	artifact, err := s.artifacts.Get(contracts.Test)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(address, artifact.ABI, s.backend, s.backend, s.backend)

	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "value"); err != nil {
		return nil, fmt.Errorf("failed to read value from %s: %w", address.Hex(), err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty result reading value from %s", address.Hex())
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// SendValue transfers amount wei from the sender to the given address and
// waits for one confirmation.
func (s *chainService) SendValue(ctx context.Context, to common.Address, amount *big.Int) (models.TransferResult, error) {
	if amount == nil || amount.Sign() < 0 {
		return models.TransferResult{}, fmt.Errorf("%w: amount must be non-negative", ErrInvalidArgument)
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return models.TransferResult{}, err
	}

	nonce, err := s.backend.PendingNonceAt(ctx, s.from)
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := s.backend.SuggestGasPrice(ctx)
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	// Recipients may be contracts with a receive function, so the limit is
	// estimated instead of assuming 21000.
	gasLimit, err := s.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.from,
		To:    &to,
		Value: amount,
	})
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    amount,
		Gas:      gasLimit,
		GasPrice: gasPrice,
	})

	signedTx, err := opts.Signer(s.from, tx)
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := s.backend.SendTransaction(ctx, signedTx); err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	s.logger.Debug("transfer sent", "to", to.Hex(), "wei", amount.String(), "txHash", signedTx.Hash().Hex())

	receipt, err := s.waitMined(ctx, signedTx, models.TransactionTypeValueTransfer)
	if err != nil {
		return models.TransferResult{}, err
	}

	return models.NewTransferResult(s.from, to, receipt), nil
}

func (s *chainService) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := s.backend.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", address.Hex(), err)
	}
	return balance, nil
}

// transact attaches to a deployed contract and invokes a state-mutating method.
func (s *chainService) transact(ctx context.Context, name string, address common.Address, txType models.TransactionType, method string, args ...any) (*types.Receipt, error) {
	artifact, err := s.artifacts.Get(name)
	if err != nil {
		return nil, err
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(address, artifact.ABI, s.backend, s.backend, s.backend)
	tx, err := contract.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s.%s at %s: %w", name, method, address.Hex(), err)
	}
	s.logger.Debug("contract call sent", "contract", name, "method", method, "address", address.Hex(), "txHash", tx.Hash().Hex())

	return s.waitMined(ctx, tx, txType)
}

// waitMined blocks until the receipt is available and rejects reverted transactions.
func (s *chainService) waitMined(ctx context.Context, tx *types.Transaction, txType models.TransactionType) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, s.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s reverted in block %d", ErrTransactionFailed, tx.Hash().Hex(), receipt.BlockNumber.Uint64())
	}

	if s.hookService != nil {
		if err := s.hookService.OnTransactionConfirmed(txType, receipt); err != nil {
			s.logger.Warn("transaction hook failed", "txHash", tx.Hash().Hex(), "type", string(txType), "error", err)
		}
	}

	return receipt, nil
}

// resolveChainID caches the node's chain id once it has been read
// successfully; failed lookups are retried on the next call.
func (s *chainService) resolveChainID(ctx context.Context) (*big.Int, error) {
	s.chainIDMu.Lock()
	defer s.chainIDMu.Unlock()

	if s.chainID != nil {
		return s.chainID, nil
	}
	id, err := s.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	s.chainID = id
	s.logger.Debug("chain id resolved", "chainId", id.String())
	return id, nil
}

func (s *chainService) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	chainID, err := s.resolveChainID(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction signer: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

func deploymentType(name string) models.TransactionType {
	if name == contracts.Test {
		return models.TransactionTypeTestContractDeployment
	}
	return models.TransactionTypeTokenDeployment
}
