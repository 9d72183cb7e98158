package services_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rxtech-lab/contract-harness/internal/models"
	"github.com/rxtech-lab/contract-harness/internal/services"
	"github.com/stretchr/testify/suite"
)

// mockHook implements the Hook interface for testing
type mockHook struct {
	supportedTypes []models.TransactionType
	callCount      int
	lastTxType     models.TransactionType
	lastReceipt    *types.Receipt
	shouldError    bool
	errorMessage   string
}

func newMockHook(supportedTypes ...models.TransactionType) *mockHook {
	return &mockHook{supportedTypes: supportedTypes}
}

func (m *mockHook) CanHandle(txType models.TransactionType) bool {
	for _, supportedType := range m.supportedTypes {
		if supportedType == txType {
			return true
		}
	}
	return false
}

func (m *mockHook) OnTransactionConfirmed(txType models.TransactionType, receipt *types.Receipt) error {
	m.callCount++
	m.lastTxType = txType
	m.lastReceipt = receipt

	if m.shouldError {
		return fmt.Errorf("%s", m.errorMessage)
	}
	return nil
}

type HookServiceTestSuite struct {
	suite.Suite
	hookService services.HookService
	receipt     *types.Receipt
}

func (suite *HookServiceTestSuite) SetupTest() {
	suite.hookService = services.NewHookService()
	suite.receipt = &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      common.HexToHash("0xabc"),
		BlockNumber: big.NewInt(1),
	}
}

func (suite *HookServiceTestSuite) TestAddNilHook() {
	suite.Error(suite.hookService.AddHook(nil))
}

func (suite *HookServiceTestSuite) TestDispatchByType() {
	deployHook := newMockHook(models.TransactionTypeTokenDeployment, models.TransactionTypeTestContractDeployment)
	transferHook := newMockHook(models.TransactionTypeValueTransfer)
	suite.Require().NoError(suite.hookService.AddHook(deployHook))
	suite.Require().NoError(suite.hookService.AddHook(transferHook))

	err := suite.hookService.OnTransactionConfirmed(models.TransactionTypeTokenDeployment, suite.receipt)
	suite.NoError(err)
	suite.Equal(1, deployHook.callCount)
	suite.Equal(models.TransactionTypeTokenDeployment, deployHook.lastTxType)
	suite.Equal(suite.receipt, deployHook.lastReceipt)
	suite.Equal(0, transferHook.callCount)

	err = suite.hookService.OnTransactionConfirmed(models.TransactionTypeValueTransfer, suite.receipt)
	suite.NoError(err)
	suite.Equal(1, deployHook.callCount)
	suite.Equal(1, transferHook.callCount)
}

func (suite *HookServiceTestSuite) TestNoMatchingHook() {
	hook := newMockHook(models.TransactionTypeValueTransfer)
	suite.Require().NoError(suite.hookService.AddHook(hook))

	suite.NoError(suite.hookService.OnTransactionConfirmed(models.TransactionTypeContractDestroy, suite.receipt))
	suite.Equal(0, hook.callCount)
}

func (suite *HookServiceTestSuite) TestStopsAtFirstError() {
	failing := newMockHook(models.TransactionTypeTestValueWrite)
	failing.shouldError = true
	failing.errorMessage = "hook failed"
	next := newMockHook(models.TransactionTypeTestValueWrite)
	suite.Require().NoError(suite.hookService.AddHook(failing))
	suite.Require().NoError(suite.hookService.AddHook(next))

	err := suite.hookService.OnTransactionConfirmed(models.TransactionTypeTestValueWrite, suite.receipt)
	suite.EqualError(err, "hook failed")
	suite.Equal(1, failing.callCount)
	suite.Equal(0, next.callCount)
}

func TestHookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HookServiceTestSuite))
}
