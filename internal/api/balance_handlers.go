package api

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/contract-harness/internal/models"
	"github.com/rxtech-lab/contract-harness/internal/utils"
)

// SendEthQuery carries the amount as a decimal ether string, e.g. "1.0".
type SendEthQuery struct {
	To    string `query:"to" validate:"required,eth_addr"`
	Value string `query:"value" validate:"required"`
}

func (s *APIServer) handleSendEth(c *fiber.Ctx) error {
	var query SendEthQuery
	if err := s.parseQuery(c, &query); err != nil {
		return err
	}

	amount, err := utils.ParseEther(query.Value)
	if err != nil {
		return err
	}

	result, err := s.chainService.SendValue(c.UserContext(), common.HexToAddress(query.To), amount)
	if err != nil {
		return err
	}

	s.logger.Info("value sent", "requestId", c.Locals("requestid"), "to", result.To, "wei", amount.String(), "blockNumber", result.BlockNumber)
	return c.JSON(result)
}

func (s *APIServer) handleBalance(c *fiber.Ctx) error {
	var query AddressQuery
	if err := s.parseQuery(c, &query); err != nil {
		return err
	}

	address := common.HexToAddress(query.Addr)
	balance, err := s.chainService.Balance(c.UserContext(), address)
	if err != nil {
		return err
	}

	return c.JSON(models.BalanceResult{
		Address: address.Hex(),
		Balance: balance.String(),
		Ether:   utils.FormatEther(balance),
	})
}
