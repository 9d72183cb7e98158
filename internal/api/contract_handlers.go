package api

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/contract-harness/internal/contracts"
	"github.com/rxtech-lab/contract-harness/internal/models"
)

type AddressQuery struct {
	Addr string `query:"addr" validate:"required,eth_addr"`
}

// PutTestValueQuery carries the value as a decimal (or 0x hex) uint256.
// Test.Put takes a single argument, so an index parameter from older
// clients is not supported: it is ignored and logged at debug level.
type PutTestValueQuery struct {
	Addr  string `query:"addr" validate:"required,eth_addr"`
	Value string `query:"value" validate:"required"`
}

type ContractArtifactResponse struct {
	Name     string          `json:"name"`
	ABI      json.RawMessage `json:"abi"`
	Bytecode string          `json:"bytecode"`
}

func (s *APIServer) handleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.HealthResponse{Success: true})
}

func (s *APIServer) handleDeployContract(c *fiber.Ctx) error {
	return s.deploy(c, contracts.GLDToken)
}

func (s *APIServer) handleDeployTestContract(c *fiber.Ctx) error {
	return s.deploy(c, contracts.Test)
}

func (s *APIServer) handleDestroyContract(c *fiber.Ctx) error {
	return s.destroy(c, contracts.GLDToken)
}

func (s *APIServer) handleDestroyTestContract(c *fiber.Ctx) error {
	return s.destroy(c, contracts.Test)
}

func (s *APIServer) handlePutTestValue(c *fiber.Ctx) error {
	var query PutTestValueQuery
	if err := s.parseQuery(c, &query); err != nil {
		return err
	}

	if index := c.Query("index"); index != "" {
		s.logger.Debug("ignoring index query parameter", "requestId", c.Locals("requestid"), "index", strings.Clone(index))
	}

	result, err := s.chainService.PutValue(c.UserContext(), common.HexToAddress(query.Addr), query.Value)
	if err != nil {
		return err
	}

	s.logger.Info("test value stored", "requestId", c.Locals("requestid"), "address", query.Addr, "value", query.Value, "blockNumber", result.BlockNumber)
	return c.JSON(result)
}

func (s *APIServer) handleGetTestValue(c *fiber.Ctx) error {
	var query AddressQuery
	if err := s.parseQuery(c, &query); err != nil {
		return err
	}

	address := common.HexToAddress(query.Addr)
	value, err := s.chainService.GetValue(c.UserContext(), address)
	if err != nil {
		return err
	}

	return c.JSON(models.ValueResult{
		Address: address.Hex(),
		Value:   value.String(),
	})
}

// handleContractArtifact serves the cached ABI and creation bytecode
func (s *APIServer) handleContractArtifact(c *fiber.Ctx) error {
	artifact, err := s.artifacts.Get(c.Params("name"))
	if err != nil {
		return err
	}

	return c.JSON(ContractArtifactResponse{
		Name:     artifact.Name,
		ABI:      artifact.ABIJSON,
		Bytecode: "0x" + common.Bytes2Hex(artifact.Bytecode),
	})
}

func (s *APIServer) deploy(c *fiber.Ctx, name string) error {
	result, err := s.chainService.Deploy(c.UserContext(), name)
	if err != nil {
		return err
	}

	s.logger.Info("contract deployed", "requestId", c.Locals("requestid"), "contract", name, "address", result.Address, "blockNumber", result.BlockNumber)
	return c.JSON(result)
}

func (s *APIServer) destroy(c *fiber.Ctx, name string) error {
	var query AddressQuery
	if err := s.parseQuery(c, &query); err != nil {
		return err
	}

	result, err := s.chainService.Destroy(c.UserContext(), name, common.HexToAddress(query.Addr))
	if err != nil {
		return err
	}

	s.logger.Info("contract destroyed", "requestId", c.Locals("requestid"), "contract", name, "address", query.Addr, "blockNumber", result.BlockNumber)
	return c.JSON(result)
}

func (s *APIServer) parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query: "+err.Error())
	}
	return s.validator.Struct(out)
}
