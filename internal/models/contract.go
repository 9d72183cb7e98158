package models

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ContractArtifact is a compiled contract ready to deploy or attach to.
type ContractArtifact struct {
	Name     string
	ABI      abi.ABI
	ABIJSON  json.RawMessage
	Bytecode []byte
}
