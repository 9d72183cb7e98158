package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rxtech-lab/contract-harness/internal/contracts"
	"github.com/rxtech-lab/contract-harness/internal/models"
	"github.com/rxtech-lab/contract-harness/internal/utils"
)

var ErrUnknownContract = errors.New("unknown contract")

// ArtifactService holds compiled contracts. Artifacts are built once and
// reused for every deployment and attachment.
type ArtifactService interface {
	Get(name string) (*models.ContractArtifact, error)
	Names() []string
}

type artifactService struct {
	artifacts map[string]*models.ContractArtifact
}

// NewArtifactService compiles the embedded contract sources with the given
// solc version.
func NewArtifactService(solcVersion string) (ArtifactService, error) {
	sources, err := contracts.Sources()
	if err != nil {
		return nil, err
	}

	compilationResult, err := utils.CompileSolidity(solcVersion, sources)
	if err != nil {
		return nil, fmt.Errorf("failed to compile contracts: %w", err)
	}

	artifacts := make([]*models.ContractArtifact, 0, len(compilationResult.Bytecode))
	for name, bytecode := range compilationResult.Bytecode {
		abiData, exists := compilationResult.Abi[name]
		if !exists {
			return nil, fmt.Errorf("ABI for contract %s not found", name)
		}

		parsedABI, err := utils.ParseABI(abiData)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", name, err)
		}
		abiJSON, err := json.Marshal(abiData)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", name, err)
		}
		code, err := utils.DecodeBytecode(bytecode)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", name, err)
		}

		artifacts = append(artifacts, &models.ContractArtifact{
			Name:     name,
			ABI:      parsedABI,
			ABIJSON:  abiJSON,
			Bytecode: code,
		})
	}

	for _, required := range []string{contracts.GLDToken, contracts.Test} {
		if _, ok := compilationResult.Bytecode[required]; !ok {
			return nil, fmt.Errorf("contract %s not found in compilation result", required)
		}
	}

	return NewArtifactServiceWithArtifacts(artifacts...), nil
}

// NewArtifactServiceWithArtifacts serves already compiled artifacts.
func NewArtifactServiceWithArtifacts(artifacts ...*models.ContractArtifact) ArtifactService {
	s := &artifactService{artifacts: make(map[string]*models.ContractArtifact, len(artifacts))}
	for _, artifact := range artifacts {
		s.artifacts[artifact.Name] = artifact
	}
	return s
}

func (s *artifactService) Get(name string) (*models.ContractArtifact, error) {
	artifact, ok := s.artifacts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, name)
	}
	return artifact, nil
}

func (s *artifactService) Names() []string {
	names := make([]string, 0, len(s.artifacts))
	for name := range s.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
