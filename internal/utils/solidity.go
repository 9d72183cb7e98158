package utils

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rxtech-lab/contract-harness/internal/contracts"
	"github.com/rxtech-lab/solc-go"
)

type CompilationResult struct {
	Bytecode map[string]string
	Abi      map[string]any
}

// CompileSolidity compiles every source in one compiler run. Imports resolve
// against the embedded contract sources by file name.
func CompileSolidity(version string, sources map[string]string) (CompilationResult, error) {
	if len(sources) == 0 {
		return CompilationResult{}, errors.New("no sources to compile")
	}

	compiler, err := solc.NewWithVersion(version)
	if err != nil {
		return CompilationResult{}, err
	}

	opts := solc.CompileOptions{
		ImportCallback: func(u string) solc.ImportResult {
			content, err := contracts.ReadSource(path.Base(strings.TrimPrefix(u, "./")))
			if err != nil {
				return solc.ImportResult{
					Error: fmt.Sprintf("Import %s not found: %v", u, err),
				}
			}

			return solc.ImportResult{
				Contents: content,
			}
		},
	}

	input := make(map[string]solc.SourceIn, len(sources))
	for fileName, code := range sources {
		input[fileName] = solc.SourceIn{Content: code}
	}

	result, err := compiler.CompileWithOptions(&solc.Input{
		Language: "Solidity",
		Sources:  input,
		Settings: solc.Settings{
			OutputSelection: map[string]map[string][]string{
				"*": {
					"*": []string{"abi", "evm.bytecode"},
				},
			},
		},
	}, &opts)
	if err != nil {
		return CompilationResult{}, err
	}

	if len(result.Errors) > 0 {
		return CompilationResult{}, fmt.Errorf("compilation errors: %v", result.Errors)
	}

	bytecodeMap := make(map[string]string)
	abiMap := make(map[string]any)

	for fileName, contract := range result.Contracts {
		if _, ok := sources[fileName]; !ok {
			continue
		}
		for contractName, contract := range contract {
			bytecodeMap[contractName] = contract.EVM.Bytecode.Object
			abiMap[contractName] = contract.ABI
		}
	}

	return CompilationResult{
		Bytecode: bytecodeMap,
		Abi:      abiMap,
	}, nil
}
