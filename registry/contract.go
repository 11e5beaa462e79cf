package registry

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// RegistryABI describes the three methods of the package registry contract.
const RegistryABI = `[
	{"type":"function","name":"register","stateMutability":"nonpayable",
	 "inputs":[{"name":"name","type":"string"}],
	 "outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"resolve","stateMutability":"view",
	 "inputs":[{"name":"name","type":"string"}],
	 "outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"publish","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"hash","type":"bytes32"},
		{"name":"major","type":"uint256"},
		{"name":"minor","type":"uint256"},
		{"name":"build","type":"uint256"},
		{"name":"bzz","type":"string"}],
	 "outputs":[]}
]`

const (
	methodRegister = "register"
	methodResolve  = "resolve"
	methodPublish  = "publish"
)

// ParseRegistryABI parses abiJSON and checks that it declares the registry methods.
// An empty string selects RegistryABI.
func ParseRegistryABI(abiJSON string) (abi.ABI, error) {
	if abiJSON == "" {
		abiJSON = RegistryABI
	}

	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("could not parse registry ABI: %w", err)
	}

	for _, name := range []string{methodRegister, methodResolve, methodPublish} {
		if _, ok := parsed.Methods[name]; !ok {
			return abi.ABI{}, fmt.Errorf("registry ABI is missing method %q", name)
		}
	}

	return parsed, nil
}

func bindRegistry(address common.Address, parsed abi.ABI, backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(address, parsed, backend, backend, backend)
}

// handleFromOutput converts the single bytes32 return value of register and resolve.
func handleFromOutput(out []interface{}) ([32]byte, error) {
	if len(out) != 1 {
		return [32]byte{}, fmt.Errorf("unexpected number of return values: %d", len(out))
	}

	handle, ok := abi.ConvertType(out[0], new([32]byte)).(*[32]byte)
	if !ok {
		return [32]byte{}, fmt.Errorf("unexpected return type %T", out[0])
	}
	return *handle, nil
}
