// Package registry provides clients for the on-chain package registry contract.
//
// The contract exposes three methods:
//
//	register(string name) returns (bytes32)
//	resolve(string name) view returns (bytes32)
//	publish(bytes32 hash, uint256 major, uint256 minor, uint256 build, string bzz)
//
// OnchainRegistryClient implements interfaces.PackageRegistry on top of a
// go-ethereum contract backend. MemoryRegistry implements the same interface
// in memory and MockRegistry is a testify mock; both are meant for tests.
//
// # Transaction Operations
//
// Register and Publish modify state and require transaction signing. Either
// build the client with Dial and a Config carrying a private key, or call
// SetTransactOpts with appropriate transaction options. Both calls wait for
// the transaction receipt and fail with interfaces.ErrTransaction when the
// transaction reverts. Nothing is retried.
//
// Resolve is read-only and can be used immediately after creating a client.
// When the contract answers an unknown name with a zero handle, the zero
// handle is returned as-is.
//
// # Usage Example
//
//	client, err := registry.Dial(ctx, registry.Config{
//	    RPCAddr:         "https://rinkeby.infura.io/",
//	    ContractAddress: contractAddress,
//	    PrivateKey:      privateKey,
//	})
//	if err != nil {
//	    log.Fatalf("Failed to create registry client: %v", err)
//	}
//
//	handle, err := client.Register(ctx, "registry_example")
//	err = client.Publish(ctx, handle, interfaces.InitialVersion, address)
package registry
