package registry

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ruteri/swarm-package-registry/interfaces"
)

// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
var ErrNoTransactOpts = interfaces.ErrNoTransactOpts

// Config identifies a registry deployment.
type Config struct {
	// RPCAddr is the JSON-RPC endpoint of an Ethereum-compatible node.
	RPCAddr string

	// ContractAddress is the address of the deployed registry contract.
	ContractAddress interfaces.ContractAddress

	// ABI overrides RegistryABI when non-empty.
	ABI string

	// PrivateKey signs register and publish transactions. Without it the client is read-only.
	PrivateKey *ecdsa.PrivateKey
}

// OnchainRegistryClient implements the interfaces.PackageRegistry interface for
// interacting with a registry smart contract deployed on a blockchain.
type OnchainRegistryClient struct {
	contract *bind.BoundContract
	client   bind.ContractBackend
	backend  bind.DeployBackend
	address  common.Address
	auth     *bind.TransactOpts

	// ethClient is set when the client owns its connection (see Dial).
	ethClient *ethclient.Client
}

// NewOnchainRegistryClient creates a new client for interacting with the registry contract
// at the specified address. It requires a ContractBackend for reading from the blockchain
// and a DeployBackend for awaiting transaction receipts.
func NewOnchainRegistryClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*OnchainRegistryClient, error) {
	return newOnchainRegistryClient(client, backend, address, "")
}

func newOnchainRegistryClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address, abiJSON string) (*OnchainRegistryClient, error) {
	parsed, err := ParseRegistryABI(abiJSON)
	if err != nil {
		return nil, err
	}

	return &OnchainRegistryClient{
		contract: bindRegistry(address, parsed, client),
		client:   client,
		backend:  backend,
		address:  address,
	}, nil
}

// Dial connects to cfg.RPCAddr and returns a client for cfg.ContractAddress.
// When cfg.PrivateKey is set, transaction options are configured for the node's chain ID.
func Dial(ctx context.Context, cfg Config) (*OnchainRegistryClient, error) {
	ethClient, err := ethclient.DialContext(ctx, cfg.RPCAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: could not dial %s: %v", interfaces.ErrTransaction, cfg.RPCAddr, err)
	}

	client, err := newOnchainRegistryClient(ethClient, ethClient, common.Address(cfg.ContractAddress), cfg.ABI)
	if err != nil {
		ethClient.Close()
		return nil, err
	}

	if cfg.PrivateKey != nil {
		chainID, err := ethClient.ChainID(ctx)
		if err != nil {
			ethClient.Close()
			return nil, fmt.Errorf("%w: could not fetch chain id: %v", interfaces.ErrTransaction, err)
		}

		auth, err := bind.NewKeyedTransactorWithChainID(cfg.PrivateKey, chainID)
		if err != nil {
			ethClient.Close()
			return nil, fmt.Errorf("could not create transactor: %w", err)
		}
		client.SetTransactOpts(auth)
	}

	client.ethClient = ethClient
	return client, nil
}

// Close releases the RPC connection opened by Dial. Clients built with
// NewOnchainRegistryClient do not own their backend, so Close is a no-op for them.
func (c *OnchainRegistryClient) Close() {
	if c.ethClient != nil {
		c.ethClient.Close()
		c.ethClient = nil
	}
}

// SetTransactOpts sets the transaction options required for functions that modify state.
// This must be called before using any methods that send transactions to the blockchain.
func (c *OnchainRegistryClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// Address returns the registry contract address.
func (c *OnchainRegistryClient) Address() interfaces.ContractAddress {
	return interfaces.ContractAddress(c.address)
}

// Register registers name and returns the handle assigned by the contract.
//
// Transactions carry no return data, so the handle is read from an eth_call of
// register made from the signer's account before the transaction is sent. The
// same call surfaces contract rejections, such as a name already being taken,
// without spending gas.
func (c *OnchainRegistryClient) Register(ctx context.Context, name interfaces.PackageName) (interfaces.PackageHandle, error) {
	if c.auth == nil {
		return interfaces.PackageHandle{}, ErrNoTransactOpts
	}

	var out []interface{}
	opts := &bind.CallOpts{Context: ctx, From: c.auth.From}
	if err := c.contract.Call(opts, &out, methodRegister, string(name)); err != nil {
		return interfaces.PackageHandle{}, fmt.Errorf("%w: register %q rejected: %v", interfaces.ErrTransaction, name, err)
	}

	handle, err := handleFromOutput(out)
	if err != nil {
		return interfaces.PackageHandle{}, fmt.Errorf("%w: register %q: %v", interfaces.ErrTransaction, name, err)
	}

	tx, err := c.contract.Transact(c.transactOpts(ctx), methodRegister, string(name))
	if err != nil {
		return interfaces.PackageHandle{}, fmt.Errorf("%w: could not send register %q: %v", interfaces.ErrTransaction, name, err)
	}

	if err := c.waitMined(ctx, tx); err != nil {
		return interfaces.PackageHandle{}, err
	}

	return interfaces.PackageHandle(handle), nil
}

// Resolve converts name to its handle according to the registry algorithm.
// A zero handle is returned unchanged; only a reverted call yields ErrNotFound.
func (c *OnchainRegistryClient) Resolve(ctx context.Context, name interfaces.PackageName) (interfaces.PackageHandle, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := c.contract.Call(opts, &out, methodResolve, string(name)); err != nil {
		if isRevert(err) {
			return interfaces.PackageHandle{}, fmt.Errorf("%w: %q: %v", interfaces.ErrNotFound, name, err)
		}
		return interfaces.PackageHandle{}, fmt.Errorf("%w: resolve %q: %v", interfaces.ErrTransaction, name, err)
	}

	handle, err := handleFromOutput(out)
	if err != nil {
		return interfaces.PackageHandle{}, fmt.Errorf("%w: resolve %q: %v", interfaces.ErrTransaction, name, err)
	}

	return interfaces.PackageHandle(handle), nil
}

// Publish associates version with address under handle and waits for the transaction to be mined.
func (c *OnchainRegistryClient) Publish(ctx context.Context, handle interfaces.PackageHandle, version interfaces.Version, address interfaces.ContentAddress) error {
	if c.auth == nil {
		return ErrNoTransactOpts
	}

	tx, err := c.contract.Transact(c.transactOpts(ctx), methodPublish,
		[32]byte(handle),
		new(big.Int).SetUint64(version.Major),
		new(big.Int).SetUint64(version.Minor),
		new(big.Int).SetUint64(version.Build),
		string(address),
	)
	if err != nil {
		return fmt.Errorf("%w: could not send publish %s: %v", interfaces.ErrTransaction, version, err)
	}

	return c.waitMined(ctx, tx)
}

func (c *OnchainRegistryClient) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *c.auth
	opts.Context = ctx
	return &opts
}

func (c *OnchainRegistryClient) waitMined(ctx context.Context, tx *types.Transaction) error {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return fmt.Errorf("%w: waiting for %s: %v", interfaces.ErrTransaction, tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: transaction %s reverted", interfaces.ErrTransaction, tx.Hash().Hex())
	}

	return nil
}

func isRevert(err error) bool {
	return strings.Contains(err.Error(), "execution reverted")
}
