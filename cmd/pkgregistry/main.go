package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/swarm-package-registry/cmd/flags"
	"github.com/ruteri/swarm-package-registry/interfaces"
	"github.com/ruteri/swarm-package-registry/registry"
	"github.com/ruteri/swarm-package-registry/storage"
	"github.com/ruteri/swarm-package-registry/workflow"
	"github.com/urfave/cli/v2"
)

var flagName = &cli.StringFlag{
	Name:  "name",
	Value: "registry_example",
	Usage: "package name",
}
var flagDir = &cli.StringFlag{
	Name:  "dir",
	Value: ".",
	Usage: "directory to upload",
}
var flagAddress = &cli.StringFlag{
	Name:  "address",
	Usage: "publish an existing content address instead of uploading --dir",
}

func main() {
	app := &cli.App{
		Name:  "pkgregistry",
		Usage: "register and publish packages on the on-chain package registry",
		Flags: append([]cli.Flag{
			flags.RpcAddrFlag,
			flags.RegistryContractFlag,
			flags.PrivateKeyFlag,
			flags.StorageURIFlag,
			flags.StorageTimeoutFlag,
		}, flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:        "register",
				Usage:       "register a package and publish version 0.1.0",
				Description: "Uploads --dir, registers --name and publishes the upload as 0.1.0.",
				Flags:       []cli.Flag{flagName, flagDir},
				Action: func(cCtx *cli.Context) error {
					c, err := NewClientConfig(cCtx, true)
					if err != nil {
						return err
					}
					defer c.Close()
					release, err := c.Workflow.RegisterPackage(cCtx.Context, cCtx.String(flagDir.Name), interfaces.PackageName(cCtx.String(flagName.Name)))
					if err != nil {
						return fmt.Errorf("register failed: %w", err)
					}
					return printJSON(release)
				},
			},
			{
				Name:        "publish",
				Usage:       "publish a new package version",
				ArgsUsage:   "[--address ADDR | --dir DIR] MAJOR MINOR BUILD",
				Description: "Resolves --name and publishes the version, uploading --dir unless --address is given.\nFlags must come before the version components.",
				Flags:       []cli.Flag{flagName, flagDir, flagAddress},
				Action: func(cCtx *cli.Context) error {
					version, err := parseVersionArgs(cCtx.Args().Slice())
					if err != nil {
						return err
					}
					c, err := NewClientConfig(cCtx, true)
					if err != nil {
						return err
					}
					defer c.Close()

					name := interfaces.PackageName(cCtx.String(flagName.Name))
					var release *interfaces.Release
					if address := cCtx.String(flagAddress.Name); address != "" {
						release, err = c.Workflow.PublishVersion(cCtx.Context, name, version, interfaces.ContentAddress(address))
					} else {
						release, err = c.Workflow.ReleaseDirectory(cCtx.Context, name, cCtx.String(flagDir.Name), version)
					}
					if err != nil {
						return fmt.Errorf("publish failed: %w", err)
					}
					return printJSON(release)
				},
			},
			{
				Name:  "resolve",
				Usage: "print the registry handle of a package name",
				Flags: []cli.Flag{flagName},
				Action: func(cCtx *cli.Context) error {
					c, err := NewClientConfig(cCtx, false)
					if err != nil {
						return err
					}
					defer c.Close()
					name := interfaces.PackageName(cCtx.String(flagName.Name))
					handle, err := c.Registry.Resolve(cCtx.Context, name)
					if err != nil {
						return fmt.Errorf("resolve failed: %w", err)
					}
					return printJSON(&interfaces.Release{Name: name, Handle: handle})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type Client struct {
	Log      *slog.Logger
	Registry interfaces.PackageRegistry
	Workflow *workflow.Workflow

	registry *registry.OnchainRegistryClient
}

// Close releases the registry connection.
func (c *Client) Close() {
	c.registry.Close()
}

func NewClientConfig(cCtx *cli.Context, transacting bool) (*Client, error) {
	logger := flags.SetupLogger(cCtx)

	contract, err := interfaces.NewContractAddressFromHex(cCtx.String(flags.RegistryContractFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("could not parse registry contract address: %w", err)
	}

	cfg := registry.Config{
		RPCAddr:         cCtx.String(flags.RpcAddrFlag.Name),
		ContractAddress: contract,
	}

	if keyHex := cCtx.String(flags.PrivateKeyFlag.Name); keyHex != "" {
		cfg.PrivateKey, err = crypto.HexToECDSA(trimHexPrefix(keyHex))
		if err != nil {
			return nil, fmt.Errorf("could not parse private key: %w", err)
		}
	} else if transacting {
		return nil, errors.New("--private-key is required to send transactions")
	}

	logger.Debug("Connecting to Ethereum RPC", "address", cfg.RPCAddr, "contract", contract.String())
	registryClient, err := registry.Dial(cCtx.Context, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := storage.NewPublisherFactory(logger, cCtx.Duration(flags.StorageTimeoutFlag.Name)).PublisherFor(cCtx.String(flags.StorageURIFlag.Name))
	if err != nil {
		registryClient.Close()
		return nil, err
	}

	wf, err := workflow.New(publisher, registryClient, logger)
	if err != nil {
		registryClient.Close()
		return nil, err
	}

	return &Client{
		Log:      logger,
		Registry: registryClient,
		Workflow: wf,
		registry: registryClient,
	}, nil
}

func parseVersionArgs(args []string) (interfaces.Version, error) {
	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			return interfaces.Version{}, fmt.Errorf("flag %s must come before MAJOR MINOR BUILD", arg)
		}
	}
	if len(args) != 3 {
		return interfaces.Version{}, fmt.Errorf("expected MAJOR MINOR BUILD, got %d arguments", len(args))
	}

	var parts [3]uint64
	for i, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return interfaces.Version{}, fmt.Errorf("invalid version component %q: %w", arg, err)
		}
		parts[i] = n
	}

	return interfaces.Version{Major: parts[0], Minor: parts[1], Build: parts[2]}, nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func printJSON(v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
