package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruteri/swarm-package-registry/common"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

var RpcAddrFlag = &cli.StringFlag{
	Name:    "rpc-addr",
	Value:   "https://rinkeby.infura.io/",
	Usage:   "address to connect to RPC",
	EnvVars: []string{"PKGREGISTRY_RPC_ADDR"},
}

var RegistryContractFlag = &cli.StringFlag{
	Name:    "registry-contract",
	Value:   "57147069B117fD911Da6c43F3fBdC54a7A7D8C1d",
	Usage:   "Package registry contract address. 40-char hex string, 0x prefix optional",
	EnvVars: []string{"PKGREGISTRY_CONTRACT"},
}

var PrivateKeyFlag = &cli.StringFlag{
	Name:    "private-key",
	Usage:   "hex-encoded secp256k1 key signing register and publish transactions",
	EnvVars: []string{"PKGREGISTRY_PRIVATE_KEY"},
}

var StorageURIFlag = &cli.StringFlag{
	Name:    "storage-uri",
	Value:   "http://localhost:8500/bzz:/",
	Usage:   "content storage location: a Swarm gateway URL (http://host:port/bzz:/) or ipfs://host:port",
	EnvVars: []string{"PKGREGISTRY_STORAGE_URI"},
}

var StorageTimeoutFlag = &cli.DurationFlag{
	Name:  "storage-timeout",
	Usage: "timeout for a single upload, zero for none",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 0,
	Usage: "seconds to report not-ready before shutting down",
}

var LogFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
}
