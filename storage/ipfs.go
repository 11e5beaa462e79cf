package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/ruteri/swarm-package-registry/interfaces"
)

// IPFSPublisher adds directory trees to an IPFS node through its HTTP API.
// The root CID of the added tree is the content address.
type IPFSPublisher struct {
	shell       *shell.Shell
	host        string
	port        string
	log         *slog.Logger
	locationURI string
}

// NewIPFSPublisher creates a publisher connected to the IPFS API at host:port.
func NewIPFSPublisher(host, port string, timeout time.Duration, log *slog.Logger) *IPFSPublisher {
	apiURL := fmt.Sprintf("%s:%s", host, port)

	sh := shell.NewShell(apiURL)
	if timeout > 0 {
		sh.SetTimeout(timeout)
	}

	return &IPFSPublisher{
		shell:       sh,
		host:        host,
		port:        port,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s/?timeout=%s", apiURL, timeout),
	}
}

// PublishDirectory recursively adds path to IPFS and returns the root CID.
// The IPFS client does not take a context, so ctx is only checked before the request.
func (b *IPFSPublisher) PublishDirectory(ctx context.Context, path string) (interfaces.ContentAddress, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrArchive, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", interfaces.ErrArchive, path)
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrUpload, err)
	}

	cid, err := b.shell.AddDir(path)
	if err != nil {
		b.log.Error("Failed to add directory to IPFS",
			slog.String("path", path),
			slog.String("host", b.host),
			slog.String("port", b.port),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return "", fmt.Errorf("%w: failed to add directory to IPFS: %v", interfaces.ErrUpload, err)
	}

	b.log.Debug("Published directory to IPFS",
		slog.String("path", path),
		slog.String("ipfsCID", cid),
		slog.Duration("duration", time.Since(start)))

	return interfaces.ContentAddress(cid), nil
}

// LocationURI returns the URI that identifies this publisher.
func (b *IPFSPublisher) LocationURI() string {
	return b.locationURI
}
