package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ruteri/swarm-package-registry/interfaces"
)

// DefaultSwarmGateway is the bzz upload endpoint of a local Swarm node.
const DefaultSwarmGateway = "http://localhost:8500/bzz:/"

// SwarmPublisher uploads directory archives to a Swarm HTTP gateway.
type SwarmPublisher struct {
	gatewayURL string
	client     *http.Client
	log        *slog.Logger
}

// NewSwarmPublisher creates a publisher posting to gatewayURL.
// A zero timeout leaves requests bounded only by the caller's context.
func NewSwarmPublisher(gatewayURL string, timeout time.Duration, log *slog.Logger) *SwarmPublisher {
	return &SwarmPublisher{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: timeout},
		log:        log,
	}
}

// PublishDirectory archives path in memory and posts the archive to the gateway.
// The gateway's response body is the content address. A single attempt is made.
func (p *SwarmPublisher) PublishDirectory(ctx context.Context, path string) (interfaces.ContentAddress, error) {
	start := time.Now()

	var archive bytes.Buffer
	if err := WriteTar(&archive, path); err != nil {
		p.log.Error("Failed to archive directory", slog.String("path", path), "err", err)
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.gatewayURL, bytes.NewReader(archive.Bytes()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrUpload, err)
	}
	req.Header.Set("Content-Type", interfaces.TarContentType)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("Failed to reach Swarm gateway",
			slog.String("gateway", p.gatewayURL),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return "", fmt.Errorf("%w: could not request gateway: %v", interfaces.ErrUpload, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: could not read gateway response: %v", interfaces.ErrUpload, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.log.Error("Swarm gateway rejected upload",
			slog.String("gateway", p.gatewayURL),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)))
		return "", fmt.Errorf("%w: gateway returned error %d: %s", interfaces.ErrUpload, resp.StatusCode, string(body))
	}

	address := strings.TrimSpace(string(body))
	if address == "" {
		return "", fmt.Errorf("%w: gateway returned an empty content address", interfaces.ErrUpload)
	}

	p.log.Debug("Published directory to Swarm",
		slog.String("path", path),
		slog.String("address", address),
		slog.Int("size", archive.Len()),
		slog.Duration("duration", time.Since(start)))

	return interfaces.ContentAddress(address), nil
}

// LocationURI returns the gateway URL.
func (p *SwarmPublisher) LocationURI() string {
	return p.gatewayURL
}
