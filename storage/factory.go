package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ruteri/swarm-package-registry/interfaces"
)

// PublisherFactory creates content publishers from location URI strings.
type PublisherFactory struct {
	log     *slog.Logger
	timeout time.Duration
}

// NewPublisherFactory creates a new factory instance. The timeout applies to
// every request a created publisher makes unless the URI overrides it.
func NewPublisherFactory(logger *slog.Logger, timeout time.Duration) *PublisherFactory {
	return &PublisherFactory{
		log:     logger,
		timeout: timeout,
	}
}

// PublisherFor creates a content publisher from a location URI.
//
// Supported schemes:
//   - http://, https:// - Swarm gateway upload endpoint, e.g. http://localhost:8500/bzz:/
//   - ipfs:// - IPFS node API, e.g. ipfs://localhost:5001/?timeout=30s
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (sf *PublisherFactory) PublisherFor(locationURI string) (interfaces.ContentPublisher, error) {
	u, err := url.Parse(locationURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return sf.createSwarmPublisher(u)
	case "ipfs":
		return sf.createIPFSPublisher(u)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidLocationURI, u.Scheme)
	}
}

// createSwarmPublisher creates a publisher posting archives to a Swarm gateway.
// URI format: http://host:port/bzz:/
func (sf *PublisherFactory) createSwarmPublisher(u *url.URL) (interfaces.ContentPublisher, error) {
	sf.log.Debug("Creating Swarm publisher", slog.String("uri", u.String()))

	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing gateway host in %s", interfaces.ErrInvalidLocationURI, u.String())
	}

	return NewSwarmPublisher(u.String(), sf.timeout, sf.log), nil
}

// createIPFSPublisher creates an IPFS publisher.
// URI format: ipfs://host:port/?timeout=30s
func (sf *PublisherFactory) createIPFSPublisher(u *url.URL) (interfaces.ContentPublisher, error) {
	sf.log.Debug("Creating IPFS publisher", slog.String("uri", u.String()))

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: missing IPFS host in %s", interfaces.ErrInvalidLocationURI, u.String())
	}

	port := u.Port()
	if port == "" {
		port = "5001" // Default IPFS API port
	}

	timeout := sf.timeout
	if raw := u.Query().Get("timeout"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeout %q: %v", interfaces.ErrInvalidLocationURI, raw, err)
		}
		timeout = parsed
	}

	return NewIPFSPublisher(host, port, timeout, sf.log), nil
}
