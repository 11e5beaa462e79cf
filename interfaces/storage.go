package interfaces

import "context"

// ContentPublisher uploads directory trees to a content-addressed storage network.
type ContentPublisher interface {
	// PublishDirectory uploads the tree under path and returns its content address.
	PublishDirectory(ctx context.Context, path string) (ContentAddress, error)

	// LocationURI returns URI identifying this publisher.
	LocationURI() string
}

// PublisherFactory creates content publishers.
type PublisherFactory interface {
	// PublisherFor creates a publisher from a location URI.
	// Supports http://, https:// (Swarm gateways) and ipfs://
	PublisherFor(locationURI string) (ContentPublisher, error)
}

// TarContentType is the media type of directory archives sent to a Swarm gateway.
const TarContentType = "application/x-tar"
