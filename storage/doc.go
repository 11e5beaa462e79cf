// Package storage publishes package contents to content-addressed storage networks.
//
// Publishers take a local directory and return the address the network
// assigned to it:
//
//   - SwarmPublisher archives the directory as tar and posts it to a Swarm
//     bzz gateway; the response body is the address
//   - IPFSPublisher adds the directory to an IPFS node; the root CID is the address
//
// # Publisher URI Format
//
// Publishers are specified using URI format and created by PublisherFactory:
//
//	http://localhost:8500/bzz:/
//	ipfs://localhost:5001/?timeout=30s
//
// # Archives
//
// WriteTar writes archives in-process; no external tar executable is invoked.
// Archives carry filesystem metadata, so uploading the same tree twice can
// produce different archives and different content addresses.
//
// # Failures
//
// Archiving failures wrap interfaces.ErrArchive and network or gateway
// failures wrap interfaces.ErrUpload. Every publish is a single attempt.
package storage
