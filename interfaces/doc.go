// Package interfaces defines core interfaces and types for the package
// registry, separating interface definitions from implementations.
//
// # Registry Interfaces
//
// PackageRegistry: Wraps the three calls of the on-chain registry contract,
// registering package names, resolving them to handles and publishing
// versions under a handle.
//
// # Storage Interfaces
//
// ContentPublisher: Uploads a directory tree to a content-addressed storage
// network (a Swarm gateway or an IPFS node) and returns its content address.
//
// PublisherFactory: Creates content publishers from location URIs.
//
// # Core Types
//
//   - PackageName: human-readable package identifier
//   - PackageHandle: 32-byte registry key derived from a PackageName
//   - Version: (major, minor, build) triple
//   - ContentAddress: opaque address returned by the storage network
//   - ContractAddress: 20-byte Ethereum address
//   - Release: a published version record
package interfaces
