package interfaces

import "context"

// PackageRegistry wraps the registry contract calls.
//
// Each method is a single blocking round-trip; none are retried or batched.
type PackageRegistry interface {
	// Register submits a transaction registering name and returns the handle the contract assigned.
	Register(ctx context.Context, name PackageName) (PackageHandle, error)

	// Resolve returns the handle for name exactly as the contract reports it.
	Resolve(ctx context.Context, name PackageName) (PackageHandle, error)

	// Publish submits a transaction associating version with address under handle.
	Publish(ctx context.Context, handle PackageHandle, version Version, address ContentAddress) error
}
