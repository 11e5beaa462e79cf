// Package main (cmd/pkgregistry) registers and publishes packages against the
// on-chain package registry.
//
// The client supports three commands:
//
//	register - Upload a directory to the storage network, register the package
//	           name on-chain and publish the upload as version 0.1.0.
//
//	publish  - Resolve the package name and publish a new MAJOR MINOR BUILD
//	           version. The content address is either given with --address or
//	           produced by uploading --dir. Flags precede the version:
//	           pkgregistry publish --address ADDR 1 2 3
//
//	resolve  - Print the handle the registry assigns to the package name.
//
// register and publish send transactions and need --private-key. Every step is
// attempted once; if publishing fails after the name was registered, the name
// stays registered.
//
// Results are printed to stdout as JSON; logs go to stderr.
package main
