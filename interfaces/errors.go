package interfaces

import "errors"

var (
	// ErrArchive is returned when a directory cannot be archived, including
	// when the path does not exist or is not a directory.
	ErrArchive = errors.New("archive failed")

	// ErrUpload is returned when the storage network rejects an upload or cannot be reached.
	ErrUpload = errors.New("upload failed")

	// ErrTransaction is returned when a chain call is rejected or the node is unreachable.
	ErrTransaction = errors.New("transaction failed")

	// ErrNotFound is returned when the registry contract reverts a name lookup.
	// A contract that answers with a zero handle instead is not an error.
	ErrNotFound = errors.New("package not found")

	// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
	ErrNoTransactOpts = errors.New("no authorized transactor available")

	// ErrInvalidLocationURI is returned when a storage location URI is malformed or unsupported.
	ErrInvalidLocationURI = errors.New("invalid storage location URI")
)
