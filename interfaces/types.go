package interfaces

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ContractAddress represents an Ethereum contract address.
type ContractAddress [20]byte

// NewContractAddressFromBytes creates a new contract address from a byte slice.
func NewContractAddressFromBytes(addr []byte) (ContractAddress, error) {
	if len(addr) != 20 {
		return ContractAddress{}, errors.New("invalid address length: must be 20 bytes")
	}

	var res ContractAddress
	copy(res[:], addr)
	return res, nil
}

// NewContractAddressFromHex parses a 40-char hex string, with or without the 0x prefix.
func NewContractAddressFromHex(addr string) (ContractAddress, error) {
	clean := strings.TrimPrefix(addr, "0x")
	if len(clean) != 40 {
		return ContractAddress{}, errors.New("invalid address length: hex string must be 40 characters")
	}

	addrBytes, err := hex.DecodeString(clean)
	if err != nil {
		return ContractAddress{}, fmt.Errorf("invalid hex format: %w", err)
	}

	return NewContractAddressFromBytes(addrBytes)
}

// String returns the hex string representation of the contract address.
func (addr ContractAddress) String() string {
	return hex.EncodeToString(addr[:])
}

// Bytes returns the raw 20-byte address.
func (addr ContractAddress) Bytes() []byte {
	return addr[:]
}

// PackageName is the human-readable identifier of a package, unique within a registry.
type PackageName string

// String returns the name as a string.
func (name PackageName) String() string {
	return string(name)
}

// PackageHandle is the registry key the contract derives from a PackageName.
// The zero value means no handle was assigned.
type PackageHandle [32]byte

// NewPackageHandleFromHex parses a 64-char hex string, with or without the 0x prefix.
func NewPackageHandleFromHex(source string) (PackageHandle, error) {
	clean := strings.TrimPrefix(source, "0x")
	if len(clean) != 64 {
		return PackageHandle{}, errors.New("invalid package handle length: hex string must be 64 characters")
	}

	handleBytes, err := hex.DecodeString(clean)
	if err != nil {
		return PackageHandle{}, fmt.Errorf("invalid hex format: %w", err)
	}

	var handle PackageHandle
	copy(handle[:], handleBytes)
	return handle, nil
}

// String returns hex representation.
func (h PackageHandle) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the handle is the zero value.
func (h PackageHandle) IsZero() bool {
	return h == PackageHandle{}
}

// MarshalText encodes the handle as hex, used for JSON output.
func (h PackageHandle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// ContentAddress identifies an uploaded archive on the storage network.
// It is derived from content by the network and treated as opaque here.
type ContentAddress string

// String returns the address as a string.
func (a ContentAddress) String() string {
	return string(a)
}

// Version is a (major, minor, build) triple ordered lexicographically.
type Version struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Build uint64 `json:"build"`
}

// InitialVersion is published together with a newly registered package.
var InitialVersion = Version{Major: 0, Minor: 1, Build: 0}

// ParseVersion parses a "major.minor.build" string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(s, "v"), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.build", s)
	}

	var nums [3]uint64
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Build: nums[2]}, nil
}

// String returns the dotted representation.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to or after other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpUint(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpUint(v.Minor, other.Minor)
	default:
		return cmpUint(v.Build, other.Build)
	}
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

func cmpUint(a, b uint64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Release is a version published under a package handle.
type Release struct {
	Name    PackageName    `json:"name,omitempty"`
	Handle  PackageHandle  `json:"handle"`
	Version Version        `json:"version"`
	Address ContentAddress `json:"address"`
}
