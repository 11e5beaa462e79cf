package common

// Version is set at build time via -ldflags "-X github.com/ruteri/swarm-package-registry/common.Version=..."
var Version = "dev"

// PackageName is used as the default service tag in logs.
const PackageName = "swarm-package-registry"
