// Package version reports the build of a funckit binary.
//
// Version and Commit are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/funckit/version.Version=0.2.0" ./cmd/funcdemo
//
// Fields left empty are filled from the module's embedded build info.
package version
