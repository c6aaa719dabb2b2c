// Package version provides build version information embedding for
// authkit consumers.
//
// Version, git commit, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/skillsenselab/authkit/version.Version=1.0.0"
package version
