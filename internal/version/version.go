// Package version provides application version information.
// The values can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/PokePoke-Tracker/internal/version.Version=v1.2.3 -X github.com/ramonehamilton/PokePoke-Tracker/internal/version.Commit=abc1234" ./cmd/tracker
package version

// Version is the application version. It defaults to "dev".
var Version = "dev"

// Commit is the source revision the binary was built from, if known.
var Commit = ""

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}

// String returns the version with the commit appended when one was set,
// e.g. "v1.2.3 (abc1234)".
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
