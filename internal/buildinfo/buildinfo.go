// Package buildinfo carries version stamps injected with -ldflags.
package buildinfo

import "fmt"

// Name is the product name shown in the window title and logs.
const Name = "WireBoids"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// Title is the window title: product name plus build identifier.
func Title() string {
	return fmt.Sprintf("%s (%s)", Name, Short())
}
