// Package main is the entry point for the meshkube CLI.
//
// meshkube brings up and operates a small Kubernetes cluster for
// distributed Meshroom photogrammetry processing: prerequisite checks,
// local cluster bootstrap, image builds, NAS-backed storage, workload
// deployment, and monitoring.
//
// Commands: init, up, worker, status, monitor, down, build, storage,
// deploy, token.
//
// For detailed usage information, run:
//
//	meshkube --help
package main

import (
	"fmt"
	"os"

	"github.com/bernhq/meshkube/cmd/meshkube/commands"
)

// Version information set by the release pipeline at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
